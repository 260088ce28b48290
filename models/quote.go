package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Quote statuses form a fixed set, unlike deal stages.
var QuoteStatuses = []string{"Draft", "Sent", "Accepted", "Rejected"}

func ValidQuoteStatus(s string) bool {
	for _, v := range QuoteStatuses {
		if v == s {
			return true
		}
	}
	return false
}

type Quote struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	QuoteNumber   string `gorm:"uniqueIndex;not null" json:"quoteNumber"`
	ClientCompany string `gorm:"not null" json:"clientCompany"`

	Subtotal float64 `gorm:"type:decimal(14,2);not null" json:"subtotal"`
	Tax      float64 `gorm:"type:decimal(14,2);default:0.0" json:"tax"`
	Total    float64 `gorm:"type:decimal(14,2);not null" json:"total"`

	Status string `gorm:"type:varchar(20);default:'Draft'" json:"status"`

	Items []QuoteItem `gorm:"foreignKey:QuoteID" json:"items"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type QuoteItem struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	QuoteID  uuid.UUID `gorm:"type:uuid;index;not null" json:"quoteId"`
	Name     string    `gorm:"not null" json:"name"`
	Quantity int       `gorm:"default:1" json:"quantity"`
	Rate     float64   `gorm:"type:decimal(14,2);not null" json:"rate"`
	Total    float64   `gorm:"type:decimal(14,2);not null" json:"total"`
}

func (q *Quote) BeforeCreate(tx *gorm.DB) (err error) {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return
}

func (qi *QuoteItem) BeforeCreate(tx *gorm.DB) (err error) {
	if qi.ID == uuid.Nil {
		qi.ID = uuid.New()
	}
	return
}
