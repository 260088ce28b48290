package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Deal struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	Title   string  `gorm:"not null" json:"title"`
	Company string  `gorm:"not null" json:"company"`
	Value   float64 `gorm:"type:decimal(14,2);not null" json:"value"`

	// Stage is a free-form label; no transition rules are enforced.
	Stage       string    `gorm:"type:varchar(40);default:'Lead'" json:"stage"`
	Probability int       `gorm:"default:25" json:"probability"`
	CloseDate   time.Time `json:"closeDate"`

	ContactID    string `gorm:"index" json:"contactId"`
	AssigneeID   string `gorm:"index" json:"assigneeId"`
	AssigneeName string `json:"assigneeName"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (d *Deal) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return
}
