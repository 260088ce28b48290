package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Company struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	Name         string  `gorm:"not null" json:"name"`
	Industry     string  `json:"industry"`
	EstimatedARR float64 `gorm:"type:decimal(14,2);default:0.0" json:"estimatedARR"`
	Employees    int     `gorm:"default:0" json:"employees"`
	Status       string  `gorm:"type:varchar(20);default:'Prospect'" json:"status"`

	// Denormalized references; dangling ids are tolerated.
	ContactIDs StringList `gorm:"type:jsonb" json:"contactIds"`
	DealIDs    StringList `gorm:"type:jsonb" json:"dealIds"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (co *Company) BeforeCreate(tx *gorm.DB) (err error) {
	if co.ID == uuid.Nil {
		co.ID = uuid.New()
	}
	return
}
