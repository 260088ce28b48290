package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Activity is an append-only audit record. Normal flow never updates or
// deletes one.
type Activity struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	Type        string    `gorm:"type:varchar(30);not null" json:"type"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Timestamp   time.Time `gorm:"index" json:"timestamp"`

	// Polymorphic reference: EntityType is one of the closed set in
	// common.go, EntityID may dangle.
	EntityType string `gorm:"type:varchar(20);index" json:"entityType"`
	EntityID   string `gorm:"index" json:"entityId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (a *Activity) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Timestamp.IsZero() {
		a.Timestamp = time.Now()
	}
	return
}
