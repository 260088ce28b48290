package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Workspace struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	Name      string     `gorm:"not null" json:"name"`
	CreatorID uuid.UUID  `gorm:"type:uuid;index;not null" json:"creatorId"`
	MemberIDs StringList `gorm:"type:jsonb" json:"memberIds"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (w *Workspace) BeforeCreate(tx *gorm.DB) (err error) {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return
}

// HealthProbe rows exist only while the diagnostic endpoint exercises a
// write against the store.
type HealthProbe struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CheckedAt time.Time
}

func (h *HealthProbe) BeforeCreate(tx *gorm.DB) (err error) {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return
}
