package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Note struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	Title   string `gorm:"not null" json:"title"`
	Content string `gorm:"type:text" json:"content"`
	Client  string `json:"client"`

	DueDate  *time.Time `json:"dueDate,omitempty"`
	IsPinned bool       `gorm:"default:false" json:"isPinned"`
	Tags     StringList `gorm:"type:jsonb" json:"tags"`

	AssigneeID string `gorm:"index" json:"assigneeId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (n *Note) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return
}
