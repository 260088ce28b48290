package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Task struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	Title    string `gorm:"not null" json:"title"`
	Type     string `gorm:"type:varchar(30);default:'Follow-up'" json:"type"`
	Priority string `gorm:"type:varchar(20);default:'Medium'" json:"priority"`

	DueDate   *time.Time `json:"dueDate,omitempty"`
	Completed bool       `gorm:"default:false" json:"completed"`
	Status    string     `gorm:"type:varchar(20);default:'Open'" json:"status"`

	AssigneeID   string `gorm:"index;not null" json:"assigneeId"`
	AssigneeName string `json:"assigneeName"`

	// Optional links; any may dangle.
	ContactID string `gorm:"index" json:"contactId"`
	DealID    string `gorm:"index" json:"dealId"`
	CompanyID string `gorm:"index" json:"companyId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}

// Overdue reports whether the task is incomplete and past its due date.
func (t *Task) Overdue(now time.Time) bool {
	return !t.Completed && t.DueDate != nil && t.DueDate.Before(now)
}
