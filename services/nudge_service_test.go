package services

import (
	"fmt"
	"testing"
	"time"

	"crmhub-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Task{}, &models.Activity{}))
	return db
}

func TestOverdueTasksSelection(t *testing.T) {
	db := newServiceTestDB(t)
	svc := NewNudgeService(db)

	past := time.Now().Add(-48 * time.Hour)
	future := time.Now().Add(48 * time.Hour)

	seed := []models.Task{
		{Title: "late", AssigneeID: "u-1", DueDate: &past},
		{Title: "late but done", AssigneeID: "u-1", DueDate: &past, Completed: true},
		{Title: "on time", AssigneeID: "u-1", DueDate: &future},
		{Title: "no due date", AssigneeID: "u-1"},
	}
	for i := range seed {
		require.NoError(t, db.Create(&seed[i]).Error)
	}

	tasks, err := svc.overdueTasks()
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "late", tasks[0].Title)
}

func TestEmailServiceConsoleFallback(t *testing.T) {
	t.Setenv("SENDGRID_API_KEY", "")

	svc := NewEmailService()
	assert.NoError(t, svc.SendWelcomeEmail("grace@example.com", "Grace"))
	assert.NoError(t, svc.SendPasswordResetEmail("grace@example.com", "Grace", "tok-123"))
}
