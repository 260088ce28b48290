// services/nudge_service.go
package services

import (
	"crmhub-backend/models"
	"crmhub-backend/utils"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// NudgeService texts assignees about overdue tasks once a day. It runs
// outside the request path; request handlers never wait on it.
type NudgeService struct {
	db     *gorm.DB
	client *twilio.RestClient
	from   string
}

func NewNudgeService(db *gorm.DB) *NudgeService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &NudgeService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
		from: os.Getenv("TWILIO_FROM_NUMBER"),
	}
}

func (s *NudgeService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	if _, err := c.AddFunc("0 9 * * *", s.SendDailyNudges); err != nil {
		log.Printf("Failed to schedule nudge job: %v", err)
		return
	}

	c.Start()
	log.Println("Task nudge scheduler started")
}

func (s *NudgeService) SendDailyNudges() {
	log.Println("Starting overdue task nudge processing...")

	tasks, err := s.overdueTasks()
	if err != nil {
		log.Printf("Failed to fetch overdue tasks: %v", err)
		return
	}

	byAssignee := make(map[string][]models.Task)
	for _, t := range tasks {
		byAssignee[t.AssigneeID] = append(byAssignee[t.AssigneeID], t)
	}

	for assigneeID, overdue := range byAssignee {
		s.nudgeAssignee(assigneeID, overdue)
	}

	log.Println("Overdue task nudge processing completed")
}

func (s *NudgeService) overdueTasks() ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.
		Where("completed = ? AND due_date IS NOT NULL AND due_date < ?", false, time.Now()).
		Find(&tasks).Error
	return tasks, err
}

func (s *NudgeService) nudgeAssignee(assigneeID string, tasks []models.Task) {
	var user models.User
	if err := s.db.First(&user, "id = ?", assigneeID).Error; err != nil {
		// Dangling assignee reference; skip, readers tolerate these.
		log.Printf("No user found for assignee %s, skipping nudge", assigneeID)
		return
	}
	if user.Phone == "" {
		log.Printf("User %s has no phone number, skipping nudge", user.ID)
		return
	}

	oldest := tasks[0]
	for _, t := range tasks[1:] {
		if t.DueDate.Before(*oldest.DueDate) {
			oldest = t
		}
	}
	body := fmt.Sprintf("Hi %s, you have %d overdue task(s) in CRMHub. Oldest: %q, %d day(s) overdue.",
		user.Name, len(tasks), oldest.Title, utils.DaysBetween(*oldest.DueDate, time.Now()))

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(user.Phone)
	params.SetFrom(s.from)
	params.SetBody(body)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		log.Printf("Failed to send nudge SMS to %s: %v", user.Phone, err)
		return
	}

	// Record the nudge in the audit trail; a failure here is logged only.
	for _, t := range tasks {
		activity := models.Activity{
			Type:       "task_nudge",
			Title:      "Overdue task nudge sent",
			Description: fmt.Sprintf("Nudged %s about task %q", user.Name, t.Title),
			EntityType: models.EntityTask,
			EntityID:   t.ID.String(),
		}
		if err := s.db.Create(&activity).Error; err != nil {
			log.Printf("Failed to record nudge activity for task %s: %v", t.ID, err)
		}
	}
}
