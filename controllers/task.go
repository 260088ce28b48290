package controllers

import (
	"crmhub-backend/config"
	"crmhub-backend/models"
	"crmhub-backend/utils"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateTaskInput struct {
	Title      string     `json:"title" binding:"required"`
	AssigneeID string     `json:"assigneeId" binding:"required"`
	Type       string     `json:"type"`
	Priority   string     `json:"priority"`
	DueDate    *time.Time `json:"dueDate"`
	Status     string     `json:"status"`
	ContactID  string     `json:"contactId"`
	DealID     string     `json:"dealId"`
	CompanyID  string     `json:"companyId"`
}

type UpdateTaskInput struct {
	Title      *string    `json:"title"`
	AssigneeID *string    `json:"assigneeId"`
	Type       *string    `json:"type"`
	Priority   *string    `json:"priority"`
	DueDate    *time.Time `json:"dueDate"`
	Completed  *bool      `json:"completed"`
	Status     *string    `json:"status"`
	ContactID  *string    `json:"contactId"`
	DealID     *string    `json:"dealId"`
	CompanyID  *string    `json:"companyId"`
}

func CreateTask(c *gin.Context) {
	var input CreateTaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	task := models.Task{
		Title:      input.Title,
		Type:       input.Type,
		Priority:   input.Priority,
		DueDate:    input.DueDate,
		Status:     input.Status,
		AssigneeID: utils.NormalizeRef(input.AssigneeID),
		ContactID:  utils.NormalizeRef(input.ContactID),
		DealID:     utils.NormalizeRef(input.DealID),
		CompanyID:  utils.NormalizeRef(input.CompanyID),
	}
	if task.Type == "" {
		task.Type = "Follow-up"
	}
	if task.Priority == "" {
		task.Priority = "Medium"
	}
	if task.Status == "" {
		task.Status = "Open"
	}
	task.AssigneeName = lookupAssigneeName(task.AssigneeID)

	if err := config.DB.Create(&task).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create task")
		return
	}

	config.InvalidateDashboard(c.Request.Context())
	utils.RespondCreated(c, task, "Task created successfully")
}

func GetTasks(c *gin.Context) {
	query := config.DB.Model(&models.Task{})
	query = utils.ApplyExact(query, "type", c.Query("type"))
	query = utils.ApplyExact(query, "priority", c.Query("priority"))
	query = utils.ApplyExact(query, "status", c.Query("status"))
	query = utils.ApplyBool(query, "completed", c.Query("completed"))
	query = utils.ApplyRef(query, "assignee_id", c.Query("assigneeId"))
	query = utils.ApplyRef(query, "contact_id", c.Query("contactId"))
	query = utils.ApplyRef(query, "deal_id", c.Query("dealId"))
	query = utils.ApplyRef(query, "company_id", c.Query("companyId"))

	page := utils.ParsePage(c)
	var tasks []models.Task
	filtered, err := utils.FetchPage(query, &tasks, page)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve tasks")
		return
	}

	var total int64
	if err := config.DB.Model(&models.Task{}).Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	now := time.Now()
	overdue := 0
	priorities := make([]string, 0, len(tasks))
	for _, t := range tasks {
		priorities = append(priorities, t.Priority)
		if t.Overdue(now) {
			overdue++
		}
	}
	summary := gin.H{
		"overdue":    overdue,
		"byPriority": utils.CountBy(priorities),
	}

	c.JSON(http.StatusOK, utils.ListResponse(tasks, total, filtered, utils.HasMore(page, filtered), summary))
}

func GetTask(c *gin.Context) {
	taskID, ok := utils.ParseNativeID(c.Param("id"))
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid task ID format")
		return
	}

	var task models.Task
	if err := config.DB.First(&task, "id = ?", taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Task not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	utils.RespondWithData(c, http.StatusOK, task)
}

func UpdateTask(c *gin.Context) {
	taskID, ok := utils.ParseNativeID(c.Param("id"))
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid task ID format")
		return
	}

	var input UpdateTaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var task models.Task
	if err := config.DB.First(&task, "id = ?", taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Task not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			utils.RespondWithError(c, http.StatusBadRequest, "Title cannot be empty")
			return
		}
		task.Title = *input.Title
	}
	if input.AssigneeID != nil {
		if strings.TrimSpace(*input.AssigneeID) == "" {
			utils.RespondWithError(c, http.StatusBadRequest, "assigneeId cannot be empty")
			return
		}
		task.AssigneeID = utils.NormalizeRef(*input.AssigneeID)
		task.AssigneeName = lookupAssigneeName(task.AssigneeID)
	}
	if input.Type != nil {
		task.Type = *input.Type
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.Completed != nil {
		task.Completed = *input.Completed
		if task.Completed {
			task.Status = "Done"
		}
	}
	if input.Status != nil {
		task.Status = *input.Status
	}
	if input.ContactID != nil {
		task.ContactID = utils.NormalizeRef(*input.ContactID)
	}
	if input.DealID != nil {
		task.DealID = utils.NormalizeRef(*input.DealID)
	}
	if input.CompanyID != nil {
		task.CompanyID = utils.NormalizeRef(*input.CompanyID)
	}

	if err := config.DB.Save(&task).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update task")
		return
	}

	config.InvalidateDashboard(c.Request.Context())
	utils.RespondWithData(c, http.StatusOK, task)
}

func DeleteTask(c *gin.Context) {
	taskID, ok := utils.ParseNativeID(c.Param("id"))
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid task ID format")
		return
	}

	result := config.DB.Where("id = ?", taskID).Delete(&models.Task{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete task")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Task not found")
		return
	}

	config.InvalidateDashboard(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Task deleted successfully"})
}
