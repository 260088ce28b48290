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

type CreateNoteInput struct {
	Title      string            `json:"title" binding:"required"`
	Content    string            `json:"content"`
	Client     string            `json:"client"`
	DueDate    *time.Time        `json:"dueDate"`
	IsPinned   bool              `json:"isPinned"`
	Tags       models.StringList `json:"tags"`
	AssigneeID string            `json:"assigneeId"`
}

type UpdateNoteInput struct {
	Title      *string            `json:"title"`
	Content    *string            `json:"content"`
	Client     *string            `json:"client"`
	DueDate    *time.Time         `json:"dueDate"`
	IsPinned   *bool              `json:"isPinned"`
	Tags       *models.StringList `json:"tags"`
	AssigneeID *string            `json:"assigneeId"`
}

func CreateNote(c *gin.Context) {
	var input CreateNoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	note := models.Note{
		Title:      input.Title,
		Content:    input.Content,
		Client:     input.Client,
		DueDate:    input.DueDate,
		IsPinned:   input.IsPinned,
		Tags:       input.Tags,
		AssigneeID: utils.NormalizeRef(input.AssigneeID),
	}
	if note.Tags == nil {
		note.Tags = models.StringList{}
	}

	if err := config.DB.Create(&note).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create note")
		return
	}

	utils.RespondCreated(c, note, "Note created successfully")
}

func GetNotes(c *gin.Context) {
	query := config.DB.Model(&models.Note{})
	query = utils.ApplySubstring(query, "client", c.Query("client"))
	query = utils.ApplyBool(query, "is_pinned", c.Query("isPinned"))
	query = utils.ApplyRef(query, "assignee_id", c.Query("assigneeId"))

	page := utils.ParsePage(c)
	var notes []models.Note
	filtered, err := utils.FetchPage(query, &notes, page)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve notes")
		return
	}

	var total int64
	if err := config.DB.Model(&models.Note{}).Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, utils.ListResponse(notes, total, filtered, utils.HasMore(page, filtered), nil))
}

func GetNote(c *gin.Context) {
	noteID, ok := utils.ParseNativeID(c.Param("id"))
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid note ID format")
		return
	}

	var note models.Note
	if err := config.DB.First(&note, "id = ?", noteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Note not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	utils.RespondWithData(c, http.StatusOK, note)
}

func UpdateNote(c *gin.Context) {
	noteID, ok := utils.ParseNativeID(c.Param("id"))
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid note ID format")
		return
	}

	var input UpdateNoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var note models.Note
	if err := config.DB.First(&note, "id = ?", noteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Note not found")
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
		note.Title = *input.Title
	}
	if input.Content != nil {
		note.Content = *input.Content
	}
	if input.Client != nil {
		note.Client = *input.Client
	}
	if input.DueDate != nil {
		note.DueDate = input.DueDate
	}
	if input.IsPinned != nil {
		note.IsPinned = *input.IsPinned
	}
	if input.Tags != nil {
		note.Tags = *input.Tags
	}
	if input.AssigneeID != nil {
		note.AssigneeID = utils.NormalizeRef(*input.AssigneeID)
	}

	if err := config.DB.Save(&note).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update note")
		return
	}

	utils.RespondWithData(c, http.StatusOK, note)
}

func DeleteNote(c *gin.Context) {
	noteID, ok := utils.ParseNativeID(c.Param("id"))
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid note ID format")
		return
	}

	result := config.DB.Where("id = ?", noteID).Delete(&models.Note{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete note")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Note not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Note deleted successfully"})
}
