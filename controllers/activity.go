package controllers

import (
	"crmhub-backend/config"
	"crmhub-backend/models"
	"crmhub-backend/utils"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Activities are an append-only audit trail: create and read only, no
// update or delete routes.

type CreateActivityInput struct {
	Type        string     `json:"type" binding:"required"`
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Timestamp   *time.Time `json:"timestamp"`
	EntityType  string     `json:"entityType"`
	EntityID    string     `json:"entityId"`
}

func CreateActivity(c *gin.Context) {
	var input CreateActivityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// The tag is validated against the closed set even though the
	// referenced document is never checked for existence.
	if input.EntityType != "" && !models.ValidEntityType(input.EntityType) {
		utils.RespondWithError(c, http.StatusBadRequest, "entityType must be one of contact, deal, task, company")
		return
	}

	activity := models.Activity{
		Type:        input.Type,
		Title:       input.Title,
		Description: input.Description,
		EntityType:  input.EntityType,
		EntityID:    utils.NormalizeRef(input.EntityID),
	}
	if input.Timestamp != nil {
		activity.Timestamp = *input.Timestamp
	}

	if err := config.DB.Create(&activity).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create activity")
		return
	}

	utils.RespondCreated(c, activity, "Activity recorded")
}

func GetActivities(c *gin.Context) {
	query := config.DB.Model(&models.Activity{})
	query = utils.ApplyExact(query, "type", c.Query("type"))
	query = utils.ApplyExact(query, "entity_type", c.Query("entityType"))
	query = utils.ApplyRef(query, "entity_id", c.Query("entityId"))

	page := utils.ParsePage(c)
	var activities []models.Activity
	filtered, err := utils.FetchPage(query, &activities, page)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve activities")
		return
	}

	var total int64
	if err := config.DB.Model(&models.Activity{}).Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	types := make([]string, 0, len(activities))
	for _, a := range activities {
		types = append(types, a.Type)
	}
	summary := gin.H{"byType": utils.CountBy(types)}

	c.JSON(http.StatusOK, utils.ListResponse(activities, total, filtered, utils.HasMore(page, filtered), summary))
}

func GetActivity(c *gin.Context) {
	activityID, ok := utils.ParseNativeID(c.Param("id"))
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid activity ID format")
		return
	}

	var activity models.Activity
	if err := config.DB.First(&activity, "id = ?", activityID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Activity not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	utils.RespondWithData(c, http.StatusOK, activity)
}
