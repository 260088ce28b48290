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

type CreateDealInput struct {
	Title       string     `json:"title" binding:"required"`
	Company     string     `json:"company" binding:"required"`
	Value       *float64   `json:"value" binding:"required"`
	Stage       string     `json:"stage"`
	Probability *int       `json:"probability"`
	CloseDate   *time.Time `json:"closeDate"`
	ContactID   string     `json:"contactId"`
	AssigneeID  string     `json:"assigneeId"`
}

type UpdateDealInput struct {
	Title       *string    `json:"title"`
	Company     *string    `json:"company"`
	Value       *float64   `json:"value"`
	Stage       *string    `json:"stage"`
	Probability *int       `json:"probability"`
	CloseDate   *time.Time `json:"closeDate"`
	ContactID   *string    `json:"contactId"`
	AssigneeID  *string    `json:"assigneeId"`
}

// CreateDeal creates a new deal with documented defaults and records the
// event as an activity
func CreateDeal(c *gin.Context) {
	var input CreateDealInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if *input.Value < 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "value must be non-negative")
		return
	}

	deal := models.Deal{
		Title:      input.Title,
		Company:    input.Company,
		Value:      *input.Value,
		Stage:      input.Stage,
		ContactID:  utils.NormalizeRef(input.ContactID),
		AssigneeID: utils.NormalizeRef(input.AssigneeID),
	}
	if deal.Stage == "" {
		deal.Stage = "Lead"
	}
	if input.Probability != nil {
		deal.Probability = *input.Probability
	} else {
		deal.Probability = 25
	}
	if input.CloseDate != nil {
		deal.CloseDate = *input.CloseDate
	} else {
		deal.CloseDate = time.Now().AddDate(0, 0, 30)
	}
	deal.AssigneeName = lookupAssigneeName(deal.AssigneeID)

	if err := config.DB.Create(&deal).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create deal")
		return
	}

	logActivity("deal_created", "New deal added", "Deal "+deal.Title+" was created for "+deal.Company, models.EntityDeal, deal.ID.String())
	config.InvalidateDashboard(c.Request.Context())

	utils.RespondCreated(c, deal, "Deal created successfully")
}

// GetDeals lists deals with optional filters, pagination and pipeline rollups
func GetDeals(c *gin.Context) {
	query := config.DB.Model(&models.Deal{})
	query = utils.ApplyExact(query, "stage", c.Query("stage"))
	query = utils.ApplySubstring(query, "company", c.Query("company"))
	query = utils.ApplyRef(query, "assignee_id", c.Query("assigneeId"))
	query = utils.ApplyRef(query, "contact_id", c.Query("contactId"))
	query = utils.ApplyIntRange(query, "value", c.Query("minValue"), c.Query("maxValue"))

	page := utils.ParsePage(c)
	var deals []models.Deal
	filtered, err := utils.FetchPage(query, &deals, page)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve deals")
		return
	}

	var total int64
	if err := config.DB.Model(&models.Deal{}).Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	values := make([]float64, 0, len(deals))
	stages := make([]string, 0, len(deals))
	for _, d := range deals {
		values = append(values, d.Value)
		stages = append(stages, d.Stage)
	}
	summary := gin.H{
		"totalValue": utils.SumFloat(values),
		"avgValue":   utils.AvgFloat(values),
		"byStage":    utils.CountBy(stages),
	}

	c.JSON(http.StatusOK, utils.ListResponse(deals, total, filtered, utils.HasMore(page, filtered), summary))
}

func GetDeal(c *gin.Context) {
	dealID, ok := utils.ParseNativeID(c.Param("id"))
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid deal ID format")
		return
	}

	var deal models.Deal
	if err := config.DB.First(&deal, "id = ?", dealID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Deal not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	utils.RespondWithData(c, http.StatusOK, deal)
}

func UpdateDeal(c *gin.Context) {
	dealID, ok := utils.ParseNativeID(c.Param("id"))
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid deal ID format")
		return
	}

	var input UpdateDealInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var deal models.Deal
	if err := config.DB.First(&deal, "id = ?", dealID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Deal not found")
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
		deal.Title = *input.Title
	}
	if input.Company != nil {
		if strings.TrimSpace(*input.Company) == "" {
			utils.RespondWithError(c, http.StatusBadRequest, "Company cannot be empty")
			return
		}
		deal.Company = *input.Company
	}
	if input.Value != nil {
		if *input.Value < 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "value must be non-negative")
			return
		}
		deal.Value = *input.Value
	}
	if input.Stage != nil {
		// Free-form label; no transition rules enforced.
		deal.Stage = *input.Stage
	}
	if input.Probability != nil {
		deal.Probability = *input.Probability
	}
	if input.CloseDate != nil {
		deal.CloseDate = *input.CloseDate
	}
	if input.ContactID != nil {
		deal.ContactID = utils.NormalizeRef(*input.ContactID)
	}
	if input.AssigneeID != nil {
		deal.AssigneeID = utils.NormalizeRef(*input.AssigneeID)
		deal.AssigneeName = lookupAssigneeName(deal.AssigneeID)
	}

	if err := config.DB.Save(&deal).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update deal")
		return
	}

	config.InvalidateDashboard(c.Request.Context())
	utils.RespondWithData(c, http.StatusOK, deal)
}

func DeleteDeal(c *gin.Context) {
	dealID, ok := utils.ParseNativeID(c.Param("id"))
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid deal ID format")
		return
	}

	result := config.DB.Where("id = ?", dealID).Delete(&models.Deal{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete deal")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Deal not found")
		return
	}

	config.InvalidateDashboard(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Deal deleted successfully"})
}

// lookupAssigneeName resolves the display name for an assignee reference.
// Opaque or dangling references resolve to empty, which readers tolerate.
func lookupAssigneeName(assigneeID string) string {
	if assigneeID == "" {
		return ""
	}
	id, ok := utils.ParseNativeID(assigneeID)
	if !ok {
		return ""
	}
	var user models.User
	if err := config.DB.Select("name").First(&user, "id = ?", id).Error; err != nil {
		return ""
	}
	return user.Name
}
