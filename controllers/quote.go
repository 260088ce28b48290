package controllers

import (
	"crmhub-backend/config"
	"crmhub-backend/models"
	"crmhub-backend/utils"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type QuoteItemInput struct {
	Name     string  `json:"name" binding:"required"`
	Quantity int     `json:"quantity"`
	Rate     float64 `json:"rate"`
}

type CreateQuoteInput struct {
	QuoteNumber   string           `json:"quoteNumber" binding:"required"`
	ClientCompany string           `json:"clientCompany" binding:"required"`
	Items         []QuoteItemInput `json:"items"`
	Tax           float64          `json:"tax"`
	Status        string           `json:"status"`
}

type UpdateQuoteInput struct {
	ClientCompany *string           `json:"clientCompany"`
	Items         *[]QuoteItemInput `json:"items"`
	Tax           *float64          `json:"tax"`
	Status        *string           `json:"status"`
}

// buildQuoteItems computes line totals server-side; client-sent totals are
// ignored.
func buildQuoteItems(inputs []QuoteItemInput) ([]models.QuoteItem, float64) {
	items := make([]models.QuoteItem, 0, len(inputs))
	var subtotal float64
	for _, in := range inputs {
		qty := in.Quantity
		if qty <= 0 {
			qty = 1
		}
		total := float64(qty) * in.Rate
		items = append(items, models.QuoteItem{
			Name:     in.Name,
			Quantity: qty,
			Rate:     in.Rate,
			Total:    total,
		})
		subtotal += total
	}
	return items, subtotal
}

func CreateQuote(c *gin.Context) {
	var input CreateQuoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Status != "" && !models.ValidQuoteStatus(input.Status) {
		utils.RespondWithError(c, http.StatusBadRequest, "status must be one of Draft, Sent, Accepted, Rejected")
		return
	}

	var existing models.Quote
	if err := config.DB.Where("quote_number = ?", input.QuoteNumber).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Quote with this number already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	items, subtotal := buildQuoteItems(input.Items)
	quote := models.Quote{
		QuoteNumber:   input.QuoteNumber,
		ClientCompany: input.ClientCompany,
		Subtotal:      subtotal,
		Tax:           input.Tax,
		Total:         subtotal + input.Tax,
		Status:        input.Status,
		Items:         items,
	}
	if quote.Status == "" {
		quote.Status = "Draft"
	}

	if err := config.DB.Create(&quote).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create quote")
		return
	}

	utils.RespondCreated(c, quote, "Quote created successfully")
}

func GetQuotes(c *gin.Context) {
	query := config.DB.Model(&models.Quote{}).Preload("Items")
	query = utils.ApplyExact(query, "status", c.Query("status"))
	query = utils.ApplySubstring(query, "client_company", c.Query("clientCompany"))

	page := utils.ParsePage(c)
	var quotes []models.Quote
	filtered, err := utils.FetchPage(query, &quotes, page)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve quotes")
		return
	}

	var total int64
	if err := config.DB.Model(&models.Quote{}).Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	totals := make([]float64, 0, len(quotes))
	statuses := make([]string, 0, len(quotes))
	for _, q := range quotes {
		totals = append(totals, q.Total)
		statuses = append(statuses, q.Status)
	}
	summary := gin.H{
		"totalAmount": utils.SumFloat(totals),
		"avgAmount":   utils.AvgFloat(totals),
		"byStatus":    utils.CountBy(statuses),
	}

	c.JSON(http.StatusOK, utils.ListResponse(quotes, total, filtered, utils.HasMore(page, filtered), summary))
}

func GetQuote(c *gin.Context) {
	quoteID, ok := utils.ParseNativeID(c.Param("id"))
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid quote ID format")
		return
	}

	var quote models.Quote
	if err := config.DB.Preload("Items").First(&quote, "id = ?", quoteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Quote not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	utils.RespondWithData(c, http.StatusOK, quote)
}

func UpdateQuote(c *gin.Context) {
	quoteID, ok := utils.ParseNativeID(c.Param("id"))
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid quote ID format")
		return
	}

	var input UpdateQuoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var quote models.Quote
	if err := config.DB.Preload("Items").First(&quote, "id = ?", quoteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Quote not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.ClientCompany != nil {
		if strings.TrimSpace(*input.ClientCompany) == "" {
			utils.RespondWithError(c, http.StatusBadRequest, "clientCompany cannot be empty")
			return
		}
		quote.ClientCompany = *input.ClientCompany
	}
	if input.Status != nil {
		if !models.ValidQuoteStatus(*input.Status) {
			utils.RespondWithError(c, http.StatusBadRequest, "status must be one of Draft, Sent, Accepted, Rejected")
			return
		}
		quote.Status = *input.Status
	}
	if input.Tax != nil {
		quote.Tax = *input.Tax
	}
	if input.Items != nil {
		items, subtotal := buildQuoteItems(*input.Items)
		// Replace line items wholesale; partial item edits are not supported.
		if err := config.DB.Where("quote_id = ?", quote.ID).Delete(&models.QuoteItem{}).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update quote items")
			return
		}
		for i := range items {
			items[i].QuoteID = quote.ID
		}
		quote.Items = items
		quote.Subtotal = subtotal
	}
	quote.Total = quote.Subtotal + quote.Tax

	if err := config.DB.Save(&quote).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update quote")
		return
	}

	utils.RespondWithData(c, http.StatusOK, quote)
}

func DeleteQuote(c *gin.Context) {
	quoteID, ok := utils.ParseNativeID(c.Param("id"))
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid quote ID format")
		return
	}

	result := config.DB.Where("id = ?", quoteID).Delete(&models.Quote{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete quote")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Quote not found")
		return
	}

	// Line items are left behind intentionally; no cascading deletes.
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Quote deleted successfully"})
}
