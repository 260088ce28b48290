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

type CreateCompanyInput struct {
	Name         string            `json:"name" binding:"required"`
	Industry     string            `json:"industry"`
	EstimatedARR *float64          `json:"estimatedARR"`
	Employees    *int              `json:"employees"`
	Status       string            `json:"status"`
	ContactIDs   models.StringList `json:"contactIds"`
	DealIDs      models.StringList `json:"dealIds"`
}

type UpdateCompanyInput struct {
	Name         *string            `json:"name"`
	Industry     *string            `json:"industry"`
	EstimatedARR *float64           `json:"estimatedARR"`
	Employees    *int               `json:"employees"`
	Status       *string            `json:"status"`
	ContactIDs   *models.StringList `json:"contactIds"`
	DealIDs      *models.StringList `json:"dealIds"`
}

func CreateCompany(c *gin.Context) {
	var input CreateCompanyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	company := models.Company{
		Name:       input.Name,
		Industry:   input.Industry,
		Status:     input.Status,
		ContactIDs: input.ContactIDs,
		DealIDs:    input.DealIDs,
	}
	if input.EstimatedARR != nil {
		if *input.EstimatedARR < 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "estimatedARR must be non-negative")
			return
		}
		company.EstimatedARR = *input.EstimatedARR
	}
	if input.Employees != nil {
		if *input.Employees < 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "employees must be non-negative")
			return
		}
		company.Employees = *input.Employees
	}
	if company.Status == "" {
		company.Status = "Prospect"
	}
	if company.ContactIDs == nil {
		company.ContactIDs = models.StringList{}
	}
	if company.DealIDs == nil {
		company.DealIDs = models.StringList{}
	}

	if err := config.DB.Create(&company).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create company")
		return
	}

	utils.RespondCreated(c, company, "Company created successfully")
}

func GetCompanies(c *gin.Context) {
	query := config.DB.Model(&models.Company{})
	query = utils.ApplyExact(query, "industry", c.Query("industry"))
	query = utils.ApplyExact(query, "status", c.Query("status"))
	query = utils.ApplySubstring(query, "name", c.Query("name"))
	query = utils.ApplyIntRange(query, "employees", c.Query("minEmployees"), c.Query("maxEmployees"))

	page := utils.ParsePage(c)
	var companies []models.Company
	filtered, err := utils.FetchPage(query, &companies, page)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve companies")
		return
	}

	var total int64
	if err := config.DB.Model(&models.Company{}).Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	arrs := make([]float64, 0, len(companies))
	industries := make([]string, 0, len(companies))
	for _, co := range companies {
		arrs = append(arrs, co.EstimatedARR)
		industries = append(industries, co.Industry)
	}
	summary := gin.H{
		"totalARR":   utils.SumFloat(arrs),
		"avgARR":     utils.AvgFloat(arrs),
		"byIndustry": utils.CountBy(industries),
	}

	c.JSON(http.StatusOK, utils.ListResponse(companies, total, filtered, utils.HasMore(page, filtered), summary))
}

func GetCompany(c *gin.Context) {
	companyID, ok := utils.ParseNativeID(c.Param("id"))
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid company ID format")
		return
	}

	var company models.Company
	if err := config.DB.First(&company, "id = ?", companyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Company not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	utils.RespondWithData(c, http.StatusOK, company)
}

func UpdateCompany(c *gin.Context) {
	companyID, ok := utils.ParseNativeID(c.Param("id"))
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid company ID format")
		return
	}

	var input UpdateCompanyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var company models.Company
	if err := config.DB.First(&company, "id = ?", companyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Company not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			utils.RespondWithError(c, http.StatusBadRequest, "Name cannot be empty")
			return
		}
		company.Name = *input.Name
	}
	if input.Industry != nil {
		company.Industry = *input.Industry
	}
	if input.EstimatedARR != nil {
		if *input.EstimatedARR < 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "estimatedARR must be non-negative")
			return
		}
		company.EstimatedARR = *input.EstimatedARR
	}
	if input.Employees != nil {
		if *input.Employees < 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "employees must be non-negative")
			return
		}
		company.Employees = *input.Employees
	}
	if input.Status != nil {
		company.Status = *input.Status
	}
	if input.ContactIDs != nil {
		company.ContactIDs = *input.ContactIDs
	}
	if input.DealIDs != nil {
		company.DealIDs = *input.DealIDs
	}

	if err := config.DB.Save(&company).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update company")
		return
	}

	utils.RespondWithData(c, http.StatusOK, company)
}

func DeleteCompany(c *gin.Context) {
	companyID, ok := utils.ParseNativeID(c.Param("id"))
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid company ID format")
		return
	}

	result := config.DB.Where("id = ?", companyID).Delete(&models.Company{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete company")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Company not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Company deleted successfully"})
}
