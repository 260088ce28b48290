package controllers

import (
	"crmhub-backend/config"
	"crmhub-backend/models"
	"crmhub-backend/utils"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateContactInput defines the expected JSON structure for creating a contact
type CreateContactInput struct {
	Name     string            `json:"name" binding:"required"`
	Email    string            `json:"email" binding:"required,email"`
	Phone    string            `json:"phone"`
	Company  string            `json:"company"`
	Position string            `json:"position"`
	Status   string            `json:"status"`
	Tags     models.StringList `json:"tags"`
	OwnerID  string            `json:"ownerId"`
}

// UpdateContactInput uses pointers so omitted fields stay untouched
type UpdateContactInput struct {
	Name     *string            `json:"name"`
	Email    *string            `json:"email"`
	Phone    *string            `json:"phone"`
	Company  *string            `json:"company"`
	Position *string            `json:"position"`
	Status   *string            `json:"status"`
	Tags     *models.StringList `json:"tags"`
	OwnerID  *string            `json:"ownerId"`
}

// CreateContact creates a new contact and records the event as an activity
func CreateContact(c *gin.Context) {
	var input CreateContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	// Email must be unique across contacts
	var existing models.Contact
	if err := config.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Contact with this email already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	contact := models.Contact{
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Company:  input.Company,
		Position: input.Position,
		Status:   input.Status,
		Tags:     input.Tags,
		OwnerID:  utils.NormalizeRef(input.OwnerID),
	}
	if contact.Status == "" {
		contact.Status = "Lead"
	}
	if contact.Tags == nil {
		contact.Tags = models.StringList{}
	}

	if err := config.DB.Create(&contact).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create contact")
		return
	}

	logActivity("contact_created", "New contact added", "Contact "+contact.Name+" was created", models.EntityContact, contact.ID.String())
	config.InvalidateDashboard(c.Request.Context())

	utils.RespondCreated(c, contact, "Contact created successfully")
}

// GetContacts lists contacts with optional filters, pagination and rollups
func GetContacts(c *gin.Context) {
	query := config.DB.Model(&models.Contact{})
	query = utils.ApplyExact(query, "status", c.Query("status"))
	query = utils.ApplySubstring(query, "company", c.Query("company"))
	query = utils.ApplyRef(query, "owner_id", c.Query("ownerId"))

	page := utils.ParsePage(c)
	var contacts []models.Contact
	filtered, err := utils.FetchPage(query, &contacts, page)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve contacts")
		return
	}

	var total int64
	if err := config.DB.Model(&models.Contact{}).Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	statuses := make([]string, 0, len(contacts))
	for _, ct := range contacts {
		statuses = append(statuses, ct.Status)
	}
	summary := gin.H{"byStatus": utils.CountBy(statuses)}

	c.JSON(http.StatusOK, utils.ListResponse(contacts, total, filtered, utils.HasMore(page, filtered), summary))
}

// GetContact retrieves a specific contact by ID
func GetContact(c *gin.Context) {
	contactID, ok := utils.ParseNativeID(c.Param("id"))
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid contact ID format")
		return
	}

	var contact models.Contact
	if err := config.DB.First(&contact, "id = ?", contactID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Contact not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	utils.RespondWithData(c, http.StatusOK, contact)
}

// UpdateContact applies a sparse update; only supplied fields change
func UpdateContact(c *gin.Context) {
	contactID, ok := utils.ParseNativeID(c.Param("id"))
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid contact ID format")
		return
	}

	var input UpdateContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var contact models.Contact
	if err := config.DB.First(&contact, "id = ?", contactID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Contact not found")
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
		contact.Name = *input.Name
	}
	if input.Email != nil {
		if strings.TrimSpace(*input.Email) == "" {
			utils.RespondWithError(c, http.StatusBadRequest, "Email cannot be empty")
			return
		}
		if contact.Email != *input.Email {
			var existing models.Contact
			if err := config.DB.Where("email = ?", *input.Email).First(&existing).Error; err == nil {
				utils.RespondWithError(c, http.StatusConflict, "Another contact with this email already exists")
				return
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
				return
			}
		}
		contact.Email = *input.Email
	}
	if input.Phone != nil {
		if *input.Phone != "" && !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		contact.Phone = *input.Phone
	}
	if input.Company != nil {
		contact.Company = *input.Company
	}
	if input.Position != nil {
		contact.Position = *input.Position
	}
	if input.Status != nil {
		contact.Status = *input.Status
	}
	if input.Tags != nil {
		contact.Tags = *input.Tags
	}
	if input.OwnerID != nil {
		contact.OwnerID = utils.NormalizeRef(*input.OwnerID)
	}

	if err := config.DB.Save(&contact).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update contact")
		return
	}

	config.InvalidateDashboard(c.Request.Context())
	utils.RespondWithData(c, http.StatusOK, contact)
}

// DeleteContact removes a contact; dependents keep their now-dangling references
func DeleteContact(c *gin.Context) {
	contactID, ok := utils.ParseNativeID(c.Param("id"))
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid contact ID format")
		return
	}

	result := config.DB.Where("id = ?", contactID).Delete(&models.Contact{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete contact")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Contact not found")
		return
	}

	config.InvalidateDashboard(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Contact deleted successfully"})
}

// logActivity appends an audit record for business-significant writes.
// A failure here must never fail the primary operation.
func logActivity(activityType, title, description, entityType, entityID string) {
	activity := models.Activity{
		Type:        activityType,
		Title:       title,
		Description: description,
		EntityType:  entityType,
		EntityID:    entityID,
	}
	if err := config.DB.Create(&activity).Error; err != nil {
		log.Printf("Failed to record activity %s for %s %s: %v", activityType, entityType, entityID, err)
	}
}
