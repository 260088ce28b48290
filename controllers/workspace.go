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

type CreateWorkspaceInput struct {
	Name      string            `json:"name" binding:"required"`
	MemberIDs models.StringList `json:"memberIds"`
}

type UpdateWorkspaceInput struct {
	Name      *string            `json:"name"`
	MemberIDs *models.StringList `json:"memberIds"`
}

// CreateWorkspace is the one access-controlled write: the creator's stored
// role must be admin. The role read and the insert are not transactional
// against a concurrent role change.
func CreateWorkspace(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	creatorID, ok := utils.ParseNativeID(userID.(string))
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid user ID in token")
		return
	}

	var creator models.User
	if err := config.DB.First(&creator, "id = ?", creatorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusForbidden, "Creator not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !strings.EqualFold(creator.Role, "admin") {
		utils.RespondWithError(c, http.StatusForbidden, "Only admins can create workspaces")
		return
	}

	var input CreateWorkspaceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	workspace := models.Workspace{
		Name:      input.Name,
		CreatorID: creator.ID,
		MemberIDs: input.MemberIDs,
	}
	if workspace.MemberIDs == nil {
		workspace.MemberIDs = models.StringList{creator.ID.String()}
	}

	if err := config.DB.Create(&workspace).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create workspace")
		return
	}

	utils.RespondCreated(c, workspace, "Workspace created successfully")
}

func GetWorkspaces(c *gin.Context) {
	query := config.DB.Model(&models.Workspace{})
	query = utils.ApplyRef(query, "creator_id", c.Query("creatorId"))

	page := utils.ParsePage(c)
	var workspaces []models.Workspace
	filtered, err := utils.FetchPage(query, &workspaces, page)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve workspaces")
		return
	}

	var total int64
	if err := config.DB.Model(&models.Workspace{}).Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, utils.ListResponse(workspaces, total, filtered, utils.HasMore(page, filtered), nil))
}

func GetWorkspace(c *gin.Context) {
	workspaceID, ok := utils.ParseNativeID(c.Param("id"))
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid workspace ID format")
		return
	}

	var workspace models.Workspace
	if err := config.DB.First(&workspace, "id = ?", workspaceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Workspace not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	utils.RespondWithData(c, http.StatusOK, workspace)
}

func UpdateWorkspace(c *gin.Context) {
	workspaceID, ok := utils.ParseNativeID(c.Param("id"))
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid workspace ID format")
		return
	}

	var input UpdateWorkspaceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var workspace models.Workspace
	if err := config.DB.First(&workspace, "id = ?", workspaceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Workspace not found")
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
		workspace.Name = *input.Name
	}
	if input.MemberIDs != nil {
		workspace.MemberIDs = *input.MemberIDs
	}

	if err := config.DB.Save(&workspace).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update workspace")
		return
	}

	utils.RespondWithData(c, http.StatusOK, workspace)
}

func DeleteWorkspace(c *gin.Context) {
	workspaceID, ok := utils.ParseNativeID(c.Param("id"))
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid workspace ID format")
		return
	}

	result := config.DB.Where("id = ?", workspaceID).Delete(&models.Workspace{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete workspace")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Workspace not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Workspace deleted successfully"})
}
