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

type CreateUserInput struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
	Phone      string `json:"phone"`
	Role       string `json:"role"`
	Department string `json:"department"`
	Status     string `json:"status"`
}

type UpdateUserInput struct {
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Role       *string `json:"role"`
	Department *string `json:"department"`
	Status     *string `json:"status"`
}

// userView carries the derived workload counters alongside the stored user.
// tasksAssigned and totalRevenue are computed from the task and deal tables
// on every read, nothing persists them.
type userView struct {
	models.User
	TasksAssigned int64   `json:"tasksAssigned"`
	TotalRevenue  float64 `json:"totalRevenue"`
}

func deriveCounters(u models.User) userView {
	view := userView{User: u}
	config.DB.Model(&models.Task{}).Where("assignee_id = ?", u.ID.String()).Count(&view.TasksAssigned)
	config.DB.Model(&models.Deal{}).Where("assignee_id = ?", u.ID.String()).
		Select("COALESCE(SUM(value), 0)").Scan(&view.TotalRevenue)
	return view
}

func CreateUser(c *gin.Context) {
	var input CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	var existing models.User
	if err := config.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "User with this email already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	user := models.User{
		Name:       input.Name,
		Email:      input.Email,
		Password:   input.Password, // Hashed in BeforeCreate hook
		Phone:      input.Phone,
		Role:       input.Role,
		Department: input.Department,
		Status:     input.Status,
	}
	if user.Role == "" {
		user.Role = "rep"
	}
	if user.Status == "" {
		user.Status = "active"
	}

	if err := config.DB.Create(&user).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	utils.RespondCreated(c, user, "User created successfully")
}

func GetUsers(c *gin.Context) {
	query := config.DB.Model(&models.User{})
	query = utils.ApplyExact(query, "role", c.Query("role"))
	query = utils.ApplyExact(query, "status", c.Query("status"))
	query = utils.ApplyExact(query, "department", c.Query("department"))

	page := utils.ParsePage(c)
	var users []models.User
	filtered, err := utils.FetchPage(query, &users, page)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve users")
		return
	}

	var total int64
	if err := config.DB.Model(&models.User{}).Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	views := make([]userView, 0, len(users))
	roles := make([]string, 0, len(users))
	for _, u := range users {
		views = append(views, deriveCounters(u))
		roles = append(roles, u.Role)
	}
	summary := gin.H{"byRole": utils.CountBy(roles)}

	c.JSON(http.StatusOK, utils.ListResponse(views, total, filtered, utils.HasMore(page, filtered), summary))
}

func GetUser(c *gin.Context) {
	userID, ok := utils.ParseNativeID(c.Param("id"))
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "User not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	utils.RespondWithData(c, http.StatusOK, deriveCounters(user))
}

func UpdateUser(c *gin.Context) {
	userID, ok := utils.ParseNativeID(c.Param("id"))
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	var input UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "User not found")
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
		user.Name = *input.Name
	}
	if input.Email != nil {
		if strings.TrimSpace(*input.Email) == "" {
			utils.RespondWithError(c, http.StatusBadRequest, "Email cannot be empty")
			return
		}
		if user.Email != *input.Email {
			var existing models.User
			if err := config.DB.Where("email = ?", *input.Email).First(&existing).Error; err == nil {
				utils.RespondWithError(c, http.StatusConflict, "Another user with this email already exists")
				return
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
				return
			}
		}
		user.Email = *input.Email
	}
	if input.Phone != nil {
		if *input.Phone != "" && !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		user.Phone = *input.Phone
	}
	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.Department != nil {
		user.Department = *input.Department
	}
	if input.Status != nil {
		user.Status = *input.Status
	}

	// Save would re-run the create hook on a zero-value password; update
	// columns explicitly instead.
	if err := config.DB.Model(&user).Updates(map[string]interface{}{
		"name":       user.Name,
		"email":      user.Email,
		"phone":      user.Phone,
		"role":       user.Role,
		"department": user.Department,
		"status":     user.Status,
	}).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update user")
		return
	}

	utils.RespondWithData(c, http.StatusOK, deriveCounters(user))
}

func DeleteUser(c *gin.Context) {
	userID, ok := utils.ParseNativeID(c.Param("id"))
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	result := config.DB.Where("id = ?", userID).Delete(&models.User{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete user")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User deleted successfully"})
}
