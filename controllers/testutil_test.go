package controllers

import (
	"bytes"
	"crmhub-backend/config"
	"crmhub-backend/models"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testUserID is injected into the request context in place of the JWT
// middleware, which has its own tests.
var testUserID string

func setupTestDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Workspace{},
		&models.Contact{},
		&models.Company{},
		&models.Deal{},
		&models.Task{},
		&models.Note{},
		&models.Activity{},
		&models.Quote{},
		&models.QuoteItem{},
		&models.HealthProbe{},
	))

	config.DB = db
	config.Cache = nil
	testUserID = ""
}

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	r.Use(func(c *gin.Context) {
		if testUserID != "" {
			c.Set("userId", testUserID)
		}
		c.Next()
	})

	api := r.Group("/api")
	for entity, h := range map[string]struct {
		create, list, get, update, del gin.HandlerFunc
	}{
		"contacts":   {CreateContact, GetContacts, GetContact, UpdateContact, DeleteContact},
		"companies":  {CreateCompany, GetCompanies, GetCompany, UpdateCompany, DeleteCompany},
		"deals":      {CreateDeal, GetDeals, GetDeal, UpdateDeal, DeleteDeal},
		"tasks":      {CreateTask, GetTasks, GetTask, UpdateTask, DeleteTask},
		"notes":      {CreateNote, GetNotes, GetNote, UpdateNote, DeleteNote},
		"quotes":     {CreateQuote, GetQuotes, GetQuote, UpdateQuote, DeleteQuote},
		"users":      {CreateUser, GetUsers, GetUser, UpdateUser, DeleteUser},
		"workspaces": {CreateWorkspace, GetWorkspaces, GetWorkspace, UpdateWorkspace, DeleteWorkspace},
	} {
		g := api.Group("/" + entity)
		g.POST("", h.create)
		g.GET("", h.list)
		g.GET("/:id", h.get)
		g.PUT("/:id", h.update)
		g.PATCH("/:id", h.update)
		g.DELETE("/:id", h.del)
	}

	activities := api.Group("/activities")
	activities.POST("", CreateActivity)
	activities.GET("", GetActivities)
	activities.GET("/:id", GetActivity)

	api.GET("/dashboard", GetDashboardOverview)
	reportController := ReportController{}
	api.GET("/reports", reportController.GetReportAnalytics)
	r.GET("/health", HealthCheck)

	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// mustCreateUser seeds a user directly through the store.
func mustCreateUser(t *testing.T, name, email, role string) models.User {
	t.Helper()
	user := models.User{
		Name:     name,
		Email:    email,
		Password: "test-password-123",
		Role:     role,
		Status:   "active",
	}
	require.NoError(t, config.DB.Create(&user).Error)
	return user
}
