package controllers

import (
	"crmhub-backend/config"
	"crmhub-backend/models"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateActivityValidatesEntityType(t *testing.T) {
	setupTestDB(t)
	r := testRouter()

	w := doJSON(t, r, "POST", "/api/activities", map[string]interface{}{
		"type":       "call",
		"title":      "Called someone",
		"entityType": "spaceship",
		"entityId":   "x",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateActivityDanglingReferenceAccepted(t *testing.T) {
	setupTestDB(t)
	r := testRouter()

	// The referenced contact does not exist; readers must tolerate this
	w := doJSON(t, r, "POST", "/api/activities", map[string]interface{}{
		"type":       "call",
		"title":      "Called someone",
		"entityType": "contact",
		"entityId":   "6a7e36cc-2f39-4a65-9e44-1b1a9a1a9a1a",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var activity models.Activity
	require.NoError(t, config.DB.First(&activity).Error)
	assert.Equal(t, models.EntityContact, activity.EntityType)
	assert.False(t, activity.Timestamp.IsZero())
}

func TestListActivitiesEntityFilter(t *testing.T) {
	setupTestDB(t)
	r := testRouter()

	records := []models.Activity{
		{Type: "call", Title: "a", EntityType: models.EntityContact, EntityID: "c-1"},
		{Type: "email", Title: "b", EntityType: models.EntityDeal, EntityID: "d-1"},
		{Type: "call", Title: "c", EntityType: models.EntityContact, EntityID: "c-2"},
	}
	for i := range records {
		require.NoError(t, config.DB.Create(&records[i]).Error)
	}

	w := doJSON(t, r, "GET", "/api/activities?entityType=contact", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.EqualValues(t, 2, body["filtered"])
	assert.EqualValues(t, 3, body["total"])
}

func TestActivityLoggingFailureDoesNotFailPrimaryWrite(t *testing.T) {
	setupTestDB(t)
	r := testRouter()

	// Sabotage the audit table; the contact create must still succeed
	require.NoError(t, config.DB.Migrator().DropTable(&models.Activity{}))

	w := doJSON(t, r, "POST", "/api/contacts", map[string]interface{}{
		"name": "Ada", "email": "ada@example.com",
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var count int64
	config.DB.Model(&models.Contact{}).Count(&count)
	assert.EqualValues(t, 1, count)
}
