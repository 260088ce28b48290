package controllers

import (
	"crmhub-backend/config"
	"crmhub-backend/models"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTaskRequiresAssignee(t *testing.T) {
	setupTestDB(t)
	r := testRouter()

	w := doJSON(t, r, "POST", "/api/tasks", map[string]interface{}{
		"title": "Call back",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateTaskDefaults(t *testing.T) {
	setupTestDB(t)
	r := testRouter()

	assignee := mustCreateUser(t, "Grace", "grace@example.com", "rep")

	w := doJSON(t, r, "POST", "/api/tasks", map[string]interface{}{
		"title":      "Call back",
		"assigneeId": assignee.ID.String(),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var task models.Task
	require.NoError(t, config.DB.First(&task).Error)
	assert.Equal(t, "Follow-up", task.Type)
	assert.Equal(t, "Medium", task.Priority)
	assert.Equal(t, "Open", task.Status)
	assert.False(t, task.Completed)
	assert.Equal(t, "Grace", task.AssigneeName)
}

func TestTaskOpaqueAssigneeTolerated(t *testing.T) {
	setupTestDB(t)
	r := testRouter()

	// Legacy identifier: not a native reference, still accepted
	w := doJSON(t, r, "POST", "/api/tasks", map[string]interface{}{
		"title":      "Migrate data",
		"assigneeId": "legacy-user-42",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var task models.Task
	require.NoError(t, config.DB.First(&task).Error)
	assert.Equal(t, "legacy-user-42", task.AssigneeID)
	assert.Equal(t, "", task.AssigneeName)
}

func TestListTasksOverdueSummary(t *testing.T) {
	setupTestDB(t)
	r := testRouter()

	past := time.Now().Add(-48 * time.Hour)
	future := time.Now().Add(48 * time.Hour)

	tasks := []models.Task{
		{Title: "overdue", AssigneeID: "a", DueDate: &past, Completed: false, Priority: "High"},
		{Title: "done late", AssigneeID: "a", DueDate: &past, Completed: true, Priority: "High"},
		{Title: "upcoming", AssigneeID: "a", DueDate: &future, Completed: false, Priority: "Low"},
		{Title: "no due date", AssigneeID: "a", Completed: false, Priority: "Low"},
	}
	for i := range tasks {
		require.NoError(t, config.DB.Create(&tasks[i]).Error)
	}

	w := doJSON(t, r, "GET", "/api/tasks", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	summary := body["summary"].(map[string]interface{})
	// Overdue is derived: incomplete AND dueDate < now
	assert.EqualValues(t, 1, summary["overdue"])

	byPriority := summary["byPriority"].(map[string]interface{})
	assert.EqualValues(t, 2, byPriority["High"])
	assert.EqualValues(t, 2, byPriority["Low"])
}

func TestListTasksCompletedFilter(t *testing.T) {
	setupTestDB(t)
	r := testRouter()

	tasks := []models.Task{
		{Title: "a", AssigneeID: "x", Completed: true},
		{Title: "b", AssigneeID: "x", Completed: false},
		{Title: "c", AssigneeID: "x", Completed: false},
	}
	for i := range tasks {
		require.NoError(t, config.DB.Create(&tasks[i]).Error)
	}

	w := doJSON(t, r, "GET", "/api/tasks?completed=false", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.EqualValues(t, 2, body["filtered"])
	assert.EqualValues(t, 3, body["total"])
}

func TestDeleteTaskLeavesDanglingReferencesInPlace(t *testing.T) {
	setupTestDB(t)
	r := testRouter()

	contact := models.Contact{Name: "Ada", Email: "ada@example.com"}
	require.NoError(t, config.DB.Create(&contact).Error)
	task := models.Task{Title: "t", AssigneeID: "x", ContactID: contact.ID.String()}
	require.NoError(t, config.DB.Create(&task).Error)

	w := doJSON(t, r, "DELETE", "/api/contacts/"+contact.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	// No cascade: the task keeps its now-dangling contact reference
	var kept models.Task
	require.NoError(t, config.DB.First(&kept, "id = ?", task.ID).Error)
	assert.Equal(t, contact.ID.String(), kept.ContactID)

	// And readers still serve it
	w = doJSON(t, r, "GET", "/api/tasks/"+task.ID.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateTaskCompletedMarksStatusDone(t *testing.T) {
	setupTestDB(t)
	r := testRouter()

	task := models.Task{Title: "t", AssigneeID: "x", Status: "Open"}
	require.NoError(t, config.DB.Create(&task).Error)

	w := doJSON(t, r, "PATCH", "/api/tasks/"+task.ID.String(), map[string]interface{}{
		"completed": true,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Task
	require.NoError(t, config.DB.First(&updated, "id = ?", task.ID).Error)
	assert.True(t, updated.Completed)
	assert.Equal(t, "Done", updated.Status)
}
