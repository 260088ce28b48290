package controllers

import (
	"context"
	"crmhub-backend/config"
	"crmhub-backend/models"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestCache(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	config.Cache = &config.CacheClient{
		Redis: redis.NewClient(&redis.Options{Addr: mr.Addr()}),
	}
	t.Cleanup(func() { config.Cache = nil })
	return mr
}

func TestDashboardOverviewCounts(t *testing.T) {
	setupTestDB(t)
	r := testRouter()

	require.NoError(t, config.DB.Create(&models.Contact{Name: "A", Email: "a@example.com"}).Error)
	require.NoError(t, config.DB.Create(&models.Deal{Title: "open", Company: "C", Value: 500, Stage: "Lead"}).Error)
	require.NoError(t, config.DB.Create(&models.Deal{Title: "won", Company: "C", Value: 2000, Stage: "Closed Won"}).Error)
	past := time.Now().Add(-time.Hour)
	require.NoError(t, config.DB.Create(&models.Task{Title: "late", AssigneeID: "x", DueDate: &past}).Error)

	w := doJSON(t, r, "GET", "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	data := body["data"].(map[string]interface{})
	assert.EqualValues(t, 1, data["totalContacts"])
	assert.EqualValues(t, 2, data["totalDeals"])
	assert.EqualValues(t, 500, data["pipelineValue"])
	assert.EqualValues(t, 2000, data["wonValue"])
	assert.EqualValues(t, 1, data["openTasks"])
	assert.EqualValues(t, 1, data["overdueTasks"])
}

func TestDashboardReadThroughCache(t *testing.T) {
	setupTestDB(t)
	mr := setupTestCache(t)
	r := testRouter()

	// First read populates the cache
	w := doJSON(t, r, "GET", "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeBody(t, w)["cached"])
	assert.True(t, mr.Exists(config.DashboardCacheKey))

	// Second read is served from it
	w = doJSON(t, r, "GET", "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["cached"])
}

func TestDashboardCacheInvalidatedByDealWrite(t *testing.T) {
	setupTestDB(t)
	mr := setupTestCache(t)
	r := testRouter()

	w := doJSON(t, r, "GET", "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, mr.Exists(config.DashboardCacheKey))

	// A successful write drops the cached overview
	w = doJSON(t, r, "POST", "/api/deals", map[string]interface{}{
		"title": "X", "company": "Y", "value": 1000,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.False(t, mr.Exists(config.DashboardCacheKey))

	// Next read rebuilds with the new deal included
	w = doJSON(t, r, "GET", "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["cached"])
	data := body["data"].(map[string]interface{})
	assert.EqualValues(t, 1, data["totalDeals"])
}

func TestCacheInvalidateHelperNilSafe(t *testing.T) {
	config.Cache = nil
	// Must not panic with caching disabled
	config.InvalidateDashboard(context.Background())
}

func TestHealthCheck(t *testing.T) {
	setupTestDB(t)
	r := testRouter()

	w := doJSON(t, r, "GET", "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "healthy", body["status"])

	// Write probe leaves nothing behind
	var count int64
	config.DB.Model(&models.HealthProbe{}).Count(&count)
	assert.EqualValues(t, 0, count)
}
