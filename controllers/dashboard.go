package controllers

import (
	"crmhub-backend/config"
	"crmhub-backend/models"
	"crmhub-backend/utils"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type DashboardOverview struct {
	TotalContacts    int64             `json:"totalContacts"`
	TotalCompanies   int64             `json:"totalCompanies"`
	TotalDeals       int64             `json:"totalDeals"`
	PipelineValue    float64           `json:"pipelineValue"`
	WonValue         float64           `json:"wonValue"`
	OpenTasks        int64             `json:"openTasks"`
	OverdueTasks     int64             `json:"overdueTasks"`
	DealsByStage     map[string]int    `json:"dealsByStage"`
	RecentActivities []models.Activity `json:"recentActivities"`
	GeneratedAt      time.Time         `json:"generatedAt"`
}

// GetDashboardOverview serves the cross-entity overview. The payload is
// read through the redis cache; entity write handlers invalidate it, so a
// stale entry only survives until the next significant write or TTL.
func GetDashboardOverview(c *gin.Context) {
	ctx := c.Request.Context()

	if cached, ok := config.Cache.Get(ctx, config.DashboardCacheKey); ok {
		var overview DashboardOverview
		if err := json.Unmarshal([]byte(cached), &overview); err == nil {
			c.JSON(http.StatusOK, gin.H{"success": true, "data": overview, "cached": true})
			return
		}
	}

	overview, err := buildDashboardOverview()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to build dashboard")
		return
	}

	if payload, err := json.Marshal(overview); err == nil {
		config.Cache.Set(ctx, config.DashboardCacheKey, string(payload), config.DashboardCacheTTL)
	} else {
		log.Printf("Failed to marshal dashboard payload for caching: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": overview, "cached": false})
}

func buildDashboardOverview() (DashboardOverview, error) {
	overview := DashboardOverview{GeneratedAt: time.Now()}

	if err := config.DB.Model(&models.Contact{}).Count(&overview.TotalContacts).Error; err != nil {
		return overview, err
	}
	if err := config.DB.Model(&models.Company{}).Count(&overview.TotalCompanies).Error; err != nil {
		return overview, err
	}
	if err := config.DB.Model(&models.Deal{}).Count(&overview.TotalDeals).Error; err != nil {
		return overview, err
	}

	if err := config.DB.Model(&models.Deal{}).
		Where("stage NOT IN ?", []string{"Closed Won", "Closed Lost"}).
		Select("COALESCE(SUM(value), 0)").Scan(&overview.PipelineValue).Error; err != nil {
		return overview, err
	}
	if err := config.DB.Model(&models.Deal{}).
		Where("stage = ?", "Closed Won").
		Select("COALESCE(SUM(value), 0)").Scan(&overview.WonValue).Error; err != nil {
		return overview, err
	}

	if err := config.DB.Model(&models.Task{}).
		Where("completed = ?", false).Count(&overview.OpenTasks).Error; err != nil {
		return overview, err
	}
	if err := config.DB.Model(&models.Task{}).
		Where("completed = ? AND due_date IS NOT NULL AND due_date < ?", false, time.Now()).
		Count(&overview.OverdueTasks).Error; err != nil {
		return overview, err
	}

	var deals []models.Deal
	if err := config.DB.Select("stage").Find(&deals).Error; err != nil {
		return overview, err
	}
	stages := make([]string, 0, len(deals))
	for _, d := range deals {
		stages = append(stages, d.Stage)
	}
	overview.DealsByStage = utils.CountBy(stages)

	if err := config.DB.Order("timestamp DESC, id DESC").Limit(5).
		Find(&overview.RecentActivities).Error; err != nil {
		return overview, err
	}
	if overview.RecentActivities == nil {
		overview.RecentActivities = []models.Activity{}
	}

	return overview, nil
}
