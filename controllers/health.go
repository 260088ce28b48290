package controllers

import (
	"crmhub-backend/config"
	"crmhub-backend/models"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthCheck pings the store and exercises a round-trip write so the
// probe catches read-only or degraded connections, not just dead ones.
func HealthCheck(c *gin.Context) {
	sqlDB, err := config.DB.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"status":  "unhealthy",
			"error":   "database unreachable",
		})
		return
	}

	probe := models.HealthProbe{CheckedAt: time.Now()}
	if err := config.DB.Create(&probe).Error; err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"status":  "unhealthy",
			"error":   "write probe failed",
		})
		return
	}
	config.DB.Delete(&probe)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"status":  "healthy",
		"time":    time.Now(),
	})
}
