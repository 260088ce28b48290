// controllers/report.go
package controllers

import (
	"crmhub-backend/config"
	"crmhub-backend/models"
	"crmhub-backend/utils"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ReportController handles all reporting functions
type ReportController struct{}

// AnalyticsSummary represents the analytics payload
type AnalyticsSummary struct {
	CurrentMonthRevenue   float64          `json:"currentMonthRevenue"`
	MonthGrowth           float64          `json:"monthGrowth"`
	CurrentQuarterRevenue float64          `json:"currentQuarterRevenue"`
	QuarterGrowth         float64          `json:"quarterGrowth"`
	CurrentYearRevenue    float64          `json:"currentYearRevenue"`
	YearGrowth            float64          `json:"yearGrowth"`
	TopCompanies          []CompanyRevenue `json:"topCompanies"`
	QuickStats            QuickStatistics  `json:"quickStats"`
}

type CompanyRevenue struct {
	Company string  `json:"company"`
	Deals   int     `json:"deals"`
	Revenue float64 `json:"revenue"`
}

type QuickStatistics struct {
	TotalContacts int64   `json:"totalContacts"`
	TotalDeals    int64   `json:"totalDeals"`
	WonDeals      int64   `json:"wonDeals"`
	AvgDealValue  float64 `json:"avgDealValue"`
}

// GetReportAnalytics returns revenue analytics derived from won deals
func (rc *ReportController) GetReportAnalytics(c *gin.Context) {
	now := time.Now()
	currentYear, currentMonth, _ := now.Date()
	loc := now.Location()

	firstOfMonth := time.Date(currentYear, currentMonth, 1, 0, 0, 0, 0, loc)

	currentMonthRevenue, err := rc.getRevenue(firstOfMonth, firstOfMonth.AddDate(0, 1, 0))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get monthly revenue")
		return
	}
	lastMonthRevenue, err := rc.getRevenue(firstOfMonth.AddDate(0, -1, 0), firstOfMonth)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last month revenue")
		return
	}

	quarterStart := rc.quarterStart(now)
	currentQuarterRevenue, err := rc.getRevenue(quarterStart, quarterStart.AddDate(0, 3, 0))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get quarterly revenue")
		return
	}
	lastQuarterRevenue, err := rc.getRevenue(quarterStart.AddDate(0, -3, 0), quarterStart)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last quarter revenue")
		return
	}

	yearStart := time.Date(currentYear, 1, 1, 0, 0, 0, 0, loc)
	currentYearRevenue, err := rc.getRevenue(yearStart, yearStart.AddDate(1, 0, 0))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get yearly revenue")
		return
	}
	lastYearRevenue, err := rc.getRevenue(yearStart.AddDate(-1, 0, 0), yearStart)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last year revenue")
		return
	}

	summary := AnalyticsSummary{
		CurrentMonthRevenue:   currentMonthRevenue,
		MonthGrowth:           growthPercent(currentMonthRevenue, lastMonthRevenue),
		CurrentQuarterRevenue: currentQuarterRevenue,
		QuarterGrowth:         growthPercent(currentQuarterRevenue, lastQuarterRevenue),
		CurrentYearRevenue:    currentYearRevenue,
		YearGrowth:            growthPercent(currentYearRevenue, lastYearRevenue),
	}

	if err := config.DB.Model(&models.Deal{}).
		Select("company, COUNT(*) as deals, COALESCE(SUM(value), 0) as revenue").
		Where("stage = ?", "Closed Won").
		Group("company").
		Order("revenue DESC").
		Limit(5).
		Scan(&summary.TopCompanies).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get top companies")
		return
	}
	if summary.TopCompanies == nil {
		summary.TopCompanies = []CompanyRevenue{}
	}

	config.DB.Model(&models.Contact{}).Count(&summary.QuickStats.TotalContacts)
	config.DB.Model(&models.Deal{}).Count(&summary.QuickStats.TotalDeals)
	config.DB.Model(&models.Deal{}).Where("stage = ?", "Closed Won").Count(&summary.QuickStats.WonDeals)
	if summary.QuickStats.TotalDeals > 0 {
		var totalValue float64
		config.DB.Model(&models.Deal{}).Select("COALESCE(SUM(value), 0)").Scan(&totalValue)
		summary.QuickStats.AvgDealValue = totalValue / float64(summary.QuickStats.TotalDeals)
	}

	utils.RespondWithData(c, http.StatusOK, summary)
}

// getRevenue sums won-deal value closing in [start, end)
func (rc *ReportController) getRevenue(start, end time.Time) (float64, error) {
	var revenue float64
	err := config.DB.Model(&models.Deal{}).
		Where("stage = ? AND close_date >= ? AND close_date < ?", "Closed Won", start, end).
		Select("COALESCE(SUM(value), 0)").Scan(&revenue).Error
	return revenue, err
}

func (rc *ReportController) quarterStart(t time.Time) time.Time {
	quarterMonth := time.Month(((int(t.Month())-1)/3)*3 + 1)
	return time.Date(t.Year(), quarterMonth, 1, 0, 0, 0, 0, t.Location())
}

func growthPercent(current, previous float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return (current - previous) / previous * 100
}
