package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lockin-app/lockin/models"
	"github.com/lockin-app/lockin/utils"
)

// StatsController provides aggregate statistics for the landing page.
type StatsController struct {
	db *gorm.DB
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{db: db}
}

// GetStats returns user/goal/team counts plus today's check-in and traffic
// figures. Each counter falls back to 0 instead of failing the endpoint.
func (s *StatsController) GetStats(ctx *gin.Context) {
	var userCount int64
	var goalCount int64
	var teamCount int64
	var checkInsToday int64
	var dailyTraffic int64

	if err := s.db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		userCount = 0
	}
	if err := s.db.Model(&models.Goal{}).Where("is_archived = ?", false).Count(&goalCount).Error; err != nil {
		goalCount = 0
	}
	if err := s.db.Model(&models.Team{}).Count(&teamCount).Error; err != nil {
		teamCount = 0
	}

	// String date equality avoids timezone/type mismatches with DATE columns.
	// The day comes from the check-in reference timezone, not the host zone.
	today := time.Now().In(utils.CheckInLocation()).Format("2006-01-02")
	if err := s.db.Model(&models.CheckIn{}).
		Where("check_in_date = ?", today).
		Count(&checkInsToday).Error; err != nil {
		checkInsToday = 0
	}
	if err := s.db.Model(&models.RouteDailyStat{}).
		Where("date = ?", today).
		Select("COALESCE(SUM(count),0)").
		Scan(&dailyTraffic).Error; err != nil {
		dailyTraffic = 0
	}

	utils.Success(ctx, gin.H{
		"user_count":      userCount,
		"goal_count":      goalCount,
		"team_count":      teamCount,
		"check_ins_today": checkInsToday,
		"daily_traffic":   dailyTraffic,
	})
}
