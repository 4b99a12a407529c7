package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lockin-app/lockin/config"
	"github.com/lockin-app/lockin/models"
	"github.com/lockin-app/lockin/utils"
)

// LeaderboardController serves the public user and team rankings.
type LeaderboardController struct {
	db *gorm.DB
}

// NewLeaderboardController creates a new controller instance.
func NewLeaderboardController(db *gorm.DB) *LeaderboardController {
	return &LeaderboardController{db: db}
}

// GetLeaderboard returns the top users by total XP, or top teams when
// ?type=teams. Responses are cached in Redis with a short TTL because the
// ranking changes on every check-in.
func (l *LeaderboardController) GetLeaderboard(ctx *gin.Context) {
	kind := ctx.DefaultQuery("type", "users")
	if kind != "users" && kind != "teams" {
		utils.Error(ctx, http.StatusBadRequest, 40060, "type must be users or teams")
		return
	}

	limit := 10
	if v := ctx.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	cacheKey := fmt.Sprintf("cache:leaderboard:%s:limit=%d", kind, limit)
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	var payload gin.H
	if kind == "teams" {
		var teams []models.Team
		if err := l.db.Order("total_xp DESC").Limit(limit).Find(&teams).Error; err != nil {
			utils.Error(ctx, http.StatusInternalServerError, 50060, "failed to load leaderboard")
			return
		}
		entries := make([]gin.H, 0, len(teams))
		for i, t := range teams {
			entries = append(entries, gin.H{
				"rank":     i + 1,
				"id":       t.ID,
				"name":     t.Name,
				"total_xp": t.TotalXP,
			})
		}
		payload = gin.H{"leaderboard": entries, "type": "teams"}
	} else {
		var users []models.User
		if err := l.db.Order("total_xp DESC").Limit(limit).Find(&users).Error; err != nil {
			utils.Error(ctx, http.StatusInternalServerError, 50060, "failed to load leaderboard")
			return
		}
		entries := make([]gin.H, 0, len(users))
		for i, u := range users {
			entries = append(entries, gin.H{
				"rank":         i + 1,
				"id":           u.ID,
				"username":     u.Username,
				"avatar_url":   u.AvatarURL,
				"total_xp":     u.TotalXP,
				"level":        u.Level,
				"streak_count": u.StreakCount,
			})
		}
		payload = gin.H{"leaderboard": entries, "type": "users"}
	}

	wrapper := struct {
		Code    int         `json:"code"`
		Message string      `json:"message"`
		Data    interface{} `json:"data"`
	}{Code: 0, Message: "success", Data: payload}
	ttl := time.Duration(config.Get().LeaderboardCacheTTLSec) * time.Second
	utils.CacheSetJSON(cacheKey, wrapper, ttl)

	utils.Success(ctx, payload)
}
