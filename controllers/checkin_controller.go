package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lockin-app/lockin/config"
	"github.com/lockin-app/lockin/models"
	"github.com/lockin-app/lockin/services"
	"github.com/lockin-app/lockin/utils"
)

// CheckInController handles the daily check-in endpoints. The XP/streak
// computation lives in services.CheckInService; this controller owns the
// transaction that makes the ledger insert and the user update atomic.
type CheckInController struct {
	db  *gorm.DB
	svc *services.CheckInService
}

// NewCheckInController builds the controller with the configured reward
// table and reference timezone.
func NewCheckInController(db *gorm.DB) *CheckInController {
	cfg := config.Get()
	table := services.XPTable{
		models.DifficultyEasy:   cfg.XPEasy,
		models.DifficultyMedium: cfg.XPMedium,
		models.DifficultyHard:   cfg.XPHard,
	}
	return &CheckInController{db: db, svc: services.NewCheckInService(table, utils.CheckInLocation())}
}

// CheckIn records a daily check-in against one of the user's goals.
// At most one check-in per user per calendar day; repeats answer 409.
func (cc *CheckInController) CheckIn(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		GoalID uint `json:"goal_id" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40030, "missing goal_id")
		return
	}

	// Ownership is part of existence: someone else's goal is a 404, not a 403.
	var goal models.Goal
	if err := cc.db.Where("id = ? AND user_id = ?", req.GoalID, userID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40420, "goal not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to load goal")
		return
	}
	if goal.IsArchived {
		utils.Error(ctx, http.StatusBadRequest, 40031, "goal is archived")
		return
	}

	now := time.Now()
	var result services.CheckInResult
	var record models.CheckIn

	err := cc.db.Transaction(func(tx *gorm.DB) error {
		// Row lock serializes concurrent attempts for the same user, so two
		// requests cannot both observe "not checked in today" and commit.
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userID).Error; err != nil {
			return err
		}

		res, err := cc.svc.Attempt(services.Progress{
			TotalXP:         user.TotalXP,
			StreakCount:     user.StreakCount,
			LastCheckInDate: user.LastCheckInDate,
		}, goal, now)
		if err != nil {
			return err
		}

		record = models.CheckIn{
			UserID:      userID,
			GoalID:      goal.ID,
			CheckInDate: res.CheckInDate,
			XPEarned:    res.XPEarned,
		}
		// The unique (user_id, check_in_date) index is the last line of
		// defense should the lock ever be bypassed.
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		user.TotalXP = res.NewTotalXP
		user.StreakCount = res.NewStreak
		user.LastCheckInDate = &record.CheckInDate
		user.Level = utils.LevelForXP(res.NewTotalXP)
		if err := tx.Save(&user).Error; err != nil {
			return err
		}

		if user.TeamID != nil {
			if err := tx.Model(&models.Team{}).Where("id = ?", *user.TeamID).
				Update("total_xp", gorm.Expr("total_xp + ?", res.XPEarned)).Error; err != nil {
				return err
			}
		}

		result = res
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, services.ErrAlreadyCheckedIn):
			utils.Error(ctx, http.StatusConflict, 40910, "already checked in today")
		case errors.Is(err, services.ErrInvalidDifficulty):
			// Stored difficulty outside the known set means data corruption
			// upstream; surface it instead of defaulting the reward.
			utils.Sugar.Errorw("goal with corrupt difficulty",
				"goal_id", goal.ID, "difficulty", goal.Difficulty)
			utils.Error(ctx, http.StatusInternalServerError, 50031, "goal difficulty is corrupt")
		case errors.Is(err, gorm.ErrDuplicatedKey):
			utils.Error(ctx, http.StatusConflict, 40910, "already checked in today")
		default:
			utils.Error(ctx, http.StatusInternalServerError, 50032, "failed to record check-in")
		}
		return
	}

	utils.InvalidateByPrefix("cache:leaderboard:")
	utils.InvalidateByPrefix("cache:user:public:" + itoa(userID))

	utils.Respond(ctx, http.StatusCreated, 0, "success", gin.H{
		"check_in":     record,
		"xp_earned":    result.XPEarned,
		"new_streak":   result.NewStreak,
		"new_total_xp": result.NewTotalXP,
	})
}

// TodayCheckIns returns the user's check-ins for the current calendar day.
func (cc *CheckInController) TodayCheckIns(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	today := cc.svc.Day(time.Now())
	var items []models.CheckIn
	if err := cc.db.Where("user_id = ? AND check_in_date = ?", userID, today).Find(&items).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50033, "failed to load check-ins")
		return
	}

	utils.Success(ctx, gin.H{
		"items":            items,
		"checked_in_today": len(items) > 0,
	})
}

// History returns the user's paginated check-in ledger, newest first.
func (cc *CheckInController) History(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))

	var items []models.CheckIn
	var total int64
	// Each finisher gets its own chain; reusing one statement across Count
	// and Find re-appends its conditions.
	if err := cc.historyQuery(userID).Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50034, "failed to count check-ins")
		return
	}
	if err := cc.historyQuery(userID).Order("check_in_date DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).Find(&items).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50035, "failed to list check-ins")
		return
	}

	utils.Success(ctx, gin.H{
		"items": items,
		"pagination": gin.H{
			"page":        page,
			"page_size":   pageSize,
			"total":       total,
			"total_pages": int((total + int64(pageSize) - 1) / int64(pageSize)),
		},
	})
}

// historyQuery starts a fresh ledger query scoped to one user.
func (cc *CheckInController) historyQuery(userID uint) *gorm.DB {
	return cc.db.Model(&models.CheckIn{}).Where("user_id = ?", userID)
}
