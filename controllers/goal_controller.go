package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lockin-app/lockin/models"
	"github.com/lockin-app/lockin/utils"
)

// GoalController manages CRUD operations for goals and the dashboard view.
type GoalController struct {
	db *gorm.DB
}

// NewGoalController creates a new GoalController instance.
func NewGoalController(db *gorm.DB) *GoalController {
	return &GoalController{db: db}
}

// CreateGoal allows authenticated users to create new goals.
func (g *GoalController) CreateGoal(ctx *gin.Context) {
	var req struct {
		Title        string `json:"title" binding:"required,min=1"`
		Description  string `json:"description"`
		Difficulty   string `json:"difficulty"`
		TimeEstimate int    `json:"time_estimate"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40040, "invalid request payload")
		return
	}

	title := utils.Sanitize(strings.TrimSpace(req.Title))
	if title == "" {
		utils.Error(ctx, http.StatusBadRequest, 40041, "title cannot be empty")
		return
	}

	difficulty := models.Difficulty(strings.ToLower(strings.TrimSpace(req.Difficulty)))
	if difficulty == "" {
		difficulty = models.DifficultyMedium
	}
	if !difficulty.Valid() {
		utils.Error(ctx, http.StatusBadRequest, 40042, "difficulty must be easy, medium or hard")
		return
	}

	timeEstimate := req.TimeEstimate
	if timeEstimate <= 0 {
		timeEstimate = 30
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	goal := models.Goal{
		UserID:       userID,
		Title:        title,
		Description:  utils.Sanitize(req.Description),
		Difficulty:   difficulty,
		TimeEstimate: timeEstimate,
	}
	if err := g.db.Create(&goal).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to create goal")
		return
	}

	utils.Respond(ctx, http.StatusCreated, 0, "success", gin.H{"goal": goal})
}

// ListGoals returns the authenticated user's goals. Archived goals are
// excluded unless ?archived=1.
func (g *GoalController) ListGoals(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	q := g.db.Where("user_id = ?", userID).Order("created_at DESC")
	if ctx.Query("archived") != "1" {
		q = q.Where("is_archived = ?", false)
	}

	var goals []models.Goal
	if err := q.Find(&goals).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to list goals")
		return
	}

	utils.Success(ctx, gin.H{"goals": goals})
}

// Dashboard returns active goals with their checked-in-today flag plus the
// user's XP/streak stats and a 7-day XP series. The flags are advisory for
// the UI; the check-in endpoint re-validates on every call.
func (g *GoalController) Dashboard(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var user models.User
	if err := g.db.First(&user, userID).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40410, "user not found")
		return
	}

	var goals []models.Goal
	if err := g.db.Where("user_id = ? AND is_archived = ?", userID, false).
		Order("created_at DESC").Find(&goals).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50042, "failed to list goals")
		return
	}

	// Same reference timezone as the check-in guard, so the flags here agree
	// with what POST /checkins will accept.
	now := time.Now().In(utils.CheckInLocation())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := today.AddDate(0, 0, -6)

	var recent []models.CheckIn
	if err := g.db.Where("user_id = ? AND check_in_date >= ?", userID, weekStart).
		Find(&recent).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50043, "failed to load check-ins")
		return
	}

	checkedGoals := make(map[uint]bool)
	todayXP := 0
	weekly := make([]int, 7)
	for _, c := range recent {
		offset := int(c.CheckInDate.Sub(weekStart).Hours() / 24)
		if offset >= 0 && offset < 7 {
			weekly[offset] += c.XPEarned
		}
		if sameCalendarDay(c.CheckInDate, today) {
			checkedGoals[c.GoalID] = true
			todayXP += c.XPEarned
		}
	}

	type goalView struct {
		models.Goal
		CheckedInToday bool `json:"checked_in_today"`
	}
	views := make([]goalView, 0, len(goals))
	for _, goal := range goals {
		views = append(views, goalView{Goal: goal, CheckedInToday: checkedGoals[goal.ID]})
	}

	utils.Success(ctx, gin.H{
		"goals": views,
		"stats": gin.H{
			"total_xp":         user.TotalXP,
			"level":            user.Level,
			"streak":           user.StreakCount,
			"today_xp":         todayXP,
			"weekly_xp":        weekly,
			"checked_in_today": len(checkedGoals) > 0,
		},
	})
}

// ToggleGoal flips a goal's completed flag.
func (g *GoalController) ToggleGoal(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Completed *bool `json:"completed" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40043, "missing completed flag")
		return
	}

	goal, ok := g.ownedGoalFromParam(ctx, userID)
	if !ok {
		return
	}

	if err := g.db.Model(&goal).Update("completed", *req.Completed).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50044, "failed to update goal")
		return
	}
	utils.Success(ctx, gin.H{"goal": goal})
}

// ArchiveGoal hides a goal from the dashboard without losing its history.
func (g *GoalController) ArchiveGoal(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	goal, ok := g.ownedGoalFromParam(ctx, userID)
	if !ok {
		return
	}

	if err := g.db.Model(&goal).Update("is_archived", true).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50045, "failed to archive goal")
		return
	}
	utils.Success(ctx, gin.H{"goal": goal})
}

// DeleteGoal removes a goal permanently. Its check-in ledger rows remain.
func (g *GoalController) DeleteGoal(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	goal, ok := g.ownedGoalFromParam(ctx, userID)
	if !ok {
		return
	}

	if err := g.db.Delete(&goal).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50046, "failed to delete goal")
		return
	}
	utils.Success(ctx, gin.H{"deleted": true})
}

func (g *GoalController) ownedGoalFromParam(ctx *gin.Context, userID uint) (models.Goal, bool) {
	idStr := strings.TrimSpace(ctx.Param("id"))
	if idStr == "" {
		utils.Error(ctx, http.StatusBadRequest, 40044, "missing goal id")
		return models.Goal{}, false
	}
	var goal models.Goal
	if err := g.db.Where("id = ? AND user_id = ?", idStr, userID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40420, "goal not found")
		} else {
			utils.Error(ctx, http.StatusInternalServerError, 50047, "failed to load goal")
		}
		return models.Goal{}, false
	}
	return goal, true
}

func sameCalendarDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
