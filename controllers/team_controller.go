package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lockin-app/lockin/config"
	"github.com/lockin-app/lockin/models"
	"github.com/lockin-app/lockin/utils"
)

// TeamController handles team creation, membership and the team view.
type TeamController struct {
	db *gorm.DB
}

// NewTeamController creates a new controller instance.
func NewTeamController(db *gorm.DB) *TeamController {
	return &TeamController{db: db}
}

// CreateTeam creates a team with a fresh invite code and enrolls the creator.
func (t *TeamController) CreateTeam(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Name string `json:"name" binding:"required,min=1,max=255"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40050, "invalid request payload")
		return
	}
	name := utils.Sanitize(strings.TrimSpace(req.Name))
	if name == "" {
		utils.Error(ctx, http.StatusBadRequest, 40051, "team name cannot be empty")
		return
	}

	var user models.User
	if err := t.db.First(&user, userID).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40410, "user not found")
		return
	}
	if user.TeamID != nil {
		utils.Error(ctx, http.StatusConflict, 40920, "already a member of a team")
		return
	}

	code, err := utils.UniqueInviteCode(t.db, &models.Team{}, config.Get().InviteCodeLength)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50050, "failed to generate invite code")
		return
	}

	team := models.Team{Name: name, InviteCode: code}
	err = t.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&team).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.TeamMembership{UserID: userID, TeamID: team.ID}).Error; err != nil {
			return err
		}
		return tx.Model(&user).Update("team_id", team.ID).Error
	})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50051, "failed to create team")
		return
	}

	utils.Respond(ctx, http.StatusCreated, 0, "success", gin.H{"team": team})
}

// JoinTeam enrolls the user into the team behind an invite code.
func (t *TeamController) JoinTeam(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		InviteCode string `json:"invite_code" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40052, "missing invite_code")
		return
	}

	var user models.User
	if err := t.db.First(&user, userID).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40410, "user not found")
		return
	}
	if user.TeamID != nil {
		utils.Error(ctx, http.StatusConflict, 40920, "already a member of a team")
		return
	}

	var team models.Team
	if err := t.db.Where("invite_code = ?", strings.TrimSpace(req.InviteCode)).First(&team).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusBadRequest, 40053, "invalid invite code")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50052, "failed to look up team")
		return
	}

	err := t.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.TeamMembership{UserID: userID, TeamID: team.ID}).Error; err != nil {
			return err
		}
		return tx.Model(&user).Update("team_id", team.ID).Error
	})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50053, "failed to join team")
		return
	}

	utils.InvalidateByPrefix("cache:leaderboard:teams")
	utils.Success(ctx, gin.H{"team": team})
}

// LeaveTeam removes the user from their current team.
func (t *TeamController) LeaveTeam(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var user models.User
	if err := t.db.First(&user, userID).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40410, "user not found")
		return
	}
	if user.TeamID == nil {
		utils.Error(ctx, http.StatusBadRequest, 40054, "not a member of any team")
		return
	}

	teamID := *user.TeamID
	err := t.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND team_id = ?", userID, teamID).
			Delete(&models.TeamMembership{}).Error; err != nil {
			return err
		}
		return tx.Model(&user).Update("team_id", nil).Error
	})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50054, "failed to leave team")
		return
	}

	utils.Success(ctx, gin.H{"left": true})
}

// MyTeam returns the user's team with its member list.
func (t *TeamController) MyTeam(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var user models.User
	if err := t.db.First(&user, userID).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40410, "user not found")
		return
	}
	if user.TeamID == nil {
		utils.Success(ctx, gin.H{"team": nil})
		return
	}

	var team models.Team
	if err := t.db.First(&team, *user.TeamID).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50055, "failed to load team")
		return
	}

	var memberships []models.TeamMembership
	if err := t.db.Where("team_id = ?", team.ID).Find(&memberships).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50056, "failed to load members")
		return
	}
	memberIDs := make([]uint, 0, len(memberships))
	for _, m := range memberships {
		memberIDs = append(memberIDs, m.UserID)
	}

	var members []models.User
	if len(memberIDs) > 0 {
		if err := t.db.Find(&members, memberIDs).Error; err != nil {
			utils.Error(ctx, http.StatusInternalServerError, 50057, "failed to load members")
			return
		}
	}

	views := make([]gin.H, 0, len(members))
	for _, m := range members {
		views = append(views, gin.H{
			"id":           m.ID,
			"username":     m.Username,
			"avatar_url":   m.AvatarURL,
			"total_xp":     m.TotalXP,
			"level":        m.Level,
			"streak_count": m.StreakCount,
		})
	}

	utils.Success(ctx, gin.H{"team": team, "members": views})
}
