package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lockin-app/lockin/config"
	"github.com/lockin-app/lockin/controllers"
	"github.com/lockin-app/lockin/middleware"
	"github.com/lockin-app/lockin/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	// Load config and set Gin mode from configuration
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap logger
	ginLogPath := cfg.GinPath
	// Use application log level as reference
	gl, err := utils.NewRollingFileLogger(ginLogPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		// fallback to default recovery if logger failed to init
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}

	r.Use(cors.New(corsCfg))
	// Record per-route traffic after each request
	r.Use(middleware.TrafficRecorder(db))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController(db)
	goalController := controllers.NewGoalController(db)
	checkInController := controllers.NewCheckInController(db)
	teamController := controllers.NewTeamController(db)
	leaderboardController := controllers.NewLeaderboardController(db)
	statsController := controllers.NewStatsController(db)
	todoController := controllers.NewTodoController(db)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.GET("/oauth/:provider/login", authController.OAuthRedirect)
	authGroup.GET("/oauth/:provider/callback", authController.OAuthCallback)
	authGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)
	authGroup.GET("/me", middleware.AuthRequired(), authController.Me)
	authGroup.PATCH("/profile", middleware.AuthRequired(), authController.UpdateProfile)

	// Public endpoints
	api.GET("/leaderboard", leaderboardController.GetLeaderboard)
	api.GET("/stats", statsController.GetStats)
	api.GET("/users/:id", authController.GetUserPublic)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired(), middleware.RateLimitMiddleware())

	protected.GET("/users", authController.ListUsers)

	protected.POST("/goals", goalController.CreateGoal)
	protected.GET("/goals", goalController.ListGoals)
	protected.GET("/goals/dashboard", goalController.Dashboard)
	protected.PATCH("/goals/:id/toggle", goalController.ToggleGoal)
	protected.PATCH("/goals/:id/archive", goalController.ArchiveGoal)
	protected.DELETE("/goals/:id", goalController.DeleteGoal)

	protected.POST("/checkins", checkInController.CheckIn)
	protected.GET("/checkins/today", checkInController.TodayCheckIns)
	protected.GET("/checkins/history", checkInController.History)

	protected.POST("/teams", teamController.CreateTeam)
	protected.POST("/teams/join", teamController.JoinTeam)
	protected.POST("/teams/leave", teamController.LeaveTeam)
	protected.GET("/teams/me", teamController.MyTeam)

	protected.POST("/todos", todoController.CreateTodo)
	protected.GET("/todos", todoController.ListTodos)
	protected.PATCH("/todos/:id", todoController.UpdateTodo)
	protected.DELETE("/todos/:id", todoController.DeleteTodo)

	r.NoRoute(func(ctx *gin.Context) {
		path := ctx.Request.URL.Path
		if strings.HasPrefix(path, "/api/") {
			utils.Error(ctx, http.StatusNotFound, 40400, "api route not found")
			return
		}
		ctx.JSON(http.StatusNotFound, gin.H{"message": "route not found"})
	})

	return r
}
