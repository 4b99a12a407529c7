package main

import (
	"time"

	"github.com/lockin-app/lockin/config"
	"github.com/lockin-app/lockin/models"
	"github.com/lockin-app/lockin/routes"
	"github.com/lockin-app/lockin/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.User{},
		&models.Goal{},
		&models.CheckIn{},
		&models.Team{},
		&models.TeamMembership{},
		&models.Todo{},
		&models.RouteDailyStat{},
	)

	r := routes.SetupRouter(db)

	// Periodically recompute team XP totals from the check-in ledger
	utils.StartTeamXPReconciler(10 * time.Minute)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
