package utils

import (
	"time"

	"github.com/lockin-app/lockin/config"
	"github.com/lockin-app/lockin/models"
)

// StartTeamXPReconciler launches a background goroutine that periodically
// recomputes teams.total_xp from the check-in ledger of current members.
// The counter is incremented inline at check-in time; this repairs drift
// from membership changes and deleted users. Best-effort, failures are logged.
func StartTeamXPReconciler(interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	go func() {
		for {
			// Sleep first to avoid racing immediately at startup
			time.Sleep(interval)
			db := config.DB()
			if db == nil {
				continue
			}

			var teams []models.Team
			if err := db.Find(&teams).Error; err != nil {
				Sugar.Warnf("team xp reconciler: list teams failed: %v", err)
				continue
			}

			for _, team := range teams {
				var total int64
				err := db.Model(&models.CheckIn{}).
					Where("user_id IN (?)", db.Model(&models.TeamMembership{}).
						Select("user_id").
						Where("team_id = ?", team.ID)).
					Select("COALESCE(SUM(xp_earned),0)").
					Scan(&total).Error
				if err != nil {
					Sugar.Warnf("team xp reconciler: sum failed for team %d: %v", team.ID, err)
					continue
				}
				if int(total) == team.TotalXP {
					continue
				}
				if err := db.Model(&models.Team{}).Where("id = ?", team.ID).
					Update("total_xp", total).Error; err != nil {
					Sugar.Warnf("team xp reconciler: update failed for team %d: %v", team.ID, err)
					continue
				}
				Sugar.Infof("team xp reconciler: team %d total_xp %d -> %d", team.ID, team.TotalXP, total)
			}
		}
	}()
}
