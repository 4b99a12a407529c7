package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lockin-app/lockin/models"
	"github.com/lockin-app/lockin/utils"
)

// TrafficRecorder aggregates successful API requests per day and route
// template, feeding the daily-active figure on the stats endpoint.
func TrafficRecorder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 400 {
			return
		}

		// Use the route template (e.g. /api/v1/goals/:id) so path
		// parameters do not explode the row count.
		route := c.FullPath()
		if route == "" || route == "/health" || strings.Contains(route, "/stats") {
			return
		}

		// Day boundary follows the check-in reference timezone so the stats
		// endpoint's "today" reads the rows this middleware writes.
		now := time.Now().In(utils.CheckInLocation())
		day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

		// Atomic upsert to avoid duplicate key errors under concurrency
		_ = db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}, {Name: "route"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"count": gorm.Expr("count + 1"), "updated_at": time.Now()}),
		}).Create(&models.RouteDailyStat{Date: day, Route: route, Count: 1}).Error
	}
}
