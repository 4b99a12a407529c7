package controllers

import (
	"strings"
	"testing"

	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"

	"github.com/lockin-app/lockin/models"
)

// Count and Find must each run on a fresh chain; a statement reused across
// finishers re-appends its conditions.
func TestHistoryQueryBuildsFreshChains(t *testing.T) {
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	if err != nil {
		t.Fatalf("failed to open dry-run db: %v", err)
	}
	cc := &CheckInController{db: db}

	var total int64
	countSQL := cc.historyQuery(42).Count(&total).Statement.SQL.String()

	var items []models.CheckIn
	listSQL := cc.historyQuery(42).Order("check_in_date DESC").
		Offset(0).Limit(10).Find(&items).Statement.SQL.String()

	if n := strings.Count(countSQL, "user_id"); n != 1 {
		t.Errorf("count statement carries %d user_id conditions, want 1: %s", n, countSQL)
	}
	if n := strings.Count(listSQL, "user_id"); n != 1 {
		t.Errorf("list statement carries %d user_id conditions, want 1: %s", n, listSQL)
	}
	if !strings.Contains(listSQL, "ORDER BY") {
		t.Errorf("list statement lost its ordering: %s", listSQL)
	}
}
