package controllers

import (
	"testing"
	"time"

	"github.com/lockin-app/lockin/services"
	"github.com/lockin-app/lockin/utils"
)

// The dashboard's checked_in_today comparison must agree with the day the
// check-in guard derives for the same instant, including near midnight in a
// non-UTC reference timezone.
func TestDashboardDayMatchesCheckInDay(t *testing.T) {
	loc := utils.LocationOrUTC("Asia/Tokyo")
	svc := services.NewCheckInService(services.DefaultXPTable(), loc)

	// 23:30 UTC on Jan 1 is already Jan 2 in Tokyo.
	instant := time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC)
	guardDay := svc.Day(instant)

	now := instant.In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if !sameCalendarDay(guardDay, today) {
		t.Fatalf("dashboard today %v disagrees with check-in guard day %v", today, guardDay)
	}
	if guardDay.Day() != 2 {
		t.Errorf("expected Jan 2 in Tokyo, got %v", guardDay)
	}
}
