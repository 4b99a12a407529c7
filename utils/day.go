package utils

import (
	"sync"
	"time"

	"github.com/lockin-app/lockin/config"
)

var (
	checkInLocOnce sync.Once
	checkInLoc     *time.Location
)

// LocationOrUTC resolves an IANA timezone name, answering UTC for an empty
// or unknown name.
func LocationOrUTC(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// CheckInLocation is the reference timezone for every calendar-day decision.
// The check-in guard, the dashboard's checked_in_today flags and the daily
// counters must all derive "today" from this one location so they cannot
// disagree about which day it is.
func CheckInLocation() *time.Location {
	checkInLocOnce.Do(func() {
		name := config.Get().CheckInTimezone
		checkInLoc = LocationOrUTC(name)
		if Sugar != nil && checkInLoc == time.UTC && name != "" && name != "UTC" {
			Sugar.Warnf("unknown CheckInTimezone %q, falling back to UTC", name)
		}
	})
	return checkInLoc
}
