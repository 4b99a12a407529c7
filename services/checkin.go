package services

import (
	"errors"
	"time"

	"github.com/lockin-app/lockin/models"
)

// XPTable maps goal difficulty to the XP awarded per check-in. It is
// constant data injected at construction so the service carries no hidden
// global state.
type XPTable map[models.Difficulty]int

// DefaultXPTable returns the standard reward table.
func DefaultXPTable() XPTable {
	return XPTable{
		models.DifficultyEasy:   10,
		models.DifficultyMedium: 25,
		models.DifficultyHard:   50,
	}
}

var (
	// ErrAlreadyCheckedIn signals the once-per-day guard rejected the attempt.
	ErrAlreadyCheckedIn = errors.New("already checked in today")
	// ErrInvalidDifficulty signals a stored difficulty outside the known set.
	ErrInvalidDifficulty = errors.New("invalid goal difficulty")
)

// Progress is the subset of user state the check-in computation reads.
// LastCheckInDate is nil when the user has never checked in.
type Progress struct {
	TotalXP         int
	StreakCount     int
	LastCheckInDate *time.Time
}

// CheckInResult describes the state changes the caller must persist
// atomically: the ledger row plus the updated user progress.
type CheckInResult struct {
	XPEarned    int       `json:"xp_earned"`
	NewTotalXP  int       `json:"new_total_xp"`
	NewStreak   int       `json:"new_streak"`
	CheckInDate time.Time `json:"check_in_date"`
}

// CheckInService decides whether a check-in is allowed, computes the XP
// reward and the new streak. It performs no I/O; the caller owns the
// transaction around it.
type CheckInService struct {
	xp  XPTable
	loc *time.Location
}

// NewCheckInService builds a service with the given reward table and the
// reference timezone used to derive calendar days. A nil location means UTC.
func NewCheckInService(xp XPTable, loc *time.Location) *CheckInService {
	if loc == nil {
		loc = time.UTC
	}
	table := make(XPTable, len(xp))
	for k, v := range xp {
		table[k] = v
	}
	return &CheckInService{xp: table, loc: loc}
}

// Day truncates an instant to its calendar day in the reference timezone.
func (s *CheckInService) Day(now time.Time) time.Time {
	t := now.In(s.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, s.loc)
}

// Attempt validates a check-in for the given progress and goal at instant
// now. Validation order: the once-per-day guard first, then difficulty.
// On success the returned result holds the XP earned, the new XP total, the
// new streak counter and the check-in date; progress is never mutated.
func (s *CheckInService) Attempt(p Progress, goal models.Goal, now time.Time) (CheckInResult, error) {
	today := s.Day(now)

	if p.LastCheckInDate != nil && sameDate(*p.LastCheckInDate, today) {
		return CheckInResult{}, ErrAlreadyCheckedIn
	}

	xp, ok := s.xp[goal.Difficulty]
	if !ok || !goal.Difficulty.Valid() {
		return CheckInResult{}, ErrInvalidDifficulty
	}

	// The guard above leaves only two cases: the day after the last
	// check-in (streak continues) or a gap (streak resets).
	streak := 1
	if p.LastCheckInDate != nil && sameDate(p.LastCheckInDate.AddDate(0, 0, 1), today) {
		streak = p.StreakCount + 1
	}

	return CheckInResult{
		XPEarned:    xp,
		NewTotalXP:  p.TotalXP + xp,
		NewStreak:   streak,
		CheckInDate: today,
	}, nil
}

// sameDate compares calendar components only. Stored DATE columns carry no
// timezone, so the values are compared as-is rather than converted.
func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
