package services

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lockin-app/lockin/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dayPtr(y int, m time.Month, d int) *time.Time {
	t := day(y, m, d)
	return &t
}

func newTestService() *CheckInService {
	return NewCheckInService(DefaultXPTable(), time.UTC)
}

func TestFirstCheckInStartsStreak(t *testing.T) {
	svc := newTestService()
	goal := models.Goal{Difficulty: models.DifficultyMedium}
	now := day(2024, time.January, 1).Add(9 * time.Hour)

	res, err := svc.Attempt(Progress{}, goal, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.XPEarned != 25 || res.NewTotalXP != 25 || res.NewStreak != 1 {
		t.Fatalf("got xp=%d total=%d streak=%d, want 25/25/1", res.XPEarned, res.NewTotalXP, res.NewStreak)
	}
	if !res.CheckInDate.Equal(day(2024, time.January, 1)) {
		t.Fatalf("check-in date = %v, want 2024-01-01", res.CheckInDate)
	}
}

func TestConsecutiveDayExtendsStreak(t *testing.T) {
	svc := newTestService()
	goal := models.Goal{Difficulty: models.DifficultyHard}
	p := Progress{TotalXP: 25, StreakCount: 1, LastCheckInDate: dayPtr(2024, time.January, 1)}

	res, err := svc.Attempt(p, goal, day(2024, time.January, 2).Add(20*time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.XPEarned != 50 || res.NewTotalXP != 75 || res.NewStreak != 2 {
		t.Fatalf("got xp=%d total=%d streak=%d, want 50/75/2", res.XPEarned, res.NewTotalXP, res.NewStreak)
	}
}

func TestSameDayRejected(t *testing.T) {
	svc := newTestService()
	goal := models.Goal{Difficulty: models.DifficultyEasy}
	p := Progress{TotalXP: 75, StreakCount: 2, LastCheckInDate: dayPtr(2024, time.January, 2)}

	_, err := svc.Attempt(p, goal, day(2024, time.January, 2).Add(23*time.Hour))
	if !errors.Is(err, ErrAlreadyCheckedIn) {
		t.Fatalf("err = %v, want ErrAlreadyCheckedIn", err)
	}
}

func TestGapResetsStreak(t *testing.T) {
	svc := newTestService()
	goal := models.Goal{Difficulty: models.DifficultyEasy}
	p := Progress{TotalXP: 200, StreakCount: 5, LastCheckInDate: dayPtr(2024, time.January, 2)}

	res, err := svc.Attempt(p, goal, day(2024, time.January, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.NewStreak != 1 {
		t.Fatalf("streak = %d, want 1 after gap", res.NewStreak)
	}
	if res.NewTotalXP != 210 {
		t.Fatalf("total = %d, want 210", res.NewTotalXP)
	}
}

func TestXPByDifficulty(t *testing.T) {
	svc := newTestService()
	cases := []struct {
		difficulty models.Difficulty
		want       int
	}{
		{models.DifficultyEasy, 10},
		{models.DifficultyMedium, 25},
		{models.DifficultyHard, 50},
	}
	for _, tc := range cases {
		// Goal age must not influence the reward.
		goal := models.Goal{Difficulty: tc.difficulty, CreatedAt: day(2020, time.March, 15)}
		res, err := svc.Attempt(Progress{}, goal, day(2024, time.June, 1))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.difficulty, err)
		}
		if res.XPEarned != tc.want {
			t.Errorf("%s: xp = %d, want %d", tc.difficulty, res.XPEarned, tc.want)
		}
	}
}

func TestInvalidDifficultyRejected(t *testing.T) {
	svc := newTestService()
	goal := models.Goal{Difficulty: "extreme"}

	_, err := svc.Attempt(Progress{}, goal, day(2024, time.January, 1))
	if !errors.Is(err, ErrInvalidDifficulty) {
		t.Fatalf("err = %v, want ErrInvalidDifficulty", err)
	}
}

func TestGuardRunsBeforeDifficultyCheck(t *testing.T) {
	svc := newTestService()
	goal := models.Goal{Difficulty: "corrupt"}
	p := Progress{LastCheckInDate: dayPtr(2024, time.January, 5)}

	_, err := svc.Attempt(p, goal, day(2024, time.January, 5))
	if !errors.Is(err, ErrAlreadyCheckedIn) {
		t.Fatalf("err = %v, want ErrAlreadyCheckedIn before difficulty validation", err)
	}
}

func TestSecondAttemptAfterSuccessRejected(t *testing.T) {
	svc := newTestService()
	goal := models.Goal{Difficulty: models.DifficultyMedium}
	now := day(2024, time.February, 10).Add(8 * time.Hour)

	res, err := svc.Attempt(Progress{}, goal, now)
	if err != nil {
		t.Fatalf("first attempt failed: %v", err)
	}

	// Persisted state after the first success.
	p := Progress{
		TotalXP:         res.NewTotalXP,
		StreakCount:     res.NewStreak,
		LastCheckInDate: &res.CheckInDate,
	}
	_, err = svc.Attempt(p, models.Goal{Difficulty: models.DifficultyHard}, now.Add(2*time.Hour))
	if !errors.Is(err, ErrAlreadyCheckedIn) {
		t.Fatalf("err = %v, want ErrAlreadyCheckedIn on second attempt same day", err)
	}
}

func TestReferenceTimezoneDerivesDay(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	svc := NewCheckInService(DefaultXPTable(), tokyo)

	// 2024-01-01 16:00 UTC is already 2024-01-02 in Tokyo, so a user whose
	// last check-in was Jan 1 continues the streak instead of being rejected.
	p := Progress{TotalXP: 10, StreakCount: 1, LastCheckInDate: dayPtr(2024, time.January, 1)}
	res, err := svc.Attempt(p, models.Goal{Difficulty: models.DifficultyEasy}, time.Date(2024, time.January, 1, 16, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.NewStreak != 2 {
		t.Fatalf("streak = %d, want 2", res.NewStreak)
	}
}

func TestAttemptDoesNotMutateProgress(t *testing.T) {
	svc := newTestService()
	last := day(2024, time.January, 1)
	p := Progress{TotalXP: 100, StreakCount: 3, LastCheckInDate: &last}

	if _, err := svc.Attempt(p, models.Goal{Difficulty: models.DifficultyEasy}, day(2024, time.January, 2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.TotalXP != 100 || p.StreakCount != 3 || !p.LastCheckInDate.Equal(day(2024, time.January, 1)) {
		t.Fatalf("progress mutated: %+v", p)
	}
}

func TestTableCopiedAtConstruction(t *testing.T) {
	table := DefaultXPTable()
	svc := NewCheckInService(table, time.UTC)
	table[models.DifficultyEasy] = 9999

	res, err := svc.Attempt(Progress{}, models.Goal{Difficulty: models.DifficultyEasy}, day(2024, time.May, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.XPEarned != 10 {
		t.Fatalf("xp = %d, want 10 from the captured table", res.XPEarned)
	}
}

// Models the storage layer's row-lock serialization: concurrent attempts for
// one user take the lock in turn, re-read the latest progress, and only the
// first may win the day. The rest must observe the committed check-in.
func TestConcurrentAttemptsSingleWinner(t *testing.T) {
	svc := newTestService()
	goal := models.Goal{Difficulty: models.DifficultyMedium}
	now := day(2024, time.March, 10).Add(12 * time.Hour)

	var mu sync.Mutex
	var progress Progress
	var wins, conflicts int32

	const attempts = 16
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mu.Lock()
			defer mu.Unlock()
			res, err := svc.Attempt(progress, goal, now)
			switch {
			case err == nil:
				d := res.CheckInDate
				progress = Progress{TotalXP: res.NewTotalXP, StreakCount: res.NewStreak, LastCheckInDate: &d}
				atomic.AddInt32(&wins, 1)
			case errors.Is(err, ErrAlreadyCheckedIn):
				atomic.AddInt32(&conflicts, 1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if wins != 1 || conflicts != attempts-1 {
		t.Fatalf("got %d wins and %d conflicts, want 1 and %d", wins, conflicts, attempts-1)
	}
	if progress.StreakCount != 1 || progress.TotalXP != 25 {
		t.Fatalf("final progress = %+v, want streak 1 and 25 XP", progress)
	}
}
