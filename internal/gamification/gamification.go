// Package gamification holds the pure bookkeeping rules: XP crossings,
// streak invalidation, rank arithmetic and the daily-challenge rotation.
package gamification

import (
	"math"
	"time"

	"algoquest/internal/models"
)

// XPPerSolve is the fixed reward for crossing into SOLVED.
const XPPerSolve = 25

// DateLayout is the key format of the per-day activity log.
const DateLayout = "2006-01-02"

// XPDelta returns the XP change for a status transition. The reward is
// edge-triggered: it fires only when the SOLVED boundary is crossed, so
// setting SOLVED twice in a row awards nothing the second time.
func XPDelta(previous, next models.ProgressStatus) int {
	switch {
	case previous != models.StatusSolved && next == models.StatusSolved:
		return XPPerSolve
	case previous == models.StatusSolved && next != models.StatusSolved:
		return -XPPerSolve
	default:
		return 0
	}
}

// DateKey renders a time as an activity-log key in server-local terms.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// EffectiveStreak lazily invalidates a stored streak counter at read time:
// the stored value only counts if the user was active today or yesterday.
func EffectiveStreak(stored int, lastActive, now time.Time) int {
	if sameDay(lastActive, now) || sameDay(lastActive, now.AddDate(0, 0, -1)) {
		return stored
	}
	return 0
}

// NextStreak is the login-time activity hook: consecutive-day activity
// extends the streak, a gap restarts it at 1, repeat activity on the same
// day leaves it unchanged.
func NextStreak(stored int, lastActive, now time.Time) int {
	switch {
	case sameDay(lastActive, now):
		return stored
	case sameDay(lastActive, now.AddDate(0, 0, -1)):
		return stored + 1
	default:
		return 1
	}
}

// TopPercent is the user's percentile band, rounded to the nearest integer.
func TopPercent(rank, totalUsers int) int {
	if totalUsers <= 0 {
		return 0
	}
	return int(math.Round(float64(rank) / float64(totalUsers) * 100))
}

// WeekDates returns the activity-log keys for the last 7 calendar days,
// oldest to newest, including today.
func WeekDates(now time.Time) []string {
	dates := make([]string, 7)
	for i := 0; i < 7; i++ {
		dates[i] = DateKey(now.AddDate(0, 0, i-6))
	}
	return dates
}

// DailyChallengeIndex picks today's problem from a slug-ordered problem list.
// The date string is folded through a multiply-by-31 accumulator so every
// user sees the same problem on a given day.
func DailyChallengeIndex(dateKey string, problemCount int) int {
	if problemCount <= 0 {
		return 0
	}
	h := 0
	for _, c := range dateKey {
		h = h*31 + int(c)
	}
	if h < 0 {
		h = -h
	}
	return h % problemCount
}
