package models

// DayActivity is one day of the weekly activity strip. Date uses the
// YYYY-MM-DD layout in server-local time.
type DayActivity struct {
	Date   string `json:"date"`
	Solved int    `json:"solved"`
}

// DashboardStats is the per-user derived view, recomputed on every request.
type DashboardStats struct {
	Rank           int           `json:"rank"`
	TopPercent     int           `json:"topPercent"`
	CurrentStreak  int           `json:"currentStreak"`
	WeeklyActivity []DayActivity `json:"weeklyActivity"`
}

// LeaderboardMetric selects the ordering of the leaderboard.
type LeaderboardMetric string

const (
	MetricXP     LeaderboardMetric = "xp"
	MetricStreak LeaderboardMetric = "streak"
	MetricSolved LeaderboardMetric = "solved"
)

// ParseLeaderboardMetric validates a client-supplied metric, defaulting to XP.
func ParseLeaderboardMetric(s string) (LeaderboardMetric, bool) {
	switch LeaderboardMetric(s) {
	case MetricXP, MetricStreak, MetricSolved:
		return LeaderboardMetric(s), true
	case "":
		return MetricXP, true
	}
	return "", false
}

// LeaderboardEntry annotates a user with its 1-based position in the sorted
// result. Ties share whatever order the sort produced.
type LeaderboardEntry struct {
	Rank           int    `json:"rank"`
	UserID         string `json:"userId"`
	Username       string `json:"username"`
	XPPoints       int    `json:"xpPoints"`
	StreakDays     int    `json:"streakDays"`
	ProblemsSolved int    `json:"problemsSolved"`
}
