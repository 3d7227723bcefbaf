package handlers

import (
	"net/http"
	"strconv"
	"time"

	"algoquest/internal/gamification"
	"algoquest/internal/middleware"
	"algoquest/internal/models"
	"algoquest/internal/utils"
)

const defaultLeaderboardLimit = 10

// HandleDashboardStats handles requests for the authenticated user's
// dashboard: rank, percentile, current streak and the last week of activity.
func (s *Server) HandleDashboardStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		userID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			respondAppError(w, utils.NewUnauthorizedError("missing user identity"))
			return
		}

		ctx := r.Context()
		user, err := s.Store.GetUser(ctx, userID)
		if err != nil {
			if appErr, ok := err.(*utils.AppError); ok {
				respondAppError(w, appErr)
				return
			}
			http.Error(w, "Failed to load user", http.StatusInternalServerError)
			return
		}

		ahead, err := s.Store.CountUsersWithMoreXP(ctx, user.XPPoints)
		if err != nil {
			http.Error(w, "Failed to compute rank", http.StatusInternalServerError)
			return
		}
		total, err := s.Store.CountUsers(ctx)
		if err != nil {
			http.Error(w, "Failed to count users", http.StatusInternalServerError)
			return
		}

		now := time.Now()
		dates := gamification.WeekDates(now)
		counts, err := s.Store.GetDailySolves(ctx, userID, dates)
		if err != nil {
			http.Error(w, "Failed to load weekly activity", http.StatusInternalServerError)
			return
		}

		weekly := make([]models.DayActivity, len(dates))
		for i, date := range dates {
			weekly[i] = models.DayActivity{Date: date, Solved: counts[date]}
		}

		rank := int(ahead) + 1
		stats := &models.DashboardStats{
			Rank:           rank,
			TopPercent:     gamification.TopPercent(rank, int(total)),
			CurrentStreak:  gamification.EffectiveStreak(user.StreakDays, user.LastActive, now),
			WeeklyActivity: weekly,
		}

		respondJSON(w, http.StatusOK, stats)
	}
}

// HandleLeaderboard handles requests for the ranked user listing
func (s *Server) HandleLeaderboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		metric, valid := models.ParseLeaderboardMetric(r.URL.Query().Get("sortBy"))
		if !valid {
			http.Error(w, "Invalid sortBy value", http.StatusBadRequest)
			return
		}

		limit := defaultLeaderboardLimit
		if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
			parsed, err := strconv.Atoi(limitStr)
			if err != nil || parsed <= 0 {
				http.Error(w, "Invalid limit value", http.StatusBadRequest)
				return
			}
			limit = parsed
		}

		entries, err := s.Store.GetLeaderboard(r.Context(), metric, limit)
		if err != nil {
			http.Error(w, "Failed to load leaderboard", http.StatusInternalServerError)
			return
		}

		respondJSON(w, http.StatusOK, entries)
	}
}

// HandleMetrics exposes the in-process metrics snapshot
func (s *Server) HandleMetrics() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		respondJSON(w, http.StatusOK, s.Metrics.Snapshot())
	}
}
