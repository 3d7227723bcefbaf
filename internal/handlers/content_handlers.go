package handlers

import (
	"net/http"
	"time"

	"algoquest/internal/gamification"
	"algoquest/internal/utils"
)

// HandleLearningPaths handles requests to list the learning paths
func (s *Server) HandleLearningPaths() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		if id := r.URL.Query().Get("id"); id != "" {
			path, err := s.Store.GetLearningPath(r.Context(), id)
			if err != nil {
				if appErr, ok := err.(*utils.AppError); ok {
					respondAppError(w, appErr)
					return
				}
				http.Error(w, "Failed to get learning path", http.StatusInternalServerError)
				return
			}
			respondJSON(w, http.StatusOK, path)
			return
		}

		paths, err := s.Store.ListLearningPaths(r.Context())
		if err != nil {
			http.Error(w, "Failed to list learning paths", http.StatusInternalServerError)
			return
		}

		respondJSON(w, http.StatusOK, paths)
	}
}

// HandleTopics handles requests to list topics, optionally scoped to a path
func (s *Server) HandleTopics() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		topics, err := s.Store.ListTopics(r.Context(), r.URL.Query().Get("pathId"))
		if err != nil {
			http.Error(w, "Failed to list topics", http.StatusInternalServerError)
			return
		}

		respondJSON(w, http.StatusOK, topics)
	}
}

// HandleProblems handles requests to list problems, optionally scoped to a topic
func (s *Server) HandleProblems() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		problems, err := s.Store.ListProblems(r.Context(), r.URL.Query().Get("topicId"))
		if err != nil {
			http.Error(w, "Failed to list problems", http.StatusInternalServerError)
			return
		}

		respondJSON(w, http.StatusOK, problems)
	}
}

// HandleGetProblem handles requests to fetch a single problem by ID
func (s *Server) HandleGetProblem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		problemID := r.URL.Query().Get("id")
		if problemID == "" {
			http.Error(w, "Problem ID required", http.StatusBadRequest)
			return
		}

		problem, err := s.Store.GetProblem(r.Context(), problemID)
		if err != nil {
			if appErr, ok := err.(*utils.AppError); ok {
				respondAppError(w, appErr)
				return
			}
			http.Error(w, "Failed to get problem", http.StatusInternalServerError)
			return
		}

		respondJSON(w, http.StatusOK, problem)
	}
}

// HandleDailyChallenge handles requests for today's challenge. The pick is a
// deterministic rotation over the slug-ordered problem list, so every user
// sees the same problem on a given date.
func (s *Server) HandleDailyChallenge() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		problems, err := s.Store.ListProblems(r.Context(), "")
		if err != nil {
			http.Error(w, "Failed to list problems", http.StatusInternalServerError)
			return
		}
		if len(problems) == 0 {
			http.Error(w, "No problems available", http.StatusNotFound)
			return
		}

		dateKey := gamification.DateKey(time.Now())
		index := gamification.DailyChallengeIndex(dateKey, len(problems))

		respondJSON(w, http.StatusOK, map[string]interface{}{
			"date":    dateKey,
			"problem": problems[index],
		})
	}
}
