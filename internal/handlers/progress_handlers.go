package handlers

import (
	"encoding/json"
	"net/http"

	"algoquest/internal/engine/actors"
	"algoquest/internal/middleware"
	"algoquest/internal/models"
	"algoquest/internal/utils"
)

// SetStatusRequest represents a request to change a problem's solve status
type SetStatusRequest struct {
	ProblemID string `json:"problemId"`
	Status    string `json:"status"`
}

// BookmarkRequest represents a request to toggle a problem bookmark
type BookmarkRequest struct {
	ProblemID string `json:"problemId"`
}

// NotesRequest represents a request to save a note on a problem
type NotesRequest struct {
	ProblemID string `json:"problemId"`
	Notes     string `json:"notes"`
}

// HandleSetStatus handles requests to change a problem's status for the
// authenticated user
func (s *Server) HandleSetStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		userID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			respondAppError(w, utils.NewUnauthorizedError("missing user identity"))
			return
		}

		var req SetStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		status, valid := models.ParseProgressStatus(req.Status)
		if !valid {
			respondAppError(w, utils.NewInvalidStatusError(req.Status))
			return
		}
		if req.ProblemID == "" {
			http.Error(w, "Problem ID required", http.StatusBadRequest)
			return
		}

		future := s.Context.RequestFuture(
			s.Engine.GetProgressActor(),
			&actors.SetStatusMsg{
				UserID:    userID,
				ProblemID: req.ProblemID,
				Status:    status,
			},
			s.RequestTimeout,
		)

		result, err := future.Result()
		if err != nil {
			http.Error(w, "Failed to update status", http.StatusInternalServerError)
			return
		}

		respondActorResult(w, result)
	}
}

// HandleToggleBookmark handles requests to flip a problem bookmark
func (s *Server) HandleToggleBookmark() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		userID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			respondAppError(w, utils.NewUnauthorizedError("missing user identity"))
			return
		}

		var req BookmarkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		if req.ProblemID == "" {
			http.Error(w, "Problem ID required", http.StatusBadRequest)
			return
		}

		future := s.Context.RequestFuture(
			s.Engine.GetProgressActor(),
			&actors.ToggleBookmarkMsg{
				UserID:    userID,
				ProblemID: req.ProblemID,
			},
			s.RequestTimeout,
		)

		result, err := future.Result()
		if err != nil {
			http.Error(w, "Failed to toggle bookmark", http.StatusInternalServerError)
			return
		}

		respondActorResult(w, result)
	}
}

// HandleSaveNotes handles requests to save per-problem notes. An empty notes
// string clears the note.
func (s *Server) HandleSaveNotes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut && r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		userID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			respondAppError(w, utils.NewUnauthorizedError("missing user identity"))
			return
		}

		var req NotesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		if req.ProblemID == "" {
			http.Error(w, "Problem ID required", http.StatusBadRequest)
			return
		}

		future := s.Context.RequestFuture(
			s.Engine.GetProgressActor(),
			&actors.WriteNoteMsg{
				UserID:    userID,
				ProblemID: req.ProblemID,
				Notes:     req.Notes,
			},
			s.RequestTimeout,
		)

		result, err := future.Result()
		if err != nil {
			http.Error(w, "Failed to save notes", http.StatusInternalServerError)
			return
		}

		respondActorResult(w, result)
	}
}

// HandleGetProgress handles requests to list all of the authenticated user's
// progress records. Reads go straight to the store.
func (s *Server) HandleGetProgress() http.HandlerFunc {
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

		records, err := s.Store.ListUserProgress(r.Context(), userID)
		if err != nil {
			http.Error(w, "Failed to list progress", http.StatusInternalServerError)
			return
		}

		respondJSON(w, http.StatusOK, records)
	}
}
