package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"algoquest/internal/ai"
	"algoquest/internal/middleware"
	"algoquest/internal/utils"
)

// TutorChatRequest carries the conversation so far. The client keeps the
// history; the server is stateless here.
type TutorChatRequest struct {
	Messages []ai.Message `json:"messages"`
}

// TutorChatResponse is the tutor's reply
type TutorChatResponse struct {
	Reply string `json:"reply"`
}

// HandleTutorChat handles requests to the AI tutor
func (s *Server) HandleTutorChat() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		if _, ok := middleware.GetUserIDFromContext(r.Context()); !ok {
			respondAppError(w, utils.NewUnauthorizedError("missing user identity"))
			return
		}

		if s.Tutor == nil {
			respondAppError(w, utils.NewAppError(utils.ErrTutorUnavailable, "Tutor is not configured", nil))
			return
		}

		var req TutorChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		if len(req.Messages) == 0 {
			http.Error(w, "At least one message required", http.StatusBadRequest)
			return
		}

		reply, err := s.Tutor.Chat(r.Context(), req.Messages)
		if err != nil {
			log.Printf("Tutor chat failed: %v", err)
			if appErr, ok := err.(*utils.AppError); ok {
				respondAppError(w, appErr)
				return
			}
			http.Error(w, "Tutor request failed", http.StatusBadGateway)
			return
		}

		respondJSON(w, http.StatusOK, &TutorChatResponse{Reply: reply})
	}
}
