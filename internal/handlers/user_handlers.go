package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"algoquest/internal/engine/actors"
	"algoquest/internal/middleware"
	"algoquest/internal/types"
	"algoquest/internal/utils"

	"github.com/google/uuid"
)

// RegisterUserRequest represents a request to register a new user
type RegisterUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a request to log in a user
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleUserRegistration handles requests to register a new user
func (s *Server) HandleUserRegistration() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req RegisterUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		future := s.Context.RequestFuture(
			s.Engine.GetUserActor(),
			&actors.RegisterUserMsg{
				Username: req.Username,
				Email:    req.Email,
				Password: req.Password,
			},
			s.RequestTimeout,
		)

		result, err := future.Result()
		if err != nil {
			log.Printf("HTTP Handler: Registration request failed: %v", err)
			http.Error(w, "Failed to register user", http.StatusInternalServerError)
			return
		}

		respondActorResult(w, result)
	}
}

// HandleUserLogin handles requests to log in a user
func (s *Server) HandleUserLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		future := s.Context.RequestFuture(
			s.Engine.GetUserActor(),
			&actors.LoginMsg{
				Email:    req.Email,
				Password: req.Password,
			},
			s.RequestTimeout,
		)

		result, err := future.Result()
		if err != nil {
			log.Printf("HTTP Handler: Error getting login result: %v", err)
			http.Error(w, "Failed to process login", http.StatusInternalServerError)
			return
		}

		loginResp, ok := result.(*types.LoginResponse)
		if !ok {
			log.Printf("HTTP Handler: Invalid response type: %T", result)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		// Only generate token if login was successful
		if loginResp.Success {
			userID, err := uuid.Parse(loginResp.UserID)
			if err != nil {
				log.Printf("HTTP Handler: Invalid user ID format: %v", err)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}

			token, err := middleware.GenerateToken(userID)
			if err != nil {
				log.Printf("HTTP Handler: Failed to generate token: %v", err)
				http.Error(w, "Failed to generate auth token", http.StatusInternalServerError)
				return
			}

			loginResp.Token = token
		}

		respondJSON(w, http.StatusOK, loginResp)
	}
}

// HandleUserProfile handles requests to get a user's profile. Without a
// userId query parameter it returns the authenticated user's own profile.
func (s *Server) HandleUserProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var userID uuid.UUID
		if userIDStr := r.URL.Query().Get("userId"); userIDStr != "" {
			parsed, err := uuid.Parse(userIDStr)
			if err != nil {
				http.Error(w, "Invalid user ID format", http.StatusBadRequest)
				return
			}
			userID = parsed
		} else {
			authed, ok := middleware.GetUserIDFromContext(r.Context())
			if !ok {
				respondAppError(w, utils.NewUnauthorizedError("missing user identity"))
				return
			}
			userID = authed
		}

		future := s.Context.RequestFuture(
			s.Engine.GetUserActor(),
			&actors.GetUserProfileMsg{UserID: userID},
			s.RequestTimeout,
		)

		result, err := future.Result()
		if err != nil {
			http.Error(w, "Failed to get user profile", http.StatusInternalServerError)
			return
		}

		respondActorResult(w, result)
	}
}
