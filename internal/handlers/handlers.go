package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"algoquest/internal/ai"
	"algoquest/internal/database"
	"algoquest/internal/engine"
	"algoquest/internal/utils"
	"algoquest/internal/websocket"

	"github.com/asynkron/protoactor-go/actor"
)

// Server holds all server dependencies, including the actor system and engine
type Server struct {
	System         *actor.ActorSystem
	Context        *actor.RootContext
	Engine         *engine.Engine
	Metrics        *utils.MetricsCollector
	Store          database.Store
	Hub            *websocket.Hub
	Tutor          *ai.Tutor
	RequestTimeout time.Duration
}

// NewServer creates a new Server instance with the given components
func NewServer(
	system *actor.ActorSystem,
	eng *engine.Engine,
	metrics *utils.MetricsCollector,
	store database.Store,
	hub *websocket.Hub,
	tutor *ai.Tutor,
) *Server {
	return &Server{
		System:         system,
		Context:        system.Root,
		Engine:         eng,
		Metrics:        metrics,
		Store:          store,
		Hub:            hub,
		Tutor:          tutor,
		RequestTimeout: 5 * time.Second, // Default timeout for actor requests
	}
}

// HandleHealth handles health check requests
func (s *Server) HandleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		userCount, err := s.Store.CountUsers(r.Context())
		if err != nil {
			http.Error(w, "Failed to get user count", http.StatusInternalServerError)
			return
		}
		problemCount, err := s.Store.CountProblems(r.Context())
		if err != nil {
			http.Error(w, "Failed to get problem count", http.StatusInternalServerError)
			return
		}

		respondJSON(w, http.StatusOK, map[string]interface{}{
			"status":        "healthy",
			"user_count":    userCount,
			"problem_count": problemCount,
			"server_time":   time.Now(),
		})
	}
}

// respondJSON writes a JSON body with the given status code.
func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// respondAppError maps an application error onto the HTTP status space and
// writes a JSON error body.
func respondAppError(w http.ResponseWriter, appErr *utils.AppError) {
	respondJSON(w, utils.AppErrorToHTTPStatus(appErr.Code), map[string]string{
		"error": appErr.Message,
		"code":  appErr.Code,
	})
}

// respondActorResult handles the common tail of an actor round-trip: either
// the actor answered with an AppError or with the payload to serialize.
func respondActorResult(w http.ResponseWriter, result interface{}) {
	if appErr, ok := result.(*utils.AppError); ok {
		respondAppError(w, appErr)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
