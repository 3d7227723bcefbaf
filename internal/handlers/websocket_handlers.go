package handlers

import (
	"log"
	"net/http"

	"algoquest/internal/middleware"
	"algoquest/internal/websocket"

	"github.com/google/uuid"
	ws "github.com/gorilla/websocket"
)

var upgrader = ws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: check against Config.AllowedOrigins once the frontend origin is fixed
		return true
	},
}

// HandleWebSocket handles WebSocket connection requests. Browsers cannot set
// headers on the upgrade request, so the JWT arrives as a query parameter.
func (s *Server) HandleWebSocket() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenString := r.URL.Query().Get("token")
		if tokenString == "" {
			http.Error(w, "Missing authentication token", http.StatusUnauthorized)
			return
		}

		claims, err := middleware.ValidateToken(tokenString)
		if err != nil {
			log.Printf("WebSocket connection failed: Invalid token: %v", err)
			http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
			return
		}

		userID := claims.UserID
		if userID == uuid.Nil {
			http.Error(w, "Invalid user ID in token", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("WebSocket upgrade failed for User %s: %v", userID, err)
			return
		}

		client := &websocket.Client{
			Hub:    s.Hub,
			UserID: userID,
			Conn:   conn,
			Send:   make(chan []byte, 256),
		}
		client.Hub.Register <- client

		go client.WritePump()
		go client.ReadPump()
	}
}
