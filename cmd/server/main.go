package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"algoquest/internal/ai"
	"algoquest/internal/config"
	"algoquest/internal/database"
	"algoquest/internal/engine"
	"algoquest/internal/handlers"
	"algoquest/internal/middleware"
	"algoquest/internal/utils"
	"algoquest/internal/websocket"

	"github.com/asynkron/protoactor-go/actor"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	metrics := utils.NewMetricsCollector()

	mongodb, err := database.NewMongoDB(cfg.Database.URI, cfg.Database.Name)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongodb.Close(ctx); err != nil {
			log.Printf("Error closing MongoDB connection: %v", err)
		}
	}()

	{
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := mongodb.EnsureIndexes(ctx); err != nil {
			cancel()
			log.Fatalf("Failed to create indexes: %v", err)
		}
		cancel()
	}

	hub := websocket.NewHub()
	go hub.Run()

	var tutor *ai.Tutor
	if cfg.Tutor.APIKey != "" {
		tutor, err = ai.NewTutor(cfg.Tutor)
		if err != nil {
			log.Fatalf("Failed to initialize tutor: %v", err)
		}
	} else {
		log.Println("Tutor API key not set, /tutor/chat will be unavailable")
	}

	system := actor.NewActorSystem()
	questEngine := engine.NewEngine(system, mongodb, hub, metrics)

	server := handlers.NewServer(system, questEngine, metrics, mongodb, hub, tutor)

	corsConfig := middleware.DefaultCORSConfig(cfg.AllowedOrigins)
	mux := http.NewServeMux()

	route := func(path string, handler http.HandlerFunc) {
		mux.HandleFunc(path, middleware.ApplyCORS(middleware.ApplyJWTMiddleware(handler, path), corsConfig))
	}

	route("/health", server.HandleHealth())
	route("/user/register", server.HandleUserRegistration())
	route("/user/login", server.HandleUserLogin())
	route("/user/profile", server.HandleUserProfile())

	route("/paths", server.HandleLearningPaths())
	route("/topics", server.HandleTopics())
	route("/problems", server.HandleProblems())
	route("/problems/get", server.HandleGetProblem())
	route("/daily-challenge", server.HandleDailyChallenge())

	route("/problems/status", server.HandleSetStatus())
	route("/problems/bookmark", server.HandleToggleBookmark())
	route("/problems/notes", server.HandleSaveNotes())
	route("/progress", server.HandleGetProgress())

	route("/dashboard-stats", server.HandleDashboardStats())
	route("/leaderboard", server.HandleLeaderboard())

	route("/forum/posts", server.HandleForumPosts())
	route("/forum/posts/get", server.HandleGetForumPost())
	route("/forum/posts/reply", server.HandleForumReply())
	route("/forum/posts/like", server.HandleForumPostLike())
	route("/forum/posts/reply/like", server.HandleForumReplyLike())

	route("/tutor/chat", server.HandleTutorChat())

	if cfg.Server.MetricsEnabled {
		route("/metrics", server.HandleMetrics())
	}

	// WebSocket authenticates via token query param, not the JWT header
	mux.HandleFunc("/ws", server.HandleWebSocket())

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Starting server on %s", serverAddr)
	if err := http.ListenAndServe(serverAddr, mux); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
