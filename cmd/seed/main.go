// Seeds the content collections with the curated curriculum. Safe to re-run;
// all writes are upserts.
package main

import (
	"context"
	"log"
	"time"

	"algoquest/internal/config"
	"algoquest/internal/database"
	"algoquest/internal/seed"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	mongodb, err := database.NewMongoDB(cfg.Database.URI, cfg.Database.Name)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		mongodb.Close(ctx)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := mongodb.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	count, err := seed.Load(ctx, mongodb)
	if err != nil {
		log.Fatalf("Seeding failed after %d problems: %v", count, err)
	}

	log.Printf("Seeded %d problems", count)
}
