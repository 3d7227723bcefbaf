// internal/database/activity_repository.go
package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ActivityDocument is one user's solve counter for one calendar day,
// keyed by a YYYY-MM-DD date string.
type ActivityDocument struct {
	ID          string `bson:"_id"`
	UserID      string `bson:"userId"`
	Date        string `bson:"date"`
	SolvedCount int    `bson:"solvedCount"`
}

// IncrementDailySolves bumps the solve counter for the given day, creating
// the document on first solve. The activity log is historical: un-solving a
// problem later does not rewrite it.
func (m *MongoDB) IncrementDailySolves(ctx context.Context, userID uuid.UUID, date string) error {
	filter := bson.M{"userId": userID.String(), "date": date}
	update := bson.M{
		"$inc":         bson.M{"solvedCount": 1},
		"$setOnInsert": bson.M{"_id": uuid.New().String()},
	}

	_, err := m.Activity.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// GetDailySolves returns the solve counts for the requested days. Days with
// no document are simply absent from the result map.
func (m *MongoDB) GetDailySolves(ctx context.Context, userID uuid.UUID, dates []string) (map[string]int, error) {
	cursor, err := m.Activity.Find(ctx, bson.M{
		"userId": userID.String(),
		"date":   bson.M{"$in": dates},
	})
	if err != nil {
		return nil, fmt.Errorf("database query failed: %v", err)
	}
	defer cursor.Close(ctx)

	counts := make(map[string]int, len(dates))
	for cursor.Next(ctx) {
		var doc ActivityDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode activity document: %v", err)
		}
		counts[doc.Date] = doc.SolvedCount
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor iteration failed: %v", err)
	}

	return counts, nil
}
