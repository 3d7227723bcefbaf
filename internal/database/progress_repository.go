// internal/database/progress_repository.go
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"algoquest/internal/models"
	"algoquest/internal/utils"
)

// ProgressDocument represents the MongoDB schema for a progress record.
// A missing document is an implicit todo / not-bookmarked / no-note state.
type ProgressDocument struct {
	ID           string    `bson:"_id"`
	UserID       string    `bson:"userId"`
	ProblemID    string    `bson:"problemId"`
	Status       string    `bson:"status"`
	IsBookmarked bool      `bson:"isBookmarked"`
	Notes        string    `bson:"notes"`
	UpdatedAt    time.Time `bson:"updatedAt"`
}

func progressDocumentToModel(doc *ProgressDocument) (*models.ProgressRecord, error) {
	userID, err := uuid.Parse(doc.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID in database: %v", err)
	}

	return &models.ProgressRecord{
		ID:           doc.ID,
		UserID:       userID,
		ProblemID:    doc.ProblemID,
		Status:       models.ProgressStatus(doc.Status),
		IsBookmarked: doc.IsBookmarked,
		Notes:        doc.Notes,
		UpdatedAt:    doc.UpdatedAt,
	}, nil
}

// GetProgress retrieves the progress record for one (user, problem) pair.
func (m *MongoDB) GetProgress(ctx context.Context, userID uuid.UUID, problemID string) (*models.ProgressRecord, error) {
	var doc ProgressDocument

	filter := bson.M{"userId": userID.String(), "problemId": problemID}
	err := m.Progress.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrNotFound, "Progress record not found", err)
	}
	if err != nil {
		return nil, err
	}

	return progressDocumentToModel(&doc)
}

// SetProgressStatus upserts the status and returns the status it replaced.
// FindOneAndUpdate with ReturnDocument(Before) captures the previous state in
// the same storage operation, so the caller's edge-trigger decision is not
// racing a second writer; the unique (userId, problemId) index backstops the
// lost-insert case.
func (m *MongoDB) SetProgressStatus(ctx context.Context, userID uuid.UUID, problemID string, status models.ProgressStatus, at time.Time) (models.ProgressStatus, error) {
	filter := bson.M{"userId": userID.String(), "problemId": problemID}
	update := bson.M{
		"$set": bson.M{"status": string(status), "updatedAt": at},
		"$setOnInsert": bson.M{
			"_id":          uuid.New().String(),
			"isBookmarked": false,
			"notes":        "",
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.Before)

	var before ProgressDocument
	err := m.Progress.FindOneAndUpdate(ctx, filter, update, opts).Decode(&before)
	if err == mongo.ErrNoDocuments {
		// Record created by this call; the implicit previous status is todo.
		return models.StatusTodo, nil
	}
	if mongo.IsDuplicateKeyError(err) {
		// Lost an insert race; the record now exists, retry as a plain update.
		err = m.Progress.FindOneAndUpdate(ctx, filter,
			bson.M{"$set": bson.M{"status": string(status), "updatedAt": at}},
			options.FindOneAndUpdate().SetReturnDocument(options.Before),
		).Decode(&before)
	}
	if err != nil {
		return "", fmt.Errorf("failed to update progress status: %v", err)
	}

	return models.ProgressStatus(before.Status), nil
}

// SetProgressBookmark upserts the bookmark flag on the progress record.
func (m *MongoDB) SetProgressBookmark(ctx context.Context, userID uuid.UUID, problemID string, bookmarked bool, at time.Time) error {
	filter := bson.M{"userId": userID.String(), "problemId": problemID}
	update := bson.M{
		"$set": bson.M{"isBookmarked": bookmarked, "updatedAt": at},
		"$setOnInsert": bson.M{
			"_id":    uuid.New().String(),
			"status": string(models.StatusTodo),
			"notes":  "",
		},
	}

	_, err := m.Progress.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if mongo.IsDuplicateKeyError(err) {
		_, err = m.Progress.UpdateOne(ctx, filter,
			bson.M{"$set": bson.M{"isBookmarked": bookmarked, "updatedAt": at}})
	}
	return err
}

// SetProgressNotes upserts the free-text note. The empty string is the
// documented "deleted" representation.
func (m *MongoDB) SetProgressNotes(ctx context.Context, userID uuid.UUID, problemID string, notes string, at time.Time) error {
	filter := bson.M{"userId": userID.String(), "problemId": problemID}
	update := bson.M{
		"$set": bson.M{"notes": notes, "updatedAt": at},
		"$setOnInsert": bson.M{
			"_id":          uuid.New().String(),
			"status":       string(models.StatusTodo),
			"isBookmarked": false,
		},
	}

	_, err := m.Progress.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if mongo.IsDuplicateKeyError(err) {
		_, err = m.Progress.UpdateOne(ctx, filter,
			bson.M{"$set": bson.M{"notes": notes, "updatedAt": at}})
	}
	return err
}

// ListUserProgress retrieves all progress records for a user.
func (m *MongoDB) ListUserProgress(ctx context.Context, userID uuid.UUID) ([]*models.ProgressRecord, error) {
	cursor, err := m.Progress.Find(ctx, bson.M{"userId": userID.String()})
	if err != nil {
		return nil, fmt.Errorf("database query failed: %v", err)
	}
	defer cursor.Close(ctx)

	records := []*models.ProgressRecord{}
	for cursor.Next(ctx) {
		var doc ProgressDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode progress record: %v", err)
		}

		record, err := progressDocumentToModel(&doc)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor iteration failed: %v", err)
	}

	return records, nil
}
