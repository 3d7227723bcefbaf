// internal/database/user_repository.go
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"algoquest/internal/gamification"
	"algoquest/internal/models"
	"algoquest/internal/utils"
)

// UserDocument represents the MongoDB schema for a user
type UserDocument struct {
	ID             string               `bson:"_id"`            // MongoDB primary key
	Username       string               `bson:"username"`       // Username
	Email          string               `bson:"email"`          // Email address
	HashedPassword string               `bson:"hashedPassword"` // Hashed password
	XPPoints       int                  `bson:"xpPoints"`       // Experience points
	StreakDays     int                  `bson:"streakDays"`     // Consecutive active days
	LastActive     time.Time            `bson:"lastActive"`     // Last active timestamp
	CreatedAt      time.Time            `bson:"createdAt"`      // Account creation timestamp
	SolvedProblems []SolvedProblemEntry `bson:"solvedProblems"` // Denormalized solved-set
	Bookmarks      []string             `bson:"bookmarks"`      // Denormalized bookmark-set
}

type SolvedProblemEntry struct {
	ProblemID string    `bson:"problemId"`
	SolvedAt  time.Time `bson:"solvedAt"`
}

func userDocumentToModel(doc *UserDocument) (*models.User, error) {
	userID, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID in database: %v", err)
	}

	solved := make([]models.SolvedProblem, len(doc.SolvedProblems))
	for i, s := range doc.SolvedProblems {
		solved[i] = models.SolvedProblem{ProblemID: s.ProblemID, SolvedAt: s.SolvedAt}
	}

	bookmarks := doc.Bookmarks
	if bookmarks == nil {
		bookmarks = []string{}
	}

	return &models.User{
		ID:             userID,
		Username:       doc.Username,
		Email:          doc.Email,
		HashedPassword: doc.HashedPassword,
		XPPoints:       doc.XPPoints,
		StreakDays:     doc.StreakDays,
		LastActive:     doc.LastActive,
		CreatedAt:      doc.CreatedAt,
		SolvedProblems: solved,
		Bookmarks:      bookmarks,
	}, nil
}

// SaveUser creates or updates a user in MongoDB
func (m *MongoDB) SaveUser(ctx context.Context, user *models.User) error {
	doc := UserDocument{
		ID:             user.ID.String(),
		Username:       user.Username,
		Email:          user.Email,
		HashedPassword: user.HashedPassword,
		XPPoints:       user.XPPoints,
		StreakDays:     user.StreakDays,
		LastActive:     user.LastActive,
		CreatedAt:      user.CreatedAt,
		SolvedProblems: make([]SolvedProblemEntry, len(user.SolvedProblems)),
		Bookmarks:      user.Bookmarks,
	}
	for i, s := range user.SolvedProblems {
		doc.SolvedProblems[i] = SolvedProblemEntry{ProblemID: s.ProblemID, SolvedAt: s.SolvedAt}
	}
	if doc.Bookmarks == nil {
		doc.Bookmarks = []string{}
	}

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": user.ID.String()}
	update := bson.M{"$set": doc}

	_, err := m.Users.UpdateOne(ctx, filter, update, opts)
	return err
}

// GetUser retrieves a user from MongoDB by their ID
func (m *MongoDB) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var doc UserDocument

	err := m.Users.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrUserNotFound, "User not found", err)
	}
	if err != nil {
		return nil, err
	}

	return userDocumentToModel(&doc)
}

// GetUserByEmail retrieves a user from MongoDB by their email address
func (m *MongoDB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var doc UserDocument

	err := m.Users.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrUserNotFound, "User not found", err)
	}
	if err != nil {
		return nil, err
	}

	return userDocumentToModel(&doc)
}

// RecordLogin refreshes the last-active timestamp and stores the streak value
// the login hook computed from it.
func (m *MongoDB) RecordLogin(ctx context.Context, userID uuid.UUID, at time.Time, streakDays int) error {
	filter := bson.M{"_id": userID.String()}
	update := bson.M{"$set": bson.M{
		"lastActive": at,
		"streakDays": streakDays,
	}}

	result, err := m.Users.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return utils.NewAppError(utils.ErrUserNotFound, "User not found", nil)
	}
	return nil
}

// ApplySolveReward credits the fixed XP reward and records the problem in the
// solved-set, in one atomic update on the user document. The filter keys
// membership on problemId, so a solve already in the set never inserts a
// duplicate or double-credits XP.
func (m *MongoDB) ApplySolveReward(ctx context.Context, userID uuid.UUID, problemID string, at time.Time) error {
	filter := bson.M{
		"_id":                      userID.String(),
		"solvedProblems.problemId": bson.M{"$ne": problemID},
	}
	update := bson.M{
		"$inc": bson.M{"xpPoints": gamification.XPPerSolve},
		"$push": bson.M{"solvedProblems": SolvedProblemEntry{
			ProblemID: problemID,
			SolvedAt:  at,
		}},
		"$set": bson.M{"lastActive": at},
	}

	result, err := m.Users.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		// Either the user is unknown or the problem is already in the set.
		count, err := m.Users.CountDocuments(ctx, bson.M{"_id": userID.String()})
		if err != nil {
			return err
		}
		if count == 0 {
			return utils.NewAppError(utils.ErrUserNotFound, "User not found", nil)
		}
	}
	return nil
}

// RevokeSolveReward reverses ApplySolveReward when a problem is un-solved.
func (m *MongoDB) RevokeSolveReward(ctx context.Context, userID uuid.UUID, problemID string) error {
	filter := bson.M{"_id": userID.String()}
	update := bson.M{
		"$inc":  bson.M{"xpPoints": -gamification.XPPerSolve},
		"$pull": bson.M{"solvedProblems": bson.M{"problemId": problemID}},
	}

	result, err := m.Users.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return utils.NewAppError(utils.ErrUserNotFound, "User not found", nil)
	}
	return nil
}

// SetUserBookmark mirrors the progress-record bookmark flag into the user's
// bookmark-set.
func (m *MongoDB) SetUserBookmark(ctx context.Context, userID uuid.UUID, problemID string, bookmarked bool) error {
	filter := bson.M{"_id": userID.String()}
	var update bson.M

	if bookmarked {
		update = bson.M{"$addToSet": bson.M{"bookmarks": problemID}}
	} else {
		update = bson.M{"$pull": bson.M{"bookmarks": problemID}}
	}

	result, err := m.Users.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return utils.NewAppError(utils.ErrUserNotFound, "User not found", nil)
	}
	return nil
}

// CountUsers returns the total user count for percentile computation.
func (m *MongoDB) CountUsers(ctx context.Context) (int64, error) {
	return m.Users.CountDocuments(ctx, bson.M{})
}

// CountUsersWithMoreXP counts users with strictly greater XP; rank is one
// more than this.
func (m *MongoDB) CountUsersWithMoreXP(ctx context.Context, xp int) (int64, error) {
	return m.Users.CountDocuments(ctx, bson.M{"xpPoints": bson.M{"$gt": xp}})
}

// GetLeaderboard returns the top users ordered by the chosen metric, ranked
// by position in the sorted result.
func (m *MongoDB) GetLeaderboard(ctx context.Context, metric models.LeaderboardMetric, limit int) ([]*models.LeaderboardEntry, error) {
	sortField := "xpPoints"
	switch metric {
	case models.MetricStreak:
		sortField = "streakDays"
	case models.MetricSolved:
		sortField = "solvedCount"
	}

	pipeline := []bson.M{
		{"$addFields": bson.M{
			"solvedCount": bson.M{"$size": bson.M{"$ifNull": bson.A{"$solvedProblems", bson.A{}}}},
		}},
		{"$sort": bson.D{{Key: sortField, Value: -1}}},
		{"$limit": limit},
	}

	cursor, err := m.Users.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch leaderboard: %v", err)
	}
	defer cursor.Close(ctx)

	var entries []*models.LeaderboardEntry
	for cursor.Next(ctx) {
		var doc struct {
			ID          string `bson:"_id"`
			Username    string `bson:"username"`
			XPPoints    int    `bson:"xpPoints"`
			StreakDays  int    `bson:"streakDays"`
			SolvedCount int    `bson:"solvedCount"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode leaderboard entry: %v", err)
		}
		entries = append(entries, &models.LeaderboardEntry{
			Rank:           len(entries) + 1,
			UserID:         doc.ID,
			Username:       doc.Username,
			XPPoints:       doc.XPPoints,
			StreakDays:     doc.StreakDays,
			ProblemsSolved: doc.SolvedCount,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor iteration failed: %v", err)
	}

	return entries, nil
}
