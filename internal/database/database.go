// internal/database/mongodb.go
package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"algoquest/internal/models"
)

// UserStore covers the user aggregate: identity plus the denormalized
// XP/streak/solved/bookmark bookkeeping.
type UserStore interface {
	SaveUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	RecordLogin(ctx context.Context, userID uuid.UUID, at time.Time, streakDays int) error
	ApplySolveReward(ctx context.Context, userID uuid.UUID, problemID string, at time.Time) error
	RevokeSolveReward(ctx context.Context, userID uuid.UUID, problemID string) error
	SetUserBookmark(ctx context.Context, userID uuid.UUID, problemID string, bookmarked bool) error
	CountUsers(ctx context.Context) (int64, error)
	CountUsersWithMoreXP(ctx context.Context, xp int) (int64, error)
	GetLeaderboard(ctx context.Context, metric models.LeaderboardMetric, limit int) ([]*models.LeaderboardEntry, error)
}

// ProgressStore covers the per-(user, problem) progress records.
type ProgressStore interface {
	GetProgress(ctx context.Context, userID uuid.UUID, problemID string) (*models.ProgressRecord, error)
	SetProgressStatus(ctx context.Context, userID uuid.UUID, problemID string, status models.ProgressStatus, at time.Time) (models.ProgressStatus, error)
	SetProgressBookmark(ctx context.Context, userID uuid.UUID, problemID string, bookmarked bool, at time.Time) error
	SetProgressNotes(ctx context.Context, userID uuid.UUID, problemID string, notes string, at time.Time) error
	ListUserProgress(ctx context.Context, userID uuid.UUID) ([]*models.ProgressRecord, error)
}

// ActivityStore covers the per-day solve counters behind weeklyActivity.
type ActivityStore interface {
	IncrementDailySolves(ctx context.Context, userID uuid.UUID, date string) error
	GetDailySolves(ctx context.Context, userID uuid.UUID, dates []string) (map[string]int, error)
}

// ContentStore covers the seeded, read-only curriculum.
type ContentStore interface {
	SaveProblem(ctx context.Context, problem *models.Problem) error
	SaveTopic(ctx context.Context, topic *models.Topic) error
	SaveLearningPath(ctx context.Context, path *models.LearningPath) error
	GetProblem(ctx context.Context, id string) (*models.Problem, error)
	ListProblems(ctx context.Context, topicID string) ([]*models.Problem, error)
	ListTopics(ctx context.Context, pathID string) ([]*models.Topic, error)
	GetLearningPath(ctx context.Context, id string) (*models.LearningPath, error)
	ListLearningPaths(ctx context.Context) ([]*models.LearningPath, error)
	CountProblems(ctx context.Context) (int64, error)
}

// ForumStore covers discussion posts, embedded replies and like-sets.
type ForumStore interface {
	SaveForumPost(ctx context.Context, post *models.ForumPost) error
	GetForumPost(ctx context.Context, id uuid.UUID) (*models.ForumPost, error)
	AppendReply(ctx context.Context, postID uuid.UUID, reply *models.Reply) error
	SetPostLike(ctx context.Context, postID uuid.UUID, userID string, liked bool) error
	SetReplyLike(ctx context.Context, postID, replyID uuid.UUID, userID string, liked bool) error
	ListForumPosts(ctx context.Context, sort models.ForumSort, page, pageSize int) ([]*models.ForumPost, int64, error)
	CountForumPosts(ctx context.Context) (int64, error)
}

// Store is the full storage surface backed by MongoDB.
type Store interface {
	UserStore
	ProgressStore
	ActivityStore
	ContentStore
	ForumStore
	Close(ctx context.Context) error
}

type MongoDB struct {
	Client   *mongo.Client
	Users    *mongo.Collection
	Problems *mongo.Collection
	Topics   *mongo.Collection
	Paths    *mongo.Collection
	Progress *mongo.Collection
	Activity *mongo.Collection
	Posts    *mongo.Collection
}

var _ Store = (*MongoDB)(nil)

func NewMongoDB(uri, dbName string) (*MongoDB, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %v", err)
	}

	// Ping the database to verify connection
	if err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %v", err)
	}

	log.Println("Successfully connected to MongoDB!")

	db := client.Database(dbName)
	return &MongoDB{
		Client:   client,
		Users:    db.Collection("users"),
		Problems: db.Collection("problems"),
		Topics:   db.Collection("topics"),
		Paths:    db.Collection("paths"),
		Progress: db.Collection("progress"),
		Activity: db.Collection("activity"),
		Posts:    db.Collection("posts"),
	}, nil
}

// EnsureIndexes creates the indexes the invariants depend on. The unique
// compound index on progress (userId, problemId) is what turns a concurrent
// duplicate insert into a retryable error instead of a double record.
func (m *MongoDB) EnsureIndexes(ctx context.Context) error {
	userIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "xpPoints", Value: -1}},
		},
	}
	if _, err := m.Users.Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("failed to create user indexes: %v", err)
	}

	progressIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "userId", Value: 1},
				{Key: "problemId", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := m.Progress.Indexes().CreateMany(ctx, progressIndexes); err != nil {
		return fmt.Errorf("failed to create progress indexes: %v", err)
	}

	activityIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "userId", Value: 1},
				{Key: "date", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := m.Activity.Indexes().CreateMany(ctx, activityIndexes); err != nil {
		return fmt.Errorf("failed to create activity indexes: %v", err)
	}

	postIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "createdAt", Value: -1}},
		},
	}
	if _, err := m.Posts.Indexes().CreateMany(ctx, postIndexes); err != nil {
		return fmt.Errorf("failed to create post indexes: %v", err)
	}

	problemIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "topicId", Value: 1}},
		},
	}
	if _, err := m.Problems.Indexes().CreateMany(ctx, problemIndexes); err != nil {
		return fmt.Errorf("failed to create problem indexes: %v", err)
	}

	return nil
}

func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}
