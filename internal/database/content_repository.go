// internal/database/content_repository.go
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"algoquest/internal/models"
	"algoquest/internal/utils"
)

// ProblemDocument represents the MongoDB schema for a curated problem.
type ProblemDocument struct {
	ID          string    `bson:"_id"`
	Slug        string    `bson:"slug"`
	Title       string    `bson:"title"`
	Difficulty  string    `bson:"difficulty"`
	TopicID     string    `bson:"topicId"`
	Link        string    `bson:"link,omitempty"`
	Description string    `bson:"description"`
	CreatedAt   time.Time `bson:"createdAt"`
}

// TopicDocument and PathDocument use human-chosen slug IDs as primary keys.
type TopicDocument struct {
	ID          string `bson:"_id"`
	Name        string `bson:"name"`
	Description string `bson:"description"`
	PathID      string `bson:"pathId"`
	Order       int    `bson:"order"`
}

type PathDocument struct {
	ID          string   `bson:"_id"`
	Name        string   `bson:"name"`
	Description string   `bson:"description"`
	TopicIDs    []string `bson:"topicIds"`
}

func problemDocumentToModel(doc *ProblemDocument) *models.Problem {
	return &models.Problem{
		ID:          doc.ID,
		Slug:        doc.Slug,
		Title:       doc.Title,
		Difficulty:  models.ProblemDifficulty(doc.Difficulty),
		TopicID:     doc.TopicID,
		Link:        doc.Link,
		Description: doc.Description,
		CreatedAt:   doc.CreatedAt,
	}
}

// SaveProblem creates or updates a problem; used by the seeder.
func (m *MongoDB) SaveProblem(ctx context.Context, problem *models.Problem) error {
	doc := ProblemDocument{
		ID:          problem.ID,
		Slug:        problem.Slug,
		Title:       problem.Title,
		Difficulty:  string(problem.Difficulty),
		TopicID:     problem.TopicID,
		Link:        problem.Link,
		Description: problem.Description,
		CreatedAt:   problem.CreatedAt,
	}

	opts := options.Update().SetUpsert(true)
	_, err := m.Problems.UpdateOne(ctx, bson.M{"_id": doc.ID}, bson.M{"$set": doc}, opts)
	return err
}

func (m *MongoDB) SaveTopic(ctx context.Context, topic *models.Topic) error {
	doc := TopicDocument{
		ID:          topic.ID,
		Name:        topic.Name,
		Description: topic.Description,
		PathID:      topic.PathID,
		Order:       topic.Order,
	}

	opts := options.Update().SetUpsert(true)
	_, err := m.Topics.UpdateOne(ctx, bson.M{"_id": doc.ID}, bson.M{"$set": doc}, opts)
	return err
}

func (m *MongoDB) SaveLearningPath(ctx context.Context, path *models.LearningPath) error {
	doc := PathDocument{
		ID:          path.ID,
		Name:        path.Name,
		Description: path.Description,
		TopicIDs:    path.TopicIDs,
	}

	opts := options.Update().SetUpsert(true)
	_, err := m.Paths.UpdateOne(ctx, bson.M{"_id": doc.ID}, bson.M{"$set": doc}, opts)
	return err
}

// GetProblem retrieves a problem by its generated ID.
func (m *MongoDB) GetProblem(ctx context.Context, id string) (*models.Problem, error) {
	var doc ProblemDocument

	err := m.Problems.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewProblemNotFoundError(id)
	}
	if err != nil {
		return nil, err
	}

	return problemDocumentToModel(&doc), nil
}

// ListProblems returns problems ordered by slug; an empty topicID lists the
// whole catalog. The slug ordering is what the daily challenge indexes into.
func (m *MongoDB) ListProblems(ctx context.Context, topicID string) ([]*models.Problem, error) {
	filter := bson.M{}
	if topicID != "" {
		filter["topicId"] = topicID
	}

	cursor, err := m.Problems.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "slug", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("database query failed: %v", err)
	}
	defer cursor.Close(ctx)

	var problems []*models.Problem
	for cursor.Next(ctx) {
		var doc ProblemDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode problem: %v", err)
		}
		problems = append(problems, problemDocumentToModel(&doc))
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor iteration failed: %v", err)
	}

	return problems, nil
}

// ListTopics returns topics in curriculum order; an empty pathID lists all.
func (m *MongoDB) ListTopics(ctx context.Context, pathID string) ([]*models.Topic, error) {
	filter := bson.M{}
	if pathID != "" {
		filter["pathId"] = pathID
	}

	cursor, err := m.Topics.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "order", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("database query failed: %v", err)
	}
	defer cursor.Close(ctx)

	var topics []*models.Topic
	for cursor.Next(ctx) {
		var doc TopicDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode topic: %v", err)
		}
		topics = append(topics, &models.Topic{
			ID:          doc.ID,
			Name:        doc.Name,
			Description: doc.Description,
			PathID:      doc.PathID,
			Order:       doc.Order,
		})
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor iteration failed: %v", err)
	}

	return topics, nil
}

// GetLearningPath retrieves a learning path by its slug ID.
func (m *MongoDB) GetLearningPath(ctx context.Context, id string) (*models.LearningPath, error) {
	var doc PathDocument

	err := m.Paths.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrNotFound, "Learning path not found: "+id, err)
	}
	if err != nil {
		return nil, err
	}

	return &models.LearningPath{
		ID:          doc.ID,
		Name:        doc.Name,
		Description: doc.Description,
		TopicIDs:    doc.TopicIDs,
	}, nil
}

func (m *MongoDB) ListLearningPaths(ctx context.Context) ([]*models.LearningPath, error) {
	cursor, err := m.Paths.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("database query failed: %v", err)
	}
	defer cursor.Close(ctx)

	var paths []*models.LearningPath
	for cursor.Next(ctx) {
		var doc PathDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode learning path: %v", err)
		}
		paths = append(paths, &models.LearningPath{
			ID:          doc.ID,
			Name:        doc.Name,
			Description: doc.Description,
			TopicIDs:    doc.TopicIDs,
		})
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor iteration failed: %v", err)
	}

	return paths, nil
}

func (m *MongoDB) CountProblems(ctx context.Context) (int64, error) {
	return m.Problems.CountDocuments(ctx, bson.M{})
}
