// internal/database/forum_repository.go
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

// ForumPostDocument represents the MongoDB schema for a forum post. Replies
// live embedded on the post; likes are arrays of user ID strings.
type ForumPostDocument struct {
	ID             string          `bson:"_id"`
	AuthorID       string          `bson:"authorId"`
	AuthorUsername string          `bson:"authorUsername"`
	Title          string          `bson:"title"`
	Content        string          `bson:"content"`
	Category       string          `bson:"category,omitempty"`
	CreatedAt      time.Time       `bson:"createdAt"`
	Likes          []string        `bson:"likes"`
	Replies        []ReplyDocument `bson:"replies"`
}

type ReplyDocument struct {
	ID             string    `bson:"id"`
	AuthorID       string    `bson:"authorId"`
	AuthorUsername string    `bson:"authorUsername"`
	Content        string    `bson:"content"`
	CreatedAt      time.Time `bson:"createdAt"`
	Likes          []string  `bson:"likes"`
}

func forumPostDocumentToModel(doc *ForumPostDocument) (*models.ForumPost, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid post ID: %v", err)
	}

	authorID, err := uuid.Parse(doc.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("invalid author ID: %v", err)
	}

	replies := make([]models.Reply, len(doc.Replies))
	for i, r := range doc.Replies {
		replyID, err := uuid.Parse(r.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid reply ID: %v", err)
		}
		replyAuthorID, err := uuid.Parse(r.AuthorID)
		if err != nil {
			return nil, fmt.Errorf("invalid reply author ID: %v", err)
		}
		likes := r.Likes
		if likes == nil {
			likes = []string{}
		}
		replies[i] = models.Reply{
			ID:             replyID,
			AuthorID:       replyAuthorID,
			AuthorUsername: r.AuthorUsername,
			Content:        r.Content,
			CreatedAt:      r.CreatedAt,
			Likes:          likes,
		}
	}

	likes := doc.Likes
	if likes == nil {
		likes = []string{}
	}

	return &models.ForumPost{
		ID:             id,
		AuthorID:       authorID,
		AuthorUsername: doc.AuthorUsername,
		Title:          doc.Title,
		Content:        doc.Content,
		Category:       doc.Category,
		CreatedAt:      doc.CreatedAt,
		Likes:          likes,
		Replies:        replies,
	}, nil
}

// SaveForumPost creates or updates a forum post in MongoDB.
func (m *MongoDB) SaveForumPost(ctx context.Context, post *models.ForumPost) error {
	doc := ForumPostDocument{
		ID:             post.ID.String(),
		AuthorID:       post.AuthorID.String(),
		AuthorUsername: post.AuthorUsername,
		Title:          post.Title,
		Content:        post.Content,
		Category:       post.Category,
		CreatedAt:      post.CreatedAt,
		Likes:          post.Likes,
		Replies:        make([]ReplyDocument, len(post.Replies)),
	}
	if doc.Likes == nil {
		doc.Likes = []string{}
	}
	for i, r := range post.Replies {
		doc.Replies[i] = ReplyDocument{
			ID:             r.ID.String(),
			AuthorID:       r.AuthorID.String(),
			AuthorUsername: r.AuthorUsername,
			Content:        r.Content,
			CreatedAt:      r.CreatedAt,
			Likes:          r.Likes,
		}
	}

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": doc.ID}
	update := bson.M{"$set": doc}

	_, err := m.Posts.UpdateOne(ctx, filter, update, opts)
	return err
}

// GetForumPost retrieves a post by its ID.
func (m *MongoDB) GetForumPost(ctx context.Context, id uuid.UUID) (*models.ForumPost, error) {
	var doc ForumPostDocument

	err := m.Posts.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrPostNotFound, "Post not found", err)
	}
	if err != nil {
		return nil, err
	}

	return forumPostDocumentToModel(&doc)
}

// AppendReply pushes a reply onto the post's embedded reply list.
func (m *MongoDB) AppendReply(ctx context.Context, postID uuid.UUID, reply *models.Reply) error {
	doc := ReplyDocument{
		ID:             reply.ID.String(),
		AuthorID:       reply.AuthorID.String(),
		AuthorUsername: reply.AuthorUsername,
		Content:        reply.Content,
		CreatedAt:      reply.CreatedAt,
		Likes:          []string{},
	}

	filter := bson.M{"_id": postID.String()}
	update := bson.M{"$push": bson.M{"replies": doc}}

	result, err := m.Posts.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return utils.NewAppError(utils.ErrPostNotFound, "Post not found", nil)
	}
	return nil
}

// SetPostLike adds or removes a user from the post's like-set.
func (m *MongoDB) SetPostLike(ctx context.Context, postID uuid.UUID, userID string, liked bool) error {
	filter := bson.M{"_id": postID.String()}
	var update bson.M

	if liked {
		update = bson.M{"$addToSet": bson.M{"likes": userID}}
	} else {
		update = bson.M{"$pull": bson.M{"likes": userID}}
	}

	result, err := m.Posts.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return utils.NewAppError(utils.ErrPostNotFound, "Post not found", nil)
	}
	return nil
}

// SetReplyLike adds or removes a user from an embedded reply's like-set,
// addressed through the positional operator.
func (m *MongoDB) SetReplyLike(ctx context.Context, postID, replyID uuid.UUID, userID string, liked bool) error {
	filter := bson.M{"_id": postID.String(), "replies.id": replyID.String()}
	var update bson.M

	if liked {
		update = bson.M{"$addToSet": bson.M{"replies.$.likes": userID}}
	} else {
		update = bson.M{"$pull": bson.M{"replies.$.likes": userID}}
	}

	result, err := m.Posts.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return utils.NewAppError(utils.ErrReplyNotFound, "Reply not found", nil)
	}
	return nil
}

// ListForumPosts returns one page of posts sorted by recency, like-count or
// reply-count, plus the total post count for pagination.
func (m *MongoDB) ListForumPosts(ctx context.Context, sort models.ForumSort, page, pageSize int) ([]*models.ForumPost, int64, error) {
	total, err := m.Posts.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %v", err)
	}

	sortKeys := bson.D{{Key: "createdAt", Value: -1}}
	switch sort {
	case models.SortLikes:
		sortKeys = bson.D{{Key: "likeCount", Value: -1}, {Key: "createdAt", Value: -1}}
	case models.SortReplies:
		sortKeys = bson.D{{Key: "replyCount", Value: -1}, {Key: "createdAt", Value: -1}}
	}

	pipeline := []bson.M{
		{"$addFields": bson.M{
			"likeCount":  bson.M{"$size": bson.M{"$ifNull": bson.A{"$likes", bson.A{}}}},
			"replyCount": bson.M{"$size": bson.M{"$ifNull": bson.A{"$replies", bson.A{}}}},
		}},
		{"$sort": sortKeys},
		{"$skip": (page - 1) * pageSize},
		{"$limit": pageSize},
	}

	cursor, err := m.Posts.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch posts: %v", err)
	}
	defer cursor.Close(ctx)

	var posts []*models.ForumPost
	for cursor.Next(ctx) {
		var doc ForumPostDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("failed to decode post: %v", err)
		}

		post, err := forumPostDocumentToModel(&doc)
		if err != nil {
			return nil, 0, err
		}
		posts = append(posts, post)
	}

	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("cursor iteration failed: %v", err)
	}

	return posts, total, nil
}

func (m *MongoDB) CountForumPosts(ctx context.Context) (int64, error) {
	return m.Posts.CountDocuments(ctx, bson.M{})
}
