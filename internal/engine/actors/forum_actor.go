package actors

import (
	"log"
	"time"

	stdctx "context"

	"algoquest/internal/database"
	"algoquest/internal/models"
	"algoquest/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
)

// Message types for forum operations
type (
	CreatePostMsg struct {
		AuthorID uuid.UUID
		Title    string
		Content  string
		Category string
	}

	AddReplyMsg struct {
		PostID   uuid.UUID
		AuthorID uuid.UUID
		Content  string
	}

	TogglePostLikeMsg struct {
		PostID uuid.UUID
		UserID uuid.UUID
	}

	ToggleReplyLikeMsg struct {
		PostID  uuid.UUID
		ReplyID uuid.UUID
		UserID  uuid.UUID
	}
)

// ForumEngineStore is the storage surface the forum actor needs. Usernames
// are denormalized onto posts and replies at write time.
type ForumEngineStore interface {
	database.ForumStore
	database.UserStore
}

// ForumActor serializes forum mutations.
type ForumActor struct {
	store   ForumEngineStore
	metrics *utils.MetricsCollector
}

func NewForumActor(store ForumEngineStore, metrics *utils.MetricsCollector) actor.Actor {
	return &ForumActor{
		store:   store,
		metrics: metrics,
	}
}

func (a *ForumActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *CreatePostMsg:
		startTime := time.Now()
		ctx := stdctx.Background()

		if msg.Title == "" || msg.Content == "" {
			context.Respond(utils.NewAppError(utils.ErrInvalidInput, "Title and content are required", nil))
			return
		}

		author, err := a.store.GetUser(ctx, msg.AuthorID)
		if err != nil {
			context.Respond(utils.NewUserNotFoundError(msg.AuthorID.String()))
			return
		}

		post := &models.ForumPost{
			ID:             uuid.New(),
			AuthorID:       msg.AuthorID,
			AuthorUsername: author.Username,
			Title:          msg.Title,
			Content:        msg.Content,
			Category:       msg.Category,
			CreatedAt:      time.Now(),
			Likes:          make([]string, 0),
			Replies:        make([]models.Reply, 0),
		}

		if err := a.store.SaveForumPost(ctx, post); err != nil {
			log.Printf("Failed to save forum post: %v", err)
			context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to create post", err))
			return
		}

		a.metrics.AddOperationLatency("create_forum_post", time.Since(startTime))
		context.Respond(post)

	case *AddReplyMsg:
		startTime := time.Now()
		ctx := stdctx.Background()

		if msg.Content == "" {
			context.Respond(utils.NewAppError(utils.ErrInvalidInput, "Reply content is required", nil))
			return
		}

		author, err := a.store.GetUser(ctx, msg.AuthorID)
		if err != nil {
			context.Respond(utils.NewUserNotFoundError(msg.AuthorID.String()))
			return
		}

		reply := &models.Reply{
			ID:             uuid.New(),
			AuthorID:       msg.AuthorID,
			AuthorUsername: author.Username,
			Content:        msg.Content,
			CreatedAt:      time.Now(),
			Likes:          make([]string, 0),
		}

		if err := a.store.AppendReply(ctx, msg.PostID, reply); err != nil {
			log.Printf("Failed to append reply to post %s: %v", msg.PostID, err)
			context.Respond(storeError(err, "Failed to add reply"))
			return
		}

		post, err := a.store.GetForumPost(ctx, msg.PostID)
		if err != nil {
			context.Respond(storeError(err, "Failed to load updated post"))
			return
		}

		a.metrics.AddOperationLatency("add_forum_reply", time.Since(startTime))
		context.Respond(post)

	case *TogglePostLikeMsg:
		startTime := time.Now()
		ctx := stdctx.Background()

		post, err := a.store.GetForumPost(ctx, msg.PostID)
		if err != nil {
			context.Respond(storeError(err, "Failed to load post"))
			return
		}

		liked := containsUser(post.Likes, msg.UserID.String())
		if err := a.store.SetPostLike(ctx, msg.PostID, msg.UserID.String(), !liked); err != nil {
			log.Printf("Failed to toggle like on post %s: %v", msg.PostID, err)
			context.Respond(storeError(err, "Failed to update like"))
			return
		}

		post, err = a.store.GetForumPost(ctx, msg.PostID)
		if err != nil {
			context.Respond(storeError(err, "Failed to load updated post"))
			return
		}

		a.metrics.AddOperationLatency("toggle_post_like", time.Since(startTime))
		context.Respond(post)

	case *ToggleReplyLikeMsg:
		startTime := time.Now()
		ctx := stdctx.Background()

		post, err := a.store.GetForumPost(ctx, msg.PostID)
		if err != nil {
			context.Respond(storeError(err, "Failed to load post"))
			return
		}

		var reply *models.Reply
		for i := range post.Replies {
			if post.Replies[i].ID == msg.ReplyID {
				reply = &post.Replies[i]
				break
			}
		}
		if reply == nil {
			context.Respond(utils.NewAppError(utils.ErrReplyNotFound, "Reply not found", nil))
			return
		}

		liked := containsUser(reply.Likes, msg.UserID.String())
		if err := a.store.SetReplyLike(ctx, msg.PostID, msg.ReplyID, msg.UserID.String(), !liked); err != nil {
			log.Printf("Failed to toggle like on reply %s: %v", msg.ReplyID, err)
			context.Respond(storeError(err, "Failed to update like"))
			return
		}

		post, err = a.store.GetForumPost(ctx, msg.PostID)
		if err != nil {
			context.Respond(storeError(err, "Failed to load updated post"))
			return
		}

		a.metrics.AddOperationLatency("toggle_reply_like", time.Since(startTime))
		context.Respond(post)
	}
}

// storeError keeps domain errors (not-found and friends) intact and wraps
// everything else as a database failure so clients never see a raw error.
func storeError(err error, message string) *utils.AppError {
	if appErr, ok := err.(*utils.AppError); ok {
		return appErr
	}
	return utils.NewAppError(utils.ErrDatabase, message, err)
}

func containsUser(likes []string, userID string) bool {
	for _, id := range likes {
		if id == userID {
			return true
		}
	}
	return false
}
