package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"algoquest/internal/engine/actors"
	"algoquest/internal/middleware"
	"algoquest/internal/models"
	"algoquest/internal/utils"

	"github.com/google/uuid"
)

const defaultForumPageSize = 20

// CreateForumPostRequest represents a request to create a discussion post
type CreateForumPostRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

// ReplyRequest represents a request to reply to a post
type ReplyRequest struct {
	PostID  string `json:"postId"`
	Content string `json:"content"`
}

// LikeRequest represents a request to toggle a like on a post
type LikeRequest struct {
	PostID string `json:"postId"`
}

// ReplyLikeRequest represents a request to toggle a like on a reply
type ReplyLikeRequest struct {
	PostID  string `json:"postId"`
	ReplyID string `json:"replyId"`
}

// ForumPostList is the paginated forum listing payload
type ForumPostList struct {
	Posts    []*models.ForumPost `json:"posts"`
	Total    int64               `json:"total"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"pageSize"`
}

// HandleForumPosts handles creating a post (POST) and listing posts (GET)
func (s *Server) HandleForumPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			userID, ok := middleware.GetUserIDFromContext(r.Context())
			if !ok {
				respondAppError(w, utils.NewUnauthorizedError("missing user identity"))
				return
			}

			var req CreateForumPostRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "Invalid request", http.StatusBadRequest)
				return
			}

			future := s.Context.RequestFuture(s.Engine.GetForumActor(), &actors.CreatePostMsg{
				AuthorID: userID,
				Title:    req.Title,
				Content:  req.Content,
				Category: req.Category,
			}, s.RequestTimeout)

			result, err := future.Result()
			if err != nil {
				http.Error(w, "Failed to create post", http.StatusInternalServerError)
				return
			}

			respondActorResult(w, result)

		case http.MethodGet:
			sort, valid := models.ParseForumSort(r.URL.Query().Get("sortBy"))
			if !valid {
				http.Error(w, "Invalid sortBy value", http.StatusBadRequest)
				return
			}

			page := 1
			if pageStr := r.URL.Query().Get("page"); pageStr != "" {
				parsed, err := strconv.Atoi(pageStr)
				if err != nil || parsed <= 0 {
					http.Error(w, "Invalid page value", http.StatusBadRequest)
					return
				}
				page = parsed
			}

			pageSize := defaultForumPageSize
			if sizeStr := r.URL.Query().Get("pageSize"); sizeStr != "" {
				parsed, err := strconv.Atoi(sizeStr)
				if err != nil || parsed <= 0 {
					http.Error(w, "Invalid pageSize value", http.StatusBadRequest)
					return
				}
				pageSize = parsed
			}

			posts, total, err := s.Store.ListForumPosts(r.Context(), sort, page, pageSize)
			if err != nil {
				http.Error(w, "Failed to list posts", http.StatusInternalServerError)
				return
			}

			respondJSON(w, http.StatusOK, &ForumPostList{
				Posts:    posts,
				Total:    total,
				Page:     page,
				PageSize: pageSize,
			})

		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// HandleGetForumPost handles requests to fetch a single post with its replies
func (s *Server) HandleGetForumPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		postID, err := uuid.Parse(r.URL.Query().Get("id"))
		if err != nil {
			http.Error(w, "Invalid post ID format", http.StatusBadRequest)
			return
		}

		post, err := s.Store.GetForumPost(r.Context(), postID)
		if err != nil {
			if appErr, ok := err.(*utils.AppError); ok {
				respondAppError(w, appErr)
				return
			}
			http.Error(w, "Failed to get post", http.StatusInternalServerError)
			return
		}

		respondJSON(w, http.StatusOK, post)
	}
}

// HandleForumReply handles requests to reply to a post
func (s *Server) HandleForumReply() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		userID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			respondAppError(w, utils.NewUnauthorizedError("missing user identity"))
			return
		}

		var req ReplyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		postID, err := uuid.Parse(req.PostID)
		if err != nil {
			http.Error(w, "Invalid post ID format", http.StatusBadRequest)
			return
		}

		future := s.Context.RequestFuture(s.Engine.GetForumActor(), &actors.AddReplyMsg{
			PostID:   postID,
			AuthorID: userID,
			Content:  req.Content,
		}, s.RequestTimeout)

		result, err := future.Result()
		if err != nil {
			http.Error(w, "Failed to add reply", http.StatusInternalServerError)
			return
		}

		respondActorResult(w, result)
	}
}

// HandleForumPostLike handles requests to toggle a like on a post
func (s *Server) HandleForumPostLike() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		userID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			respondAppError(w, utils.NewUnauthorizedError("missing user identity"))
			return
		}

		var req LikeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		postID, err := uuid.Parse(req.PostID)
		if err != nil {
			http.Error(w, "Invalid post ID format", http.StatusBadRequest)
			return
		}

		future := s.Context.RequestFuture(s.Engine.GetForumActor(), &actors.TogglePostLikeMsg{
			PostID: postID,
			UserID: userID,
		}, s.RequestTimeout)

		result, err := future.Result()
		if err != nil {
			http.Error(w, "Failed to toggle like", http.StatusInternalServerError)
			return
		}

		respondActorResult(w, result)
	}
}

// HandleForumReplyLike handles requests to toggle a like on a reply
func (s *Server) HandleForumReplyLike() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		userID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			respondAppError(w, utils.NewUnauthorizedError("missing user identity"))
			return
		}

		var req ReplyLikeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		postID, err := uuid.Parse(req.PostID)
		if err != nil {
			http.Error(w, "Invalid post ID format", http.StatusBadRequest)
			return
		}
		replyID, err := uuid.Parse(req.ReplyID)
		if err != nil {
			http.Error(w, "Invalid reply ID format", http.StatusBadRequest)
			return
		}

		future := s.Context.RequestFuture(s.Engine.GetForumActor(), &actors.ToggleReplyLikeMsg{
			PostID:  postID,
			ReplyID: replyID,
			UserID:  userID,
		}, s.RequestTimeout)

		result, err := future.Result()
		if err != nil {
			http.Error(w, "Failed to toggle like", http.StatusInternalServerError)
			return
		}

		respondActorResult(w, result)
	}
}
