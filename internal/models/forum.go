package models

import (
	"time"

	"github.com/google/uuid"
)

// ForumPost is a discussion thread. Replies are embedded on the post
// document and likes are flat sets of user IDs.
type ForumPost struct {
	ID             uuid.UUID `json:"id"`
	AuthorID       uuid.UUID `json:"authorId"`
	AuthorUsername string    `json:"authorUsername"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	Category       string    `json:"category,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	Likes          []string  `json:"likes"`
	Replies        []Reply   `json:"replies"`
}

type Reply struct {
	ID             uuid.UUID `json:"id"`
	AuthorID       uuid.UUID `json:"authorId"`
	AuthorUsername string    `json:"authorUsername"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"createdAt"`
	Likes          []string  `json:"likes"`
}

// ForumSort selects the ordering of a forum listing.
type ForumSort string

const (
	SortRecent  ForumSort = "recent"
	SortLikes   ForumSort = "likes"
	SortReplies ForumSort = "replies"
)

// ParseForumSort validates a client-supplied sort key, defaulting to recency.
func ParseForumSort(s string) (ForumSort, bool) {
	switch ForumSort(s) {
	case SortRecent, SortLikes, SortReplies:
		return ForumSort(s), true
	case "":
		return SortRecent, true
	}
	return "", false
}
