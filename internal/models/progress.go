package models

import (
	"time"

	"github.com/google/uuid"
)

// ProgressStatus is the per-user solve state of a problem.
type ProgressStatus string

const (
	StatusTodo      ProgressStatus = "todo"
	StatusAttempted ProgressStatus = "attempted"
	StatusSolved    ProgressStatus = "solved"
)

// ParseProgressStatus validates a client-supplied status value.
func ParseProgressStatus(s string) (ProgressStatus, bool) {
	switch ProgressStatus(s) {
	case StatusTodo, StatusAttempted, StatusSolved:
		return ProgressStatus(s), true
	}
	return "", false
}

// ProgressRecord tracks one user's interaction with one problem. At most one
// record exists per (user, problem); a missing record means todo, not
// bookmarked, no note.
type ProgressRecord struct {
	ID           string         `json:"id"`
	UserID       uuid.UUID      `json:"userId"`
	ProblemID    string         `json:"problemId"`
	Status       ProgressStatus `json:"status"`
	IsBookmarked bool           `json:"isBookmarked"`
	Notes        string         `json:"notes"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}
