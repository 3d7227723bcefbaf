package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID       `json:"id"`
	Username       string          `json:"username"`
	Email          string          `json:"email"`
	HashedPassword string          `json:"-"`
	XPPoints       int             `json:"xpPoints"`
	StreakDays     int             `json:"streakDays"`
	LastActive     time.Time       `json:"lastActive"`
	CreatedAt      time.Time       `json:"createdAt"`
	SolvedProblems []SolvedProblem `json:"solvedProblems"`
	Bookmarks      []string        `json:"bookmarks"`
}

// SolvedProblem is the denormalized solved-set entry kept on the user
// document, mirroring the SOLVED progress records.
type SolvedProblem struct {
	ProblemID string    `json:"problemId" bson:"problemId"`
	SolvedAt  time.Time `json:"solvedAt" bson:"solvedAt"`
}

// HasSolved reports whether the user's solved-set contains the problem.
func (u *User) HasSolved(problemID string) bool {
	for _, s := range u.SolvedProblems {
		if s.ProblemID == problemID {
			return true
		}
	}
	return false
}

// HasBookmarked reports whether the user's bookmark-set contains the problem.
func (u *User) HasBookmarked(problemID string) bool {
	for _, id := range u.Bookmarks {
		if id == problemID {
			return true
		}
	}
	return false
}
