package models

import "time"

// ProblemDifficulty follows the usual Easy/Medium/Hard split.
type ProblemDifficulty string

const (
	DifficultyEasy   ProblemDifficulty = "Easy"
	DifficultyMedium ProblemDifficulty = "Medium"
	DifficultyHard   ProblemDifficulty = "Hard"
)

// Problem is a curated DSA problem. Content is read-only after seeding.
type Problem struct {
	ID          string            `json:"id"`
	Slug        string            `json:"slug"`
	Title       string            `json:"title"`
	Difficulty  ProblemDifficulty `json:"difficulty"`
	TopicID     string            `json:"topicId"`
	Link        string            `json:"link,omitempty"`
	Description string            `json:"description"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// Topic groups problems inside a learning path. Topic IDs are human-chosen
// slugs, not generated identifiers.
type Topic struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PathID      string `json:"pathId"`
	Order       int    `json:"order"`
}

// LearningPath is an ordered sequence of topics.
type LearningPath struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	TopicIDs    []string `json:"topicIds"`
}
