// Package seed loads the curated curriculum into the content collections.
// Seeding is idempotent: every write is an upsert keyed by ID.
package seed

import (
	"context"
	"time"

	"algoquest/internal/database"
	"algoquest/internal/models"

	"github.com/google/uuid"
)

// problemNamespace keeps seeded problem ids stable across runs, so re-seeding
// upserts instead of duplicating.
var problemNamespace = uuid.MustParse("b1a4f3c2-9d0e-4f6a-8c72-31e5a0d94b17")

type problemSpec struct {
	slug       string
	title      string
	difficulty models.ProblemDifficulty
	link       string
	desc       string
}

type topicSpec struct {
	id       string
	name     string
	desc     string
	order    int
	problems []problemSpec
}

type pathSpec struct {
	id     string
	name   string
	desc   string
	topics []topicSpec
}

var curriculum = []pathSpec{
	{
		id:   "dsa-fundamentals",
		name: "DSA Fundamentals",
		desc: "Core data structures and the patterns built on them.",
		topics: []topicSpec{
			{
				id: "arrays-hashing", name: "Arrays & Hashing", order: 1,
				desc: "Index arithmetic, frequency counting and hash-map lookups.",
				problems: []problemSpec{
					{"contains-duplicate", "Contains Duplicate", models.DifficultyEasy, "https://leetcode.com/problems/contains-duplicate/", "Decide whether any value appears at least twice."},
					{"valid-anagram", "Valid Anagram", models.DifficultyEasy, "https://leetcode.com/problems/valid-anagram/", "Check whether two strings are anagrams of each other."},
					{"two-sum", "Two Sum", models.DifficultyEasy, "https://leetcode.com/problems/two-sum/", "Find two indices whose values sum to the target."},
					{"group-anagrams", "Group Anagrams", models.DifficultyMedium, "https://leetcode.com/problems/group-anagrams/", "Bucket strings by a canonical anagram key."},
					{"top-k-frequent-elements", "Top K Frequent Elements", models.DifficultyMedium, "https://leetcode.com/problems/top-k-frequent-elements/", "Return the k most frequent values."},
				},
			},
			{
				id: "two-pointers", name: "Two Pointers", order: 2,
				desc: "Converging and chasing pointers over sorted or partitioned data.",
				problems: []problemSpec{
					{"valid-palindrome", "Valid Palindrome", models.DifficultyEasy, "https://leetcode.com/problems/valid-palindrome/", "Check a cleaned string against its reverse in place."},
					{"two-sum-ii", "Two Sum II", models.DifficultyMedium, "https://leetcode.com/problems/two-sum-ii-input-array-is-sorted/", "Exploit sorted input to find the pair without a map."},
					{"3sum", "3Sum", models.DifficultyMedium, "https://leetcode.com/problems/3sum/", "Find all unique triplets summing to zero."},
					{"container-with-most-water", "Container With Most Water", models.DifficultyMedium, "https://leetcode.com/problems/container-with-most-water/", "Maximize trapped area between two lines."},
				},
			},
			{
				id: "sliding-window", name: "Sliding Window", order: 3,
				desc: "Grow and shrink a window while maintaining an invariant.",
				problems: []problemSpec{
					{"best-time-to-buy-and-sell-stock", "Best Time to Buy and Sell Stock", models.DifficultyEasy, "https://leetcode.com/problems/best-time-to-buy-and-sell-stock/", "Track the running minimum while scanning prices."},
					{"longest-substring-without-repeating-characters", "Longest Substring Without Repeating Characters", models.DifficultyMedium, "https://leetcode.com/problems/longest-substring-without-repeating-characters/", "Shrink the window when a character repeats."},
					{"longest-repeating-character-replacement", "Longest Repeating Character Replacement", models.DifficultyMedium, "https://leetcode.com/problems/longest-repeating-character-replacement/", "Window is valid while replacements stay within k."},
				},
			},
			{
				id: "stack", name: "Stack", order: 4,
				desc: "LIFO bookkeeping: matching, monotonic stacks and evaluation.",
				problems: []problemSpec{
					{"valid-parentheses", "Valid Parentheses", models.DifficultyEasy, "https://leetcode.com/problems/valid-parentheses/", "Match every closer against the most recent opener."},
					{"min-stack", "Min Stack", models.DifficultyMedium, "https://leetcode.com/problems/min-stack/", "Support constant-time minimum alongside push and pop."},
					{"daily-temperatures", "Daily Temperatures", models.DifficultyMedium, "https://leetcode.com/problems/daily-temperatures/", "Monotonic stack of unresolved warmer-day queries."},
				},
			},
		},
	},
	{
		id:   "advanced-algorithms",
		name: "Advanced Algorithms",
		desc: "Graphs, dynamic programming and the harder interview staples.",
		topics: []topicSpec{
			{
				id: "binary-search", name: "Binary Search", order: 1,
				desc: "Halving a monotone search space, on indices or on answers.",
				problems: []problemSpec{
					{"binary-search", "Binary Search", models.DifficultyEasy, "https://leetcode.com/problems/binary-search/", "The canonical sorted-array search."},
					{"search-in-rotated-sorted-array", "Search in Rotated Sorted Array", models.DifficultyMedium, "https://leetcode.com/problems/search-in-rotated-sorted-array/", "One half is always sorted; pick it."},
					{"koko-eating-bananas", "Koko Eating Bananas", models.DifficultyMedium, "https://leetcode.com/problems/koko-eating-bananas/", "Binary search over the answer space."},
				},
			},
			{
				id: "graphs", name: "Graphs", order: 2,
				desc: "Traversal, connectivity and topological order.",
				problems: []problemSpec{
					{"number-of-islands", "Number of Islands", models.DifficultyMedium, "https://leetcode.com/problems/number-of-islands/", "Flood fill connected components of a grid."},
					{"clone-graph", "Clone Graph", models.DifficultyMedium, "https://leetcode.com/problems/clone-graph/", "Deep copy a graph while tracking visited nodes."},
					{"course-schedule", "Course Schedule", models.DifficultyMedium, "https://leetcode.com/problems/course-schedule/", "Detect a cycle in the prerequisite graph."},
					{"word-ladder", "Word Ladder", models.DifficultyHard, "https://leetcode.com/problems/word-ladder/", "Shortest transformation sequence via BFS."},
				},
			},
			{
				id: "dynamic-programming", name: "Dynamic Programming", order: 3,
				desc: "Optimal substructure and overlapping subproblems.",
				problems: []problemSpec{
					{"climbing-stairs", "Climbing Stairs", models.DifficultyEasy, "https://leetcode.com/problems/climbing-stairs/", "Fibonacci in disguise."},
					{"house-robber", "House Robber", models.DifficultyMedium, "https://leetcode.com/problems/house-robber/", "Take or skip each house; no two adjacent."},
					{"coin-change", "Coin Change", models.DifficultyMedium, "https://leetcode.com/problems/coin-change/", "Fewest coins to reach the amount."},
					{"longest-increasing-subsequence", "Longest Increasing Subsequence", models.DifficultyMedium, "https://leetcode.com/problems/longest-increasing-subsequence/", "Classic O(n log n) with patience sorting."},
					{"edit-distance", "Edit Distance", models.DifficultyHard, "https://leetcode.com/problems/edit-distance/", "Minimum edits to transform one string into another."},
				},
			},
		},
	},
}

// Load writes the curated curriculum into the store.
func Load(ctx context.Context, store database.ContentStore) (int, error) {
	now := time.Now()
	count := 0

	for _, path := range curriculum {
		topicIDs := make([]string, 0, len(path.topics))
		for _, topic := range path.topics {
			topicIDs = append(topicIDs, topic.id)
		}

		if err := store.SaveLearningPath(ctx, &models.LearningPath{
			ID:          path.id,
			Name:        path.name,
			Description: path.desc,
			TopicIDs:    topicIDs,
		}); err != nil {
			return count, err
		}

		for _, topic := range path.topics {
			if err := store.SaveTopic(ctx, &models.Topic{
				ID:          topic.id,
				Name:        topic.name,
				Description: topic.desc,
				PathID:      path.id,
				Order:       topic.order,
			}); err != nil {
				return count, err
			}

			for _, p := range topic.problems {
				if err := store.SaveProblem(ctx, &models.Problem{
					ID:          uuid.NewSHA1(problemNamespace, []byte(p.slug)).String(),
					Slug:        p.slug,
					Title:       p.title,
					Difficulty:  p.difficulty,
					TopicID:     topic.id,
					Link:        p.link,
					Description: p.desc,
					CreatedAt:   now,
				}); err != nil {
					return count, err
				}
				count++
			}
		}
	}

	return count, nil
}
