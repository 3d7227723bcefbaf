package handlers

import (
	"context"
	"sort"
	"sync"
	"time"

	"algoquest/internal/models"
	"algoquest/internal/utils"

	"github.com/google/uuid"
)

// fakeStore is an in-memory database.Store for handler tests.
type fakeStore struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*models.User
	progress map[string]*models.ProgressRecord
	activity map[string]int
	problems map[string]*models.Problem
	topics   map[string]*models.Topic
	paths    map[string]*models.LearningPath
	posts    map[uuid.UUID]*models.ForumPost
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[uuid.UUID]*models.User),
		progress: make(map[string]*models.ProgressRecord),
		activity: make(map[string]int),
		problems: make(map[string]*models.Problem),
		topics:   make(map[string]*models.Topic),
		paths:    make(map[string]*models.LearningPath),
		posts:    make(map[uuid.UUID]*models.ForumPost),
	}
}

func progressKey(userID uuid.UUID, problemID string) string {
	return userID.String() + ":" + problemID
}

func (f *fakeStore) Close(context.Context) error { return nil }

func (f *fakeStore) SaveUser(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeStore) GetUser(_ context.Context, id uuid.UUID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, utils.NewUserNotFoundError(id.String())
	}
	copied := *user
	return &copied, nil
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, utils.NewUserNotFoundError(email)
}

func (f *fakeStore) RecordLogin(_ context.Context, userID uuid.UUID, at time.Time, streakDays int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user, ok := f.users[userID]; ok {
		user.LastActive = at
		user.StreakDays = streakDays
	}
	return nil
}

func (f *fakeStore) ApplySolveReward(_ context.Context, userID uuid.UUID, problemID string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok {
		return utils.NewUserNotFoundError(userID.String())
	}
	for _, sp := range user.SolvedProblems {
		if sp.ProblemID == problemID {
			return nil
		}
	}
	user.XPPoints += 25
	user.LastActive = at
	user.SolvedProblems = append(user.SolvedProblems, models.SolvedProblem{ProblemID: problemID, SolvedAt: at})
	return nil
}

func (f *fakeStore) RevokeSolveReward(_ context.Context, userID uuid.UUID, problemID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok {
		return utils.NewUserNotFoundError(userID.String())
	}
	user.XPPoints -= 25
	kept := user.SolvedProblems[:0]
	for _, sp := range user.SolvedProblems {
		if sp.ProblemID != problemID {
			kept = append(kept, sp)
		}
	}
	user.SolvedProblems = kept
	return nil
}

func (f *fakeStore) SetUserBookmark(_ context.Context, userID uuid.UUID, problemID string, bookmarked bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok {
		return utils.NewUserNotFoundError(userID.String())
	}
	kept := make([]string, 0, len(user.Bookmarks))
	for _, id := range user.Bookmarks {
		if id != problemID {
			kept = append(kept, id)
		}
	}
	if bookmarked {
		kept = append(kept, problemID)
	}
	user.Bookmarks = kept
	return nil
}

func (f *fakeStore) CountUsers(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.users)), nil
}

func (f *fakeStore) CountUsersWithMoreXP(_ context.Context, xp int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, user := range f.users {
		if user.XPPoints > xp {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) GetLeaderboard(_ context.Context, metric models.LeaderboardMetric, limit int) ([]*models.LeaderboardEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entries := make([]*models.LeaderboardEntry, 0, len(f.users))
	for _, user := range f.users {
		entries = append(entries, &models.LeaderboardEntry{
			UserID:         user.ID.String(),
			Username:       user.Username,
			XPPoints:       user.XPPoints,
			StreakDays:     user.StreakDays,
			ProblemsSolved: len(user.SolvedProblems),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		switch metric {
		case models.MetricStreak:
			return entries[i].StreakDays > entries[j].StreakDays
		case models.MetricSolved:
			return entries[i].ProblemsSolved > entries[j].ProblemsSolved
		default:
			return entries[i].XPPoints > entries[j].XPPoints
		}
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

func (f *fakeStore) GetProgress(_ context.Context, userID uuid.UUID, problemID string) (*models.ProgressRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.progress[progressKey(userID, problemID)]
	if !ok {
		return nil, utils.NewAppError(utils.ErrNotFound, "Progress record not found", nil)
	}
	copied := *record
	return &copied, nil
}

func (f *fakeStore) SetProgressStatus(_ context.Context, userID uuid.UUID, problemID string, status models.ProgressStatus, at time.Time) (models.ProgressStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := progressKey(userID, problemID)
	record, ok := f.progress[key]
	if !ok {
		f.progress[key] = &models.ProgressRecord{
			ID:        uuid.NewString(),
			UserID:    userID,
			ProblemID: problemID,
			Status:    status,
			UpdatedAt: at,
		}
		return models.StatusTodo, nil
	}
	previous := record.Status
	record.Status = status
	record.UpdatedAt = at
	return previous, nil
}

func (f *fakeStore) SetProgressBookmark(_ context.Context, userID uuid.UUID, problemID string, bookmarked bool, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := progressKey(userID, problemID)
	record, ok := f.progress[key]
	if !ok {
		record = &models.ProgressRecord{
			ID:        uuid.NewString(),
			UserID:    userID,
			ProblemID: problemID,
			Status:    models.StatusTodo,
		}
		f.progress[key] = record
	}
	record.IsBookmarked = bookmarked
	record.UpdatedAt = at
	return nil
}

func (f *fakeStore) SetProgressNotes(_ context.Context, userID uuid.UUID, problemID string, notes string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := progressKey(userID, problemID)
	record, ok := f.progress[key]
	if !ok {
		record = &models.ProgressRecord{
			ID:        uuid.NewString(),
			UserID:    userID,
			ProblemID: problemID,
			Status:    models.StatusTodo,
		}
		f.progress[key] = record
	}
	record.Notes = notes
	record.UpdatedAt = at
	return nil
}

func (f *fakeStore) ListUserProgress(_ context.Context, userID uuid.UUID) ([]*models.ProgressRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	records := make([]*models.ProgressRecord, 0)
	for _, record := range f.progress {
		if record.UserID == userID {
			copied := *record
			records = append(records, &copied)
		}
	}
	return records, nil
}

func (f *fakeStore) IncrementDailySolves(_ context.Context, userID uuid.UUID, date string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.activity[userID.String()+":"+date]++
	return nil
}

func (f *fakeStore) GetDailySolves(_ context.Context, userID uuid.UUID, dates []string) (map[string]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make(map[string]int, len(dates))
	for _, date := range dates {
		result[date] = f.activity[userID.String()+":"+date]
	}
	return result, nil
}

func (f *fakeStore) SaveProblem(_ context.Context, problem *models.Problem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.problems[problem.ID] = problem
	return nil
}

func (f *fakeStore) SaveTopic(_ context.Context, topic *models.Topic) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.topics[topic.ID] = topic
	return nil
}

func (f *fakeStore) SaveLearningPath(_ context.Context, path *models.LearningPath) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paths[path.ID] = path
	return nil
}

func (f *fakeStore) GetProblem(_ context.Context, id string) (*models.Problem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	problem, ok := f.problems[id]
	if !ok {
		return nil, utils.NewProblemNotFoundError(id)
	}
	return problem, nil
}

func (f *fakeStore) ListProblems(_ context.Context, topicID string) ([]*models.Problem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	problems := make([]*models.Problem, 0)
	for _, problem := range f.problems {
		if topicID == "" || problem.TopicID == topicID {
			problems = append(problems, problem)
		}
	}
	sort.Slice(problems, func(i, j int) bool { return problems[i].Slug < problems[j].Slug })
	return problems, nil
}

func (f *fakeStore) ListTopics(_ context.Context, pathID string) ([]*models.Topic, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	topics := make([]*models.Topic, 0)
	for _, topic := range f.topics {
		if pathID == "" || topic.PathID == pathID {
			topics = append(topics, topic)
		}
	}
	sort.Slice(topics, func(i, j int) bool { return topics[i].Order < topics[j].Order })
	return topics, nil
}

func (f *fakeStore) GetLearningPath(_ context.Context, id string) (*models.LearningPath, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	path, ok := f.paths[id]
	if !ok {
		return nil, utils.NewAppError(utils.ErrNotFound, "Learning path not found", nil)
	}
	return path, nil
}

func (f *fakeStore) ListLearningPaths(_ context.Context) ([]*models.LearningPath, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	paths := make([]*models.LearningPath, 0, len(f.paths))
	for _, path := range f.paths {
		paths = append(paths, path)
	}
	return paths, nil
}

func (f *fakeStore) CountProblems(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.problems)), nil
}

func (f *fakeStore) SaveForumPost(_ context.Context, post *models.ForumPost) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *post
	f.posts[post.ID] = &copied
	return nil
}

func (f *fakeStore) GetForumPost(_ context.Context, id uuid.UUID) (*models.ForumPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[id]
	if !ok {
		return nil, utils.NewAppError(utils.ErrPostNotFound, "Post not found", nil)
	}
	copied := *post
	copied.Likes = append([]string(nil), post.Likes...)
	copied.Replies = append([]models.Reply(nil), post.Replies...)
	return &copied, nil
}

func (f *fakeStore) AppendReply(_ context.Context, postID uuid.UUID, reply *models.Reply) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[postID]
	if !ok {
		return utils.NewAppError(utils.ErrPostNotFound, "Post not found", nil)
	}
	post.Replies = append(post.Replies, *reply)
	return nil
}

func (f *fakeStore) SetPostLike(_ context.Context, postID uuid.UUID, userID string, liked bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[postID]
	if !ok {
		return utils.NewAppError(utils.ErrPostNotFound, "Post not found", nil)
	}
	post.Likes = setMembership(post.Likes, userID, liked)
	return nil
}

func (f *fakeStore) SetReplyLike(_ context.Context, postID, replyID uuid.UUID, userID string, liked bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[postID]
	if !ok {
		return utils.NewAppError(utils.ErrPostNotFound, "Post not found", nil)
	}
	for i := range post.Replies {
		if post.Replies[i].ID == replyID {
			post.Replies[i].Likes = setMembership(post.Replies[i].Likes, userID, liked)
			return nil
		}
	}
	return utils.NewAppError(utils.ErrReplyNotFound, "Reply not found", nil)
}

func (f *fakeStore) ListForumPosts(_ context.Context, sortBy models.ForumSort, page, pageSize int) ([]*models.ForumPost, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	posts := make([]*models.ForumPost, 0, len(f.posts))
	for _, post := range f.posts {
		copied := *post
		posts = append(posts, &copied)
	}
	sort.Slice(posts, func(i, j int) bool {
		switch sortBy {
		case models.SortLikes:
			return len(posts[i].Likes) > len(posts[j].Likes)
		case models.SortReplies:
			return len(posts[i].Replies) > len(posts[j].Replies)
		default:
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
	})
	total := int64(len(posts))
	start := (page - 1) * pageSize
	if start >= len(posts) {
		return []*models.ForumPost{}, total, nil
	}
	end := start + pageSize
	if end > len(posts) {
		end = len(posts)
	}
	return posts[start:end], total, nil
}

func (f *fakeStore) CountForumPosts(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.posts)), nil
}

func setMembership(ids []string, id string, member bool) []string {
	kept := make([]string, 0, len(ids))
	for _, existing := range ids {
		if existing != id {
			kept = append(kept, existing)
		}
	}
	if member {
		kept = append(kept, id)
	}
	return kept
}
