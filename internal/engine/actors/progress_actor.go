package actors

import (
	"log"
	"time"

	stdctx "context"

	"algoquest/internal/database"
	"algoquest/internal/gamification"
	"algoquest/internal/models"
	"algoquest/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
)

// Message types for progress operations
type (
	SetStatusMsg struct {
		UserID    uuid.UUID
		ProblemID string
		Status    models.ProgressStatus
	}

	ToggleBookmarkMsg struct {
		UserID    uuid.UUID
		ProblemID string
	}

	WriteNoteMsg struct {
		UserID    uuid.UUID
		ProblemID string
		Notes     string
	}
)

// StatusUpdateResult is what a SetStatusMsg responds with: the updated record
// plus the XP movement it caused, if any.
type StatusUpdateResult struct {
	Record  *models.ProgressRecord `json:"record"`
	XPDelta int                    `json:"xpDelta"`
}

// GamificationStore is the storage surface the progress actor needs.
type GamificationStore interface {
	database.UserStore
	database.ProgressStore
	database.ActivityStore
	database.ContentStore
}

// Notifier pushes real-time events to a connected user. Nil-safe via the
// nilNotifier default.
type Notifier interface {
	NotifyUser(userID uuid.UUID, eventType string, payload interface{})
}

type nilNotifier struct{}

func (nilNotifier) NotifyUser(uuid.UUID, string, interface{}) {}

// ProgressActor serializes all progress mutations for correct XP accounting.
// Status changes only move XP when the solved boundary is crossed, so marking
// an already solved problem solved again awards nothing.
type ProgressActor struct {
	store    GamificationStore
	notifier Notifier
	metrics  *utils.MetricsCollector
}

func NewProgressActor(store GamificationStore, notifier Notifier, metrics *utils.MetricsCollector) actor.Actor {
	if notifier == nil {
		notifier = nilNotifier{}
	}
	return &ProgressActor{
		store:    store,
		notifier: notifier,
		metrics:  metrics,
	}
}

func (a *ProgressActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *SetStatusMsg:
		startTime := time.Now()
		ctx := stdctx.Background()

		if _, err := a.store.GetProblem(ctx, msg.ProblemID); err != nil {
			context.Respond(utils.NewProblemNotFoundError(msg.ProblemID))
			return
		}

		now := time.Now()
		previous, err := a.store.SetProgressStatus(ctx, msg.UserID, msg.ProblemID, msg.Status, now)
		if err != nil {
			log.Printf("Failed to set status for user %s problem %s: %v", msg.UserID, msg.ProblemID, err)
			context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to update progress", err))
			return
		}

		delta := gamification.XPDelta(previous, msg.Status)
		switch {
		case delta > 0:
			if err := a.store.ApplySolveReward(ctx, msg.UserID, msg.ProblemID, now); err != nil {
				log.Printf("Failed to apply solve reward for user %s: %v", msg.UserID, err)
			}
			if err := a.store.IncrementDailySolves(ctx, msg.UserID, gamification.DateKey(now)); err != nil {
				log.Printf("Failed to record daily solve for user %s: %v", msg.UserID, err)
			}
			totalXP := 0
			if user, err := a.store.GetUser(ctx, msg.UserID); err == nil {
				totalXP = user.XPPoints
			}
			a.notifier.NotifyUser(msg.UserID, "xp_awarded", map[string]interface{}{
				"problemId": msg.ProblemID,
				"xpDelta":   delta,
				"totalXP":   totalXP,
			})
		case delta < 0:
			if err := a.store.RevokeSolveReward(ctx, msg.UserID, msg.ProblemID); err != nil {
				log.Printf("Failed to revoke solve reward for user %s: %v", msg.UserID, err)
			}
		}

		record, err := a.store.GetProgress(ctx, msg.UserID, msg.ProblemID)
		if err != nil {
			context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to load updated progress", err))
			return
		}

		a.metrics.AddOperationLatency("set_status", time.Since(startTime))
		context.Respond(&StatusUpdateResult{Record: record, XPDelta: delta})

	case *ToggleBookmarkMsg:
		startTime := time.Now()
		ctx := stdctx.Background()

		if _, err := a.store.GetProblem(ctx, msg.ProblemID); err != nil {
			context.Respond(utils.NewProblemNotFoundError(msg.ProblemID))
			return
		}

		bookmarked := false
		if record, err := a.store.GetProgress(ctx, msg.UserID, msg.ProblemID); err == nil {
			bookmarked = record.IsBookmarked
		}

		now := time.Now()
		if err := a.store.SetProgressBookmark(ctx, msg.UserID, msg.ProblemID, !bookmarked, now); err != nil {
			log.Printf("Failed to toggle bookmark for user %s: %v", msg.UserID, err)
			context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to toggle bookmark", err))
			return
		}

		// Mirror onto the user document so the profile can list bookmarks
		// without scanning progress records.
		if err := a.store.SetUserBookmark(ctx, msg.UserID, msg.ProblemID, !bookmarked); err != nil {
			log.Printf("Failed to mirror bookmark for user %s: %v", msg.UserID, err)
		}

		record, err := a.store.GetProgress(ctx, msg.UserID, msg.ProblemID)
		if err != nil {
			context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to load updated progress", err))
			return
		}

		a.metrics.AddOperationLatency("toggle_bookmark", time.Since(startTime))
		context.Respond(record)

	case *WriteNoteMsg:
		startTime := time.Now()
		ctx := stdctx.Background()

		if _, err := a.store.GetProblem(ctx, msg.ProblemID); err != nil {
			context.Respond(utils.NewProblemNotFoundError(msg.ProblemID))
			return
		}

		now := time.Now()
		if err := a.store.SetProgressNotes(ctx, msg.UserID, msg.ProblemID, msg.Notes, now); err != nil {
			log.Printf("Failed to save notes for user %s: %v", msg.UserID, err)
			context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to save notes", err))
			return
		}

		record, err := a.store.GetProgress(ctx, msg.UserID, msg.ProblemID)
		if err != nil {
			context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to load updated progress", err))
			return
		}

		a.metrics.AddOperationLatency("write_note", time.Since(startTime))
		context.Respond(record)
	}
}
