package engine

import (
	"algoquest/internal/database"
	"algoquest/internal/engine/actors"
	"algoquest/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
)

// Engine coordinates communication between actors. All state mutations flow
// through a single actor per concern, so concurrent HTTP requests never race
// on XP or forum state.
type Engine struct {
	userActor     *actor.PID
	progressActor *actor.PID
	forumActor    *actor.PID
}

func NewEngine(system *actor.ActorSystem, store database.Store, notifier actors.Notifier, metrics *utils.MetricsCollector) *Engine {
	context := system.Root

	userProps := actor.PropsFromProducer(func() actor.Actor {
		return actors.NewUserActor(store, notifier, metrics)
	})
	userPID := context.Spawn(userProps)

	progressProps := actor.PropsFromProducer(func() actor.Actor {
		return actors.NewProgressActor(store, notifier, metrics)
	})
	progressPID := context.Spawn(progressProps)

	forumProps := actor.PropsFromProducer(func() actor.Actor {
		return actors.NewForumActor(store, metrics)
	})
	forumPID := context.Spawn(forumProps)

	return &Engine{
		userActor:     userPID,
		progressActor: progressPID,
		forumActor:    forumPID,
	}
}

// GetUserActor returns the PID of the user actor
func (e *Engine) GetUserActor() *actor.PID {
	return e.userActor
}

// GetProgressActor returns the PID of the progress actor
func (e *Engine) GetProgressActor() *actor.PID {
	return e.progressActor
}

// GetForumActor returns the PID of the forum actor
func (e *Engine) GetForumActor() *actor.PID {
	return e.forumActor
}
