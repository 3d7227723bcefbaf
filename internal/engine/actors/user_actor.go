package actors

import (
	"log"
	"time"

	stdctx "context"

	"algoquest/internal/database"
	"algoquest/internal/gamification"
	"algoquest/internal/models"
	"algoquest/internal/types"
	"algoquest/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Message types for user operations
type (
	RegisterUserMsg struct {
		Username string
		Email    string
		Password string
	}

	LoginMsg struct {
		Email    string
		Password string
	}

	GetUserProfileMsg struct {
		UserID uuid.UUID
	}
)

// UserActor owns account lifecycle: registration, login and the streak
// bookkeeping that happens on login.
type UserActor struct {
	store    database.UserStore
	notifier Notifier
	metrics  *utils.MetricsCollector
}

func NewUserActor(store database.UserStore, notifier Notifier, metrics *utils.MetricsCollector) actor.Actor {
	if notifier == nil {
		notifier = nilNotifier{}
	}
	return &UserActor{
		store:    store,
		notifier: notifier,
		metrics:  metrics,
	}
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

func (a *UserActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *RegisterUserMsg:
		startTime := time.Now()
		ctx := stdctx.Background()

		if msg.Username == "" || msg.Email == "" || msg.Password == "" {
			context.Respond(utils.NewAppError(utils.ErrInvalidInput, "Username, email and password are required", nil))
			return
		}

		existingUser, _ := a.store.GetUserByEmail(ctx, msg.Email)
		if existingUser != nil {
			log.Printf("Email already registered: %s", msg.Email)
			context.Respond(utils.NewAppError(utils.ErrUserAlreadyExists, "Email already registered", nil))
			return
		}

		hashedPassword, err := hashPassword(msg.Password)
		if err != nil {
			context.Respond(utils.NewAppError(utils.ErrInvalidInput, "Failed to hash password", err))
			return
		}

		now := time.Now()
		user := &models.User{
			ID:             uuid.New(),
			Username:       msg.Username,
			Email:          msg.Email,
			HashedPassword: hashedPassword,
			XPPoints:       0,
			StreakDays:     0,
			LastActive:     now,
			CreatedAt:      now,
			SolvedProblems: make([]models.SolvedProblem, 0),
			Bookmarks:      make([]string, 0),
		}

		if err := a.store.SaveUser(ctx, user); err != nil {
			log.Printf("Failed to save user %s: %v", msg.Email, err)
			context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to create user", err))
			return
		}

		a.metrics.AddOperationLatency("register_user", time.Since(startTime))
		context.Respond(user)

	case *LoginMsg:
		startTime := time.Now()
		ctx := stdctx.Background()

		user, err := a.store.GetUserByEmail(ctx, msg.Email)
		if err != nil {
			log.Printf("Login failed, user lookup for %s: %v", msg.Email, err)
			context.Respond(&types.LoginResponse{
				Success: false,
				Error:   "Invalid credentials",
			})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(msg.Password)); err != nil {
			context.Respond(&types.LoginResponse{
				Success: false,
				Error:   "Invalid credentials",
			})
			return
		}

		// A login on a new day advances or resets the streak.
		now := time.Now()
		streak := gamification.NextStreak(user.StreakDays, user.LastActive, now)
		if err := a.store.RecordLogin(ctx, user.ID, now, streak); err != nil {
			log.Printf("Failed to record login for user %s: %v", user.ID, err)
		} else if streak != user.StreakDays {
			a.notifier.NotifyUser(user.ID, "streak_updated", map[string]interface{}{
				"streakDays": streak,
			})
		}

		// The HTTP handler issues the JWT once it sees Success.
		a.metrics.AddOperationLatency("login_user", time.Since(startTime))
		context.Respond(&types.LoginResponse{
			Success: true,
			UserID:  user.ID.String(),
		})

	case *GetUserProfileMsg:
		ctx := stdctx.Background()

		user, err := a.store.GetUser(ctx, msg.UserID)
		if err != nil {
			context.Respond(utils.NewUserNotFoundError(msg.UserID.String()))
			return
		}
		context.Respond(user)
	}
}
