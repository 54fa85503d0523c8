// Package app holds the EduCycle application state and every operation the
// web UI and the API dispatch to.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/erazemk/educycle/internal/model"
	"github.com/erazemk/educycle/internal/store"
)

// Errors returned by App operations.
var (
	ErrInvalidCredentials = errors.New("invalid email or ID")
	ErrDuplicateUser      = errors.New("a user with this ID or email already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidTransition  = errors.New("item is not in the right state for this action")
	ErrNotOwner           = errors.New("only the senior who shared this item can do that")
	ErrNotSenior          = errors.New("only seniors can do that")
	ErrNotJunior          = errors.New("only juniors can request items")
	ErrJuniorMismatch     = errors.New("item was requested by a different junior")
	ErrAlreadySenior      = errors.New("you are already a senior")
)

// QuoteSource produces the leaderboard's motivational quote.
type QuoteSource interface {
	Quote(ctx context.Context) string
}

// App is the application state: the record store plus the collaborators
// every operation needs. Operations that read, modify and write back a
// collection hold mu for the whole cycle.
type App struct {
	Records *store.Records
	Quotes  QuoteSource

	// Now and NewID are replaced in tests.
	Now   func() time.Time
	NewID func() string

	validate *validator.Validate
	mu       sync.Mutex
}

// New returns an App over records. quotes may be nil.
func New(records *store.Records, quotes QuoteSource) *App {
	return &App{
		Records:  records,
		Quotes:   quotes,
		Now:      time.Now,
		NewID:    uuid.NewString,
		validate: newValidator(),
	}
}

// Init seeds both collections when they are absent.
func (a *App) Init(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.Records.Users(ctx); err != nil {
		return fmt.Errorf("initializing users: %w", err)
	}
	if _, err := a.Records.Items(ctx); err != nil {
		return fmt.Errorf("initializing items: %w", err)
	}
	return nil
}

// Reset wipes the collections and the session, then seeds the defaults again.
func (a *App) Reset(ctx context.Context) error {
	a.mu.Lock()
	err := a.Records.Reset(ctx)
	a.mu.Unlock()
	if err != nil {
		return err
	}
	return a.Init(ctx)
}

// Quote returns a motivational quote, or a fallback message.
func (a *App) Quote(ctx context.Context) string {
	if a.Quotes == nil {
		return "No quote generated."
	}
	return a.Quotes.Quote(ctx)
}

// Permission returns the storage permission.
func (a *App) Permission(ctx context.Context) (model.Permission, error) {
	return a.Records.Permission(ctx)
}

// SetPermission records the user's storage answer. Granting it seeds the
// collections straight away.
func (a *App) SetPermission(ctx context.Context, p model.Permission) error {
	switch p {
	case model.PermissionGranted, model.PermissionDenied:
	default:
		return &ValidationError{Problems: []string{fmt.Sprintf("unknown permission %q", p)}}
	}

	if err := a.Records.SetPermission(ctx, p); err != nil {
		return fmt.Errorf("saving permission: %w", err)
	}
	slog.Info("storage permission changed", "permission", p)

	if p == model.PermissionGranted {
		return a.Init(ctx)
	}
	return nil
}
