package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/erazemk/educycle/internal/model"
)

// Authenticate returns the user whose email and ID both match. Email
// compares case-insensitively, ID exactly.
func (a *App) Authenticate(ctx context.Context, email, id string) (*model.User, error) {
	users, err := a.Records.Users(ctx)
	if err != nil {
		return nil, err
	}
	return authenticate(users, email, id)
}

func authenticate(users []model.User, email, id string) (*model.User, error) {
	id = strings.TrimSpace(id)
	for i := range users {
		if users[i].ID == id && users[i].EmailMatches(email) {
			u := users[i]
			return &u, nil
		}
	}
	return nil, ErrInvalidCredentials
}

// Login authenticates and makes the user the active session.
func (a *App) Login(ctx context.Context, email, id string) (*model.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	user, err := a.Authenticate(ctx, email, id)
	if err != nil {
		return nil, err
	}
	if err := a.Records.SaveSession(ctx, *user); err != nil {
		return nil, err
	}

	slog.Info("user logged in", "user", user.ID)
	return user, nil
}

// CreateUser validates in and appends a new user with no experience and
// computer year 1. A shared ID or a case-insensitively shared email is
// rejected with ErrDuplicateUser.
func (a *App) CreateUser(ctx context.Context, in RegisterInput) (*model.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.createUser(ctx, in)
}

func (a *App) createUser(ctx context.Context, in RegisterInput) (*model.User, error) {
	in.normalize()
	if err := a.check(in); err != nil {
		return nil, err
	}

	users, err := a.Records.Users(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == in.ID || users[i].EmailMatches(in.Email) {
			return nil, ErrDuplicateUser
		}
	}

	user := model.User{
		ID:           in.ID,
		Email:        in.Email,
		IsSenior:     in.IsSenior,
		Course:       in.Course,
		Year:         in.Year,
		XPPoints:     0,
		ComputerYear: 1,
	}
	users = append(users, user)
	if err := a.Records.SaveUsers(ctx, users); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	slog.Info("user registered", "user", user.ID, "senior", user.IsSenior)
	return &user, nil
}

// Register creates the user and makes them the active session.
func (a *App) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	user, err := a.createUser(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := a.Records.SaveSession(ctx, *user); err != nil {
		return nil, err
	}
	return user, nil
}

// Logout clears the session marker. Collections are untouched.
func (a *App) Logout(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Records.ClearSession(ctx)
}

// CurrentUser returns the session user, or nil when nobody is signed in or
// persistence is not granted.
func (a *App) CurrentUser(ctx context.Context) (*model.User, error) {
	return a.Records.Session(ctx)
}

// User returns the user with the given ID.
func (a *App) User(ctx context.Context, id string) (*model.User, error) {
	users, err := a.Records.Users(ctx)
	if err != nil {
		return nil, err
	}
	i := model.FindUser(users, id)
	if i < 0 {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return &users[i], nil
}

// Users returns every user.
func (a *App) Users(ctx context.Context) ([]model.User, error) {
	return a.Records.Users(ctx)
}

// refreshSession replaces the cached session copy when it belongs to user.
func (a *App) refreshSession(ctx context.Context, user model.User) error {
	current, err := a.Records.Session(ctx)
	if err != nil {
		return err
	}
	if current == nil || current.ID != user.ID {
		return nil
	}
	return a.Records.SaveSession(ctx, user)
}
