package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/erazemk/educycle/internal/model"
)

// Promote completes one computer year for a junior. Reaching
// model.SeniorComputerYear makes them a senior for good.
func (a *App) Promote(ctx context.Context, userID string) (*model.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	users, err := a.Records.Users(ctx)
	if err != nil {
		return nil, err
	}
	i := model.FindUser(users, userID)
	if i < 0 {
		return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	if users[i].IsSenior {
		return nil, ErrAlreadySenior
	}

	users[i].ComputerYear++
	if users[i].ComputerYear >= model.SeniorComputerYear {
		users[i].IsSenior = true
	}
	if err := a.Records.SaveUsers(ctx, users); err != nil {
		return nil, fmt.Errorf("promoting user: %w", err)
	}
	if err := a.refreshSession(ctx, users[i]); err != nil {
		return nil, err
	}

	slog.Info("user promoted", "user", userID, "computer_year", users[i].ComputerYear, "senior", users[i].IsSenior)
	user := users[i]
	return &user, nil
}

// PromotionMessage describes the outcome of a promotion to the user.
func PromotionMessage(user *model.User) string {
	if user.IsSenior {
		return fmt.Sprintf("Congratulations! You are now a Senior! You have completed %d computer years.", user.ComputerYear)
	}
	return fmt.Sprintf("You have completed computer year %d. Keep up the great work!", user.ComputerYear)
}
