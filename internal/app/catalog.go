package app

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/erazemk/educycle/internal/imaging"
	"github.com/erazemk/educycle/internal/model"
	"github.com/erazemk/educycle/internal/store"
)

// Item returns the item with the given ID.
func (a *App) Item(ctx context.Context, id string) (*model.Item, error) {
	items, err := a.Records.Items(ctx)
	if err != nil {
		return nil, err
	}
	i := model.FindItem(items, id)
	if i < 0 {
		return nil, fmt.Errorf("item %s: %w", id, ErrNotFound)
	}
	return &items[i], nil
}

// Items returns every item in collection order.
func (a *App) Items(ctx context.Context) ([]model.Item, error) {
	return a.Records.Items(ctx)
}

// AddItem appends a fully formed item and persists the collection.
func (a *App) AddItem(ctx context.Context, item model.Item) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.addItem(ctx, item)
}

func (a *App) addItem(ctx context.Context, item model.Item) error {
	items, err := a.Records.Items(ctx)
	if err != nil {
		return err
	}
	items = append(items, item)
	return a.Records.SaveItems(ctx, items)
}

// ShareItem lists a new item for the senior and credits them with the
// category's experience right away.
func (a *App) ShareItem(ctx context.Context, seniorID string, in ShareInput) (*model.Item, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	in.normalize()
	if err := a.check(in); err != nil {
		return nil, err
	}

	users, err := a.Records.Users(ctx)
	if err != nil {
		return nil, err
	}
	i := model.FindUser(users, seniorID)
	if i < 0 {
		return nil, fmt.Errorf("user %s: %w", seniorID, ErrNotFound)
	}
	senior := users[i]
	if !senior.IsSenior {
		return nil, ErrNotSenior
	}

	now := a.Now()
	imageURL := in.ImageURL
	if imageURL == "" {
		imageURL = fmt.Sprintf("https://picsum.photos/400/250?random=%d", now.UnixMilli())
	}

	item := model.Item{
		ID:          a.NewID(),
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		SeniorID:    senior.ID,
		Status:      model.StatusAvailable,
		PickupPoint: in.PickupPoint,
		XPValue:     in.Category.XP(),
		ImageURL:    imageURL,
		CreatedAt:   now,
		Course:      senior.Course,
		Year:        senior.Year,
	}

	items, err := a.Records.Items(ctx)
	if err != nil {
		return nil, err
	}
	if err := a.Records.SaveItems(ctx, append(slices.Clone(items), item)); err != nil {
		return nil, fmt.Errorf("sharing item: %w", err)
	}

	// The listing and the credit go together: withdraw the item if the
	// credit cannot be stored.
	users[i].XPPoints += item.XPValue
	if err := a.Records.SaveUsers(ctx, users); err != nil {
		if rerr := a.Records.SaveItems(ctx, items); rerr != nil {
			slog.Error("failed to withdraw item after credit failed", "item", item.ID, "error", rerr)
		}
		return nil, fmt.Errorf("awarding experience: %w", err)
	}
	if err := a.refreshSession(ctx, users[i]); err != nil {
		return nil, err
	}

	slog.Info("item shared", "item", item.ID, "senior", senior.ID, "xp", item.XPValue)
	return &item, nil
}

// RequestItem reserves an available item for a junior.
func (a *App) RequestItem(ctx context.Context, itemID, juniorID string) (*model.Item, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	users, err := a.Records.Users(ctx)
	if err != nil {
		return nil, err
	}
	u := model.FindUser(users, juniorID)
	if u < 0 {
		return nil, fmt.Errorf("user %s: %w", juniorID, ErrNotFound)
	}
	if users[u].IsSenior {
		return nil, ErrNotJunior
	}

	items, err := a.Records.Items(ctx)
	if err != nil {
		return nil, err
	}
	i := model.FindItem(items, itemID)
	if i < 0 {
		return nil, fmt.Errorf("item %s: %w", itemID, ErrNotFound)
	}
	if !items[i].Status.CanAdvanceTo(model.StatusRequested) {
		return nil, fmt.Errorf("requesting %q item: %w", items[i].Status, ErrInvalidTransition)
	}

	items[i].Status = model.StatusRequested
	items[i].JuniorID = juniorID
	if err := a.Records.SaveItems(ctx, items); err != nil {
		return nil, fmt.Errorf("requesting item: %w", err)
	}

	slog.Info("item requested", "item", itemID, "junior", juniorID)
	item := items[i]
	return &item, nil
}

// MarkPickedUp completes the handover of a requested item. Only the owning
// senior may call it. A non-empty juniorID must name the requesting junior.
func (a *App) MarkPickedUp(ctx context.Context, itemID, seniorID, juniorID string) (*model.Item, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	items, err := a.Records.Items(ctx)
	if err != nil {
		return nil, err
	}
	i := model.FindItem(items, itemID)
	if i < 0 {
		return nil, fmt.Errorf("item %s: %w", itemID, ErrNotFound)
	}
	if items[i].SeniorID != seniorID {
		return nil, ErrNotOwner
	}
	if !items[i].Status.CanAdvanceTo(model.StatusPickedUp) {
		return nil, fmt.Errorf("picking up %q item: %w", items[i].Status, ErrInvalidTransition)
	}
	if juniorID != "" && items[i].JuniorID != juniorID {
		return nil, ErrJuniorMismatch
	}

	items[i].Status = model.StatusPickedUp
	if err := a.Records.SaveItems(ctx, items); err != nil {
		return nil, fmt.Errorf("marking item picked up: %w", err)
	}

	slog.Info("item picked up", "item", itemID, "junior", items[i].JuniorID)
	item := items[i]
	return &item, nil
}

// AwardExperience adds amount to the user's experience and refreshes the
// session copy when it belongs to that user.
func (a *App) AwardExperience(ctx context.Context, userID string, amount int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.awardExperience(ctx, userID, amount)
}

func (a *App) awardExperience(ctx context.Context, userID string, amount int) error {
	if amount < 0 {
		return &ValidationError{Problems: []string{"amount must not be negative"}}
	}

	users, err := a.Records.Users(ctx)
	if err != nil {
		return err
	}
	i := model.FindUser(users, userID)
	if i < 0 {
		return fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}

	users[i].XPPoints += amount
	if err := a.Records.SaveUsers(ctx, users); err != nil {
		return err
	}
	return a.refreshSession(ctx, users[i])
}

// Leaderboard returns the seniors ordered by experience, highest first.
// Ties keep collection order.
func (a *App) Leaderboard(ctx context.Context) ([]model.User, error) {
	users, err := a.Records.Users(ctx)
	if err != nil {
		return nil, err
	}
	return leaderboard(users), nil
}

func leaderboard(users []model.User) []model.User {
	seniors := make([]model.User, 0, len(users))
	for _, u := range users {
		if u.IsSenior {
			seniors = append(seniors, u)
		}
	}
	slices.SortStableFunc(seniors, func(a, b model.User) int {
		return b.XPPoints - a.XPPoints
	})
	return seniors
}

// SetItemImage replaces an item's photo with an uploaded one. Only the
// owning senior may do this, and only before the item is picked up.
func (a *App) SetItemImage(ctx context.Context, itemID, seniorID string, data []byte) (*model.Item, error) {
	photo, err := imaging.Process(bytes.NewReader(data))
	if err != nil {
		return nil, &ValidationError{Problems: []string{err.Error()}}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	items, err := a.Records.Items(ctx)
	if err != nil {
		return nil, err
	}
	i := model.FindItem(items, itemID)
	if i < 0 {
		return nil, fmt.Errorf("item %s: %w", itemID, ErrNotFound)
	}
	if items[i].SeniorID != seniorID {
		return nil, ErrNotOwner
	}
	if items[i].Status == model.StatusPickedUp {
		return nil, fmt.Errorf("changing picked up item: %w", ErrInvalidTransition)
	}

	if err := a.Records.SaveImage(ctx, itemID, store.Image{MIME: photo.MIME, Data: photo.Data}); err != nil {
		return nil, err
	}
	items[i].ImageURL = ImagePath(itemID)
	if err := a.Records.SaveItems(ctx, items); err != nil {
		return nil, err
	}

	slog.Info("item image updated", "item", itemID, "width", photo.Width, "height", photo.Height)
	item := items[i]
	return &item, nil
}

// ItemImage returns the uploaded photo for an item.
func (a *App) ItemImage(ctx context.Context, itemID string) (*store.Image, error) {
	img, err := a.Records.Image(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if img == nil {
		return nil, fmt.Errorf("image for item %s: %w", itemID, ErrNotFound)
	}
	return img, nil
}

// ImagePath is where the web UI serves an uploaded item photo.
func ImagePath(itemID string) string {
	return "/items/" + itemID + "/image"
}
