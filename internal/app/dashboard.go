package app

import (
	"context"
	"slices"
	"strings"

	"github.com/erazemk/educycle/internal/model"
)

// AllCategories is the category filter value that keeps every item.
const AllCategories = "All"

// Filter narrows the dashboard listing.
type Filter struct {
	Category string
	Query    string
}

// Dashboard returns the items user may see, filtered and newest first.
func (a *App) Dashboard(ctx context.Context, user *model.User, f Filter) ([]model.Item, error) {
	items, err := a.Records.Items(ctx)
	if err != nil {
		return nil, err
	}
	return dashboard(items, user, f), nil
}

func dashboard(items []model.Item, user *model.User, f Filter) []model.Item {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	category := strings.TrimSpace(f.Category)

	visible := make([]model.Item, 0, len(items))
	for _, item := range items {
		if !Visible(user, &item) {
			continue
		}
		if category != "" && category != AllCategories && string(item.Category) != category {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(item.Name), query) &&
			!strings.Contains(strings.ToLower(item.Description), query) {
			continue
		}
		visible = append(visible, item)
	}

	slices.SortStableFunc(visible, func(a, b model.Item) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return visible
}

// Visible reports whether item appears on user's dashboard. A senior sees
// what they shared, including requests awaiting their confirmation. A
// junior sees available items from their own course and year, plus
// anything they requested or collected.
func Visible(user *model.User, item *model.Item) bool {
	if user == nil {
		return false
	}
	if user.IsSenior {
		return item.SeniorID == user.ID
	}
	if item.JuniorID == user.ID {
		return true
	}
	return item.Status == model.StatusAvailable && matchesCohort(user, item)
}

func matchesCohort(user *model.User, item *model.Item) bool {
	return item.Course == user.Course && item.Year == user.Year
}

// CanRequest reports whether user is offered the request action for item.
func CanRequest(user *model.User, item *model.Item) bool {
	return user != nil &&
		!user.IsSenior &&
		item.Status == model.StatusAvailable &&
		item.SeniorID != user.ID &&
		matchesCohort(user, item)
}

// CanMarkPickedUp reports whether user is offered the pickup action for item.
func CanMarkPickedUp(user *model.User, item *model.Item) bool {
	return user != nil &&
		user.IsSenior &&
		item.SeniorID == user.ID &&
		item.Status == model.StatusRequested
}
