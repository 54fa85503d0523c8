package model

import (
	"testing"
	"time"
)

func TestCanAdvanceTo(t *testing.T) {
	tests := []struct {
		from     ItemStatus
		to       ItemStatus
		expected bool
	}{
		{StatusAvailable, StatusRequested, true},
		{StatusRequested, StatusPickedUp, true},
		// No skipping, no going back, nothing after pickup.
		{StatusAvailable, StatusPickedUp, false},
		{StatusRequested, StatusAvailable, false},
		{StatusPickedUp, StatusAvailable, false},
		{StatusPickedUp, StatusRequested, false},
		{StatusPickedUp, StatusPickedUp, false},
		{StatusAvailable, StatusAvailable, false},
		{"unknown", StatusRequested, false},
	}

	for _, tt := range tests {
		got := tt.from.CanAdvanceTo(tt.to)
		if got != tt.expected {
			t.Errorf("%q.CanAdvanceTo(%q) = %v, want %v", tt.from, tt.to, got, tt.expected)
		}
	}
}

func TestCategoryXP(t *testing.T) {
	expected := map[Category]int{
		CategoryBooks:          100,
		CategoryNotes:          50,
		CategoryLabEssentials:  75,
		CategoryInstruments:    150,
		CategoryQuestionPapers: 60,
		CategoryOther:          40,
	}
	for _, c := range Categories {
		if c.XP() != expected[c] {
			t.Errorf("%q.XP() = %d, want %d", c, c.XP(), expected[c])
		}
	}
	if Category("Furniture").Valid() {
		t.Error("expected unknown category to be invalid")
	}
	if Category("Furniture").XP() != 0 {
		t.Error("expected unknown category to be worth 0 XP")
	}
}

func TestPickupPointValid(t *testing.T) {
	if !PickupLibrary.Valid() {
		t.Error("expected library to be valid")
	}
	if PickupPoint("Parking Lot").Valid() {
		t.Error("expected unknown pickup point to be invalid")
	}
}

func TestDefaultItemsSnapshotSeniorProfile(t *testing.T) {
	users := DefaultUsers()
	for _, item := range DefaultItems(time.Now()) {
		i := FindUser(users, item.SeniorID)
		if i < 0 {
			t.Fatalf("item %s references unknown senior %s", item.ID, item.SeniorID)
		}
		if item.Course != users[i].Course || item.Year != users[i].Year {
			t.Errorf("item %s course/year %s/%d, senior has %s/%d",
				item.ID, item.Course, item.Year, users[i].Course, users[i].Year)
		}
		if item.XPValue != item.Category.XP() {
			t.Errorf("item %s xp %d, category %q is worth %d", item.ID, item.XPValue, item.Category, item.Category.XP())
		}
	}
}
