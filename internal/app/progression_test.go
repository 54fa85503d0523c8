package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/erazemk/educycle/internal/model"
)

func TestPromoteToSenior(t *testing.T) {
	a := newTestApp(t, model.PermissionGranted)
	ctx := context.Background()

	if _, err := a.Login(ctx, "junior2@college.edu", "JUNIOR002"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	for year := 2; year <= 4; year++ {
		user, err := a.Promote(ctx, "JUNIOR002")
		if err != nil {
			t.Fatalf("Promote to year %d: %v", year, err)
		}
		if user.ComputerYear != year {
			t.Errorf("expected computer year %d, got %d", year, user.ComputerYear)
		}
		if want := year >= model.SeniorComputerYear; user.IsSenior != want {
			t.Errorf("year %d: expected senior=%v", year, want)
		}
	}

	session, _ := a.CurrentUser(ctx)
	if !session.IsSenior || session.ComputerYear != 4 {
		t.Errorf("expected session to reflect promotion, got %+v", session)
	}

	if _, err := a.Promote(ctx, "JUNIOR002"); !errors.Is(err, ErrAlreadySenior) {
		t.Errorf("expected ErrAlreadySenior, got %v", err)
	}

	// A fresh senior can share right away.
	if _, err := a.ShareItem(ctx, "JUNIOR002", ShareInput{
		Name: "Multimeter", Description: "Works", Category: model.CategoryInstruments, PickupPoint: model.PickupComputerLabC,
	}); err != nil {
		t.Errorf("ShareItem after promotion: %v", err)
	}
}

func TestPromoteErrors(t *testing.T) {
	a := newTestApp(t, model.PermissionGranted)
	ctx := context.Background()

	if _, err := a.Promote(ctx, "SENIOR001"); !errors.Is(err, ErrAlreadySenior) {
		t.Errorf("expected ErrAlreadySenior, got %v", err)
	}
	if _, err := a.Promote(ctx, "GHOST"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPromotionMessage(t *testing.T) {
	junior := &model.User{ComputerYear: 2}
	if msg := PromotionMessage(junior); !strings.Contains(msg, "computer year 2") {
		t.Errorf("unexpected message %q", msg)
	}
	senior := &model.User{ComputerYear: 4, IsSenior: true}
	if msg := PromotionMessage(senior); !strings.HasPrefix(msg, "Congratulations! You are now a Senior!") {
		t.Errorf("unexpected message %q", msg)
	}
}
