package repository

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/nicheroot/wizard-backend/internal/config"
	"github.com/nicheroot/wizard-backend/internal/entity"
)

func storeConfig() config.StoreConfig {
	return config.StoreConfig{
		SessionTTL:      time.Hour,
		BlueprintTTL:    time.Hour,
		CleanupInterval: time.Hour,
	}
}

func TestSessionStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(storeConfig())

	iv := &entity.Interview{
		ID:          "s1",
		State:       entity.StatePresentingQuestion,
		CurrentStep: 2,
		UserInput:   "story",
		History: []entity.HistoryItem{
			{Step: 1, Question: "q1", Choice: "A", OptionLabel: "calm"},
		},
	}

	if err := store.Save(ctx, iv); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if iv.UpdatedAt.IsZero() {
		t.Error("Save() did not stamp UpdatedAt")
	}

	got, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.CurrentStep != 2 || len(got.History) != 1 {
		t.Errorf("Get() = %+v", got)
	}
}

func TestSessionStoreGetReturnsSnapshot(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(storeConfig())

	store.Save(ctx, &entity.Interview{
		ID:      "s1",
		History: []entity.HistoryItem{{Step: 1, Choice: "A"}},
	})

	first, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	// Mutating a read result must never leak into the store.
	first.History = append(first.History, entity.HistoryItem{Step: 1, Choice: "B"})
	first.State = entity.StateFailed

	second, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if first == second {
		t.Fatal("Get() returned the same pointer twice")
	}
	if len(second.History) != 1 {
		t.Errorf("stored history length = %d, want 1", len(second.History))
	}
	if second.State == entity.StateFailed {
		t.Error("mutation of a read result reached the store")
	}
}

func TestSessionStoreMissing(t *testing.T) {
	store := NewSessionStore(storeConfig())

	_, err := store.Get(context.Background(), "nope")
	if !errors.Is(err, entity.ErrSessionNotFound) {
		t.Errorf("Get() error = %v, want ErrSessionNotFound", err)
	}
}

func TestSessionStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(storeConfig())

	store.Save(ctx, &entity.Interview{ID: "s1"})
	if err := store.Delete(ctx, "s1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := store.Get(ctx, "s1"); !errors.Is(err, entity.ErrSessionNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrSessionNotFound", err)
	}
}

func TestBlueprintStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewBlueprintStore(storeConfig())

	bp := &entity.BusinessBlueprint{
		Title:                "Calm Consulting",
		Subtitle:             "quiet path",
		RecommendedDirection: "productized consulting",
		ExampleOffers:        []string{"audit", "roadmap"},
		DayOneActions:        []string{"write offer page"},
		KeyRisks:             []string{},
	}

	if err := store.Save(ctx, "s1", bp); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	// The store serializes and deserializes, so the round trip must be
	// value-equal, not pointer-equal.
	if got == bp {
		t.Error("Get() returned the stored pointer")
	}
	if !reflect.DeepEqual(got, bp) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, bp)
	}
}

func TestBlueprintStoreOverwrite(t *testing.T) {
	ctx := context.Background()
	store := NewBlueprintStore(storeConfig())

	store.Save(ctx, "s1", &entity.BusinessBlueprint{Title: "first"})
	store.Save(ctx, "s1", &entity.BusinessBlueprint{Title: "second"})

	got, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Title != "second" {
		t.Errorf("Title = %q, want second", got.Title)
	}
}

func TestBlueprintStoreMissing(t *testing.T) {
	store := NewBlueprintStore(storeConfig())

	_, err := store.Get(context.Background(), "nope")
	if !errors.Is(err, entity.ErrBlueprintNotFound) {
		t.Errorf("Get() error = %v, want ErrBlueprintNotFound", err)
	}
}
