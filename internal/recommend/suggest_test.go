// Ludolog - Board Game Session Tracking and Adaptive Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludolog

package recommend

import (
	"testing"
	"time"

	"github.com/tomtom215/ludolog/internal/models"
)

// trainedEngine returns an engine with one game night recorded.
func trainedEngine(t *testing.T) *Engine {
	t.Helper()

	engine, _ := newTestEngine(t)
	if err := engine.RecordSessionCompletion(gameNight("rec1")); err != nil {
		t.Fatalf("RecordSessionCompletion: %v", err)
	}
	return engine
}

func brassContext() SituationContext {
	return SituationContext{
		GameName:  "Brass Birmingham",
		Timestamp: time.Date(2026, 3, 11, 19, 30, 0, 0, time.UTC),
	}
}

func TestSuggestPlayers(t *testing.T) {
	t.Parallel()

	engine := trainedEngine(t)

	got, err := engine.SuggestPlayers(brassContext(), 2)
	if err != nil {
		t.Fatalf("SuggestPlayers: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d suggestions, want 2: %v", len(got), got)
	}
	if got[0].Name != "Alice" || got[1].Name != "Bob" {
		t.Errorf("suggestions = [%s %s], want [Alice Bob]", got[0].Name, got[1].Name)
	}
	if got[0].Color != "red" {
		t.Errorf("alice suggested color = %q, want %q", got[0].Color, "red")
	}
	if got[0].Score <= 0 || got[1].Score <= 0 {
		t.Errorf("non-positive scores: %v, %v", got[0].Score, got[1].Score)
	}
}

func TestSuggestPlayersExcludesKnownPlayers(t *testing.T) {
	t.Parallel()

	engine := trainedEngine(t)

	sctx := brassContext()
	sctx.PlayerIDs = []string{"p-alice"}

	got, err := engine.SuggestPlayers(sctx, 3)
	if err != nil {
		t.Fatalf("SuggestPlayers: %v", err)
	}
	if len(got) == 0 {
		t.Fatal("no suggestions")
	}
	for _, s := range got {
		if s.ID == "p-alice" {
			t.Error("known player suggested again")
		}
	}
	if got[0].Name != "Bob" {
		t.Errorf("first suggestion = %s, want Bob", got[0].Name)
	}
}

func TestSuggestPlayersEmptyModel(t *testing.T) {
	t.Parallel()

	engine, _ := newTestEngine(t)

	got, err := engine.SuggestPlayers(brassContext(), 3)
	if err != nil {
		t.Fatalf("SuggestPlayers: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d suggestions from empty model, want 0", len(got))
	}
}

func TestSuggestCounts(t *testing.T) {
	t.Parallel()

	engine := trainedEngine(t)

	got, err := engine.SuggestCounts(brassContext())
	if err != nil {
		t.Fatalf("SuggestCounts: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d counts, want 1: %v", len(got), got)
	}
	if got[0].Count != 3 {
		t.Errorf("suggested count = %d, want 3", got[0].Count)
	}
}

func TestSuggestLocations(t *testing.T) {
	t.Parallel()

	engine := trainedEngine(t)

	sctx := brassContext()
	sctx.PlayerIDs = []string{"p-alice"}

	got, err := engine.SuggestLocations(sctx)
	if err != nil {
		t.Fatalf("SuggestLocations: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d locations, want 1: %v", len(got), got)
	}
	if got[0].ID != "loc-home" || got[0].Name != "Home" {
		t.Errorf("suggestion = %+v, want loc-home/Home", got[0])
	}
}

func TestSuggestColors(t *testing.T) {
	t.Parallel()

	engine := trainedEngine(t)

	got, err := engine.SuggestColors(brassContext(), []string{"green", "red"}, "p-alice", nil)
	if err != nil {
		t.Fatalf("SuggestColors: %v", err)
	}
	if len(got) == 0 {
		t.Fatal("no color suggestions")
	}
	// Alice's learned preference plus the template vote outweigh the
	// template's first choice.
	if got[0].ID != "red" {
		t.Errorf("first color = %q, want %q", got[0].ID, "red")
	}
	for _, s := range got {
		if s.ID == TransparentColor {
			t.Error("transparent sentinel present in suggestions")
		}
	}
}

func TestSuggestColorsHonorsExclusions(t *testing.T) {
	t.Parallel()

	engine := trainedEngine(t)

	got, err := engine.SuggestColors(brassContext(), []string{"green", "red"}, "p-alice", []string{"red"})
	if err != nil {
		t.Fatalf("SuggestColors: %v", err)
	}
	if len(got) == 0 {
		t.Fatal("no color suggestions")
	}
	if got[0].ID != "green" {
		t.Errorf("first color = %q, want %q", got[0].ID, "green")
	}
	for _, s := range got {
		if s.ID == "red" {
			t.Error("excluded color suggested")
		}
	}
}

func TestSuggestColorsTemplateOrderDominatesForUnknownPlayer(t *testing.T) {
	t.Parallel()

	engine, _ := newTestEngine(t)

	got, err := engine.SuggestColors(SituationContext{}, []string{"purple", "teal"}, "", nil)
	if err != nil {
		t.Fatalf("SuggestColors: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d suggestions, want 2: %v", len(got), got)
	}
	if got[0].ID != "purple" || got[1].ID != "teal" {
		t.Errorf("order = [%s %s], want template order [purple teal]", got[0].ID, got[1].ID)
	}
}

func TestAssignColorsUsesLearnedPreferences(t *testing.T) {
	t.Parallel()

	engine := trainedEngine(t)

	got, err := engine.AssignColors(brassContext(), nil, []string{"p-alice", "p-bob"})
	if err != nil {
		t.Fatalf("AssignColors: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d assignments, want 2", len(got))
	}
	if got[0].Color != "red" {
		t.Errorf("alice assigned %q, want %q", got[0].Color, "red")
	}
	if got[1].Color != "blue" {
		t.Errorf("bob assigned %q, want %q", got[1].Color, "blue")
	}
}

func TestAssignColorsFallbackPalette(t *testing.T) {
	t.Parallel()

	engine, _ := newTestEngine(t)

	got, err := engine.AssignColors(SituationContext{}, nil, []string{"x", "y"})
	if err != nil {
		t.Fatalf("AssignColors: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d assignments, want 2", len(got))
	}
	// Nothing learned: everyone still receives a distinct palette color.
	if got[0].Color == "" || got[1].Color == "" {
		t.Errorf("unassigned colors: %+v", got)
	}
	if got[0].Color == got[1].Color {
		t.Errorf("duplicate color %q assigned to both players", got[0].Color)
	}
}

func TestGetAndSaveWeights(t *testing.T) {
	t.Parallel()

	engine, _ := newTestEngine(t)

	if _, err := engine.GetWeights("nonsense"); err == nil {
		t.Error("expected error for unknown domain")
	}

	w := models.Weights{models.FactorGame: 2.5}
	if err := engine.SaveWeights(models.DomainPlayers, w); err != nil {
		t.Fatalf("SaveWeights: %v", err)
	}

	got, err := engine.GetWeights(models.DomainPlayers)
	if err != nil {
		t.Fatalf("GetWeights: %v", err)
	}
	if got.Get(models.FactorGame) != 2.5 {
		t.Errorf("weight = %v, want 2.5", got.Get(models.FactorGame))
	}
}
