// Ludolog - Board Game Session Tracking and Adaptive Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludolog

package algorithms

import (
	"testing"

	"github.com/tomtom215/ludolog/internal/models"
)

func voterWithList(factor string, conf float64, ids ...string) Voter {
	e := &models.Entity{ID: "src_" + factor, Kind: models.KindGame}
	e.SetRelation(models.RelationPlayers, rankedIDs(ids...))
	if conf > 0 {
		e.SetConfidence(models.RelationPlayers, conf)
	}
	return Voter{Entity: e, Factor: factor}
}

func TestCalculateScoresSingleVoter(t *testing.T) {
	t.Parallel()

	voters := []Voter{voterWithList(models.FactorGame, 0, "p1", "p2", "p3")}
	scores := CalculateScores(voters, models.Weights{}, models.RelationPlayers, nil, 5)

	want := map[string]float64{"p1": 5, "p2": 4, "p3": 3}
	if len(scores) != len(want) {
		t.Fatalf("got %d scores, want %d: %v", len(scores), len(want), scores)
	}
	for id, w := range want {
		if scores[id] != w {
			t.Errorf("score[%s] = %v, want %v", id, scores[id], w)
		}
	}
}

func TestCalculateScoresConfidenceAndWeightMultiply(t *testing.T) {
	t.Parallel()

	voters := []Voter{voterWithList(models.FactorGame, 2.0, "p1")}
	weights := models.Weights{models.FactorGame: 1.5}

	scores := CalculateScores(voters, weights, models.RelationPlayers, nil, 5)
	if got, want := scores["p1"], 5*2.0*1.5; got != want {
		t.Errorf("score[p1] = %v, want %v", got, want)
	}
}

func TestCalculateScoresIgnoreBackfill(t *testing.T) {
	t.Parallel()

	voters := []Voter{voterWithList(models.FactorGame, 0, "p1", "p2", "p3", "p4")}
	ignore := map[string]struct{}{"p1": {}, "p3": {}}

	scores := CalculateScores(voters, models.Weights{}, models.RelationPlayers, ignore, 5)

	for id := range ignore {
		if _, present := scores[id]; present {
			t.Errorf("ignored id %s present in scores", id)
		}
	}
	// Skipped ids do not consume vote slots: p2 backfills slot 0.
	if got := scores["p2"]; got != 5 {
		t.Errorf("score[p2] = %v, want 5", got)
	}
	if got := scores["p4"]; got != 4 {
		t.Errorf("score[p4] = %v, want 4", got)
	}
}

func TestCalculateScoresCandidateLimit(t *testing.T) {
	t.Parallel()

	voters := []Voter{voterWithList(models.FactorGame, 0, "p1", "p2", "p3", "p4")}
	scores := CalculateScores(voters, models.Weights{}, models.RelationPlayers, nil, 2)

	if len(scores) != 2 {
		t.Fatalf("got %d scores, want 2: %v", len(scores), scores)
	}
	if _, present := scores["p3"]; present {
		t.Error("p3 scored beyond the candidate limit")
	}
}

func TestCalculateScoresSlotFloor(t *testing.T) {
	t.Parallel()

	ids := []string{"a", "b", "c", "d", "e", "f", "g"}
	voters := []Voter{voterWithList(models.FactorGame, 0, ids...)}
	scores := CalculateScores(voters, models.Weights{}, models.RelationPlayers, nil, len(ids))

	// Votes past the fifth still contribute at least 1.
	if got := scores["f"]; got != 1 {
		t.Errorf("score[f] = %v, want 1", got)
	}
	if got := scores["g"]; got != 1 {
		t.Errorf("score[g] = %v, want 1", got)
	}
}

func TestCalculateScoresMultipleVotersAccumulate(t *testing.T) {
	t.Parallel()

	voters := []Voter{
		voterWithList(models.FactorGame, 0, "p1", "p2"),
		voterWithList(models.FactorLocation, 0, "p2", "p1"),
	}
	scores := CalculateScores(voters, models.Weights{}, models.RelationPlayers, nil, 5)

	if got := scores["p1"]; got != 9 {
		t.Errorf("score[p1] = %v, want 9", got)
	}
	if got := scores["p2"]; got != 9 {
		t.Errorf("score[p2] = %v, want 9", got)
	}
}

func TestCalculateScoresOverrideConfidence(t *testing.T) {
	t.Parallel()

	v := voterWithList(models.FactorGame, 1.0, "p1")
	v.ConfidenceOverride = models.MaxScale

	scores := CalculateScores([]Voter{v}, models.Weights{}, models.RelationPlayers, nil, 5)
	if got := scores["p1"]; got != 25 {
		t.Errorf("score[p1] = %v, want 25", got)
	}
}

func TestCalculateScoresSkipsVotersWithoutList(t *testing.T) {
	t.Parallel()

	voters := []Voter{
		{Entity: &models.Entity{ID: "bare", Kind: models.KindGame}, Factor: models.FactorGame},
		{Entity: nil, Factor: models.FactorLocation},
	}
	scores := CalculateScores(voters, models.Weights{}, models.RelationPlayers, nil, 5)
	if len(scores) != 0 {
		t.Errorf("got %d scores from listless voters, want 0", len(scores))
	}
}

func TestTopWindowHit(t *testing.T) {
	t.Parallel()

	l := rankedIDs("a", "b", "c", "d")

	tests := []struct {
		name   string
		id     string
		window int
		want   bool
	}{
		{"first entry hits", "a", 2, true},
		{"inside window hits", "b", 2, true},
		{"outside window misses", "c", 2, false},
		{"absent id misses", "z", 4, false},
		{"window larger than list", "d", 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := TopWindowHit(l, tt.id, tt.window); got != tt.want {
				t.Errorf("TopWindowHit(%q, %d) = %v, want %v", tt.id, tt.window, got, tt.want)
			}
		})
	}
}
