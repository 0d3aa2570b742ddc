// Ludolog - Board Game Session Tracking and Adaptive Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludolog

package recommend

import (
	"context"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/tomtom215/ludolog/internal/config"
	"github.com/tomtom215/ludolog/internal/models"
	"github.com/tomtom215/ludolog/internal/storage"
)

func newTestEngine(t *testing.T) (*Engine, *storage.Store) {
	t.Helper()

	store, err := storage.Open(storage.Options{})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})

	engine, err := NewEngine(store, config.Default().Engine)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine, store
}

// gameNight is a Wednesday evening session at home.
func gameNight(id string) *models.SessionRecord {
	started := time.Date(2026, 3, 4, 19, 30, 0, 0, time.UTC)
	return &models.SessionRecord{
		ID:             id,
		GameName:       "Brass Birmingham",
		GameExternalID: "bgg-224517",
		Mode:           "competitive",
		StartedAt:      started,
		EndedAt:        started.Add(2 * time.Hour),
		LocationID:     "loc-home",
		LocationName:   "Home",
		Players: []models.PlayerResult{
			{ID: "1", Name: "Alice", EntityID: "p-alice", Score: 120, Color: "Red"},
			{ID: "2", Name: "Bob", EntityID: "p-bob", Score: 95, Color: "Blue"},
			{ID: "3", Name: "Carol", EntityID: "p-carol", Score: 88, Color: "White", Starter: true},
		},
		WinnerIDs: []string{"1"},
	}
}

func mustGetByName(t *testing.T, store *storage.Store, kind models.EntityKind, name string) *models.Entity {
	t.Helper()

	e, err := store.GetEntityByName(kind, name)
	if err != nil {
		t.Fatalf("get %s %q: %v", kind, name, err)
	}
	return e
}

func TestRecordSessionCompletionTrainsAllDimensions(t *testing.T) {
	t.Parallel()

	engine, store := newTestEngine(t)
	if err := engine.RecordSessionCompletion(gameNight("rec1")); err != nil {
		t.Fatalf("RecordSessionCompletion: %v", err)
	}

	game := mustGetByName(t, store, models.KindGame, "Brass Birmingham")
	alice := mustGetByName(t, store, models.KindPlayer, "Alice")
	home := mustGetByName(t, store, models.KindLocation, "Home")

	players := game.Relation(models.RelationPlayers)
	if len(players) != 3 {
		t.Fatalf("game learned %d players, want 3: %v", len(players), players)
	}
	if players[0].ID != alice.ID {
		t.Errorf("first learned player = %s, want Alice (%s)", players[0].ID, alice.ID)
	}

	// Alice learned her peers but never herself.
	peers := alice.Relation(models.RelationPlayers)
	if len(peers) != 2 {
		t.Fatalf("alice learned %d peers, want 2: %v", len(peers), peers)
	}
	for _, p := range peers {
		if p.ID == alice.ID {
			t.Error("alice's player relation contains herself")
		}
	}

	// Alice learned only her own color; the game learned all used colors.
	if colors := alice.Relation(models.RelationColors); len(colors) != 1 || colors[0].ID != "red" {
		t.Errorf("alice colors = %v, want [red]", colors)
	}
	if colors := game.Relation(models.RelationColors); len(colors) != 3 {
		t.Errorf("game colors = %v, want 3 entries", colors)
	}

	if counts := home.Relation(models.RelationPlayerCounts); len(counts) != 1 || counts[0].ID != "count_3" {
		t.Errorf("home player counts = %v, want [count_3]", counts)
	}
	if weekdays := game.Relation(models.RelationWeekdays); len(weekdays) != 1 || weekdays[0].ID != "weekday_3" {
		t.Errorf("game weekdays = %v, want [weekday_3]", weekdays)
	}

	if game.UsageCount != 1 || alice.UsageCount != 1 || home.UsageCount != 1 {
		t.Errorf("usage counts game/alice/home = %d/%d/%d, want 1/1/1",
			game.UsageCount, alice.UsageCount, home.UsageCount)
	}

	logEntry, err := store.GetLog("rec1")
	if err != nil {
		t.Fatalf("GetLog: %v", err)
	}
	if logEntry.Status != models.StatusProcessed {
		t.Errorf("log status = %q, want %q", logEntry.Status, models.StatusProcessed)
	}
	if len(logEntry.Context.PlayerIDs) != 3 || logEntry.Context.GameID != game.ID {
		t.Errorf("log context = %+v, want 3 players and game %s", logEntry.Context, game.ID)
	}

	session, err := store.GetEntity(models.KindSession, models.RecentSessionID)
	if err != nil {
		t.Fatalf("recent session entity: %v", err)
	}
	if got := session.Relation(models.RelationPlayers); len(got) != 3 {
		t.Errorf("recent session learned %d players, want 3", len(got))
	}
}

func TestRecordSessionCompletionIdempotent(t *testing.T) {
	t.Parallel()

	engine, store := newTestEngine(t)
	record := gameNight("rec1")

	if err := engine.RecordSessionCompletion(record); err != nil {
		t.Fatalf("first call: %v", err)
	}

	game1 := mustGetByName(t, store, models.KindGame, "Brass Birmingham")
	alice1 := mustGetByName(t, store, models.KindPlayer, "Alice")
	weights1, err := store.GetWeights(models.DomainPlayers)
	if err != nil {
		t.Fatalf("GetWeights: %v", err)
	}

	if err := engine.RecordSessionCompletion(record); err != nil {
		t.Fatalf("second call: %v", err)
	}

	game2 := mustGetByName(t, store, models.KindGame, "Brass Birmingham")
	alice2 := mustGetByName(t, store, models.KindPlayer, "Alice")
	weights2, err := store.GetWeights(models.DomainPlayers)
	if err != nil {
		t.Fatalf("GetWeights: %v", err)
	}

	if !reflect.DeepEqual(game1, game2) {
		t.Errorf("game changed on reprocessing:\nfirst:  %+v\nsecond: %+v", game1, game2)
	}
	if !reflect.DeepEqual(alice1, alice2) {
		t.Errorf("alice changed on reprocessing:\nfirst:  %+v\nsecond: %+v", alice1, alice2)
	}
	if !reflect.DeepEqual(weights1, weights2) {
		t.Errorf("weights changed on reprocessing: %v -> %v", weights1, weights2)
	}
}

func TestRecordSessionCompletionLocationOnly(t *testing.T) {
	t.Parallel()

	engine, store := newTestEngine(t)

	record := gameNight("rec1")
	record.LocationName = ""
	record.LocationID = ""
	if err := engine.RecordSessionCompletion(record); err != nil {
		t.Fatalf("first call: %v", err)
	}

	logEntry, err := store.GetLog("rec1")
	if err != nil {
		t.Fatalf("GetLog: %v", err)
	}
	if logEntry.Status != models.StatusMissingLocation {
		t.Fatalf("log status = %q, want %q", logEntry.Status, models.StatusMissingLocation)
	}

	alice := mustGetByName(t, store, models.KindPlayer, "Alice")
	usageBefore := alice.UsageCount

	// Same record, now with a location.
	complete := gameNight("rec1")
	if err := engine.RecordSessionCompletion(complete); err != nil {
		t.Fatalf("location-only call: %v", err)
	}

	home := mustGetByName(t, store, models.KindLocation, "Home")
	if got := home.Relation(models.RelationPlayers); len(got) != 3 {
		t.Errorf("home learned %d players, want 3", len(got))
	}

	alice = mustGetByName(t, store, models.KindPlayer, "Alice")
	if got := alice.Relation(models.RelationLocations); len(got) != 1 || got[0].ID != home.ID {
		t.Errorf("alice locations = %v, want [%s]", got, home.ID)
	}
	if alice.UsageCount != usageBefore {
		t.Errorf("alice usage count re-incremented: %d -> %d", usageBefore, alice.UsageCount)
	}

	logEntry, err = store.GetLog("rec1")
	if err != nil {
		t.Fatalf("GetLog: %v", err)
	}
	if logEntry.Status != models.StatusProcessed {
		t.Errorf("log status = %q, want %q", logEntry.Status, models.StatusProcessed)
	}
	if logEntry.Context.LocationID != home.ID {
		t.Errorf("log location = %q, want %q", logEntry.Context.LocationID, home.ID)
	}
}

func TestRecordSessionCompletionRejectsEmptyID(t *testing.T) {
	t.Parallel()

	engine, _ := newTestEngine(t)
	if err := engine.RecordSessionCompletion(&models.SessionRecord{}); err == nil {
		t.Error("expected error for record without id")
	}
}

func TestTrainingKeepsScalarsInRange(t *testing.T) {
	t.Parallel()

	engine, store := newTestEngine(t)
	for i := 0; i < 10; i++ {
		record := gameNight(fmt.Sprintf("rec%d", i))
		if err := engine.RecordSessionCompletion(record); err != nil {
			t.Fatalf("RecordSessionCompletion %d: %v", i, err)
		}
	}

	for _, domain := range models.Domains {
		w, err := store.GetWeights(domain)
		if err != nil {
			t.Fatalf("GetWeights %s: %v", domain, err)
		}
		for factor, v := range w {
			if v < models.MinScale || v > models.MaxScale {
				t.Errorf("weight %s/%s = %v out of range", domain, factor, v)
			}
		}
	}

	game := mustGetByName(t, store, models.KindGame, "Brass Birmingham")
	for kind, conf := range game.Meta.Confidence {
		if conf < models.MinScale || conf > models.MaxScale {
			t.Errorf("game confidence %s = %v out of range", kind, conf)
		}
	}
}

func TestReprocessAllHistory(t *testing.T) {
	t.Parallel()

	engine, store := newTestEngine(t)

	records := []*models.SessionRecord{gameNight("rec1"), gameNight("rec2"), gameNight("rec3")}
	var progress []int
	err := engine.ReprocessAllHistory(context.Background(), records, func(pct int) {
		progress = append(progress, pct)
	})
	if err != nil {
		t.Fatalf("ReprocessAllHistory: %v", err)
	}

	if len(progress) == 0 || progress[0] != 0 || progress[len(progress)-1] != 100 {
		t.Errorf("progress = %v, want 0 first and 100 last", progress)
	}

	for _, id := range []string{"rec1", "rec2", "rec3"} {
		logEntry, err := store.GetLog(id)
		if err != nil {
			t.Fatalf("GetLog %s: %v", id, err)
		}
		if logEntry.Status != models.StatusProcessed {
			t.Errorf("log %s status = %q, want processed", id, logEntry.Status)
		}
	}

	game := mustGetByName(t, store, models.KindGame, "Brass Birmingham")
	if game.UsageCount != 3 {
		t.Errorf("game usage = %d, want 3", game.UsageCount)
	}

	// A second run finds nothing pending and changes nothing.
	before := mustGetByName(t, store, models.KindPlayer, "Alice")
	if err := engine.ReprocessAllHistory(context.Background(), records, nil); err != nil {
		t.Fatalf("second run: %v", err)
	}
	after := mustGetByName(t, store, models.KindPlayer, "Alice")
	if !reflect.DeepEqual(before, after) {
		t.Errorf("alice changed on second run:\nbefore: %+v\nafter:  %+v", before, after)
	}
}

func TestReprocessAllHistoryMatchesSingleRecordPath(t *testing.T) {
	t.Parallel()

	single, singleStore := newTestEngine(t)
	batch, batchStore := newTestEngine(t)

	records := []*models.SessionRecord{gameNight("rec1"), gameNight("rec2")}
	for _, r := range records {
		if err := single.RecordSessionCompletion(r); err != nil {
			t.Fatalf("single path: %v", err)
		}
	}
	if err := batch.ReprocessAllHistory(context.Background(), records, nil); err != nil {
		t.Fatalf("batch path: %v", err)
	}

	g1 := mustGetByName(t, singleStore, models.KindGame, "Brass Birmingham")
	g2 := mustGetByName(t, batchStore, models.KindGame, "Brass Birmingham")

	if !reflect.DeepEqual(g1.Meta, g2.Meta) {
		t.Errorf("game learned state differs between paths:\nsingle: %+v\nbatch:  %+v", g1.Meta, g2.Meta)
	}
	if g1.UsageCount != g2.UsageCount {
		t.Errorf("game usage differs: single %d, batch %d", g1.UsageCount, g2.UsageCount)
	}
}

func TestReprocessAllHistoryHonorsCancellation(t *testing.T) {
	t.Parallel()

	engine, _ := newTestEngine(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := engine.ReprocessAllHistory(ctx, []*models.SessionRecord{gameNight("rec1")}, nil)
	if err == nil {
		t.Fatal("expected cancellation error")
	}
}

func TestResetModelClearsState(t *testing.T) {
	t.Parallel()

	engine, store := newTestEngine(t)
	if err := engine.RecordSessionCompletion(gameNight("rec1")); err != nil {
		t.Fatalf("RecordSessionCompletion: %v", err)
	}
	if err := engine.ResetModel(); err != nil {
		t.Fatalf("ResetModel: %v", err)
	}

	if n, err := store.CountEntities(models.KindPlayer); err != nil || n != 0 {
		t.Errorf("players after reset = %d (err %v), want 0", n, err)
	}
	if _, err := store.GetLog("rec1"); err == nil {
		t.Error("processing log survived reset")
	}
}
