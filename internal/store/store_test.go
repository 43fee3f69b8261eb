package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/kotobadev/kotoba/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "kotoba.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	})
	return s
}

func TestLedgerRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	ledger, err := s.LoadLedger(ctx)
	if err != nil {
		t.Fatalf("LoadLedger failed: %v", err)
	}
	if len(ledger) != 0 {
		t.Fatalf("fresh store should have an empty ledger, got %v", ledger)
	}

	want := map[string]model.PerformanceRecord{
		"犬": {Correct: 3, Incorrect: 1},
		"猫": {Correct: 0, Incorrect: 2},
	}
	if err := s.SaveLedger(ctx, want); err != nil {
		t.Fatalf("SaveLedger failed: %v", err)
	}
	got, err := s.LoadLedger(ctx)
	if err != nil {
		t.Fatalf("LoadLedger failed: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(got))
	}
	for key, rec := range want {
		if got[key] != rec {
			t.Fatalf("entry %q = %+v, want %+v", key, got[key], rec)
		}
	}

	// A second save replaces, never merges.
	if err := s.SaveLedger(ctx, map[string]model.PerformanceRecord{"鳥": {Correct: 1}}); err != nil {
		t.Fatalf("SaveLedger failed: %v", err)
	}
	got, err = s.LoadLedger(ctx)
	if err != nil {
		t.Fatalf("LoadLedger failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("save should replace the whole mapping, got %v", got)
	}
}

func TestSessionHistoryCap(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	start := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 105; i++ {
		event := model.SessionEvent{At: start.Add(time.Duration(i) * time.Hour), Correct: i, Incorrect: 1}
		if err := s.AppendSession(ctx, event, 100); err != nil {
			t.Fatalf("AppendSession failed: %v", err)
		}
	}
	events, err := s.ListSessions(ctx)
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(events) != 100 {
		t.Fatalf("expected 100 events after cap, got %d", len(events))
	}
	if events[0].Correct != 5 || events[99].Correct != 104 {
		t.Fatalf("cap should evict the oldest entries, got first=%d last=%d", events[0].Correct, events[99].Correct)
	}
}

func TestStreakRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	state, err := s.LoadStreak(ctx)
	if err != nil {
		t.Fatalf("LoadStreak failed: %v", err)
	}
	if state.Current != 0 || state.LastPractice != "" {
		t.Fatalf("fresh store should have zero streak, got %+v", state)
	}

	want := model.StreakState{LastPractice: "2026-08-31", Current: 4}
	if err := s.SaveStreak(ctx, want); err != nil {
		t.Fatalf("SaveStreak failed: %v", err)
	}
	// Upsert overwrites the single row.
	want.Current = 5
	if err := s.SaveStreak(ctx, want); err != nil {
		t.Fatalf("SaveStreak failed: %v", err)
	}
	state, err = s.LoadStreak(ctx)
	if err != nil {
		t.Fatalf("LoadStreak failed: %v", err)
	}
	if state != want {
		t.Fatalf("streak = %+v, want %+v", state, want)
	}
}

func TestResetAll(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.SaveLedger(ctx, map[string]model.PerformanceRecord{"犬": {Correct: 1}}); err != nil {
		t.Fatalf("SaveLedger failed: %v", err)
	}
	if err := s.AppendSession(ctx, model.SessionEvent{At: time.Now(), Correct: 1}, 100); err != nil {
		t.Fatalf("AppendSession failed: %v", err)
	}
	if err := s.SaveStreak(ctx, model.StreakState{LastPractice: "2026-08-31", Current: 1}); err != nil {
		t.Fatalf("SaveStreak failed: %v", err)
	}

	if err := s.ResetAll(ctx); err != nil {
		t.Fatalf("ResetAll failed: %v", err)
	}
	ledger, err := s.LoadLedger(ctx)
	if err != nil {
		t.Fatalf("LoadLedger failed: %v", err)
	}
	events, err := s.ListSessions(ctx)
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	streak, err := s.LoadStreak(ctx)
	if err != nil {
		t.Fatalf("LoadStreak failed: %v", err)
	}
	if len(ledger) != 0 || len(events) != 0 || streak.Current != 0 {
		t.Fatalf("reset left state behind: ledger=%v events=%d streak=%+v", ledger, len(events), streak)
	}
}
