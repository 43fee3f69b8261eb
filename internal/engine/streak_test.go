package engine

import (
	"testing"
	"time"

	"github.com/kotobadev/kotoba/internal/model"
)

func TestTouchStreakIncrementsAfterYesterday(t *testing.T) {
	today := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	state := model.StreakState{LastPractice: "2026-08-30", Current: 5}
	got, changed := TouchStreak(state, today)
	if !changed {
		t.Fatalf("expected a state change")
	}
	if got.Current != 6 || got.LastPractice != "2026-08-31" {
		t.Fatalf("unexpected state: %+v", got)
	}
}

func TestTouchStreakResetsAfterGap(t *testing.T) {
	today := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	state := model.StreakState{LastPractice: "2026-08-28", Current: 5}
	got, changed := TouchStreak(state, today)
	if !changed || got.Current != 1 {
		t.Fatalf("expected reset to 1, got %+v (changed=%v)", got, changed)
	}
}

func TestTouchStreakUnchangedSameDay(t *testing.T) {
	today := time.Date(2026, 8, 31, 23, 59, 0, 0, time.UTC)
	state := model.StreakState{LastPractice: "2026-08-31", Current: 5}
	got, changed := TouchStreak(state, today)
	if changed || got != state {
		t.Fatalf("expected unchanged state, got %+v (changed=%v)", got, changed)
	}
}

func TestTouchStreakFirstPractice(t *testing.T) {
	today := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	got, changed := TouchStreak(model.StreakState{}, today)
	if !changed || got.Current != 1 || got.LastPractice != "2026-08-31" {
		t.Fatalf("unexpected first-practice state: %+v", got)
	}
}

func TestTouchStreakAcrossMonthBoundary(t *testing.T) {
	today := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	state := model.StreakState{LastPractice: "2026-08-31", Current: 2}
	got, _ := TouchStreak(state, today)
	if got.Current != 3 {
		t.Fatalf("expected increment across month boundary, got %+v", got)
	}
}
