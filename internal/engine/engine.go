// Package engine implements the adaptive card-selection and
// mastery-tracking core: the performance ledger, next-card selection,
// tier classification, and session/streak tracking.
package engine

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/kotobadev/kotoba/internal/model"
)

// Session history keeps the most recent entries only.
const maxSessionHistory = 100

// Storage persists engine state between runs.
type Storage interface {
	LoadLedger(ctx context.Context) (map[string]model.PerformanceRecord, error)
	SaveLedger(ctx context.Context, ledger map[string]model.PerformanceRecord) error
	AppendSession(ctx context.Context, event model.SessionEvent, limit int) error
	ListSessions(ctx context.Context) ([]model.SessionEvent, error)
	LoadStreak(ctx context.Context) (model.StreakState, error)
	SaveStreak(ctx context.Context, state model.StreakState) error
	ResetAll(ctx context.Context) error
}

// AnswerResult describes what one answer changed. The presentation layer
// renders it; the engine mutates no UI state.
type AnswerResult struct {
	Key            string
	Correct        bool
	Record         model.PerformanceRecord
	PreviousTier   Tier
	Tier           Tier
	TierChanged    bool
	Streak         model.StreakState
	StreakExtended bool
}

// Engine owns all mutable trainer state. It is single-threaded: every
// operation runs to completion within one caller event.
type Engine struct {
	storage  Storage
	selector *Selector
	now      func() time.Time

	vocab  []model.VocabItem
	byKey  map[string]model.VocabItem
	ledger *Ledger
	streak model.StreakState

	sessionCorrect   int
	sessionIncorrect int

	ready bool
}

// New returns an engine bound to the given storage. It serves no calls
// until Initialize succeeds.
func New(storage Storage) *Engine {
	return &Engine{
		storage:  storage,
		selector: NewSelector(),
		now:      time.Now,
	}
}

// Initialize loads persisted state and guarantees a ledger entry for every
// vocabulary key. Storage read failures degrade to empty defaults; an empty
// vocabulary set is fatal.
func (e *Engine) Initialize(ctx context.Context, vocab []model.VocabItem) error {
	if len(vocab) == 0 {
		return ErrEmptyVocab
	}

	records, err := e.storage.LoadLedger(ctx)
	if err != nil {
		logErrf("failed to load ledger, starting empty: %v\n", err)
		records = nil
	}
	streak, err := e.storage.LoadStreak(ctx)
	if err != nil {
		logErrf("failed to load streak, starting at zero: %v\n", err)
		streak = model.StreakState{}
	}

	e.vocab = vocab
	e.byKey = make(map[string]model.VocabItem, len(vocab))
	e.ledger = NewLedger(records)
	e.streak = streak
	for _, item := range vocab {
		e.byKey[item.Kanji] = item
		e.ledger.EnsureEntry(item.Kanji)
	}
	if e.ledger.Dirty() {
		e.persistLedger(ctx)
	}
	e.ready = true
	return nil
}

// Ready reports whether Initialize has completed.
func (e *Engine) Ready() bool {
	return e.ready
}

// NextCard draws the next item under the given selection mode.
func (e *Engine) NextCard(mode string) (model.VocabItem, error) {
	if !e.ready {
		return model.VocabItem{}, ErrNotReady
	}
	return e.selector.SelectNext(e.vocab, e.ledger, mode)
}

// Answer records a correctness judgment for key and returns the resulting
// state transitions. Persistence failures are logged, never surfaced.
func (e *Engine) Answer(ctx context.Context, key string, correct bool) (AnswerResult, error) {
	if !e.ready {
		return AnswerResult{}, ErrNotReady
	}
	prev, _ := e.ledger.Get(key)
	if err := e.ledger.RecordOutcome(key, correct); err != nil {
		return AnswerResult{}, err
	}
	rec, _ := e.ledger.Get(key)
	e.persistLedger(ctx)

	if correct {
		e.sessionCorrect++
	} else {
		e.sessionIncorrect++
	}

	streak, changed := TouchStreak(e.streak, e.now())
	if changed {
		e.streak = streak
		if err := e.storage.SaveStreak(ctx, streak); err != nil {
			logErrf("failed to save streak: %v\n", err)
		}
	}

	prevTier := Classify(prev.Correct, prev.Incorrect)
	tier := Classify(rec.Correct, rec.Incorrect)
	return AnswerResult{
		Key:            key,
		Correct:        correct,
		Record:         rec,
		PreviousTier:   prevTier,
		Tier:           tier,
		TierChanged:    tier != prevTier,
		Streak:         e.streak,
		StreakExtended: changed,
	}, nil
}

// Finish records the running session tally as one session event and clears
// it. Nothing is recorded when no cards were answered.
func (e *Engine) Finish(ctx context.Context) {
	if !e.ready || (e.sessionCorrect == 0 && e.sessionIncorrect == 0) {
		return
	}
	event := model.SessionEvent{
		At:        e.now(),
		Correct:   e.sessionCorrect,
		Incorrect: e.sessionIncorrect,
	}
	if err := e.storage.AppendSession(ctx, event, maxSessionHistory); err != nil {
		logErrf("failed to save session: %v\n", err)
	}
	e.sessionCorrect = 0
	e.sessionIncorrect = 0
}

// Reset clears all recorded progress and re-zeroes every known key. This is
// the only deletion path and is driven by an explicit user action.
func (e *Engine) Reset(ctx context.Context) error {
	if !e.ready {
		return ErrNotReady
	}
	if err := e.storage.ResetAll(ctx); err != nil {
		return fmt.Errorf("failed to reset storage: %w", err)
	}
	e.ledger.Reset()
	for _, item := range e.vocab {
		e.ledger.EnsureEntry(item.Kanji)
	}
	e.persistLedger(ctx)
	e.streak = model.StreakState{}
	e.sessionCorrect = 0
	e.sessionIncorrect = 0
	return nil
}

// Vocab returns the loaded vocabulary set.
func (e *Engine) Vocab() []model.VocabItem {
	return e.vocab
}

// Item looks up a vocabulary item by key.
func (e *Engine) Item(key string) (model.VocabItem, bool) {
	item, ok := e.byKey[key]
	return item, ok
}

// Record returns the performance record for key.
func (e *Engine) Record(key string) (model.PerformanceRecord, bool) {
	if !e.ready {
		return model.PerformanceRecord{}, false
	}
	return e.ledger.Get(key)
}

// LedgerSnapshot returns a copy of the ledger mapping for reporting.
func (e *Engine) LedgerSnapshot() map[string]model.PerformanceRecord {
	if !e.ready {
		return map[string]model.PerformanceRecord{}
	}
	return e.ledger.Snapshot()
}

// Streak returns the current streak state.
func (e *Engine) Streak() model.StreakState {
	return e.streak
}

// Sessions returns the persisted session history, oldest first.
func (e *Engine) Sessions(ctx context.Context) ([]model.SessionEvent, error) {
	return e.storage.ListSessions(ctx)
}

// SessionTally returns the running counts for the current session.
func (e *Engine) SessionTally() (correct, incorrect int) {
	return e.sessionCorrect, e.sessionIncorrect
}

func (e *Engine) persistLedger(ctx context.Context) {
	if err := e.storage.SaveLedger(ctx, e.ledger.Snapshot()); err != nil {
		logErrf("failed to save ledger: %v\n", err)
		return
	}
	e.ledger.MarkClean()
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
