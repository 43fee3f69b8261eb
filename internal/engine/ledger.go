package engine

import "github.com/kotobadev/kotoba/internal/model"

// Ledger owns the per-key performance records. Other components read
// records through it; only the engine mutates them.
type Ledger struct {
	records map[string]model.PerformanceRecord
	dirty   bool
}

// NewLedger wraps an existing mapping, which may be nil.
func NewLedger(records map[string]model.PerformanceRecord) *Ledger {
	if records == nil {
		records = map[string]model.PerformanceRecord{}
	}
	return &Ledger{records: records}
}

// EnsureEntry inserts a zeroed record for key if absent. Idempotent.
func (l *Ledger) EnsureEntry(key string) {
	if _, ok := l.records[key]; ok {
		return
	}
	l.records[key] = model.PerformanceRecord{}
	l.dirty = true
}

// RecordOutcome increments the matching counter for key. Keys without an
// entry return ErrUnknownKey and leave the ledger untouched.
func (l *Ledger) RecordOutcome(key string, correct bool) error {
	rec, ok := l.records[key]
	if !ok {
		return ErrUnknownKey
	}
	if correct {
		rec.Correct++
	} else {
		rec.Incorrect++
	}
	l.records[key] = rec
	l.dirty = true
	return nil
}

// Get returns the record for key.
func (l *Ledger) Get(key string) (model.PerformanceRecord, bool) {
	rec, ok := l.records[key]
	return rec, ok
}

// Reset clears all entries.
func (l *Ledger) Reset() {
	l.records = map[string]model.PerformanceRecord{}
	l.dirty = true
}

// Len returns the number of tracked keys.
func (l *Ledger) Len() int {
	return len(l.records)
}

// Snapshot returns a copy of the mapping for read-side consumers.
func (l *Ledger) Snapshot() map[string]model.PerformanceRecord {
	out := make(map[string]model.PerformanceRecord, len(l.records))
	for k, v := range l.records {
		out[k] = v
	}
	return out
}

// Dirty reports whether the ledger has unpersisted changes.
func (l *Ledger) Dirty() bool {
	return l.dirty
}

// MarkClean clears the dirty flag after a successful save.
func (l *Ledger) MarkClean() {
	l.dirty = false
}
