// Package model defines shared data structures.
package model

import "time"

// VocabItem is one vocabulary entry. The Kanji term is its identity.
type VocabItem struct {
	Kanji        string
	Reading      string
	English      string
	PartOfSpeech string
	Conjugations Conjugations
	Notes        string
}

// NotApplicable marks a conjugation slot that does not exist for the word.
const NotApplicable = "-"

// Conjugations holds the four tracked inflected forms. A form is either a
// value, empty (unknown), or NotApplicable.
type Conjugations struct {
	Polite   string
	Te       string
	Negative string
	Past     string
}

// PerformanceRecord counts answer outcomes for one vocabulary key.
type PerformanceRecord struct {
	Correct   int
	Incorrect int
}

// Attempts returns the total number of answers recorded.
func (r PerformanceRecord) Attempts() int {
	return r.Correct + r.Incorrect
}

// Accuracy returns the correct ratio, or 0 with no attempts.
func (r PerformanceRecord) Accuracy() float64 {
	total := r.Correct + r.Incorrect
	if total == 0 {
		return 0
	}
	return float64(r.Correct) / float64(total)
}

// SessionEvent is one completed practice session's tally.
type SessionEvent struct {
	At        time.Time
	Correct   int
	Incorrect int
}

// StreakState tracks consecutive practice days.
type StreakState struct {
	LastPractice string // "2006-01-02", empty when never practiced
	Current      int
}

// Selection modes for the next card draw.
const (
	ModeUniform  = "uniform"
	ModeWeighted = "weighted"
)

// Practice directions: which side of the card is shown first.
const (
	DirectionJPEN = "jp-en"
	DirectionENJP = "en-jp"
)

// Config defines practice settings.
type Config struct {
	VocabPath string
	Mode      string
	Direction string
	Theme     string
}

// WordSort identifies a word list ordering.
type WordSort string

// Word list sort orders.
const (
	SortAccuracyAsc  WordSort = "accuracy"
	SortAccuracyDesc WordSort = "accuracy-desc"
	SortAttemptsDesc WordSort = "attempts"
	SortAttemptsAsc  WordSort = "attempts-asc"
	SortKey          WordSort = "key"
)

// WordQuery defines filters and ordering for the word list.
type WordQuery struct {
	Tier   string // tier name, empty for all
	Search string // case-insensitive substring on key or translation
	Sort   WordSort
}
