// Package progress computes read-side rollups over the ledger, the
// vocabulary set, and the session history. Everything here is recomputed on
// demand; dataset sizes stay small.
package progress

import (
	"math"

	"github.com/kotobadev/kotoba/internal/engine"
	"github.com/kotobadev/kotoba/internal/model"
)

// Overview summarizes overall trainer progress.
type Overview struct {
	TotalWords      int
	Practiced       int
	TotalCorrect    int
	TotalIncorrect  int
	OverallAccuracy int // percent, rounded
	TierCounts      map[engine.Tier]int
}

// BuildOverview rolls up the ledger across the vocabulary set.
func BuildOverview(vocab []model.VocabItem, ledger map[string]model.PerformanceRecord) Overview {
	ov := Overview{
		TotalWords: len(vocab),
		TierCounts: map[engine.Tier]int{},
	}
	for _, item := range vocab {
		rec := ledger[item.Kanji]
		ov.TotalCorrect += rec.Correct
		ov.TotalIncorrect += rec.Incorrect
		if rec.Attempts() > 0 {
			ov.Practiced++
		}
		ov.TierCounts[engine.Classify(rec.Correct, rec.Incorrect)]++
	}
	attempts := ov.TotalCorrect + ov.TotalIncorrect
	if attempts > 0 {
		ov.OverallAccuracy = int(math.Round(float64(ov.TotalCorrect) / float64(attempts) * 100))
	}
	return ov
}
