package progress

import (
	"sort"

	"github.com/kotobadev/kotoba/internal/model"
)

// Problem-list thresholds: adequately sampled, clearly below target.
const (
	problemMinAttempts = 2
	problemAccuracy    = 0.7
	problemLimit       = 10
)

// Problem pairs a poorly performing item with its record.
type Problem struct {
	Item   model.VocabItem
	Record model.PerformanceRecord
}

// ProblemWords returns the worst-performing items with at least two
// attempts and accuracy below 0.7, ascending by accuracy, capped at ten.
func ProblemWords(vocab []model.VocabItem, ledger map[string]model.PerformanceRecord) []Problem {
	var problems []Problem
	for _, item := range vocab {
		rec := ledger[item.Kanji]
		if rec.Attempts() < problemMinAttempts || rec.Accuracy() >= problemAccuracy {
			continue
		}
		problems = append(problems, Problem{Item: item, Record: rec})
	}
	sort.SliceStable(problems, func(i, j int) bool {
		ai := problems[i].Record.Accuracy()
		aj := problems[j].Record.Accuracy()
		if ai == aj {
			return problems[i].Item.Kanji < problems[j].Item.Kanji
		}
		return ai < aj
	})
	if len(problems) > problemLimit {
		problems = problems[:problemLimit]
	}
	return problems
}
