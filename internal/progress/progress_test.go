package progress

import (
	"testing"

	"github.com/kotobadev/kotoba/internal/engine"
	"github.com/kotobadev/kotoba/internal/model"
)

func vocabOf(keys ...string) []model.VocabItem {
	items := make([]model.VocabItem, 0, len(keys))
	for _, k := range keys {
		items = append(items, model.VocabItem{Kanji: k, English: "meaning of " + k})
	}
	return items
}

func TestBuildOverview(t *testing.T) {
	vocab := vocabOf("a", "b", "c", "d")
	ledger := map[string]model.PerformanceRecord{
		"a": {Correct: 9, Incorrect: 1}, // mastered
		"b": {Correct: 1, Incorrect: 2}, // struggling
		// c, d unseen
	}
	ov := BuildOverview(vocab, ledger)
	if ov.TotalWords != 4 || ov.Practiced != 2 {
		t.Fatalf("unexpected counts: %+v", ov)
	}
	if ov.TotalCorrect != 10 || ov.TotalIncorrect != 3 {
		t.Fatalf("unexpected totals: %+v", ov)
	}
	// 10/13 = 76.9% rounds to 77.
	if ov.OverallAccuracy != 77 {
		t.Fatalf("accuracy = %d, want 77", ov.OverallAccuracy)
	}
	if ov.TierCounts[engine.TierMastered] != 1 || ov.TierCounts[engine.TierStruggling] != 1 || ov.TierCounts[engine.TierUnseen] != 2 {
		t.Fatalf("unexpected tier counts: %v", ov.TierCounts)
	}
}

func TestBuildOverviewNoAttempts(t *testing.T) {
	ov := BuildOverview(vocabOf("a"), nil)
	if ov.OverallAccuracy != 0 {
		t.Fatalf("accuracy with no attempts = %d, want 0", ov.OverallAccuracy)
	}
	if ov.Practiced != 0 {
		t.Fatalf("practiced with no attempts = %d", ov.Practiced)
	}
}
