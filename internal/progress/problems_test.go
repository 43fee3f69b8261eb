package progress

import (
	"fmt"
	"testing"

	"github.com/kotobadev/kotoba/internal/model"
)

func TestProblemWordsFilterAndOrder(t *testing.T) {
	vocab := vocabOf("slow", "middling", "solid", "once")
	ledger := map[string]model.PerformanceRecord{
		"slow":     {Correct: 3, Incorrect: 7},  // 0.3, 10 attempts
		"middling": {Correct: 2, Incorrect: 1},  // 0.6, 3 attempts
		"solid":    {Correct: 19, Incorrect: 1}, // 0.95, excluded by accuracy
		"once":     {Correct: 0, Incorrect: 1},  // 1 attempt, excluded
	}
	problems := ProblemWords(vocab, ledger)
	if len(problems) != 2 {
		t.Fatalf("expected 2 problems, got %d", len(problems))
	}
	if problems[0].Item.Kanji != "slow" || problems[1].Item.Kanji != "middling" {
		t.Fatalf("unexpected order: %q, %q", problems[0].Item.Kanji, problems[1].Item.Kanji)
	}
}

func TestProblemWordsCap(t *testing.T) {
	var vocab []model.VocabItem
	ledger := map[string]model.PerformanceRecord{}
	for i := 0; i < 15; i++ {
		key := fmt.Sprintf("w%02d", i)
		vocab = append(vocab, model.VocabItem{Kanji: key, English: key})
		ledger[key] = model.PerformanceRecord{Correct: 1, Incorrect: 3}
	}
	problems := ProblemWords(vocab, ledger)
	if len(problems) != 10 {
		t.Fatalf("expected cap at 10, got %d", len(problems))
	}
}
