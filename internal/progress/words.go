package progress

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/kotobadev/kotoba/internal/engine"
	"github.com/kotobadev/kotoba/internal/model"
)

// Display cap for the word list; the true match count is reported alongside.
const wordDisplayLimit = 100

// WordRow is one word list entry with its performance data.
type WordRow struct {
	Item   model.VocabItem
	Record model.PerformanceRecord
	Tier   engine.Tier
}

// QueryWords filters and sorts the vocabulary set. It returns at most 100
// rows plus the total number of matches before the cap.
func QueryWords(vocab []model.VocabItem, ledger map[string]model.PerformanceRecord, query model.WordQuery) ([]WordRow, int, error) {
	var tierFilter *engine.Tier
	if query.Tier != "" {
		tier, ok := engine.TierFromName(query.Tier)
		if !ok {
			return nil, 0, fmt.Errorf("unknown tier %q", query.Tier)
		}
		tierFilter = &tier
	}
	search := strings.ToLower(strings.TrimSpace(query.Search))

	var rows []WordRow
	for _, item := range vocab {
		rec := ledger[item.Kanji]
		tier := engine.Classify(rec.Correct, rec.Incorrect)
		if tierFilter != nil && tier != *tierFilter {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(item.Kanji), search) &&
			!strings.Contains(strings.ToLower(item.English), search) {
			continue
		}
		rows = append(rows, WordRow{Item: item, Record: rec, Tier: tier})
	}

	sortWords(rows, query.Sort)
	total := len(rows)
	if total > wordDisplayLimit {
		rows = rows[:wordDisplayLimit]
	}
	return rows, total, nil
}

func sortWords(rows []WordRow, order model.WordSort) {
	keyLess := keyComparator()
	switch order {
	case model.SortAccuracyDesc:
		sort.SliceStable(rows, func(i, j int) bool {
			ai, aj := rows[i].Record.Accuracy(), rows[j].Record.Accuracy()
			if ai == aj {
				return keyLess(rows[i].Item.Kanji, rows[j].Item.Kanji)
			}
			return ai > aj
		})
	case model.SortAttemptsDesc:
		sort.SliceStable(rows, func(i, j int) bool {
			ai, aj := rows[i].Record.Attempts(), rows[j].Record.Attempts()
			if ai == aj {
				return keyLess(rows[i].Item.Kanji, rows[j].Item.Kanji)
			}
			return ai > aj
		})
	case model.SortAttemptsAsc:
		sort.SliceStable(rows, func(i, j int) bool {
			ai, aj := rows[i].Record.Attempts(), rows[j].Record.Attempts()
			if ai == aj {
				return keyLess(rows[i].Item.Kanji, rows[j].Item.Kanji)
			}
			return ai < aj
		})
	case model.SortKey:
		sort.SliceStable(rows, func(i, j int) bool {
			return keyLess(rows[i].Item.Kanji, rows[j].Item.Kanji)
		})
	default: // SortAccuracyAsc
		sort.SliceStable(rows, func(i, j int) bool {
			ai, aj := rows[i].Record.Accuracy(), rows[j].Record.Accuracy()
			if ai == aj {
				return keyLess(rows[i].Item.Kanji, rows[j].Item.Kanji)
			}
			return ai < aj
		})
	}
}

// keyComparator orders keys with Japanese collation rules.
func keyComparator() func(a, b string) bool {
	c := collate.New(language.Japanese)
	return func(a, b string) bool {
		return c.CompareString(a, b) < 0
	}
}
