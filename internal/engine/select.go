package engine

import (
	"math/rand"
	"time"

	"github.com/kotobadev/kotoba/internal/model"
)

// Weighted mode weights: every item starts at baseWeight and gains
// perMissWeight per recorded incorrect answer. Growth is linear and
// uncapped, with no decay.
const (
	baseWeight    = 10
	perMissWeight = 5
)

// Selector draws the next card from the vocabulary set.
type Selector struct {
	rnd *rand.Rand
}

// NewSelector returns a Selector seeded with the current time.
func NewSelector() *Selector {
	return &Selector{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// SelectNext picks one item. Uniform mode gives every item probability 1/N.
// Weighted mode draws proportionally to 10 + 5*incorrect from the ledger,
// sampled from a cumulative distribution rather than a replicated pool.
// Selection keeps no memory between calls; the same item can repeat.
func (s *Selector) SelectNext(items []model.VocabItem, ledger *Ledger, mode string) (model.VocabItem, error) {
	if len(items) == 0 {
		return model.VocabItem{}, ErrEmptyVocab
	}
	if mode != model.ModeWeighted {
		return items[s.rnd.Intn(len(items))], nil
	}

	weights := make([]int, len(items))
	total := 0
	for i, item := range items {
		w := baseWeight
		if rec, ok := ledger.Get(item.Kanji); ok {
			w += perMissWeight * rec.Incorrect
		}
		weights[i] = w
		total += w
	}

	r := s.rnd.Intn(total)
	acc := 0
	for i, w := range weights {
		acc += w
		if r < acc {
			return items[i], nil
		}
	}
	return items[len(items)-1], nil
}
