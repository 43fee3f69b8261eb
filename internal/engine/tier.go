package engine

// Tier is the mastery classification of one vocabulary item. Tiers are
// ordered for display and sorting: Unseen < Struggling < Learning <
// Confident < Mastered.
type Tier int

// Mastery tiers, lowest first.
const (
	TierUnseen Tier = iota
	TierStruggling
	TierLearning
	TierConfident
	TierMastered
)

var tierNames = [...]string{"unseen", "struggling", "learning", "confident", "mastered"}

func (t Tier) String() string {
	if t < TierUnseen || t > TierMastered {
		return "unknown"
	}
	return tierNames[t]
}

// TierFromName resolves a tier by its display name.
func TierFromName(name string) (Tier, bool) {
	for i, n := range tierNames {
		if n == name {
			return Tier(i), true
		}
	}
	return TierUnseen, false
}

// Classify assigns a mastery tier from cumulative counts. Conditions are
// checked in order, first match wins:
//
//	unseen     attempts == 0
//	mastered   accuracy >= 0.9 and attempts >= 5
//	confident  accuracy >= 0.7 and attempts >= 3
//	learning   accuracy >= 0.5
//	struggling otherwise
func Classify(correct, incorrect int) Tier {
	attempts := correct + incorrect
	if attempts == 0 {
		return TierUnseen
	}
	accuracy := float64(correct) / float64(attempts)
	switch {
	case accuracy >= 0.9 && attempts >= 5:
		return TierMastered
	case accuracy >= 0.7 && attempts >= 3:
		return TierConfident
	case accuracy >= 0.5:
		return TierLearning
	default:
		return TierStruggling
	}
}
