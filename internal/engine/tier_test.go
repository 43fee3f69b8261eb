package engine

import "testing"

func TestClassifyThresholds(t *testing.T) {
	cases := []struct {
		correct   int
		incorrect int
		want      Tier
	}{
		{0, 0, TierUnseen},
		{5, 0, TierMastered},
		{9, 1, TierMastered},
		{4, 0, TierConfident}, // perfect but under 5 attempts
		{3, 1, TierConfident},
		{2, 1, TierLearning},
		{1, 1, TierLearning},
		{1, 2, TierStruggling},
		{0, 1, TierStruggling},
		{0, 5, TierStruggling},
		{18, 2, TierMastered},
		{7, 3, TierConfident},
	}
	for _, tc := range cases {
		got := Classify(tc.correct, tc.incorrect)
		if got != tc.want {
			t.Fatalf("Classify(%d, %d) = %s, want %s", tc.correct, tc.incorrect, got, tc.want)
		}
	}
}

func TestClassifyTotal(t *testing.T) {
	for correct := 0; correct <= 12; correct++ {
		for incorrect := 0; incorrect <= 12; incorrect++ {
			got := Classify(correct, incorrect)
			if got < TierUnseen || got > TierMastered {
				t.Fatalf("Classify(%d, %d) out of range: %d", correct, incorrect, got)
			}
			if correct+incorrect > 0 && got == TierUnseen {
				t.Fatalf("Classify(%d, %d) = unseen with attempts recorded", correct, incorrect)
			}
		}
	}
	if Classify(0, 0) != TierUnseen {
		t.Fatalf("Classify(0, 0) must be unseen")
	}
}

func TestTierOrdering(t *testing.T) {
	order := []Tier{TierUnseen, TierStruggling, TierLearning, TierConfident, TierMastered}
	for i := 1; i < len(order); i++ {
		if order[i-1] >= order[i] {
			t.Fatalf("tier order broken at %s >= %s", order[i-1], order[i])
		}
	}
}

func TestTierFromName(t *testing.T) {
	for _, tier := range []Tier{TierUnseen, TierStruggling, TierLearning, TierConfident, TierMastered} {
		got, ok := TierFromName(tier.String())
		if !ok || got != tier {
			t.Fatalf("TierFromName(%q) = %v, %v", tier.String(), got, ok)
		}
	}
	if _, ok := TierFromName("expert"); ok {
		t.Fatalf("unexpected tier for unknown name")
	}
}
