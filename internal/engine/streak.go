package engine

import (
	"time"

	"github.com/kotobadev/kotoba/internal/model"
)

const dayFormat = "2006-01-02"

// TouchStreak applies a practice event on the given day. At most one
// transition happens per calendar day: the streak increments when the last
// practice was exactly yesterday, resets to 1 after a longer gap (or on
// first practice), and is unchanged when today was already counted.
// The second return reports whether the state changed.
func TouchStreak(state model.StreakState, today time.Time) (model.StreakState, bool) {
	day := today.Format(dayFormat)
	if state.LastPractice == day {
		return state, false
	}
	yesterday := today.AddDate(0, 0, -1).Format(dayFormat)
	if state.LastPractice == yesterday {
		return model.StreakState{LastPractice: day, Current: state.Current + 1}, true
	}
	return model.StreakState{LastPractice: day, Current: 1}, true
}
