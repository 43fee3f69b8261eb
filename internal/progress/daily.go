package progress

import (
	"sort"

	"github.com/kotobadev/kotoba/internal/model"
)

// DailySeries keeps the most recent distinct days only.
const dailySeriesDays = 30

// DailyPoint is one calendar day's aggregated accuracy.
type DailyPoint struct {
	Date      string // "2006-01-02" (UTC)
	Correct   int
	Incorrect int
	Accuracy  float64
}

// DailySeries groups session events by UTC calendar day and returns the
// most recent 30 distinct days present, oldest first.
func DailySeries(events []model.SessionEvent) []DailyPoint {
	byDay := map[string]*DailyPoint{}
	for _, event := range events {
		day := event.At.UTC().Format("2006-01-02")
		point, ok := byDay[day]
		if !ok {
			point = &DailyPoint{Date: day}
			byDay[day] = point
		}
		point.Correct += event.Correct
		point.Incorrect += event.Incorrect
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)
	if len(days) > dailySeriesDays {
		days = days[len(days)-dailySeriesDays:]
	}

	series := make([]DailyPoint, 0, len(days))
	for _, day := range days {
		point := *byDay[day]
		if total := point.Correct + point.Incorrect; total > 0 {
			point.Accuracy = float64(point.Correct) / float64(total)
		}
		series = append(series, point)
	}
	return series
}
