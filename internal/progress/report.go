package progress

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/kotobadev/kotoba/internal/engine"
	"github.com/kotobadev/kotoba/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderOverview prints the progress summary with the daily accuracy trend.
func RenderOverview(w io.Writer, ov Overview, streak model.StreakState, daily []DailyPoint) error {
	if _, err := fmt.Fprintln(w, "Progress"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Words practiced: %d/%d\n", ov.Practiced, ov.TotalWords); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Overall accuracy: %d%%\n", ov.OverallAccuracy); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Streak: %d day(s)\n", streak.Current); err != nil {
		return err
	}
	for _, tier := range []engine.Tier{engine.TierMastered, engine.TierConfident, engine.TierLearning, engine.TierStruggling, engine.TierUnseen} {
		if _, err := fmt.Fprintf(w, "  %-10s %d\n", tier, ov.TierCounts[tier]); err != nil {
			return err
		}
	}
	if len(daily) > 0 {
		values := make([]float64, len(daily))
		for i, point := range daily {
			values[i] = point.Accuracy * 100
		}
		if _, err := fmt.Fprintf(w, "Daily accuracy (%s – %s): %s\n",
			daily[0].Date, daily[len(daily)-1].Date, Sparkline(values)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderProblems prints the worst-performing words.
func RenderProblems(w io.Writer, problems []Problem) error {
	if len(problems) == 0 {
		_, err := fmt.Fprintln(w, "No problem words yet.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Problem Words"); err != nil {
		return err
	}
	headers := []string{"Word", "Reading", "English", "Accuracy", "Attempts"}
	rows := make([][]string, 0, len(problems))
	for _, p := range problems {
		rows = append(rows, []string{
			p.Item.Kanji,
			p.Item.Reading,
			p.Item.English,
			fmt.Sprintf("%.0f%%", p.Record.Accuracy()*100),
			fmt.Sprintf("%d", p.Record.Attempts()),
		})
	}
	return writeTable(w, headers, rows, map[int]bool{3: true, 4: true})
}

// RenderWords prints the word list and reports truncation against the true
// match count.
func RenderWords(w io.Writer, rows []WordRow, total int) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No matching words.")
		return err
	}
	headers := []string{"Word", "Reading", "English", "Tier", "Accuracy", "Attempts"}
	wide := terminalWidth() >= 100
	if wide {
		headers = append(headers, "Notes")
	}
	tableRows := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells := []string{
			row.Item.Kanji,
			row.Item.Reading,
			row.Item.English,
			row.Tier.String(),
			fmt.Sprintf("%.0f%%", row.Record.Accuracy()*100),
			fmt.Sprintf("%d", row.Record.Attempts()),
		}
		if wide {
			cells = append(cells, row.Item.Notes)
		}
		tableRows = append(tableRows, cells)
	}
	if err := writeTable(w, headers, tableRows, map[int]bool{4: true, 5: true}); err != nil {
		return err
	}
	if total > len(rows) {
		if _, err := fmt.Fprintf(w, "Showing %d of %d matches.\n", len(rows), total); err != nil {
			return err
		}
	}
	return nil
}

func writeTable(w io.Writer, headers []string, rows [][]string, rightAlign map[int]bool) error {
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}
