package progress

import "testing"

func TestFormatTableAlignsByDisplayWidth(t *testing.T) {
	headers := []string{"Word", "Attempts"}
	rows := [][]string{
		{"犬", "10"},
		{"食べる", "4"},
	}
	lines := formatTable(headers, rows, map[int]bool{1: true})
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	// 食べる is 6 cells wide; every Word column is padded to match.
	for _, line := range lines {
		if displayWidth(line) != displayWidth(lines[0]) {
			t.Fatalf("ragged table output:\n%q\n%q", lines[0], line)
		}
	}
}

func TestFormatTableEmpty(t *testing.T) {
	if lines := formatTable(nil, nil, nil); lines != nil {
		t.Fatalf("expected nil for empty table, got %v", lines)
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil); got != "" {
		t.Fatalf("empty input should render empty, got %q", got)
	}
	flat := Sparkline([]float64{50, 50, 50})
	if len(flat) != 3 {
		t.Fatalf("unexpected flat sparkline: %q", flat)
	}
	ramp := Sparkline([]float64{0, 50, 100})
	if ramp[0] != sparkChars[0] || ramp[2] != sparkChars[len(sparkChars)-1] {
		t.Fatalf("ramp should span the character range: %q", ramp)
	}
}
