// Package vocab loads vocabulary sets from CSV and XLSX files.
package vocab

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kotobadev/kotoba/internal/model"
)

// ErrNoVocabRows reports a source that yielded no usable vocabulary rows.
var ErrNoVocabRows = errors.New("vocabulary source contains no valid rows")

// Column headers recognized in vocabulary files. Term and notes each accept
// two legacy spellings; per row the first non-empty value wins.
var (
	termHeaders  = []string{"Kanji", "Word"}
	notesHeaders = []string{"Usage/Notes", "Description"}
)

const (
	headerReading  = "Reading (Kana)"
	headerEnglish  = "English"
	headerPOS      = "Part of Speech"
	headerPolite   = "Polite (Masu-form)"
	headerTe       = "Te-form"
	headerNegative = "Short Negative (Nai)"
	headerPast     = "Short Past (Ta)"
)

// LoadCSV reads a vocabulary CSV. Rows missing a term or translation are
// dropped. Duplicate terms are last-write-wins: the later row replaces the
// earlier one but keeps its position.
func LoadCSV(path string) ([]model.VocabItem, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open vocabulary file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only vocabulary file.
			_ = cerr
		}
	}()
	return ParseCSV(file)
}

// ParseCSV parses vocabulary rows from a CSV stream with a header row.
func ParseCSV(r io.Reader) ([]model.VocabItem, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, ErrNoVocabRows
		}
		return nil, fmt.Errorf("failed to read vocabulary header: %w", err)
	}
	cols := indexColumns(header)
	if len(cols.term) == 0 {
		return nil, fmt.Errorf("vocabulary header has no term column (expected %s)", strings.Join(termHeaders, " or "))
	}

	var items []model.VocabItem
	index := map[string]int{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read vocabulary row: %w", err)
		}
		item, ok := cols.itemFromRecord(record)
		if !ok {
			continue
		}
		if pos, seen := index[item.Kanji]; seen {
			items[pos] = item
			continue
		}
		index[item.Kanji] = len(items)
		items = append(items, item)
	}
	if len(items) == 0 {
		return nil, ErrNoVocabRows
	}
	return items, nil
}

type columnIndex struct {
	term     []int
	notes    []int
	reading  int
	english  int
	pos      int
	polite   int
	te       int
	negative int
	past     int
}

func indexColumns(header []string) columnIndex {
	cols := columnIndex{reading: -1, english: -1, pos: -1, polite: -1, te: -1, negative: -1, past: -1}
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case termHeaders[0], termHeaders[1]:
			cols.term = append(cols.term, i)
		case notesHeaders[0], notesHeaders[1]:
			cols.notes = append(cols.notes, i)
		case headerReading:
			cols.reading = i
		case headerEnglish:
			cols.english = i
		case headerPOS:
			cols.pos = i
		case headerPolite:
			cols.polite = i
		case headerTe:
			cols.te = i
		case headerNegative:
			cols.negative = i
		case headerPast:
			cols.past = i
		}
	}
	return cols
}

func (c columnIndex) itemFromRecord(record []string) (model.VocabItem, bool) {
	term := firstNonEmpty(record, c.term)
	english := field(record, c.english)
	if term == "" || english == "" {
		return model.VocabItem{}, false
	}
	return model.VocabItem{
		Kanji:        term,
		Reading:      field(record, c.reading),
		English:      english,
		PartOfSpeech: field(record, c.pos),
		Conjugations: model.Conjugations{
			Polite:   field(record, c.polite),
			Te:       field(record, c.te),
			Negative: field(record, c.negative),
			Past:     field(record, c.past),
		},
		Notes: firstNonEmpty(record, c.notes),
	}, true
}

func firstNonEmpty(record []string, indices []int) string {
	for _, i := range indices {
		if v := field(record, i); v != "" {
			return v
		}
	}
	return ""
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
