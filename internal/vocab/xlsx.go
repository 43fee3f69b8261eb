package vocab

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/kotobadev/kotoba/internal/model"
)

// ImportConfig defines the XLSX import configuration.
type ImportConfig struct {
	FilePath   string // path to the XLSX file
	SheetName  string // sheet to import, first sheet when empty
	SkipHeader bool   // skip the first row
}

// DefaultImportConfig returns the default import configuration.
func DefaultImportConfig(path string) ImportConfig {
	return ImportConfig{
		FilePath:   path,
		SkipHeader: true,
	}
}

// ImportResult holds the result of an import operation.
type ImportResult struct {
	TotalProcessed int
	Imported       int
	Skipped        int
	Errors         []string
}

// Column order expected in an import sheet, matching the CSV layout:
// term, reading, translation, part of speech, four conjugations, notes.
const importColumns = 9

// ImportXLSX reads vocabulary rows from an XLSX sheet and writes them as a
// vocabulary CSV at outPath. Rows missing a term or translation are skipped
// and reported, not fatal.
func ImportXLSX(cfg ImportConfig, outPath string) (*ImportResult, error) {
	f, err := excelize.OpenFile(cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close for read-only workbook.
			_ = cerr
		}
	}()

	sheet := cfg.SheetName
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	result := &ImportResult{}
	var items []model.VocabItem
	for i, row := range rows {
		if i == 0 && cfg.SkipHeader {
			continue
		}
		result.TotalProcessed++
		item, ok := itemFromRow(row)
		if !ok {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: missing term or translation", i+1))
			continue
		}
		items = append(items, item)
		result.Imported++
	}
	if len(items) == 0 {
		return result, ErrNoVocabRows
	}
	if err := writeCSV(outPath, items); err != nil {
		return result, err
	}
	return result, nil
}

func itemFromRow(row []string) (model.VocabItem, bool) {
	cell := func(i int) string {
		if i >= len(row) {
			return ""
		}
		return row[i]
	}
	item := model.VocabItem{
		Kanji:        cell(0),
		Reading:      cell(1),
		English:      cell(2),
		PartOfSpeech: cell(3),
		Conjugations: model.Conjugations{
			Polite:   cell(4),
			Te:       cell(5),
			Negative: cell(6),
			Past:     cell(7),
		},
		Notes: cell(8),
	}
	if item.Kanji == "" || item.English == "" {
		return model.VocabItem{}, false
	}
	return item, true
}

func writeCSV(path string, items []model.VocabItem) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create vocabulary dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "vocab-*.csv")
	if err != nil {
		return fmt.Errorf("failed to create temp vocabulary file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	writer := csv.NewWriter(tmpFile)
	header := []string{
		termHeaders[0], headerReading, headerEnglish, headerPOS,
		headerPolite, headerTe, headerNegative, headerPast, notesHeaders[0],
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write vocabulary header: %w", err)
	}
	for _, item := range items {
		record := []string{
			item.Kanji, item.Reading, item.English, item.PartOfSpeech,
			item.Conjugations.Polite, item.Conjugations.Te,
			item.Conjugations.Negative, item.Conjugations.Past, item.Notes,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write vocabulary row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush vocabulary file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close vocabulary file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write vocabulary file: %w", err)
	}
	return nil
}
