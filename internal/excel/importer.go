package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/example/learnwords/internal/dictionary"
	"github.com/example/learnwords/pkg/models"
)

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath          string // Path to the catalog, CSV or Excel file
	WordColumn        string // Column with the word
	TranslationColumn string // Column with the translation
	SheetName         string // Name of the sheet to import
	StartRow          int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig(path string) ImportConfig {
	return ImportConfig{
		FilePath:          path,
		WordColumn:        "A",
		TranslationColumn: "B",
		SheetName:         "Sheet1",
		StartRow:          2, // By default, start from the second row (skip header)
	}
}

// ReadWords loads catalog words from a pipe-separated, CSV or Excel file.
// Every format fails as a whole on an empty field or a repeated word.
func ReadWords(config ImportConfig) ([]models.Word, error) {
	switch strings.ToLower(filepath.Ext(config.FilePath)) {
	case ".xlsx", ".xlsm":
		return readFromExcel(config)
	case ".csv":
		return readFromCSV(config)
	default:
		return readFromCatalog(config)
	}
}

func readFromCatalog(config ImportConfig) ([]models.Word, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer file.Close()

	return dictionary.ParseCatalog(file)
}

// readFromExcel reads words from an Excel file
func readFromExcel(config ImportConfig) ([]models.Word, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := config.SheetName
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	b := newBuilder(config)
	for i, row := range rows {
		// Skip header rows
		if i < config.StartRow-1 {
			continue
		}
		if err := b.add(row, i+1); err != nil {
			return nil, err
		}
	}

	return b.words, nil
}

// readFromCSV reads words from a CSV file
func readFromCSV(config ImportConfig) ([]models.Word, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	b := newBuilder(config)
	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}

		rowNum++
		if rowNum < config.StartRow {
			continue
		}
		if err := b.add(row, rowNum); err != nil {
			return nil, err
		}
	}

	return b.words, nil
}

// builder collects spreadsheet rows into catalog words
type builder struct {
	wordIdx        int
	translationIdx int
	seen           map[string]bool
	words          []models.Word
}

func newBuilder(config ImportConfig) *builder {
	return &builder{
		wordIdx:        columnToIndex(config.WordColumn),
		translationIdx: columnToIndex(config.TranslationColumn),
		seen:           make(map[string]bool),
	}
}

func (b *builder) add(row []string, rowNum int) error {
	word := cell(row, b.wordIdx)
	translation := cell(row, b.translationIdx)

	// Fully empty rows separate blocks in hand-made sheets
	if word == "" && translation == "" {
		return nil
	}
	if word == "" {
		return &dictionary.MalformedCatalogError{Line: rowNum, Reason: "empty word"}
	}
	if translation == "" {
		return &dictionary.MalformedCatalogError{Line: rowNum, Reason: "missing translation"}
	}
	if b.seen[word] {
		return &dictionary.MalformedCatalogError{Line: rowNum, Reason: fmt.Sprintf("duplicate word %q", word)}
	}
	b.seen[word] = true

	b.words = append(b.words, models.Word{Original: word, Translation: translation})
	return nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// Helper function to convert Excel column letter to index
func columnToIndex(column string) int {
	column = strings.ToUpper(column)
	index := 0
	for i := 0; i < len(column); i++ {
		index = index*26 + int(column[i]-'A'+1)
	}
	return index - 1
}
