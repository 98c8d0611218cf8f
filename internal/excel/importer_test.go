package excel

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/example/learnwords/internal/dictionary"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestColumnToIndex(t *testing.T) {
	tests := map[string]int{"A": 0, "b": 1, "Z": 25, "AA": 26, "AB": 27}
	for column, want := range tests {
		if got := columnToIndex(column); got != want {
			t.Errorf("columnToIndex(%q) = %d, want %d", column, got, want)
		}
	}
}

func TestReadWordsCatalog(t *testing.T) {
	path := writeFile(t, "words.txt", "hello|привет|0\ncat|кошка|2")

	words, err := ReadWords(DefaultImportConfig(path))
	if err != nil {
		t.Fatalf("ReadWords failed: %v", err)
	}
	if len(words) != 2 {
		t.Fatalf("expected 2 words, got %d", len(words))
	}
	if words[1].Original != "cat" || words[1].CorrectAnswersCount != 2 {
		t.Errorf("unexpected word %+v", words[1])
	}
}

func TestReadWordsCSV(t *testing.T) {
	path := writeFile(t, "words.csv", "word,translation\nhello,привет\n,\n dog , собака \n")

	words, err := ReadWords(DefaultImportConfig(path))
	if err != nil {
		t.Fatalf("ReadWords failed: %v", err)
	}
	if len(words) != 2 {
		t.Fatalf("expected 2 words, got %d: %+v", len(words), words)
	}
	if words[1].Original != "dog" || words[1].Translation != "собака" {
		t.Errorf("cells are not trimmed: %+v", words[1])
	}
	for _, w := range words {
		if w.CorrectAnswersCount != 0 {
			t.Errorf("imported word %q starts with count %d", w.Original, w.CorrectAnswersCount)
		}
	}
}

func TestReadWordsCSVMissingTranslation(t *testing.T) {
	path := writeFile(t, "words.csv", "word,translation\nhello,привет\ncat\n")

	_, err := ReadWords(DefaultImportConfig(path))
	var malformed *dictionary.MalformedCatalogError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedCatalogError, got %v", err)
	}
	if malformed.Line != 3 {
		t.Errorf("expected line 3, got %d", malformed.Line)
	}
}

func TestReadWordsCSVDuplicate(t *testing.T) {
	path := writeFile(t, "words.csv", "word,translation\ncat,кошка\ncat,кот\n")

	_, err := ReadWords(DefaultImportConfig(path))
	var malformed *dictionary.MalformedCatalogError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedCatalogError, got %v", err)
	}
}

func TestReadWordsExcel(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	rows := [][]string{
		{"Word", "Translation"},
		{"hello", "привет"},
		{"dog", "собака"},
		{"cat", "кошка"},
	}
	for i, row := range rows {
		for j, value := range row {
			cellName, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("bad coordinates: %v", err)
			}
			if err := f.SetCellValue("Sheet1", cellName, value); err != nil {
				t.Fatalf("failed to set cell: %v", err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "words.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save workbook: %v", err)
	}

	words, err := ReadWords(DefaultImportConfig(path))
	if err != nil {
		t.Fatalf("ReadWords failed: %v", err)
	}
	if len(words) != 3 {
		t.Fatalf("expected 3 words, got %d", len(words))
	}
	if words[0].Original != "hello" || words[2].Translation != "кошка" {
		t.Errorf("unexpected words %+v", words)
	}
}

func TestReadWordsMissingFile(t *testing.T) {
	_, err := ReadWords(DefaultImportConfig(filepath.Join(t.TempDir(), "absent.txt")))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected a not-exist error, got %v", err)
	}
}
