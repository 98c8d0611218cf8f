package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/learnwords/pkg/models"
)

const fieldSeparator = "|"

// ParseCatalog reads the line format original|translation|count.
// The count is optional and falls back to 0 when absent or not a number.
// Blank lines are skipped. A line without a translation or a repeated
// original fails the whole catalog with *MalformedCatalogError.
func ParseCatalog(r io.Reader) ([]models.Word, error) {
	var words []models.Word
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, fieldSeparator)
		if len(fields) < 2 {
			return nil, &MalformedCatalogError{Line: lineNum, Reason: "missing translation"}
		}

		original := fields[0]
		if original == "" {
			return nil, &MalformedCatalogError{Line: lineNum, Reason: "empty word"}
		}
		if seen[original] {
			return nil, &MalformedCatalogError{Line: lineNum, Reason: fmt.Sprintf("duplicate word %q", original)}
		}
		seen[original] = true

		word := models.Word{Original: original, Translation: fields[1]}
		if len(fields) > 2 {
			if count, err := strconv.Atoi(strings.TrimSpace(fields[2])); err == nil && count > 0 {
				word.CorrectAnswersCount = count
			}
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	return words, nil
}

// WriteCatalog writes the words in the format read by ParseCatalog
func WriteCatalog(w io.Writer, words []models.Word) error {
	bw := bufio.NewWriter(w)
	for i, word := range words {
		if i > 0 {
			if err := bw.WriteByte('\n'); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(bw, "%s%s%s%s%d", word.Original, fieldSeparator, word.Translation, fieldSeparator, word.CorrectAnswersCount)
		if err != nil {
			return err
		}
	}
	return bw.Flush()
}
