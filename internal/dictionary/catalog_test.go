package dictionary

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/example/learnwords/pkg/models"
)

func TestParseCatalog(t *testing.T) {
	input := "cat|кот|2\ndog|пёс\n\nsun|солнце|abc\nsky|небо|-4\r\n"

	words, err := ParseCatalog(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseCatalog failed: %v", err)
	}

	want := []models.Word{
		{Original: "cat", Translation: "кот", CorrectAnswersCount: 2},
		{Original: "dog", Translation: "пёс"},
		{Original: "sun", Translation: "солнце"},
		{Original: "sky", Translation: "небо"},
	}
	if len(words) != len(want) {
		t.Fatalf("expected %d words, got %d", len(want), len(words))
	}
	for i := range want {
		if words[i] != want[i] {
			t.Errorf("word %d: got %+v want %+v", i, words[i], want[i])
		}
	}
}

func TestParseCatalogMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
	}{
		{"missing translation", "cat|кот\ndog\n", 2},
		{"empty word", "|кот\n", 1},
		{"duplicate word", "cat|кот\ndog|пёс\ncat|кошка\n", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog(strings.NewReader(tt.input))

			var malformed *MalformedCatalogError
			if !errors.As(err, &malformed) {
				t.Fatalf("expected MalformedCatalogError, got %v", err)
			}
			if malformed.Line != tt.line {
				t.Errorf("expected line %d, got %d", tt.line, malformed.Line)
			}
		})
	}
}

func TestWriteCatalogFormat(t *testing.T) {
	var buf bytes.Buffer
	words := []models.Word{
		{Original: "cat", Translation: "кот", CorrectAnswersCount: 1},
		{Original: "dog", Translation: "пёс"},
	}

	if err := WriteCatalog(&buf, words); err != nil {
		t.Fatalf("WriteCatalog failed: %v", err)
	}

	want := "cat|кот|1\ndog|пёс|0"
	if buf.String() != want {
		t.Errorf("got %q want %q", buf.String(), want)
	}
}
