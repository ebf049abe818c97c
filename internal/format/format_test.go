package format

import (
	"errors"
	"strings"
	"testing"

	"github.com/studiowebux/usercrud/internal/types"
)

var sample = []types.UserRecord{
	{ID: 1, FirstName: "Emily", LastName: "Johnson", Age: "28", City: "Phoenix"},
	{ID: 2, FirstName: "Zoë", LastName: "Müller", Age: "31", City: "東京"},
}

func TestTable(t *testing.T) {
	out := Table(sample)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	if len(lines) != 5 {
		t.Fatalf("Expected header, separator, 2 rows and a count, got %d lines:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "S.No | Name") {
		t.Errorf("Unexpected header: %q", lines[0])
	}
	if lines[2] != "1    | Emily Johnson | 28  | Phoenix" {
		t.Errorf("Unexpected row: %q", lines[2])
	}
	if lines[4] != "2 record(s)" {
		t.Errorf("Unexpected count line: %q", lines[4])
	}
}

func TestTable_Empty(t *testing.T) {
	out := Table(nil)
	if !strings.Contains(out, "0 record(s)") {
		t.Errorf("Expected zero count, got:\n%s", out)
	}
}

func TestCell(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"pads", "ab", 4, "ab  "},
		{"exact", "abcd", 4, "abcd"},
		{"truncates", "abcdef", 4, "abc…"},
		{"wide runes", "東京", 6, "東京  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Cell(tt.in, tt.width); got != tt.want {
				t.Errorf("Cell(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
		})
	}
}

func TestRecords_Formats(t *testing.T) {
	jsonOut, err := Records(sample[:1], JSON, false)
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	if !strings.Contains(jsonOut, `"firstName": "Emily"`) {
		t.Errorf("Unexpected JSON:\n%s", jsonOut)
	}

	empty, err := Records(nil, JSON, false)
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	if strings.TrimSpace(empty) != "[]" {
		t.Errorf("Expected empty array, got %q", empty)
	}

	yamlOut, err := Records(sample[:1], YAML, false)
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if !strings.Contains(yamlOut, "city: Phoenix") {
		t.Errorf("Unexpected YAML:\n%s", yamlOut)
	}

	if _, err := Records(sample, "xml", false); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Expected ErrUnknownFormat, got %v", err)
	}
}

func TestHighlightJSON(t *testing.T) {
	out, err := Records(sample[:1], JSON, true)
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	if !strings.Contains(out, "\x1b[") {
		t.Error("Expected ANSI escapes in highlighted output")
	}
	if !strings.Contains(out, "Emily") {
		t.Error("Highlighted output lost content")
	}
}
