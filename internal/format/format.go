// Package format renders user records for the terminal: aligned tables,
// JSON (optionally syntax highlighted) and YAML.
package format

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"

	"github.com/studiowebux/usercrud/internal/types"
)

// Output formats
const (
	Text = "text"
	JSON = "json"
	YAML = "yaml"
)

// ErrUnknownFormat is returned for formats other than text, json and yaml
var ErrUnknownFormat = errors.New("unknown output format")

// MaxColumnWidth truncates long cells in tables
const MaxColumnWidth = 32

// Columns are the table headers in display order
var Columns = []string{"S.No", "Name", "Age", "City"}

// Records formats records in the requested format. color enables syntax
// highlighting of JSON output.
func Records(recs []types.UserRecord, format string, color bool) (string, error) {
	if recs == nil {
		recs = []types.UserRecord{}
	}

	switch format {
	case JSON:
		return Marshal(recs, color)

	case YAML:
		data, err := yaml.Marshal(recs)
		if err != nil {
			return "", err
		}
		return string(data), nil

	case Text, "":
		return Table(recs), nil
	}

	return "", fmt.Errorf("%w: %s (use text, json or yaml)", ErrUnknownFormat, format)
}

// Row returns the cells of one table row; index is zero-based
func Row(index int, rec types.UserRecord) []string {
	return []string{strconv.Itoa(index + 1), rec.FullName(), rec.Age, rec.City}
}

// Table renders records as an aligned table with an S.No column
func Table(recs []types.UserRecord) string {
	rows := make([][]string, 0, len(recs)+1)
	rows = append(rows, Columns)
	for i, rec := range recs {
		rows = append(rows, Row(i, rec))
	}

	widths := ColumnWidths(rows)

	var sb strings.Builder
	for i, row := range rows {
		sb.WriteString(JoinCells(row, widths))
		sb.WriteString("\n")
		if i == 0 {
			sb.WriteString(separator(widths))
			sb.WriteString("\n")
		}
	}

	sb.WriteString(fmt.Sprintf("%d record(s)\n", len(recs)))
	return sb.String()
}

// ColumnWidths returns the display width of each column, capped at MaxColumnWidth
func ColumnWidths(rows [][]string) []int {
	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			w := runewidth.StringWidth(cell)
			if w > MaxColumnWidth {
				w = MaxColumnWidth
			}
			if w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// JoinCells pads each cell to its column width and joins them with " | "
func JoinCells(cells []string, widths []int) string {
	padded := make([]string, len(cells))
	for i, cell := range cells {
		padded[i] = Cell(cell, widths[i])
	}
	return strings.TrimRight(strings.Join(padded, " | "), " ")
}

// Cell truncates or pads s to exactly width terminal cells
func Cell(s string, width int) string {
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}

func separator(widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("-", w)
	}
	return strings.Join(parts, "-+-")
}

// Marshal encodes v as indented JSON, highlighted when color is set
func Marshal(v interface{}, color bool) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}

	out := string(data) + "\n"
	if !color {
		return out, nil
	}
	return HighlightJSON(out), nil
}

// HighlightJSON colours JSON for a 256-colour terminal. The source is
// returned unchanged if highlighting fails.
func HighlightJSON(src string) string {
	var sb strings.Builder
	if err := quick.Highlight(&sb, src, "json", "terminal256", "monokai"); err != nil {
		return src
	}
	return sb.String()
}
