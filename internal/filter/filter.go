package filter

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jmespath/go-jmespath"
	"github.com/sahilm/fuzzy"
	"golang.org/x/text/cases"

	"github.com/studiowebux/usercrud/internal/types"
)

// Apply applies a JMESPath expression to a JSON body and returns the
// selected value re-encoded as JSON. An empty expression returns the body.
func Apply(body []byte, expression string) ([]byte, error) {
	if expression == "" {
		return body, nil
	}

	// Parse the JSON
	var data interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	// Compile the JMESPath expression
	jp, err := jmespath.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid JMESPath expression '%s': %w", expression, err)
	}

	// Search/apply the expression
	result, err := jp.Search(data)
	if err != nil {
		return nil, fmt.Errorf("JMESPath search failed: %w", err)
	}

	// Handle null result
	if result == nil {
		return []byte("null"), nil
	}

	output, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return output, nil
}

// IsValidJMESPath checks if an expression is valid JMESPath syntax
func IsValidJMESPath(expression string) bool {
	_, err := jmespath.Compile(expression)
	return err == nil
}

// Fold returns the case-folded form of s.
// A Caser is stateful, so each call gets its own.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// MatchRecord reports whether text occurs, ignoring case, in the record's
// full name ("{first} {last}") or city. Empty text matches everything.
func MatchRecord(rec types.UserRecord, text string) bool {
	if text == "" {
		return true
	}
	needle := Fold(text)
	return strings.Contains(Fold(rec.FullName()), needle) ||
		strings.Contains(Fold(rec.City), needle)
}

// Records returns the positions in recs that match text, in original order
func Records(recs []types.UserRecord, text string) []int {
	positions := make([]int, 0, len(recs))
	for i, rec := range recs {
		if MatchRecord(rec, text) {
			positions = append(positions, i)
		}
	}
	return positions
}

// FuzzyRank returns the indices of candidates that fuzzy-match pattern,
// best match first. An empty pattern returns every index in order.
func FuzzyRank(candidates []string, pattern string) []int {
	if pattern == "" {
		all := make([]int, len(candidates))
		for i := range candidates {
			all[i] = i
		}
		return all
	}

	// Find returns matches sorted by score
	matches := fuzzy.Find(pattern, candidates)

	ranked := make([]int, len(matches))
	for i, match := range matches {
		ranked[i] = match.Index
	}
	return ranked
}
