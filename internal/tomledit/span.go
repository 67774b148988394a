// Package tomledit performs surgical edits on a TOML document: it owns
// exactly two array-valued keys inside one table and preserves every byte it
// does not own. Span location is anchored pattern matching; replacement is
// byte-range substitution; nothing else in the document is reformatted.
package tomledit

import (
	"fmt"
	"regexp"
	"strings"

	sharederrors "github.com/pylint-tools/pylint-ruff-sync/pkg/shared/errors"
)

// Span is a half-open byte range [Start, End) in the document.
type Span struct {
	Start int
	End   int
}

// buildHeaderPattern matches the table header for a dot-separated path,
// tolerating optionally quoted parts: both [tool.pylint.messages_control]
// and [tool.pylint."messages_control"] anchor the same table.
func buildHeaderPattern(tablePath string) *regexp.Regexp {
	parts := strings.Split(tablePath, ".")
	quoted := make([]string, len(parts))
	for i, part := range parts {
		esc := regexp.QuoteMeta(part)
		quoted[i] = fmt.Sprintf(`(?:%s|"%s")`, esc, esc)
	}
	return regexp.MustCompile(`(?m)^\[[ \t]*` + strings.Join(quoted, `[ \t]*\.[ \t]*`) + `[ \t]*\][ \t]*(?:#[^\n]*)?$`)
}

var nextHeaderPattern = regexp.MustCompile(`(?m)^\[`)

// locateTable returns the span of the table: its header line through the
// byte before the next table header (or end of document).
func locateTable(doc, tablePath string) (Span, bool) {
	m := buildHeaderPattern(tablePath).FindStringIndex(doc)
	if m == nil {
		return Span{}, false
	}

	end := len(doc)
	if next := nextHeaderPattern.FindStringIndex(doc[m[1]:]); next != nil {
		end = m[1] + next[0]
	}
	return Span{Start: m[0], End: end}, true
}

// locateKey finds the assignment for key inside the table span. The returned
// span starts at the key name (leading indentation stays untouched) and ends
// after the closing bracket of the array value. Existing inline comments and
// multiline layouts inside the array are tolerated; anything that is not a
// simple array of strings is a StructureError.
func locateKey(doc string, table Span, tablePath, key string) (Span, bool, error) {
	keyPattern := regexp.MustCompile(`(?m)^[ \t]*(` + regexp.QuoteMeta(key) + `)[ \t]*=[ \t]*`)

	region := doc[table.Start:table.End]
	m := keyPattern.FindStringSubmatchIndex(region)
	if m == nil {
		return Span{}, false, nil
	}

	keyStart := table.Start + m[2] // start of the key name itself
	valueStart := table.Start + m[1]

	valueEnd, err := scanStringArray(doc, valueStart, tablePath, key)
	if err != nil {
		return Span{}, false, err
	}
	return Span{Start: keyStart, End: valueEnd}, true, nil
}

// scanStringArray consumes an array-of-strings value beginning at offset and
// returns the offset just past its closing bracket. The scanner tolerates
// comments and multiline layouts but rejects nested arrays, inline tables,
// and non-string elements: the editor must never guess and silently corrupt.
func scanStringArray(doc string, offset int, tablePath, key string) (int, error) {
	i := offset
	for i < len(doc) && (doc[i] == ' ' || doc[i] == '\t') {
		i++
	}
	if i >= len(doc) || doc[i] != '[' {
		return 0, sharederrors.NewStructureError(tablePath, key, "value is not an array")
	}
	i++

	for i < len(doc) {
		switch c := doc[i]; c {
		case ']':
			return i + 1, nil
		case '[':
			return 0, sharederrors.NewStructureError(tablePath, key, "array contains a nested array")
		case '{':
			return 0, sharederrors.NewStructureError(tablePath, key, "array contains an inline table")
		case '#':
			for i < len(doc) && doc[i] != '\n' {
				i++
			}
		case '"', '\'':
			end, err := scanString(doc, i)
			if err != nil {
				return 0, sharederrors.NewStructureError(tablePath, key, err.Error())
			}
			i = end
		case ' ', '\t', '\r', '\n', ',':
			i++
		default:
			return 0, sharederrors.NewStructureError(tablePath, key,
				fmt.Sprintf("array contains a non-string element starting with %q", c))
		}
	}
	return 0, sharederrors.NewStructureError(tablePath, key, "unterminated array")
}

// scanString consumes a basic or literal TOML string starting at offset and
// returns the offset just past its closing quote.
func scanString(doc string, offset int) (int, error) {
	quote := doc[offset]
	i := offset + 1
	for i < len(doc) {
		c := doc[i]
		if c == '\\' && quote == '"' {
			i += 2
			continue
		}
		if c == quote {
			return i + 1, nil
		}
		if c == '\n' {
			break
		}
		i++
	}
	return 0, fmt.Errorf("unterminated string in array")
}

// lineStart returns the offset of the first byte of the line containing pos.
func lineStart(doc string, pos int) int {
	start := strings.LastIndexByte(doc[:pos], '\n')
	return start + 1
}
