// Package cleaner removes suppression annotations that the updated
// configuration has made unnecessary. It rewrites only the flagged lines,
// preserves other tools' directives sharing the same comment, and skips
// lines it cannot parse instead of aborting the pass.
package cleaner

import (
	"fmt"
	"regexp"
	"strings"
)

// directivePattern matches the suppression directive payload inside one
// comment segment, e.g. "pylint: disable=eval-used,unused-variable".
var directivePattern = regexp.MustCompile(`^pylint:\s*disable\s*=\s*([A-Za-z0-9_-]+(?:\s*,\s*[A-Za-z0-9_-]+)*)\s*$`)

// skipFilePattern matches the file-level directive. Its scope cannot be
// proven unnecessary from line-level diagnostics, so it is never removed.
var skipFilePattern = regexp.MustCompile(`^pylint:\s*skip-file\b`)

// segmentKind classifies one tool segment of a trailing comment.
type segmentKind int

const (
	segmentOther segmentKind = iota
	segmentDisable
	segmentSkipFile
)

// segment is one tool marker plus its payload within a trailing comment.
type segment struct {
	kind segmentKind
	// text is the segment content without the leading '#', edge-trimmed.
	text string
	// tokens holds the suppression tokens for segmentDisable.
	tokens []string
}

// annotationSite is a parsed source line carrying suppression tokens.
type annotationSite struct {
	// code is everything before the trailing comment, byte-for-byte.
	code     string
	segments []segment
}

// parseSite splits a line into its code part and trailing comment segments.
// It returns ok=false for lines without a suppression directive in any
// recognized dialect.
func parseSite(line string) (*annotationSite, bool, error) {
	commentStart := findCommentStart(line)
	if commentStart < 0 {
		return nil, false, nil
	}

	site := &annotationSite{code: line[:commentStart]}

	hasDirective := false
	for _, part := range strings.Split(line[commentStart:], "#") {
		text := strings.TrimSpace(part)
		if text == "" {
			continue
		}
		seg := segment{kind: segmentOther, text: text}
		if m := directivePattern.FindStringSubmatch(text); m != nil {
			seg.kind = segmentDisable
			for _, token := range strings.Split(m[1], ",") {
				if token = strings.TrimSpace(token); token != "" {
					seg.tokens = append(seg.tokens, token)
				}
			}
			hasDirective = true
		} else if skipFilePattern.MatchString(text) {
			seg.kind = segmentSkipFile
			hasDirective = true
		}
		site.segments = append(site.segments, seg)
	}

	if !hasDirective {
		if strings.Contains(line[commentStart:], "pylint:") {
			return nil, false, fmt.Errorf("unrecognized suppression dialect: %q", strings.TrimSpace(line[commentStart:]))
		}
		return nil, false, nil
	}
	return site, true, nil
}

// render reassembles the line. Empty segments are gone along with their
// delimiter; a line whose comment lost all content keeps only its code part,
// and a line with no code and no comment renders empty.
func (s *annotationSite) render() string {
	var parts []string
	for _, seg := range s.segments {
		switch seg.kind {
		case segmentDisable:
			if len(seg.tokens) == 0 {
				continue
			}
			parts = append(parts, "pylint: disable="+strings.Join(seg.tokens, ","))
		default:
			parts = append(parts, seg.text)
		}
	}

	if len(parts) == 0 {
		return strings.TrimRight(s.code, " \t")
	}
	return s.code + "# " + strings.Join(parts, "  # ")
}

// findCommentStart returns the index of the first '#' outside string
// literals, or -1. Lines with unterminated strings report -1; the caller
// treats them as unparseable.
func findCommentStart(line string) int {
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote != 0:
			if c == '\\' && quote == '"' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '#':
			return i
		}
	}
	return -1
}
