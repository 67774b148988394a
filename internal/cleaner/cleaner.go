package cleaner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/pylint-tools/pylint-ruff-sync/internal/pylint"
	"github.com/pylint-tools/pylint-ruff-sync/internal/rules"
	"github.com/pylint-tools/pylint-ruff-sync/pkg/shared/files"
)

// Cleaner removes suppression tokens flagged unnecessary by the diagnostic
// pass. One file is one unit of work: its edit fully succeeds or the file is
// left untouched, and a failure there never blocks the other files.
type Cleaner struct {
	logger  hclog.Logger
	catalog *rules.Catalog
	dryRun  bool
}

// New creates a Cleaner. The catalog maps between rule codes and names so a
// diagnostic naming "eval-used" also clears a "W0123" token.
func New(logger hclog.Logger, catalog *rules.Catalog, dryRun bool) *Cleaner {
	return &Cleaner{logger: logger, catalog: catalog, dryRun: dryRun}
}

// Clean applies the flagged diagnostics to the source tree rooted at root.
// It returns the number of modified lines per file (relative paths).
func (c *Cleaner) Clean(root string, diags []pylint.Diagnostic) map[string]int {
	grouped := pylint.GroupByFile(diags)
	if len(grouped) == 0 {
		c.logger.Info("no unnecessary suppressions found")
		return nil
	}

	modifications := make(map[string]int)
	for _, file := range sortedKeys(grouped) {
		modified, err := c.cleanFile(root, file, grouped[file])
		if err != nil {
			c.logger.Warn("skipping file after cleanup failure", "file", file, "error", err)
			continue
		}
		if modified > 0 {
			modifications[file] = modified
		}
	}

	total := 0
	for _, n := range modifications {
		total += n
	}
	if c.dryRun {
		c.logger.Info("dry run: would clean suppressions", "lines", total, "files", len(modifications))
	} else {
		c.logger.Info("cleaned suppressions", "lines", total, "files", len(modifications))
	}
	return modifications
}

// cleanFile rewrites the flagged lines of a single file.
func (c *Cleaner) cleanFile(root, file string, flaggedByLine map[int][]string) (int, error) {
	path := filepath.Join(root, file)
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read %q: %w", path, err)
	}

	content := string(raw)
	trailingNewline := strings.HasSuffix(content, "\n")
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")

	modified := 0
	var out []string
	for i, line := range lines {
		flagged, isFlagged := flaggedByLine[i+1]
		if !isFlagged {
			out = append(out, line)
			continue
		}

		newLine, changed, err := c.rewriteLine(line, flagged)
		if err != nil {
			// One malformed line never aborts the pass.
			c.logger.Warn("cannot parse suppression line, leaving it unchanged",
				"file", file, "line", i+1, "error", err)
			out = append(out, line)
			continue
		}
		if !changed {
			out = append(out, line)
			continue
		}

		modified++
		if c.dryRun {
			shown := newLine
			if shown == "" {
				shown = "[line removed]"
			}
			c.logger.Info("would rewrite suppression",
				"file", file, "line", i+1, "old", strings.TrimSpace(line), "new", strings.TrimSpace(shown))
		}
		if newLine == "" && strings.TrimSpace(line[:commentStartOrLen(line)]) == "" {
			// The line was only the now-empty comment; drop it.
			continue
		}
		out = append(out, newLine)
	}

	if modified == 0 || c.dryRun {
		return modified, nil
	}

	newContent := strings.Join(out, "\n")
	if trailingNewline {
		newContent += "\n"
	}
	if err := files.WriteFileAtomic(path, []byte(newContent), 0o644); err != nil {
		return 0, err
	}
	c.logger.Debug("cleaned file", "file", file, "lines", modified)
	return modified, nil
}

// rewriteLine removes the flagged tokens from the line's suppression
// directive. It removes only tokens present in the flagged set and never
// touches other tools' segments or file-level directives.
func (c *Cleaner) rewriteLine(line string, flagged []string) (string, bool, error) {
	site, ok, err := parseSite(line)
	if err != nil {
		return "", false, err
	}
	if !ok {
		return line, false, nil
	}

	changed := false
	for i := range site.segments {
		seg := &site.segments[i]
		if seg.kind != segmentDisable {
			continue
		}
		var remaining []string
		for _, token := range seg.tokens {
			if c.tokenFlagged(token, flagged) {
				changed = true
				continue
			}
			remaining = append(remaining, token)
		}
		seg.tokens = remaining
	}

	if !changed {
		return line, false, nil
	}
	return site.render(), true, nil
}

// tokenFlagged reports whether a suppression token refers to one of the
// flagged rules. Tokens and flagged identifiers match by code or by name;
// both forms refer to the same rule.
func (c *Cleaner) tokenFlagged(token string, flagged []string) bool {
	tokenCode, _ := c.catalog.Canonical(token)
	for _, f := range flagged {
		if token == f {
			return true
		}
		if code, known := c.catalog.Canonical(f); known && code == tokenCode {
			return true
		}
	}
	return false
}

func commentStartOrLen(line string) int {
	if i := findCommentStart(line); i >= 0 {
		return i
	}
	return len(line)
}

func sortedKeys(m map[string]map[int][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
