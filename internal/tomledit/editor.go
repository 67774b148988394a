package tomledit

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-hclog"

	sharederrors "github.com/pylint-tools/pylint-ruff-sync/pkg/shared/errors"
	"github.com/pylint-tools/pylint-ruff-sync/pkg/shared/files"
)

// DefaultTablePath is the owned table inside pyproject.toml.
const DefaultTablePath = "tool.pylint.messages_control"

// banner precedes a newly created owned table.
const banner = "# Rules managed by pylint-ruff-sync. Entries are regenerated on every run."

// Rendered holds the textual form of the two owned arrays.
type Rendered struct {
	Disable string
	Enable  string
}

// Editor applies reconciliation results to the owned table of a TOML
// document. Everything outside the two owned arrays (and the table header,
// when newly created) stays byte-identical.
type Editor struct {
	logger    hclog.Logger
	tablePath string
	formatter Formatter
}

// NewEditor creates an Editor for the given table path. A nil formatter
// skips the post-edit formatting pass.
func NewEditor(logger hclog.Logger, tablePath string, formatter Formatter) *Editor {
	if tablePath == "" {
		tablePath = DefaultTablePath
	}
	return &Editor{logger: logger, tablePath: tablePath, formatter: formatter}
}

// Render produces the textual form of the two arrays. Enable entries carry a
// trailing documentation comment derived from the rule; the disable list is
// rendered without comments.
func (e *Editor) Render(enable, disable []string, comment CommentFunc) Rendered {
	return Rendered{
		Disable: renderArray("disable", disable, nil),
		Enable:  renderArray("enable", enable, comment),
	}
}

// Locate returns the byte span of the owned table, or ok=false when the
// document does not contain it yet.
func (e *Editor) Locate(doc string) (Span, bool) {
	return locateTable(doc, e.tablePath)
}

// Apply rewrites the owned arrays inside doc and returns the new document.
// The original document is never touched on error. The result is checked to
// still parse as TOML before being returned.
func (e *Editor) Apply(doc string, rendered Rendered) (string, error) {
	table, found := e.Locate(doc)

	var out string
	var err error
	if found {
		out, err = e.applyInTable(doc, table, rendered)
	} else {
		out = e.appendTable(doc, rendered)
	}
	if err != nil {
		return "", err
	}

	var parsed map[string]interface{}
	if _, err := toml.Decode(out, &parsed); err != nil {
		return "", sharederrors.NewStructureError(e.tablePath, "", fmt.Sprintf("edited document is not valid TOML: %v", err))
	}
	return out, nil
}

// applyInTable replaces the two array assignments inside an existing table.
// Each key is located independently; a missing disable key is inserted
// directly before the enable assignment so the section keeps its disable
// before enable ordering without moving unrelated lines.
func (e *Editor) applyInTable(doc string, table Span, rendered Rendered) (string, error) {
	disableSpan, hasDisable, err := locateKey(doc, table, e.tablePath, "disable")
	if err != nil {
		return "", err
	}
	enableSpan, hasEnable, err := locateKey(doc, table, e.tablePath, "enable")
	if err != nil {
		return "", err
	}

	switch {
	case hasDisable:
		doc = doc[:disableSpan.Start] + rendered.Disable + doc[disableSpan.End:]
	case hasEnable:
		insertAt := lineStart(doc, enableSpan.Start)
		doc = doc[:insertAt] + rendered.Disable + "\n" + doc[insertAt:]
	default:
		doc = insertAtTableEnd(doc, table, rendered.Disable)
	}

	// Offsets moved; relocate before touching the enable key.
	table, _ = e.Locate(doc)
	enableSpan, hasEnable, err = locateKey(doc, table, e.tablePath, "enable")
	if err != nil {
		return "", err
	}
	if hasEnable {
		doc = doc[:enableSpan.Start] + rendered.Enable + doc[enableSpan.End:]
	} else {
		doc = insertAtTableEnd(doc, table, rendered.Enable)
	}
	return doc, nil
}

// insertAtTableEnd appends an assignment after the last non-blank line of
// the table, leaving trailing blank lines (the gap before the next table)
// where they were.
func insertAtTableEnd(doc string, table Span, assignment string) string {
	region := doc[table.Start:table.End]
	trimmed := strings.TrimRight(region, " \t\n")
	insertAt := table.Start + len(trimmed)
	return doc[:insertAt] + "\n" + assignment + doc[insertAt:]
}

// appendTable adds the owned table at the end of the document: comment
// banner, then disable, then enable, separated from prior content by exactly
// one blank line.
func (e *Editor) appendTable(doc string, rendered Rendered) string {
	var b strings.Builder
	b.WriteString(doc)

	if doc != "" {
		b.WriteString(strings.Repeat("\n", missingNewlines(doc)))
		b.WriteByte('\n') // the single separating blank line
	}

	b.WriteString(banner)
	b.WriteByte('\n')
	fmt.Fprintf(&b, "[%s]\n", e.tablePath)
	b.WriteString(rendered.Disable)
	b.WriteByte('\n')
	b.WriteString(rendered.Enable)
	b.WriteByte('\n')
	return b.String()
}

func missingNewlines(doc string) int {
	if strings.HasSuffix(doc, "\n") {
		return 0
	}
	return 1
}

// UpdateResult reports what Update did.
type UpdateResult struct {
	// Changed is false when the document already matches the target content.
	Changed bool
	// Diff is the textual diff between old and new content. Filled in
	// dry-run mode and on real writes alike; both modes compute the
	// identical target content.
	Diff string
}

// Update loads the document at path, applies the rendered arrays, and either
// writes the result back (normal mode) or only reports the diff (dry-run).
// The post-edit formatter pass is best-effort: its failure is logged, not
// returned.
func (e *Editor) Update(ctx context.Context, path string, rendered Rendered, dryRun bool) (*UpdateResult, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}
	doc := string(raw)

	newDoc, err := e.Apply(doc, rendered)
	if err != nil {
		return nil, err
	}

	if newDoc == doc {
		e.logger.Info("configuration already up to date", "path", path)
		return &UpdateResult{Changed: false}, nil
	}

	diff := unifiedDiff(doc, newDoc)

	if dryRun {
		e.logger.Info("dry run: not writing configuration", "path", path)
		return &UpdateResult{Changed: true, Diff: diff}, nil
	}

	if err := files.WriteFileAtomic(path, []byte(newDoc), 0o644); err != nil {
		return nil, err
	}
	e.logger.Info("configuration updated", "path", path)

	if e.formatter != nil {
		if err := e.formatter.Format(ctx, path); err != nil {
			e.logger.Warn("post-edit formatter pass failed", "path", path, "error", err)
		}
	}

	return &UpdateResult{Changed: true, Diff: diff}, nil
}

// ReadArrays extracts the current disable/enable arrays from the document so
// the engine can treat them as the previously-configured state. An absent
// table or key yields empty lists.
func (e *Editor) ReadArrays(doc string) (disable, enable []string, err error) {
	var parsed map[string]interface{}
	if _, err := toml.Decode(doc, &parsed); err != nil {
		return nil, nil, fmt.Errorf("failed to parse config document: %w", err)
	}

	node := interface{}(parsed)
	for _, part := range strings.Split(e.tablePath, ".") {
		table, ok := node.(map[string]interface{})
		if !ok {
			return nil, nil, nil
		}
		node, ok = table[part]
		if !ok {
			return nil, nil, nil
		}
	}

	table, ok := node.(map[string]interface{})
	if !ok {
		return nil, nil, nil
	}
	return stringList(table["disable"]), stringList(table["enable"]), nil
}

func stringList(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}
	var out []string
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
