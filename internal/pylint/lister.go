// Package pylint wraps the two pylint process invocations the tool depends
// on: listing the full rule catalog and running the useless-suppression
// diagnostic pass. Both are modeled as narrow collaborators returning
// structured data so the engine and cleaner can be tested without pylint
// installed.
package pylint

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"regexp"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/pylint-tools/pylint-ruff-sync/internal/rules"
	sharederrors "github.com/pylint-tools/pylint-ruff-sync/pkg/shared/errors"
)

// ruleHeaderPattern matches catalog entries emitted by `pylint --list-msgs`,
// e.g. `:invalid-name (C0103): *%s name "%s" doesn't conform ...*`.
var ruleHeaderPattern = regexp.MustCompile(`^:([a-z][a-z0-9-]*)\s+\(([A-Z]\d+)\):\s*\*(.+)\*$`)

// Lister obtains the full rule catalog from the pylint executable.
type Lister struct {
	logger hclog.Logger
	binary string
}

// NewLister creates a Lister. An empty binary defaults to "pylint" on PATH.
func NewLister(logger hclog.Logger, binary string) *Lister {
	if binary == "" {
		binary = "pylint"
	}
	return &Lister{logger: logger, binary: binary}
}

// List runs `pylint --list-msgs` and parses the output into a catalog.
// Failure is fatal to the whole run: there is no meaningful default catalog.
func (l *Lister) List(ctx context.Context) (*rules.Catalog, error) {
	l.logger.Info("extracting pylint rules", "command", l.binary+" --list-msgs")

	cmd := exec.CommandContext(ctx, l.binary, "--list-msgs")
	var stderr strings.Builder
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, sharederrors.NewFatalInputError(l.binary, err)
	}
	if err := cmd.Start(); err != nil {
		return nil, sharederrors.NewFatalInputError(l.binary, err)
	}

	records, parseErr := ParseListOutput(stdout)

	if err := cmd.Wait(); err != nil {
		l.logger.Error("pylint --list-msgs failed", "error", err, "stderr", stderr.String())
		return nil, sharederrors.NewFatalInputError(l.binary, fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String())))
	}
	if parseErr != nil {
		return nil, sharederrors.NewFatalInputError(l.binary, parseErr)
	}

	catalog, err := rules.NewCatalog(records)
	if err != nil {
		return nil, sharederrors.NewFatalInputError(l.binary, err)
	}

	l.logger.Info("found pylint rules", "count", catalog.Len())
	return catalog, nil
}

// ParseListOutput parses the raw `pylint --list-msgs` stream into rule
// records. Lines that are not rule headers (continuation text, blanks) are
// skipped.
func ParseListOutput(r io.Reader) ([]rules.Rule, error) {
	var records []rules.Rule

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		m := ruleHeaderPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		records = append(records, rules.NewRule(m[2], m[1], m[3]))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rule listing: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no rule records found in listing output")
	}
	return records, nil
}
