package pylint

import (
	"bufio"
	"context"
	"io"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// Diagnostic is one "unnecessary suppression" finding: a rule suppressed on
// a line where the current configuration no longer raises it.
type Diagnostic struct {
	File string
	Line int
	// Rule is the rule name as reported by pylint, e.g. "eval-used".
	Rule string
}

// uselessPattern matches parseable-format output lines such as
// `src/app.py:42: [I0021(useless-suppression), ] Useless suppression of 'eval-used'`.
var uselessPattern = regexp.MustCompile(`^(.+?):(\d+): \[[^\]]*\] Useless suppression of '([^']+)'`)

// DiagnosticsRunner runs pylint over the tracked source files with the
// just-updated configuration and collects useless-suppression findings.
type DiagnosticsRunner struct {
	logger hclog.Logger
	binary string
}

// NewDiagnosticsRunner creates a DiagnosticsRunner. An empty binary defaults
// to "pylint" on PATH.
func NewDiagnosticsRunner(logger hclog.Logger, binary string) *DiagnosticsRunner {
	if binary == "" {
		binary = "pylint"
	}
	return &DiagnosticsRunner{logger: logger, binary: binary}
}

// Run invokes pylint with the given config file over files (paths relative
// to workDir) and parses the useless-suppression findings. A non-zero exit
// status is expected whenever pylint emits any message, so it is not treated
// as a failure; only a failure to start the process is.
func (d *DiagnosticsRunner) Run(ctx context.Context, configFile, workDir string, files []string) ([]Diagnostic, error) {
	if len(files) == 0 {
		d.logger.Debug("no source files to check for useless suppressions")
		return nil, nil
	}

	args := []string{"--output-format=parseable", "--rcfile", configFile}
	args = append(args, files...)

	d.logger.Info("running useless-suppression diagnostic pass", "files", len(files))

	cmd := exec.CommandContext(ctx, d.binary, args...)
	cmd.Dir = workDir
	var stderr strings.Builder
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}

	diags, parseErr := ParseDiagnostics(stdout)

	if err := cmd.Wait(); err != nil {
		// Pylint exits non-zero when it reports messages; the findings we
		// parsed are still valid. A real launch failure was caught above.
		d.logger.Debug("pylint exited non-zero during diagnostic pass", "error", err)
	}
	if parseErr != nil {
		return nil, parseErr
	}

	d.logger.Info("useless suppressions found", "count", len(diags))
	return diags, nil
}

// ParseDiagnostics extracts useless-suppression records from the parseable
// pylint output stream. Unrelated messages are ignored.
func ParseDiagnostics(r io.Reader) ([]Diagnostic, error) {
	var diags []Diagnostic

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		m := uselessPattern.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		line, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		diags = append(diags, Diagnostic{File: m[1], Line: line, Rule: m[3]})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return diags, nil
}

// GroupByFile groups diagnostics into per-file line→rules maps, which is the
// shape the cleaner consumes.
func GroupByFile(diags []Diagnostic) map[string]map[int][]string {
	grouped := make(map[string]map[int][]string)
	for _, d := range diags {
		byLine, ok := grouped[d.File]
		if !ok {
			byLine = make(map[int][]string)
			grouped[d.File] = byLine
		}
		byLine[d.Line] = append(byLine[d.Line], d.Rule)
	}
	return grouped
}
