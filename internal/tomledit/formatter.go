package tomledit

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Formatter is the external formatting collaborator invoked after an edit.
// It rewrites the file according to its own ordering rules; the editor only
// guarantees its edits are syntactically valid input to it.
type Formatter interface {
	Format(ctx context.Context, path string) error
}

// TomlSortFormatter runs the toml-sort CLI on the document.
type TomlSortFormatter struct {
	binary string
}

// NewTomlSortFormatter creates the formatter. An empty binary defaults to
// "toml-sort" on PATH.
func NewTomlSortFormatter(binary string) *TomlSortFormatter {
	if binary == "" {
		binary = "toml-sort"
	}
	return &TomlSortFormatter{binary: binary}
}

// Format sorts the file in place.
func (f *TomlSortFormatter) Format(ctx context.Context, path string) error {
	cmd := exec.CommandContext(ctx, f.binary, "--in-place", path)
	var stderr strings.Builder
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s failed: %w: %s", f.binary, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}
