// Package cache persists the implementation-status snapshot as a JSON file.
// The file is read as a fallback when the live fetch fails and replaced
// atomically as a whole on update, never partially patched.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/adrg/xdg"
	"github.com/hashicorp/go-hclog"

	"github.com/pylint-tools/pylint-ruff-sync/pkg/shared/files"
)

// Entry records what is known about one rule.
type Entry struct {
	Name        string `json:"name,omitempty"`
	Implemented bool   `json:"implemented"`
	MypyOverlap bool   `json:"mypy_overlap"`
	DocsURL     string `json:"docs_url,omitempty"`
}

// Snapshot is the whole cache file content.
type Snapshot struct {
	Rules       map[string]Entry `json:"rules"`
	SourceURL   string           `json:"source_url"`
	LastUpdated time.Time        `json:"last_updated"`
}

// ImplementedCodes returns the sorted rule codes marked implemented.
func (s *Snapshot) ImplementedCodes() []string {
	var codes []string
	for code, entry := range s.Rules {
		if entry.Implemented {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	return codes
}

// DefaultPath returns the cache file location under the user's XDG cache
// directory.
func DefaultPath() (string, error) {
	path, err := xdg.CacheFile("pylint-ruff-sync/ruff_implemented_rules.json")
	if err != nil {
		return "", fmt.Errorf("failed to resolve cache path: %w", err)
	}
	return path, nil
}

// Manager reads and replaces the cache file.
type Manager struct {
	logger hclog.Logger
	path   string
}

// NewManager creates a Manager for the given cache path.
func NewManager(logger hclog.Logger, path string) *Manager {
	return &Manager{logger: logger, path: path}
}

// Path returns the cache file path.
func (m *Manager) Path() string {
	return m.path
}

// Exists reports whether the cache file is present.
func (m *Manager) Exists() bool {
	info, err := os.Stat(m.path)
	return err == nil && !info.IsDir()
}

// Load reads and parses the cache file.
func (m *Manager) Load() (*Snapshot, error) {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache file %q: %w", m.path, err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to parse cache file %q: %w", m.path, err)
	}
	if snapshot.Rules == nil {
		return nil, fmt.Errorf("cache file %q has no rules section", m.path)
	}

	m.logger.Debug("loaded cache", "path", m.path, "rules", len(snapshot.Rules))
	return &snapshot, nil
}

// Save replaces the cache file wholesale.
func (m *Manager) Save(snapshot *Snapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode cache: %w", err)
	}
	data = append(data, '\n')

	if err := files.WriteFileAtomic(m.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to save cache: %w", err)
	}

	m.logger.Info("saved cache", "path", m.path, "rules", len(snapshot.Rules))
	return nil
}
