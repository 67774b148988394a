// Package syncer wires the collaborators and core components into the run
// sequence: collect rule data, reconcile, edit the configuration document,
// then clean inline suppressions against the updated configuration.
package syncer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/hashicorp/go-hclog"

	"github.com/pylint-tools/pylint-ruff-sync/internal/cache"
	"github.com/pylint-tools/pylint-ruff-sync/internal/cleaner"
	"github.com/pylint-tools/pylint-ruff-sync/internal/mypy"
	"github.com/pylint-tools/pylint-ruff-sync/internal/pylint"
	"github.com/pylint-tools/pylint-ruff-sync/internal/reconcile"
	"github.com/pylint-tools/pylint-ruff-sync/internal/ruff"
	"github.com/pylint-tools/pylint-ruff-sync/internal/rules"
	"github.com/pylint-tools/pylint-ruff-sync/internal/tomledit"
	sharederrors "github.com/pylint-tools/pylint-ruff-sync/pkg/shared/errors"
)

// RuleLister obtains the full rule catalog. Failure is fatal to the run.
type RuleLister interface {
	List(ctx context.Context) (*rules.Catalog, error)
}

// StatusFetcher obtains the live implementation-status data.
type StatusFetcher interface {
	Fetch(ctx context.Context) (*ruff.FetchResult, error)
}

// Diagnoser runs the useless-suppression pass with the current config.
type Diagnoser interface {
	Run(ctx context.Context, configFile, workDir string, files []string) ([]pylint.Diagnostic, error)
}

// FileLister enumerates the tracked source files under root.
type FileLister func(root string) ([]string, error)

// Options carries the per-run settings from the CLI.
type Options struct {
	// ConfigFile is the path of the document to edit.
	ConfigFile string
	// DryRun computes and reports everything without writing.
	DryRun bool
	// FilterOverlap applies the mypy overlap set when true.
	FilterOverlap bool
	// RunCleaner toggles the annotation cleanup pass.
	RunCleaner bool
	// CustomEnable and CustomDisable are user overrides, by code or name.
	CustomEnable  []string
	CustomDisable []string
}

// Report summarizes a completed run.
type Report struct {
	CatalogSize      int
	ImplementedCount int
	// OverlapCount is the number of catalog rules excluded by the overlap
	// filter; zero when filtering is off.
	OverlapCount   int
	Provenance     rules.Provenance
	EnableCount    int
	DisableCount   int
	UnknownEnable  []string
	UnknownDisable []string
	ConfigChanged  bool
	ConfigDiff     string
	// CleanedLines maps files (relative to the project root) to the number
	// of suppression lines rewritten or removed.
	CleanedLines map[string]int
}

// Syncer runs the full pipeline once.
type Syncer struct {
	logger    hclog.Logger
	lister    RuleLister
	fetcher   StatusFetcher
	diagnoser Diagnoser
	listFiles FileLister
	cacheMgr  *cache.Manager
	editor    *tomledit.Editor
	opts      Options
}

// New assembles a Syncer from its collaborators.
func New(logger hclog.Logger, lister RuleLister, fetcher StatusFetcher, diagnoser Diagnoser,
	listFiles FileLister, cacheMgr *cache.Manager, editor *tomledit.Editor, opts Options) *Syncer {
	return &Syncer{
		logger:    logger,
		lister:    lister,
		fetcher:   fetcher,
		diagnoser: diagnoser,
		listFiles: listFiles,
		cacheMgr:  cacheMgr,
		editor:    editor,
		opts:      opts,
	}
}

// Run executes the pipeline: catalog, status, reconcile, edit, clean.
// The editor commits (or is finalized in dry-run) before the diagnostic
// collaborator is invoked, since the diagnostic depends on the new
// configuration.
func (s *Syncer) Run(ctx context.Context) (*Report, error) {
	catalog, err := s.lister.List(ctx)
	if err != nil {
		return nil, err
	}

	implemented, err := s.collectStatus(ctx, catalog)
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(s.opts.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("configuration file not found: %w", err)
	}
	priorDisable, _, err := s.editor.ReadArrays(string(raw))
	if err != nil {
		return nil, err
	}

	overlap := mypy.OverlapCodes()
	overlapCount := 0
	if s.opts.FilterOverlap {
		for _, r := range catalog.Rules() {
			if _, ok := overlap[r.Code]; ok {
				overlapCount++
			}
		}
	}

	result := reconcile.Reconcile(reconcile.Inputs{
		Catalog:       catalog,
		Implemented:   implemented,
		Overlap:       overlap,
		FilterOverlap: s.opts.FilterOverlap,
		CustomEnable:  s.opts.CustomEnable,
		CustomDisable: s.opts.CustomDisable,
		PriorDisable:  priorDisable,
	})

	for _, ident := range result.UnknownEnable {
		s.logger.Warn("unknown rule identifier in enable list, preserved verbatim", "identifier", ident)
	}
	for _, ident := range result.UnknownDisable {
		s.logger.Warn("unknown rule identifier in disable list, preserved verbatim", "identifier", ident)
	}

	rendered := s.editor.Render(result.Enable, result.Disable, func(item string) string {
		if r, ok := catalog.ByCode(item); ok {
			return r.DocsURL()
		}
		return ""
	})

	update, err := s.editor.Update(ctx, s.opts.ConfigFile, rendered, s.opts.DryRun)
	if err != nil {
		return nil, err
	}

	report := &Report{
		CatalogSize:      catalog.Len(),
		ImplementedCount: implemented.Len(),
		OverlapCount:     overlapCount,
		Provenance:       implemented.Provenance(),
		EnableCount:      len(result.Enable),
		DisableCount:     len(result.Disable),
		UnknownEnable:    result.UnknownEnable,
		UnknownDisable:   result.UnknownDisable,
		ConfigChanged:    update.Changed,
		ConfigDiff:       update.Diff,
	}

	if s.opts.RunCleaner {
		report.CleanedLines = s.runCleaner(ctx, catalog)
	} else {
		s.logger.Info("annotation cleaner disabled")
	}

	return report, nil
}

// collectStatus obtains the implementation-status set, preferring the live
// source and degrading to the cache. A successful live fetch refreshes the
// cache wholesale.
func (s *Syncer) collectStatus(ctx context.Context, catalog *rules.Catalog) (*rules.StatusSet, error) {
	result, fetchErr := s.fetcher.Fetch(ctx)
	if fetchErr == nil {
		if err := s.cacheMgr.Save(buildSnapshot(result, catalog)); err != nil {
			s.logger.Warn("failed to refresh cache after live fetch", "error", err)
		}
		return rules.NewStatusSet(result.ImplementedCodes(), rules.ProvenanceLive, result.FetchedAt), nil
	}

	s.logger.Warn("live status fetch failed, falling back to cache", "error", fetchErr)

	snapshot, cacheErr := s.cacheMgr.Load()
	if cacheErr != nil {
		return nil, sharederrors.NewNoDataError(fetchErr, cacheErr)
	}

	s.logger.Warn("using cached implementation status; result may enable rules conservatively",
		"path", s.cacheMgr.Path(), "rules", len(snapshot.Rules), "last_updated", snapshot.LastUpdated)
	return rules.NewStatusSet(snapshot.ImplementedCodes(), rules.ProvenanceCached, snapshot.LastUpdated), nil
}

// runCleaner executes the diagnostic pass and the per-file cleanup. Failures
// here degrade the run instead of failing it: the configuration edit has
// already committed.
func (s *Syncer) runCleaner(ctx context.Context, catalog *rules.Catalog) map[string]int {
	root := filepath.Dir(s.opts.ConfigFile)

	sources, err := s.listFiles(root)
	if err != nil {
		s.logger.Warn("skipping annotation cleanup: cannot list tracked files", "error", err)
		return nil
	}
	sort.Strings(sources)

	diags, err := s.diagnoser.Run(ctx, s.opts.ConfigFile, root, sources)
	if err != nil {
		s.logger.Warn("skipping annotation cleanup: diagnostic pass failed", "error", err)
		return nil
	}

	return cleaner.New(s.logger, catalog, s.opts.DryRun).Clean(root, diags)
}

// buildSnapshot converts a live fetch into the persisted cache shape,
// enriching entries with catalog names and documentation URLs.
func buildSnapshot(result *ruff.FetchResult, catalog *rules.Catalog) *cache.Snapshot {
	snapshot := &cache.Snapshot{
		Rules:       make(map[string]cache.Entry, len(result.Entries)),
		SourceURL:   ruff.TrackingIssueURL,
		LastUpdated: result.FetchedAt,
	}
	for _, entry := range result.Entries {
		cached := cache.Entry{
			Name:        entry.Name,
			Implemented: entry.Implemented,
			MypyOverlap: mypy.Overlaps(entry.Code),
		}
		if r, ok := catalog.ByCode(entry.Code); ok {
			if cached.Name == "" {
				cached.Name = r.Name
			}
			cached.DocsURL = r.DocsURL()
		}
		snapshot.Rules[entry.Code] = cached
	}
	return snapshot
}
