package syncer

import (
	"context"
	"sort"
	"time"
)

// CacheUpdateResult describes how a cache refresh changed the stored set of
// implemented rule codes.
type CacheUpdateResult struct {
	Path        string
	Total       int
	Implemented int
	Added       []string
	Removed     []string
	FetchedAt   time.Time
}

// UpdateCache fetches a fresh status snapshot and replaces the cache file
// wholesale. Unlike Run, a fetch failure here is fatal: refreshing from the
// cache itself would be a no-op.
func (s *Syncer) UpdateCache(ctx context.Context) (*CacheUpdateResult, error) {
	catalog, err := s.lister.List(ctx)
	if err != nil {
		return nil, err
	}

	result, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	var previous map[string]struct{}
	if snapshot, loadErr := s.cacheMgr.Load(); loadErr == nil {
		previous = make(map[string]struct{}, len(snapshot.Rules))
		for _, code := range snapshot.ImplementedCodes() {
			previous[code] = struct{}{}
		}
	} else if s.cacheMgr.Exists() {
		s.logger.Warn("existing cache is unreadable, replacing it", "error", loadErr)
	}

	snapshot := buildSnapshot(result, catalog)
	if err := s.cacheMgr.Save(snapshot); err != nil {
		return nil, err
	}

	fresh := make(map[string]struct{})
	update := &CacheUpdateResult{
		Path:      s.cacheMgr.Path(),
		Total:     len(snapshot.Rules),
		FetchedAt: result.FetchedAt,
	}
	for _, code := range snapshot.ImplementedCodes() {
		fresh[code] = struct{}{}
		update.Implemented++
		if _, ok := previous[code]; !ok && previous != nil {
			update.Added = append(update.Added, code)
		}
	}
	for code := range previous {
		if _, ok := fresh[code]; !ok {
			update.Removed = append(update.Removed, code)
		}
	}
	sort.Strings(update.Added)
	sort.Strings(update.Removed)

	return update, nil
}
