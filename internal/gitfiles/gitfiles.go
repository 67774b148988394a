// Package gitfiles enumerates tracked files in the repository that contains
// the configuration document. The cleaner only ever touches tracked sources.
package gitfiles

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
)

// TrackedPython lists the git-tracked *.py files of the repository at or
// above root, as paths relative to root. It reads the index, so staged but
// uncommitted files count as tracked, matching `git ls-files`.
func TrackedPython(root string) ([]string, error) {
	repo, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository at %q: %w", root, err)
	}

	idx, err := repo.Storer.Index()
	if err != nil {
		return nil, fmt.Errorf("failed to read git index: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve worktree: %w", err)
	}
	repoRoot := worktree.Filesystem.Root()

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	var tracked []string
	for _, entry := range idx.Entries {
		if !strings.HasSuffix(entry.Name, ".py") {
			continue
		}
		abs := filepath.Join(repoRoot, filepath.FromSlash(entry.Name))
		rel, err := filepath.Rel(absRoot, abs)
		if err != nil || strings.HasPrefix(rel, "..") {
			// Tracked file outside the requested root; out of scope.
			continue
		}
		tracked = append(tracked, rel)
	}
	return tracked, nil
}
