// Package ruff obtains the implementation-status set: which pylint rules the
// faster tool already covers. The live source is the ruff pylint-parity
// tracking issue on GitHub; the on-disk cache is the fallback.
package ruff

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/go-github/v47/github"
	"github.com/hashicorp/go-hclog"
)

// Tracking issue for pylint rule parity in ruff.
const (
	TrackingOwner       = "astral-sh"
	TrackingRepo        = "ruff"
	TrackingIssueNumber = 970
	TrackingIssueURL    = "https://github.com/astral-sh/ruff/issues/970"
)

// taskItemPattern matches task-list entries in the tracking issue body, e.g.
// “- [x] `invalid-name` / `C0103` (PLC0103)”. The parenthesized ruff code is
// optional.
var taskItemPattern = regexp.MustCompile("- \\[([x ])\\] `([^`]*)`\\s*/\\s*`([A-Z]\\d+)`(?:\\s*\\(([^)]+)\\))?")

var ruleCodePattern = regexp.MustCompile(`^[A-Z]\d+$`)

// Entry is one rule tracked by the issue.
type Entry struct {
	// Code is the pylint rule code, e.g. "C0103".
	Code string
	// Name is the pylint rule name as listed in the issue.
	Name string
	// RuffRule is the corresponding ruff rule code, when assigned.
	RuffRule string
	// Implemented reports whether the task checkbox is ticked.
	Implemented bool
}

// FetchResult is the outcome of a live fetch.
type FetchResult struct {
	Entries   []Entry
	FetchedAt time.Time
}

// ImplementedCodes returns the codes of implemented entries.
func (r *FetchResult) ImplementedCodes() []string {
	var codes []string
	for _, e := range r.Entries {
		if e.Implemented {
			codes = append(codes, e.Code)
		}
	}
	return codes
}

// Extractor fetches the tracking issue through the GitHub API. The HTTP
// transport comes from the shared resty client so retry, timeout, and proxy
// configuration apply.
type Extractor struct {
	logger hclog.Logger
	client *github.Client
}

// NewExtractor creates an Extractor on top of the configured resty client.
func NewExtractor(logger hclog.Logger, restyClient *resty.Client) *Extractor {
	return &Extractor{
		logger: logger,
		client: github.NewClient(restyClient.GetClient()),
	}
}

// Fetch retrieves and parses the tracking issue body.
func (e *Extractor) Fetch(ctx context.Context) (*FetchResult, error) {
	e.logger.Info("fetching implementation status", "url", TrackingIssueURL)

	issue, _, err := e.client.Issues.Get(ctx, TrackingOwner, TrackingRepo, TrackingIssueNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tracking issue %s: %w", TrackingIssueURL, err)
	}

	body := issue.GetBody()
	if body == "" {
		return nil, fmt.Errorf("tracking issue %s has an empty body", TrackingIssueURL)
	}

	entries, err := ParseIssueBody(body)
	if err != nil {
		return nil, err
	}

	result := &FetchResult{Entries: entries, FetchedAt: time.Now().UTC()}
	e.logger.Info("parsed tracking issue",
		"rules", len(entries), "implemented", len(result.ImplementedCodes()))
	return result, nil
}

// ParseIssueBody extracts rule entries from the tracking issue markdown.
//
// The useless-suppression rule (I0021) is always reported as not implemented
// regardless of the issue state: the annotation cleaner depends on pylint
// raising it, so it must stay in the enable list.
func ParseIssueBody(body string) ([]Entry, error) {
	var entries []Entry

	for _, m := range taskItemPattern.FindAllStringSubmatch(body, -1) {
		code := m[3]
		if !ruleCodePattern.MatchString(code) {
			continue
		}
		entry := Entry{
			Code:        code,
			Name:        m[2],
			RuffRule:    m[4],
			Implemented: m[1] == "x",
		}
		if entry.Code == "I0021" || entry.Name == "useless-suppression" {
			entry.Implemented = false
		}
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("no rule entries found in tracking issue body")
	}
	return entries, nil
}
