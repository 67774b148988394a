package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pylint-tools/pylint-ruff-sync/internal/rules"
)

func testCatalog(t *testing.T) *rules.Catalog {
	t.Helper()
	c, err := rules.NewCatalog([]rules.Rule{
		rules.NewRule("C0103", "invalid-name", ""),
		rules.NewRule("C0114", "missing-module-docstring", ""),
		rules.NewRule("E1101", "no-member", ""),
		rules.NewRule("W0212", "protected-access", ""),
		rules.NewRule("W0613", "unused-argument", ""),
	})
	require.NoError(t, err)
	return c
}

func implemented(codes ...string) *rules.StatusSet {
	return rules.NewStatusSet(codes, rules.ProvenanceLive, time.Time{})
}

func TestReconcileBasicSplit(t *testing.T) {
	got := Reconcile(Inputs{
		Catalog:     testCatalog(t),
		Implemented: implemented("C0103", "W0613"),
	})

	assert.Equal(t, []string{"C0114", "E1101", "W0212"}, got.Enable)
	assert.Equal(t, []string{SentinelAll}, got.Disable)
	assert.Empty(t, got.UnknownEnable)
	assert.Empty(t, got.UnknownDisable)
}

func TestReconcileSentinelAlwaysFirst(t *testing.T) {
	got := Reconcile(Inputs{
		Catalog:       testCatalog(t),
		CustomDisable: []string{"W0212", "C0114"},
	})

	require.NotEmpty(t, got.Disable)
	assert.Equal(t, SentinelAll, got.Disable[0])
	assert.Equal(t, []string{SentinelAll, "C0114", "W0212"}, got.Disable, "tail sorted lexicographically")
}

func TestReconcileOverlapFilter(t *testing.T) {
	overlap := map[string]struct{}{"E1101": {}}

	filtered := Reconcile(Inputs{
		Catalog:       testCatalog(t),
		Overlap:       overlap,
		FilterOverlap: true,
	})
	assert.NotContains(t, filtered.Enable, "E1101")

	unfiltered := Reconcile(Inputs{
		Catalog:       testCatalog(t),
		Overlap:       overlap,
		FilterOverlap: false,
	})
	assert.Contains(t, unfiltered.Enable, "E1101")
}

// A custom-enable overrides every other input, including implemented status
// and overlap.
func TestReconcileCustomEnableWins(t *testing.T) {
	got := Reconcile(Inputs{
		Catalog:       testCatalog(t),
		Implemented:   implemented("W0613"),
		Overlap:       map[string]struct{}{"W0613": {}},
		FilterOverlap: true,
		CustomEnable:  []string{"unused-argument"},
		PriorDisable:  []string{"all", "W0613"},
	})

	assert.Contains(t, got.Enable, "W0613")
	assert.NotContains(t, got.Disable, "W0613")
}

// A custom-disable without a matching custom-enable keeps the rule out of the
// enable list and in the disable tail, even when nothing else disables it.
func TestReconcileCustomDisableWithoutEnable(t *testing.T) {
	got := Reconcile(Inputs{
		Catalog:       testCatalog(t),
		CustomDisable: []string{"protected-access"},
	})

	assert.NotContains(t, got.Enable, "W0212")
	assert.Contains(t, got.Disable, "W0212")
}

// An explicitly custom-disabled rule stays in the disable tail even when the
// implemented set would otherwise make carrying it redundant.
func TestReconcileExplicitDisableSurvivesImplemented(t *testing.T) {
	got := Reconcile(Inputs{
		Catalog:       testCatalog(t),
		Implemented:   implemented("C0103", "W0212"),
		CustomDisable: []string{"W0212"},
		PriorDisable:  []string{"all", "C0103"},
	})

	// C0103 was only in the prior list: implemented coverage retires it.
	assert.NotContains(t, got.Disable, "C0103")
	// W0212 is an explicit user decision and is kept.
	assert.Contains(t, got.Disable, "W0212")
}

func TestReconcilePriorDisableNames(t *testing.T) {
	got := Reconcile(Inputs{
		Catalog:      testCatalog(t),
		PriorDisable: []string{"all", "invalid-name"},
	})

	assert.NotContains(t, got.Enable, "C0103")
	assert.Contains(t, got.Disable, "C0103", "prior names canonicalize to codes")
}

func TestReconcileUnknownIdentifiersPreserved(t *testing.T) {
	got := Reconcile(Inputs{
		Catalog:       testCatalog(t),
		CustomEnable:  []string{"future-rule"},
		CustomDisable: []string{"legacy-rule"},
		PriorDisable:  []string{"all", "stale-rule", "legacy-rule"},
	})

	assert.Equal(t, []string{"future-rule"}, got.UnknownEnable)
	assert.Equal(t, got.Enable[len(got.Enable)-1], "future-rule", "unknown enables appended verbatim")
	assert.Equal(t, []string{"legacy-rule", "stale-rule"}, got.UnknownDisable)
	assert.Contains(t, got.Disable, "legacy-rule")
	assert.Contains(t, got.Disable, "stale-rule")
}

// An unknown identifier that is custom-enabled must not reappear in the
// disable tail from the prior list.
func TestReconcileUnknownEnableTrumpsPrior(t *testing.T) {
	got := Reconcile(Inputs{
		Catalog:      testCatalog(t),
		CustomEnable: []string{"future-rule"},
		PriorDisable: []string{"all", "future-rule"},
	})

	assert.Contains(t, got.Enable, "future-rule")
	assert.NotContains(t, got.Disable, "future-rule")
}

// No identifier appears in both output lists, and every catalog rule lands in
// exactly one bucket decisionwise: enabled, or excluded for a reason.
func TestReconcileListsDisjoint(t *testing.T) {
	got := Reconcile(Inputs{
		Catalog:       testCatalog(t),
		Implemented:   implemented("C0103"),
		Overlap:       map[string]struct{}{"E1101": {}},
		FilterOverlap: true,
		CustomEnable:  []string{"C0114"},
		CustomDisable: []string{"W0212"},
		PriorDisable:  []string{"all", "W0613", "stale-rule"},
	})

	seen := make(map[string]struct{})
	for _, code := range got.Enable {
		seen[code] = struct{}{}
	}
	for _, code := range got.Disable[1:] {
		_, dup := seen[code]
		assert.False(t, dup, "identifier %q appears in both lists", code)
	}
}

// Feeding the outcome back as the prior state reproduces it exactly.
func TestReconcileIdempotent(t *testing.T) {
	in := Inputs{
		Catalog:       testCatalog(t),
		Implemented:   implemented("C0103", "W0613"),
		Overlap:       map[string]struct{}{"E1101": {}},
		FilterOverlap: true,
		CustomDisable: []string{"W0212"},
		PriorDisable:  []string{"all", "stale-rule"},
	}

	first := Reconcile(in)

	in.PriorDisable = first.Disable
	second := Reconcile(in)

	assert.Equal(t, first, second)
}
