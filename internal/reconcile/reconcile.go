// Package reconcile computes the final enable/disable decision for the
// legacy linter from the rule catalog, the implementation-status set, the
// overlap set, user overrides, and the previously-configured disable list.
// The computation is a pure function of its inputs: running it again on its
// own output yields the same result for an unchanged snapshot.
package reconcile

import (
	"sort"

	"github.com/pylint-tools/pylint-ruff-sync/internal/rules"
)

// SentinelAll is the reserved "disable everything" marker. It always leads
// the disable list: leaving the underlying tool at its own defaults would
// re-introduce duplication with the faster tool.
const SentinelAll = "all"

// Inputs collects everything the engine needs. All fields are read-only
// snapshots.
type Inputs struct {
	// Catalog is the full rule catalog. Required.
	Catalog *rules.Catalog
	// Implemented is the set of rule codes covered by the faster tool.
	// May be nil or empty; the result then degrades to more enables.
	Implemented *rules.StatusSet
	// Overlap is the set of rule codes duplicating the third tool's
	// semantics. Only consulted when FilterOverlap is true.
	Overlap map[string]struct{}
	// FilterOverlap toggles the overlap set as a whole.
	FilterOverlap bool
	// CustomEnable and CustomDisable are user overrides, given by code or
	// by name interchangeably.
	CustomEnable  []string
	CustomDisable []string
	// PriorDisable is the disable list read from the existing document.
	// The sentinel marker is ignored if present.
	PriorDisable []string
}

// Result is the immutable outcome of a reconciliation run.
type Result struct {
	// Enable holds rule codes in catalog order, then unknown custom-enable
	// identifiers verbatim. Duplicates removed.
	Enable []string
	// Disable starts with SentinelAll, followed by the surviving disable
	// identifiers in lexicographic order.
	Disable []string
	// UnknownEnable and UnknownDisable list user/previously-configured
	// identifiers absent from the catalog. They are preserved in the
	// respective output list; the orchestrator logs them.
	UnknownEnable  []string
	UnknownDisable []string
}

// Reconcile merges all inputs into the final enable/disable decision.
//
// Precedence, strongest first: explicit custom-enable always wins; explicit
// custom-disable keeps an identifier out of the enable list (and in disable)
// even when catalog membership alone would enable it; the implemented and
// overlap sets then drop whatever the faster tools already cover.
func Reconcile(in Inputs) Result {
	enableCodes, unknownEnable := in.Catalog.Resolve(in.CustomEnable)
	disableCodes, unknownDisable := in.Catalog.Resolve(in.CustomDisable)

	customEnable := toSet(enableCodes)
	customDisable := toSet(disableCodes)

	priorKnown := make(map[string]struct{})
	var priorUnknown []string
	for _, ident := range in.PriorDisable {
		if ident == SentinelAll {
			continue
		}
		code, known := in.Catalog.Canonical(ident)
		if known {
			priorKnown[code] = struct{}{}
		} else {
			priorUnknown = append(priorUnknown, ident)
		}
	}

	overlaps := func(code string) bool {
		if !in.FilterOverlap {
			return false
		}
		_, ok := in.Overlap[code]
		return ok
	}

	// Candidate enable list in catalog order.
	var enable []string
	enabled := make(map[string]struct{})
	for _, r := range in.Catalog.Rules() {
		code := r.Code
		if _, explicit := customEnable[code]; explicit {
			enable = append(enable, code)
			enabled[code] = struct{}{}
			continue
		}
		if in.Implemented.Contains(code) || overlaps(code) {
			continue
		}
		if _, off := customDisable[code]; off {
			continue
		}
		if _, off := priorKnown[code]; off {
			continue
		}
		enable = append(enable, code)
		enabled[code] = struct{}{}
	}

	// Unknown custom-enable identifiers are preserved verbatim at the end.
	unknownEnableSet := toSet(unknownEnable)
	enable = append(enable, unknownEnable...)

	// Effective disable tail: prior and custom disables that survive
	// filtering.
	disableSet := make(map[string]struct{})
	for code := range priorKnown {
		disableSet[code] = struct{}{}
	}
	for code := range customDisable {
		disableSet[code] = struct{}{}
	}

	var tail []string
	for code := range disableSet {
		if _, on := enabled[code]; on {
			continue
		}
		_, explicit := customDisable[code]
		if in.Implemented.Contains(code) && !explicit {
			// The faster tool already covers it; carrying it is redundant.
			continue
		}
		if overlaps(code) && !explicit {
			continue
		}
		tail = append(tail, code)
	}

	// Unknown identifiers survive into the disable tail unless the same
	// identifier was explicitly custom-enabled.
	seenUnknown := make(map[string]struct{})
	for _, ident := range append(append([]string{}, unknownDisable...), priorUnknown...) {
		if _, on := unknownEnableSet[ident]; on {
			continue
		}
		if _, dup := seenUnknown[ident]; dup {
			continue
		}
		seenUnknown[ident] = struct{}{}
		tail = append(tail, ident)
	}

	sort.Strings(tail)

	disable := make([]string, 0, len(tail)+1)
	disable = append(disable, SentinelAll)
	disable = append(disable, tail...)

	var preservedUnknown []string
	for ident := range seenUnknown {
		preservedUnknown = append(preservedUnknown, ident)
	}
	sort.Strings(preservedUnknown)

	return Result{
		Enable:         enable,
		Disable:        disable,
		UnknownEnable:  append([]string{}, unknownEnable...),
		UnknownDisable: preservedUnknown,
	}
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}
