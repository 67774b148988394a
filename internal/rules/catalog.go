package rules

import (
	"fmt"
	"sort"
)

// Catalog is an immutable snapshot of all rules known to pylint, ordered by
// rule code. It is constructed once per run and passed by reference into
// each component; nothing mutates it afterwards.
type Catalog struct {
	rules  []Rule
	byCode map[string]int
	byName map[string]int
}

// NewCatalog builds a catalog from the given records. Every record must have
// a non-empty code and name, and codes must be unique within the snapshot.
func NewCatalog(records []Rule) (*Catalog, error) {
	c := &Catalog{
		rules:  make([]Rule, 0, len(records)),
		byCode: make(map[string]int, len(records)),
		byName: make(map[string]int, len(records)),
	}

	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if r.Code == "" || r.Name == "" {
			return nil, fmt.Errorf("invalid rule record: code=%q name=%q", r.Code, r.Name)
		}
		if _, exists := seen[r.Code]; exists {
			return nil, fmt.Errorf("duplicate rule code %q in catalog", r.Code)
		}
		seen[r.Code] = struct{}{}
		c.rules = append(c.rules, r)
	}

	sort.Slice(c.rules, func(i, j int) bool { return c.rules[i].Code < c.rules[j].Code })
	for i, r := range c.rules {
		c.byCode[r.Code] = i
		c.byName[r.Name] = i
	}

	return c, nil
}

// Len returns the number of rules in the catalog.
func (c *Catalog) Len() int {
	return len(c.rules)
}

// Rules returns the catalog records in catalog order. The caller must not
// modify the returned slice.
func (c *Catalog) Rules() []Rule {
	return c.rules
}

// ByCode looks up a rule by its code.
func (c *Catalog) ByCode(code string) (Rule, bool) {
	i, ok := c.byCode[code]
	if !ok {
		return Rule{}, false
	}
	return c.rules[i], true
}

// ByIdentifier looks up a rule by code or name; both refer to the same rule.
func (c *Catalog) ByIdentifier(identifier string) (Rule, bool) {
	if i, ok := c.byCode[identifier]; ok {
		return c.rules[i], true
	}
	if i, ok := c.byName[identifier]; ok {
		return c.rules[i], true
	}
	return Rule{}, false
}

// Canonical maps an identifier (code or name) to its canonical rule code.
// Identifiers absent from the catalog are returned verbatim with ok=false;
// the engine preserves them rather than dropping user input it cannot
// classify.
func (c *Catalog) Canonical(identifier string) (string, bool) {
	if r, ok := c.ByIdentifier(identifier); ok {
		return r.Code, true
	}
	return identifier, false
}

// Resolve canonicalizes a list of identifiers. It returns the resolved codes
// (deduplicated, input order) and the identifiers that are not catalog
// members, preserved verbatim.
func (c *Catalog) Resolve(identifiers []string) (codes []string, unknown []string) {
	seen := make(map[string]struct{}, len(identifiers))
	for _, ident := range identifiers {
		code, ok := c.Canonical(ident)
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		if ok {
			codes = append(codes, code)
		} else {
			unknown = append(unknown, ident)
		}
	}
	return codes, unknown
}
