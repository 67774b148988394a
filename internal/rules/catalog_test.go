package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog([]Rule{
		NewRule("W0613", "unused-argument", ""),
		NewRule("C0103", "invalid-name", ""),
		NewRule("E1101", "no-member", ""),
	})
	require.NoError(t, err)
	return c
}

func TestNewCatalogValidation(t *testing.T) {
	tests := []struct {
		name    string
		records []Rule
		wantErr string
	}{
		{
			name:    "empty code rejected",
			records: []Rule{NewRule("", "invalid-name", "")},
			wantErr: "invalid rule record",
		},
		{
			name:    "empty name rejected",
			records: []Rule{NewRule("C0103", "", "")},
			wantErr: "invalid rule record",
		},
		{
			name: "duplicate code rejected",
			records: []Rule{
				NewRule("C0103", "invalid-name", ""),
				NewRule("C0103", "other-name", ""),
			},
			wantErr: "duplicate rule code",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.records)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCatalogOrderedByCode(t *testing.T) {
	c := testCatalog(t)

	var codes []string
	for _, r := range c.Rules() {
		codes = append(codes, r.Code)
	}
	assert.Equal(t, []string{"C0103", "E1101", "W0613"}, codes)
}

func TestCatalogLookup(t *testing.T) {
	c := testCatalog(t)

	byCode, ok := c.ByCode("C0103")
	require.True(t, ok)
	byName, ok2 := c.ByIdentifier("invalid-name")
	require.True(t, ok2)
	assert.Equal(t, byCode, byName)

	_, ok = c.ByCode("invalid-name")
	assert.False(t, ok, "ByCode must not match names")

	_, ok = c.ByIdentifier("Z9999")
	assert.False(t, ok)
}

func TestCanonicalPreservesUnknown(t *testing.T) {
	c := testCatalog(t)

	code, ok := c.Canonical("no-member")
	assert.True(t, ok)
	assert.Equal(t, "E1101", code)

	code, ok = c.Canonical("not-a-rule")
	assert.False(t, ok)
	assert.Equal(t, "not-a-rule", code)
}

func TestResolve(t *testing.T) {
	c := testCatalog(t)

	codes, unknown := c.Resolve([]string{"invalid-name", "C0103", "E1101", "bogus"})

	assert.Equal(t, []string{"C0103", "E1101"}, codes, "name and code of the same rule deduplicate")
	assert.Equal(t, []string{"bogus"}, unknown)
}

func TestStatusSet(t *testing.T) {
	now := time.Now()
	s := NewStatusSet([]string{"C0103", "W0613"}, ProvenanceLive, now)

	assert.True(t, s.Contains("C0103"))
	assert.False(t, s.Contains("E1101"))
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, ProvenanceLive, s.Provenance())
	assert.Equal(t, now, s.FetchedAt())

	var nilSet *StatusSet
	assert.False(t, nilSet.Contains("C0103"))
	assert.Equal(t, 0, nilSet.Len())
}
