package mypy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"E1101", true},  // no-member, mypy attr-defined
		{"E0602", true},  // undefined-variable, mypy name-defined
		{"E1120", true},  // no-value-for-parameter, mypy call-arg
		{"C0103", false}, // naming style is not type checking
		{"W0613", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.code))
		})
	}
}

func TestOverlapCodesIsACopy(t *testing.T) {
	first := OverlapCodes()
	delete(first, "E1101")

	assert.True(t, Overlaps("E1101"), "mutating the returned set must not affect the package")
	assert.Contains(t, OverlapCodes(), "E1101")
}
