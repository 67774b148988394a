package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryFromCode(t *testing.T) {
	tests := []struct {
		code string
		want Category
	}{
		{"C0103", CategoryConvention},
		{"E1101", CategoryError},
		{"W0613", CategoryWarning},
		{"R0913", CategoryRefactor},
		{"I0021", CategoryInfo},
		{"F0001", CategoryFatal},
		{"X9999", CategoryUnknown},
		{"", CategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, CategoryFromCode(tt.code))
		})
	}
}

func TestDocsURL(t *testing.T) {
	tests := []struct {
		name string
		rule Rule
		want string
	}{
		{
			name: "convention rule",
			rule: NewRule("C0103", "invalid-name", "Used when a name doesn't conform."),
			want: "https://pylint.readthedocs.io/en/stable/user_guide/messages/convention/invalid-name.html",
		},
		{
			name: "warning rule",
			rule: NewRule("W0613", "unused-argument", ""),
			want: "https://pylint.readthedocs.io/en/stable/user_guide/messages/warning/unused-argument.html",
		},
		{
			name: "unknown category yields no URL",
			rule: NewRule("X0001", "mystery", ""),
			want: "",
		},
		{
			name: "missing name yields no URL",
			rule: NewRule("C0103", "", ""),
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rule.DocsURL())
		})
	}
}
