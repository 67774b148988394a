package rules

import "fmt"

// Category is the pylint rule category derived from the rule code prefix.
type Category string

const (
	CategoryConvention Category = "convention"
	CategoryError      Category = "error"
	CategoryWarning    Category = "warning"
	CategoryRefactor   Category = "refactor"
	CategoryInfo       Category = "info"
	CategoryFatal      Category = "fatal"
	CategoryUnknown    Category = ""
)

// CategoryFromCode derives the category from a rule code such as "C0103".
func CategoryFromCode(code string) Category {
	if code == "" {
		return CategoryUnknown
	}
	switch code[0] {
	case 'C':
		return CategoryConvention
	case 'E':
		return CategoryError
	case 'W':
		return CategoryWarning
	case 'R':
		return CategoryRefactor
	case 'I':
		return CategoryInfo
	case 'F':
		return CategoryFatal
	default:
		return CategoryUnknown
	}
}

// Rule is a single pylint rule record. Code and Name are interchangeable
// keys into a Catalog.
type Rule struct {
	// Code is the short rule code, e.g. "C0103".
	Code string
	// Name is the canonical rule name, e.g. "invalid-name".
	Name string
	// Category is derived from the code prefix.
	Category Category
	// Description is the free-text rule description.
	Description string
}

// NewRule builds a Rule, deriving the category from the code prefix.
func NewRule(code, name, description string) Rule {
	return Rule{
		Code:        code,
		Name:        name,
		Category:    CategoryFromCode(code),
		Description: description,
	}
}

// DocsURL returns the pylint documentation URL for the rule, derived
// deterministically from its category and name. Empty when either part is
// missing.
func (r Rule) DocsURL() string {
	if r.Category == CategoryUnknown || r.Name == "" {
		return ""
	}
	return fmt.Sprintf(
		"https://pylint.readthedocs.io/en/stable/user_guide/messages/%s/%s.html",
		r.Category, r.Name,
	)
}
