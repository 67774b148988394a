package tomledit

import (
	"fmt"
	"strings"
)

// CommentFunc returns the trailing comment for an array entry, or empty for
// none. The editor uses it to attach documentation references to enable-list
// entries.
type CommentFunc func(item string) string

// renderArray produces the textual assignment for an array-valued key.
// A single-element array with no comment renders inline; anything longer
// renders one element per line with a trailing separator on all but the
// last element (final style is the external formatter's business).
func renderArray(key string, items []string, comment CommentFunc) string {
	if len(items) == 0 {
		return fmt.Sprintf("%s = []", key)
	}

	if len(items) == 1 && (comment == nil || comment(items[0]) == "") {
		return fmt.Sprintf("%s = [%q]", key, items[0])
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s = [\n", key)
	for i, item := range items {
		sep := ","
		if i == len(items)-1 {
			sep = ""
		}
		b.WriteString("  ")
		fmt.Fprintf(&b, "%q%s", item, sep)
		if comment != nil {
			if c := comment(item); c != "" {
				b.WriteString(" # ")
				b.WriteString(c)
			}
		}
		b.WriteByte('\n')
	}
	b.WriteString("]")
	return b.String()
}
