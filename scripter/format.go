package scripter

import (
	"iter"
	"strings"

	"github.com/hbasedef/hbasedef/util"
)

// sortedProperties yields a property map's entries in key order, with values
// escaped for embedding inside a double-quoted ruby string literal. Every
// call site that renders a property map goes through this, so the sorting
// and escaping rules can't drift apart between validations and mutations.
func sortedProperties(props map[string]string) iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for key, value := range util.CanonicalMapIter(props) {
			if !yield(key, escapeDoubleQuotes(value)) {
				return
			}
		}
	}
}

// escapeDoubleQuotes changes " to \" and leaves every other character alone.
func escapeDoubleQuotes(value string) string {
	return strings.ReplaceAll(value, `"`, `\"`)
}
