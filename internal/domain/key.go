package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Key is the normalized natural key of a named entity.
type Key string

// KeyOf returns the natural key for name: NFC-normalized, case-folded, with
// surrounding space trimmed and inner whitespace runs collapsed.
//
// "Susan  Lee", "susan lee" and "SUSAN LEE" share a key.
func KeyOf(name string) Key {
	collapsed := strings.Join(strings.Fields(name), " ")
	return Key(cases.Fold().String(norm.NFC.String(collapsed)))
}
