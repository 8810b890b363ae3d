package eval

import (
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Collator is the pluggable, locale-bound string ordering strategy.
//
// String equality (==/!=) goes through the collator as well, so equality is
// locale-sensitive. That is a long-standing quirk of the language, preserved
// deliberately; relational fairness would want ordinal equality.
type Collator interface {
	CompareStrings(a, b string) int
}

// LocaleCollator orders strings under a locale's collation rules.
type LocaleCollator struct {
	c *collate.Collator
}

func NewLocaleCollator(tag language.Tag) *LocaleCollator {
	return &LocaleCollator{c: collate.New(tag)}
}

func (lc *LocaleCollator) CompareStrings(a, b string) int {
	return lc.c.CompareString(a, b)
}

// OrdinalCollator orders strings byte-wise, ignoring locale.
type OrdinalCollator struct{}

func (OrdinalCollator) CompareStrings(a, b string) int {
	return strings.Compare(a, b)
}
