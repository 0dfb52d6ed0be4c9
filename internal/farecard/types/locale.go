package types

import (
	"strings"

	"golang.org/x/text/language"
)

// DisplayLocale selects which name columns of the code tables are used.
type DisplayLocale int

const (
	// LocaleEnglish selects the *_en columns.
	LocaleEnglish DisplayLocale = iota
	// LocalePrimary selects the tables' primary (Japanese) columns.
	LocalePrimary
)

var primaryBase, _ = language.Japanese.Base()

// ParseDisplayLocale maps a BCP 47 tag to a DisplayLocale. Only a Japanese
// base language selects the primary columns; anything else, including an
// unparsable tag, selects English.
func ParseDisplayLocale(tag string) DisplayLocale {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return LocaleEnglish
	}
	t, err := language.Parse(tag)
	if err != nil {
		return LocaleEnglish
	}
	base, _ := t.Base()
	if base == primaryBase {
		return LocalePrimary
	}
	return LocaleEnglish
}

func (l DisplayLocale) String() string {
	if l == LocalePrimary {
		return "primary"
	}
	return "english"
}
