package translate

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Direction is a fixed source/target language pair.
type Direction struct {
	From language.Tag
	To   language.Tag
}

var (
	SpanishToEnglish = Direction{From: language.Spanish, To: language.English}
	EnglishToSpanish = Direction{From: language.English, To: language.Spanish}
)

// Directions lists the pairs every translation request is run in.
var Directions = []Direction{SpanishToEnglish, EnglishToSpanish}

// Codes returns the two-letter codes sent to providers.
func (d Direction) Codes() (string, string) {
	return baseCode(d.From), baseCode(d.To)
}

// String returns the short form, e.g. "es-en".
func (d Direction) String() string {
	from, to := d.Codes()
	return from + "-" + to
}

// Label returns the English display form, e.g. "Spanish to English".
func (d Direction) Label() string {
	return DisplayName(d.From) + " to " + DisplayName(d.To)
}

// DisplayName returns the English name of a language tag.
func DisplayName(tag language.Tag) string {
	return display.English.Tags().Name(tag)
}

func baseCode(tag language.Tag) string {
	base, _ := tag.Base()
	return base.String()
}
