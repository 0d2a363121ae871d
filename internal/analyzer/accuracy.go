package analyzer

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/arbovm/levenshtein"
	"github.com/codycollier/wer"
)

// CompareText scores actual against expected. WER is computed over whitespace
// tokens, CER over runes after trimming surrounding whitespace.
func CompareText(expected, actual string) Accuracy {
	acc := Accuracy{ExpectedText: expected}

	refWords := Tokenize(expected)
	hypWords := Tokenize(actual)
	switch {
	case len(refWords) == 0 && len(hypWords) == 0:
		acc.WER = 0
	case len(refWords) == 0:
		acc.WER = 1
	default:
		acc.WER, _ = wer.WER(refWords, hypWords)
	}

	ref := strings.TrimSpace(expected)
	hyp := strings.TrimSpace(actual)
	acc.EditDistance = levenshtein.Distance(ref, hyp)
	refLen := utf8.RuneCountInString(ref)
	switch {
	case refLen == 0 && acc.EditDistance == 0:
		acc.CER = 0
	case refLen == 0:
		acc.CER = 1
	default:
		acc.CER = float64(acc.EditDistance) / float64(refLen)
	}

	acc.MatchScore = math.Round(math.Max(0, 1-acc.CER)*10000) / 100
	return acc
}
