package analyzer

import (
	"slices"
	"strings"
)

// Tokenize splits text on any run of whitespace. Case and punctuation are kept
// as-is, so "Word." and "word" are different tokens.
func Tokenize(text string) []string {
	return strings.Fields(text)
}

// CountLines counts newline-separated lines. Empty text counts as one line.
func CountLines(text string) int {
	return len(strings.Split(text, "\n"))
}

// CountWords builds the token frequency table.
func CountWords(tokens []string) map[string]int {
	counts := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		counts[tok]++
	}
	return counts
}

// TopWords returns at most k tokens ordered by descending count. Equal counts
// keep the order in which the tokens were first seen.
func TopWords(tokens []string, k int) []WordCount {
	if k <= 0 || len(tokens) == 0 {
		return []WordCount{}
	}

	counts := make(map[string]int, len(tokens))
	order := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if counts[tok] == 0 {
			order = append(order, tok)
		}
		counts[tok]++
	}

	ranked := make([]WordCount, 0, len(order))
	for _, word := range order {
		ranked = append(ranked, WordCount{Word: word, Count: counts[word]})
	}
	slices.SortStableFunc(ranked, func(a, b WordCount) int {
		return b.Count - a.Count
	})

	if len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}
