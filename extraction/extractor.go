// Package extraction finds catalog names inside free text.
package extraction

import (
	"pop-lab/domain"
	"slices"
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
	"github.com/samber/lo"
)

type Extractor struct {
	matcher *goahocorasick.Machine
	// canonical maps a normalized pattern back to the first name that produced it.
	canonical map[string]string
}

type TextMapping struct {
	Normalized []rune
	OrigIdx    []int
}

type match struct {
	start, end int
	name       string
}

// NewExtractor initializes the Aho-Corasick automaton with a normalized version of every name.
// Names that normalize to nothing are ignored; when two names collide the first one wins.
func NewExtractor(names []string) (*Extractor, error) {
	canonical := make(map[string]string, len(names))
	for _, name := range names {
		key := string(normalizeRunes([]rune(name)))
		if key == "" {
			continue
		}
		if _, ok := canonical[key]; !ok {
			canonical[key] = domain.NormalizeName(name)
		}
	}

	keys := lo.Keys(canonical)
	slices.Sort(keys)
	patterns := lo.Map(keys, func(k string, _ int) []rune { return []rune(k) })

	e := &Extractor{canonical: canonical}
	if len(patterns) == 0 {
		return e, nil
	}
	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, err
	}
	e.matcher = m
	return e, nil
}

// Extract returns the names found in text, in text order, duplicates kept.
// On overlap the longest match starting first wins. A match must start and end on a word
// boundary of the original text, so "pear" is not found inside "pearl".
func (e *Extractor) Extract(text string) []string {
	if e.matcher == nil {
		return nil
	}
	mapping := normalize(text)
	if len(mapping.Normalized) == 0 {
		return nil
	}
	origRunes := []rune(text)

	terms := e.matcher.MultiPatternSearch(mapping.Normalized, false)
	matches := make([]match, 0, len(terms))
	for _, term := range terms {
		start, end := term.Pos, term.Pos+len(term.Word)
		if start < 0 || end > len(mapping.OrigIdx) {
			continue
		}
		origStart, origEnd := mapping.OrigIdx[start], mapping.OrigIdx[end-1]+1
		if !isBoundary(origRunes, origStart-1) || !isBoundary(origRunes, origEnd) {
			continue
		}
		matches = append(matches, match{start: start, end: end, name: e.canonical[string(term.Word)]})
	}

	slices.SortStableFunc(matches, func(a, b match) int {
		if a.start != b.start {
			return a.start - b.start
		}
		return b.end - a.end
	})

	var found []string
	cursor := 0
	for _, m := range matches {
		if m.start < cursor {
			continue
		}
		found = append(found, m.name)
		cursor = m.end
	}
	return found
}

// normalize transforms the input string into a searchable format and tracks original rune positions.
func normalize(input string) TextMapping {
	origRunes := []rune(input)
	norm := make([]rune, 0, len(origRunes))
	origIdx := make([]int, 0, len(origRunes))

	for i, r := range origRunes {
		if isNoise(r) {
			continue
		}
		norm = append(norm, unicode.ToLower(r))
		origIdx = append(origIdx, i)
	}
	return TextMapping{Normalized: norm, OrigIdx: origIdx}
}

func normalizeRunes(input []rune) []rune {
	out := make([]rune, 0, len(input))
	for _, r := range input {
		if isNoise(r) {
			continue
		}
		out = append(out, unicode.ToLower(r))
	}
	return out
}

// isNoise identifies characters that should be ignored during the pattern matching phase.
func isNoise(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r)
}

// isBoundary reports whether position i of the original text does not continue a word.
func isBoundary(orig []rune, i int) bool {
	if i < 0 || i >= len(orig) {
		return true
	}
	r := orig[i]
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
