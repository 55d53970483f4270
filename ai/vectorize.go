package ai

import (
	"strings"
)

// Matrix holds one count vector per document. All rows share the vocabulary width.
type Matrix [][]float64

// Vectorizer turns a fixed column of type tags into bag-of-words count vectors.
// The vocabulary and the base matrix are built once and only read afterwards,
// so a single Vectorizer can serve concurrent requests.
type Vectorizer struct {
	vocabulary map[string]int
	words      []string
	base       Matrix
}

// NewVectorizer builds the vocabulary from every whitespace-delimited word in docs,
// in first-seen order, and vectorizes each doc against it.
func NewVectorizer(docs []string) *Vectorizer {
	v := &Vectorizer{vocabulary: make(map[string]int)}
	for _, doc := range docs {
		for _, w := range strings.Fields(doc) {
			v.learn(w)
		}
	}
	v.base = make(Matrix, len(docs))
	for i, doc := range docs {
		v.base[i] = v.Features(doc)
	}
	return v
}

// CountVectorize is the one-shot form: vocabulary and matrix for docs.
func CountVectorize(docs []string) Matrix {
	return NewVectorizer(docs).base
}

func (v *Vectorizer) learn(word string) {
	if _, ok := v.vocabulary[word]; ok {
		return
	}
	v.vocabulary[word] = len(v.words)
	v.words = append(v.words, word)
}

// Features counts the known vocabulary words of text. Unknown words are ignored.
// An empty text yields the zero vector.
func (v *Vectorizer) Features(text string) []float64 {
	vec := make([]float64, len(v.words))
	for _, w := range strings.Fields(text) {
		if idx, ok := v.vocabulary[w]; ok {
			vec[idx]++
		}
	}
	return vec
}

// Vocabulary returns the known words in column order.
func (v *Vectorizer) Vocabulary() []string {
	out := make([]string, len(v.words))
	copy(out, v.words)
	return out
}

// Matrix returns the cached base matrix. Callers must treat it as read-only.
func (v *Vectorizer) Matrix() Matrix {
	return v.base
}

func (v *Vectorizer) Len() int {
	return len(v.base)
}

// Augment returns a private matrix made of the base rows plus one synthetic row for query,
// and the index of that row. Words of query missing from the vocabulary get new trailing
// columns; base rows are zero-padded to the new width. The cached base is left untouched.
func (v *Vectorizer) Augment(query string) (Matrix, int) {
	extra := make(map[string]int)
	for _, w := range strings.Fields(query) {
		if _, ok := v.vocabulary[w]; ok {
			continue
		}
		if _, ok := extra[w]; !ok {
			extra[w] = len(v.words) + len(extra)
		}
	}

	width := len(v.words) + len(extra)
	m := make(Matrix, len(v.base)+1)
	for i, row := range v.base {
		m[i] = make([]float64, width)
		copy(m[i], row)
	}

	synthetic := make([]float64, width)
	for _, w := range strings.Fields(query) {
		if idx, ok := v.vocabulary[w]; ok {
			synthetic[idx]++
			continue
		}
		synthetic[extra[w]]++
	}
	m[len(v.base)] = synthetic
	return m, len(v.base)
}
