package search

import (
	"math"
	"sort"
)

// Vector is a sparse TF-IDF vector: vocabulary index -> weight.
// Only non-zero entries are stored.
type Vector map[int]float64

// TFIDFVectorizer implements Term Frequency - Inverse Document Frequency
// weighting over a vocabulary learned from a fixed corpus.
type TFIDFVectorizer struct {
	Vocabulary map[string]int
	IDF        []float64
}

func NewTFIDFVectorizer() *TFIDFVectorizer {
	return &TFIDFVectorizer{
		Vocabulary: make(map[string]int),
	}
}

// Fit builds the vocabulary and IDF weights from the corpus. Vocabulary
// indexes are assigned in sorted term order so rebuilds of the same corpus
// produce the same index layout.
func (v *TFIDFVectorizer) Fit(texts []string) {
	df := make(map[string]int)
	for _, text := range texts {
		seenInDoc := make(map[string]struct{})
		for _, token := range Tokenize(text) {
			if _, seen := seenInDoc[token]; seen {
				continue
			}
			seenInDoc[token] = struct{}{}
			df[token]++
		}
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	// Smoothed IDF: log((1+N)/(1+df)) + 1. Stays finite even when a term
	// appears in every document.
	n := float64(len(texts))
	v.Vocabulary = make(map[string]int, len(terms))
	v.IDF = make([]float64, len(terms))
	for i, term := range terms {
		v.Vocabulary[term] = i
		v.IDF[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
}

// Transform converts text into an L2-normalized sparse TF-IDF vector.
// Terms absent from the vocabulary contribute nothing; a text with no known
// terms yields an empty vector.
func (v *TFIDFVectorizer) Transform(text string) Vector {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return Vector{}
	}

	tf := make(map[int]float64)
	for _, token := range tokens {
		if idx, ok := v.Vocabulary[token]; ok {
			tf[idx]++
		}
	}
	if len(tf) == 0 {
		return Vector{}
	}

	vec := make(Vector, len(tf))
	total := float64(len(tokens))
	for idx, count := range tf {
		vec[idx] = (count / total) * v.IDF[idx]
	}
	vec.normalize()
	return vec
}

// Dot returns the dot product of two sparse vectors. For L2-normalized
// vectors this equals cosine similarity in [0, 1].
func (a Vector) Dot(b Vector) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for idx, w := range a {
		sum += w * b[idx]
	}
	return sum
}

func (a Vector) normalize() {
	var norm float64
	for _, w := range a {
		norm += w * w
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return
	}
	for idx := range a {
		a[idx] /= norm
	}
}
