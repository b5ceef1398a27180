package search

import (
	"errors"
	"fmt"
	"sort"

	"github.com/smartcoach/backend/internal/corpus"
)

// Result holds a retrieved document and its cosine similarity to the query
type Result struct {
	Document corpus.Document
	Score    float64
}

// Index is the immutable retrieval index: vocabulary, IDF weights and one
// sparse vector per document. It is built once at startup and is safe for
// concurrent reads with no locking; there is no writer after construction.
// Adding documents requires a full rebuild.
type Index struct {
	vectorizer *TFIDFVectorizer
	documents  []corpus.Document
	vectors    []Vector
	byCategory map[corpus.Category][]int
}

// BuildIndex constructs the index from the full document sequence.
// An empty corpus is a load failure, not a usable index.
func BuildIndex(documents []corpus.Document) (*Index, error) {
	if len(documents) == 0 {
		return nil, &corpus.LoadError{Source: "index", Err: errors.New("no documents to index")}
	}

	texts := make([]string, len(documents))
	for i, doc := range documents {
		texts[i] = doc.Text
	}

	vectorizer := NewTFIDFVectorizer()
	vectorizer.Fit(texts)

	ix := &Index{
		vectorizer: vectorizer,
		documents:  documents,
		vectors:    make([]Vector, len(documents)),
		byCategory: make(map[corpus.Category][]int),
	}
	for i, doc := range documents {
		ix.vectors[i] = vectorizer.Transform(doc.Text)
		ix.byCategory[doc.Category] = append(ix.byCategory[doc.Category], i)
	}
	return ix, nil
}

// Size returns the number of indexed documents
func (ix *Index) Size() int { return len(ix.documents) }

// VocabularySize returns the number of distinct indexed terms
func (ix *Index) VocabularySize() int { return len(ix.vectorizer.Vocabulary) }

// Retrieve returns the top k documents ranked by cosine similarity to the
// query, optionally restricted to one category (empty = all categories).
// Ties are broken by corpus order, so results are deterministic. Query terms
// absent from the vocabulary are dropped silently; if nothing of the query
// survives, the result is empty rather than arbitrary.
func (ix *Index) Retrieve(query string, category corpus.Category, k int) ([]Result, error) {
	if k <= 0 {
		return nil, &InvalidQueryError{Reason: fmt.Sprintf("k must be positive, got %d", k)}
	}
	candidates, err := ix.candidates(category)
	if err != nil {
		return nil, err
	}

	queryVector := ix.vectorizer.Transform(query)
	if len(queryVector) == 0 {
		return []Result{}, nil
	}

	results := make([]Result, 0, len(candidates))
	for _, i := range candidates {
		score := queryVector.Dot(ix.vectors[i])
		if score > 0 {
			results = append(results, Result{Document: ix.documents[i], Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// RetrieveAll lists every document of a category in corpus order, without
// scoring. A known category with no documents yields an empty slice.
func (ix *Index) RetrieveAll(category corpus.Category) ([]corpus.Document, error) {
	if _, ok := corpus.ParseCategory(string(category)); !ok {
		return nil, &InvalidQueryError{Reason: fmt.Sprintf("unknown category %q", category)}
	}
	indexes := ix.byCategory[category]
	documents := make([]corpus.Document, len(indexes))
	for i, idx := range indexes {
		documents[i] = ix.documents[idx]
	}
	return documents, nil
}

func (ix *Index) candidates(category corpus.Category) ([]int, error) {
	if category == "" {
		all := make([]int, len(ix.documents))
		for i := range all {
			all[i] = i
		}
		return all, nil
	}
	if _, ok := corpus.ParseCategory(string(category)); !ok {
		return nil, &InvalidQueryError{Reason: fmt.Sprintf("unknown category %q", category)}
	}
	return ix.byCategory[category], nil
}
