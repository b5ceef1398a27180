package search_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcoach/backend/internal/corpus"
	"github.com/smartcoach/backend/internal/search"
)

func testDocuments() []corpus.Document {
	return []corpus.Document{
		{ID: "1", Category: corpus.CategoryExercise, Text: "push up chest triceps beginner"},
		{ID: "2", Category: corpus.CategoryExercise, Text: "squat legs glutes beginner"},
		{ID: "3", Category: corpus.CategoryMeal, Text: "chicken rice high protein"},
	}
}

func buildTestIndex(t *testing.T) *search.Index {
	t.Helper()
	ix, err := search.BuildIndex(testDocuments())
	require.NoError(t, err)
	return ix
}

func TestBuildIndexEmptyCorpus(t *testing.T) {
	_, err := search.BuildIndex(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, corpus.ErrCorpusLoad))
}

func TestRetrieve_EndToEndExample(t *testing.T) {
	ix := buildTestIndex(t)

	hits, err := ix.Retrieve("beginner chest exercise", corpus.CategoryExercise, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "1", hits[0].Document.ID)

	hits, err = ix.Retrieve("beginner chest exercise", corpus.CategoryExercise, 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "1", hits[0].Document.ID, "chest match must outrank the shared beginner term")
	assert.Equal(t, "2", hits[1].Document.ID)

	hits, err = ix.Retrieve("protein meal", corpus.CategoryMeal, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "3", hits[0].Document.ID)
}

func TestRetrieve_SelfSimilarity(t *testing.T) {
	docs := testDocuments()
	ix, err := search.BuildIndex(docs)
	require.NoError(t, err)

	for _, doc := range docs {
		hits, err := ix.Retrieve(doc.Text, doc.Category, 1)
		require.NoError(t, err)
		require.Len(t, hits, 1, "document %s must find itself", doc.ID)
		assert.Equal(t, doc.ID, hits[0].Document.ID)
		assert.InDelta(t, 1.0, hits[0].Score, 1e-9)
	}
}

func TestRetrieve_Deterministic(t *testing.T) {
	ix := buildTestIndex(t)

	first, err := ix.Retrieve("beginner exercise", "", 3)
	require.NoError(t, err)
	second, err := ix.Retrieve("beginner exercise", "", 3)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRetrieve_MonotonicK(t *testing.T) {
	ix := buildTestIndex(t)

	for k := 1; k < 3; k++ {
		smaller, err := ix.Retrieve("beginner chest squat", "", k)
		require.NoError(t, err)
		larger, err := ix.Retrieve("beginner chest squat", "", k+1)
		require.NoError(t, err)

		require.LessOrEqual(t, len(smaller), len(larger))
		assert.Equal(t, smaller, larger[:len(smaller)], "retrieve(k) must be a prefix of retrieve(k+1)")
	}
}

func TestRetrieve_TieBreakByCorpusOrder(t *testing.T) {
	docs := []corpus.Document{
		{ID: "a", Category: corpus.CategoryTip, Text: "stretch daily morning"},
		{ID: "b", Category: corpus.CategoryTip, Text: "stretch daily morning"},
	}
	ix, err := search.BuildIndex(docs)
	require.NoError(t, err)

	hits, err := ix.Retrieve("stretch daily", corpus.CategoryTip, 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "a", hits[0].Document.ID)
	assert.Equal(t, "b", hits[1].Document.ID)
}

func TestRetrieve_OutOfVocabularyQuery(t *testing.T) {
	ix := buildTestIndex(t)

	// Documented policy: a query with no vocabulary overlap returns an
	// empty result, never an error.
	hits, err := ix.Retrieve("quantum blockchain synergy", "", 5)
	require.NoError(t, err)
	assert.Empty(t, hits)

	hits, err = ix.Retrieve("", "", 5)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestRetrieve_CategoryFilter(t *testing.T) {
	ix := buildTestIndex(t)

	hits, err := ix.Retrieve("beginner protein", corpus.CategoryExercise, 10)
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	for _, hit := range hits {
		assert.Equal(t, corpus.CategoryExercise, hit.Document.Category)
	}

	// Without a filter, both categories may appear
	hits, err = ix.Retrieve("beginner protein", "", 10)
	require.NoError(t, err)
	categories := make(map[corpus.Category]bool)
	for _, hit := range hits {
		categories[hit.Document.Category] = true
	}
	assert.True(t, categories[corpus.CategoryExercise])
	assert.True(t, categories[corpus.CategoryMeal])
}

func TestRetrieve_InvalidArguments(t *testing.T) {
	ix := buildTestIndex(t)

	tests := []struct {
		name     string
		query    string
		category corpus.Category
		k        int
	}{
		{"zero k", "chest", "", 0},
		{"negative k", "chest", "", -1},
		{"unknown category", "chest", "cardio", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ix.Retrieve(tt.query, tt.category, tt.k)
			require.Error(t, err)
			assert.True(t, errors.Is(err, search.ErrInvalidQuery))
		})
	}
}

func TestRetrieve_ZeroScoresExcluded(t *testing.T) {
	ix := buildTestIndex(t)

	// "protein" only matches the meal document; exercises must not pad the
	// result with zero scores.
	hits, err := ix.Retrieve("protein", "", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "3", hits[0].Document.ID)
	assert.Greater(t, hits[0].Score, 0.0)
}

func TestRetrieveAll(t *testing.T) {
	ix := buildTestIndex(t)

	docs, err := ix.RetrieveAll(corpus.CategoryExercise)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "1", docs[0].ID)
	assert.Equal(t, "2", docs[1].ID)

	// Valid category with zero documents: empty, not an error
	docs, err = ix.RetrieveAll(corpus.CategoryTip)
	require.NoError(t, err)
	assert.Empty(t, docs)

	_, err = ix.RetrieveAll("cardio")
	require.Error(t, err)
	assert.True(t, errors.Is(err, search.ErrInvalidQuery))
}

func TestRetrieve_ZeroLengthDocument(t *testing.T) {
	docs := []corpus.Document{
		{ID: "1", Category: corpus.CategoryTip, Text: "hydration water daily"},
		{ID: "2", Category: corpus.CategoryTip, Text: "..."},
	}
	ix, err := search.BuildIndex(docs)
	require.NoError(t, err)

	// A zero-term document never ranks, but is still listable
	hits, err := ix.Retrieve("hydration water", corpus.CategoryTip, 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "1", hits[0].Document.ID)

	all, err := ix.RetrieveAll(corpus.CategoryTip)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRetrieve_ConcurrentReads(t *testing.T) {
	ix := buildTestIndex(t)

	want, err := ix.Retrieve("beginner chest", "", 3)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				got, err := ix.Retrieve("beginner chest", "", 3)
				assert.NoError(t, err)
				assert.Equal(t, want, got)
			}
		}()
	}
	wg.Wait()
}
