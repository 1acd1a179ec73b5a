package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bookflix/bookflix/internal/models"
)

// fakeSearcher resolves queries from a canned table; unlisted queries
// fail with a transport error.
type fakeSearcher struct {
	results map[string][]models.Book
	calls   []string
}

func (f *fakeSearcher) Search(_ context.Context, query string, maxResults, _ int) (SearchResult, error) {
	f.calls = append(f.calls, query)
	books, ok := f.results[query]
	if !ok {
		return SearchResult{}, errors.New("boom")
	}
	if len(books) > maxResults {
		books = books[:maxResults]
	}
	return SearchResult{Books: books, TotalItems: len(books)}, nil
}

func book(id string) models.Book {
	return models.Book{ID: id, Title: "Book " + id}
}

func TestAssemble_PreservesSeedOrderAndSkipsFailures(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]models.Book{
		// "A" missing: transport failure
		"B": {book("b")},
		"C": {book("c")},
	}}
	a := NewAssembler(searcher)

	books := a.assemble(context.Background(), []string{"A", "B", "C"})

	assert.Equal(t, []string{"A", "B", "C"}, searcher.calls)
	assert.Len(t, books, 2)
	assert.Equal(t, "b", books[0].ID)
	assert.Equal(t, "c", books[1].ID)
}

func TestAssemble_SkipsEmptyResults(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]models.Book{
		"A": {},
		"B": {book("b")},
	}}
	a := NewAssembler(searcher)

	books := a.assemble(context.Background(), []string{"A", "B"})

	assert.Len(t, books, 1)
	assert.Equal(t, "b", books[0].ID)
}

func TestAssemble_TakesTopResultOnly(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]models.Book{
		"A": {book("a1")},
	}}
	a := NewAssembler(searcher)

	books := a.assemble(context.Background(), []string{"A"})

	assert.Len(t, books, 1)
	assert.Equal(t, "a1", books[0].ID)
}

func TestCuratedByCategory_UnknownCategoryIsEmpty(t *testing.T) {
	a := NewAssembler(&fakeSearcher{})

	books := a.CuratedByCategory(context.Background(), "knitting")

	assert.Empty(t, books)
}

func TestMergeUnique(t *testing.T) {
	curated := []models.Book{book("1"), book("2")}
	supplementary := []models.Book{book("2"), book("3")}

	merged := MergeUnique(curated, supplementary)

	ids := make([]string, len(merged))
	for i, b := range merged {
		ids[i] = b.ID
	}
	assert.Equal(t, []string{"1", "2", "3"}, ids)
}

func TestMergeUnique_SupplementaryDuplicates(t *testing.T) {
	merged := MergeUnique(nil, []models.Book{book("1"), book("1"), book("2")})

	assert.Len(t, merged, 2)
	assert.Equal(t, "1", merged[0].ID)
	assert.Equal(t, "2", merged[1].ID)
}

func TestTrending_DeduplicatesAndCaps(t *testing.T) {
	results := make(map[string][]models.Book)
	// every trending query returns the same four books
	for _, q := range trendingQueries {
		results[q] = []models.Book{book("1"), book("2"), book("3"), book("4")}
	}
	a := NewAssembler(&fakeSearcher{results: results})

	books := a.Trending(context.Background())

	assert.Len(t, books, 4)
	assert.LessOrEqual(t, len(books), 20)
}
