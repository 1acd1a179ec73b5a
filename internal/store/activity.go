package store

import (
	"sort"
	"time"

	"github.com/bookflix/bookflix/internal/models"
)

// Activity is one diary feed item: a review written, a book completed,
// or a book currently being read.
type Activity struct {
	ID     string         `json:"id"`
	Type   string         `json:"type"` // review | completed | reading
	Date   time.Time      `json:"date"`
	Book   models.Book    `json:"book"`
	Review *models.Review `json:"review,omitempty"`
}

// ReadingStats is the summary card over a user's collections.
type ReadingStats struct {
	ThisYearBooks    int `json:"thisYearBooks"`
	TotalBooks       int `json:"totalBooks"`
	CurrentlyReading int `json:"currentlyReading"`
	WantToRead       int `json:"wantToRead"`
}

// YearCount is one bar of the yearly breakdown. BarWidth is the bar's
// rendered width as a percentage of the busiest year.
type YearCount struct {
	Year     int     `json:"year"`
	Count    int     `json:"count"`
	BarWidth float64 `json:"barWidth"`
}

// ReviewedBook joins a review to the book it describes.
type ReviewedBook struct {
	Review models.Review `json:"review"`
	Book   models.Book   `json:"book"`
}

// All aggregations below are pure read-time derivations over a document
// snapshot, recomputed per call. The collections are small and mutate
// rarely, so no caching.

// RecentActivity builds the diary feed: the last 10 reviews, the last
// 10 completions, and everything currently being read, sorted newest
// first and capped at 20.
func RecentActivity(doc models.LibraryDoc) []Activity {
	var activities []Activity

	for _, review := range lastReviews(doc, 10) {
		book, ok := findBook(doc, review.BookID)
		if !ok {
			continue
		}
		r := review
		activities = append(activities, Activity{
			ID:     "review-" + review.ID,
			Type:   "review",
			Date:   review.CreatedDate,
			Book:   book,
			Review: &r,
		})
	}

	history := doc.ReadingHistory
	if len(history) > 10 {
		history = history[len(history)-10:]
	}
	for _, entry := range history {
		activities = append(activities, Activity{
			ID:   "completed-" + entry.ID,
			Type: "completed",
			Date: entry.CompletedDate,
			Book: entry.Book,
		})
	}

	for _, entry := range doc.BucketList {
		if entry.Status != models.StatusReading {
			continue
		}
		activities = append(activities, Activity{
			ID:   "reading-" + entry.ID,
			Type: "reading",
			Date: entry.AddedDate,
			Book: entry.Book,
		})
	}

	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].Date.After(activities[j].Date)
	})
	if len(activities) > 20 {
		activities = activities[:20]
	}
	return activities
}

// ComputeStats derives the summary counters. "This year" is relative
// to now, which callers pass in so the result is reproducible.
func ComputeStats(doc models.LibraryDoc, now time.Time) ReadingStats {
	stats := ReadingStats{
		TotalBooks: len(doc.ReadingHistory),
	}
	for _, entry := range doc.ReadingHistory {
		if entry.CompletedDate.Year() == now.Year() {
			stats.ThisYearBooks++
		}
	}
	for _, entry := range doc.BucketList {
		switch entry.Status {
		case models.StatusReading:
			stats.CurrentlyReading++
		case models.StatusPlanned:
			stats.WantToRead++
		}
	}
	return stats
}

// YearlyBreakdown groups completions by year, newest year first. The
// busiest year always renders at 100%.
func YearlyBreakdown(doc models.LibraryDoc) []YearCount {
	counts := make(map[int]int)
	for _, entry := range doc.ReadingHistory {
		counts[entry.CompletedDate.Year()]++
	}
	if len(counts) == 0 {
		return nil
	}

	max := 0
	for _, count := range counts {
		if count > max {
			max = count
		}
	}

	breakdown := make([]YearCount, 0, len(counts))
	for year, count := range counts {
		breakdown = append(breakdown, YearCount{
			Year:     year,
			Count:    count,
			BarWidth: float64(count) / float64(max) * 100,
		})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		return breakdown[i].Year > breakdown[j].Year
	})
	return breakdown
}

// ReviewsView joins each review to its book, looking in the bucket
// list first and then in history. Reviews whose book is in neither are
// silently dropped, not an error.
func ReviewsView(doc models.LibraryDoc) []ReviewedBook {
	reviews := sortedReviews(doc)
	out := make([]ReviewedBook, 0, len(reviews))
	for _, review := range reviews {
		book, ok := findBook(doc, review.BookID)
		if !ok {
			continue
		}
		out = append(out, ReviewedBook{Review: review, Book: book})
	}
	return out
}

// FilterHistory returns history entries matching a completion year
// (0 = any) and a category ("" = any).
func FilterHistory(doc models.LibraryDoc, year int, category string) []models.HistoryEntry {
	out := make([]models.HistoryEntry, 0, len(doc.ReadingHistory))
	for _, entry := range doc.ReadingHistory {
		if year != 0 && entry.Year != year {
			continue
		}
		if category != "" && !hasCategory(entry.Categories, category) {
			continue
		}
		out = append(out, entry)
	}
	return out
}

// HistoryYears lists the distinct completion years, newest first.
func HistoryYears(doc models.LibraryDoc) []int {
	seen := make(map[int]bool)
	var years []int
	for _, entry := range doc.ReadingHistory {
		if !seen[entry.Year] {
			seen[entry.Year] = true
			years = append(years, entry.Year)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// HistoryCategories lists up to 10 distinct categories seen in the
// history, in first-seen order.
func HistoryCategories(doc models.LibraryDoc) []string {
	seen := make(map[string]bool)
	var categories []string
	for _, entry := range doc.ReadingHistory {
		for _, category := range entry.Categories {
			if seen[category] {
				continue
			}
			seen[category] = true
			categories = append(categories, category)
			if len(categories) == 10 {
				return categories
			}
		}
	}
	return categories
}

// lastReviews returns the n most recently created reviews, oldest of
// those first.
func lastReviews(doc models.LibraryDoc, n int) []models.Review {
	reviews := sortedReviews(doc)
	if len(reviews) > n {
		reviews = reviews[len(reviews)-n:]
	}
	return reviews
}

// sortedReviews flattens the review map into creation order.
func sortedReviews(doc models.LibraryDoc) []models.Review {
	reviews := make([]models.Review, 0, len(doc.Reviews))
	for _, review := range doc.Reviews {
		reviews = append(reviews, review)
	}
	sort.Slice(reviews, func(i, j int) bool {
		return reviews[i].CreatedDate.Before(reviews[j].CreatedDate)
	})
	return reviews
}

// findBook resolves a book id against the bucket list, then history.
func findBook(doc models.LibraryDoc, bookID string) (models.Book, bool) {
	if entry, ok := bucketEntry(doc, bookID); ok {
		return entry.Book, true
	}
	for _, entry := range doc.ReadingHistory {
		if entry.ID == bookID {
			return entry.Book, true
		}
	}
	return models.Book{}, false
}

func hasCategory(categories []string, category string) bool {
	for _, c := range categories {
		if c == category {
			return true
		}
	}
	return false
}
