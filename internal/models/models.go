package models

import "time"

// Reading status for a bucket-list entry
const (
	StatusPlanned   = "planned"
	StatusReading   = "reading"
	StatusCompleted = "completed"
)

// Statuses lists every valid reading status.
var Statuses = []string{StatusPlanned, StatusReading, StatusCompleted}

// MoodTags is the fixed vocabulary a review may pick from.
var MoodTags = []string{
	"emotional", "dark", "hopeful", "adventurous",
	"romantic", "mysterious", "inspiring", "thrilling",
}

// ValidStatus reports whether s is a known reading status.
func ValidStatus(s string) bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// ValidMoodTag reports whether tag is in the mood vocabulary.
func ValidMoodTag(tag string) bool {
	for _, v := range MoodTags {
		if tag == v {
			return true
		}
	}
	return false
}

// User represents a registered user
type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	FavoriteGenres []string  `json:"favoriteGenres"`
	Avatar         string    `json:"avatar"`
	PasswordHash   string    `json:"-"`
	JoinDate       time.Time `json:"joinDate"`
}

// ImageLinks holds cover URLs by size. Any slot may be empty when the
// catalog had no image at that size and no fallback applied.
type ImageLinks struct {
	Thumbnail  string `json:"thumbnail"`
	Small      string `json:"small"`
	Medium     string `json:"medium"`
	Large      string `json:"large"`
	ExtraLarge string `json:"extraLarge"`
}

// Book is the canonical catalog record. Immutable once fetched; every
// field is defaulted by the normalizer so downstream code never checks
// for missing data.
type Book struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Authors       []string   `json:"authors"`
	Description   string     `json:"description"`
	PublishedDate string     `json:"publishedDate"`
	PageCount     int        `json:"pageCount"`
	Categories    []string   `json:"categories"`
	AverageRating float64    `json:"averageRating"`
	RatingsCount  int        `json:"ratingsCount"`
	ImageLinks    ImageLinks `json:"imageLinks"`
	Language      string     `json:"language"`
	Publisher     string     `json:"publisher"`
	ISBN          string     `json:"isbn"`
	PreviewLink   string     `json:"previewLink"`
	InfoLink      string     `json:"infoLink"`
	BuyLink       string     `json:"buyLink"`
	Price         string     `json:"price"`
}

// BucketEntry is a book on a user's bucket list. AddedDate is set at
// insertion and never changes; only Status mutates afterwards.
type BucketEntry struct {
	Book
	Status    string    `json:"status"`
	AddedDate time.Time `json:"addedDate"`
}

// HistoryEntry is a snapshot of a book at completion time. Append-only;
// a book completed twice appears twice, so the display identity is
// (book id, completed date) rather than book id alone.
type HistoryEntry struct {
	Book
	CompletedDate time.Time `json:"completedDate"`
	Year          int       `json:"year"`
}

// Review is a user's star rating and notes for one book. At most one
// per (user, book); resubmitting replaces the stored review.
// Recommendation is a pointer so "not answered" is distinguishable from
// an explicit thumbs-down.
type Review struct {
	ID             string    `json:"id"`
	BookID         string    `json:"bookId"`
	UserID         string    `json:"userId"`
	Rating         int       `json:"rating"`
	ReviewText     string    `json:"reviewText,omitempty"`
	MoodTags       []string  `json:"moodTags,omitempty"`
	ReadingDate    time.Time `json:"readingDate"`
	PersonalNotes  string    `json:"personalNotes,omitempty"`
	Recommendation *bool     `json:"recommendation,omitempty"`
	CreatedDate    time.Time `json:"createdDate"`
}

// LibraryDoc is the per-user document the store persists as a unit:
// bucket list, reading history, and reviews keyed by book id.
type LibraryDoc struct {
	BucketList     []BucketEntry     `json:"bucketList"`
	ReadingHistory []HistoryEntry    `json:"readingHistory"`
	Reviews        map[string]Review `json:"reviews"`
}

// Clone returns a deep-enough copy: slices and the review map are
// fresh, so callers can hand snapshots out without racing the store.
func (d LibraryDoc) Clone() LibraryDoc {
	out := LibraryDoc{
		BucketList:     make([]BucketEntry, len(d.BucketList)),
		ReadingHistory: make([]HistoryEntry, len(d.ReadingHistory)),
		Reviews:        make(map[string]Review, len(d.Reviews)),
	}
	copy(out.BucketList, d.BucketList)
	copy(out.ReadingHistory, d.ReadingHistory)
	for k, v := range d.Reviews {
		out.Reviews[k] = v
	}
	return out
}
