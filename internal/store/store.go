package store

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bookflix/bookflix/internal/models"
	"github.com/bookflix/bookflix/internal/storage"
)

// Store owns the authoritative per-user reading collections. Mutations
// apply to the in-memory copy synchronously and persist in the
// background; the in-memory copy stays the source of truth even when a
// write fails (the failure is logged, never rolled back).
type Store struct {
	mu        sync.Mutex
	backend   storage.Backend
	docs      map[string]models.LibraryDoc
	watchers  map[string]map[int]chan models.LibraryDoc
	nextWatch int

	now func() time.Time
}

// Result reports the two observable outcomes of a mutation: whether it
// applied locally, and (asynchronously) whether it persisted. Persisted
// receives exactly one value when Applied is true and is nil otherwise.
type Result struct {
	Applied   bool
	Persisted <-chan error
}

// ReviewInput carries the caller-supplied fields of a review.
type ReviewInput struct {
	Rating         int
	ReviewText     string
	MoodTags       []string
	ReadingDate    time.Time
	PersonalNotes  string
	Recommendation *bool
}

// New creates a store over the given persistence backend.
func New(backend storage.Backend) *Store {
	return &Store{
		backend:  backend,
		docs:     make(map[string]models.LibraryDoc),
		watchers: make(map[string]map[int]chan models.LibraryDoc),
		now:      time.Now,
	}
}

// docLocked returns the live document for a user, loading it from the
// backend on first touch. A failed load starts the user empty; the next
// successful mutation re-persists the full document anyway.
func (s *Store) docLocked(userID string) models.LibraryDoc {
	if doc, ok := s.docs[userID]; ok {
		return doc
	}
	doc, err := s.backend.GetLibrary(userID)
	if err != nil {
		log.Printf("loading library for user %s: %v", userID, err)
		doc = models.LibraryDoc{Reviews: map[string]models.Review{}}
	}
	if doc.Reviews == nil {
		doc.Reviews = map[string]models.Review{}
	}
	s.docs[userID] = doc
	return doc
}

// commitLocked stores the updated document, notifies watchers, and
// kicks off the persistence write.
func (s *Store) commitLocked(userID string, doc models.LibraryDoc) Result {
	s.docs[userID] = doc

	snapshot := doc.Clone()
	for _, ch := range s.watchers[userID] {
		select {
		case ch <- snapshot:
		default:
			// slow watcher, drop the update
		}
	}

	persisted := make(chan error, 1)
	go func() {
		err := s.backend.SaveLibrary(userID, snapshot)
		if err != nil {
			log.Printf("persisting library for user %s: %v", userID, err)
		}
		persisted <- err
	}()

	return Result{Applied: true, Persisted: persisted}
}

// AddToBucketList inserts a book with the given status (planned when
// empty). Adding a book already on the list is an idempotent no-op; the
// store, not the caller, is authoritative about duplicates.
func (s *Store) AddToBucketList(userID string, book models.Book, status string) Result {
	if userID == "" {
		return Result{}
	}
	if status == "" {
		status = models.StatusPlanned
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.docLocked(userID)
	for _, entry := range doc.BucketList {
		if entry.ID == book.ID {
			return Result{}
		}
	}

	doc.BucketList = append(doc.BucketList, models.BucketEntry{
		Book:      book,
		Status:    status,
		AddedDate: s.now(),
	})
	return s.commitLocked(userID, doc)
}

// UpdateBookStatus replaces the status of a bucket entry. Every
// transition into completed appends a fresh history entry, including a
// repeated completed -> completed, which is how re-reads are recorded.
func (s *Store) UpdateBookStatus(userID, bookID, newStatus string) Result {
	if userID == "" {
		return Result{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.docLocked(userID)
	idx := -1
	for i, entry := range doc.BucketList {
		if entry.ID == bookID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Result{}
	}

	updated := make([]models.BucketEntry, len(doc.BucketList))
	copy(updated, doc.BucketList)
	updated[idx].Status = newStatus
	doc.BucketList = updated

	if newStatus == models.StatusCompleted {
		now := s.now()
		doc.ReadingHistory = append(doc.ReadingHistory, models.HistoryEntry{
			Book:          updated[idx].Book,
			CompletedDate: now,
			Year:          now.Year(),
		})
	}
	return s.commitLocked(userID, doc)
}

// AddReview stores a review keyed by book id, replacing any prior
// review for that book. When the book has no history entry yet, the
// review answers the recommendation question, and the book is on the
// bucket list, a history entry is back-filled with the reading date as
// completion date.
func (s *Store) AddReview(userID, bookID string, input ReviewInput) Result {
	if userID == "" {
		return Result{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	readingDate := input.ReadingDate
	if readingDate.IsZero() {
		readingDate = now
	}

	doc := s.docLocked(userID)
	reviews := make(map[string]models.Review, len(doc.Reviews)+1)
	for k, v := range doc.Reviews {
		reviews[k] = v
	}
	reviews[bookID] = models.Review{
		ID:             uuid.New().String(),
		BookID:         bookID,
		UserID:         userID,
		Rating:         input.Rating,
		ReviewText:     input.ReviewText,
		MoodTags:       input.MoodTags,
		ReadingDate:    readingDate,
		PersonalNotes:  input.PersonalNotes,
		Recommendation: input.Recommendation,
		CreatedDate:    now,
	}
	doc.Reviews = reviews

	if input.Recommendation != nil && !inHistory(doc, bookID) {
		if entry, ok := bucketEntry(doc, bookID); ok {
			doc.ReadingHistory = append(doc.ReadingHistory, models.HistoryEntry{
				Book:          entry.Book,
				CompletedDate: readingDate,
				Year:          readingDate.Year(),
			})
		}
	}
	return s.commitLocked(userID, doc)
}

// RemoveFromBucketList deletes a bucket entry. History and reviews are
// untouched.
func (s *Store) RemoveFromBucketList(userID, bookID string) Result {
	if userID == "" {
		return Result{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.docLocked(userID)
	filtered := make([]models.BucketEntry, 0, len(doc.BucketList))
	for _, entry := range doc.BucketList {
		if entry.ID != bookID {
			filtered = append(filtered, entry)
		}
	}
	if len(filtered) == len(doc.BucketList) {
		return Result{}
	}
	doc.BucketList = filtered
	return s.commitLocked(userID, doc)
}

// IsInBucketList reports whether the book is on the user's list.
func (s *Store) IsInBucketList(userID, bookID string) bool {
	if userID == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := bucketEntry(s.docLocked(userID), bookID)
	return ok
}

// GetBookStatus returns the reading status of a bucket entry, or empty
// when the book is not on the list.
func (s *Store) GetBookStatus(userID, bookID string) string {
	if userID == "" {
		return ""
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := bucketEntry(s.docLocked(userID), bookID); ok {
		return entry.Status
	}
	return ""
}

// GetBookReview returns the user's review for a book, or nil.
func (s *Store) GetBookReview(userID, bookID string) *models.Review {
	if userID == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if review, ok := s.docLocked(userID).Reviews[bookID]; ok {
		return &review
	}
	return nil
}

// Library returns a snapshot of the user's full document.
func (s *Store) Library(userID string) models.LibraryDoc {
	if userID == "" {
		return models.LibraryDoc{Reviews: map[string]models.Review{}}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.docLocked(userID).Clone()
}

// Watch returns a channel that receives a library snapshot after every
// applied mutation for the user, and a cancel function that must be
// called when the subscriber goes away.
func (s *Store) Watch(userID string) (<-chan models.LibraryDoc, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.watchers[userID] == nil {
		s.watchers[userID] = make(map[int]chan models.LibraryDoc)
	}
	id := s.nextWatch
	s.nextWatch++

	ch := make(chan models.LibraryDoc, 8)
	s.watchers[userID][id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if watchers, ok := s.watchers[userID]; ok {
			delete(watchers, id)
		}
	}
	return ch, cancel
}

func bucketEntry(doc models.LibraryDoc, bookID string) (models.BucketEntry, bool) {
	for _, entry := range doc.BucketList {
		if entry.ID == bookID {
			return entry, true
		}
	}
	return models.BucketEntry{}, false
}

func inHistory(doc models.LibraryDoc, bookID string) bool {
	for _, entry := range doc.ReadingHistory {
		if entry.ID == bookID {
			return true
		}
	}
	return false
}
