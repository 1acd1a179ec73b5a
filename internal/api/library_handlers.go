package api

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bookflix/bookflix/internal/auth"
	"github.com/bookflix/bookflix/internal/models"
	"github.com/bookflix/bookflix/internal/store"
)

// GetLibrary returns the user's full library document
func (h *Handler) GetLibrary(c *gin.Context) {
	userID := auth.GetUserID(c)
	c.JSON(http.StatusOK, h.store.Library(userID))
}

// AddToBucketList puts a book on the user's bucket list
func (h *Handler) AddToBucketList(c *gin.Context) {
	userID := auth.GetUserID(c)

	var req struct {
		Book   models.Book `json:"book" binding:"required"`
		Status string      `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Book.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A book with an id is required"})
		return
	}
	if req.Status != "" && !models.ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status"})
		return
	}

	result := h.store.AddToBucketList(userID, req.Book, req.Status)
	if !result.Applied {
		// already on the list; adding again is a no-op
		c.JSON(http.StatusOK, gin.H{"message": "Book already in bucket list"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Book added to bucket list"})
}

// UpdateBookStatus changes the reading status of a bucket entry
func (h *Handler) UpdateBookStatus(c *gin.Context) {
	userID := auth.GetUserID(c)
	bookID := c.Param("bookId")

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status is required"})
		return
	}
	if !models.ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status"})
		return
	}

	result := h.store.UpdateBookStatus(userID, bookID, req.Status)
	if !result.Applied {
		c.JSON(http.StatusNotFound, gin.H{"error": "Book not in bucket list"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Status updated"})
}

// RemoveFromBucketList deletes a bucket entry
func (h *Handler) RemoveFromBucketList(c *gin.Context) {
	userID := auth.GetUserID(c)
	bookID := c.Param("bookId")

	result := h.store.RemoveFromBucketList(userID, bookID)
	if !result.Applied {
		c.JSON(http.StatusNotFound, gin.H{"error": "Book not in bucket list"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Book removed from bucket list"})
}

// GetBucketEntry reports membership, status, and review for one book
func (h *Handler) GetBucketEntry(c *gin.Context) {
	userID := auth.GetUserID(c)
	bookID := c.Param("bookId")

	status := h.store.GetBookStatus(userID, bookID)
	resp := gin.H{
		"inBucketList": h.store.IsInBucketList(userID, bookID),
		"status":       nil,
		"review":       nil,
	}
	if status != "" {
		resp["status"] = status
	}
	if review := h.store.GetBookReview(userID, bookID); review != nil {
		resp["review"] = review
	}
	c.JSON(http.StatusOK, resp)
}

// PutReview creates or replaces the user's review for a book
func (h *Handler) PutReview(c *gin.Context) {
	userID := auth.GetUserID(c)
	bookID := c.Param("bookId")

	var req struct {
		Rating         int      `json:"rating" binding:"required,min=1,max=5"`
		ReviewText     string   `json:"reviewText"`
		MoodTags       []string `json:"moodTags"`
		ReadingDate    string   `json:"readingDate"`
		PersonalNotes  string   `json:"personalNotes"`
		Recommendation *bool    `json:"recommendation"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A rating from 1 to 5 is required"})
		return
	}

	for _, tag := range req.MoodTags {
		if !models.ValidMoodTag(tag) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown mood tag: " + tag})
			return
		}
	}

	var readingDate time.Time
	if req.ReadingDate != "" {
		parsed, err := time.Parse("2006-01-02", req.ReadingDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "readingDate must be YYYY-MM-DD"})
			return
		}
		readingDate = parsed
	}

	result := h.store.AddReview(userID, bookID, store.ReviewInput{
		Rating:         req.Rating,
		ReviewText:     req.ReviewText,
		MoodTags:       req.MoodTags,
		ReadingDate:    readingDate,
		PersonalNotes:  req.PersonalNotes,
		Recommendation: req.Recommendation,
	})
	if !result.Applied {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review saved"})
}

// GetReviews returns the user's reviews joined to their books
func (h *Handler) GetReviews(c *gin.Context) {
	userID := auth.GetUserID(c)
	doc := h.store.Library(userID)
	c.JSON(http.StatusOK, gin.H{"reviews": store.ReviewsView(doc)})
}

// GetDiary returns the recent activity feed
func (h *Handler) GetDiary(c *gin.Context) {
	userID := auth.GetUserID(c)
	doc := h.store.Library(userID)
	c.JSON(http.StatusOK, gin.H{"activity": store.RecentActivity(doc)})
}

// GetStats returns the reading stats summary
func (h *Handler) GetStats(c *gin.Context) {
	userID := auth.GetUserID(c)
	doc := h.store.Library(userID)
	c.JSON(http.StatusOK, store.ComputeStats(doc, time.Now()))
}

// GetYearlyStats returns completions per year with bar widths
func (h *Handler) GetYearlyStats(c *gin.Context) {
	userID := auth.GetUserID(c)
	doc := h.store.Library(userID)
	c.JSON(http.StatusOK, gin.H{"years": store.YearlyBreakdown(doc)})
}

// GetHistory returns reading history, optionally filtered by year and
// category, plus the distinct filter values
func (h *Handler) GetHistory(c *gin.Context) {
	userID := auth.GetUserID(c)
	doc := h.store.Library(userID)

	year := intQuery(c, "year", 0)
	category := c.Query("category")

	c.JSON(http.StatusOK, gin.H{
		"entries":    store.FilterHistory(doc, year, category),
		"years":      store.HistoryYears(doc),
		"categories": store.HistoryCategories(doc),
	})
}

// LibraryEvents streams library snapshots over SSE: one event for the
// current state, then one per applied mutation until the client
// disconnects.
func (h *Handler) LibraryEvents(c *gin.Context) {
	userID := auth.GetUserID(c)

	updates, cancel := h.store.Watch(userID)
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	initial := h.store.Library(userID)
	writeLibraryEvent(c.Writer, initial)
	c.Writer.Flush()

	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case doc := <-updates:
			writeLibraryEvent(c.Writer, doc)
			c.Writer.Flush()
		case <-heartbeat.C:
			io.WriteString(c.Writer, ": heartbeat\n\n")
			c.Writer.Flush()
		}
	}
}

func writeLibraryEvent(w io.Writer, doc models.LibraryDoc) {
	payload, err := json.Marshal(doc)
	if err != nil {
		return
	}
	io.WriteString(w, "event: library\ndata: ")
	w.Write(payload)
	io.WriteString(w, "\n\n")
}
