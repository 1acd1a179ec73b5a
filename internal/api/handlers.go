package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bookflix/bookflix/internal/catalog"
	"github.com/bookflix/bookflix/internal/models"
	"github.com/bookflix/bookflix/internal/storage"
	"github.com/bookflix/bookflix/internal/store"
)

// Catalog is the slice of the catalog client the handlers use.
type Catalog interface {
	Search(ctx context.Context, query string, maxResults, startIndex int) (catalog.SearchResult, error)
	GetByID(ctx context.Context, id string) (*models.Book, error)
	SearchByCategory(ctx context.Context, category string, maxResults int) (catalog.SearchResult, error)
	SearchByMood(ctx context.Context, mood string, maxResults int) (catalog.SearchResult, error)
	SearchByPublisher(ctx context.Context, publisher string, maxResults int) (catalog.SearchResult, error)
}

// Handler contains all HTTP handlers
type Handler struct {
	catalog Catalog
	shelves *catalog.Assembler
	store   *store.Store
	db      storage.Backend
}

// NewHandler creates a new handler instance
func NewHandler(cat Catalog, st *store.Store, db storage.Backend) *Handler {
	return &Handler{
		catalog: cat,
		shelves: catalog.NewAssembler(cat),
		store:   st,
		db:      db,
	}
}

// HealthCheck reports server liveness
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// SearchBooks runs a free-text catalog search. Catalog failures
// degrade to an empty result set, never an error response.
func (h *Handler) SearchBooks(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter q is required"})
		return
	}

	maxResults := intQuery(c, "maxResults", 20)
	startIndex := intQuery(c, "startIndex", 0)

	result, err := h.catalog.Search(c.Request.Context(), query, maxResults, startIndex)
	if err != nil {
		log.Printf("catalog search %q failed: %v", query, err)
		c.JSON(http.StatusOK, catalog.SearchResult{Books: []models.Book{}})
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetBook fetches a single catalog book. This is the one catalog
// failure surfaced to the client as an explicit not-found state.
func (h *Handler) GetBook(c *gin.Context) {
	id := c.Param("id")

	book, err := h.catalog.GetByID(c.Request.Context(), id)
	if err != nil {
		if !errors.Is(err, catalog.ErrNotFound) {
			log.Printf("catalog lookup %q failed: %v", id, err)
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		return
	}
	c.JSON(http.StatusOK, book)
}

// GetBooksByCategory returns the category shelf: curated picks first,
// then supplementary search results de-duplicated against them.
func (h *Handler) GetBooksByCategory(c *gin.Context) {
	key := c.Param("category")
	ctx := c.Request.Context()

	curated := h.shelves.CuratedByCategory(ctx, key)

	supplementary, err := h.catalog.SearchByCategory(ctx, key, 20)
	if err != nil {
		log.Printf("category search %q failed: %v", key, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"category": key,
		"books":    catalog.MergeUnique(curated, supplementary.Books),
	})
}

// GetTrendingBooks returns the trending shelf.
func (h *Handler) GetTrendingBooks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"books": h.shelves.Trending(c.Request.Context()),
	})
}

// GetBooksByMood searches the catalog for a mood-flavored shelf.
func (h *Handler) GetBooksByMood(c *gin.Context) {
	mood := c.Param("mood")

	result, err := h.catalog.SearchByMood(c.Request.Context(), mood, 12)
	if err != nil {
		log.Printf("mood search %q failed: %v", mood, err)
		result = catalog.SearchResult{Books: []models.Book{}}
	}
	c.JSON(http.StatusOK, gin.H{
		"mood":  mood,
		"books": result.Books,
	})
}

// GetComicsByPublisher returns the publisher shelf: curated comics
// first, then supplementary search results.
func (h *Handler) GetComicsByPublisher(c *gin.Context) {
	key := c.Param("publisher")
	ctx := c.Request.Context()

	curated := h.shelves.CuratedByPublisher(ctx, key)

	supplementary, err := h.catalog.SearchByPublisher(ctx, key, 15)
	if err != nil {
		log.Printf("publisher search %q failed: %v", key, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"publisher": key,
		"books":     catalog.MergeUnique(curated, supplementary.Books),
	})
}

// GetSuperheroComics returns the superhero shelf.
func (h *Handler) GetSuperheroComics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"books": h.shelves.SuperheroComics(c.Request.Context()),
	})
}

func intQuery(c *gin.Context, name string, fallback int) int {
	value, err := strconv.Atoi(c.DefaultQuery(name, strconv.Itoa(fallback)))
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
