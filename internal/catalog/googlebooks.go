package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/bookflix/bookflix/internal/models"
)

// Common errors
var (
	ErrNotFound    = errors.New("book not found")
	ErrRateLimited = errors.New("rate limited by catalog")
)

// SearchResult is one page of catalog search results.
type SearchResult struct {
	Books      []models.Book `json:"books"`
	TotalItems int           `json:"totalItems"`
}

// Client talks to the Google Books volumes API. It is the only path to
// catalog data; callers treat it as unreliable and degrade to empty
// results rather than surfacing transport errors.
type Client struct {
	client  *http.Client
	baseURL string
	limiter *RateLimiter
}

// NewClient creates a Google Books client.
func NewClient() *Client {
	return &Client{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: "https://www.googleapis.com/books/v1/volumes",
		limiter: NewRateLimiter(200 * time.Millisecond),
	}
}

// gbVolume is a raw volume as returned by the API. Any field may be
// missing; the normalizer defaults them all.
type gbVolume struct {
	ID         string        `json:"id"`
	VolumeInfo *gbVolumeInfo `json:"volumeInfo"`
	SaleInfo   *gbSaleInfo   `json:"saleInfo"`
}

type gbVolumeInfo struct {
	Title               string            `json:"title"`
	Authors             []string          `json:"authors"`
	Description         string            `json:"description"`
	PublishedDate       string            `json:"publishedDate"`
	PageCount           int               `json:"pageCount"`
	Categories          []string          `json:"categories"`
	AverageRating       float64           `json:"averageRating"`
	RatingsCount        int               `json:"ratingsCount"`
	ImageLinks          map[string]string `json:"imageLinks"`
	Language            string            `json:"language"`
	Publisher           string            `json:"publisher"`
	IndustryIdentifiers []gbIdentifier    `json:"industryIdentifiers"`
	PreviewLink         string            `json:"previewLink"`
	InfoLink            string            `json:"infoLink"`
}

type gbIdentifier struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

type gbSaleInfo struct {
	BuyLink   string       `json:"buyLink"`
	ListPrice *gbListPrice `json:"listPrice"`
}

type gbListPrice struct {
	Amount       float64 `json:"amount"`
	CurrencyCode string  `json:"currencyCode"`
}

type gbSearchResponse struct {
	TotalItems int        `json:"totalItems"`
	Items      []gbVolume `json:"items"`
}

// Search runs a free-text query against the catalog.
func (c *Client) Search(ctx context.Context, query string, maxResults, startIndex int) (SearchResult, error) {
	c.limiter.Wait()

	if maxResults <= 0 {
		maxResults = 20
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("startIndex", strconv.Itoa(startIndex))
	params.Set("printType", "books")
	params.Set("orderBy", "relevance")

	searchURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, "GET", searchURL, nil)
	if err != nil {
		return SearchResult{}, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return SearchResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == 429 {
		return SearchResult{}, ErrRateLimited
	}
	if resp.StatusCode != 200 {
		return SearchResult{}, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var data gbSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return SearchResult{}, err
	}

	result := SearchResult{
		Books:      make([]models.Book, 0, len(data.Items)),
		TotalItems: data.TotalItems,
	}
	for _, item := range data.Items {
		result.Books = append(result.Books, FormatVolume(item))
	}
	return result, nil
}

// GetByID fetches a single volume. A missing volume is the one catalog
// failure surfaced to callers as an explicit not-found state.
func (c *Client) GetByID(ctx context.Context, id string) (*models.Book, error) {
	c.limiter.Wait()

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == 404 {
		return nil, ErrNotFound
	}
	if resp.StatusCode == 429 {
		return nil, ErrRateLimited
	}
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var item gbVolume
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		return nil, err
	}

	book := FormatVolume(item)
	return &book, nil
}
