package catalog

import (
	"fmt"
	"strings"

	"github.com/bookflix/bookflix/internal/models"
)

// Defaults substituted for missing catalog fields.
const (
	unknownTitle  = "Unknown Title"
	unknownAuthor = "Unknown Author"
	noDescription = "No description available"
	notForSale    = "Not for sale"
)

// FormatVolume maps a raw catalog volume onto the canonical Book shape.
// Pure function: arbitrarily sparse input yields a fully defaulted Book,
// never an error.
func FormatVolume(item gbVolume) models.Book {
	info := item.VolumeInfo
	if info == nil {
		info = &gbVolumeInfo{}
	}
	sale := item.SaleInfo
	if sale == nil {
		sale = &gbSaleInfo{}
	}

	book := models.Book{
		ID:            item.ID,
		Title:         info.Title,
		Authors:       info.Authors,
		Description:   info.Description,
		PublishedDate: info.PublishedDate,
		PageCount:     info.PageCount,
		Categories:    info.Categories,
		AverageRating: info.AverageRating,
		RatingsCount:  info.RatingsCount,
		Language:      info.Language,
		Publisher:     info.Publisher,
		PreviewLink:   info.PreviewLink,
		InfoLink:      info.InfoLink,
		BuyLink:       sale.BuyLink,
	}

	if book.Title == "" {
		book.Title = unknownTitle
	}
	if len(book.Authors) == 0 {
		book.Authors = []string{unknownAuthor}
	}
	if book.Description == "" {
		book.Description = noDescription
	}
	if book.Categories == nil {
		book.Categories = []string{}
	}
	if book.PageCount < 0 {
		book.PageCount = 0
	}
	if book.Language == "" {
		book.Language = "en"
	}
	if len(info.IndustryIdentifiers) > 0 {
		book.ISBN = info.IndustryIdentifiers[0].Identifier
	}
	if sale.ListPrice != nil {
		book.Price = fmt.Sprintf("%g %s", sale.ListPrice.Amount, sale.ListPrice.CurrencyCode)
	} else {
		book.Price = notForSale
	}

	book.ImageLinks = models.ImageLinks{
		Thumbnail:  imageURL(info.ImageLinks, "thumbnail"),
		Small:      imageURL(info.ImageLinks, "small"),
		Medium:     imageURL(info.ImageLinks, "medium"),
		Large:      imageURL(info.ImageLinks, "large"),
		ExtraLarge: imageURL(info.ImageLinks, "extraLarge"),
	}

	return book
}

// imageURL resolves a cover URL for one size tag, falling back to
// thumbnail, then smallThumbnail, then empty. Non-empty URLs get a
// best-effort cosmetic cleanup: secure scheme, no edge-curl marker,
// higher zoom. Display quality only, not a correctness contract.
func imageURL(links map[string]string, size string) string {
	if len(links) == 0 {
		return ""
	}

	u := links[size]
	if u == "" {
		u = links["thumbnail"]
	}
	if u == "" {
		u = links["smallThumbnail"]
	}
	if u == "" {
		return ""
	}

	u = strings.Replace(u, "http:", "https:", 1)
	u = strings.ReplaceAll(u, "&edge=curl", "")
	u = strings.Replace(u, "zoom=1", "zoom=2", 1)
	u = strings.Replace(u, "&source=gbs_api", "&source=gbs_api&fife=w400-h600", 1)
	return u
}
