package catalog

import (
	"context"
	"log"

	"github.com/bookflix/bookflix/internal/models"
)

// Curated seed queries: hand-picked searches that resolve to well-known
// titles with reliable cover art. Domain data, not logic.
var curatedBookSeeds = map[string][]string{
	"horror": {
		"Dracula Bram Stoker",
		"The Shining Stephen King",
		"It Stephen King",
		"The Haunting of Hill House Shirley Jackson",
		"Bird Box Josh Malerman",
	},
	"fiction": {
		"The Alchemist Paulo Coelho",
		"To Kill a Mockingbird Harper Lee",
		"The Kite Runner Khaled Hosseini",
		"Life of Pi Yann Martel",
		"The Old Man and the Sea Ernest Hemingway",
	},
	"mystery": {
		"Sherlock Holmes Hound of the Baskervilles Arthur Conan Doyle",
		"The Girl with the Dragon Tattoo Stieg Larsson",
		"Gone Girl Gillian Flynn",
		"The Da Vinci Code Dan Brown",
		"Murder on the Orient Express Agatha Christie",
	},
	"romance": {
		"Pride and Prejudice Jane Austen",
		"Me Before You Jojo Moyes",
		"The Notebook Nicholas Sparks",
		"It Ends With Us Colleen Hoover",
		"Love & Other Words Christina Lauren",
	},
	"science-fiction": {
		"Dune Frank Herbert",
		"1984 George Orwell",
		"The Martian Andy Weir",
		"Enders Game Orson Scott Card",
		"Neuromancer William Gibson",
	},
	"fantasy": {
		"Harry Potter Sorcerers Stone J.K. Rowling",
		"The Lord of the Rings J.R.R. Tolkien",
		"A Song of Ice and Fire George R.R. Martin",
		"The Hobbit J.R.R. Tolkien",
		"The Name of the Wind Patrick Rothfuss",
	},
	"thriller": {
		"The Silent Patient Alex Michaelides",
		"The Girl on the Train Paula Hawkins",
		"Shutter Island Dennis Lehane",
		"The Bourne Identity Robert Ludlum",
		"The Da Vinci Code Dan Brown",
	},
	"historical": {
		"The Book Thief Markus Zusak",
		"War and Peace Leo Tolstoy",
		"All the Light We Cannot See Anthony Doerr",
		"The Pillars of the Earth Ken Follett",
		"The Nightingale Kristin Hannah",
	},
	"adventure": {
		"Treasure Island Robert Louis Stevenson",
		"The Call of the Wild Jack London",
		"Robinson Crusoe Daniel Defoe",
		"Life of Pi Yann Martel",
		"Into the Wild Jon Krakauer",
	},
	"comics": {
		"Watchmen Alan Moore",
		"Batman The Killing Joke Alan Moore",
		"Spider-Man Blue Jeph Loeb",
		"Sandman Neil Gaiman",
		"Maus Art Spiegelman",
	},
}

var curatedComicSeeds = map[string][]string{
	"marvel": {
		"Amazing Spider-Man Marvel",
		"Avengers Marvel Comics",
		"X-Men Marvel Comics",
		"Iron Man Marvel Comics",
		"Captain America Marvel",
		"Thor Marvel Comics",
		"Guardians of the Galaxy Marvel",
		"Black Panther Marvel",
	},
	"dc": {
		"Batman DC Comics",
		"Superman DC Comics",
		"Wonder Woman DC Comics",
		"Justice League DC",
		"The Flash DC Comics",
		"Green Lantern DC Comics",
		"Aquaman DC Comics",
		"Harley Quinn DC",
	},
	"manga": {
		"Naruto manga",
		"One Piece manga",
		"Attack on Titan manga",
		"Dragon Ball manga",
		"Death Note manga",
		"My Hero Academia manga",
		"Demon Slayer manga",
		"One Punch Man manga",
	},
	"superhero": {
		"Watchmen Alan Moore",
		"Batman The Killing Joke Alan Moore",
		"Spider-Man Blue Jeph Loeb",
		"Sandman Neil Gaiman",
		"Maus Art Spiegelman",
		"Spider-Man comic",
		"Batman comic",
		"Superman comic",
	},
}

var trendingQueries = []string{
	"bestseller 2024 -subject:comics",
	"popular fiction 2024",
	"award winning books 2024",
	"new releases fiction",
	"bestselling novels",
}

var superheroQueries = []string{
	"batman comics",
	"superman comics",
	"spider-man comics",
	"avengers comics",
	"justice league comics",
	"x-men comics",
}

// Searcher is the slice of the catalog client the assembler needs.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults, startIndex int) (SearchResult, error)
}

// Assembler builds curated shelves by resolving seed queries one at a
// time. A bad seed never fails the shelf; it is skipped and logged.
type Assembler struct {
	searcher Searcher
}

// NewAssembler creates an assembler over the given catalog searcher.
func NewAssembler(searcher Searcher) *Assembler {
	return &Assembler{searcher: searcher}
}

// CuratedByCategory resolves the curated seed list for a category.
// Unknown categories yield an empty shelf.
func (a *Assembler) CuratedByCategory(ctx context.Context, category string) []models.Book {
	return a.assemble(ctx, curatedBookSeeds[category])
}

// CuratedByPublisher resolves the curated comic seed list for a publisher.
func (a *Assembler) CuratedByPublisher(ctx context.Context, publisher string) []models.Book {
	return a.assemble(ctx, curatedComicSeeds[publisher])
}

// assemble resolves each seed to at most one book, preserving seed
// order. Output length is at most len(seeds), fewer when seeds resolve
// to nothing.
func (a *Assembler) assemble(ctx context.Context, seeds []string) []models.Book {
	books := make([]models.Book, 0, len(seeds))
	for _, seed := range seeds {
		result, err := a.searcher.Search(ctx, seed, 1, 0)
		if err != nil {
			log.Printf("curated seed %q failed: %v", seed, err)
			continue
		}
		if len(result.Books) == 0 {
			continue
		}
		books = append(books, result.Books[0])
	}
	return books
}

// Trending assembles the trending shelf from a fixed set of popular
// queries, de-duplicated by id and capped at 20.
func (a *Assembler) Trending(ctx context.Context) []models.Book {
	var all []models.Book
	for _, query := range trendingQueries {
		result, err := a.searcher.Search(ctx, query, 4, 0)
		if err != nil {
			log.Printf("trending query %q failed: %v", query, err)
			continue
		}
		all = append(all, result.Books...)
	}

	unique := MergeUnique(nil, all)
	if len(unique) > 20 {
		unique = unique[:20]
	}
	return unique
}

// SuperheroComics assembles the superhero shelf, capped at 18.
func (a *Assembler) SuperheroComics(ctx context.Context) []models.Book {
	var all []models.Book
	for _, query := range superheroQueries {
		result, err := a.searcher.Search(ctx, query, 3, 0)
		if err != nil {
			log.Printf("superhero query %q failed: %v", query, err)
			continue
		}
		all = append(all, result.Books...)
	}

	if len(all) > 18 {
		all = all[:18]
	}
	return all
}

// MergeUnique appends supplementary books to the curated sequence,
// skipping any id already present. Curated entries keep priority and
// come first.
func MergeUnique(curated, supplementary []models.Book) []models.Book {
	merged := make([]models.Book, 0, len(curated)+len(supplementary))
	seen := make(map[string]bool, len(curated))

	for _, book := range curated {
		merged = append(merged, book)
		seen[book.ID] = true
	}
	for _, book := range supplementary {
		if seen[book.ID] {
			continue
		}
		merged = append(merged, book)
		seen[book.ID] = true
	}
	return merged
}
