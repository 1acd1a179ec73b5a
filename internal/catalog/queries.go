package catalog

import "context"

// Search query templates per browse category. Comics and manga are
// excluded from prose categories so the shelves stay coherent.
var categoryQueries = map[string]string{
	"fiction":         `subject:fiction -subject:comics -subject:manga`,
	"mystery":         `subject:mystery OR subject:detective -subject:comics`,
	"romance":         `subject:romance OR subject:"love story" -subject:comics`,
	"science-fiction": `subject:"science fiction" OR subject:sci-fi -subject:comics`,
	"fantasy":         `subject:fantasy -subject:comics -subject:manga`,
	"thriller":        `subject:thriller OR subject:suspense -subject:comics`,
	"historical":      `subject:"historical fiction" OR subject:history -subject:comics`,
	"adventure":       `subject:adventure OR subject:action -subject:comics -subject:manga`,
	"biography":       `subject:biography OR subject:memoir`,
	"self-help":       `subject:"self help" OR subject:"personal development"`,
	"business":        `subject:business OR subject:economics`,
	"health":          `subject:health OR subject:fitness OR subject:wellness`,
	"cooking":         `subject:cooking OR subject:recipes OR subject:food`,
	"travel":          `subject:travel OR subject:guide`,
	"comics":          `subject:comics OR subject:"graphic novel"`,
	"manga":           `subject:manga OR subject:"japanese comics"`,
	"superhero":       `subject:superhero OR subject:"comic book" OR subject:"super hero"`,
}

var moodQueries = map[string]string{
	"emotional":   `emotional OR heartwarming OR touching -subject:comics`,
	"dark":        `dark OR thriller OR mystery -subject:comics`,
	"hopeful":     `inspirational OR uplifting OR hope -subject:comics`,
	"adventurous": `adventure OR action OR journey -subject:comics`,
	"romantic":    `romance OR "love story" -subject:comics`,
	"mysterious":  `mystery OR detective OR suspense -subject:comics`,
}

var publisherQueries = map[string]string{
	"marvel":     `marvel comics OR marvel universe OR spider-man OR avengers OR x-men`,
	"dc":         `dc comics OR batman OR superman OR wonder woman OR justice league`,
	"dark-horse": `dark horse comics OR hellboy OR sin city`,
	"image":      `image comics OR walking dead OR saga comic`,
	"manga":      `manga OR "japanese comics" OR naruto OR "one piece" OR "attack on titan"`,
}

// SearchByCategory runs the canned query for a browse category, or a
// plain subject search for unknown keys.
func (c *Client) SearchByCategory(ctx context.Context, category string, maxResults int) (SearchResult, error) {
	query, ok := categoryQueries[category]
	if !ok {
		query = "subject:" + category
	}
	return c.Search(ctx, query, maxResults, 0)
}

// SearchByMood runs the canned query for a mood, or the mood itself for
// unknown keys.
func (c *Client) SearchByMood(ctx context.Context, mood string, maxResults int) (SearchResult, error) {
	query, ok := moodQueries[mood]
	if !ok {
		query = mood
	}
	return c.Search(ctx, query, maxResults, 0)
}

// SearchByPublisher runs the canned comics query for a publisher.
func (c *Client) SearchByPublisher(ctx context.Context, publisher string, maxResults int) (SearchResult, error) {
	query, ok := publisherQueries[publisher]
	if !ok {
		query = publisher + " comics"
	}
	return c.Search(ctx, query, maxResults, 0)
}
