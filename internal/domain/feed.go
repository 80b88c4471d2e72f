package domain

import (
	"regexp"
	"time"
)

// FeedName identifies one of the site's named content feeds.
type FeedName string

const (
	FeedBoard          FeedName = "board"
	FeedDirectors      FeedName = "directors"
	FeedNewsletters    FeedName = "newsletters"
	FeedProjects       FeedName = "projects"
	FeedPastPresidents FeedName = "past-presidents"
)

var feedNamePattern = regexp.MustCompile(`[^a-z-]`)

// allowedFeeds is the closed enumeration of resolvable feed names.
var allowedFeeds = map[FeedName]bool{
	FeedBoard:          true,
	FeedDirectors:      true,
	FeedNewsletters:    true,
	FeedProjects:       true,
	FeedPastPresidents: true,
}

// ParseFeedName strips characters outside [a-z-] from the raw value and
// checks the result against the closed enumeration. Any other value is
// invalid input, not a feed.
func ParseFeedName(raw string) (FeedName, error) {
	name := FeedName(feedNamePattern.ReplaceAllString(raw, ""))
	if !allowedFeeds[name] {
		return "", ErrInvalidFeedName
	}
	return name, nil
}

// Key returns the object key under which the feed document is stored.
func (n FeedName) Key() string {
	return string(n) + ".json"
}

// FeedItem is a single entry of a content feed. Dynamic items carry a
// Source tag and an upstream timestamp; static items usually carry a
// human-entered date instead.
type FeedItem struct {
	Title     string   `json:"title"`
	Summary   string   `json:"summary,omitempty"`
	Image     string   `json:"image,omitempty"`
	Images    []string `json:"images,omitempty"`
	Permalink string   `json:"permalink,omitempty"`
	Timestamp string   `json:"timestamp,omitempty"`
	Date      string   `json:"date,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	Source    string   `json:"source,omitempty"`
}

// Time parses the item's timestamp. Missing or unparseable timestamps
// sort as epoch zero, i.e. last among dynamic items.
func (i FeedItem) Time() time.Time {
	ts := i.Timestamp
	if ts == "" {
		ts = i.Date
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05-0700", "2006-01-02"} {
		if t, err := time.Parse(layout, ts); err == nil {
			return t
		}
	}
	return time.Time{}
}

// SocialCache is the persisted snapshot of the dynamic feed.
type SocialCache struct {
	UpdatedAt *string    `json:"updatedAt"`
	Items     []FeedItem `json:"items"`
}

// EmptySocialCache returns the shape served when no cache exists or a
// read fails: null updatedAt and an empty item list.
func EmptySocialCache() SocialCache {
	return SocialCache{UpdatedAt: nil, Items: []FeedItem{}}
}
