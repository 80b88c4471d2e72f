package social

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/lcac-club/clubsite/internal/domain"
)

// CacheKey is the remote-store object holding the dynamic feed cache.
const CacheKey = "ig_projects.json"

// MediaFetcher fetches the current upstream posts.
type MediaFetcher interface {
	RecentTagged(ctx context.Context) ([]domain.FeedItem, error)
	Hashtag() string
}

// CacheStore persists the cache document.
type CacheStore interface {
	GetJSON(ctx context.Context, key string) (json.RawMessage, bool, error)
	PutJSON(ctx context.Context, key string, doc any) error
}

// RefreshSummary reports the outcome of one fetch-and-cache cycle. It
// is always well-formed; upstream failures set OK false and a note.
type RefreshSummary struct {
	OK      bool   `json:"ok"`
	Count   int    `json:"count"`
	Hashtag string `json:"hashtag,omitempty"`
	Note    string `json:"note,omitempty"`
}

// Service runs the fetch-and-cache cycle and serves the cached feed.
// Either collaborator may be nil when not configured; every failure
// degrades to a valid result.
type Service struct {
	fetcher MediaFetcher
	store   CacheStore
	now     func() time.Time
}

func NewService(fetcher MediaFetcher, store CacheStore) *Service {
	return &Service{fetcher: fetcher, store: store, now: time.Now}
}

// Refresh fetches the latest tagged posts and overwrites the cache
// document. It never returns an error: missing credentials, upstream
// failures and store failures all come back as a summary with OK false.
func (s *Service) Refresh(ctx context.Context) RefreshSummary {
	if s.fetcher == nil {
		log.Println("social: missing Instagram credentials; skipping refresh")
		return RefreshSummary{OK: false, Note: "missing Instagram credentials; skipping"}
	}

	items, err := s.fetcher.RecentTagged(ctx)
	if err != nil {
		log.Printf("social: fetch failed: %v", err)
		return RefreshSummary{OK: false, Hashtag: s.fetcher.Hashtag(), Note: "fetch failed (logged)"}
	}

	if s.store == nil {
		log.Println("social: remote store not configured; skipping cache write")
		return RefreshSummary{OK: false, Count: len(items), Hashtag: s.fetcher.Hashtag(), Note: "store unavailable; skipping cache"}
	}

	updatedAt := s.now().UTC().Format(time.RFC3339)
	cache := domain.SocialCache{UpdatedAt: &updatedAt, Items: items}
	if err := s.store.PutJSON(ctx, CacheKey, cache); err != nil {
		log.Printf("social: cache write failed: %v", err)
		return RefreshSummary{OK: false, Count: len(items), Hashtag: s.fetcher.Hashtag(), Note: "cache write failed (logged)"}
	}

	return RefreshSummary{OK: true, Count: len(items), Hashtag: s.fetcher.Hashtag()}
}

// Cached returns the last cached dynamic feed, defaulting to the empty
// cache shape on any failure so consumers only ever see a valid shape.
func (s *Service) Cached(ctx context.Context) domain.SocialCache {
	if s.store == nil {
		return domain.EmptySocialCache()
	}

	raw, found, err := s.store.GetJSON(ctx, CacheKey)
	if err != nil {
		log.Printf("social: cache read failed: %v", err)
		return domain.EmptySocialCache()
	}
	if !found {
		return domain.EmptySocialCache()
	}

	var cache domain.SocialCache
	if err := json.Unmarshal(raw, &cache); err != nil {
		log.Printf("social: cache document malformed: %v", err)
		return domain.EmptySocialCache()
	}
	if cache.Items == nil {
		cache.Items = []domain.FeedItem{}
	}
	return cache
}
