package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/lcac-club/clubsite/internal/api"
	"github.com/lcac-club/clubsite/internal/domain"
	"github.com/lcac-club/clubsite/internal/feed"
)

// ProjectsFeedHandler serves the aggregated projects feed: cached
// Instagram posts first, then the curated static catalog.
type ProjectsFeedHandler struct {
	resolver DataResolver
	social   SocialService
}

func NewProjectsFeedHandler(resolver DataResolver, social SocialService) *ProjectsFeedHandler {
	return &ProjectsFeedHandler{resolver: resolver, social: social}
}

type projectsFeedResponse struct {
	UpdatedAt *string           `json:"updatedAt"`
	Items     []domain.FeedItem `json:"items"`
}

// Get serves GET /projects-feed. Either source may be empty or
// unreachable; the merge degrades instead of failing.
func (h *ProjectsFeedHandler) Get(w http.ResponseWriter, r *http.Request) {
	cache := h.social.Cached(r.Context())

	var static []domain.FeedItem
	if doc, err := h.resolver.Resolve(r.Context(), string(domain.FeedProjects)); err == nil {
		static = parseStaticItems(doc)
	} else {
		log.Printf("projects feed: static catalog unavailable: %v", err)
	}

	api.JSON(w, http.StatusOK, projectsFeedResponse{
		UpdatedAt: cache.UpdatedAt,
		Items:     feed.Merge(cache.Items, static),
	})
}

// parseStaticItems accepts both catalog shapes the site has used: a
// bare item array and an {items: [...]} document.
func parseStaticItems(doc json.RawMessage) []domain.FeedItem {
	var wrapped struct {
		Items []domain.FeedItem `json:"items"`
	}
	if err := json.Unmarshal(doc, &wrapped); err == nil && wrapped.Items != nil {
		return wrapped.Items
	}

	var bare []domain.FeedItem
	if err := json.Unmarshal(doc, &bare); err == nil {
		return bare
	}
	return nil
}
