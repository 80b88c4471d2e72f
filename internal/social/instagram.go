// Package social fetches recent Instagram posts for the club's project
// hashtag and maintains a cached feed document in the remote store.
package social

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/lcac-club/clubsite/internal/domain"
)

const defaultGraphBaseURL = "https://graph.facebook.com/v19.0"

// mediaFields requested per post, children included for carousels.
const mediaFields = "id,caption,media_type,media_url,permalink,timestamp,children{media_type,media_url}"

// InstagramConfig holds the upstream API settings.
type InstagramConfig struct {
	AccessToken string
	UserID      string
	Hashtag     string
	Limit       int
	// BaseURL overrides the Graph API endpoint, for tests.
	BaseURL string
	// HTTPClient overrides the transport, for tests.
	HTTPClient *http.Client
}

// InstagramClient talks to the Facebook Graph API hashtag endpoints.
// Calls are paced with a small rate limiter so a refresh burst never
// hammers the upstream.
type InstagramClient struct {
	http    *http.Client
	limiter *rate.Limiter
	baseURL string
	token   string
	userID  string
	hashtag string
	limit   int
}

func NewInstagramClient(cfg InstagramConfig) *InstagramClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultGraphBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	hashtag := cfg.Hashtag
	if hashtag == "" {
		hashtag = "LCACProjects"
	}
	limit := cfg.Limit
	if limit <= 0 {
		limit = 15
	}
	return &InstagramClient{
		http:    httpClient,
		limiter: rate.NewLimiter(rate.Every(time.Second), 2),
		baseURL: baseURL,
		token:   cfg.AccessToken,
		userID:  cfg.UserID,
		hashtag: hashtag,
		limit:   limit,
	}
}

// Hashtag returns the configured hashtag without the leading "#".
func (c *InstagramClient) Hashtag() string {
	return c.hashtag
}

type idList struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

type mediaPost struct {
	ID        string `json:"id"`
	Caption   string `json:"caption"`
	MediaType string `json:"media_type"`
	MediaURL  string `json:"media_url"`
	Permalink string `json:"permalink"`
	Timestamp string `json:"timestamp"`
	Children  struct {
		Data []struct {
			MediaType string `json:"media_type"`
			MediaURL  string `json:"media_url"`
		} `json:"data"`
	} `json:"children"`
}

type mediaList struct {
	Data []mediaPost `json:"data"`
}

// RecentTagged looks up the hashtag id and fetches its recent media,
// mapped to feed items. The upstream's own semantics are opaque here;
// any non-2xx or malformed response is just an error for the caller to
// absorb.
func (c *InstagramClient) RecentTagged(ctx context.Context) ([]domain.FeedItem, error) {
	var search idList
	searchQuery := url.Values{
		"user_id":      {c.userID},
		"q":            {c.hashtag},
		"access_token": {c.token},
	}
	if err := c.getJSON(ctx, "/ig_hashtag_search", searchQuery, &search); err != nil {
		return nil, fmt.Errorf("hashtag search: %w", err)
	}
	if len(search.Data) == 0 {
		return nil, fmt.Errorf("hashtag %q not found", c.hashtag)
	}
	hashtagID := search.Data[0].ID

	var recent mediaList
	recentQuery := url.Values{
		"user_id":      {c.userID},
		"fields":       {mediaFields},
		"limit":        {strconv.Itoa(c.limit)},
		"access_token": {c.token},
	}
	if err := c.getJSON(ctx, "/"+hashtagID+"/recent_media", recentQuery, &recent); err != nil {
		return nil, fmt.Errorf("recent media: %w", err)
	}

	items := make([]domain.FeedItem, 0, len(recent.Data))
	for _, post := range recent.Data {
		items = append(items, c.mapPost(post))
	}
	return items, nil
}

// mapPost turns one Graph API media post into a feed item: first
// caption line as title, caption prefix as summary, all media URLs
// collected for the slider.
func (c *InstagramClient) mapPost(p mediaPost) domain.FeedItem {
	var images []string
	if p.MediaURL != "" {
		images = append(images, p.MediaURL)
	}
	for _, child := range p.Children.Data {
		if child.MediaURL != "" {
			images = append(images, child.MediaURL)
		}
	}

	var image string
	if len(images) > 0 {
		image = images[0]
	}

	caption := strings.TrimSpace(p.Caption)
	title, _, _ := strings.Cut(caption, "\n")
	title = truncate(title, 120)
	if title == "" {
		title = "Instagram Post"
	}

	return domain.FeedItem{
		Title:     title,
		Summary:   truncate(caption, 300),
		Image:     image,
		Images:    images,
		Permalink: p.Permalink,
		Timestamp: p.Timestamp,
		Tags:      []string{"Instagram", "#" + c.hashtag},
		Source:    "instagram",
	}
}

func (c *InstagramClient) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return err
	}

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("HTTP %d for %s: %s", res.StatusCode, path, strings.TrimSpace(string(body)))
	}

	return json.NewDecoder(res.Body).Decode(out)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
