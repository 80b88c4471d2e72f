package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lcac-club/clubsite/internal/domain"
	"github.com/lcac-club/clubsite/internal/social"
)

type stubSocialService struct {
	cache   domain.SocialCache
	summary social.RefreshSummary
}

func (s *stubSocialService) Cached(ctx context.Context) domain.SocialCache {
	return s.cache
}

func (s *stubSocialService) Refresh(ctx context.Context) social.RefreshSummary {
	return s.summary
}

func TestSocialGetCache_ReturnsCachedFeed(t *testing.T) {
	updatedAt := "2025-06-01T10:00:00Z"
	svc := &stubSocialService{cache: domain.SocialCache{
		UpdatedAt: &updatedAt,
		Items:     []domain.FeedItem{{Title: "Food Drive June", Source: "instagram"}},
	}}

	req := httptest.NewRequest(http.MethodGet, "/social-cache", nil)
	rec := httptest.NewRecorder()
	NewSocialHandler(svc).GetCache(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"updatedAt": "2025-06-01T10:00:00Z",
		"items": [{"title":"Food Drive June","source":"instagram"}]
	}`, rec.Body.String())
}

func TestSocialGetCache_EmptyShape(t *testing.T) {
	svc := &stubSocialService{cache: domain.EmptySocialCache()}

	req := httptest.NewRequest(http.MethodGet, "/social-cache", nil)
	rec := httptest.NewRecorder()
	NewSocialHandler(svc).GetCache(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"updatedAt":null,"items":[]}`, rec.Body.String())
}

func TestSocialRefresh_ReportsSummary(t *testing.T) {
	svc := &stubSocialService{summary: social.RefreshSummary{OK: true, Count: 3, Hashtag: "LCACProjects"}}

	req := httptest.NewRequest(http.MethodPost, "/social-refresh", nil)
	rec := httptest.NewRecorder()
	NewSocialHandler(svc).Refresh(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true,"count":3,"hashtag":"LCACProjects"}`, rec.Body.String())
}

func TestSocialRefresh_FailureStays200(t *testing.T) {
	svc := &stubSocialService{summary: social.RefreshSummary{OK: false, Note: "fetch failed (logged)"}}

	req := httptest.NewRequest(http.MethodPost, "/social-refresh", nil)
	rec := httptest.NewRecorder()
	NewSocialHandler(svc).Refresh(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":false,"count":0,"note":"fetch failed (logged)"}`, rec.Body.String())
}
