package handlers

import (
	"context"
	"net/http"

	"github.com/lcac-club/clubsite/internal/api"
	"github.com/lcac-club/clubsite/internal/domain"
	"github.com/lcac-club/clubsite/internal/social"
)

// SocialService serves the cached dynamic feed and runs refresh
// cycles. Both operations absorb their own failures.
type SocialService interface {
	Cached(ctx context.Context) domain.SocialCache
	Refresh(ctx context.Context) social.RefreshSummary
}

type SocialHandler struct {
	svc SocialService
}

func NewSocialHandler(svc SocialService) *SocialHandler {
	return &SocialHandler{svc: svc}
}

// GetCache serves GET /social-cache: the last cached feed document,
// empty shape on any failure.
func (h *SocialHandler) GetCache(w http.ResponseWriter, r *http.Request) {
	api.JSON(w, http.StatusOK, h.svc.Cached(r.Context()))
}

// Refresh serves POST /social-refresh (admin-gated in middleware).
// Upstream failure never surfaces as a non-200.
func (h *SocialHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	api.JSON(w, http.StatusOK, h.svc.Refresh(r.Context()))
}
