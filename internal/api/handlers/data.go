package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/lcac-club/clubsite/internal/api"
	"github.com/lcac-club/clubsite/internal/domain"
	"github.com/lcac-club/clubsite/internal/telemetry"
)

// DataResolver resolves and stores named feed documents.
type DataResolver interface {
	Resolve(ctx context.Context, name string) (json.RawMessage, error)
	Store(ctx context.Context, name string, doc json.RawMessage) error
}

type DataHandler struct {
	resolver DataResolver
}

func NewDataHandler(resolver DataResolver) *DataHandler {
	return &DataHandler{resolver: resolver}
}

type writeResult struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Get serves GET /data?name=... — 400 on an invalid name, 404 when no
// tier has data, the raw document otherwise.
func (h *DataHandler) Get(w http.ResponseWriter, r *http.Request) {
	doc, err := h.resolver.Resolve(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		switch api.DomainErrorToHTTP(err) {
		case http.StatusBadRequest:
			api.Error(w, http.StatusBadRequest, "Invalid name")
		case http.StatusNotFound:
			api.Error(w, http.StatusNotFound, "Not found")
		default:
			// Unexpected resolver failure: well-formed neutral body, not 5xx.
			log.Printf("data read error: %v", err)
			telemetry.CaptureError(r.Context(), err)
			api.JSON(w, http.StatusOK, map[string]any{})
		}
		return
	}

	api.JSON(w, http.StatusOK, doc)
}

// Post serves POST /data?name=... — admin auth has already run in
// middleware. 400 on an invalid name; store failures return 200 with
// ok false rather than 5xx.
func (h *DataHandler) Post(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if _, err := domain.ParseFeedName(name); err != nil {
		api.JSON(w, http.StatusBadRequest, writeResult{OK: false, Error: "Invalid name"})
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil || !json.Valid(body) {
		api.JSON(w, http.StatusOK, writeResult{OK: false})
		return
	}

	if err := h.resolver.Store(r.Context(), name, body); err != nil {
		log.Printf("data write error: %v", err)
		telemetry.CaptureError(r.Context(), err)
		api.JSON(w, http.StatusOK, writeResult{OK: false})
		return
	}

	api.JSON(w, http.StatusOK, writeResult{OK: true})
}
