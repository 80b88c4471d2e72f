package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/lcac-club/clubsite/internal/api"
	"github.com/lcac-club/clubsite/internal/domain"
)

// QuestionAnswerer decides between the local matcher and the
// generative backend; it never fails.
type QuestionAnswerer interface {
	Answer(ctx context.Context, question string, contextFiles []string) domain.AnswerResult
}

type ChatHandler struct {
	router QuestionAnswerer
}

func NewChatHandler(router QuestionAnswerer) *ChatHandler {
	return &ChatHandler{router: router}
}

type chatRequest struct {
	Question     string   `json:"question"`
	ContextFiles []string `json:"contextFiles"`
}

type chatResponse struct {
	Answer string `json:"answer"`
	Source string `json:"source,omitempty"`
}

// Post serves POST /chat. A blank question is the only client error;
// every backend failure has already been downgraded by the router.
func (h *ChatHandler) Post(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Question) == "" {
		api.Error(w, api.DomainErrorToHTTP(domain.ErrBlankQuestion), "Missing question")
		return
	}

	result := h.router.Answer(r.Context(), req.Question, req.ContextFiles)
	api.JSON(w, http.StatusOK, chatResponse{
		Answer: result.Text,
		Source: string(result.Origin),
	})
}
