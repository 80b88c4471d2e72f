package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lcac-club/clubsite/internal/domain"
)

type stubAnswerer struct {
	result       domain.AnswerResult
	question     string
	contextFiles []string
	calls        int
}

func (s *stubAnswerer) Answer(ctx context.Context, question string, contextFiles []string) domain.AnswerResult {
	s.calls++
	s.question = question
	s.contextFiles = contextFiles
	return s.result
}

func postChat(t *testing.T, router QuestionAnswerer, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	rec := httptest.NewRecorder()
	NewChatHandler(router).Post(rec, req)
	return rec
}

func TestChatPost_ReturnsAnswerWithSource(t *testing.T) {
	router := &stubAnswerer{result: domain.AnswerResult{Text: "Born to Serve", Origin: domain.OriginLocal}}

	rec := postChat(t, router, `{"question":"What is the motto?"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"answer":"Born to Serve","source":"local"}`, rec.Body.String())
	assert.Equal(t, "What is the motto?", router.question)
}

func TestChatPost_PassesContextFiles(t *testing.T) {
	router := &stubAnswerer{result: domain.AnswerResult{Text: "ok", Origin: domain.OriginLocal}}

	postChat(t, router, `{"question":"hi","contextFiles":["data/extra.json"]}`)

	assert.Equal(t, []string{"data/extra.json"}, router.contextFiles)
}

func TestChatPost_BlankQuestion(t *testing.T) {
	router := &stubAnswerer{}

	for _, body := range []string{`{"question":""}`, `{"question":"   "}`, `{}`} {
		rec := postChat(t, router, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
		assert.JSONEq(t, `{"error":"Missing question"}`, rec.Body.String())
	}
	assert.Zero(t, router.calls)
}

func TestChatPost_MalformedBody(t *testing.T) {
	router := &stubAnswerer{}

	rec := postChat(t, router, `{broken`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, router.calls)
}

func TestChatPost_GeneratedSource(t *testing.T) {
	router := &stubAnswerer{result: domain.AnswerResult{Text: "Generated.", Origin: domain.OriginGenerated}}

	rec := postChat(t, router, `{"question":"Do you collaborate with schools?"}`)

	assert.JSONEq(t, `{"answer":"Generated.","source":"generated"}`, rec.Body.String())
}
