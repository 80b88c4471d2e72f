package knowledge

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lcac-club/clubsite/internal/domain"
)

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

const routerTestDoc = `{
  "club": {
    "name": "Leo Club of Ampang Chempaka",
    "description": "a youth service club.",
    "motto": "Born to Serve",
    "join": {"how": "Fill out the membership form and join our orientation session.", "formUrl": "https://x/y"},
    "contact": {"email": "hello@lcac.example.org"},
    "board": {"year": "2025/26", "note": "Full list on the Board page."},
    "projects": [{"title": "Food Drive", "description": "Monthly food packs."}]
  },
  "leo_general": {
    "what_is_leo": "LEO stands for Leadership, Experience, Opportunity."
  }
}`

func newTestRouter(t *testing.T, gen Generator) *Router {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "club-knowledge.json")
	require.NoError(t, os.WriteFile(path, []byte(routerTestDoc), 0o644))
	store := NewStore(time.Minute)
	return NewRouter(store, NewMatcher(), gen, RouterOptions{DefaultDocs: []string{path}})
}

func TestAnswer_NilGeneratorAlwaysLocal(t *testing.T) {
	r := newTestRouter(t, nil)

	result := r.Answer(context.Background(), "What is the meaning of life?", nil)

	assert.Equal(t, domain.OriginLocal, result.Origin)
	assert.Contains(t, result.Text, "Try asking:")
}

func TestAnswer_OrgCueSkipsBackend(t *testing.T) {
	gen := new(mockGenerator)
	r := newTestRouter(t, gen)

	result := r.Answer(context.Background(), "Tell me about the Leo Club of Ampang Chempaka", nil)

	assert.Equal(t, domain.OriginLocal, result.Origin)
	assert.Contains(t, result.Text, "Leo Club of Ampang Chempaka")
	gen.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestAnswer_SelfReferentialCueSkipsBackend(t *testing.T) {
	gen := new(mockGenerator)
	r := newTestRouter(t, gen)

	result := r.Answer(context.Background(), "How do I join your club?", nil)

	assert.Equal(t, domain.OriginLocal, result.Origin)
	assert.Contains(t, result.Text, "https://x/y")
	gen.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestAnswer_SubstantialTopicAnswerSkipsBackend(t *testing.T) {
	gen := new(mockGenerator)
	r := newTestRouter(t, gen)

	// The join answer exceeds the default length threshold, so the
	// backend is never consulted.
	result := r.Answer(context.Background(), "How to join?", nil)

	assert.Equal(t, domain.OriginLocal, result.Origin)
	assert.Equal(t, "Fill out the membership form and join our orientation session. https://x/y", result.Text)
	gen.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestAnswer_ShortTopicAnswerDelegates(t *testing.T) {
	gen := new(mockGenerator)
	gen.On("Complete", mock.Anything, mock.Anything).
		Return("Our motto is Born to Serve, reflecting our commitment to service.", nil)
	r := newTestRouter(t, gen)

	// "Born to Serve" is well below the threshold.
	result := r.Answer(context.Background(), "What is the motto?", nil)

	assert.Equal(t, domain.OriginGenerated, result.Origin)
	assert.Equal(t, "Our motto is Born to Serve, reflecting our commitment to service.", result.Text)
	gen.AssertExpectations(t)
}

func TestAnswer_BackendFailureFallsBackToMatchedLocal(t *testing.T) {
	gen := new(mockGenerator)
	gen.On("Complete", mock.Anything, mock.Anything).
		Return("", errors.New("upstream timeout"))
	r := newTestRouter(t, gen)

	result := r.Answer(context.Background(), "What is the motto?", nil)

	assert.Equal(t, domain.OriginLocal, result.Origin)
	assert.Equal(t, "Born to Serve", result.Text)
}

func TestAnswer_BackendFailureWithoutMatchReturnsApology(t *testing.T) {
	gen := new(mockGenerator)
	gen.On("Complete", mock.Anything, mock.Anything).
		Return("", errors.New("upstream timeout"))
	r := newTestRouter(t, gen)

	result := r.Answer(context.Background(), "What is the meaning of life?", nil)

	assert.Equal(t, domain.OriginFallback, result.Origin)
	assert.Contains(t, result.Text, "Sorry")
	assert.Contains(t, result.Text, "Try asking:")
}

func TestAnswer_BackendEmptyAnswerTreatedAsFailure(t *testing.T) {
	gen := new(mockGenerator)
	gen.On("Complete", mock.Anything, mock.Anything).Return("   \n", nil)
	r := newTestRouter(t, gen)

	result := r.Answer(context.Background(), "What is the motto?", nil)

	assert.Equal(t, domain.OriginLocal, result.Origin)
	assert.Equal(t, "Born to Serve", result.Text)
}

func TestAnswer_UnmatchedQuestionDelegates(t *testing.T) {
	gen := new(mockGenerator)
	gen.On("Complete", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return len(prompt) > 0
	})).Return("Generated answer.", nil)
	r := newTestRouter(t, gen)

	result := r.Answer(context.Background(), "Do you collaborate with schools?", nil)

	assert.Equal(t, domain.OriginGenerated, result.Origin)
	assert.Equal(t, "Generated answer.", result.Text)
	gen.AssertExpectations(t)
}

func TestAnswer_ContextFilesOverrideDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "alt.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"club":{"motto":"Serve First"}}`), 0o644))

	r := newTestRouter(t, nil)
	result := r.Answer(context.Background(), "What is the motto?", []string{path})

	assert.Equal(t, "Serve First", result.Text)
}
