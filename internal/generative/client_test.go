package generative

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCompletionAPI struct {
	mock.Mock
}

func (m *mockCompletionAPI) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(openai.ChatCompletionResponse), args.Error(1)
}

func completionResponse(text string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: text}},
		},
	}
}

func TestComplete_ReturnsTrimmedFirstChoice(t *testing.T) {
	api := new(mockCompletionAPI)
	api.On("CreateChatCompletion", mock.Anything, mock.MatchedBy(func(req openai.ChatCompletionRequest) bool {
		return req.Model == DefaultModel &&
			len(req.Messages) == 2 &&
			req.Messages[1].Content == "What is the motto?"
	})).Return(completionResponse("  Born to Serve.\n"), nil)

	c := &Client{api: api, model: DefaultModel}

	answer, err := c.Complete(context.Background(), "What is the motto?")

	require.NoError(t, err)
	assert.Equal(t, "Born to Serve.", answer)
	api.AssertExpectations(t)
}

func TestComplete_EmptyPrompt(t *testing.T) {
	api := new(mockCompletionAPI)
	c := &Client{api: api, model: DefaultModel}

	_, err := c.Complete(context.Background(), "")

	assert.ErrorIs(t, err, ErrEmptyPrompt)
	api.AssertNotCalled(t, "CreateChatCompletion", mock.Anything, mock.Anything)
}

func TestComplete_APIError(t *testing.T) {
	api := new(mockCompletionAPI)
	api.On("CreateChatCompletion", mock.Anything, mock.Anything).
		Return(openai.ChatCompletionResponse{}, errors.New("rate limited"))

	c := &Client{api: api, model: DefaultModel}

	_, err := c.Complete(context.Background(), "hello")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestComplete_NoChoices(t *testing.T) {
	api := new(mockCompletionAPI)
	api.On("CreateChatCompletion", mock.Anything, mock.Anything).
		Return(openai.ChatCompletionResponse{}, nil)

	c := &Client{api: api, model: DefaultModel}

	_, err := c.Complete(context.Background(), "hello")

	assert.ErrorIs(t, err, ErrNoCompletion)
}

func TestNewClientWithConfig_DefaultModel(t *testing.T) {
	c := NewClientWithConfig(Config{APIKey: "test-key"})
	assert.Equal(t, DefaultModel, c.model)

	c = NewClientWithConfig(Config{APIKey: "test-key", Model: "gpt-4o"})
	assert.Equal(t, "gpt-4o", c.model)
}
