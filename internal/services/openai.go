package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openaiapi "github.com/sashabaranov/go-openai"
)

const OpenAIModel = openaiapi.GPT4oMini

type OpenAIProvider struct {
	api *openaiapi.Client
}

// NewOpenAIProvider creates an OpenAI-backed provider. baseURL overrides the
// API endpoint when non-empty.
func NewOpenAIProvider(apiKey, baseURL string) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, &ConfigurationError{Message: "OpenAI API key is not configured."}
	}

	cfg := openaiapi.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &OpenAIProvider{api: openaiapi.NewClientWithConfig(cfg)}, nil
}

func (p *OpenAIProvider) Model() string { return OpenAIModel }

func (p *OpenAIProvider) GenerateText(ctx context.Context, model, systemInstruction, userMessage string) (string, error) {
	resp, err := p.api.CreateChatCompletion(ctx, openaiapi.ChatCompletionRequest{
		Model:  model,
		Stream: false,
		Messages: []openaiapi.ChatCompletionMessage{
			{Role: openaiapi.ChatMessageRoleSystem, Content: systemInstruction},
			{Role: openaiapi.ChatMessageRoleUser, Content: userMessage},
		},
	})
	if err != nil {
		if isOpenAIAuthError(err) {
			return "", fmt.Errorf("%w: %v", ErrCredentialsRejected, err)
		}
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func isOpenAIAuthError(err error) bool {
	var apiErr *openaiapi.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusUnauthorized
	}
	var reqErr *openaiapi.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == http.StatusUnauthorized
	}
	return false
}
