package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const GeminiModel = "gemini-1.5-flash-latest"

type GeminiProvider struct {
	client *genai.Client
}

func NewGeminiProvider(apiKey string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, &ConfigurationError{Message: "Gemini API key is not configured."}
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{client: client}, nil
}

func (p *GeminiProvider) Close() error {
	return p.client.Close()
}

func (p *GeminiProvider) Model() string { return GeminiModel }

func (p *GeminiProvider) GenerateText(ctx context.Context, model, systemInstruction, userMessage string) (string, error) {
	m := p.client.GenerativeModel(model)
	m.SystemInstruction = genai.NewUserContent(genai.Text(systemInstruction))

	resp, err := m.GenerateContent(ctx, genai.Text(userMessage))
	if err != nil {
		if isGeminiAuthError(err) {
			return "", fmt.Errorf("%w: %v", ErrCredentialsRejected, err)
		}
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	return extractText(resp), nil
}

func isGeminiAuthError(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusUnauthorized {
		return true
	}
	return strings.Contains(err.Error(), "API key not valid")
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}
