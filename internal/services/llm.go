package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// FallbackReply is returned when the provider produces no usable text.
const FallbackReply = "I'm not sure how to respond to that. Could you try rephrasing?"

// SystemInstruction scopes every conversation to front-end development.
const SystemInstruction = "You are an expert in front-end development best practices. " +
	"Your primary goal is to provide accurate, helpful, and concise information related to this field. " +
	"This includes topics like HTML, CSS, JavaScript, frameworks (React, Angular, Vue, Svelte, etc.), " +
	"performance optimization, accessibility (a11y), responsive design, version control (Git), testing, " +
	"build tools, package managers, browser compatibility, security, and modern web APIs. " +
	"If a user asks a question outside of front-end development best practices, politely state that you " +
	"can only discuss topics related to front-end development and try to gently guide them back if appropriate. " +
	"Do not answer off-topic questions."

const (
	msgInvalidAPIKey   = "LLM API key is invalid. Please check backend configuration."
	msgProviderFailure = "Failed to get a response from the AI service."
)

// Provider is a generative-text backend.
type Provider interface {
	// Model is the fixed model identifier used for every request.
	Model() string
	GenerateText(ctx context.Context, model, systemInstruction, userMessage string) (string, error)
}

// NewProvider builds the named provider. An empty API key fails here,
// before any request is served.
func NewProvider(name, apiKey string) (Provider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, &ConfigurationError{Message: "LLM service is not configured (API_KEY missing)."}
	}

	switch name {
	case "", ProviderGemini:
		p, err := NewGeminiProvider(apiKey)
		if err != nil {
			return nil, err
		}
		return p, nil
	case ProviderOpenAI:
		p, err := NewOpenAIProvider(apiKey, "")
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, &ConfigurationError{Message: fmt.Sprintf("unknown LLM provider %q", name)}
	}
}

// LLMService wraps a single provider call and translates its failures.
// It holds no per-request state.
type LLMService struct {
	provider Provider
}

func NewLLMService(provider Provider) (*LLMService, error) {
	if provider == nil {
		return nil, &ConfigurationError{Message: "LLM service is not configured (no provider)."}
	}
	return &LLMService{provider: provider}, nil
}

// Close releases the provider's client, if it has one.
func (s *LLMService) Close() {
	if c, ok := s.provider.(io.Closer); ok {
		if err := c.Close(); err != nil {
			log.Printf("WARNING: closing LLM provider: %v", err)
		}
	}
}

// GenerateReply sends one message to the provider. No retries.
func (s *LLMService) GenerateReply(ctx context.Context, userMessage string) (string, error) {
	text, err := s.provider.GenerateText(ctx, s.provider.Model(), SystemInstruction, userMessage)
	if err != nil {
		log.Printf("ERROR: LLM provider call failed (model=%s): %v", s.provider.Model(), err)
		if isCredentialError(err) {
			return "", &AuthenticationError{Message: msgInvalidAPIKey, Cause: err}
		}
		return "", &ProviderError{Message: msgProviderFailure, Cause: err}
	}

	if strings.TrimSpace(text) == "" {
		log.Printf("WARNING: empty or whitespace-only response from LLM for message: %q", userMessage)
		return FallbackReply, nil
	}
	return text, nil
}

func isCredentialError(err error) bool {
	return errors.Is(err, ErrCredentialsRejected) || strings.Contains(err.Error(), "API key not valid")
}
