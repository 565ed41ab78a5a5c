package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newOpenAITestServer(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := NewOpenAIProvider("sk-test", srv.URL+"/v1")
	if err != nil {
		t.Fatalf("NewOpenAIProvider: %v", err)
	}
	return p
}

func TestOpenAIProvider_SendsSystemAndUserMessages(t *testing.T) {
	var got struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	p := newOpenAITestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"Use flexbox."},"finish_reason":"stop"}]}`))
	})

	text, err := p.GenerateText(context.Background(), p.Model(), "sys", "How do I center a div?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Use flexbox." {
		t.Errorf("expected reply text, got %q", text)
	}
	if got.Model != OpenAIModel {
		t.Errorf("expected model %q, got %q", OpenAIModel, got.Model)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[1].Content != "How do I center a div?" {
		t.Errorf("unexpected messages: %+v", got.Messages)
	}
}

func TestOpenAIProvider_NoChoicesIsEmptyText(t *testing.T) {
	p := newOpenAITestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"1","object":"chat.completion","choices":[]}`))
	})

	text, err := p.GenerateText(context.Background(), p.Model(), "sys", "hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "" {
		t.Errorf("expected empty text, got %q", text)
	}
}

func TestOpenAIProvider_UnauthorizedIsCredentialError(t *testing.T) {
	p := newOpenAITestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error","code":"invalid_api_key"}}`))
	})

	_, err := p.GenerateText(context.Background(), p.Model(), "sys", "hi")
	if !errors.Is(err, ErrCredentialsRejected) {
		t.Fatalf("expected ErrCredentialsRejected, got %v", err)
	}
}

func TestOpenAIProvider_ServerErrorIsNotCredentialError(t *testing.T) {
	p := newOpenAITestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"bad things","type":"invalid_request_error"}}`))
	})

	_, err := p.GenerateText(context.Background(), p.Model(), "sys", "hi")
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, ErrCredentialsRejected) {
		t.Error("did not expect a credential error")
	}
}

func TestNewOpenAIProvider_RequiresKey(t *testing.T) {
	_, err := NewOpenAIProvider("", "")
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}

func TestIsGeminiAuthError(t *testing.T) {
	if !isGeminiAuthError(errors.New("googleapi: Error 400: API key not valid. Please pass a valid API key.")) {
		t.Error("expected invalid key message to be detected")
	}
	if isGeminiAuthError(errors.New("googleapi: Error 500: internal")) {
		t.Error("did not expect generic error to be detected")
	}
}

func TestExtractText_NilResponse(t *testing.T) {
	if got := extractText(nil); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}
