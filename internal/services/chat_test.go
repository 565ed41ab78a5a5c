package services

import (
	"context"
	"errors"
	"testing"
)

type stubGenerator struct {
	reply string
	err   error
}

func (s stubGenerator) GenerateReply(ctx context.Context, userMessage string) (string, error) {
	return s.reply, s.err
}

func TestProcessMessage_WrapsReply(t *testing.T) {
	svc := NewChatService(stubGenerator{reply: "Use alt text on images."})

	resp, err := svc.ProcessMessage(context.Background(), "a11y tips?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Reply != "Use alt text on images." {
		t.Errorf("unexpected reply %q", resp.Reply)
	}
}

func TestProcessMessage_PropagatesErrorsUnchanged(t *testing.T) {
	want := &AuthenticationError{Message: msgInvalidAPIKey}
	svc := NewChatService(stubGenerator{err: want})

	resp, err := svc.ProcessMessage(context.Background(), "hello")
	if resp != nil {
		t.Errorf("expected nil response, got %+v", resp)
	}
	if err != want {
		t.Errorf("expected the same error value, got %v", err)
	}

	var authErr *AuthenticationError
	if !errors.As(err, &authErr) {
		t.Error("expected AuthenticationError")
	}
}
