package services

import (
	"context"

	"devchat/internal/models"
)

type replyGenerator interface {
	GenerateReply(ctx context.Context, userMessage string) (string, error)
}

// ChatService sits between the HTTP layer and the LLM adapter.
type ChatService struct {
	llm replyGenerator
}

func NewChatService(llm replyGenerator) *ChatService {
	return &ChatService{llm: llm}
}

// ProcessMessage returns the adapter's reply. Adapter errors are returned unchanged.
func (s *ChatService) ProcessMessage(ctx context.Context, message string) (*models.ChatResponse, error) {
	reply, err := s.llm.GenerateReply(ctx, message)
	if err != nil {
		return nil, err
	}
	return &models.ChatResponse{Reply: reply}, nil
}
