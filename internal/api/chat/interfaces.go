package chat

import (
	"context"

	"github.com/futig/faq-backend/internal/entity"
)

// ChatUsecase runs the answering pipeline for one request.
type ChatUsecase interface {
	Answer(ctx context.Context, req *entity.ChatRequest) (*entity.ChatResponse, error)
}
