package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/futig/faq-backend/internal/entity"
	"github.com/futig/faq-backend/internal/pkg/logger"
	"github.com/futig/faq-backend/internal/pkg/response"
	"github.com/futig/faq-backend/internal/pkg/validator"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase   ChatUsecase
	validator *validator.Validator
}

func NewHandler(usecase ChatUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

// Chat handles POST /chat - answer a question over the FAQ corpus
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Chat")

	var req entity.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validator.ValidateChat(&req); err != nil {
		ctxzap.Error(ctx, "failed to validate request", zap.Error(err))
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctxzap.Info(ctx, "answering chat request",
		zap.Int("history_length", len(req.ChatHistory)),
		zap.Int("input_length", len(req.Input)),
	)

	resp, err := h.usecase.Answer(ctx, &req)
	if err != nil {
		h.handlePipelineError(ctx, w, err)
		return
	}

	response.Success(w, resp)
}

// handlePipelineError translates pipeline failures into structured JSON
// error responses. Upstream-dependency failures surface as 502; nothing
// escapes as a crash or a bare connection drop.
func (h *Handler) handlePipelineError(ctx context.Context, w http.ResponseWriter, err error) {
	ctxzap.Error(ctx, "pipeline failed", zap.Error(err))

	switch {
	case errors.Is(err, entity.ErrEmbeddingService):
		response.Error(w, http.StatusBadGateway, "embedding service failed")
	case errors.Is(err, entity.ErrCompletionService):
		response.Error(w, http.StatusBadGateway, "completion service failed")
	default:
		response.Error(w, http.StatusInternalServerError, "internal error")
	}
}
