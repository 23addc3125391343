package chat

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the chat endpoint on the router.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/chat", h.Chat)
}
