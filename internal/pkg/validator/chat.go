package validator

import (
	"fmt"

	"github.com/futig/faq-backend/internal/entity"
)

// Validator validates incoming chat requests
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// ValidateChat validates ChatRequest. History may be empty but every entry
// present must carry a known role and non-empty content.
func (v *Validator) ValidateChat(req *entity.ChatRequest) error {
	if req.Input == "" {
		return fmt.Errorf("%w: input", entity.ErrMissingField)
	}

	for i, msg := range req.ChatHistory {
		if msg.Role != entity.RoleUser && msg.Role != entity.RoleAssistant {
			return fmt.Errorf("%w: chatHistory[%d].role %q", entity.ErrInvalidRole, i, msg.Role)
		}
		if msg.Content == "" {
			return fmt.Errorf("%w: chatHistory[%d].content", entity.ErrMissingField, i)
		}
	}

	return nil
}
