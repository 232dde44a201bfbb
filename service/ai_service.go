package service

import (
	"context"

	"pdf-rag-be/types"
)

// AIService is the external text-generation capability. Messages carry their
// own roles (system, user); implementations map them onto the backend's wire
// format.
type AIService interface {
	Chat(ctx context.Context, messages []types.Message) (string, error)
	ChatStream(ctx context.Context, messages []types.Message, handler types.StreamHandler) error
}
