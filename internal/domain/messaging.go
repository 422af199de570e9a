package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNullConversation is returned by the messaging collaborator for unknown conversation ids.
var ErrNullConversation = errors.New("conversation not found")

// ConversationService is the messaging collaborator. Conversation contents are not managed here.
type ConversationService interface {
	CreateConversation(ctx context.Context, participantIDs []uuid.UUID) (uuid.UUID, error)
	ListParticipants(ctx context.Context, conversationID uuid.UUID) ([]uuid.UUID, error)
}
