package messaging

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"conventionplanner/internal/domain"
)

type conversation struct {
	participants []uuid.UUID
	createdAt    time.Time
}

// InMemoryConversations keeps conversation membership in process memory.
// Message bodies are out of scope; only who belongs to which conversation is tracked.
type InMemoryConversations struct {
	mu            sync.RWMutex
	conversations map[uuid.UUID]conversation
	logger        *slog.Logger
}

var _ domain.ConversationService = (*InMemoryConversations)(nil)

func NewInMemoryConversations(logger *slog.Logger) *InMemoryConversations {
	return &InMemoryConversations{
		conversations: make(map[uuid.UUID]conversation),
		logger:        logger,
	}
}

// CreateConversation opens a conversation over the distinct participant ids, in first-seen order.
func (m *InMemoryConversations) CreateConversation(ctx context.Context, participantIDs []uuid.UUID) (uuid.UUID, error) {
	if err := ctx.Err(); err != nil {
		return uuid.Nil, err
	}
	members := make([]uuid.UUID, 0, len(participantIDs))
	for _, id := range participantIDs {
		if !slices.Contains(members, id) {
			members = append(members, id)
		}
	}
	id := uuid.New()
	m.mu.Lock()
	m.conversations[id] = conversation{participants: members, createdAt: time.Now()}
	m.mu.Unlock()
	m.logger.DebugContext(ctx, "conversation created", "conversation_id", id, "participants", len(members))
	return id, nil
}

func (m *InMemoryConversations) ListParticipants(ctx context.Context, conversationID uuid.UUID) ([]uuid.UUID, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.conversations[conversationID]
	if !ok {
		return nil, domain.ErrNullConversation
	}
	return slices.Clone(c.participants), nil
}
