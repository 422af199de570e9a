package messaging

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conventionplanner/internal/domain"
)

func newTestConversations() *InMemoryConversations {
	return NewInMemoryConversations(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestInMemoryConversations_CreateAndList(t *testing.T) {
	ctx := context.Background()
	m := newTestConversations()
	a, b := uuid.New(), uuid.New()

	id, err := m.CreateConversation(ctx, []uuid.UUID{a, b, a})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	got, err := m.ListParticipants(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a, b}, got)

	got[0] = uuid.Nil
	again, err := m.ListParticipants(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, a, again[0], "callers get a copy")
}

func TestInMemoryConversations_Unknown(t *testing.T) {
	_, err := newTestConversations().ListParticipants(context.Background(), uuid.New())
	require.ErrorIs(t, err, domain.ErrNullConversation)
}

func TestInMemoryConversations_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestConversations().CreateConversation(ctx, []uuid.UUID{uuid.New()})
	require.ErrorIs(t, err, context.Canceled)
}

func TestInMemoryConversations_Concurrent(t *testing.T) {
	ctx := context.Background()
	m := newTestConversations()
	var wg sync.WaitGroup
	ids := make([]uuid.UUID, 50)
	for i := range ids {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := m.CreateConversation(ctx, []uuid.UUID{uuid.New()})
			assert.NoError(t, err)
			ids[i] = id
		}()
	}
	wg.Wait()

	seen := make(map[uuid.UUID]struct{})
	for _, id := range ids {
		_, err := m.ListParticipants(ctx, id)
		require.NoError(t, err)
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, len(ids))
}
