package assistant

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAssistant(t *testing.T) (*Assistant, *MemoryStore) {
	t.Helper()

	gw := &mockGateway{}
	expectCatalog(gw)

	store := NewMemoryStore()
	a := New(store, newTestManager(gw), testLogger())
	return a, store
}

func TestAssistant_StartConversation(t *testing.T) {
	a, store := newTestAssistant(t)
	ctx := context.Background()

	greeting, err := a.StartConversation(ctx, "session-1")
	require.NoError(t, err)
	assert.Contains(t, greetings, greeting)

	conv, err := store.Get(ctx, "session-1")
	require.NoError(t, err)
	require.Len(t, conv.History, 1)
	assert.Equal(t, RoleAssistant, conv.History[0].Role)
	assert.Equal(t, greeting, conv.History[0].Text)
}

func TestAssistant_ProcessMessageRecordsHistory(t *testing.T) {
	a, _ := newTestAssistant(t)
	ctx := context.Background()

	_, err := a.StartConversation(ctx, "session-2")
	require.NoError(t, err)

	reply, err := a.ProcessMessage(ctx, "session-2", "book an appointment")
	require.NoError(t, err)
	assert.Equal(t, initialBookingReply, reply)

	history, err := a.History(ctx, "session-2")
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, RoleUser, history[1].Role)
	assert.Equal(t, "book an appointment", history[1].Text)
	assert.Equal(t, RoleAssistant, history[2].Role)
	assert.Equal(t, reply, history[2].Text)
}

func TestAssistant_ProcessMessageGreetsNewSession(t *testing.T) {
	a, _ := newTestAssistant(t)
	ctx := context.Background()

	// First contact without StartConversation still yields a greeting entry.
	_, err := a.ProcessMessage(ctx, "fresh", "hello")
	require.NoError(t, err)

	history, err := a.History(ctx, "fresh")
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, RoleAssistant, history[0].Role)
	assert.Contains(t, greetings, history[0].Text)
}

func TestAssistant_HistoryUnknownSession(t *testing.T) {
	a, _ := newTestAssistant(t)

	history, err := a.History(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestAssistant_SessionsAreIsolated(t *testing.T) {
	a, store := newTestAssistant(t)
	ctx := context.Background()

	_, err := a.ProcessMessage(ctx, "a", "any barber tomorrow")
	require.NoError(t, err)
	_, err = a.ProcessMessage(ctx, "b", "book an appointment")
	require.NoError(t, err)

	convA, err := store.Get(ctx, "a")
	require.NoError(t, err)
	convB, err := store.Get(ctx, "b")
	require.NoError(t, err)

	assert.True(t, convA.Facts.AnyBarber)
	assert.False(t, convB.Facts.AnyBarber)
	assert.Equal(t, StageNeedTime, convA.Stage)
	assert.Equal(t, StageInitialBooking, convB.Stage)
}

func TestAssistant_ConcurrentSessions(t *testing.T) {
	a, store := newTestAssistant(t)
	ctx := context.Background()

	sessions := []string{"c1", "c2", "c3", "c4", "c5"}

	var wg sync.WaitGroup
	for _, id := range sessions {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			for i := 0; i < 5; i++ {
				_, err := a.ProcessMessage(ctx, id, "book an appointment")
				assert.NoError(t, err)
			}
		}(id)
	}
	wg.Wait()

	assert.Equal(t, len(sessions), store.Len())
	for _, id := range sessions {
		conv, err := store.Get(ctx, id)
		require.NoError(t, err)
		// greeting + 5 user/assistant pairs
		assert.Len(t, conv.History, 11)
	}
}

func TestAssistant_HistoryConcurrentWithProcessing(t *testing.T) {
	a, _ := newTestAssistant(t)
	ctx := context.Background()

	_, err := a.StartConversation(ctx, "busy")
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			_, err := a.ProcessMessage(ctx, "busy", "book an appointment")
			assert.NoError(t, err)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			history, err := a.History(ctx, "busy")
			assert.NoError(t, err)
			// never a dangling user turn without its reply
			assert.True(t, len(history)%2 == 1, "history observed mid-turn: %d entries", len(history))
		}
	}()
	wg.Wait()

	history, err := a.History(ctx, "busy")
	require.NoError(t, err)
	assert.Len(t, history, 41)
}

func TestAssistant_HistoryReturnsCopy(t *testing.T) {
	a, _ := newTestAssistant(t)
	ctx := context.Background()

	_, err := a.ProcessMessage(ctx, "copy", "hello")
	require.NoError(t, err)

	history, err := a.History(ctx, "copy")
	require.NoError(t, err)
	require.NotEmpty(t, history)

	history[0].Text = "tampered"

	fresh, err := a.History(ctx, "copy")
	require.NoError(t, err)
	assert.NotEqual(t, "tampered", fresh[0].Text)
}

func TestAssistant_SessionLockIsStable(t *testing.T) {
	a, _ := newTestAssistant(t)

	assert.Same(t, a.sessionLock("s1"), a.sessionLock("s1"))

	// lock set stays fixed no matter how many sessions are seen
	seen := make(map[*sync.Mutex]struct{})
	for i := 0; i < 1000; i++ {
		seen[a.sessionLock(uuid.NewString())] = struct{}{}
	}
	assert.LessOrEqual(t, len(seen), lockStripes)
}

func TestAssistant_StoreFailureSurfaces(t *testing.T) {
	gw := &mockGateway{}
	expectCatalog(gw)

	store := &failingStore{}
	a := New(store, newTestManager(gw), testLogger())

	_, err := a.ProcessMessage(context.Background(), "s", "hello")
	require.Error(t, err)
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) (*Conversation, error) {
	return nil, ErrSessionNotFound
}

func (failingStore) Set(context.Context, string, *Conversation) error {
	return errGatewayFailure
}

func (failingStore) Clear(context.Context, string) error { return nil }
