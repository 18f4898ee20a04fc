package assistant

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"math/rand"
	"sync"
)

// lockStripes bounds the lock set: session ids hash onto a fixed stripe, so
// the set never grows with the number of sessions ever seen.
const lockStripes = 64

// Assistant is the conversational booking façade exposed to the surrounding
// application. Turns within one session are processed strictly sequentially;
// distinct sessions run in parallel.
type Assistant struct {
	store   Store
	manager *Manager
	log     *slog.Logger

	locks [lockStripes]sync.Mutex

	pickGreeting func() string
}

// New constructs an Assistant over the given session store and dialogue
// manager.
func New(store Store, manager *Manager, log *slog.Logger) *Assistant {
	if log == nil {
		log = slog.Default()
	}

	return &Assistant{
		store:   store,
		manager: manager,
		log:     log,
		pickGreeting: func() string {
			return greetings[rand.Intn(len(greetings))]
		},
	}
}

// StartConversation opens (or re-greets) the session and returns the
// greeting text.
func (a *Assistant) StartConversation(ctx context.Context, sessionID string) (string, error) {
	lock := a.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	conv, err := a.loadOrCreate(ctx, sessionID)
	if err != nil {
		return "", err
	}

	greeting := a.pickGreeting()
	conv.History = append(conv.History, Message{Role: RoleAssistant, Text: greeting})

	if err := a.store.Set(ctx, sessionID, conv); err != nil {
		return "", fmt.Errorf("save conversation: %w", err)
	}

	return greeting, nil
}

// ProcessMessage runs one dialogue turn and returns the assistant's reply.
// An unknown session id silently starts a new conversation.
func (a *Assistant) ProcessMessage(ctx context.Context, sessionID, text string) (string, error) {
	lock := a.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	a.log.Info("processing assistant message", slog.String("session_id", sessionID))

	conv, err := a.loadOrCreate(ctx, sessionID)
	if err != nil {
		return "", err
	}

	if len(conv.History) == 0 {
		// first contact arrived via ProcessMessage, greet implicitly
		conv.History = append(conv.History, Message{Role: RoleAssistant, Text: a.pickGreeting()})
	}

	conv.History = append(conv.History, Message{Role: RoleUser, Text: text})

	reply := a.manager.Step(ctx, conv, text)

	conv.History = append(conv.History, Message{Role: RoleAssistant, Text: reply})

	if err := a.store.Set(ctx, sessionID, conv); err != nil {
		return "", fmt.Errorf("save conversation: %w", err)
	}

	return reply, nil
}

// History returns the ordered conversation history for the session. Unknown
// sessions yield an empty history, not an error. The session lock is held so
// a read never observes a turn mid-append, and the returned slice is a copy.
func (a *Assistant) History(ctx context.Context, sessionID string) ([]Message, error) {
	lock := a.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	conv, err := a.store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return []Message{}, nil
		}
		return nil, err
	}

	history := make([]Message, len(conv.History))
	copy(history, conv.History)

	return history, nil
}

func (a *Assistant) loadOrCreate(ctx context.Context, sessionID string) (*Conversation, error) {
	conv, err := a.store.Get(ctx, sessionID)
	if err == nil {
		return conv, nil
	}

	if !errors.Is(err, ErrSessionNotFound) {
		return nil, fmt.Errorf("load conversation: %w", err)
	}

	return &Conversation{SessionID: sessionID}, nil
}

// sessionLock returns the stripe mutex serializing turns for one session id.
// Distinct sessions landing on the same stripe serialize against each other,
// which is harmless; the same session always lands on the same stripe.
func (a *Assistant) sessionLock(sessionID string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(sessionID))
	return &a.locks[h.Sum32()%lockStripes]
}
