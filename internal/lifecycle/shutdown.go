// Package lifecycle coordinates graceful process shutdown.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Hook is a named shutdown step.
type Hook struct {
	Name string
	Fn   func(context.Context) error
}

// Shutdown coordinates graceful shutdown hooks in parallel.
type Shutdown struct {
	mu    sync.Mutex
	hooks []Hook
	log   *slog.Logger
}

// NewShutdown constructs a new Shutdown coordinator.
func NewShutdown(log *slog.Logger) *Shutdown {
	if log == nil {
		log = slog.Default()
	}

	return &Shutdown{log: log}
}

// Register adds a named shutdown hook.
func (s *Shutdown) Register(name string, fn func(context.Context) error) {
	if fn == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.hooks = append(s.hooks, Hook{Name: name, Fn: fn})
}

// Run executes all hooks in parallel, bounded by timeout, and returns the
// combined failures if any.
func (s *Shutdown) Run(timeout time.Duration) error {
	s.mu.Lock()
	hooks := make([]Hook, len(s.hooks))
	copy(hooks, s.hooks)
	s.mu.Unlock()

	if len(hooks) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		failures []string
	)

	for _, hook := range hooks {
		wg.Add(1)
		go func(hook Hook) {
			defer wg.Done()

			start := time.Now()
			if err := hook.Fn(ctx); err != nil {
				s.log.Error("shutdown hook failed",
					slog.String("hook", hook.Name),
					slog.Any("error", err),
				)
				mu.Lock()
				failures = append(failures, fmt.Sprintf("%s: %v", hook.Name, err))
				mu.Unlock()
				return
			}

			s.log.Info("shutdown hook completed",
				slog.String("hook", hook.Name),
				slog.Duration("duration", time.Since(start)),
			)
		}(hook)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return errors.New("shutdown timed out before all hooks completed")
	}

	if len(failures) > 0 {
		return errors.New("shutdown hooks failed: " + strings.Join(failures, "; "))
	}

	return nil
}
