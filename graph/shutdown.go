package graph

import (
	"log/slog"
	"sync"
)

// ShutdownHooks is a Shutdowner that runs registered hooks in registration
// order. Activation units that open long-lived resources add a hook here so
// Decorator.Shutdown can release them.
type ShutdownHooks struct {
	mu    sync.Mutex
	hooks []func(g *Graph)
}

// Add registers a cleanup hook.
func (s *ShutdownHooks) Add(hook func(g *Graph)) {
	if hook == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, hook)
}

// Len returns the number of registered hooks.
func (s *ShutdownHooks) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.hooks)
}

// Shutdown runs all hooks in registration order. A panicking hook does not
// prevent the remaining hooks from running.
func (s *ShutdownHooks) Shutdown(g *Graph) {
	s.mu.Lock()
	hooks := make([]func(g *Graph), len(s.hooks))
	copy(hooks, s.hooks)
	s.mu.Unlock()

	for _, hook := range hooks {
		runHook(g, hook)
	}
}

func runHook(g *Graph, hook func(g *Graph)) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Shutdown hook panicked", "panic", r)
		}
	}()
	hook(g)
}

// Hooks returns the graph's ShutdownHooks coordinator, installing one if the
// graph has no shutdown coordinator yet. It returns nil if a different
// Shutdowner implementation is already registered.
func Hooks(g *Graph) *ShutdownHooks {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.shutdown == nil {
		hooks := &ShutdownHooks{}
		g.shutdown = hooks
		return hooks
	}
	if hooks, ok := g.shutdown.(*ShutdownHooks); ok {
		return hooks
	}
	return nil
}
