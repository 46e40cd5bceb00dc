// Package sessions tracks live conversation sessions, one agent per session.
package sessions

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	agent "github.com/liralabs/lira-core/core"
	"github.com/liralabs/lira-core/core/prompts"
	"go.opentelemetry.io/otel/attribute"
)

// Session is one live conversation and the agent driving it.
type Session struct {
	ID        string
	Agent     *agent.Agent
	Mode      prompts.Mode
	Level     prompts.Level
	Scenario  string
	StartedAt time.Time
}

// AgentFactory builds a configured agent for a new session.
type AgentFactory func(mode prompts.Mode, level prompts.Level, scenario string) (*agent.Agent, error)

// Registry owns the session map. Multiple registries can coexist, each with
// its own factory; there is no package-level state.
type Registry struct {
	newAgent AgentFactory

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewRegistry(newAgent AgentFactory) *Registry {
	return &Registry{newAgent: newAgent, sessions: map[string]*Session{}}
}

// Create builds and starts a session agent, then warms its filler cache and
// speaks the greeting in the background so the call returns immediately.
func (r *Registry) Create(ctx context.Context, mode prompts.Mode, level prompts.Level, scenario string) (*Session, error) {
	ctx, span := tracer.Start(ctx, "create session")
	defer span.End()

	conversationAgent, err := r.newAgent(mode, level, scenario)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to build session agent: %w", err)
	}

	if err := conversationAgent.Start(context.WithoutCancel(ctx)); err != nil {
		conversationAgent.Close()
		span.RecordError(err)
		return nil, fmt.Errorf("failed to start session agent: %w", err)
	}

	session := &Session{
		ID:        uuid.NewString(),
		Agent:     conversationAgent,
		Mode:      mode,
		Level:     level,
		Scenario:  scenario,
		StartedAt: time.Now(),
	}
	span.SetAttributes(attribute.String("session.id", session.ID))

	r.mu.Lock()
	r.sessions[session.ID] = session
	r.mu.Unlock()

	go func() {
		conversationAgent.WarmUpFillers(context.WithoutCancel(ctx))
		conversationAgent.Greet()
	}()

	return session, nil
}

func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	return session, ok
}

// SetMode switches the session's conversation mode. The change applies from
// the next response cycle.
func (r *Registry) SetMode(id string, mode prompts.Mode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return fmt.Errorf("session %s not found", id)
	}
	session.Mode = mode
	session.Agent.SetMode(mode)
	return nil
}

func (r *Registry) SetLevel(id string, level prompts.Level) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return fmt.Errorf("session %s not found", id)
	}
	session.Level = level
	session.Agent.SetLevel(level)
	return nil
}

func (r *Registry) SetScenario(id string, scenario string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return fmt.Errorf("session %s not found", id)
	}
	session.Scenario = scenario
	session.Agent.SetScenario(scenario)
	return nil
}

// End closes the session's agent and removes it from the registry. It
// returns the removed session so callers can finalize bookkeeping.
func (r *Registry) End(id string) (*Session, error) {
	r.mu.Lock()
	session, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("session %s not found", id)
	}

	session.Agent.Close()
	return session, nil
}

// EndAll closes every live session, for shutdown.
func (r *Registry) EndAll() {
	r.mu.Lock()
	sessions := make([]*Session, 0, len(r.sessions))
	for _, session := range r.sessions {
		sessions = append(sessions, session)
	}
	r.sessions = map[string]*Session{}
	r.mu.Unlock()

	for _, session := range sessions {
		session.Agent.Close()
	}
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
