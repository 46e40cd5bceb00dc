package sessions

import (
	"context"
	"fmt"
	"testing"

	agent "github.com/liralabs/lira-core/core"
	"github.com/liralabs/lira-core/core/prompts"
)

func newTestRegistry() *Registry {
	return NewRegistry(func(mode prompts.Mode, level prompts.Level, scenario string) (*agent.Agent, error) {
		return agent.New(
			agent.WithMode(mode),
			agent.WithLevel(level),
			agent.WithScenario(scenario),
		), nil
	})
}

func TestCreateRegistersSession(t *testing.T) {
	registry := newTestRegistry()

	session, err := registry.Create(context.Background(), prompts.ModeRoleplay, prompts.LevelB2, "restaurant")
	if err != nil {
		t.Fatalf("expected session to be created, got %v", err)
	}
	defer registry.EndAll()

	if session.ID == "" {
		t.Fatalf("expected session to get an id")
	}
	if session.Mode != prompts.ModeRoleplay || session.Level != prompts.LevelB2 || session.Scenario != "restaurant" {
		t.Fatalf("unexpected session settings: %+v", session)
	}

	got, ok := registry.Get(session.ID)
	if !ok || got != session {
		t.Fatalf("expected Get to return the created session")
	}
	if registry.Len() != 1 {
		t.Fatalf("expected one live session, got %d", registry.Len())
	}
}

func TestCreatePropagatesFactoryError(t *testing.T) {
	registry := NewRegistry(func(prompts.Mode, prompts.Level, string) (*agent.Agent, error) {
		return nil, fmt.Errorf("no api key")
	})

	if _, err := registry.Create(context.Background(), prompts.DefaultMode, prompts.DefaultLevel, ""); err == nil {
		t.Fatalf("expected factory error to propagate")
	}
	if registry.Len() != 0 {
		t.Fatalf("expected no session registered after a failed create")
	}
}

func TestSetModeUpdatesSessionAndAgent(t *testing.T) {
	registry := newTestRegistry()
	session, err := registry.Create(context.Background(), prompts.DefaultMode, prompts.DefaultLevel, "")
	if err != nil {
		t.Fatalf("expected session to be created, got %v", err)
	}
	defer registry.EndAll()

	if err := registry.SetMode(session.ID, prompts.ModeCorrective); err != nil {
		t.Fatalf("expected mode change to succeed, got %v", err)
	}
	if session.Mode != prompts.ModeCorrective {
		t.Fatalf("expected session record updated, got %v", session.Mode)
	}
	if session.Agent.Mode() != prompts.ModeCorrective {
		t.Fatalf("expected agent updated, got %v", session.Agent.Mode())
	}

	if err := registry.SetMode("missing", prompts.ModeGuided); err == nil {
		t.Fatalf("expected error for unknown session")
	}
}

func TestEndRemovesSession(t *testing.T) {
	registry := newTestRegistry()
	session, err := registry.Create(context.Background(), prompts.DefaultMode, prompts.DefaultLevel, "")
	if err != nil {
		t.Fatalf("expected session to be created, got %v", err)
	}

	ended, err := registry.End(session.ID)
	if err != nil {
		t.Fatalf("expected end to succeed, got %v", err)
	}
	if ended != session {
		t.Fatalf("expected the ended session returned")
	}
	if _, ok := registry.Get(session.ID); ok {
		t.Fatalf("expected session removed from registry")
	}

	if _, err := registry.End(session.ID); err == nil {
		t.Fatalf("expected error ending the session twice")
	}
}

func TestEndAllClosesEverything(t *testing.T) {
	registry := newTestRegistry()
	for range 3 {
		if _, err := registry.Create(context.Background(), prompts.DefaultMode, prompts.DefaultLevel, ""); err != nil {
			t.Fatalf("expected session to be created, got %v", err)
		}
	}

	registry.EndAll()
	if registry.Len() != 0 {
		t.Fatalf("expected no live sessions after EndAll, got %d", registry.Len())
	}
}
