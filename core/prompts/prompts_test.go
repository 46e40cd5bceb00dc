package prompts

import (
	"strings"
	"testing"
)

func TestSystemPromptIncludesLevel(t *testing.T) {
	prompt := SystemPrompt(ModeFreeTalk, LevelB2, "")

	if !strings.Contains(prompt, "Level: B2") {
		t.Errorf("expected level in prompt, got %q", prompt)
	}
	if !strings.Contains(prompt, "Chat naturally.") {
		t.Errorf("expected free talk instructions, got %q", prompt)
	}
}

func TestSystemPromptUnknownModeFallsBackToFreeTalk(t *testing.T) {
	prompt := SystemPrompt(Mode("debate"), LevelB1, "")

	if !strings.Contains(prompt, "Chat naturally.") {
		t.Errorf("expected free talk instructions, got %q", prompt)
	}
}

func TestSystemPromptRoleplayResolvesCannedScenario(t *testing.T) {
	prompt := SystemPrompt(ModeRoleplay, LevelB1, "restaurant")

	if !strings.Contains(prompt, "You are a waiter at a restaurant taking an order.") {
		t.Errorf("expected canned scenario text, got %q", prompt)
	}
}

func TestSystemPromptRoleplayPassesThroughCustomScenario(t *testing.T) {
	prompt := SystemPrompt(ModeRoleplay, LevelB1, "You are a barista at a busy coffee shop.")

	if !strings.Contains(prompt, "Stay in character: You are a barista at a busy coffee shop.") {
		t.Errorf("expected custom scenario text, got %q", prompt)
	}
}

func TestSystemPromptGuidedIncludesLevelInInstructions(t *testing.T) {
	prompt := SystemPrompt(ModeGuided, LevelA2, "")

	if !strings.Contains(prompt, "Ask simple questions for A2.") {
		t.Errorf("expected guided instructions for the level, got %q", prompt)
	}
}

func TestGreetingPerMode(t *testing.T) {
	if greeting := Greeting(ModeRoleplay); greeting != "Ready for roleplay! What scenario?" {
		t.Errorf("unexpected roleplay greeting: %q", greeting)
	}
	if greeting := Greeting(Mode("debate")); greeting != "Hey! What's up?" {
		t.Errorf("expected free talk greeting for unknown mode, got %q", greeting)
	}
}

func TestParseMode(t *testing.T) {
	if mode, ok := ParseMode("corrective"); !ok || mode != ModeCorrective {
		t.Errorf("expected corrective to parse, got %q, %v", mode, ok)
	}
	if _, ok := ParseMode("debate"); ok {
		t.Error("expected unknown mode to fail parsing")
	}
}

func TestParseLevel(t *testing.T) {
	if level, ok := ParseLevel("C1"); !ok || level != LevelC1 {
		t.Errorf("expected C1 to parse, got %q, %v", level, ok)
	}
	if _, ok := ParseLevel("D1"); ok {
		t.Error("expected unknown level to fail parsing")
	}
}
