// Package prompts holds the conversation modes, learner levels, and canned
// text the agent speaks and prompts with.
package prompts

import "strings"

// Mode selects the conversation style of the agent.
type Mode string

const (
	ModeFreeTalk   Mode = "free_talk"
	ModeCorrective Mode = "corrective"
	ModeRoleplay   Mode = "roleplay"
	ModeGuided     Mode = "guided"
)

// Level is a CEFR proficiency level of the learner.
type Level string

const (
	LevelA2 Level = "A2"
	LevelB1 Level = "B1"
	LevelB2 Level = "B2"
	LevelC1 Level = "C1"
)

const (
	DefaultMode  = ModeFreeTalk
	DefaultLevel = LevelB1
)

// FallbackResponse is spoken when generating a reply fails.
const FallbackResponse = "I'm sorry, I had trouble understanding. Could you repeat that?"

const baseSystemPrompt = "You're LIRA, a friendly English buddy. Keep responses to ONE short sentence. Be warm and curious. Level: {level}"

var modePrompts = map[Mode]string{
	ModeFreeTalk:   "Chat naturally. React briefly, ask one question.",
	ModeCorrective: `Chat, then quick fix: "Try saying X instead of Y!" `,
	ModeRoleplay:   "Stay in character: {scenario}",
	ModeGuided:     "Ask simple questions for {level}. Be encouraging.",
}

var roleplayScenarios = map[string]string{
	"job_interview": "You are a hiring manager conducting a job interview for a marketing position.",
	"restaurant":    "You are a waiter at a restaurant taking an order.",
	"hotel":         "You are a hotel receptionist helping a guest check in.",
	"airport":       "You are an airline staff member helping a passenger with their flight.",
	"shopping":      "You are a sales assistant helping a customer find clothes.",
	"doctor":        "You are a doctor conducting a routine health checkup.",
}

var greetings = map[Mode]string{
	ModeFreeTalk:   "Hey! What's up?",
	ModeCorrective: "Hi! Let's chat. I'll help with tips!",
	ModeRoleplay:   "Ready for roleplay! What scenario?",
	ModeGuided:     "Hi! How's your day going?",
}

// SystemPrompt builds the complete system prompt for a mode and level. The
// scenario is either a key of the canned roleplay scenarios or free-form text
// used as the scenario itself; it only applies to [ModeRoleplay].
func SystemPrompt(mode Mode, level Level, scenario string) string {
	base := strings.ReplaceAll(baseSystemPrompt, "{level}", string(level))

	modePrompt, ok := modePrompts[mode]
	if !ok {
		modePrompt = modePrompts[ModeFreeTalk]
	}

	if mode == ModeRoleplay && scenario != "" {
		description, ok := roleplayScenarios[scenario]
		if !ok {
			description = scenario
		}
		modePrompt = strings.ReplaceAll(modePrompt, "{scenario}", description)
	} else if mode == ModeGuided {
		modePrompt = strings.ReplaceAll(modePrompt, "{level}", string(level))
	}

	return base + "\n" + modePrompt
}

// Greeting returns the opening line the agent speaks for a mode. Unknown
// modes greet like [ModeFreeTalk].
func Greeting(mode Mode) string {
	if greeting, ok := greetings[mode]; ok {
		return greeting
	}
	return greetings[ModeFreeTalk]
}

// ParseMode validates a raw mode string.
func ParseMode(raw string) (Mode, bool) {
	switch Mode(raw) {
	case ModeFreeTalk, ModeCorrective, ModeRoleplay, ModeGuided:
		return Mode(raw), true
	}
	return "", false
}

// ParseLevel validates a raw level string.
func ParseLevel(raw string) (Level, bool) {
	switch Level(raw) {
	case LevelA2, LevelB1, LevelB2, LevelC1:
		return Level(raw), true
	}
	return "", false
}
