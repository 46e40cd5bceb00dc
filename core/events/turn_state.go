package events

const (
	// KindTurnStarted identifies the start of a response cycle.
	KindTurnStarted Kind = "turn_state.started"
	// KindTurnCompleted identifies a fully generated reply.
	KindTurnCompleted Kind = "turn_state.completed"
	// KindTurnFailed identifies a failed generation.
	KindTurnFailed Kind = "turn_state.failed"
	// KindTurnCancelled identifies an interrupted cycle.
	KindTurnCancelled Kind = "turn_state.cancelled"
)

// TurnStarted marks the start of a response cycle for one utterance.
type TurnStarted struct {
	Base
	Utterance string
}

// NewTurnStarted creates a turn started event.
func NewTurnStarted(utterance string) TurnStarted {
	return TurnStarted{Base: NewBase(KindTurnStarted), Utterance: utterance}
}

// TurnCompleted marks a reply that was generated to completion.
type TurnCompleted struct {
	Base
	Utterance string
	Response  string
}

// NewTurnCompleted creates a turn completed event.
func NewTurnCompleted(utterance, response string) TurnCompleted {
	return TurnCompleted{Base: NewBase(KindTurnCompleted), Utterance: utterance, Response: response}
}

// TurnFailed marks a generation failure. The fallback apology is spoken in
// place of the reply.
type TurnFailed struct {
	Base
	Reason string
}

// NewTurnFailed creates a turn failed event.
func NewTurnFailed(reason string) TurnFailed {
	return TurnFailed{Base: NewBase(KindTurnFailed), Reason: reason}
}

// TurnCancelled marks a response cycle cut short by an interruption.
type TurnCancelled struct{ Base }

// NewTurnCancelled creates a turn cancelled event.
func NewTurnCancelled() TurnCancelled {
	return TurnCancelled{Base: NewBase(KindTurnCancelled)}
}
