package events

import "time"

// Kind identifies an event type within its receiver-facing namespace.
type Kind string

// Event is the contract every agent event satisfies. Concrete events embed
// [Base] and add their payload fields.
type Event interface {
	Kind() Kind
	Timestamp() time.Time
}

type Base struct {
	kind      Kind
	timestamp time.Time
}

func NewBase(kind Kind) Base {
	return Base{kind: kind, timestamp: time.Now()}
}

func (b Base) Kind() Kind {
	return b.kind
}

func (b Base) Timestamp() time.Time {
	return b.timestamp
}
