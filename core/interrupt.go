package agent

import "sync/atomic"

// interruptFlag is the per-conversation abort signal raised when new user
// speech arrives. It is cleared when the next response cycle begins, so any
// worker holding work from an earlier cycle must pair the flag with that
// cycle's context to avoid acting on a stale read.
type interruptFlag struct {
	value atomic.Bool
}

func (f *interruptFlag) Set()        { f.value.Store(true) }
func (f *interruptFlag) Clear()      { f.value.Store(false) }
func (f *interruptFlag) IsSet() bool { return f.value.Load() }
