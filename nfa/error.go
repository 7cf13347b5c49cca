package nfa

import (
	"errors"
	"fmt"
)

// ErrNoStart indicates a Builder was asked to finalize before any start
// state was recorded.
var ErrNoStart = errors.New("nfa: no start state recorded")

// BuildError reports a structural problem found while validating a
// Builder's state graph before it is finalized into an NFA.
type BuildError struct {
	Message string
	StateID StateID
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	if e.StateID != InvalidState {
		return fmt.Sprintf("nfa: build error at state %d: %s", e.StateID, e.Message)
	}
	return fmt.Sprintf("nfa: build error: %s", e.Message)
}

// Unwrap lets BuildError participate in errors.Is/As chains rooted at
// ErrNoStart for the "no start state" case.
func (e *BuildError) Unwrap() error {
	if e.Message == "no start states recorded" {
		return ErrNoStart
	}
	return nil
}
