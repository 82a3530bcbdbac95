package lua

import (
	"errors"
	"fmt"
)

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when execution times out.
	ErrExecutionTimeout = errors.New("lua execution timeout")

	// ErrNotFunction is returned when calling a global that is not a
	// function.
	ErrNotFunction = errors.New("lua global is not a function")
)

// ScriptError reports a failed script call.
type ScriptError struct {
	// Func is the Lua function or chunk that failed.
	Func string

	Err error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("lua %s: %v", e.Func, e.Err)
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}
