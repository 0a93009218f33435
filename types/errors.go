package types

import "fmt"

// ConstructionError is returned when an instance of a class cannot be created
type ConstructionError struct {
	Class  *Class
	Reason string
}

func (e *ConstructionError) Error() string {
	if e.Class == nil {
		return "construction error: " + e.Reason
	}
	return fmt.Sprintf("cannot construct %s: %s", e.Class.ID(), e.Reason)
}

func NewConstructionError(c *Class, format string, args ...any) *ConstructionError {
	return &ConstructionError{Class: c, Reason: fmt.Sprintf(format, args...)}
}

// InferenceError is returned when type arguments cannot be reconciled along a
// type chain. The check is best-effort, not an exhaustive verification.
type InferenceError struct {
	Message string
}

func (e *InferenceError) Error() string {
	return "type inference error: " + e.Message
}

func NewInferenceError(format string, args ...any) *InferenceError {
	return &InferenceError{Message: fmt.Sprintf(format, args...)}
}

// MemberAccessError wraps a failure to read or write a member of an instance
type MemberAccessError struct {
	Class  *Class
	Member string
	Err    error
}

func (e *MemberAccessError) Error() string {
	owner := "<nil>"
	if e.Class != nil {
		owner = e.Class.ID()
	}
	return fmt.Sprintf("cannot access %s.%s: %v", owner, e.Member, e.Err)
}

func (e *MemberAccessError) Unwrap() error {
	return e.Err
}

func NewMemberAccessError(c *Class, member string, err error) *MemberAccessError {
	return &MemberAccessError{Class: c, Member: member, Err: err}
}
