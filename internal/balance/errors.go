package balance

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidArgument is matched by every input error Compute returns.
var ErrInvalidArgument = errors.New("invalid argument")

// Violation describes one rejected input.
type Violation struct {
	ExpenseID   string // empty for couple/perspective problems
	Description string
}

func (v Violation) String() string {
	if v.ExpenseID == "" {
		return v.Description
	}
	return fmt.Sprintf("[%s] %s", v.ExpenseID, v.Description)
}

// ArgumentError collects every violation found in one Compute call.
type ArgumentError struct {
	Violations []Violation
}

func (e *ArgumentError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.String()
	}
	return fmt.Sprintf("%s: %s", ErrInvalidArgument, strings.Join(msgs, "; "))
}

func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}
