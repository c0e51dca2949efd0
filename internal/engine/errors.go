package engine

import (
	"fmt"
	"strings"
)

// ErrorKind classifies a rejected command.
type ErrorKind uint8

const (
	// Unexpected marks protocol misuse, such as dispatching a non-creation
	// command to HandleNew.
	Unexpected ErrorKind = iota

	// Validation marks a named, coded business-rule violation.
	Validation
)

func (k ErrorKind) String() string {
	switch k {
	case Unexpected:
		return "unexpected"
	case Validation:
		return "validation"
	}
	return "unknown"
}

// Error is one coded reason for rejecting a command. Codes are stable
// strings intended for client-side branching, not just display.
type Error struct {
	Kind        ErrorKind `json:"kind"`
	Code        string    `json:"code"`
	Description string    `json:"description"`
}

func (e Error) Error() string {
	return fmt.Sprintf("%s [%s]: %s", e.Kind, e.Code, e.Description)
}

// ErrorList is the flat list of reasons a command was rejected.
type ErrorList []Error

func (l ErrorList) Error() string {
	msgs := make([]string, 0, len(l))
	for _, e := range l {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

// Contains reports whether the list carries an error with the given code.
func (l ErrorList) Contains(code string) bool {
	for _, e := range l {
		if e.Code == code {
			return true
		}
	}
	return false
}
