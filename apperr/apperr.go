package apperr

import (
	"errors"
	"fmt"
)

type Code string

const (
	CodeValidation   Code = "VALIDATION"
	CodeNotFound     Code = "NOT_FOUND"
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeConflict     Code = "CONFLICT"
)

// Error carries enough context (entity, id, rule) for the caller to render
// a precise message. Rule is the name of the violated check, e.g.
// "collaboration.decide.owner_only".
type Error struct {
	Code     Code
	Entity   string
	EntityID uint
	Rule     string
	Message  string
}

func (e *Error) Error() string {
	if e.Entity != "" && e.EntityID != 0 {
		return fmt.Sprintf("%s %d: %s", e.Entity, e.EntityID, e.Message)
	}
	if e.Entity != "" {
		return fmt.Sprintf("%s: %s", e.Entity, e.Message)
	}
	return e.Message
}

func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

func NotFound(entity string, id uint) *Error {
	return &Error{Code: CodeNotFound, Entity: entity, EntityID: id, Message: "not found"}
}

func Unauthorized(rule, msg string) *Error {
	return &Error{Code: CodeUnauthorized, Rule: rule, Message: msg}
}

func Conflict(entity string, id uint, msg string) *Error {
	return &Error{Code: CodeConflict, Entity: entity, EntityID: id, Message: msg}
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code == code
	}
	return false
}
