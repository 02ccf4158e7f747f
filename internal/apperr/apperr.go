// Package apperr carries the error kinds the store reports to its caller.
// Every operation fails with exactly one of three kinds so the presentation
// layer can decide how to surface it without inspecting messages.
package apperr

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindConflict
	KindNotFound
)

// PgUniqueViolation is the Postgres error code for unique constraint failures.
const PgUniqueViolation = "23505"

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func Validationf(format string, args ...any) error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func Conflictf(format string, args ...any) error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

// KindOf reports the kind of err, or zero when err is not a store error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func IsValidation(err error) bool { return KindOf(err) == KindValidation }
func IsConflict(err error) bool   { return KindOf(err) == KindConflict }
func IsNotFound(err error) bool   { return KindOf(err) == KindNotFound }

// IsUniqueViolation reports whether err is a Postgres unique constraint
// violation, so repositories can translate it into a conflict.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == PgUniqueViolation
}
