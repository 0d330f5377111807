package crud

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindConflict Kind = "conflict"
	KindNotFound Kind = "not_found"
	KindEmpty    Kind = "empty"
	KindInvalid  Kind = "invalid"
	KindInternal Kind = "internal"
)

// InternalMessage отдаётся клиенту при любой ошибке хранилища. Причина
// остаётся в Err и пишется только в лог.
const InternalMessage = "Ошибка на стороне сервера"

var (
	ErrConflict = &Error{Kind: KindConflict}
	ErrNotFound = &Error{Kind: KindNotFound}
	ErrEmpty    = &Error{Kind: KindEmpty}
	ErrInvalid  = &Error{Kind: KindInvalid}
	ErrInternal = &Error{Kind: KindInternal}
)

// Error описывает результат операции, который маршрутизатор превращает в HTTP-ответ.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is сравнивает только вид ошибки: errors.Is(err, crud.ErrNotFound).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func Conflict(l Label) *Error { return &Error{Kind: KindConflict, Message: l.Conflict()} }

func NotFound(l Label) *Error { return &Error{Kind: KindNotFound, Message: l.NotFound()} }

func Empty(l Label) *Error { return &Error{Kind: KindEmpty, Message: l.Empty} }

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: InternalMessage, Err: err}
}

func Invalid(format string, args ...any) *Error {
	return &Error{Kind: KindInvalid, Message: fmt.Sprintf(format, args...)}
}

// KindOf возвращает вид ошибки; всё, что не *Error, считается внутренней.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
