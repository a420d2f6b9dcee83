// Package apperrors classifies failures before they cross the API
// boundary so raw upstream error text never reaches a client.
package apperrors

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindStoreUnavailable
	KindMediaUnavailable
)

type Error struct {
	kind  Kind
	msg   string
	msgID string
	err   error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.err }

func (e *Error) Kind() Kind { return e.kind }

// New builds a classified error with no cause.
func New(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

// NewID builds a classified error carrying a specific localized message
// ID instead of the class default.
func NewID(kind Kind, messageID string) *Error {
	return &Error{kind: kind, msg: messageID, msgID: messageID}
}

// Wrap classifies an underlying error. The cause stays available for
// logs via Unwrap but is never shown to clients.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{kind: kind, msg: msg, err: err}
}

// KindOf reports the classification of err, KindInternal when unclassified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return KindInternal
}

// MessageID maps a classification to its localized client message ID.
func MessageID(err error) string {
	var e *Error
	if errors.As(err, &e) && e.msgID != "" {
		return e.msgID
	}
	switch KindOf(err) {
	case KindValidation:
		return "error.validation"
	case KindNotFound:
		return "error.not_found"
	case KindStoreUnavailable:
		return "error.store_unavailable"
	case KindMediaUnavailable:
		return "error.media_unavailable"
	default:
		return "error.internal"
	}
}
