package services

import "errors"

type ErrorKind string

const (
	KindValidation          ErrorKind = "validation_error"
	KindForbidden           ErrorKind = "forbidden"
	KindNotFound            ErrorKind = "not_found"
	KindInsufficientCredits ErrorKind = "insufficient_credits"
	KindAIGenerationFailed  ErrorKind = "ai_generation_failed"
	KindInviteNotActionable ErrorKind = "invite_not_actionable"
	KindEmailMismatch       ErrorKind = "email_mismatch"
	KindConflict            ErrorKind = "conflict"
	KindInvalidOrExpired    ErrorKind = "invalid_or_expired"
	KindInternal            ErrorKind = "internal"
)

var (
	ErrValidation          = errors.New("validation error")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrAIGenerationFailed  = errors.New("ai generation failed")
	ErrInviteNotActionable = errors.New("invite not actionable")
	ErrEmailMismatch       = errors.New("email mismatch")
	ErrConflict            = errors.New("conflict")
	ErrInvalidOrExpired    = errors.New("invite invalid or expired")
	ErrStorage             = errors.New("storage failure")
)

var errorKinds = []struct {
	err  error
	kind ErrorKind
}{
	{ErrValidation, KindValidation},
	{ErrForbidden, KindForbidden},
	{ErrNotFound, KindNotFound},
	{ErrInsufficientCredits, KindInsufficientCredits},
	{ErrAIGenerationFailed, KindAIGenerationFailed},
	{ErrInviteNotActionable, KindInviteNotActionable},
	{ErrEmailMismatch, KindEmailMismatch},
	{ErrConflict, KindConflict},
	{ErrInvalidOrExpired, KindInvalidOrExpired},
}

// KindOf maps an error returned by a service to its stable kind.
// Anything not wrapping a known sentinel is internal.
func KindOf(err error) ErrorKind {
	for _, candidate := range errorKinds {
		if errors.Is(err, candidate.err) {
			return candidate.kind
		}
	}
	return KindInternal
}

// PublicMessage is the message safe to show a client. Internal failures never
// expose their cause.
func PublicMessage(err error) string {
	if err == nil {
		return ""
	}
	if KindOf(err) == KindInternal {
		return "internal error"
	}
	return err.Error()
}
