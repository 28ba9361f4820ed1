package workflow

import (
	"errors"
	"fmt"

	"github.com/spetersoncode/gitscribe/model"
	"github.com/spetersoncode/gitscribe/secrets"
)

// Kind classifies why a run ended early.
type Kind string

const (
	KindRepositoryInvalid Kind = "repository_invalid"
	KindNothingToCommit   Kind = "nothing_to_commit"
	KindUserDeclined      Kind = "user_declined"
	KindUnknownModel      Kind = "unknown_model"
	KindMissingCredential Kind = "missing_credential"
	KindGenerationFailed  Kind = "generation_failed"
	KindValidationFailed  Kind = "validation_failed"
	KindSecretDetected    Kind = "secret_detected"
	KindPushFailed        Kind = "push_failed"
	KindGitFailed         Kind = "git_failed"
	KindPromptFailed      Kind = "prompt_failed"
	KindConfigInvalid     Kind = "config_invalid"
)

// Error is returned for every run that does not reach Done.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Fatal reports whether the error aborts the run. Only a declined
// confirmation is not fatal.
func (e *Error) Fatal() bool {
	return e.Kind != KindUserDeclined
}

// KindOf returns the Kind of the first *Error in err's chain, or "".
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func fail(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

func wrap(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

var errDeclined = errors.New("declined")

func declined(what string) *Error {
	return &Error{Kind: KindUserDeclined, Err: fmt.Errorf("%s: %w", what, errDeclined)}
}

// resolveKind maps a resolution failure to its Kind. Anything other than
// an unknown name means no usable route was found.
func resolveKind(err error) Kind {
	if errors.Is(err, model.ErrUnknownModel) {
		return KindUnknownModel
	}
	return KindMissingCredential
}

// scanKind separates detections from failures to ask the user.
func scanKind(err error) Kind {
	if errors.Is(err, secrets.ErrSecretDetected) {
		return KindSecretDetected
	}
	return KindPromptFailed
}
