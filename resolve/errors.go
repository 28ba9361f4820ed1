package resolve

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spetersoncode/gitscribe/model"
)

// UnknownModelError is returned when a model name is not in the registry.
type UnknownModelError struct {
	Name string
}

func (e *UnknownModelError) Error() string {
	return fmt.Sprintf("unknown model %q", e.Name)
}

// Is makes errors.Is(err, model.ErrUnknownModel) match.
func (e *UnknownModelError) Is(target error) bool {
	return target == model.ErrUnknownModel
}

// ErrMissingCredential matches any *MissingCredentialError.
var ErrMissingCredential = errors.New("missing credential")

// MissingCredentialError is returned when no route for a model has a credential.
type MissingCredentialError struct {
	Model   string
	EnvVars []string // every variable that could have supplied a key, in fallback order
}

func (e *MissingCredentialError) Error() string {
	if len(e.EnvVars) == 0 {
		return fmt.Sprintf("model %q is not served by any route", e.Model)
	}
	return fmt.Sprintf("no credential for model %q: set one of %s", e.Model, strings.Join(e.EnvVars, ", "))
}

func (e *MissingCredentialError) Is(target error) bool {
	return target == ErrMissingCredential
}
