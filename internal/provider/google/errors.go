package google

import (
	"errors"
	"fmt"

	"github.com/spetersoncode/gitscribe/internal/provider"
	"google.golang.org/genai"
)

// BlockedError indicates the prompt was blocked by content filtering.
type BlockedError struct {
	Reason string
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("google: prompt blocked: %s", e.Reason)
}

// wrapError categorizes genai API errors. The SDK does not expose response
// headers, so Retry-After is unavailable.
func wrapError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return provider.StatusError(err, apiErr.Code, nil)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return provider.StatusError(err, apiErrPtr.Code, nil)
	}
	return err
}
