// Package provider holds helpers shared by the SDK-backed chat backends.
package provider

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	ai "github.com/spetersoncode/gitscribe"
)

// ErrNoModel is returned when a request does not name a model code.
var ErrNoModel = errors.New("no model code in request")

// StatusError categorizes a failed HTTP exchange with a backend.
// header may be nil when the SDK does not expose the response.
func StatusError(err error, code int, header http.Header) error {
	return ai.NewStatusError(err.Error(), code, ParseRetryAfter(header), err)
}

// ParseRetryAfter reads a Retry-After header given in seconds or as an HTTP date.
func ParseRetryAfter(header http.Header) time.Duration {
	v := header.Get("Retry-After")
	if v == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(v); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		return max(time.Until(t), 0)
	}
	return 0
}

// ResponseHeader returns resp's header, or nil when there is no response.
func ResponseHeader(resp *http.Response) http.Header {
	if resp == nil {
		return nil
	}
	return resp.Header
}
