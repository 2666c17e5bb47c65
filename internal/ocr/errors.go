package ocr

import (
	"errors"
	"fmt"
)

// Sentinel errors for the card-scanning pipeline. Each terminal failure of
// the pipeline is one of these or one of the typed errors below, so callers
// can branch on the failure origin with errors.Is / errors.As.
var (
	// ErrMissingCredential is returned before any network activity when
	// the Gemini API key is not configured.
	ErrMissingCredential = errors.New("missing GEMINI_API_KEY")

	// ErrEmptyContent is returned when the image URL served a 2xx response
	// with a zero-length body.
	ErrEmptyContent = errors.New("image response has empty body")

	// ErrUnsupportedType is returned when the fetched resource is not an
	// image/* content type.
	ErrUnsupportedType = errors.New("unsupported content type, expected image/*")

	// ErrEmptyResponse is returned when the vision endpoint answered 2xx
	// but produced no text at all. Text that is present but not valid JSON
	// is NOT this error; it goes through the fallback parser instead.
	ErrEmptyResponse = errors.New("empty response from vision model")
)

// NetworkError wraps a transport-level failure (DNS, connect, TLS) while
// fetching the card image.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("failed to fetch image %q: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// InvalidResponseError reports a non-success HTTP status from the image
// source.
type InvalidResponseError struct {
	URL        string
	StatusCode int
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("image fetch returned status %d for %q", e.StatusCode, e.URL)
}

// UpstreamError reports a non-success HTTP status from the vision endpoint,
// carrying whatever message body it returned.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("vision endpoint returned status %d: %s", e.StatusCode, e.Message)
}
