package services

import "fmt"

// InvalidInputError marks a request that is rejected before any parsing or
// I/O happens (bad file extension, missing field).
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string {
	return e.Message
}

// ExtractionError means the document parser failed or produced no text
// (image-based, corrupted or empty document).
type ExtractionError struct {
	Message string
	Err     error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// VectorizationError means a document reduced to zero vocabulary terms after
// normalization, so no TF-IDF vector could be built.
type VectorizationError struct {
	Message string
}

func (e *VectorizationError) Error() string {
	return e.Message
}

// UpstreamError carries the remote status and body of a failed Gemini call.
type UpstreamError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("upstream generation call failed with status %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("upstream generation call failed: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// ResponseParseError means the upstream reply was absent, malformed or did
// not match the expected structure. Detail is for logs only, never returned
// to the client.
type ResponseParseError struct {
	Detail string
	Err    error
}

func (e *ResponseParseError) Error() string {
	return "failed to parse upstream response"
}

func (e *ResponseParseError) Unwrap() error {
	return e.Err
}
