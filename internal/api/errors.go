package api

import "fmt"

// Error is returned when the backend answers with a non-2xx status.
// Detail carries the backend's own message when one was provided.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("api: status %d", e.Status)
	}
	return fmt.Sprintf("api: %s", e.Detail)
}

// Unauthorized reports whether the error is a 401 from the backend.
// The client performs no automatic token refresh; the session must be
// re-established by the caller.
func Unauthorized(err error) bool {
	apiErr, ok := err.(*Error)
	return ok && apiErr.Status == 401
}

// Detail extracts the backend-provided message from an error, or "" when
// the error is not an API error or carries no message.
func Detail(err error) string {
	if apiErr, ok := err.(*Error); ok {
		return apiErr.Detail
	}
	return ""
}
