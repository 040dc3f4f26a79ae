package api

import "fmt"

// AuthError means the request carried missing or rejected credentials.
type AuthError struct {
	Status  int // 0 when no request was made (e.g. no token configured)
	Message string
}

func (e *AuthError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// APIError is any other failure talking to the deployment API, including
// transport errors (Status 0) and malformed responses.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}
