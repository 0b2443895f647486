package datagolf

import "fmt"

// APIError is returned when the feed answers with a non-200 status. Callers
// that care (the cron pass treats a 503 from the feed as "try again next tick")
// can unwrap it with errors.As and inspect the status code.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("datagolf: request failed with status %d: %s", e.StatusCode, e.Message)
}
