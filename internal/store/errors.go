package store

import (
	"errors"

	"github.com/fekuna/omnipos-terminal/internal/api"
)

// ErrorMessage picks the user-facing message a store records for a failed
// fetch: the server's message when there is one, a generic connectivity
// fallback otherwise.
func ErrorMessage(err error, fallback string) string {
	var appErr *api.ApplicationError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}
