package survey

import (
	"errors"

	"github.com/gratefultolord/survey_bot/internal/db"
)

var (
	ErrValidation   = errors.New("survey: input failed validation")
	ErrUnauthorized = errors.New("survey: identity not allowed")
	ErrProtocol     = errors.New("survey: event not expected in this state")
	ErrIncomplete   = errors.New("survey: required field missing")
)

// Outcome names the error class for logs and metrics.
func Outcome(err error) string {
	var storeErr *db.StoreError

	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrProtocol):
		return "protocol"
	case errors.As(err, &storeErr):
		return "store"
	default:
		return "error"
	}
}
