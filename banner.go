package transitdirections

import (
	"context"
	"errors"
	"net/http"

	"github.com/theoremus-urban-solutions/transit-directions/config"
	"github.com/theoremus-urban-solutions/transit-directions/directions"
)

// Banner is the user-visible description of a failure.
type Banner struct {
	Title     string
	Message   string
	Retryable bool
	Err       error
}

// BannerFor maps a fetch or render error to what the user sees.
func BannerFor(err error) Banner {
	var (
		te *directions.TransportError
		me *directions.MalformedResponseError
		mr *directions.MissingRouteError
		ae *directions.APIError
	)
	switch {
	case err == nil:
		return Banner{}
	case errors.Is(err, context.Canceled):
		return Banner{Title: "Cancelled", Message: "Loading directions was cancelled.", Retryable: true, Err: err}
	case errors.As(err, &te):
		retry := te.StatusCode == 0 || te.StatusCode >= 500 || te.StatusCode == http.StatusTooManyRequests
		return Banner{
			Title:     "Network problem",
			Message:   "Directions could not be loaded. Check your connection and try again.",
			Retryable: retry,
			Err:       err,
		}
	case errors.As(err, &me):
		return Banner{
			Title:     "Unexpected response",
			Message:   "The directions service returned data that could not be read.",
			Retryable: true,
			Err:       err,
		}
	case errors.As(err, &mr):
		return Banner{
			Title:   "No route found",
			Message: "No route connects these places for the selected travel mode.",
			Err:     err,
		}
	case errors.As(err, &ae):
		switch ae.Status {
		case "OVER_QUERY_LIMIT", "UNKNOWN_ERROR":
			return Banner{Title: "Service busy", Message: "The directions service is busy. Try again shortly.", Retryable: true, Err: err}
		default:
			return Banner{Title: "Request rejected", Message: "The directions service rejected the request (" + ae.Status + ").", Err: err}
		}
	case errors.Is(err, directions.ErrInvalidQuery):
		return Banner{Title: "Invalid request", Message: "Origin, destination and travel mode must be set.", Err: err}
	case errors.Is(err, config.ErrMissingAPIKey):
		return Banner{Title: "Not configured", Message: "No Maps API key has been provided.", Err: err}
	default:
		return Banner{Title: "Something went wrong", Message: "Directions could not be shown.", Retryable: true, Err: err}
	}
}
