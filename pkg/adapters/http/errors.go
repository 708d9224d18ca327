package http

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/MIBbrandon/Athena"
	"github.com/MIBbrandon/Athena/pkg/adapters/solver"
	"github.com/MIBbrandon/Athena/pkg/domain"
)

// ErrBadRequest marks request bodies that could not be decoded.
var ErrBadRequest = errors.New("bad request")

// StatusFor maps an error onto the HTTP status returned to clients.
func StatusFor(err error) int {
	var inv *domain.InvariantError
	var se *solver.StatusError
	var ue *url.Error
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSolveInFlight), errors.Is(err, domain.ErrStepInProgress):
		return http.StatusConflict
	case errors.Is(err, domain.ErrPlaybackHalted):
		return http.StatusGone
	case errors.As(err, &inv):
		return http.StatusInternalServerError
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, domain.ErrInvalidSoddi),
		errors.Is(err, domain.ErrInputTooLarge),
		errors.Is(err, domain.ErrInvalidUTF8),
		errors.Is(err, domain.ErrSolverRejected):
		return http.StatusBadRequest
	case errors.As(err, &se), errors.Is(err, solver.ErrMalformedResponse), errors.As(err, &ue):
		return http.StatusBadGateway
	case errors.Is(err, athena.ErrNoSolver):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
