package http

import (
	stderrors "errors"
	"net/http"

	"github.com/slidecast/slidecast/api/types/v1alpha1"
	"github.com/slidecast/slidecast/internal/errors"
	"github.com/slidecast/slidecast/internal/scastd/pairing"
)

// respondError maps domain errors to API error responses.
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	code := "INTERNAL"
	message := "internal server error"
	status := http.StatusInternalServerError

	var rejected pairing.ErrCodeRejected
	switch {
	case stderrors.As(err, &rejected):
		code = "CODE_REJECTED"
		message = rejected.Reason
		status = http.StatusUnprocessableEntity
	case errors.IsInvalidInput(err):
		code = "INVALID_INPUT"
		message = err.Error()
		status = http.StatusBadRequest
	case errors.IsNetwork(err):
		code = "UPSTREAM_UNREACHABLE"
		message = "could not reach the content service"
		status = http.StatusBadGateway
	case errors.IsMalformedResponse(err):
		code = "UPSTREAM_INVALID"
		message = "the content service returned an unreadable response"
		status = http.StatusBadGateway
	}

	if status == http.StatusInternalServerError {
		h.logger.Error().Err(err).Msg("request failed")
	}

	h.respondJSON(w, status, v1alpha1.Error{Code: code, Message: message})
}
