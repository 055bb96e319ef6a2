package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bsan5566/food-waste/pkg/types"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Service) renderJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.WithError(err).Error("failed to encode response")
	}
}

// renderError maps the error taxonomy onto HTTP statuses. Unclassified
// errors are logged and reported as 500s without leaking detail.
func (s *Service) renderError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, types.ErrUnknownQuery),
		errors.Is(err, types.ErrUnknownReport),
		errors.Is(err, types.ErrProviderNotFound),
		errors.Is(err, types.ErrReceiverNotFound),
		errors.Is(err, types.ErrListingNotFound),
		errors.Is(err, types.ErrClaimNotFound):
		s.renderJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, types.ErrMissingParameter):
		s.renderJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, types.ErrConstraint):
		s.renderJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		s.logger.WithError(err).Error("request failed")
		s.renderJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func (s *Service) badRequest(w http.ResponseWriter, msg string) {
	s.renderJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}
