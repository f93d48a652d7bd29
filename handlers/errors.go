// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/foxvote/cliparse"
	"github.com/danielhkuo/foxvote/middleware"
	"github.com/danielhkuo/foxvote/models"
	"github.com/danielhkuo/foxvote/voting"
)

// serviceError maps an error from package voting to an HTTP response.
// Internal error text is only exposed in development mode.
func serviceError(w http.ResponseWriter, cfg cliparse.Config, err error) {
	var (
		status int
		resp   models.ErrorResponse
	)

	switch {
	case errors.Is(err, voting.ErrInvalidCandidate):
		status = http.StatusBadRequest
		resp.Message = "Invalid fox image: " + reason(err, voting.ErrInvalidCandidate)
	case errors.Is(err, voting.ErrInvalidVoter):
		status = http.StatusBadRequest
		resp.Message = "Missing voter identity"
	case errors.Is(err, voting.ErrCandidateNotFound):
		status = http.StatusNotFound
		resp.Message = "Fox not found"
	case errors.Is(err, voting.ErrStorage):
		slog.Error("storage failure", "error", err)
		status = http.StatusServiceUnavailable
		resp.Message = "Service temporarily unavailable, please try again"
	default:
		slog.Error("unexpected service error", "error", err)
		status = http.StatusInternalServerError
		resp.Message = "Something went wrong"
	}

	if cfg.IsDevelopment() && status >= 500 {
		resp.Detail = err.Error()
	}

	middleware.WriteError(w, status, resp)
}

// reason strips the sentinel prefix from a wrapped validation error
func reason(err, sentinel error) string {
	msg := err.Error()
	if rest, ok := strings.CutPrefix(msg, sentinel.Error()+": "); ok {
		return rest
	}
	return msg
}
