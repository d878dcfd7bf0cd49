package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/leapstack-labs/leaptoken/pkg/platform"
	"github.com/leapstack-labs/leaptoken/pkg/theme"
	"github.com/leapstack-labs/leaptoken/pkg/token"
)

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// errorStatus maps an error to its HTTP status and kind.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, token.ErrUnknownToken):
		return http.StatusNotFound, "unknown_token"
	case errors.Is(err, theme.ErrUnknownTheme):
		return http.StatusNotFound, "unknown_theme"
	case errors.Is(err, platform.ErrUnsupportedPlatform):
		return http.StatusBadRequest, "unsupported_platform"
	case errors.Is(err, token.ErrMissingPlatformValue):
		return http.StatusUnprocessableEntity, "missing_platform_value"
	case errors.Is(err, platform.ErrFormat):
		return http.StatusUnprocessableEntity, "format"
	case errors.Is(err, token.ErrAliasCycle):
		return http.StatusInternalServerError, "alias_cycle"
	case errors.Is(err, token.ErrInvalidOverrideKey):
		return http.StatusInternalServerError, "invalid_override_key"
	}
	return http.StatusInternalServerError, "internal"
}

func writeError(w http.ResponseWriter, err error) {
	status, kind := errorStatus(err)
	writeErrorKind(w, status, kind, err)
}

func writeErrorKind(w http.ResponseWriter, status int, kind string, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error(), Kind: kind})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
