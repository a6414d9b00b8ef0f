package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/iac-studio/converge/internal/api/types"
	appErr "github.com/iac-studio/converge/pkg/errors"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the code of an AppError to its HTTP status. Anything else is a 500.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), types.APIResponse{Success: false, Error: types.FromAppError(err)})
}

func writeErrorStr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, types.APIResponse{Success: false, Error: &types.APIError{Code: string(appErr.CodeInvalid), Message: msg}})
}

func statusFor(err error) int {
	switch {
	case appErr.IsCode(err, appErr.CodeInvalid):
		return http.StatusBadRequest
	case appErr.IsCode(err, appErr.CodeUnauthorized):
		return http.StatusUnauthorized
	case appErr.IsCode(err, appErr.CodeNotFound):
		return http.StatusNotFound
	case appErr.IsCode(err, appErr.CodeConflict), appErr.IsCode(err, appErr.CodeAlreadyExists):
		return http.StatusConflict
	case appErr.IsCode(err, appErr.CodeUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
