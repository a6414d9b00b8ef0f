package middleware

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"

	"github.com/iac-studio/converge/internal/api/types"
	appErr "github.com/iac-studio/converge/pkg/errors"
	"github.com/iac-studio/converge/pkg/logger"
)

// Recovery logs panics and returns 500 with a generic message.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.L().Error("panic recovered",
					zap.String("id", GetRequestID(r.Context())),
					zap.Any("panic", rec),
					zap.ByteString("stack", debug.Stack()),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(types.APIResponse{Success: false, Error: &types.APIError{
					Code:    string(appErr.CodeInternal),
					Message: http.StatusText(http.StatusInternalServerError),
				}})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
