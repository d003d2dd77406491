package middleware

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	"github.com/turtacn/admet-prioritizer/internal/infrastructure/monitoring/logging"
)

// Recovery turns a handler panic into a logged 500 with a JSON body.
func Recovery(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil || rec == http.ErrAbortHandler {
					if rec != nil {
						panic(rec)
					}
					return
				}
				logger.Error("panic in HTTP handler",
					logging.Any("panic", rec),
					logging.String("path", r.URL.Path),
					logging.String("request_id", ContextGetRequestID(r.Context())),
					logging.String("stack", string(debug.Stack())))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"code":    "COMMON_001",
					"message": "internal server error",
				})
			}()
			next.ServeHTTP(w, r)
		})
	}
}

//Personal.AI order the ending
