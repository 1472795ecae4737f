package middleware

import (
	"net/http"

	"marketplace-console/pkg/utils"

	"go.uber.org/zap"
)

const internalErrorPage = `<!doctype html><html><head><title>Something went wrong</title></head>` +
	`<body><h1>Something went wrong</h1><p>An error occurred, please try again.</p></body></html>`

// Recover middleware
func Recover(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}
					logger.Error("PANIC recovered",
						zap.Any("error", err),
						zap.String("request_id", utils.GetRequestIDFromContext(r.Context())),
						zap.String("path", r.URL.Path),
						zap.String("method", r.Method),
						zap.Stack("stack"),
					)

					w.Header().Set("Content-Type", "text/html; charset=utf-8")
					w.WriteHeader(http.StatusInternalServerError)
					w.Write([]byte(internalErrorPage))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
