package middleware

import (
	"net/http"
	"regexp"

	"marketplace-console/pkg/utils"

	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

var validRequestID = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)

// RequestID keeps a sane incoming X-Request-ID or mints a new one. The id is
// echoed on the response and forwarded to the marketplace API.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if !validRequestID.MatchString(id) {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(utils.SetRequestIDContext(r.Context(), id)))
	})
}
