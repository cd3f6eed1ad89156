package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/photogram/photogram/internal/auth"
)

// Recoverer converts panics in the handler chain into 500 responses.
// The log line carries the request ID and, when the request was
// authenticated, the viewer ID, so a crashing resolver can be traced back
// to the operation that tripped it.
func Recoverer(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					attrs := []slog.Attr{
						slog.String("request_id", GetRequestID(r.Context())),
						slog.Any("panic", rvr),
						slog.String("stack", string(debug.Stack())),
					}
					if viewerID := auth.ViewerID(r.Context()); viewerID != "" {
						attrs = append(attrs, slog.String("viewer_id", viewerID))
					}
					logger.LogAttrs(r.Context(), slog.LevelError, "panic recovered", attrs...)

					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
