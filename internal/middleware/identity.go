package middleware

import (
	"net/http"

	"github.com/photogram/photogram/internal/auth"
)

// ViewerHeader carries the authenticated user ID resolved by the edge.
// An absent or empty header means the request is anonymous; resolvers
// decide per operation whether anonymity is acceptable.
const ViewerHeader = "X-User-ID"

// Identity extracts the caller identity from the request header and
// injects it into the request context. It never rejects a request:
// authentication requirements live in the resolver layer so anonymous
// queries (e.g. browsing public photos) still work.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		viewerID := r.Header.Get(ViewerHeader)
		if viewerID == "" {
			next.ServeHTTP(w, r)
			return
		}

		ctx := auth.ContextWithViewer(r.Context(), viewerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
