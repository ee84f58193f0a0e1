package device

import (
	"net/http"

	"github.com/mssola/useragent"

	"lingo/pkg/requestcontext"
)

// Capture parses the User-Agent header and injects a device summary into the
// request context. The summary only feeds session audit attributes; nothing in
// the workflow engine branches on it.
func Capture(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		raw := r.Header.Get("User-Agent")
		if raw != "" {
			ctx = requestcontext.WithUserAgent(ctx, raw)

			ua := useragent.New(raw)
			browser, _ := ua.Browser()
			ctx = requestcontext.WithDevice(ctx, requestcontext.Device{
				Browser: browser,
				OS:      ua.OS(),
				Mobile:  ua.Mobile(),
			})
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
