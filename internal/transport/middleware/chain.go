package middleware

import "net/http"

// Middleware is a function that wraps an http.Handler. It has the same shape
// as the functions chi.Router.Use and chi.Router.With accept.
type Middleware = func(http.Handler) http.Handler

// Chain combines middleware into one, first argument outermost:
// Chain(a, b)(h) == a(b(h)). Nil entries are skipped, which lets callers pass
// optional middleware such as a disabled rate limiter.
func Chain(mws ...Middleware) Middleware {
	return func(final http.Handler) http.Handler {
		for i := len(mws) - 1; i >= 0; i-- {
			if mws[i] == nil {
				continue
			}
			final = mws[i](final)
		}
		return final
	}
}
