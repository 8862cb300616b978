package server

import (
	"context"
	"crypto/subtle"
	"errors"
	"log"
	"net"
	"net/http"

	"github.com/voidshard/platen/pkg/api/http/common"
	ie "github.com/voidshard/platen/pkg/errors"
	"github.com/voidshard/platen/pkg/ratelimit"
	"github.com/voidshard/platen/pkg/structs"
)

type ctxKey int

const callerKeyCtx ctxKey = iota

// loggingMiddleware shims in a handler middleware that logs requests.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Println(r.Method, r.RequestURI, r.ContentLength)
		next.ServeHTTP(w, r)
	})
}

// identify validates X-API-Key, if given, and attaches the key to the request.
// A request without a key is anonymous; a request with a bad key is refused.
func (s *Server) identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(common.HEADER_API_KEY)
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}

		key, err := s.svc.ValidateKey(raw)
		if errors.Is(err, ie.ErrNotFound) {
			http.Error(w, "invalid or inactive api key", http.StatusUnauthorized)
			return
		} else if err != nil {
			http.Error(w, err.Error(), mapError(err))
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), callerKeyCtx, key)))
	})
}

// rateLimit applies the global limit (if any) then the per caller limit.
// A limiter that errors lets the request through.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := callerID(r)

		for _, lim := range []ratelimit.Limiter{s.opts.Global, s.opts.Limiter} {
			if lim == nil {
				continue
			}
			ok, err := lim.Allow(r.Context(), id)
			if err != nil {
				log.Println("[Server] rate limiter error, allowing", id, err)
				continue
			}
			if !ok {
				http.Error(w, ie.ErrRateLimited.Error(), http.StatusTooManyRequests)
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

// admin requires X-Admin-Token to match the configured token.
func (s *Server) admin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.opts.AdminToken == "" {
			http.Error(w, "admin api is disabled", http.StatusForbidden)
			return
		}
		given := r.Header.Get(common.HEADER_ADMIN_TOKEN)
		if subtle.ConstantTimeCompare([]byte(given), []byte(s.opts.AdminToken)) != 1 {
			http.Error(w, ie.ErrUnauthorized.Error(), http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func callerKey(ctx context.Context) *structs.APIKey {
	key, _ := ctx.Value(callerKeyCtx).(*structs.APIKey)
	return key
}

// callerID is the key id for identified callers, else the remote address.
func callerID(r *http.Request) string {
	if key := callerKey(r.Context()); key != nil {
		return "key:" + key.ID
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}
