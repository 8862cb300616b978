package server

import (
	"crypto/tls"

	"github.com/voidshard/platen/pkg/ratelimit"
)

const (
	defAddr           = ":8080"
	defMaxUploadBytes = 200 << 20
)

// Options for the HTTP server
type Options struct {
	// Addr to listen on. Defaults to ":8080".
	Addr string

	// Static is an optional dir of files served at "/".
	Static string

	// Debug adds per request logging.
	Debug bool

	// TLSConfig, if set, serves https.
	TLSConfig *tls.Config

	// RequireKey means job creating calls must carry a valid X-API-Key.
	// Without it anonymous callers may create jobs (rate limited by address).
	RequireKey bool

	// AdminToken guards key management & job deletion. Empty disables those routes.
	AdminToken string

	// Limiter is the per caller limit. Defaults to an in memory fixed window.
	Limiter ratelimit.Limiter

	// Global, if set, is checked before the per caller limit.
	Global ratelimit.Limiter

	// MaxUploadBytes caps the size of a job creation request.
	// Defaults to 200MiB.
	MaxUploadBytes int64
}

func (o *Options) SetDefaults() {
	if o.Addr == "" {
		o.Addr = defAddr
	}
	if o.Limiter == nil {
		o.Limiter = ratelimit.NewFixedWindow(&ratelimit.Options{})
	}
	if o.MaxUploadBytes <= 0 {
		o.MaxUploadBytes = defMaxUploadBytes
	}
}
