package utils

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"

	ie "github.com/voidshard/platen/pkg/errors"
)

func setDefaults(cfg *tls.Config) {
	cfg.MinVersion = tls.VersionTLS12
	cfg.CurvePreferences = []tls.CurveID{tls.X25519, tls.CurveP384, tls.CurveP256}
	cfg.CipherSuites = []uint16{
		tls.TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384,
		tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
		tls.TLS_ECDHE_ECDSA_WITH_CHACHA20_POLY1305,
		tls.TLS_ECDHE_RSA_WITH_CHACHA20_POLY1305,
	}
}

// TLSConfig builds a tls.Config from PEM files; the HTTP server uses cert & key,
// redis clients (asynq, rate limits) use cacert to trust a private CA.
// With no files given it returns nil, meaning plain TCP.
func TLSConfig(cacert, cert, key string) (*tls.Config, error) {
	if cacert == "" && cert == "" && key == "" {
		return nil, nil
	}
	if (cert == "") != (key == "") {
		return nil, fmt.Errorf("%w tls cert and key must be given together", ie.ErrConfiguration)
	}

	cfg := &tls.Config{}
	setDefaults(cfg)

	if cert != "" {
		pair, err := tls.LoadX509KeyPair(cert, key)
		if err != nil {
			return nil, fmt.Errorf("%w failed to load tls key pair: %v", ie.ErrConfiguration, err)
		}
		cfg.Certificates = []tls.Certificate{pair}
	}

	if cacert != "" {
		pem, err := os.ReadFile(cacert)
		if err != nil {
			return nil, fmt.Errorf("%w failed to read ca cert: %v", ie.ErrConfiguration, err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("%w no certificates found in %s", ie.ErrConfiguration, cacert)
		}
		cfg.RootCAs = pool
	}

	return cfg, nil
}
