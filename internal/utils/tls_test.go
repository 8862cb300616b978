package utils

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	ie "github.com/voidshard/platen/pkg/errors"
)

func TestTLSConfigNone(t *testing.T) {
	cfg, err := TLSConfig("", "", "")

	assert.Nil(t, err)
	assert.Nil(t, cfg)
}

func TestTLSConfigErrors(t *testing.T) {
	dir := t.TempDir()
	junk := filepath.Join(dir, "junk.pem")
	os.WriteFile(junk, []byte("not a certificate"), 0600)

	cases := []struct {
		Name   string
		CACert string
		Cert   string
		Key    string
	}{
		{"CertWithoutKey", "", junk, ""},
		{"KeyWithoutCert", "", "", junk},
		{"MissingCA", filepath.Join(dir, "nope.pem"), "", ""},
		{"EmptyCA", junk, "", ""},
		{"BadPair", "", junk, junk},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			cfg, err := TLSConfig(c.CACert, c.Cert, c.Key)

			assert.Nil(t, cfg)
			assert.True(t, errors.Is(err, ie.ErrConfiguration))
		})
	}
}
