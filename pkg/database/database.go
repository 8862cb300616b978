package database

import (
	"strings"
)

// New returns a Database for the given options, picking the implementation from the URL.
func New(opts *Options) (Database, error) {
	opts.SetDefaults()
	if isPostgres(opts.URL) {
		return NewPostgres(opts)
	}
	return NewSQLite(opts)
}

func isPostgres(url string) bool {
	return strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://")
}
