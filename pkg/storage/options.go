package storage

import (
	"strings"
)

const (
	defaultEndpoint = "s3.amazonaws.com"
)

// Options for an S3 compatible store.
type Options struct {
	Bucket   string
	Endpoint string
	Region   string

	// AccessKey & SecretKey are optional; when unset credentials are taken from
	// the usual AWS environment variables or shared credentials file.
	AccessKey string
	SecretKey string

	Insecure bool
}

func (o *Options) SetDefaults() {
	o.Bucket = strings.TrimSpace(o.Bucket)
	o.Endpoint = strings.TrimSpace(o.Endpoint)
	if o.Endpoint == "" {
		o.Endpoint = defaultEndpoint
	}
	for _, scheme := range []string{"https://", "http://"} {
		if strings.HasPrefix(o.Endpoint, scheme) {
			o.Insecure = o.Insecure || scheme == "http://"
			o.Endpoint = strings.TrimPrefix(o.Endpoint, scheme)
		}
	}
	o.Endpoint = strings.TrimSuffix(o.Endpoint, "/")
}
