package storage

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	ie "github.com/voidshard/platen/pkg/errors"
)

// S3 uploads to & presigns links for an S3 compatible bucket.
type S3 struct {
	opts   *Options
	client *minio.Client

	bucketLock  sync.Mutex
	bucketReady bool
}

// New returns an S3 store if a bucket is configured, otherwise a Noop store.
func New(opts *Options) (Store, error) {
	if opts == nil || opts.Bucket == "" {
		return &Noop{}, nil
	}
	return NewS3(opts)
}

// NewS3 returns a store over the given bucket. No network calls are made until
// the first upload.
func NewS3(opts *Options) (*S3, error) {
	opts.SetDefaults()
	if opts.Bucket == "" {
		return nil, fmt.Errorf("%w bucket is required", ie.ErrStorage)
	}

	var creds *credentials.Credentials
	if opts.AccessKey != "" || opts.SecretKey != "" {
		creds = credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, "")
	} else {
		creds = credentials.NewChainCredentials([]credentials.Provider{
			&credentials.EnvAWS{},
			&credentials.FileAWSCredentials{},
		})
	}

	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  creds,
		Secure: !opts.Insecure,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("%w %v", ie.ErrStorage, err)
	}

	return &S3{opts: opts, client: client}, nil
}

// Configured is always true for S3
func (s *S3) Configured() bool {
	return true
}

// Upload pushes localPath to key, creating the bucket on first use if it's missing
func (s *S3) Upload(ctx context.Context, localPath, key string) bool {
	err := s.ensureBucket(ctx)
	if err != nil {
		log.Println("[Storage] bucket", s.opts.Bucket, "unavailable:", err)
		return false
	}

	_, err = s.client.FPutObject(ctx, s.opts.Bucket, key, localPath, minio.PutObjectOptions{ContentType: "application/zip"})
	if err != nil {
		log.Println("[Storage] failed to upload", localPath, "to", key, err)
		return false
	}

	log.Println("[Storage] uploaded", localPath, "to", fmt.Sprintf("s3://%s/%s", s.opts.Bucket, key))
	return true
}

// PresignedURL returns a GET link for key valid for expiry
func (s *S3) PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.opts.Bucket, key, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("%w failed to presign %s: %v", ie.ErrStorage, key, err)
	}
	return u.String(), nil
}

func (s *S3) ensureBucket(ctx context.Context) error {
	s.bucketLock.Lock()
	defer s.bucketLock.Unlock()

	if s.bucketReady {
		return nil
	}

	exists, err := s.client.BucketExists(ctx, s.opts.Bucket)
	if err != nil {
		return err
	}
	if !exists {
		err = s.client.MakeBucket(ctx, s.opts.Bucket, minio.MakeBucketOptions{Region: s.opts.Region})
		if err != nil {
			return err
		}
	}

	s.bucketReady = true
	return nil
}
