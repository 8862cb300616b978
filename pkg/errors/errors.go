package errors

import (
	"fmt"
)

var (
	ErrValidation    = fmt.Errorf("validation failed")
	ErrNotFound      = fmt.Errorf("not found")
	ErrInvalidState  = fmt.Errorf("invalid state")
	ErrConfiguration = fmt.Errorf("configuration error")
	ErrQuotaExceeded = fmt.Errorf("quota exceeded")
	ErrRateLimited   = fmt.Errorf("rate limited")
	ErrPipeline      = fmt.Errorf("pipeline execution failed")
	ErrPersistence   = fmt.Errorf("persistence error")
	ErrUnauthorized  = fmt.Errorf("unauthorized")
	ErrStorage       = fmt.Errorf("storage error")
	ErrNotSupported  = fmt.Errorf("not supported")
	ErrQueue         = fmt.Errorf("queue unavailable")
)
