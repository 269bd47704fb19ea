package recommend

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrUpstreamUnavailable covers unreachable endpoints, rejected
	// credentials and request deadline expiry.
	ErrUpstreamUnavailable = errors.New("recommendation service is unavailable")

	// ErrRateLimited maps upstream HTTP 429.
	ErrRateLimited = errors.New("recommendation service rate limit exceeded")

	// ErrQuotaExceeded maps upstream HTTP 402 (payment/credits required).
	ErrQuotaExceeded = errors.New("recommendation service requires additional credits")
)

// UpstreamError covers any other non-success status from the upstream gateway.
type UpstreamError struct {
	Status int
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("recommendation service error (status %d): %v", e.Status, e.Err)
	}
	return fmt.Sprintf("recommendation service error (status %d)", e.Status)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
