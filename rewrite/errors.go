package rewrite

import "errors"

var (
	// ErrInvalidURL marks input rejected before any upstream call is made.
	ErrInvalidURL = errors.New("invalid or unsupported url")
	// ErrUpstreamTimeout marks an upstream fetch that exceeded its budget.
	ErrUpstreamTimeout = errors.New("upstream request timed out")
	// ErrUpstreamConnect marks a failure to reach the upstream host at all.
	ErrUpstreamConnect = errors.New("upstream connection failed")
)
