package llm

import "errors"

// Fault classes the resilient wrapper distinguishes between. Providers
// wrap these so callers can errors.Is on them.
var (
	// ErrModelNotFound means the requested model does not exist on the
	// backend. Retrying the same candidate is pointless.
	ErrModelNotFound = errors.New("model not found")

	// ErrRateLimited means the backend asked us to slow down. The same
	// candidate is worth retrying after a backoff.
	ErrRateLimited = errors.New("rate limited")
)
