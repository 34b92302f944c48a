package poller

import "errors"

var (
	errFetchRequired        = errors.New("fetch function is required")
	errInvalidOverlapPolicy = errors.New("invalid overlap policy")
)
