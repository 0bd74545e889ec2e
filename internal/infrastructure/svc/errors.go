package svc

import "errors"

// ErrNoFeedsEnabled means neither the websocket feeds nor the poller could
// be configured.
var ErrNoFeedsEnabled = errors.New("no price feeds enabled")

// ErrStorageInitFailed wraps storage backend initialization failures.
var ErrStorageInitFailed = errors.New("storage initialization failed")
