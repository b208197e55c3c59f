// SPDX-License-Identifier: EPL-2.0

package waveform

import "errors"

var (
	// ErrInvalidArgument reports malformed query or construction parameters.
	// The cache state is never changed by a call failing with it.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrCapacityExceeded is returned by Store.Append on a full store.
	ErrCapacityExceeded = errors.New("window store capacity exceeded")
	// ErrDisposed is returned by any operation on a disposed cache.
	ErrDisposed = errors.New("trace cache disposed")
	// ErrAlreadyInitialized is returned by a second Cache.Init call.
	ErrAlreadyInitialized = errors.New("trace cache already initialized")
)
