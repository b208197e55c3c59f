// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// ErrInvalidFormat is returned by NewFormat for out of range fields.
	ErrInvalidFormat = errors.New("invalid audio format")
	// ErrFloatMustBeSigned is returned by NewFormat for unsigned float coding.
	ErrFloatMustBeSigned = errors.New("float coding requires signed samples")
	// ErrNoChannels is returned when a source reports less than one channel.
	ErrNoChannels = errors.New("source has no channels")
)
