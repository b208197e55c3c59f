// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile           = errors.New("not a WAV file")
	ErrUnsupportedWavLayout = errors.New("unsupported WAV layout")
	// ErrUnsupportedCoding is returned for anything but integer PCM.
	ErrUnsupportedCoding   = errors.New("unsupported WAV coding")
	ErrUnsupportedBitDepth = errors.New("unsupported WAV bit depth")
)
