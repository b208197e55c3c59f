// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ik5/audwave"
	"github.com/ik5/audwave/formats/wav"
)

// runMono decodes input and writes it as a mono 16-bit WAV at the same
// sample rate.
func runMono(args []string, stderr io.Writer) error {
	if len(args) != 2 {
		return errors.New("expected input and output paths")
	}
	in, out := args[0], args[1]

	format := audwave.FormatOf(in)
	dec, ok := audwave.DefaultRegistry().Get(format)
	if !ok {
		return fmt.Errorf("%w: %q", audwave.ErrUnsupportedFormat, format)
	}

	f, err := os.Open(in)
	if err != nil {
		return err
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", in, err)
	}
	defer src.Close()

	pcm16, rate, err := audwave.Mono16(src)
	if err != nil {
		return err
	}

	o, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := wav.WriteWAV16(o, rate, 1, pcm16); err != nil {
		o.Close()
		return err
	}
	if err := o.Close(); err != nil {
		return err
	}

	fmt.Fprintf(stderr, "wrote %d samples at %d Hz to %s\n", len(pcm16), rate, out)
	return nil
}
