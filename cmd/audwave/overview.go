// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/ik5/audwave"
	"github.com/ik5/audwave/audio"
	"github.com/ik5/audwave/internal/config"
	"github.com/ik5/audwave/track"
	"github.com/ik5/audwave/waveform"
)

func runOverview(cfg config.Config, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("overview", flag.ContinueOnError)
	fs.SetOutput(stderr)
	width := fs.Int("width", cfg.OverviewWidth, "columns")
	height := fs.Int("height", 12, "rows per channel")
	mono := fs.Bool("mono", false, "average all channels into one")
	base := fs.Uint64("base", cfg.BaseWindow, "samples per stored window")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("expected exactly one file")
	}

	cfg.OverviewWidth, cfg.BaseWindow = *width, *base
	if err := cfg.Validate(); err != nil {
		return err
	}
	if *height < 2 {
		return fmt.Errorf("height %d < 2", *height)
	}

	tr, err := audwave.LoadFile(audwave.DefaultRegistry(), fs.Arg(0), track.WithBaseWindowSize(*base))
	if err != nil {
		return err
	}
	defer tr.Dispose()

	if *mono && tr.Channels() > 1 {
		mixed, err := track.New(tr.Name(), audio.NewMonoView(tr.Source()),
			track.WithBaseWindowSize(*base), track.WithFormat(tr.Format()))
		if err != nil {
			return err
		}
		defer mixed.Dispose()
		tr = mixed
	}

	h, err := tr.AcquireTraceCache()
	if err != nil {
		return err
	}
	defer h.Release()

	if err := h.Wait(context.Background()); err != nil {
		return err
	}

	size := columnSize(tr.Frames(), *base, *width)

	fmt.Fprintf(stdout, "%s: %d frames, %s\n", tr.Name(), tr.Frames(), tr.Format())
	for ch := range tr.Channels() {
		ws, err := overviewColumns(h, ch, size, *width)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "channel %d, %d samples per column\n", ch, size)
		renderOverview(stdout, ws, *height)
	}

	return nil
}

// columnSize returns the smallest multiple of base that fits frames into
// width columns.
func columnSize(frames, base uint64, width int) uint64 {
	per := max((frames+uint64(width)-1)/uint64(width), 1)
	return (per + base - 1) / base * base
}

type windowQuerier interface {
	Windows(channel int, sampleIndex, targetWindowSize uint64, count int) ([]waveform.Window, error)
	BaseWindowSize() uint64
}

// overviewColumns returns up to width windows of size samples. Stored
// windows past the last whole column are merged into one shorter trailing
// column.
func overviewColumns(q windowQuerier, channel int, size uint64, width int) ([]waveform.Window, error) {
	ws, err := q.Windows(channel, 0, size, width)
	if err != nil || len(ws) >= width {
		return ws, err
	}

	base := q.BaseWindowSize()
	tail, err := q.Windows(channel, uint64(len(ws))*size, base, int(size/base))
	if err != nil {
		return nil, err
	}
	if len(tail) == 0 {
		return ws, nil
	}

	last := tail[0]
	for _, w := range tail[1:] {
		last = last.Merge(w)
	}
	return append(ws, last), nil
}

// renderOverview draws one column per window. Row r covers the amplitude
// band [lo, hi), from +1 at the top to -1 at the bottom, and is marked where
// the window's range reaches into it. Rows crossing zero are drawn as an
// axis where nothing is marked.
func renderOverview(w io.Writer, ws []waveform.Window, height int) {
	band := 2 / float32(height)

	var sb strings.Builder
	row := make([]byte, len(ws))
	for r := range height {
		hi := 1 - float32(r)*band
		lo := hi - band
		for i, win := range ws {
			switch {
			case win.Max() >= lo && (win.Min() < hi || r == 0):
				row[i] = '#'
			case lo < 0 && hi > 0:
				row[i] = '-'
			default:
				row[i] = ' '
			}
		}
		sb.WriteString(strings.TrimRight(string(row), " "))
		sb.WriteByte('\n')
	}

	_, _ = io.WriteString(w, sb.String())
}
