// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ik5/audwave"
	"github.com/ik5/audwave/internal/config"
	wlog "github.com/ik5/audwave/internal/logging"
	"github.com/ik5/audwave/internal/server"
	"github.com/ik5/audwave/track"
)

func runServe(cfg config.Config, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	addr := fs.String("addr", cfg.Addr, "listen address")
	base := fs.Uint64("base", cfg.BaseWindow, "samples per stored window")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.Addr, cfg.BaseWindow = *addr, *base
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := wlog.NewLogger("audwave/cmd")

	lib, err := loadLibrary(fs.Args(), *base)
	if err != nil {
		return err
	}
	defer lib.Close()
	log.Infof("loaded %d track(s)", lib.Len())

	srv := server.New(lib, server.WithMaxWindows(cfg.MaxWindows))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- srv.Listen(cfg.Addr) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Infof("shutting down")

	sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	return srv.Shutdown(sctx)
}

// loadLibrary loads every path, disposing what was loaded on the first failure.
func loadLibrary(paths []string, base uint64) (*track.Library, error) {
	if len(paths) == 0 {
		return nil, errors.New("no files to serve")
	}

	reg := audwave.DefaultRegistry()
	lib := track.NewLibrary()
	for _, p := range paths {
		tr, err := audwave.LoadFile(reg, p, track.WithBaseWindowSize(base))
		if err != nil {
			lib.Close()
			return nil, err
		}
		lib.Add(tr)
	}

	return lib, nil
}
