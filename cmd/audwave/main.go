// SPDX-License-Identifier: EPL-2.0

// Command audwave prints waveform overviews of audio files and serves
// waveform windows over HTTP.
//
// Usage:
//
//	audwave overview [-width N] [-height N] [-mono] [-base N] file
//	audwave serve [-addr host:port] [-base N] file...
//	audwave mono input output.wav
//
// Defaults come from AUDWAVE_* environment variables, flags override them.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/ik5/audwave/internal/config"
	wlog "github.com/ik5/audwave/internal/logging"
)

const usage = `usage:
  audwave overview [-width N] [-height N] [-mono] [-base N] file
  audwave serve [-addr host:port] [-base N] file...
  audwave mono input output.wav
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	cfg := config.Load()
	wlog.Configure(stderr, cfg.LogLevel)

	var err error
	switch args[0] {
	case "overview":
		err = runOverview(cfg, args[1:], stdout, stderr)
	case "serve":
		err = runServe(cfg, args[1:], stderr)
	case "mono":
		err = runMono(args[1:], stderr)
	case "-h", "-help", "--help", "help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n%s", args[0], usage)
		return 2
	}

	if err != nil {
		fmt.Fprintf(stderr, "audwave %s: %v\n", args[0], err)
		return 1
	}
	return 0
}
