// SPDX-License-Identifier: EPL-2.0

// Package server exposes a track library over HTTP so a renderer can fetch
// waveform windows at any zoom level.
package server

import (
	"context"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/pion/logging"

	wlog "github.com/ik5/audwave/internal/logging"
	"github.com/ik5/audwave/track"
)

// DefaultMaxWindows bounds the count of windows per request when no
// WithMaxWindows option is given.
const DefaultMaxWindows = 4096

type Option func(*Server)

func WithLogger(l logging.LeveledLogger) Option {
	return func(s *Server) { s.log = l }
}

// WithMaxWindows caps the count query parameter.
func WithMaxWindows(n int) Option {
	return func(s *Server) { s.maxWindows = n }
}

// Server serves the tracks of a Library. It holds one trace cache handle
// per track it has been asked about, so caches stay populated between
// requests, and drops it when the track goes away.
type Server struct {
	lib        *track.Library
	log        logging.LeveledLogger
	maxWindows int
	app        *fiber.App

	mu      sync.Mutex
	handles map[uuid.UUID]*track.Handle
}

func New(lib *track.Library, opts ...Option) *Server {
	s := &Server{
		lib:        lib,
		maxWindows: DefaultMaxWindows,
		handles:    make(map[uuid.UUID]*track.Handle),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = wlog.NewLogger("audwave/server")
	}
	if s.maxWindows < 1 {
		s.maxWindows = DefaultMaxWindows
	}

	app := fiber.New(fiber.Config{
		AppName:               "audwave",
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,DELETE,OPTIONS",
	}))

	app.Get("/health", s.handleHealth)

	api := app.Group("/api")
	api.Get("/tracks", s.handleListTracks)
	api.Get("/tracks/:id", s.handleGetTrack)
	api.Get("/tracks/:id/windows", s.handleWindows)
	api.Delete("/tracks/:id", s.handleDeleteTrack)

	s.app = app
	return s
}

// App returns the underlying fiber application.
func (s *Server) App() *fiber.App { return s.app }

// Listen serves on addr until Shutdown.
func (s *Server) Listen(addr string) error {
	s.log.Infof("listening on %s", addr)
	return s.app.Listen(addr)
}

// Shutdown stops the listener and releases every held handle. The library
// itself is left to the caller.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.app.ShutdownWithContext(ctx)

	s.mu.Lock()
	handles := s.handles
	s.handles = make(map[uuid.UUID]*track.Handle)
	s.mu.Unlock()

	for _, h := range handles {
		h.Release()
	}
	return err
}

// handle returns the held handle for t, acquiring it on first use.
func (s *Server) handle(t *track.Track) (*track.Handle, error) {
	id := t.ID()

	s.mu.Lock()
	if h, ok := s.handles[id]; ok {
		s.mu.Unlock()
		return h, nil
	}

	h, err := t.AcquireTraceCache()
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.handles[id] = h
	s.mu.Unlock()

	// Runs at once when t was disposed meanwhile, so mu must not be held.
	t.OnDispose(func() { s.drop(id) })

	s.log.Debugf("holding trace cache of %s", id)
	return h, nil
}

// held returns the handle for id without acquiring one.
func (s *Server) held(id uuid.UUID) (*track.Handle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.handles[id]
	return h, ok
}

func (s *Server) drop(id uuid.UUID) {
	s.mu.Lock()
	h, ok := s.handles[id]
	delete(s.handles, id)
	s.mu.Unlock()

	if ok {
		h.Release()
	}
}
