// SPDX-License-Identifier: EPL-2.0

package server

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ik5/audwave/track"
	"github.com/ik5/audwave/waveform"
)

const defaultCount = 1024

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"tracks": s.lib.Len(),
	})
}

func (s *Server) handleListTracks(c *fiber.Ctx) error {
	tracks := s.lib.List()
	infos := make([]TrackInfo, 0, len(tracks))
	for _, t := range tracks {
		h, _ := s.held(t.ID())
		infos = append(infos, newTrackInfo(t, h))
	}

	return c.JSON(fiber.Map{
		"tracks": infos,
		"count":  len(infos),
	})
}

func (s *Server) handleGetTrack(c *fiber.Ctx) error {
	t, err := s.lib.Lookup(c.Params("id"))
	if err != nil {
		return err
	}

	h, _ := s.held(t.ID())
	return c.JSON(newTrackInfo(t, h))
}

func (s *Server) handleDeleteTrack(c *fiber.Ctx) error {
	t, err := s.lib.Lookup(c.Params("id"))
	if err != nil {
		return err
	}

	s.lib.Remove(t.ID())
	s.log.Infof("track %s (%s) removed", t.ID(), t.Name())

	return c.SendStatus(fiber.StatusNoContent)
}

// handleWindows answers
// GET /api/tracks/:id/windows?channel=&start=&size=&count=&bits=
// size defaults to the base window size, count to 1024 and bits to 32.
func (s *Server) handleWindows(c *fiber.Ctx) error {
	t, err := s.lib.Lookup(c.Params("id"))
	if err != nil {
		return err
	}

	channel, err := queryInt(c, "channel", 0)
	if err != nil {
		return err
	}
	start, err := queryUint(c, "start", 0)
	if err != nil {
		return err
	}
	size, err := queryUint(c, "size", t.BaseWindowSize())
	if err != nil {
		return err
	}
	count, err := queryInt(c, "count", min(defaultCount, s.maxWindows))
	if err != nil {
		return err
	}
	if count > s.maxWindows {
		return fiber.NewError(fiber.StatusBadRequest, "count exceeds "+strconv.Itoa(s.maxWindows))
	}
	bits, err := queryInt(c, "bits", 32)
	if err != nil {
		return err
	}
	if bits != 16 && bits != 32 {
		return fiber.NewError(fiber.StatusBadRequest, "bits must be 16 or 32")
	}

	h, err := s.handle(t)
	if err != nil {
		return err
	}

	ws, err := h.Windows(channel, start, size, count)
	if err != nil {
		return err
	}

	return c.JSON(WindowsResponse{
		Channel:          channel,
		Start:            start,
		SamplesPerWindow: size,
		State:            h.State().String(),
		Bits:             bits,
		Length:           len(ws),
		Data:             interleave(ws, bits),
	})
}

func queryInt(c *fiber.Ctx, key string, def int) (int, error) {
	v := c.Query(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid "+key+": "+v)
	}
	return n, nil
}

func queryUint(c *fiber.Ctx, key string, def uint64) (uint64, error) {
	v := c.Query(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid "+key+": "+v)
	}
	return n, nil
}

// handleError maps domain errors to status codes and renders every error
// as {"error": message}.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		code = fe.Code
	case errors.Is(err, track.ErrNotFound):
		code = fiber.StatusNotFound
	case errors.Is(err, waveform.ErrInvalidArgument):
		code = fiber.StatusBadRequest
	case errors.Is(err, waveform.ErrDisposed):
		code = fiber.StatusGone
	}

	if code >= fiber.StatusInternalServerError {
		s.log.Errorf("%s %s: %v", c.Method(), c.Path(), err)
	}

	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
