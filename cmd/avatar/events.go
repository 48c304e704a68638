package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/avatar"
)

type eventKind int

const (
	eventPress eventKind = iota
	eventMove
	eventRelease
	eventWheel
)

// event is one scripted input step in canvas units.
type event struct {
	kind eventKind
	x, y float64
}

// parseEvents reads a script such as "press:128,128 move:150,140 release
// wheel:-1". Steps are separated by spaces, commas inside a step separate
// coordinates, and ';' also separates steps.
func parseEvents(script string) ([]event, error) {
	fields := strings.FieldsFunc(script, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == ';'
	})
	events := make([]event, 0, len(fields))
	for _, f := range fields {
		name, arg, _ := strings.Cut(strings.ToLower(f), ":")
		var (
			ev  event
			err error
		)
		switch name {
		case "press", "down":
			ev.kind = eventPress
			ev.x, ev.y, err = parsePoint(arg)
		case "move", "drag":
			ev.kind = eventMove
			ev.x, ev.y, err = parsePoint(arg)
		case "release", "up", "leave":
			ev.kind = eventRelease
		case "wheel", "zoom":
			ev.kind = eventWheel
			ev.y, err = strconv.ParseFloat(arg, 64)
		default:
			err = errors.New("unknown step")
		}
		if err != nil {
			return nil, fmt.Errorf("event %q: %w", f, err)
		}
		events = append(events, ev)
	}
	return events, nil
}

func parsePoint(s string) (x, y float64, err error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, errors.New("want x,y")
	}
	if x, err = strconv.ParseFloat(xs, 64); err != nil {
		return 0, 0, err
	}
	if y, err = strconv.ParseFloat(ys, 64); err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func (e event) apply(s *avatar.Session) {
	switch e.kind {
	case eventPress:
		s.PressStart(e.x, e.y)
	case eventMove:
		s.PressMove(e.x, e.y)
	case eventRelease:
		s.PressEnd()
	case eventWheel:
		s.Zoom(e.y)
	}
}
