// Package console parses and runs the text commands typed into the
// in-game console.
package console

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"terrashift/internal/grid"
	"terrashift/internal/mapgen"
	"terrashift/internal/terrain"
)

var (
	ErrEmpty           = errors.New("console: empty command")
	ErrUnknownCommand  = errors.New("console: unknown command")
	ErrUnknownArgument = errors.New("console: unknown argument")
	ErrSyntax          = errors.New("console: syntax error")
)

// Command is a parsed console command.
type Command interface {
	Name() string
}

// Help asks for usage text. Topic is empty, "generate" or "terrain".
type Help struct{ Topic string }

// Generate replaces the map with one built from Settings.
type Generate struct{ Settings mapgen.Settings }

// Remove clears the map.
type Remove struct{}

// SaveMap stores the current map settings under File.
type SaveMap struct{ File string }

// LoadMap regenerates the map stored under File.
type LoadMap struct{ File string }

// ListMaps lists the stored maps.
type ListMaps struct{}

// ToggleMode switches between terrain and water editing.
type ToggleMode struct{}

// Shift queues a raise or lower edit at Coord in the active mode.
type Shift struct {
	Coord     grid.Coord
	Direction terrain.Direction
}

func (Help) Name() string       { return "help" }
func (Generate) Name() string   { return "generate" }
func (Remove) Name() string     { return "remove" }
func (SaveMap) Name() string    { return "save-map" }
func (LoadMap) Name() string    { return "load-map" }
func (ListMaps) Name() string   { return "list-maps" }
func (ToggleMode) Name() string { return "mode" }
func (s Shift) Name() string {
	if s.Direction == terrain.Down {
		return "lower"
	}
	return "raise"
}

// Parse turns one console line into a command.
func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, ErrEmpty
	}
	name, args := strings.ToLower(fields[0]), fields[1:]
	switch name {
	case "help":
		if len(args) > 1 {
			return nil, fmt.Errorf("%w: help takes at most one topic", ErrSyntax)
		}
		if len(args) == 1 {
			return Help{Topic: strings.ToLower(args[0])}, nil
		}
		return Help{}, nil
	case "generate":
		if len(args) != 1 {
			return nil, fmt.Errorf("%w: generate takes one argument, e.g. size-12|terrain-flat", ErrSyntax)
		}
		return parseGenerate(args[0])
	case "remove", "list-maps", "mode":
		if len(args) != 0 {
			return nil, fmt.Errorf("%w: %s takes no arguments", ErrSyntax, name)
		}
		switch name {
		case "remove":
			return Remove{}, nil
		case "list-maps":
			return ListMaps{}, nil
		}
		return ToggleMode{}, nil
	case "save-map", "load-map":
		if len(args) != 1 {
			return nil, fmt.Errorf("%w: %s takes a file name", ErrSyntax, name)
		}
		if name == "save-map" {
			return SaveMap{File: args[0]}, nil
		}
		return LoadMap{File: args[0]}, nil
	case "raise", "lower":
		if len(args) != 2 {
			return nil, fmt.Errorf("%w: %s takes a row and a column", ErrSyntax, name)
		}
		r, errR := strconv.Atoi(args[0])
		c, errC := strconv.Atoi(args[1])
		if errR != nil || errC != nil {
			return nil, fmt.Errorf("%w: %s %s %s: row and column must be integers", ErrSyntax, name, args[0], args[1])
		}
		dir := terrain.Up
		if name == "lower" {
			dir = terrain.Down
		}
		return Shift{Coord: grid.Coord{Row: r, Col: c}, Direction: dir}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
}

// parseGenerate reads "part|part|...", each part being "size-N" or
// "terrain-<kind>[-<param>-<x>-<y>...]".
func parseGenerate(arg string) (Command, error) {
	s := mapgen.DefaultSettings()
	for _, part := range strings.Split(strings.ToLower(arg), "|") {
		tokens := strings.Split(part, "-")
		switch tokens[0] {
		case "help":
			return Help{Topic: "generate"}, nil
		case "size":
			if len(tokens) != 2 {
				return nil, fmt.Errorf("%w: size expects size-N", ErrSyntax)
			}
			n, err := strconv.Atoi(tokens[1])
			if err != nil {
				return nil, fmt.Errorf("%w: map size %q is not an integer", ErrSyntax, tokens[1])
			}
			s.Size = n
		case "terrain":
			if len(tokens) < 2 || tokens[1] == "" {
				return nil, fmt.Errorf("%w: no terrain type given", ErrSyntax)
			}
			kind := tokens[1]
			if kind == "help" {
				return Help{Topic: "terrain"}, nil
			}
			s.Terrain.Kind = kind
			if kind != mapgen.KindCurved {
				if len(tokens) > 2 {
					return nil, fmt.Errorf("%w: %s terrain takes no parameters", ErrSyntax, kind)
				}
				continue
			}
			curve, err := parseCurve(tokens[2:])
			if err != nil {
				return nil, err
			}
			s.Terrain.Curve = curve
		case "":
			return nil, fmt.Errorf("%w: empty generate argument", ErrSyntax)
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownArgument, tokens[0])
		}
	}
	return Generate{Settings: s}, nil
}

func parseCurve(tokens []string) (mapgen.Curve, error) {
	c := mapgen.DefaultCurve()
	for len(tokens) > 0 {
		if len(tokens) < 3 {
			return c, fmt.Errorf("%w: curve parameter %q needs an x and a y value", ErrSyntax, tokens[0])
		}
		x, errX := strconv.ParseFloat(tokens[1], 32)
		y, errY := strconv.ParseFloat(tokens[2], 32)
		if errX != nil || errY != nil {
			return c, fmt.Errorf("%w: curve parameter %s-%s-%s: values must be numbers", ErrSyntax, tokens[0], tokens[1], tokens[2])
		}
		v := mgl32.Vec2{float32(x), float32(y)}
		switch tokens[0] {
		case "amp":
			c.Amplitude = v
		case "wave":
			c.Wavelength = v
		case "vert":
			c.VerticalShift = v
		case "phase":
			c.PhaseShift = v
		default:
			return c, fmt.Errorf("%w: curve parameter %q", ErrUnknownArgument, tokens[0])
		}
		tokens = tokens[3:]
	}
	return c, nil
}
