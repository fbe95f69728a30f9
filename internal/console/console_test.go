package console

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"

	"terrashift/internal/grid"
	"terrashift/internal/mapfile"
	"terrashift/internal/mapgen"
	"terrashift/internal/terrain"
	"terrashift/internal/world"
)

func TestParse(t *testing.T) {
	curved := mapgen.DefaultSettings()
	curved.Size = 20
	curved.Terrain.Kind = mapgen.KindCurved
	curved.Terrain.Curve.Amplitude = mgl32.Vec2{2, 3}
	curved.Terrain.Curve.PhaseShift = mgl32.Vec2{0.5, 0}

	rough := mapgen.DefaultSettings()
	rough.Terrain.Kind = mapgen.KindRough

	tests := []struct {
		line string
		want Command
	}{
		{"help", Help{}},
		{"HELP Terrain", Help{Topic: "terrain"}},
		{"generate help", Help{Topic: "generate"}},
		{"generate size-4|terrain-help", Help{Topic: "terrain"}},
		{"generate size-20|terrain-curved-amp-2-3-phase-0.5-0", Generate{Settings: curved}},
		{"generate TERRAIN-ROUGH", Generate{Settings: rough}},
		{"remove", Remove{}},
		{"  save-map  valley ", SaveMap{File: "valley"}},
		{"load-map valley.toml", LoadMap{File: "valley.toml"}},
		{"list-maps", ListMaps{}},
		{"mode", ToggleMode{}},
		{"raise 3 4", Shift{Coord: grid.Coord{Row: 3, Col: 4}, Direction: terrain.Up}},
		{"lower 0 1", Shift{Coord: grid.Coord{Row: 0, Col: 1}, Direction: terrain.Down}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := Parse(tt.line)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		line string
		want error
	}{
		{"", ErrEmpty},
		{"   ", ErrEmpty},
		{"explode", ErrUnknownCommand},
		{"generate", ErrSyntax},
		{"generate size-x", ErrSyntax},
		{"generate size-4-5", ErrSyntax},
		{"generate terrain", ErrSyntax},
		{"generate terrain-flat-amp-1-1", ErrSyntax},
		{"generate terrain-curved-amp-1", ErrSyntax},
		{"generate terrain-curved-amp-a-b", ErrSyntax},
		{"generate terrain-curved-tilt-1-1", ErrUnknownArgument},
		{"generate colour-red", ErrUnknownArgument},
		{"generate size-4||terrain-flat", ErrSyntax},
		{"remove now", ErrSyntax},
		{"save-map", ErrSyntax},
		{"raise 1", ErrSyntax},
		{"lower one two", ErrSyntax},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			_, err := Parse(tt.line)
			require.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func newConsole(t *testing.T) (*Console, *world.World) {
	t.Helper()
	cfg := world.DefaultConfig()
	cfg.Map.Size = 4
	w, err := world.New(cfg)
	require.NoError(t, err)
	return New(w, mapfile.Store{Dir: t.TempDir()}, nil), w
}

func TestExecGenerateAndRemove(t *testing.T) {
	c, w := newConsole(t)

	reply, err := c.Exec("generate size-6|terrain-rough")
	require.NoError(t, err)
	require.Contains(t, reply, "rough")
	require.Equal(t, 6, w.Size().W)
	require.Equal(t, mapgen.KindRough, w.Settings().Terrain.Kind)

	_, err = c.Exec("generate size-0")
	require.True(t, errors.Is(err, mapgen.ErrInvalidSize))
	require.Equal(t, 6, w.Size().W, "failed generate keeps the map")

	_, err = c.Exec("generate terrain-marsh")
	require.True(t, errors.Is(err, mapgen.ErrUnknownTerrain))

	_, err = c.Exec("remove")
	require.NoError(t, err)
	require.Empty(t, w.Blocks())
}

func TestExecSaveAndLoad(t *testing.T) {
	c, w := newConsole(t)

	_, err := c.Exec("generate size-5|terrain-curved-amp-1-2")
	require.NoError(t, err)
	saved := w.Settings()

	reply, err := c.Exec("save-map hills")
	require.NoError(t, err)
	require.Contains(t, reply, "hills.json")

	_, err = c.Exec("generate size-3")
	require.NoError(t, err)
	reply, err = c.Exec("list-maps")
	require.NoError(t, err)
	require.Equal(t, "hills", reply)

	_, err = c.Exec("load-map hills")
	require.NoError(t, err)
	require.Equal(t, saved, w.Settings())
	require.Len(t, w.Blocks(), 25)

	_, err = c.Exec("load-map nowhere")
	require.Error(t, err)
	require.Equal(t, saved, w.Settings())
}

func TestExecModeAndShift(t *testing.T) {
	c, w := newConsole(t)

	reply, err := c.Exec("raise 1 1")
	require.NoError(t, err)
	require.Equal(t, "shift raise at (1,1)", reply)
	w.Step()
	b, ok := w.Block(grid.Coord{Row: 1, Col: 1})
	require.True(t, ok)
	require.Equal(t, float32(0.5), b.Height)

	reply, err = c.Exec("mode")
	require.NoError(t, err)
	require.Equal(t, "water mode", reply)

	_, err = c.Exec("raise 2 2")
	require.NoError(t, err)
	w.Step()
	_, ok = w.Water(grid.Coord{Row: 2, Col: 2})
	require.True(t, ok)
}

func TestExecHelp(t *testing.T) {
	c, _ := newConsole(t)
	for line, want := range map[string]string{
		"help":                  usage,
		"generate help":         generateUsage,
		"generate terrain-help": terrainUsage,
	} {
		reply, err := c.Exec(line)
		require.NoError(t, err)
		require.Equal(t, want, reply)
	}
}

func TestMapCommandsKeepFileAndName(t *testing.T) {
	cmd, err := Parse("save-map dunes.toml")
	require.NoError(t, err)
	save, ok := cmd.(SaveMap)
	require.True(t, ok)
	require.Equal(t, "dunes.toml", save.File)
	require.Equal(t, "save-map", save.Name())

	cmd, err = Parse("load-map dunes")
	require.NoError(t, err)
	require.Equal(t, "load-map", cmd.Name())
	require.Equal(t, LoadMap{File: "dunes"}, cmd)
}
