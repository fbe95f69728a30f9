package mapfile

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"

	"terrashift/internal/mapgen"
)

func curvedSettings() mapgen.Settings {
	return mapgen.Settings{
		Size: 9,
		Terrain: mapgen.Terrain{
			Kind: mapgen.KindCurved,
			Curve: mapgen.Curve{
				Amplitude:     mgl32.Vec2{1.5, 0.25},
				Wavelength:    mgl32.Vec2{6, 12},
				PhaseShift:    mgl32.Vec2{0.5, 0},
				VerticalShift: mgl32.Vec2{0, 2},
			},
		},
	}
}

func TestSaveLoadJSON(t *testing.T) {
	store := Store{Dir: filepath.Join(t.TempDir(), "maps")}
	path, err := store.Save("valley", curvedSettings())
	require.NoError(t, err)
	require.Equal(t, filepath.Join(store.Dir, "valley.json"), path)

	got, err := store.Load("valley")
	require.NoError(t, err)
	require.Equal(t, curvedSettings(), got)

	_, err = os.Stat(path + ".tmp")
	require.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestSaveLoadTOML(t *testing.T) {
	store := Store{Dir: t.TempDir()}
	path, err := store.Save("valley.toml", curvedSettings())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "kind = \"curved\"")

	got, err := store.Load("valley.toml")
	require.NoError(t, err)
	require.Equal(t, curvedSettings(), got)
}

func TestLoadRejectsTamperedFile(t *testing.T) {
	store := Store{Dir: t.TempDir()}
	path, err := store.Save("flat", mapgen.DefaultSettings())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	edited := strings.Replace(string(data), `"size": 12`, `"size": 13`, 1)
	require.NotEqual(t, string(data), edited)
	require.NoError(t, os.WriteFile(path, []byte(edited), 0o644))

	_, err = store.Load("flat")
	require.True(t, errors.Is(err, ErrChecksum), "got %v", err)
}

func TestLoadRejectsOtherVersions(t *testing.T) {
	store := Store{Dir: t.TempDir()}
	path, err := store.Save("old", mapgen.DefaultSettings())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	edited := strings.Replace(string(data), `"version": 1`, `"version": 9`, 1)
	require.NoError(t, os.WriteFile(path, []byte(edited), 0o644))

	_, err = store.Load("old")
	require.True(t, errors.Is(err, ErrVersion), "got %v", err)
}

func TestLoadErrors(t *testing.T) {
	store := Store{Dir: t.TempDir()}

	_, err := store.Load("missing")
	require.True(t, errors.Is(err, fs.ErrNotExist), "got %v", err)

	require.NoError(t, os.WriteFile(filepath.Join(store.Dir, "junk.json"), []byte("{"), 0o644))
	_, err = store.Load("junk")
	require.Error(t, err)

	for _, name := range []string{"", "../escape", "a/b", ".hidden"} {
		_, err = store.Load(name)
		require.True(t, errors.Is(err, ErrName), "name %q: %v", name, err)
		_, err = store.Save(name, mapgen.DefaultSettings())
		require.True(t, errors.Is(err, ErrName), "name %q: %v", name, err)
	}
}

func TestList(t *testing.T) {
	store := Store{Dir: filepath.Join(t.TempDir(), "none")}
	names, err := store.List()
	require.NoError(t, err)
	require.Empty(t, names)

	for _, n := range []string{"b", "a", "c.toml"} {
		_, err := store.Save(n, mapgen.DefaultSettings())
		require.NoError(t, err)
	}
	names, err = store.List()
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c.toml"}, names)
}

func TestChecksumIsStable(t *testing.T) {
	a, err := Checksum(curvedSettings())
	require.NoError(t, err)
	b, err := Checksum(curvedSettings())
	require.NoError(t, err)
	require.Equal(t, a, b)
	require.Len(t, a, 16)

	other := curvedSettings()
	other.Size++
	c, err := Checksum(other)
	require.NoError(t, err)
	require.NotEqual(t, a, c)
}
