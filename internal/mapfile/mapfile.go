// Package mapfile persists map settings. Only the settings are stored; a
// loaded map is regenerated from them.
package mapfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml"
	"github.com/zeebo/xxh3"

	"terrashift/internal/mapgen"
)

// Version is the envelope version written by Save.
const Version = 1

var (
	ErrName     = errors.New("mapfile: invalid map name")
	ErrChecksum = errors.New("mapfile: checksum mismatch")
	ErrVersion  = errors.New("mapfile: unsupported version")
)

type envelope struct {
	Version  int             `json:"version" toml:"version"`
	Checksum string          `json:"checksum" toml:"checksum"`
	Settings mapgen.Settings `json:"settings" toml:"settings"`
}

// Checksum returns the xxh3 digest of the canonical JSON encoding of s.
func Checksum(s mapgen.Settings) (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("mapfile: encode settings: %w", err)
	}
	return fmt.Sprintf("%016x", xxh3.Hash(b)), nil
}

// Store reads and writes map files under Dir.
type Store struct {
	Dir string
}

// Path resolves name to a file inside the store. Names without an extension
// get ".json"; ".toml" selects the TOML encoding.
func (s Store) Path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%w: %q", ErrName, name)
	}
	switch filepath.Ext(name) {
	case ".json", ".toml":
	default:
		name += ".json"
	}
	return filepath.Join(s.Dir, name), nil
}

// Save writes settings under name and returns the file path.
func (s Store) Save(name string, settings mapgen.Settings) (string, error) {
	path, err := s.Path(name)
	if err != nil {
		return "", err
	}
	sum, err := Checksum(settings)
	if err != nil {
		return "", err
	}
	env := envelope{Version: Version, Checksum: sum, Settings: settings}
	var data []byte
	if isTOML(path) {
		data, err = toml.Marshal(env)
	} else {
		data, err = json.MarshalIndent(env, "", "  ")
	}
	if err != nil {
		return "", fmt.Errorf("mapfile: encode %s: %w", path, err)
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("mapfile: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("mapfile: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("mapfile: %w", err)
	}
	return path, nil
}

// Load reads the settings stored under name and verifies their checksum.
func (s Store) Load(name string) (mapgen.Settings, error) {
	path, err := s.Path(name)
	if err != nil {
		return mapgen.Settings{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return mapgen.Settings{}, fmt.Errorf("mapfile: %w", err)
	}
	var env envelope
	if isTOML(path) {
		err = toml.Unmarshal(data, &env)
	} else {
		err = json.Unmarshal(data, &env)
	}
	if err != nil {
		return mapgen.Settings{}, fmt.Errorf("mapfile: decode %s: %w", path, err)
	}
	if env.Version != Version {
		return mapgen.Settings{}, fmt.Errorf("%w: %d in %s", ErrVersion, env.Version, path)
	}
	sum, err := Checksum(env.Settings)
	if err != nil {
		return mapgen.Settings{}, err
	}
	if sum != env.Checksum {
		return mapgen.Settings{}, fmt.Errorf("%w: %s", ErrChecksum, path)
	}
	return env.Settings, nil
}

// List returns the names of the stored maps. A missing directory holds no
// maps.
func (s Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mapfile: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".json":
			names = append(names, strings.TrimSuffix(e.Name(), ".json"))
		case ".toml":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func isTOML(path string) bool { return filepath.Ext(path) == ".toml" }
