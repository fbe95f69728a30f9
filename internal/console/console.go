package console

import (
	"fmt"
	"log/slog"
	"strings"

	"terrashift/internal/mapfile"
	"terrashift/internal/world"
)

const usage = `commands:
  generate <args>   build a new map (generate help for args)
  remove            clear the map
  save-map <name>   save the map settings
  load-map <name>   load saved map settings
  list-maps         list saved maps
  mode              toggle terrain/water editing
  raise <row> <col> raise terrain or add water
  lower <row> <col> lower terrain or remove water`

const generateUsage = `generate args, joined with |:
  size-N            map side length
  terrain-KIND      terrain shape (terrain-help for kinds)`

const terrainUsage = `terrain kinds:
  flat              level ground
  rough             random steps
  curved            sine hills; append any of
    -amp-X-Y        amplitude
    -wave-X-Y       wavelength
    -vert-X-Y       vertical shift
    -phase-X-Y      phase shift`

// Console runs commands against a world and a map store.
type Console struct {
	world *world.World
	store mapfile.Store
	log   *slog.Logger
}

// New binds a console. A nil logger discards output.
func New(w *world.World, store mapfile.Store, logger *slog.Logger) *Console {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Console{world: w, store: store, log: logger}
}

// Exec parses and applies one line and returns the reply to show.
func (c *Console) Exec(line string) (string, error) {
	cmd, err := Parse(line)
	if err != nil {
		c.log.Warn("rejected console command", "line", line, "err", err)
		return "", err
	}
	reply, err := c.Apply(cmd)
	if err != nil {
		c.log.Warn("console command failed", "command", cmd.Name(), "err", err)
		return "", err
	}
	return reply, nil
}

// Apply runs a parsed command.
func (c *Console) Apply(cmd Command) (string, error) {
	switch cmd := cmd.(type) {
	case Help:
		switch cmd.Topic {
		case "generate":
			return generateUsage, nil
		case "terrain":
			return terrainUsage, nil
		}
		return usage, nil
	case Generate:
		if err := c.world.Generate(cmd.Settings); err != nil {
			return "", err
		}
		return fmt.Sprintf("generated %d×%d %s terrain", cmd.Settings.Size, cmd.Settings.Size, cmd.Settings.Terrain.Kind), nil
	case Remove:
		c.world.Clear()
		return "map removed", nil
	case SaveMap:
		path, err := c.store.Save(cmd.File, c.world.Settings())
		if err != nil {
			return "", err
		}
		c.log.Info("map saved", "path", path)
		return "saved " + path, nil
	case LoadMap:
		s, err := c.store.Load(cmd.File)
		if err != nil {
			return "", err
		}
		if err := c.world.Generate(s); err != nil {
			return "", err
		}
		c.log.Info("map loaded", "name", cmd.File)
		return fmt.Sprintf("loaded %s (%d×%d %s)", cmd.File, s.Size, s.Size, s.Terrain.Kind), nil
	case ListMaps:
		names, err := c.store.List()
		if err != nil {
			return "", err
		}
		if len(names) == 0 {
			return "no saved maps", nil
		}
		return strings.Join(names, "\n"), nil
	case ToggleMode:
		return fmt.Sprintf("%s mode", c.world.ToggleMode()), nil
	case Shift:
		c.world.Queue(world.Edit{Coord: cmd.Coord, Direction: cmd.Direction})
		return fmt.Sprintf("%s %s at %v", c.world.Mode(), cmd.Name(), cmd.Coord), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Name())
}
