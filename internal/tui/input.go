package tui

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"terrashift/internal/grid"
	"terrashift/internal/terrain"
	"terrashift/internal/world"
)

// Exec runs one console line and returns its reply.
type Exec func(line string) (string, error)

// Controller maps key events to cursor moves, world edits and console
// commands. It holds no screen and can be driven directly by tests.
type Controller struct {
	world *world.World
	exec  Exec

	cursor  grid.Coord
	paused  bool
	step    bool
	console bool
	line    []rune
	status  string
}

// NewController returns a controller with the cursor at the map centre.
func NewController(w *world.World, exec Exec) *Controller {
	c := &Controller{world: w, exec: exec}
	n := w.Size().W
	c.cursor = grid.Coord{Row: n / 2, Col: n / 2}
	return c
}

// Cursor returns the selected cell.
func (c *Controller) Cursor() grid.Coord { return c.cursor }

// Paused reports whether ticking is suspended.
func (c *Controller) Paused() bool { return c.paused }

// TakeStep reports and clears a pending single-step request.
func (c *Controller) TakeStep() bool {
	s := c.step
	c.step = false
	return s
}

// Console reports whether the console line is open and returns its text.
func (c *Controller) Console() (bool, string) { return c.console, string(c.line) }

// Status returns the last console reply or notice.
func (c *Controller) Status() string { return c.status }

// HandleKey applies one key press. It returns false when the user quits.
func (c *Controller) HandleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return false
	}
	if c.console {
		c.consoleKey(ev)
		return true
	}
	switch ev.Key() {
	case tcell.KeyEscape:
		return false
	case tcell.KeyUp:
		c.move(-1, 0)
	case tcell.KeyDown:
		c.move(1, 0)
	case tcell.KeyLeft:
		c.move(0, -1)
	case tcell.KeyRight:
		c.move(0, 1)
	case tcell.KeyEnter:
		c.edit(terrain.Up)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		c.edit(terrain.Down)
	case tcell.KeyRune:
		return c.runeKey(ev.Rune())
	}
	return true
}

func (c *Controller) runeKey(r rune) bool {
	switch r {
	case 'q':
		return false
	case 'h':
		c.move(0, -1)
	case 'j':
		c.move(1, 0)
	case 'k':
		c.move(-1, 0)
	case 'l':
		c.move(0, 1)
	case '+', '=':
		c.edit(terrain.Up)
	case '-', '_':
		c.edit(terrain.Down)
	case 'w':
		c.status = c.world.ToggleMode().String() + " mode"
	case ' ':
		c.paused = !c.paused
	case 'n':
		c.step = true
	case ':':
		c.console = true
		c.line = c.line[:0]
	}
	return true
}

func (c *Controller) consoleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		c.console = false
	case tcell.KeyEnter:
		c.console = false
		c.submit()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(c.line) > 0 {
			c.line = c.line[:len(c.line)-1]
		}
	case tcell.KeyRune:
		c.line = append(c.line, ev.Rune())
	}
}

func (c *Controller) submit() {
	line := strings.TrimSpace(string(c.line))
	c.line = c.line[:0]
	if line == "" || c.exec == nil {
		return
	}
	reply, err := c.exec(line)
	if err != nil {
		c.status = "error: " + err.Error()
		return
	}
	// Only the first reply line fits the status bar.
	if i := strings.IndexByte(reply, '\n'); i >= 0 {
		reply = reply[:i]
	}
	c.status = reply
	c.clamp()
}

func (c *Controller) move(dr, dc int) {
	c.cursor = c.cursor.Offset(dr, dc)
	c.clamp()
}

// clamp keeps the cursor on the map after moves and regenerations.
func (c *Controller) clamp() {
	n := c.world.Size().W
	c.cursor.Row = clampInt(c.cursor.Row, 0, n-1)
	c.cursor.Col = clampInt(c.cursor.Col, 0, n-1)
}

func (c *Controller) edit(d terrain.Direction) {
	if c.world.Size().W == 0 {
		c.status = "no map"
		return
	}
	c.world.Queue(world.Edit{Coord: c.cursor, Direction: d})
}

func clampInt(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
