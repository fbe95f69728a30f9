package tui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"terrashift/internal/core"
	"terrashift/internal/world"
)

const (
	frameInterval = 16 * time.Millisecond
	maxCatchUp    = 8
	helpLine      = "arrows/hjkl move  +/- raise/lower  w mode  : console  space pause  n step  q quit"
)

// Sound is told once per frame whether anything asked for a tone.
type Sound interface {
	Flush(now time.Time)
}

// App drives a world on a tcell screen.
type App struct {
	screen tcell.Screen
	world  *world.World
	ctl    *Controller
	style  Styler
	clock  *core.FixedStep
	sound  Sound
	log    *slog.Logger
}

// New wires a world and its console onto screen. sound may be nil.
func New(screen tcell.Screen, w *world.World, exec Exec, sound Sound, log *slog.Logger) *App {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &App{
		screen: screen,
		world:  w,
		ctl:    NewController(w, exec),
		style:  NewStyler(nil),
		clock:  core.NewFixedStep(w.Config().TPS),
		sound:  sound,
		log:    log,
	}
}

// Controller exposes the key handling state.
func (a *App) Controller() *Controller { return a.ctl }

// Run polls events and advances the world until the user quits. The screen
// must already be initialised; Run does not finalise it.
func (a *App) Run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	a.Draw()
	for {
		select {
		case ev := <-events:
			if !a.handle(ev) {
				a.log.Info("tui quit", "ticks", a.world.Ticks())
				return
			}
		case now := <-ticker.C:
			a.Frame(now)
		}
	}
}

func (a *App) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.ctl.HandleKey(ev)
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

// Frame advances the world by the ticks due and redraws.
func (a *App) Frame(now time.Time) {
	due := a.clock.Due(maxCatchUp)
	if a.ctl.Paused() {
		due = 0
	}
	if a.ctl.TakeStep() {
		due++
	}
	for i := 0; i < due; i++ {
		a.world.Step()
	}
	if a.sound != nil {
		a.sound.Flush(now)
	}
	a.Draw()
}

// Draw paints the map, status line and console line.
func (a *App) Draw() {
	a.screen.Clear()
	width, height := a.screen.Size()
	cells := a.world.Cells()
	n := a.world.Size().W
	cursor := a.ctl.Cursor()
	mode := a.world.Mode()

	for row := 0; row < n && row < height-3; row++ {
		for col := 0; col < n && 2*col+1 < width; col++ {
			v := cells[row*n+col]
			r, st := a.style.Cell(v)
			if row == cursor.Row && col == cursor.Col {
				r, st = a.style.Cursor(v, mode)
			}
			// Two columns per cell keep the map roughly square.
			a.screen.SetContent(2*col, row, r, nil, st)
			a.screen.SetContent(2*col+1, row, ' ', nil, st)
		}
	}

	a.drawText(0, height-3, a.statusLine(), tcell.StyleDefault.Foreground(tcell.ColorWhite))
	if open, line := a.ctl.Console(); open {
		a.drawText(0, height-2, ":"+line, tcell.StyleDefault.Foreground(tcell.ColorYellow))
		a.screen.ShowCursor(len(line)+1, height-2)
	} else {
		a.drawText(0, height-2, a.ctl.Status(), tcell.StyleDefault.Foreground(tcell.ColorSilver))
		a.screen.HideCursor()
	}
	a.drawText(0, height-1, helpLine, tcell.StyleDefault.Foreground(tcell.ColorGray))
	a.screen.Show()
}

func (a *App) statusLine() string {
	c := a.ctl.Cursor()
	line := fmt.Sprintf("%s mode  tick %d  cursor %v", a.world.Mode(), a.world.Ticks(), c)
	if b, ok := a.world.Block(c); ok {
		line += fmt.Sprintf("  ground %.2f", b.Height)
	}
	if wv, ok := a.world.Water(c); ok && wv.Amount > 0 {
		line += fmt.Sprintf("  water %.2f", wv.Amount)
	}
	if a.ctl.Paused() {
		line += "  [paused]"
	}
	return line
}

func (a *App) drawText(x, y int, s string, st tcell.Style) {
	if y < 0 {
		return
	}
	for _, r := range s {
		a.screen.SetContent(x, y, r, nil, st)
		x++
	}
}
