//go:build ebiten

package app

import (
	"time"

	"terrashift/internal/console"
	"terrashift/internal/render"
	"terrashift/internal/terrain"
	"terrashift/internal/ui"
	"terrashift/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const hudWidth = 280

// Game adapts a world to the ebiten.Game interface: the map is drawn top
// down, left click raises and right click lowers the hovered cell.
type Game struct {
	world   *world.World
	console *console.Console
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay

	scale    int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided world.
func New(w *world.World, c *console.Console, scale int, seed int64) *Game {
	size := w.Size()
	var exec func(string) (string, error)
	if c != nil {
		exec = c.Exec
	}
	return &Game{
		world:   w,
		console: c,
		painter: render.NewGridPainter(size.W, size.H, render.DefaultPalette()),
		hud:     ui.NewHUD(w, hudWidth),
		overlay: ui.NewOverlay(w, scale, exec),
		scale:   scale,
		seed:    seed,
	}
}

// Reset regenerates the map with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.world.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame logic and advances the world.
func (g *Game) Update() error {
	g.overlay.Update()
	if !g.overlay.Capturing() {
		if err := g.handleKeys(); err != nil {
			return err
		}
		g.handleClicks()
	}
	size := g.world.Size()
	g.hud.Update(size.W * g.scale)
	g.painter.Resize(size.W, size.H)

	if !g.paused || g.tickOnce {
		g.world.Step()
		g.tickOnce = false
	}
	return nil
}

func (g *Game) handleKeys() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.world.ToggleMode()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	return nil
}

func (g *Game) handleClicks() {
	c, ok := g.overlay.Hover()
	if !ok {
		return
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.world.Queue(world.Edit{Coord: c, Direction: terrain.Up})
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.world.Queue(world.Edit{Coord: c, Direction: terrain.Down})
	}
}

// Draw renders the map, the overlay and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	size := g.world.Size()
	g.painter.Blit(screen, g.world.Cells(), g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, size.W*g.scale, screen.Bounds().Dy())
}

// Layout returns the logical screen size. The map area keeps a minimum
// height so the HUD and console stay usable on small or cleared maps.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	size := g.world.Size()
	w, h := size.W*g.scale, size.H*g.scale
	if h < minHeight {
		h = minHeight
	}
	return w + g.hud.Width(), h
}

const minHeight = 480
