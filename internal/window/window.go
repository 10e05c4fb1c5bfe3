// Package window runs the game in a desktop window using ebiten.
package window

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tomz197/novasiege/internal/game"
	"github.com/tomz197/novasiege/internal/input"
	"github.com/tomz197/novasiege/internal/object"
)

var (
	colorBackground = color.RGBA{R: 6, G: 8, B: 20, A: 255}
	colorPlayer     = color.RGBA{R: 0, G: 215, B: 255, A: 255}
	colorShield     = color.RGBA{R: 0, G: 175, B: 255, A: 160}
	colorFlash      = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colorPlayerShot = color.RGBA{R: 255, G: 255, B: 175, A: 255}
	colorEnemyShot  = color.RGBA{R: 255, G: 135, B: 95, A: 255}
	colorTrail      = color.RGBA{R: 90, G: 90, B: 90, A: 255}
	colorHealthBar  = color.RGBA{R: 95, G: 255, B: 95, A: 255}
	colorHealthBack = color.RGBA{R: 95, G: 0, B: 0, A: 255}
)

var tintColors = map[object.Tint]color.RGBA{
	object.TintWhite:  {R: 238, G: 238, B: 238, A: 255},
	object.TintPlayer: colorPlayer,
	object.TintThrust: {R: 255, G: 175, B: 0, A: 255},
	object.TintPulse:  {R: 215, G: 95, B: 255, A: 255},
	object.TintScout:  {R: 255, G: 95, B: 95, A: 255},
	object.TintHunter: {R: 255, G: 135, B: 255, A: 255},
	object.TintTank:   {R: 215, G: 175, B: 0, A: 255},
	object.TintHealth: {R: 95, G: 255, B: 95, A: 255},
	object.TintShield: {R: 0, G: 175, B: 255, A: 255},
	object.TintRapid:  {R: 255, G: 255, B: 0, A: 255},
	object.TintTriple: {R: 255, G: 95, B: 255, A: 255},
}

// Window adapts a game to ebiten.Game.
type Window struct {
	game     *game.Game
	logger   *log.Logger
	lastTick time.Time
}

var _ ebiten.Game = (*Window)(nil)

// New wraps g for ebiten.
func New(g *game.Game, logger *log.Logger) *Window {
	return &Window{game: g, logger: logger}
}

// Run opens the window and blocks until the game quits or the window closes.
// tps is the simulation rate; 0 keeps ebiten's default.
func Run(g *game.Game, scale float64, tps int, logger *log.Logger) error {
	field := g.Field()
	if scale <= 0 {
		scale = 1
	}
	if tps > 0 {
		ebiten.SetTPS(tps)
	}
	ebiten.SetWindowSize(int(field.Width*scale), int(field.Height*scale))
	ebiten.SetWindowTitle("Nova Siege")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(New(g, logger)); err != nil {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}

func (w *Window) Update() error {
	now := time.Now()
	delta := time.Second / time.Duration(ebiten.TPS())
	if !w.lastTick.IsZero() {
		delta = now.Sub(w.lastTick)
	}
	w.lastTick = now

	w.game.Tick(delta, pollKeys())
	if w.game.Quitting() {
		w.logger.Info("window closed", "score", w.game.Score(), "high_score", w.game.HighScore())
		return ebiten.Termination
	}
	return nil
}

// pollKeys maps keyboard state to actions. Held keys drive movement and
// firing; pause, confirm and quit fire once per press.
func pollKeys() input.Actions {
	held := func(keys ...ebiten.Key) bool {
		for _, k := range keys {
			if ebiten.IsKeyPressed(k) {
				return true
			}
		}
		return false
	}
	pressed := func(keys ...ebiten.Key) bool {
		for _, k := range keys {
			if inpututil.IsKeyJustPressed(k) {
				return true
			}
		}
		return false
	}

	return input.Actions{
		Left:    held(ebiten.KeyA, ebiten.KeyH, ebiten.KeyArrowLeft),
		Right:   held(ebiten.KeyD, ebiten.KeyL, ebiten.KeyArrowRight),
		Up:      held(ebiten.KeyW, ebiten.KeyK, ebiten.KeyArrowUp),
		Down:    held(ebiten.KeyS, ebiten.KeyJ, ebiten.KeyArrowDown),
		Fire:    held(ebiten.KeySpace, ebiten.KeyZ),
		Pulse:   held(ebiten.KeyX),
		Pause:   pressed(ebiten.KeyP),
		Confirm: pressed(ebiten.KeySpace, ebiten.KeyEnter),
		Quit:    pressed(ebiten.KeyQ, ebiten.KeyEscape),
	}
}

func (w *Window) Draw(screen *ebiten.Image) {
	s := w.game.Snapshot()
	screen.Fill(colorBackground)
	if s == nil {
		return
	}

	for _, st := range s.Stars {
		shade := uint8(80 + 60*st.Layer)
		vector.DrawFilledRect(screen, float32(st.X), float32(st.Y), 1+float32(st.Layer)*0.5, 1+float32(st.Layer)*0.5, color.RGBA{R: shade, G: shade, B: shade, A: 255}, false)
	}

	if s.State.ShowsWorld() {
		drawWorld(screen, s)
		drawHUD(screen, s)
	}

	cx, cy := int(s.Field.Width/2), int(s.Field.Height/2)
	switch s.State {
	case game.StateMenu:
		ebitenutil.DebugPrintAt(screen, "N O V A   S I E G E", cx-57, cy-60)
		ebitenutil.DebugPrintAt(screen, "move WASD/arrows  fire SPACE/Z", cx-90, cy-20)
		ebitenutil.DebugPrintAt(screen, "pulse X  pause P  quit Q", cx-72, cy)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("HIGH SCORE %d", s.HighScore), cx-48, cy+30)
		ebitenutil.DebugPrintAt(screen, "press SPACE to start", cx-60, cy+60)
	case game.StatePaused:
		ebitenutil.DebugPrintAt(screen, "PAUSED", cx-18, cy-10)
		ebitenutil.DebugPrintAt(screen, "P to resume  Q to quit", cx-66, cy+10)
	case game.StateGameOver:
		ebitenutil.DebugPrintAt(screen, "GAME OVER", cx-27, cy-30)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("SCORE %d", s.Score), cx-30, cy-10)
		if s.NewRecord {
			ebitenutil.DebugPrintAt(screen, "NEW RECORD!", cx-33, cy+10)
		}
		ebitenutil.DebugPrintAt(screen, "press SPACE to play again", cx-75, cy+40)
	}
}

func drawWorld(screen *ebiten.Image, s *game.Snapshot) {
	for i := range s.PowerUps {
		p := &s.PowerUps[i]
		c := tintColors[object.PowerUpTint(p.Kind)]
		y := float32(p.Y + p.Bob())
		vector.StrokeCircle(screen, float32(p.X), y, float32(p.Radius), 2, c, true)
		ebitenutil.DebugPrintAt(screen, p.Kind.Label(), int(p.X)-6, int(y)-8)
	}

	for i := range s.Bullets {
		b := &s.Bullets[i]
		trail := b.Trail()
		for j := 1; j < len(trail); j++ {
			vector.StrokeLine(screen, float32(trail[j-1].X), float32(trail[j-1].Y), float32(trail[j].X), float32(trail[j].Y), 1, colorTrail, true)
		}
		c := colorPlayerShot
		if b.Team == object.TeamEnemy {
			c = colorEnemyShot
		}
		vector.DrawFilledCircle(screen, float32(b.X), float32(b.Y), float32(b.Radius), c, true)
	}

	for i := range s.Enemies {
		drawEnemy(screen, &s.Enemies[i])
	}

	if p := &s.Player; p.Visible() {
		drawPlayer(screen, p)
	}

	for _, p := range s.Particles {
		c := tintColors[p.Tint]
		c.A = uint8(255 * p.Fade())
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), float32(max(p.Size, 1)), c, true)
	}
}

func drawPlayer(screen *ebiten.Image, p *object.Player) {
	hw, hh := p.HalfExtents()
	lean := p.Tilt / 45 * hw * 0.3
	c := colorPlayer
	if p.HitFlash > 0 {
		c = colorFlash
	}
	polygon(screen, c, [][2]float64{
		{p.X + lean*0.5, p.Y - hh},
		{p.X + hw, p.Y + hh - lean},
		{p.X, p.Y + hh*0.5},
		{p.X - hw, p.Y + hh + lean},
	})
	if p.Shield > 0 {
		vector.StrokeCircle(screen, float32(p.X), float32(p.Y), float32(max(hw, hh)+6), 1.5, colorShield, true)
	}
}

func drawEnemy(screen *ebiten.Image, e *object.Enemy) {
	size := e.Size()
	c := tintColors[object.KindTint(e.Kind)]
	if e.HitFlash > 0 {
		c = colorFlash
	}

	switch e.Kind {
	case object.KindHunter:
		polygon(screen, c, [][2]float64{{e.X, e.Y - size}, {e.X + size, e.Y}, {e.X, e.Y + size}, {e.X - size, e.Y}})
	case object.KindTank:
		pts := make([][2]float64, 6)
		for i := range pts {
			a := math.Pi/6 + float64(i)*math.Pi/3
			pts[i] = [2]float64{e.X + size*math.Cos(a), e.Y + size*math.Sin(a)}
		}
		polygon(screen, c, pts)
	default:
		polygon(screen, c, [][2]float64{{e.X - size, e.Y - size*0.7}, {e.X + size, e.Y - size*0.7}, {e.X, e.Y + size}})
	}
	vector.DrawFilledCircle(screen, float32(e.X), float32(e.Y), float32(size*0.35), c, true)

	if e.HP < e.MaxHP {
		x, y, w := float32(e.X-size), float32(e.Y-size-8), float32(size*2)
		vector.DrawFilledRect(screen, x, y, w, 3, colorHealthBack, false)
		vector.DrawFilledRect(screen, x, y, w*float32(e.HealthRatio()), 3, colorHealthBar, false)
	}
}

func polygon(screen *ebiten.Image, c color.Color, pts [][2]float64) {
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		vector.StrokeLine(screen, float32(a[0]), float32(a[1]), float32(b[0]), float32(b[1]), 2, c, true)
	}
}

func drawHUD(screen *ebiten.Image, s *game.Snapshot) {
	p := &s.Player
	line := fmt.Sprintf("SCORE %06d  HI %06d  WAVE %d", s.Score, max(s.HighScore, s.Score), s.Wave)
	if s.Multiplier > 1 {
		line += fmt.Sprintf("  x%d", s.Multiplier)
	}
	ebitenutil.DebugPrintAt(screen, line, 8, 6)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("HP %3d  SH %2d  PULSE %3.0f%%", p.Health, p.Shield, p.PulseReadiness()*100), 8, 22)

	triple, rapid := p.TimerRatios()
	if rapid > 0 {
		ebitenutil.DebugPrintAt(screen, "RAPID", 8, 38)
	}
	if triple > 0 {
		ebitenutil.DebugPrintAt(screen, "TRIPLE", 56, 38)
	}
}

// Layout keeps the logical field size; ebiten scales it to the window.
func (w *Window) Layout(_, _ int) (int, int) {
	f := w.game.Field()
	return int(f.Width), int(f.Height)
}
