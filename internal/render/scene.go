package render

import (
	"math"

	"github.com/tomz197/novasiege/internal/draw"
	"github.com/tomz197/novasiege/internal/game"
	"github.com/tomz197/novasiege/internal/object"
)

// drawScene rasterizes the world in back-to-front order.
func drawScene(c *draw.Canvas, s *game.Snapshot) {
	for _, st := range s.Stars {
		c.Set(st.X, st.Y, starColor(st.Layer))
	}
	if !s.State.ShowsWorld() {
		return
	}

	for i := range s.PowerUps {
		drawPowerUp(c, &s.PowerUps[i])
	}
	for i := range s.Bullets {
		drawBullet(c, &s.Bullets[i])
	}
	for i := range s.Enemies {
		drawEnemy(c, &s.Enemies[i])
	}
	if s.Player.Visible() {
		drawPlayer(c, &s.Player)
	}
	for _, p := range s.Particles {
		if p.Fade() < 0.15 {
			continue
		}
		c.Set(p.X, p.Y, tintColor(p.Tint))
	}
}

func drawPlayer(c *draw.Canvas, p *object.Player) {
	hw, hh := p.HalfExtents()
	lean := p.Tilt / 45 * hw * 0.3

	col := draw.PaletteColor(colorPlayer)
	if p.HitFlash > 0 {
		col = draw.PaletteColor(colorWhite)
	}

	pts := c.BorrowPoints(4)
	pts[0] = draw.Point{X: p.X + lean*0.5, Y: p.Y - hh}
	pts[1] = draw.Point{X: p.X + hw, Y: p.Y + hh - lean}
	pts[2] = draw.Point{X: p.X, Y: p.Y + hh*0.5}
	pts[3] = draw.Point{X: p.X - hw, Y: p.Y + hh + lean}
	c.DrawPolygon(pts, true, col)

	if p.Shield > 0 {
		c.DrawCircle(draw.Point{X: p.X, Y: p.Y}, max(hw, hh)+6, false, draw.PaletteColor(colorShield))
	}
}

func drawEnemy(c *draw.Canvas, e *object.Enemy) {
	size := e.Size()
	col := tintColor(object.KindTint(e.Kind))
	if e.HitFlash > 0 {
		col = draw.PaletteColor(colorWhite)
	}

	var pts []draw.Point
	switch e.Kind {
	case object.KindHunter:
		pts = c.BorrowPoints(4)
		pts[0] = draw.Point{X: e.X, Y: e.Y - size}
		pts[1] = draw.Point{X: e.X + size, Y: e.Y}
		pts[2] = draw.Point{X: e.X, Y: e.Y + size}
		pts[3] = draw.Point{X: e.X - size, Y: e.Y}
	case object.KindTank:
		pts = c.BorrowPoints(6)
		for i := range pts {
			a := math.Pi/6 + float64(i)*math.Pi/3
			pts[i] = draw.Point{X: e.X + size*math.Cos(a), Y: e.Y + size*math.Sin(a)}
		}
	default:
		pts = c.BorrowPoints(3)
		pts[0] = draw.Point{X: e.X - size, Y: e.Y - size*0.7}
		pts[1] = draw.Point{X: e.X + size, Y: e.Y - size*0.7}
		pts[2] = draw.Point{X: e.X, Y: e.Y + size}
	}
	c.DrawPolygon(pts, true, col)

	if e.HP < e.MaxHP {
		w := size * 2
		y := e.Y - size - 6
		c.FillRect(e.X-size, y, w, 2, draw.PaletteColor(colorHealthBarBg))
		c.FillRect(e.X-size, y, w*e.HealthRatio(), 2, draw.PaletteColor(colorHealth))
	}
}

func drawBullet(c *draw.Canvas, b *object.Bullet) {
	trail := b.Trail()
	for i := 1; i < len(trail); i++ {
		c.DrawLine(draw.Point(trail[i-1]), draw.Point(trail[i]), draw.PaletteColor(colorTrail))
	}

	col := draw.PaletteColor(colorPlayerShot)
	if b.Team == object.TeamEnemy {
		col = draw.PaletteColor(colorEnemyShot)
	}
	c.DrawCircle(draw.Point{X: b.X, Y: b.Y}, b.Radius, true, col)
}

func drawPowerUp(c *draw.Canvas, p *object.PowerUp) {
	center := draw.Point{X: p.X, Y: p.Y + p.Bob()}
	col := tintColor(object.PowerUpTint(p.Kind))
	c.DrawCircle(center, p.Radius, false, col)
	c.DrawCircle(center, p.Radius*0.4, true, col)
}
