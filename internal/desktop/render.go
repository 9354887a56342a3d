package desktop

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/tomz197/starfall/internal/loop/config"
	"github.com/tomz197/starfall/internal/loop/session"
	"github.com/tomz197/starfall/internal/object"
)

var (
	colorBackground = color.RGBA{5, 6, 13, 255}
	colorText       = color.RGBA{220, 225, 235, 255}
	colorDim        = color.RGBA{120, 125, 140, 255}
	colorPlayer     = color.RGBA{0, 230, 255, 255}
	colorShield     = color.RGBA{50, 150, 255, 255}
	colorEnemy      = color.RGBA{230, 40, 40, 255}
	colorEnemyHurt  = color.RGBA{255, 140, 0, 255}
	colorEnemyLow   = color.RGBA{130, 20, 20, 255}
	colorBullet     = color.RGBA{255, 220, 40, 255}
	colorDualBullet = color.RGBA{255, 140, 0, 255}
	colorHealthBar  = color.RGBA{60, 230, 90, 255}
	colorBarBack    = color.RGBA{80, 80, 80, 255}
	colorSelected   = color.RGBA{255, 200, 50, 255}
	colorGameOver   = color.RGBA{255, 60, 60, 255}
)

var powerUpColors = map[object.PowerUpKind]color.RGBA{
	object.PowerUpShield:    {50, 150, 255, 255},
	object.PowerUpRapidFire: {255, 220, 40, 255},
	object.PowerUpSpeed:     {60, 230, 90, 255},
	object.PowerUpDualShot:  {230, 60, 230, 255},
	object.PowerUpHealth:    {255, 100, 140, 255},
}

var hudFace = text.NewGoXFace(basicfont.Face7x13)

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	if g.screen != screenMenu {
		g.drawWorld(screen)
	}
	g.drawSparks(screen)

	switch g.screen {
	case screenMenu:
		g.drawMenu(screen)
	case screenPlaying:
		g.drawHUD(screen)
	case screenOver:
		g.drawHUD(screen)
		g.drawGameOver(screen)
	}
}

func fillBox(dst *ebiten.Image, b session.Box, clr color.Color) {
	vector.DrawFilledRect(dst, float32(b.X-b.W/2), float32(b.Y-b.H/2), float32(b.W), float32(b.H), clr, false)
}

func (g *Game) drawWorld(screen *ebiten.Image) {
	snap := &g.snap
	for _, p := range snap.PowerUps {
		if p.Blinking && (snap.Now/150)%2 == 1 {
			continue
		}
		fillBox(screen, p.Box, powerUpColors[p.Kind])
	}

	for _, e := range snap.Enemies {
		clr := colorEnemy
		switch {
		case e.Health <= 0.34:
			clr = colorEnemyLow
		case e.Health <= 0.67:
			clr = colorEnemyHurt
		}
		fillBox(screen, e.Box, clr)
		if e.Health < 1 {
			x, y := float32(e.X-e.W/2), float32(e.Y-e.H/2-8)
			vector.DrawFilledRect(screen, x, y, float32(e.W), 4, colorBarBack, false)
			vector.DrawFilledRect(screen, x, y, float32(e.W*e.Health), 4, colorHealthBar, false)
		}
	}

	for _, b := range snap.Bullets {
		clr := colorBullet
		if b.Kind == object.BulletDual {
			clr = colorDualBullet
		}
		fillBox(screen, b.Box, clr)
	}

	p := snap.Player
	if p.Hidden || p.HP <= 0 {
		return
	}
	// Arrow-shaped ship
	nose := [2]float32{float32(p.X), float32(p.Y - p.H/2)}
	right := [2]float32{float32(p.X + p.W/2), float32(p.Y + p.H/2)}
	notch := [2]float32{float32(p.X), float32(p.Y + p.H/4)}
	left := [2]float32{float32(p.X - p.W/2), float32(p.Y + p.H/2)}
	for _, seg := range [][2][2]float32{{nose, right}, {right, notch}, {notch, left}, {left, nose}} {
		vector.StrokeLine(screen, seg[0][0], seg[0][1], seg[1][0], seg[1][1], 3, colorPlayer, true)
	}
	if p.Shielded {
		vector.StrokeRect(screen, float32(p.X-p.W/2-8), float32(p.Y-p.H/2-8), float32(p.W+16), float32(p.H+16), 2, colorShield, true)
	}
}

func (g *Game) drawSparks(screen *ebiten.Image) {
	for _, s := range g.sparks {
		clr := colorEnemyHurt
		if s.kind == session.EventPlayerHit {
			clr = colorPlayer
		}
		alpha := float32(s.life) / float32(s.max)
		faded := color.RGBA{
			R: uint8(float32(clr.R) * alpha),
			G: uint8(float32(clr.G) * alpha),
			B: uint8(float32(clr.B) * alpha),
			A: uint8(255 * alpha),
		}
		vector.DrawFilledRect(screen, float32(s.x-2), float32(s.y-2), 4, 4, faded, false)
	}
}

func drawText(screen *ebiten.Image, s string, x, y float64, clr color.Color, align text.Align) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = align
	text.Draw(screen, s, hudFace, op)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	snap := &g.snap
	drawText(screen, fmt.Sprintf("Score: %d", snap.Score), 10, 10, colorText, text.AlignStart)
	drawText(screen, fmt.Sprintf("Lv %d  Wave %d", snap.Level, snap.Wave), config.PlayWidth-10, 10, colorText, text.AlignEnd)
	drawText(screen, snap.Difficulty.String(), config.PlayWidth-10, 26, colorDim, text.AlignEnd)

	// HP bar
	p := snap.Player
	const segW, segH = 18, 8
	for i := range p.MaxHP {
		clr := colorBarBack
		if i < p.HP {
			clr = colorEnemy
		}
		vector.DrawFilledRect(screen, float32(10+i*(segW+4)), config.PlayHeight-20, segW, segH, clr, false)
	}

	x := float64(10 + p.MaxHP*(segW+4) + 10)
	for _, e := range p.Effects {
		label := fmt.Sprintf("%s %ds", strings.ToUpper(e.Kind.String()), (e.RemainingMs+999)/1000)
		drawText(screen, label, x, config.PlayHeight-24, powerUpColors[e.Kind], text.AlignStart)
		x += float64(len(label)*7 + 12)
	}
}

func (g *Game) drawMenu(screen *ebiten.Image) {
	cx := float64(config.PlayWidth) / 2
	drawText(screen, "S T A R F A L L", cx, 200, colorPlayer, text.AlignCenter)
	drawText(screen, "~ Hold the line ~", cx, 224, colorDim, text.AlignCenter)

	drawText(screen, "Difficulty", cx, 290, colorText, text.AlignCenter)
	for i, d := range config.Difficulties {
		label := fmt.Sprintf("%d  %s", i+1, d)
		clr := color.Color(colorDim)
		if d == g.selected {
			label = "> " + label + " <"
			clr = colorSelected
		}
		drawText(screen, label, cx, float64(314+i*20), clr, text.AlignCenter)
	}

	controls := []string{
		"Arrows / WASD  move",
		"SPACE  fire",
		"ESC  menu    Q  quit",
	}
	for i, line := range controls {
		drawText(screen, line, cx, float64(430+i*18), colorDim, text.AlignCenter)
	}
	if (g.ticks/36)%2 == 0 {
		drawText(screen, ">>  Press ENTER to Start  <<", cx, 520, colorText, text.AlignCenter)
	}
}

func (g *Game) drawGameOver(screen *ebiten.Image) {
	snap := &g.snap
	cx := float64(config.PlayWidth) / 2
	drawText(screen, "GAME OVER", cx, 300, colorGameOver, text.AlignCenter)
	drawText(screen, fmt.Sprintf("Score %d  Level %d  Wave %d", snap.Score, snap.Level, snap.Wave), cx, 330, colorText, text.AlignCenter)
	drawText(screen, "R restart   1-4 difficulty   ESC menu", cx, 360, colorDim, text.AlignCenter)
}
