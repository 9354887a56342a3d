package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomz197/starfall/internal/draw"
	"github.com/tomz197/starfall/internal/loop/config"
	"github.com/tomz197/starfall/internal/loop/session"
	"github.com/tomz197/starfall/internal/object"
	"github.com/tomz197/starfall/internal/physics"
)

// Blink period of pickups about to expire.
const powerUpBlinkMs = 150

var powerUpColors = map[object.PowerUpKind]draw.Color{
	object.PowerUpShield:    draw.ColorBlue,
	object.PowerUpRapidFire: draw.ColorYellow,
	object.PowerUpSpeed:     draw.ColorGreen,
	object.PowerUpDualShot:  draw.ColorMagenta,
	object.PowerUpHealth:    draw.ColorPink,
}

var powerUpLabels = map[object.PowerUpKind]string{
	object.PowerUpShield:    "SHIELD",
	object.PowerUpRapidFire: "RAPID",
	object.PowerUpSpeed:     "SPEED",
	object.PowerUpDualShot:  "DUAL",
	object.PowerUpHealth:    "HEALTH",
}

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On game state or inactivity transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	stateChanged := c.state.GameState != c.state.prevGameState
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if stateChanged || inactiveChanged {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevGameState = c.state.GameState
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Clear()
	c.effects.DrawStars(c.canvas)

	snap := c.game.Snapshot()
	if snap != nil && c.state.GameState != GameStateStart {
		c.drawWorld(snap)
	}
	c.effects.DrawParticles(c.canvas)

	// Render canvas to terminal
	c.canvas.Render(c.chunkWriter)

	// Draw border when terminal exceeds max render resolution
	c.canvas.RenderBorder(c.chunkWriter)

	c.drawUI(snap)

	return c.chunkWriter.Flush()
}

// drawWorld draws every entity of the snapshot onto the canvas.
func (c *Client) drawWorld(snap *session.Snapshot) {
	for _, p := range snap.PowerUps {
		if p.Blinking && (snap.Now/powerUpBlinkMs)%2 == 1 {
			continue
		}
		c.drawPowerUp(p)
	}

	for _, e := range snap.Enemies {
		c.drawEnemy(e)
	}

	for _, b := range snap.Bullets {
		color := draw.ColorYellow
		if b.Kind == object.BulletDual {
			color = draw.ColorOrange
		}
		c.canvas.FillRect(rectOf(b.Box), color)
	}

	if !snap.Player.Hidden && snap.Player.HP > 0 {
		c.drawPlayer(snap.Player)
	}
}

// drawPlayer draws the ship as an arrow pointing up, with an outline
// around it while shielded.
func (c *Client) drawPlayer(p session.PlayerView) {
	halfW, halfH := p.W/2, p.H/2
	pts := c.canvas.BorrowPoints(4)
	pts[0] = draw.Point{X: p.X, Y: p.Y - halfH}
	pts[1] = draw.Point{X: p.X + halfW, Y: p.Y + halfH}
	pts[2] = draw.Point{X: p.X, Y: p.Y + halfH/2}
	pts[3] = draw.Point{X: p.X - halfW, Y: p.Y + halfH}
	c.canvas.DrawPolygon(pts, true, draw.ColorCyan)

	if p.Shielded {
		const pad = 8
		pts = c.canvas.BorrowPoints(4)
		pts[0] = draw.Point{X: p.X - halfW - pad, Y: p.Y - halfH - pad}
		pts[1] = draw.Point{X: p.X + halfW + pad, Y: p.Y - halfH - pad}
		pts[2] = draw.Point{X: p.X + halfW + pad, Y: p.Y + halfH + pad}
		pts[3] = draw.Point{X: p.X - halfW - pad, Y: p.Y + halfH + pad}
		c.canvas.DrawPolygon(pts, false, draw.ColorBlue)
	}
}

// drawEnemy draws an enemy, colored by remaining health, with a health bar
// once it has been hit.
func (c *Client) drawEnemy(e session.EnemyView) {
	color := draw.ColorRed
	switch {
	case e.Health <= 0.34:
		color = draw.ColorDarkRed
	case e.Health <= 0.67:
		color = draw.ColorOrange
	}
	c.canvas.FillRect(rectOf(e.Box), color)

	if e.Health < 1 {
		bar := physics.Rect{X: e.X - e.W/2, Y: e.Y - e.H/2 - 8, W: e.W, H: 4}
		c.canvas.FillRect(bar, draw.ColorGray)
		bar.W = e.W * e.Health
		c.canvas.FillRect(bar, draw.ColorGreen)
	}
}

func (c *Client) drawPowerUp(p session.PowerUpView) {
	color, ok := powerUpColors[p.Kind]
	if !ok {
		color = draw.ColorWhite
	}
	// Diamond
	halfW, halfH := p.W/2, p.H/2
	pts := c.canvas.BorrowPoints(4)
	pts[0] = draw.Point{X: p.X, Y: p.Y - halfH}
	pts[1] = draw.Point{X: p.X + halfW, Y: p.Y}
	pts[2] = draw.Point{X: p.X, Y: p.Y + halfH}
	pts[3] = draw.Point{X: p.X - halfW, Y: p.Y}
	c.canvas.DrawPolygon(pts, true, color)
}

// rectOf converts a centered box into its top-left rectangle.
func rectOf(b session.Box) physics.Rect {
	return physics.Rect{X: b.X - b.W/2, Y: b.Y - b.H/2, W: b.W, H: b.H}
}

// drawUI draws the text overlay of the current screen.
func (c *Client) drawUI(snap *session.Snapshot) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	switch c.state.GameState {
	case GameStateStart:
		c.drawStartScreen(centerX, centerY)
	case GameStatePlaying:
		if snap != nil {
			c.drawPlayingHUD(termWidth, termHeight, snap)
		}
	case GameStateOver:
		if snap != nil {
			c.drawOverScreen(centerX, centerY, snap)
		}
	}
}

// text writes s at (col, row) and marks the covered cells so the canvas
// repaints them once the text is gone.
func (c *Client) text(col, row int, s string) {
	c.chunkWriter.WriteAt(col, row, s)
	c.canvas.MarkTextDirty(col, row, draw.TextWidth(s))
}

func (c *Client) centered(centerX, row int, s string) {
	col := c.chunkWriter.WriteCentered(centerX, row, s)
	c.canvas.MarkTextDirty(col, row, draw.TextWidth(s))
}

// blinkOn drives blinking prompts.
func (c *Client) blinkOn() bool {
	return time.Now().UnixMilli()/600%2 == 0
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	c.centered(centerX, centerY-2, "INACTIVITY WARNING")
	c.centered(centerX, centerY, "You have been inactive for too long.")
	c.centered(centerX, centerY+1, fmt.Sprintf(
		"Disconnecting in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	))
	c.centered(centerX, centerY+3, "Press any key to continue")
}

// drawStartScreen draws the title screen with the difficulty menu.
func (c *Client) drawStartScreen(centerX, centerY int) {
	// ASCII art title (figlet "small" font)
	titleArt := []string{
		` ___ _____ _   ___ ___ _   _    _    `,
		`/ __|_   _/_\ | _ \ __/_\ | |  | |   `,
		`\__ \ | |/ _ \|   / _/ _ \| |__| |__ `,
		`|___/ |_/_/ \_\_|_\_/_/ \_\____|____|`,
	}

	titleStartY := centerY - 10
	for i, line := range titleArt {
		c.centered(centerX, titleStartY+i, draw.Colored(draw.ColorCyan, line))
	}
	c.centered(centerX, titleStartY+len(titleArt)+1, "~ Hold the line ~")

	menuY := titleStartY + len(titleArt) + 3
	c.centered(centerX, menuY, "Difficulty")
	for i, d := range config.Difficulties {
		marker := "  "
		label := fmt.Sprintf("%d  %-9s", i+1, d)
		if d == c.state.Selected {
			marker = "> "
			label = draw.Colored(draw.ColorGold, label)
		}
		c.centered(centerX, menuY+1+i, marker+label+"  ")
	}

	controlsY := menuY + len(config.Difficulties) + 2
	controlLines := []string{
		"WASD / Arrows . . Move",
		"SPACE . . . . . . Fire",
		"ESC . . . . . . . Menu",
		"Q . . . . . . . . Quit",
	}
	for i, line := range controlLines {
		c.centered(centerX, controlsY+i, line)
	}

	promptY := controlsY + len(controlLines) + 1
	prompt := ">>  Press ENTER to Start  <<"
	if c.blinkOn() {
		c.centered(centerX, promptY, prompt)
	} else {
		c.centered(centerX, promptY, strings.Repeat(" ", len(prompt)))
	}
}

// drawPlayingHUD draws the in-game HUD.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (c *Client) drawPlayingHUD(termWidth, termHeight int, snap *session.Snapshot) {
	c.text(2, 1, fmt.Sprintf("Score: %-8d", snap.Score))

	levelText := fmt.Sprintf("Lv %-3d Wave %-4d", snap.Level, snap.Wave)
	c.text(termWidth-len(levelText)-1, 1, levelText)

	p := snap.Player
	hearts := draw.Colored(draw.ColorRed, strings.Repeat("♥", p.HP)) +
		strings.Repeat("♡", max(p.MaxHP-p.HP, 0))
	c.text(2, termHeight, hearts)

	var effects strings.Builder
	for _, e := range p.Effects {
		label := fmt.Sprintf("%s %ds ", powerUpLabels[e.Kind], (e.RemainingMs+999)/1000)
		effects.WriteString(draw.Colored(powerUpColors[e.Kind], label))
	}
	// Pad so expired effects get overwritten
	effectsText := effects.String()
	if pad := termWidth - p.MaxHP - 4 - draw.TextWidth(effectsText); pad > 0 {
		effectsText += strings.Repeat(" ", pad)
	}
	c.text(p.MaxHP+4, termHeight, effectsText)

	diff := snap.Difficulty.String()
	if c.canvas.TerminalHeight() > 2 {
		c.text(termWidth-len(diff)-1, 2, draw.Colored(draw.ColorGray, diff))
	}
}

// drawOverScreen draws the game over screen.
func (c *Client) drawOverScreen(centerX, centerY int, snap *session.Snapshot) {
	titleArt := []string{
		`  ___   _   __  __ ___    _____   _____ ___  `,
		` / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
		`| (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
		` \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
	}
	titleStartY := centerY - 6
	for i, line := range titleArt {
		c.centered(centerX, titleStartY+i, draw.Colored(draw.ColorRed, line))
	}

	infoY := titleStartY + len(titleArt) + 1
	c.centered(centerX, infoY, fmt.Sprintf("Score: %d", snap.Score))
	c.centered(centerX, infoY+1, fmt.Sprintf("Level %d  Wave %d  (%s)", snap.Level, snap.Wave, snap.Difficulty))

	prompt := ">>  Press R to Restart  <<"
	if c.blinkOn() {
		c.centered(centerX, infoY+3, prompt)
	} else {
		c.centered(centerX, infoY+3, strings.Repeat(" ", len(prompt)))
	}
	c.centered(centerX, infoY+5, "1-4 change difficulty, ESC menu, Q quit")
}
