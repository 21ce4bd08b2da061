package crossy

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/crossy-arcade/internal/core"
)

// Visual characters for rendering
const (
	GrassChar   = '·'
	TreeLow     = '♣'
	TreeTall    = '♠'
	CornChar    = '¥'
	SparkleChar = '✦'
	WaterChar   = '~'
	LogChar     = '═'
	RoadChar    = '_'
	PlayerChar  = '@'
	HitChar     = 'X'
	EdgeChar    = '│'
)

// maxCornDisplay caps the corn symbols drawn in the HUD.
const maxCornDisplay = 20

// CornHUD renders the corn counter the way the HUD shows it.
func CornHUD(n int) string {
	if n <= maxCornDisplay {
		return strings.Repeat(string(CornChar), n)
	}
	return strings.Repeat(string(CornChar), maxCornDisplay) + fmt.Sprintf(" +%d", n-maxCornDisplay)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}

	w, h := dst.Width(), dst.Height()
	lanes := g.cfg.Lanes
	tiles := lanes.MaxTile - lanes.MinTile + 1

	cellW := core.Clamp((w-2)/tiles, 1, 3)
	x0 := (w - tiles*cellW) / 2
	playerY := h - 4
	pos := g.session.Position()

	for y := 1; y < h-1; y++ {
		row := pos.Row + (playerY - y)
		if row < 0 {
			continue
		}
		dst.SetWithColor(x0-1, y, EdgeChar, core.ColorGray)
		dst.SetWithColor(x0+tiles*cellW, y, EdgeChar, core.ColorGray)
		g.drawRow(dst, row, y, x0, cellW)
	}

	g.drawPlayer(dst, pos, playerY, x0, cellW)
	g.drawHUD(dst)

	help := "←↑↓→/WASD hop  P pause  B menu  Q quit"
	dst.DrawTextColor((w-len([]rune(help)))/2, h-1, help, core.ColorGray)

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}

	if g.session.Status() == StatusOver {
		p := g.session.Progress()
		g.drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  Corn: %d  |  Press R to restart", p.Score, p.Corn))
	}
}

// tileX returns the screen column of the left edge of tile.
func (g *Game) tileX(tile, x0, cellW int) int {
	return x0 + (tile-g.cfg.Lanes.MinTile)*cellW
}

// fillTile draws r in the middle of the tile cell and bg around it.
func (g *Game) fillTile(dst *core.Screen, tile, y, x0, cellW int, r rune, c core.Color, bg rune, bgc core.Color) {
	x := g.tileX(tile, x0, cellW)
	for i := 0; i < cellW; i++ {
		if i == cellW/2 {
			dst.SetWithColor(x+i, y, r, c)
		} else {
			dst.SetWithColor(x+i, y, bg, bgc)
		}
	}
}

func (g *Game) drawRow(dst *core.Screen, row, y, x0, cellW int) {
	minT, maxT := g.cfg.Lanes.MinTile, g.cfg.Lanes.MaxTile

	lane, ok := g.session.World().Lane(row)
	if !ok {
		// Start strip, or beyond the generated world
		for t := minT; t <= maxT; t++ {
			g.fillTile(dst, t, y, x0, cellW, GrassChar, core.ColorGreen, ' ', core.ColorDefault)
		}
		return
	}

	elapsed := g.elapsed()
	switch l := lane.(type) {
	case *GrassLane:
		for t := minT; t <= maxT; t++ {
			g.fillTile(dst, t, y, x0, cellW, GrassChar, core.ColorGreen, ' ', core.ColorDefault)
		}

	case *ForestLane:
		for t := minT; t <= maxT; t++ {
			g.fillTile(dst, t, y, x0, cellW, GrassChar, core.ColorGreen, ' ', core.ColorDefault)
		}
		for _, tr := range l.Trees {
			r, c := TreeLow, core.ColorBrightGreen
			if tr.Height >= 3 {
				r, c = TreeTall, core.ColorForest
			}
			g.fillTile(dst, tr.Tile, y, x0, cellW, r, c, ' ', core.ColorDefault)
		}
		for _, c := range l.Corn {
			g.fillTile(dst, c, y, x0, cellW, CornChar, core.ColorBrightYellow, ' ', core.ColorDefault)
		}
		for _, c := range l.Collected {
			g.fillTile(dst, c.Tile, y, x0, cellW, SparkleChar, core.ColorYellow, ' ', core.ColorDefault)
		}

	case *LogLane:
		for t := minT; t <= maxT; t++ {
			g.fillTile(dst, t, y, x0, cellW, WaterChar, core.ColorRiver, WaterChar, core.ColorRiver)
		}
		for t := range g.hazards.Occupied(l.Logs, l.Speed, l.Rightward, elapsed, minT, maxT) {
			g.fillTile(dst, t, y, x0, cellW, LogChar, core.ColorBrown, LogChar, core.ColorBrown)
		}

	case *AnimalLane:
		for t := minT; t <= maxT; t++ {
			g.fillTile(dst, t, y, x0, cellW, RoadChar, core.ColorAsphalt, RoadChar, core.ColorAsphalt)
		}
		for _, a := range l.Animals {
			occ := g.hazards.Occupied([]Segment{a.Segment}, l.Speed, l.Rightward, elapsed, minT, maxT)
			r, c := animalGlyph(a.Species)
			for t := range occ {
				g.fillTile(dst, t, y, x0, cellW, r, c, r, c)
			}
		}
	}
}

func animalGlyph(species string) (rune, core.Color) {
	switch species {
	case "cow":
		return 'C', core.ColorBrightWhite
	case "horse":
		return 'H', core.ColorOrange
	case "pig":
		return 'P', core.ColorBrightMagenta
	case "sheep":
		return 'S', core.ColorWhite
	default:
		return 'A', core.ColorRed
	}
}

func (g *Game) drawPlayer(dst *core.Screen, pos Position, playerY, x0, cellW int) {
	// Show the destination for the second half of a hop
	drawAt := pos
	if pending := g.session.Pending(); len(pending) > 0 && g.hop <= max(g.cfg.Player.HopTicks, 1)/2 {
		drawAt = pos.Step(pending[0])
	}
	y := playerY - (drawAt.Row - pos.Row)

	if g.session.Respawning() && (g.tick/8)%2 == 1 {
		return
	}

	r, c := PlayerChar, core.ColorBrightYellow
	if g.session.Shaking() || g.session.Status() == StatusOver {
		r, c = HitChar, core.ColorBrightRed
	}
	dst.SetWithColor(g.tileX(drawAt.Tile, x0, cellW)+cellW/2, y, r, c)
}

func (g *Game) drawHUD(dst *core.Screen) {
	p := g.session.Progress()
	hud := fmt.Sprintf(" Score: %d  Best: %d ", p.Score, p.Best)
	dst.DrawTextColor(1, 0, hud, core.ColorBrightWhite)

	corn := CornHUD(p.Corn)
	dst.DrawTextColor(dst.Width()-len([]rune(corn))-2, 0, corn, core.ColorBrightYellow)

	if g.runtime.PlayerName != "" {
		name := "[" + g.runtime.PlayerName + "]"
		dst.DrawTextColor(len(hud)+2, 0, name, core.ColorCyan)
	}

	if g.flash != "" && g.tick < g.flashUntil {
		dst.DrawTextCentered(1, g.flash)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len([]rune(title)))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len([]rune(subtitle)))/2, boxY+3, subtitle)
}
