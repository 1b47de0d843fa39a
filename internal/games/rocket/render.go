package rocket

import (
	"fmt"
	"math"

	"github.com/vovakirdan/kids-arcade/internal/core"
	"github.com/vovakirdan/kids-arcade/internal/games/rocket/flight"
)

// Rendering characters
const (
	StarChar   = '.'
	BodyChar   = '█'
	PathChar   = '·'
	FlameChar  = '*'
	BlastChar  = '✹'
	GaugeFull  = '█'
	GaugeEmpty = '░'
)

// arrows are the rocket glyphs for each 45° heading sector, clockwise from up.
var arrows = []rune("↑↗→↘↓↙←↖")

// viewport maps world coordinates to screen cells. A terminal cell is about
// twice as tall as it is wide, so one row covers two columns of world.
type viewport struct {
	scale      float64 // world units per column
	offX, offY float64 // screen position of the world origin
}

func newViewport(w flight.World, screenW, screenH int) viewport {
	if screenW <= 0 || screenH <= 0 {
		return viewport{scale: 1}
	}
	scale := max(w.Width/float64(screenW), w.Height/float64(2*screenH))
	return viewport{
		scale: scale,
		offX:  (float64(screenW) - w.Width/scale) / 2,
		offY:  (float64(screenH) - w.Height/(2*scale)) / 2,
	}
}

// project returns the cell containing world point p.
func (v viewport) project(p core.Vec2) (int, int) {
	x := v.offX + p.X/v.scale
	y := v.offY + p.Y/(2*v.scale)
	return int(math.Floor(x)), int(math.Floor(y))
}

// unproject returns the world point at the centre of cell (x, y).
func (v viewport) unproject(x, y int) core.Vec2 {
	return core.V(
		(float64(x)+0.5-v.offX)*v.scale,
		(float64(y)+0.5-v.offY)*2*v.scale,
	)
}

// Render draws the current game state to the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	view := newViewport(g.world, dst.Width(), dst.Height())

	g.drawStars(dst)
	g.drawBody(dst, view, g.world.Primary, core.ColorBlue)
	g.drawBody(dst, view, g.world.Secondary, core.ColorGray)

	switch g.stage {
	case StageQuiz:
		parked := g.cfg.FlightLaunch(g.world, 0)
		g.drawRocket(dst, view, flight.RocketState{Position: parked.Position, Heading: parked.Heading})
		g.drawQuiz(dst)
		return
	case StageNoFuel:
		if g.sim != nil {
			g.drawFlight(dst, view)
		} else {
			parked := g.cfg.FlightLaunch(g.world, 0)
			g.drawRocket(dst, view, flight.RocketState{Position: parked.Position, Heading: parked.Heading})
		}
		drawCenteredMessage(dst,
			line{"NO FUEL", core.ColorBrightRed},
			line{"Please try again", core.ColorWhite},
			line{"", core.ColorDefault},
			line{"Press R to restart", core.ColorGray},
		)
		return
	}

	if g.sim == nil {
		return
	}
	g.drawFlight(dst, view)
	st := g.sim.State()

	if st.Phase == flight.Flying && st.Fuel <= 0 {
		dst.DrawTextCentered(dst.Height()-2, "Fuel has run out!", core.ColorOrange)
	}

	if g.paused {
		drawCenteredMessage(dst,
			line{"PAUSED", core.ColorBrightWhite},
			line{"Press P to resume", core.ColorGray},
		)
	}

	if g.stage == StageResult {
		title := line{"SAFE LANDING!", core.ColorGreen}
		hint := "Press R to fly again"
		if st.Phase != flight.Landed {
			title = line{"CRASHED!", core.ColorBrightRed}
			hint = "Press R to try again"
		}
		drawCenteredMessage(dst,
			title,
			line{fmt.Sprintf("Completed %d orbits", st.OrbitCount()), core.ColorWhite},
			line{fmt.Sprintf("Score: %d", g.score), core.ColorBrightYellow},
			line{"", core.ColorDefault},
			line{hint, core.ColorGray},
		)
	}
}

// drawFlight draws the predicted path, the rocket and the instruments.
func (g *Game) drawFlight(dst *core.Screen, view viewport) {
	st := g.sim.State()
	for _, p := range g.path {
		x, y := view.project(p)
		if dst.Get(x, y) == ' ' || dst.Get(x, y) == StarChar {
			dst.SetColored(x, y, PathChar, core.ColorGray)
		}
	}
	g.drawRocket(dst, view, st)
	g.drawHUD(dst, g.sim.Telemetry())
	drawFuelGauge(dst, st.Fuel)
}

// drawStars scatters a fixed pattern of stars that does not move between frames.
func (g *Game) drawStars(dst *core.Screen) {
	w, h := dst.Width(), dst.Height()
	if w <= 0 || h <= 0 {
		return
	}
	for i := 0; i < g.cfg.View.Stars; i++ {
		x := (i*137 + 12345) % w
		y := (i*239 + 12345) % h
		dst.SetColored(x, y, StarChar, core.ColorGray)
	}
}

// drawBody fills every cell whose centre lies inside the body, and at least
// the centre cell so tiny bodies stay visible.
func (g *Game) drawBody(dst *core.Screen, view viewport, b flight.Body, c core.Color) {
	x0, y0 := view.project(b.Position.Sub(core.V(b.Radius, b.Radius)))
	x1, y1 := view.project(b.Position.Add(core.V(b.Radius, b.Radius)))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if view.unproject(x, y).Distance(b.Position) <= b.Radius {
				dst.SetColored(x, y, BodyChar, c)
			}
		}
	}
	cx, cy := view.project(b.Position)
	dst.SetColored(cx, cy, BodyChar, c)

	label := b.Name
	dst.DrawTextColored(cx-len([]rune(label))/2, y1+1, label, core.ColorWhite)
}

func (g *Game) drawRocket(dst *core.Screen, view viewport, st flight.RocketState) {
	x, y := view.project(st.Position)

	if st.Phase == flight.Crashed {
		color := core.ColorBrightRed
		if (g.ticks/6)%2 == 1 {
			color = core.ColorOrange
		}
		for dy := -1; dy <= 1; dy++ {
			for dx := -2; dx <= 2; dx++ {
				dst.SetColored(x+dx, y+dy, FlameChar, color)
			}
		}
		dst.SetColored(x, y, BlastChar, core.ColorBrightYellow)
		return
	}

	if st.ThrustActive && st.Phase == flight.Flying {
		// The flame trails opposite the nose.
		back := flight.Direction(st.Heading).Scale(-1)
		fx := x + int(math.Round(back.X))
		fy := y + int(math.Round(back.Y))
		dst.SetColored(fx, fy, FlameChar, core.ColorOrange)
	}

	color := core.ColorBrightWhite
	if st.Phase == flight.Landed {
		color = core.ColorGreen
	}
	dst.SetColored(x, y, arrowFor(st.Heading), color)
}

// arrowFor picks the glyph whose sector contains the heading.
func arrowFor(heading float64) rune {
	deg := flight.HeadingDegrees(heading)
	idx := int(math.Floor((deg+22.5)/45)) % len(arrows)
	return arrows[idx]
}

func (g *Game) drawHUD(dst *core.Screen, t flight.Telemetry) {
	box := core.NewRect(0, 0, 22, 6)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorGray)

	speedColor := core.ColorWhite
	if t.SpeedPerSecond > g.params.CrashSpeed {
		speedColor = core.ColorRed
	}
	fuelColor := core.ColorWhite
	if t.Fuel <= 0 {
		fuelColor = core.ColorRed
	}

	dst.DrawTextColored(2, 1, fmt.Sprintf("Orbits: %d", t.Orbits), core.ColorGreen)
	dst.DrawTextColored(2, 2, fmt.Sprintf("Speed: %.0f u/s", t.SpeedPerSecond), speedColor)
	dst.DrawTextColored(2, 3, fmt.Sprintf("Angle: %.0f°", t.HeadingDegrees), core.ColorWhite)
	dst.DrawTextColored(2, 4, fmt.Sprintf("Fuel: %.0f%%", t.Fuel), fuelColor)
}

// drawFuelGauge draws a vertical tank along the right edge, filled from the bottom.
func drawFuelGauge(dst *core.Screen, fuel float64) {
	height := dst.Height() - 2
	if height <= 0 {
		return
	}
	x := dst.Width() - 2
	filled := int(math.Round(core.ClampF(fuel, 0, flight.MaxFuel) / flight.MaxFuel * float64(height)))

	color := core.ColorGreen
	switch {
	case fuel <= 20:
		color = core.ColorRed
	case fuel <= 50:
		color = core.ColorYellow
	}
	dst.DrawVLine(x, 1, height-filled, GaugeEmpty, core.ColorGray)
	dst.DrawVLine(x, 1+height-filled, filled, GaugeFull, color)
}

func (g *Game) drawQuiz(dst *core.Screen) {
	if g.quiz == nil {
		return
	}
	lines := []line{{"MATH FUEL STATION", core.ColorBrightYellow}, {"", core.ColorDefault}}

	if p, ok := g.quiz.Current(); ok {
		lines = append(lines,
			line{fmt.Sprintf("Question %d/%d", g.quiz.Index()+1, g.quiz.Len()), core.ColorGray},
			line{p.String(), core.ColorBrightWhite},
		)
	} else {
		lines = append(lines,
			line{fmt.Sprintf("Question %d/%d", g.quiz.Len(), g.quiz.Len()), core.ColorGray},
			line{"", core.ColorDefault},
		)
	}

	switch {
	case g.feedback != "" && g.feedbackOK:
		lines = append(lines, line{g.feedback, core.ColorGreen})
	case g.feedback != "":
		lines = append(lines, line{g.feedback, core.ColorRed})
	default:
		cursor := "_"
		if (g.ticks/30)%2 == 1 {
			cursor = " "
		}
		lines = append(lines, line{"Answer: " + string(g.answer) + cursor, core.ColorCyan})
	}

	lines = append(lines,
		line{"", core.ColorDefault},
		line{fmt.Sprintf("Fuel: %.0f%%", g.quiz.Fuel()), core.ColorOrange},
		line{"Type the answer, Enter to check", core.ColorGray},
	)
	drawCenteredMessage(dst, lines...)
}

// line is one row of a message box.
type line struct {
	text  string
	color core.Color
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, lines ...line) {
	w := dst.Width()
	h := dst.Height()

	// Calculate box dimensions
	boxW := 0
	for _, l := range lines {
		boxW = max(boxW, len([]rune(l.text)))
	}
	boxW += 4
	boxH := len(lines) + 2
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorWhite)

	for i, l := range lines {
		x := boxX + (boxW-len([]rune(l.text)))/2
		dst.DrawTextColored(x, boxY+1+i, l.text, l.color)
	}
}
