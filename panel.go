package polyfarm

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/smasonuk/polyfarm/farm"
)

const (
	panelMargin  = 10
	panelPadding = 8
	lineHeight   = 16
	loadBarWidth = 300
	loadBarH     = 20
	cursorLift   = 4
)

var (
	panelBackground = color.RGBA{R: 20, G: 24, B: 28, A: 190}
	panelText       = color.RGBA{R: 235, G: 235, B: 235, A: 255}
	loadBackground  = color.RGBA{R: 20, G: 24, B: 28, A: 230}
	loadFill        = color.RGBA{R: 112, G: 158, B: 74, A: 255}
)

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func panelLines(s farm.Settings, stats RenderStats, animals int, fps float64) []string {
	return []string{
		fmt.Sprintf("[M] mouse: %s", s.MouseMode),
		fmt.Sprintf("[C] color: %s", s.ColorMode),
		fmt.Sprintf("[ ] hue: %.0f", s.Hue),
		fmt.Sprintf("[P] click to place: %s", onOff(s.ClickToPlace)),
		fmt.Sprintf("[O] object: %s", s.ObjectType),
		fmt.Sprintf("[Space] paused: %s", onOff(s.Paused)),
		"[R] repaint  [Tab] hide",
		fmt.Sprintf("animals %d  faces %d  draws %d  fps %.0f", animals, stats.Faces, stats.Draws, fps),
	}
}

func drawText(screen *ebiten.Image, face text.Face, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.LineSpacing = lineHeight
	text.Draw(screen, s, face, op)
}

func drawPanel(screen *ebiten.Image, face text.Face, lines []string) {
	body := strings.Join(lines, "\n")
	w, h := text.Measure(body, face, lineHeight)
	FillRect(screen, panelMargin, panelMargin, float32(w)+2*panelPadding, float32(h)+2*panelPadding, panelBackground)
	drawText(screen, face, body, panelMargin+panelPadding, panelMargin+panelPadding, panelText)
}

func drawCursorLabel(screen *ebiten.Image, face text.Face, label string, sx, sy float64) {
	w, _ := text.Measure(label, face, lineHeight)
	drawText(screen, face, label, sx-w/2, sy-lineHeight-cursorLift, panelText)
}

// drawLoadScreen covers the scene with a progress bar until every model has
// loaded.
func drawLoadScreen(screen *ebiten.Image, face text.Face, p farm.LoadProgress) {
	size := screen.Bounds().Size()
	sw, sh := float32(size.X), float32(size.Y)
	FillRect(screen, 0, 0, sw, sh, loadBackground)

	x, y := (sw-loadBarWidth)/2, (sh-loadBarH)/2
	FillRect(screen, x, y, loadBarWidth*float32(p.Percent()/100), loadBarH, loadFill)
	DrawPolygonOutline(screen,
		[]float32{x, x + loadBarWidth, x + loadBarWidth, x},
		[]float32{y, y, y + loadBarH, y + loadBarH},
		2, panelText)

	label := fmt.Sprintf("loading %d/%d (%.0f%%)", p.Loaded, p.Total, p.Percent())
	w, _ := text.Measure(label, face, lineHeight)
	drawText(screen, face, label, float64(sw)/2-w/2, float64(y)+loadBarH+panelPadding, panelText)
}
