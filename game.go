package polyfarm

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/smasonuk/polyfarm/farm"
	"github.com/smasonuk/polyfarm/scene"
	"golang.org/x/image/font/basicfont"
)

const (
	groundSegments = 16
	wallSegments   = 4
	hueStep        = 10
	orbitSpeed     = 1.0 / 200
	zoomStep       = 0.9
)

var (
	skyColor  = color.RGBA{R: 135, G: 190, B: 235, A: 255}
	dirtColor = color.RGBA{R: 110, G: 78, B: 52, A: 255}
)

type action int

const (
	actionCycleMouse action = iota
	actionCycleColor
	actionHueDown
	actionHueUp
	actionTogglePlace
	actionCycleObject
	actionPause
	actionRepaint
	actionTogglePanel
)

var keyActions = []struct {
	key    ebiten.Key
	action action
}{
	{ebiten.KeyM, actionCycleMouse},
	{ebiten.KeyC, actionCycleColor},
	{ebiten.KeyBracketLeft, actionHueDown},
	{ebiten.KeyBracketRight, actionHueUp},
	{ebiten.KeyP, actionTogglePlace},
	{ebiten.KeyO, actionCycleObject},
	{ebiten.KeySpace, actionPause},
	{ebiten.KeyR, actionRepaint},
	{ebiten.KeyTab, actionTogglePanel},
}

type GameOptions struct {
	WorldSize float64
	// Ground and Dirt are tiled GroundRepeat times across the ground and
	// across each wall of the block below it.
	Ground       image.Image
	Dirt         image.Image
	GroundRepeat float64
	PanelHidden  bool
	Logger       *slog.Logger
}

// Game runs the farm inside ebiten: it turns input into farm calls and
// paints the scene with the panel or the load screen on top.
type Game struct {
	farm   *farm.Farm
	world  *World
	camera *Camera
	ground *scene.Node
	walls  []*scene.Node
	face   text.Face
	logger *slog.Logger

	halfExtent   float64
	mouse        farm.Mouse
	panelHidden  bool
	dragging     bool
	lastX, lastY int
}

func NewGame(f *farm.Farm, camera *Camera, opts GameOptions) *Game {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	g := &Game{
		farm:        f,
		world:       NewWorld(camera),
		camera:      camera,
		face:        text.NewGoXFace(basicfont.Face7x13),
		logger:      opts.Logger,
		halfExtent:  opts.WorldSize / 2,
		panelHidden: opts.PanelHidden,
	}
	g.ground = newGround(opts)
	f.Graph().Add(g.ground)
	g.walls = newWalls(opts)
	for _, w := range g.walls {
		f.Graph().Add(w)
	}
	return g
}

func newGround(opts GameOptions) *scene.Node {
	n := scene.NewNode("ground", scene.NewGrid(opts.WorldSize, opts.WorldSize, groundSegments))
	n.Layer = scene.LayerGround
	n.Texture = tiledTexture(opts.Ground, opts.GroundRepeat)
	return n
}

// newWalls closes the world into a block of earth one world size deep: four
// sides hanging from the ground's edges and a floor.
func newWalls(opts GameOptions) []*scene.Node {
	ws := opts.WorldSize
	half := ws / 2
	mesh := scene.NewGrid(ws, ws, wallSegments)
	tex := tiledTexture(opts.Dirt, opts.GroundRepeat)

	walls := make([]*scene.Node, 5)
	for i := range walls {
		n := scene.NewNode(fmt.Sprintf("dirt-%d", i), mesh)
		n.Layer = scene.LayerUnderground
		n.DoubleSided = true
		n.Texture = tex
		if tex == nil {
			n.Tint = dirtColor
		}

		switch i {
		case 0, 1:
			n.Position = mgl64.Vec3{0, -half, half}
			if i == 1 {
				n.Position[2] = -half
			}
			n.RotateX(math.Pi / 2)
		case 2, 3:
			n.Position = mgl64.Vec3{half, -half, 0}
			if i == 3 {
				n.Position[0] = -half
			}
			n.RotateX(math.Pi / 2)
			n.RotateY(math.Pi / 2)
		case 4:
			n.Position = mgl64.Vec3{0, -ws, 0}
		}
		walls[i] = n
	}
	return walls
}

func tiledTexture(img image.Image, repeat float64) *scene.Texture {
	if img == nil {
		return nil
	}
	tex := scene.NewTexture(img)
	tex.WrapS, tex.WrapT = scene.Repeat, scene.Repeat
	if repeat > 0 {
		tex.Repeat = mgl64.Vec2{repeat, repeat}
	}
	tex.MagFilter, tex.MinFilter = scene.Nearest, scene.Nearest
	return tex
}

func (g *Game) Farm() *farm.Farm {
	return g.farm
}

func (g *Game) Update() error {
	dt := 1 / float64(ebiten.TPS())

	cx, cy := ebiten.CursorPosition()
	g.mouse = g.pick(cx, cy)

	for _, ka := range keyActions {
		if inpututil.IsKeyJustPressed(ka.key) {
			g.apply(ka.action)
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.dragging = true
		g.lastX, g.lastY = cx, cy
	}
	if g.dragging {
		g.camera.Orbit(-float64(cx-g.lastX)*orbitSpeed, float64(cy-g.lastY)*orbitSpeed)
		g.lastX, g.lastY = cx, cy
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonRight) {
		g.dragging = false
	}
	if _, wy := ebiten.Wheel(); wy != 0 {
		g.camera.Zoom(math.Pow(zoomStep, wy))
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.farm.Click(g.mouse)
	}

	g.farm.Update(dt, g.mouse)
	return nil
}

// pick maps a cursor position to the ground point under it.
func (g *Game) pick(cx, cy int) farm.Mouse {
	w, h := g.camera.Viewport()
	if w == 0 || !image.Pt(cx, cy).In(image.Rect(0, 0, int(w), int(h))) {
		return farm.Mouse{}
	}
	x, z, ok := g.camera.PickGround(float64(cx), float64(cy), g.halfExtent)
	return farm.Mouse{X: x, Z: z, Valid: ok}
}

// cursorLabel names what a left click would place and where the ground
// point under the cursor sits on screen.
func (g *Game) cursorLabel() (label string, sx, sy float64, ok bool) {
	s := g.farm.Settings()
	if !g.mouse.Valid || !s.ClickToPlace {
		return "", 0, 0, false
	}
	sx, sy, ok = g.camera.Project(mgl64.Vec3{g.mouse.X, 0, g.mouse.Z})
	if !ok {
		return "", 0, 0, false
	}
	return "+ " + s.ObjectType.String(), sx, sy, true
}

func (g *Game) apply(a action) {
	s := g.farm.Settings()
	switch a {
	case actionCycleMouse:
		s.CycleMouseMode()
	case actionCycleColor:
		s.CycleColorMode()
		g.farm.Recolor()
	case actionHueDown, actionHueUp:
		delta := float64(hueStep)
		if a == actionHueDown {
			delta = -delta
		}
		s.AddHue(delta)
		if s.ColorMode == farm.ColorCustom {
			g.farm.Recolor()
		}
	case actionTogglePlace:
		s.ClickToPlace = !s.ClickToPlace
	case actionCycleObject:
		s.CycleObjectType()
	case actionPause:
		s.Paused = !s.Paused
	case actionRepaint:
		g.farm.Recolor()
	case actionTogglePanel:
		g.panelHidden = !g.panelHidden
	}
	g.logger.Debug("panel changed", "mouse", s.MouseMode, "color", s.ColorMode, "hue", s.Hue,
		"place", s.ClickToPlace, "object", s.ObjectType, "paused", s.Paused)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(skyColor)
	g.world.PaintObjects(screen, g.farm.Graph())

	if p := g.farm.Progress(); !p.Finished() {
		drawLoadScreen(screen, g.face, p)
		return
	}
	if label, sx, sy, ok := g.cursorLabel(); ok {
		drawCursorLabel(screen, g.face, label, sx, sy)
	}
	if !g.panelHidden {
		drawPanel(screen, g.face, panelLines(*g.farm.Settings(), g.world.Stats(), len(g.farm.Animals()), ebiten.ActualFPS()))
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.camera.SetViewport(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
