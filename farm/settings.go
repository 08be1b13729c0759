package farm

import (
	"fmt"
	"math"
)

type MouseMode int

const (
	MouseFollow MouseMode = iota
	MousePush
	MouseOrbit
	MouseNone
)

var mouseModeNames = []string{"follow", "push", "orbit", "none"}

func (m MouseMode) String() string {
	if int(m) < len(mouseModeNames) {
		return mouseModeNames[m]
	}
	return "unknown"
}

func ParseMouseMode(s string) (MouseMode, error) {
	for i, n := range mouseModeNames {
		if n == s {
			return MouseMode(i), nil
		}
	}
	return MouseFollow, fmt.Errorf("unknown mouse mode %q", s)
}

type ColorMode int

const (
	ColorRandom ColorMode = iota
	ColorCustom
	ColorOriginal
)

var colorModeNames = []string{"random", "custom", "original"}

func (c ColorMode) String() string {
	if int(c) < len(colorModeNames) {
		return colorModeNames[c]
	}
	return "unknown"
}

func ParseColorMode(s string) (ColorMode, error) {
	for i, n := range colorModeNames {
		if n == s {
			return ColorMode(i), nil
		}
	}
	return ColorRandom, fmt.Errorf("unknown color mode %q", s)
}

type ObjectType int

const (
	ObjectCow ObjectType = iota
	ObjectPig
	ObjectGrass
)

var objectTypeNames = []string{"cow", "pig", "grass"}

func (o ObjectType) String() string {
	if int(o) < len(objectTypeNames) {
		return objectTypeNames[o]
	}
	return "unknown"
}

func ParseObjectType(s string) (ObjectType, error) {
	for i, n := range objectTypeNames {
		if n == s {
			return ObjectType(i), nil
		}
	}
	return ObjectCow, fmt.Errorf("unknown object type %q", s)
}

// Settings are the user-adjustable values of the tweak panel. They are read
// once per frame.
type Settings struct {
	MouseMode    MouseMode
	ColorMode    ColorMode
	Hue          float64
	ClickToPlace bool
	ObjectType   ObjectType
	Paused       bool
}

func DefaultSettings() Settings {
	return Settings{
		MouseMode:    MouseFollow,
		ColorMode:    ColorRandom,
		ClickToPlace: true,
		ObjectType:   ObjectCow,
	}
}

func (s *Settings) CycleMouseMode() {
	s.MouseMode = (s.MouseMode + 1) % MouseMode(len(mouseModeNames))
}

func (s *Settings) CycleColorMode() {
	s.ColorMode = (s.ColorMode + 1) % ColorMode(len(colorModeNames))
}

func (s *Settings) CycleObjectType() {
	s.ObjectType = (s.ObjectType + 1) % ObjectType(len(objectTypeNames))
}

// AddHue shifts the custom hue, wrapping into [0, 360). Non-finite deltas
// are ignored.
func (s *Settings) AddHue(delta float64) {
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		return
	}
	h := math.Mod(s.Hue+delta, 360)
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		h = 0
	}
	s.Hue = h
}
