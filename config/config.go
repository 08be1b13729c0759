// Package config holds the farm's settings. Values come from the defaults,
// then an optional TOML file, then POLYFARM_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/smasonuk/polyfarm/farm"
)

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	LogLevel string `toml:"log_level"`
	// Seed fixes the random layout. Zero picks a new layout every run.
	Seed int64 `toml:"seed"`

	World    WorldConfig    `toml:"world"`
	Movement MovementConfig `toml:"movement"`
	Panel    PanelConfig    `toml:"panel"`
	Camera   CameraConfig   `toml:"camera"`
	Window   WindowConfig   `toml:"window"`
	Assets   AssetsConfig   `toml:"assets"`
}

type WorldConfig struct {
	Size        float64 `toml:"size"`
	Animals     int     `toml:"animals"`
	Grass       int     `toml:"grass"`
	SpawnMargin float64 `toml:"spawn_margin"`
	PigRatio    float64 `toml:"pig_ratio"`
	// GroundTile is the edge of the ground texture in pixels; GroundRepeat is
	// how often it repeats across the world.
	GroundTile   int     `toml:"ground_tile"`
	GroundRepeat float64 `toml:"ground_repeat"`
}

type MovementConfig struct {
	Speed           float64 `toml:"speed"`
	RotationSpeed   float64 `toml:"rotation_speed"`
	MinDistance     float64 `toml:"min_distance"`
	MaxDistance     float64 `toml:"max_distance"`
	MinMoveInterval float64 `toml:"min_move_interval"`
	MaxMoveInterval float64 `toml:"max_move_interval"`
	FollowRange     float64 `toml:"follow_range"`
	FollowLimit     float64 `toml:"follow_limit"`
}

// PanelConfig is the initial state of the tweak panel.
type PanelConfig struct {
	MouseMode    string  `toml:"mouse_mode"`
	ColorMode    string  `toml:"color_mode"`
	Hue          float64 `toml:"hue"`
	ClickToPlace bool    `toml:"click_to_place"`
	ObjectType   string  `toml:"object_type"`
	Hidden       bool    `toml:"hidden"`
}

type CameraConfig struct {
	X float64 `toml:"x"`
	Y float64 `toml:"y"`
	Z float64 `toml:"z"`
	// FOV is the vertical field of view in degrees.
	FOV float64 `toml:"fov"`
}

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

type AssetsConfig struct {
	// Dir loads models from a directory instead of the built-in set.
	Dir       string `toml:"dir"`
	LatencyMS int    `toml:"latency_ms"`
}

func Default() Config {
	return Config{
		LogLevel: "info",
		World: WorldConfig{
			Size:         2000,
			Animals:      25,
			Grass:        1000,
			SpawnMargin:  200,
			PigRatio:     0,
			GroundTile:   128,
			GroundRepeat: 16,
		},
		Movement: MovementConfig{
			Speed:           70,
			RotationSpeed:   3,
			MinDistance:     25,
			MaxDistance:     65,
			MinMoveInterval: 3,
			MaxMoveInterval: 10,
			FollowRange:     300,
			FollowLimit:     100,
		},
		Panel: PanelConfig{
			MouseMode:    farm.MouseFollow.String(),
			ColorMode:    farm.ColorRandom.String(),
			ClickToPlace: true,
			ObjectType:   farm.ObjectCow.String(),
		},
		Camera: CameraConfig{X: 100, Y: 600, Z: 0, FOV: 75},
		Window: WindowConfig{Width: 1280, Height: 720, Title: "Polyfarm"},
	}
}

// Load returns the defaults overlaid with the TOML file at path (if path is
// not empty) and the environment, and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return cfg, fmt.Errorf("open config: %w", err)
		}
		defer f.Close()
		if err := cfg.Decode(f); err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Decode overlays TOML from r. Unknown keys are an error.
func (c *Config) Decode(r io.Reader) error {
	return toml.NewDecoder(r).DisallowUnknownFields().Decode(c)
}

// Encode writes the configuration as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// ApplyEnv overlays the POLYFARM_* variables found through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	var errs []error
	float := func(key string, dst *float64) {
		if s := getenv(key); s != "" {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = v
		}
	}
	integer := func(key string, dst *int) {
		if s := getenv(key); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = v
		}
	}

	float("POLYFARM_WORLD_SIZE", &c.World.Size)
	integer("POLYFARM_ANIMALS", &c.World.Animals)
	integer("POLYFARM_GRASS", &c.World.Grass)
	integer("POLYFARM_LATENCY_MS", &c.Assets.LatencyMS)
	if s := getenv("POLYFARM_LOG_LEVEL"); s != "" {
		c.LogLevel = s
	}
	if s := getenv("POLYFARM_SEED"); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("POLYFARM_SEED: %w", err))
		} else {
			c.Seed = v
		}
	}
	if s := getenv("POLYFARM_ASSETS"); s != "" {
		c.Assets.Dir = s
	}
	return errors.Join(errs...)
}

func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.World.Size > 0, "world size %v must be positive", c.World.Size)
	check(c.World.Animals >= 0, "animal count %d is negative", c.World.Animals)
	check(c.World.Grass >= 0, "grass count %d is negative", c.World.Grass)
	check(c.World.SpawnMargin >= 0 && c.World.SpawnMargin <= c.World.Size/2,
		"spawn margin %v must be within half the world size", c.World.SpawnMargin)
	check(c.World.PigRatio >= 0 && c.World.PigRatio <= 1, "pig ratio %v must be in [0, 1]", c.World.PigRatio)
	check(c.World.GroundTile > 0, "ground tile %d must be positive", c.World.GroundTile)
	check(c.World.GroundRepeat > 0, "ground repeat %v must be positive", c.World.GroundRepeat)

	m := c.Movement
	check(m.Speed > 0, "speed %v must be positive", m.Speed)
	check(m.RotationSpeed > 0, "rotation speed %v must be positive", m.RotationSpeed)
	check(m.MinDistance >= 0, "min distance %v is negative", m.MinDistance)
	check(m.MinMoveInterval >= 0, "min move interval %v is negative", m.MinMoveInterval)
	check(m.MinDistance <= m.MaxDistance, "min distance %v exceeds max distance %v", m.MinDistance, m.MaxDistance)
	check(m.MinMoveInterval <= m.MaxMoveInterval, "min move interval %v exceeds max %v", m.MinMoveInterval, m.MaxMoveInterval)
	check(m.FollowLimit < m.FollowRange, "follow limit %v must be below follow range %v", m.FollowLimit, m.FollowRange)

	check(!math.IsNaN(c.Panel.Hue) && !math.IsInf(c.Panel.Hue, 0), "panel hue %v must be finite", c.Panel.Hue)
	check(c.Camera.FOV > 0 && c.Camera.FOV < 180, "camera fov %v must be in (0, 180)", c.Camera.FOV)
	check(c.Window.Width > 0 && c.Window.Height > 0, "window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	check(c.Assets.LatencyMS >= 0, "latency %d is negative", c.Assets.LatencyMS)

	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Settings(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return level, fmt.Errorf("%w: log level %q", ErrInvalid, c.LogLevel)
	}
	return level, nil
}

// Settings returns the initial panel settings.
func (c Config) Settings() (farm.Settings, error) {
	s := farm.DefaultSettings()
	var errs []error
	var err error

	if s.MouseMode, err = farm.ParseMouseMode(c.Panel.MouseMode); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalid, err))
	}
	if s.ColorMode, err = farm.ParseColorMode(c.Panel.ColorMode); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalid, err))
	}
	if s.ObjectType, err = farm.ParseObjectType(c.Panel.ObjectType); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalid, err))
	}
	s.ClickToPlace = c.Panel.ClickToPlace
	s.AddHue(c.Panel.Hue)
	return s, errors.Join(errs...)
}

func (c Config) MovementParams() farm.MovementParams {
	return farm.MovementParams{
		Speed:            c.Movement.Speed,
		RotationSpeed:    c.Movement.RotationSpeed,
		MinDistance:      c.Movement.MinDistance,
		MaxDistance:      c.Movement.MaxDistance,
		MinMoveInterval:  c.Movement.MinMoveInterval,
		MaxMoveInterval:  c.Movement.MaxMoveInterval,
		MouseFollowRange: c.Movement.FollowRange,
		MouseFollowLimit: c.Movement.FollowLimit,
		WorldSize:        c.World.Size,
	}
}

// FarmOptions builds the farm options. Rand and Logger are left for the
// caller.
func (c Config) FarmOptions() (farm.Options, error) {
	settings, err := c.Settings()
	if err != nil {
		return farm.Options{}, err
	}
	return farm.Options{
		WorldSize:   c.World.Size,
		AnimalCount: c.World.Animals,
		GrassCount:  c.World.Grass,
		SpawnMargin: c.World.SpawnMargin,
		PigRatio:    c.World.PigRatio,
		Movement:    c.MovementParams(),
		Settings:    settings,
	}, nil
}

// FOVRadians is the camera's vertical field of view in radians.
func (c Config) FOVRadians() float64 {
	return c.Camera.FOV * math.Pi / 180
}
