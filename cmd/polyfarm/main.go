package main

import (
	"flag"
	"io/fs"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/smasonuk/polyfarm"
	"github.com/smasonuk/polyfarm/assets"
	"github.com/smasonuk/polyfarm/config"
	"github.com/smasonuk/polyfarm/farm"
	"github.com/smasonuk/polyfarm/scene"
)

func main() {
	if err := run(); err != nil {
		slog.Error("polyfarm stopped", "err", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "TOML configuration file")
	printConfig := flag.Bool("print-config", false, "print the effective configuration and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *printConfig {
		return cfg.Encode(os.Stdout)
	}

	level, err := cfg.Level()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var models fs.FS = assets.Models()
	if cfg.Assets.Dir != "" {
		models = os.DirFS(cfg.Assets.Dir)
	}
	loader := assets.NewLoader(models,
		assets.WithLatency(time.Duration(cfg.Assets.LatencyMS)*time.Millisecond),
		assets.WithLogger(logger),
	)

	opts, err := cfg.FarmOptions()
	if err != nil {
		return err
	}
	opts.Rand = rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
	opts.Logger = logger

	f := farm.New(scene.NewGraph(), loader, opts)
	defer f.Close()
	f.Populate()

	camera := polyfarm.NewCamera(
		mgl64.Vec3{cfg.Camera.X, cfg.Camera.Y, cfg.Camera.Z},
		mgl64.Vec3{},
		cfg.FOVRadians(),
	)
	game := polyfarm.NewGame(f, camera, polyfarm.GameOptions{
		WorldSize:    cfg.World.Size,
		Ground:       assets.GroundTexture(cfg.World.GroundTile, seed),
		Dirt:         assets.DirtTexture(cfg.World.GroundTile, seed),
		GroundRepeat: cfg.World.GroundRepeat,
		PanelHidden:  cfg.Panel.Hidden,
		Logger:       logger,
	})

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	logger.Info("farm started", "animals", opts.AnimalCount, "grass", opts.GrassCount, "seed", seed)
	return ebiten.RunGame(game)
}
