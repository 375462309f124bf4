package main

import (
	"errors"
	"flag"
	"log"
	"math/rand"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/DoyleJ11/attack15/internal/config"
	"github.com/DoyleJ11/attack15/internal/engine"
	"github.com/DoyleJ11/attack15/internal/logging"
	"github.com/DoyleJ11/attack15/internal/render"
	"github.com/DoyleJ11/attack15/internal/ui"
)

func main() {
	configPath := flag.String("config", os.Getenv("ATTACK15_CONFIG"), "path to attack15.yaml")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("failed to load .env: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	clock := clockwork.NewRealClock()
	flow, err := engine.NewFlow(cfg.Game, rand.New(rand.NewSource(clock.Now().UnixNano())))
	if err != nil {
		logger.Fatal("invalid rules", zap.Error(err))
	}

	layout := flow.Game().Layout()
	app := render.NewApp(render.NewContext(layout), ui.NewController(flow, clock, logger))

	ebiten.SetWindowSize(layout.ScreenWidth, layout.ScreenHeight)
	ebiten.SetWindowTitle("Attack15")
	ebiten.SetTPS(cfg.Session.TickRate)

	if err := ebiten.RunGame(app); err != nil {
		logger.Fatal("game stopped", zap.Error(err))
	}
}
