package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/wfunc/whist/bots"
	"github.com/wfunc/whist/config"
	"github.com/wfunc/whist/event"
	"github.com/wfunc/whist/logger"
	"github.com/wfunc/whist/monitor"
	"github.com/wfunc/whist/persistence"
	"github.com/wfunc/whist/server"
	"github.com/wfunc/whist/services"
	"github.com/wfunc/whist/whist"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Log.Level); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if len(os.Args) > 1 && os.Args[1] == "simulate" {
		if err := simulate(cfg); err != nil {
			logger.Log.Fatalf("Simulation failed: %v", err)
		}
		return
	}

	// Initialize Database
	db, err := persistence.Open(cfg.Database)
	if err != nil {
		logger.Log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Log.Infof("Database %s ready.", cfg.Database.Driver)

	mon := monitor.NewMonitor("whist")
	mon.StartServer(cfg.Server.MetricsAddress)

	// Initialize Game Server
	gameServer, err := server.NewGameServer(cfg, db, mon)
	if err != nil {
		logger.Log.Fatalf("Failed to create server: %v", err)
	}

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		logger.Log.Info("Shutting down")
		gameServer.Shutdown()
	}()

	// Start Server
	logger.Log.Infof("Starting game server on %s", cfg.Server.HTTPAddress)
	if err := gameServer.Start(); err != nil {
		logger.Log.Fatalf("Failed to start server: %v", err)
	}
}

// simulate plays one whole game between bots, logging every event and
// recording it like a served table.
func simulate(cfg *config.Config) error {
	db, err := persistence.Open(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	recorder := services.NewGameRecorder(db, "simulation")
	log := event.NewLog(event.NewZapListener(logger.Named("simulation")), recorder)

	ids := make([]string, cfg.Game.Players)
	for i := range ids {
		ids[i] = fmt.Sprintf("bot-%d", i+1)
	}
	players := whist.NewPlayers(ids...)

	game, err := whist.NewGame(players, whist.Options{Sink: log, Seed: cfg.Game.Seed})
	if err != nil {
		return err
	}
	seats := make(map[whist.Player]bots.Bot, len(players))
	for i, p := range players {
		seats[p] = bots.NewRandomBot(p.ID, cfg.Game.Seed+int64(i))
	}
	if err := bots.Simulate(game, seats); err != nil {
		return err
	}

	for _, p := range players {
		logger.Log.Infow("final tricks", "player", p.ID, "tricks", game.TotalTricks()[p])
	}
	logger.Log.Infof("Game %s recorded", recorder.GameID())
	return nil
}
