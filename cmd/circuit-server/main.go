// circuit-server is the editor-facing JSON-RPC service. It speaks JSON-RPC
// 2.0 with Content-Length framing on stdin and stdout and logs to stderr.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"time"

	"hilbert-circuits/config"
	"hilbert-circuits/levels"
	"hilbert-circuits/lint"
	"hilbert-circuits/rpcserver"
	"hilbert-circuits/saves"
	"hilbert-circuits/solver"
	"hilbert-circuits/telemetry"
)

func openStore(cfg config.Config, s *server) (saves.Store, error) {
	if cfg.SaveDir == "" {
		s.logger.Info("keeping saves in memory")
		return saves.NewMemoryStore(), nil
	}
	return saves.OpenBadger(saves.BadgerConfig{Path: cfg.SaveDir, Logger: s.logger})
}

func openPack(cfg config.Config) (*levels.Pack, error) {
	if cfg.Levels == "" {
		return levels.Default(), nil
	}
	return levels.Load(cfg.Levels)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("%s", err)
	}
	level, _ := cfg.Level()

	s := &server{
		logger:  telemetry.NewLogger(level, os.Stderr),
		metrics: telemetry.NewMetrics(),
		now:     time.Now,
	}
	s.solver = solver.New(solver.WithMaxPasses(cfg.MaxPasses), solver.WithLogger(s.logger))
	s.lint = lint.New(s.solver)

	s.store, err = openStore(cfg, s)
	if err != nil {
		log.Fatalf("could not open saves: %s", err)
	}
	defer s.store.Close()

	s.pack, err = openPack(cfg)
	if err != nil {
		log.Fatalf("could not load levels: %s", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if cfg.MetricsAddr != "" {
		go func() {
			if err := s.metrics.Serve(ctx, cfg.MetricsAddr, s.logger); err != nil {
				s.logger.Error("metrics listener failed", "err", err)
			}
		}()
	}

	s.logger.Info("serving", "levels", len(s.pack.Levels), "maxPasses", cfg.MaxPasses)
	err = rpcserver.ServeStdio(ctx, s.methods(),
		rpcserver.WithLogger(s.logger),
		rpcserver.WithObserver(s.metrics.ObserveRequest),
	)
	if err != nil && ctx.Err() == nil {
		s.logger.Error("server stopped", "err", err)
	}
}
