package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/hexcrawl/c3net/pkg/api"
	"github.com/hexcrawl/c3net/pkg/force"
	"github.com/hexcrawl/c3net/pkg/logging"
	"github.com/hexcrawl/c3net/pkg/metrics"
	"github.com/hexcrawl/c3net/pkg/pubsub"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	addr := flag.String("addr", "", "Listen address (overrides config)")
	forceID := flag.String("force", "default", "Force ID to load or create")
	flag.Parse()

	if err := run(*configPath, *addr, *forceID); err != nil {
		fmt.Fprintf(os.Stderr, "c3net-server: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, addr, forceID string) error {
	cfg := api.DefaultConfig()
	if configPath != "" {
		loaded, err := api.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if addr != "" {
		cfg.ListenAddr = addr
	}

	log := logging.NewJSONLogger(os.Stdout, logging.ParseLevel(cfg.LogLevel))

	bus := pubsub.New()
	defer bus.Close()

	store, err := force.NewFileStore(cfg.DataDir, cfg.CompressSaves)
	if err != nil {
		return err
	}

	var pg *force.PGStore
	if cfg.DatabaseURL != "" {
		pg, err = force.NewPGStore(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer pg.Close()
		log.Info("mirroring saves to PostgreSQL")
	}

	f, err := loadOrCreate(store, pg, forceID, log, bus)
	if err != nil {
		return err
	}
	log.Info("force ready",
		logging.String("force_id", f.ID()),
		logging.Int("units", f.Len()),
		logging.Int("networks", f.Topology().Len()))

	reg := metrics.NewRegistry()
	srv, err := api.NewServer(f, store, reg, log)
	if err != nil {
		return err
	}

	// Autosave on every topology change keeps the save file current even if
	// the editor never hits /force/save.
	sub := bus.Subscribe(pubsub.TopicTopologyChanged)
	if sub != nil {
		go func() {
			for range sub.Channel() {
				if err := store.Save(f); err != nil {
					log.Error("autosave failed", logging.Err(err))
				}
				if pg != nil {
					if err := pg.SaveSnapshot(context.Background(), f.Snapshot()); err != nil {
						log.Error("database mirror failed", logging.Err(err))
					}
				}
			}
		}()
		defer sub.Unsubscribe()
	}

	return api.NewGracefulServer(cfg.ListenAddr, srv.Handler(), log).Start()
}

func loadOrCreate(store *force.FileStore, pg *force.PGStore, forceID string, log logging.Logger, bus *pubsub.PubSub) (*force.Force, error) {
	save, err := store.Load(forceID)
	if errors.Is(err, force.ErrForceNotFound) && pg != nil {
		save, err = pg.Load(context.Background(), forceID)
	}
	if errors.Is(err, force.ErrForceNotFound) {
		log.Info("creating new force", logging.String("force_id", forceID))
		return force.New(forceID, forceID, log, bus), nil
	}
	if err != nil {
		return nil, err
	}
	return force.Load(save, log, bus)
}
