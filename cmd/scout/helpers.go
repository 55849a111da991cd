package main

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"scout-engine/internal/config"
	"scout-engine/internal/identity"
	"scout-engine/internal/legacy"
	"scout-engine/internal/logging"
	"scout-engine/internal/secrets"
	"scout-engine/internal/store"
)

// app wires the long-lived pieces every command needs. Config is built once
// here; nothing below main reads the environment.
type app struct {
	cfg config.Config
	log *zap.SugaredLogger
	db  *store.DB
	res *identity.Resolver
}

func boot() (*app, error) {
	_ = godotenv.Load() // optional .env, same as the old tooling

	lg, err := logging.Init(logging.ConfigFromEnv())
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	cfg, err := config.Load(rootFlags.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg.ApplyEnv()
	secrets.Fill(&cfg.Secrets.SerpAPIKey, &cfg.Secrets.BraveKey, &cfg.Secrets.GeminiKey)
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	db, err := store.Open(cfg.DBPath())
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	return &app{
		cfg: cfg,
		log: lg.Sugar(),
		db:  db,
		res: identity.NewResolver(cfg.Identity.NameThreshold),
	}, nil
}

func (a *app) close() {
	_ = a.log.Sync()
	_ = a.db.Close()
}

// exportLegacy re-derives the flat leads.csv from the canonical store.
func (a *app) exportLegacy(ctx context.Context) (string, error) {
	leads, err := a.db.ListAll(ctx)
	if err != nil {
		return "", err
	}
	path := a.cfg.Legacy.CSVPath
	if err := legacy.ExportFile(path, leads); err != nil {
		return "", fmt.Errorf("export legacy view: %w", err)
	}
	return path, nil
}

// seedFromCSV loads the legacy file into an empty store, so a fresh checkout
// with an existing leads.csv keeps working.
func (a *app) seedFromCSV(ctx context.Context, path string) error {
	n, err := a.db.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	sum, err := legacy.ImportFile(ctx, a.db, a.res, path)
	if err != nil {
		return fmt.Errorf("seed from %s: %w", path, err)
	}
	if sum.Applied > 0 {
		a.log.Infow("seeded store from legacy file", "path", path, "rows", sum.Applied)
	}
	for _, re := range sum.Errors {
		a.log.Warnw("seed row skipped", "err", re.Error())
	}
	return nil
}
