package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Validate checks the parts of the config the engine cannot limp along
// without. The DB path is an opaque string; the only check is that its
// directory exists or can be created and is writable.
func Validate(cfg Config) error {
	var errs []string

	if cfg.Identity.NameThreshold <= 0 || cfg.Identity.NameThreshold > 1 {
		errs = append(errs, "identity.name_threshold must be in (0, 1]")
	}
	if cfg.Enrich.Workers <= 0 {
		errs = append(errs, "enrich.workers must be > 0")
	}
	if cfg.Enrich.HostReqPerSec <= 0 {
		errs = append(errs, "enrich.host_req_per_sec must be > 0")
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Discover.Provider)) {
	case "serpapi", "brave":
	default:
		errs = append(errs, fmt.Sprintf("discover.provider %q is not supported (serpapi, brave)", cfg.Discover.Provider))
	}

	if err := writableDir(filepath.Dir(cfg.DBPath())); err != nil {
		errs = append(errs, fmt.Sprintf("store.db_path: %v", err))
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n- " + strings.Join(errs, "\n- "))
	}
	return nil
}

func writableDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	probe, err := os.CreateTemp(dir, ".scout-probe-*")
	if err != nil {
		return fmt.Errorf("directory not writable: %w", err)
	}
	name := probe.Name()
	_ = probe.Close()
	return os.Remove(name)
}
