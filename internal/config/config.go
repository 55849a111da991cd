package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is built once in main and passed down. No component reads the
// environment directly.
type Config struct {
	App struct {
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	Store struct {
		DBPath string `yaml:"db_path"`
	} `yaml:"store"`

	Legacy struct {
		CSVPath string `yaml:"csv_path"`
	} `yaml:"legacy"`

	Artifacts struct {
		Dir string `yaml:"dir"`
	} `yaml:"artifacts"`

	Identity struct {
		NameThreshold float64 `yaml:"name_threshold"`
	} `yaml:"identity"`

	Discover struct {
		Provider       string   `yaml:"provider"`
		BlockedDomains []string `yaml:"blocked_domains"`
	} `yaml:"discover"`

	Enrich struct {
		Workers       int     `yaml:"workers"`
		HostReqPerSec float64 `yaml:"host_req_per_sec"`
		HostBurst     int     `yaml:"host_burst"`
		UserAgent     string  `yaml:"user_agent"`
	} `yaml:"enrich"`

	LLM struct {
		Model string `yaml:"model"`
	} `yaml:"llm"`

	// Secrets never live in the yaml file: env first, then OS keychain.
	Secrets struct {
		SerpAPIKey string `yaml:"-"`
		BraveKey   string `yaml:"-"`
		GeminiKey  string `yaml:"-"`
	} `yaml:"-"`
}

func Default() Config {
	var cfg Config
	cfg.App.DataDir = "."
	cfg.Store.DBPath = "" // derived from data_dir unless set
	cfg.Legacy.CSVPath = filepath.Join("data", "leads.csv")
	cfg.Artifacts.Dir = "outreach_drafts"
	cfg.Identity.NameThreshold = 0.90
	cfg.Discover.Provider = "serpapi"
	cfg.Enrich.Workers = 4
	cfg.Enrich.HostReqPerSec = 1
	cfg.Enrich.HostBurst = 2
	cfg.Enrich.UserAgent = "scout-engine/1.0 (+local)"
	cfg.LLM.Model = "gemini-2.0-flash"
	return cfg
}

// Load reads the yaml config at path over the defaults. A missing file is not
// an error; defaults plus env apply.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplyEnv overlays environment variables. The DB path override is accepted as
// an opaque string; Validate checks writability only.
func (cfg *Config) ApplyEnv() {
	if v := os.Getenv("SCOUT_DATA_DIR"); v != "" {
		cfg.App.DataDir = v
	}
	if v := os.Getenv("SCOUT_DB_PATH"); v != "" {
		cfg.Store.DBPath = v
	}
	if v := os.Getenv("SCOUT_LEADS_CSV"); v != "" {
		cfg.Legacy.CSVPath = v
	}
	if v := os.Getenv("SERPAPI_API_KEY"); v != "" {
		cfg.Secrets.SerpAPIKey = v
	}
	if v := os.Getenv("BRAVE_SEARCH_API_KEY"); v != "" {
		cfg.Secrets.BraveKey = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.Secrets.GeminiKey = v
	}
	if v := os.Getenv("SCOUT_LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
}

// DBPath resolves the store location: explicit override wins, otherwise
// <data_dir>/scout.db.
func (cfg Config) DBPath() string {
	if cfg.Store.DBPath != "" {
		return cfg.Store.DBPath
	}
	return filepath.Join(cfg.App.DataDir, "scout.db")
}
