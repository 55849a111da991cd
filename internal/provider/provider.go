// Package provider implements school discovery against external search APIs.
// Both providers return raw candidates; identity resolution and storage stay
// with the caller.
package provider

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"scout-engine/internal/config"
	"scout-engine/internal/domain"
)

type SearchProvider interface {
	Name() string
	Discover(ctx context.Context, city string, max int) ([]domain.Candidate, error)
}

// directory sites that dominate school searches but are never the school
// itself.
var defaultBlockedDomains = []string{
	"niche.com",
	"yelp.com",
	"greatschools.org",
	"privateschoolreview.com",
	"expertise.com",
	"mapquest.com",
	"facebook.com",
	"instagram.com",
}

func New(cfg config.Config, log *zap.SugaredLogger) (SearchProvider, error) {
	blocked := cfg.Discover.BlockedDomains
	if len(blocked) == 0 {
		blocked = defaultBlockedDomains
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Discover.Provider)) {
	case "serpapi":
		if cfg.Secrets.SerpAPIKey == "" {
			return nil, fmt.Errorf("SERPAPI_API_KEY is required for the serpapi provider")
		}
		return NewSerpAPI(cfg.Secrets.SerpAPIKey, blocked, log), nil
	case "brave":
		if cfg.Secrets.BraveKey == "" {
			return nil, fmt.Errorf("BRAVE_SEARCH_API_KEY is required for the brave provider")
		}
		return NewBrave(cfg.Secrets.BraveKey, blocked, log), nil
	}
	return nil, fmt.Errorf("unsupported provider: %s", cfg.Discover.Provider)
}

func isBlockedDomain(host string, blocked []string) bool {
	for _, b := range blocked {
		if host == b || strings.HasSuffix(host, "."+b) {
			return true
		}
	}
	return false
}
