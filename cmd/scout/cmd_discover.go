package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"scout-engine/internal/domain"
	"scout-engine/internal/merge"
	"scout-engine/internal/provider"
)

var discoverFlags struct {
	city     string
	max      int
	provider string
}

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Discover private K-12 schools and upsert deduplicated leads",
	RunE:  runDiscover,
}

func init() {
	f := discoverCmd.Flags()
	f.StringVar(&discoverFlags.city, "city", "Downey, CA", "City to search")
	f.IntVar(&discoverFlags.max, "max", 25, "Maximum results to accept")
	f.StringVar(&discoverFlags.provider, "provider", "", "Search provider (serpapi, brave); default from config")
}

func runDiscover(cmd *cobra.Command, _ []string) error {
	a, err := boot()
	if err != nil {
		return err
	}
	defer a.close()
	ctx := cmd.Context()

	if discoverFlags.provider != "" {
		a.cfg.Discover.Provider = discoverFlags.provider
	}
	svc, err := provider.New(a.cfg, a.log)
	if err != nil {
		return err
	}

	before, err := a.db.Count(ctx)
	if err != nil {
		return err
	}

	found, err := svc.Discover(ctx, discoverFlags.city, discoverFlags.max)
	if err != nil && !errors.Is(err, domain.ErrProviderUnavailable) {
		return err
	}
	if err != nil {
		a.log.Warnw("provider degraded; keeping partial results", "err", err)
	}

	for _, c := range found {
		existing, err := a.db.ListAll(ctx)
		if err != nil {
			return err
		}
		dec, err := a.res.Resolve(c, existing)
		if err != nil {
			// ambiguous candidates need an operator, not a guess
			a.log.Errorw("candidate skipped", "school", c.Name, "err", err)
			continue
		}
		id, _, err := a.db.Upsert(ctx, dec.MatchID, merge.FromCandidate(c))
		if err != nil {
			return err
		}
		if dec.IsMatch() {
			a.log.Infow("merged into existing lead", "school", c.Name, "lead", id, "rule", dec.Rule)
		} else {
			a.log.Infow("new lead", "school", c.Name, "lead", id)
		}
	}

	csvPath, err := a.exportLegacy(ctx)
	if err != nil {
		return err
	}
	after, err := a.db.Count(ctx)
	if err != nil {
		return err
	}
	added := after - before
	if added < 0 {
		added = 0
	}
	fmt.Printf("Discovered %d results; saved %d new leads to %s\n", len(found), added, csvPath)
	return nil
}
