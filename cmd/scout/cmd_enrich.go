package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scout-engine/internal/enrich"
	"scout-engine/internal/fetch"
	"scout-engine/internal/llm"
)

var enrichFlags struct {
	input  string
	dryRun bool
}

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Enrich leads from their websites and generate personalization hooks",
	RunE:  runEnrich,
}

func init() {
	f := enrichCmd.Flags()
	f.StringVar(&enrichFlags.input, "input", "", "Legacy CSV to seed an empty store (default from config)")
	f.BoolVar(&enrichFlags.dryRun, "dry-run", false, "Exercise merge logic with placeholder data; no network, no writes")
}

func runEnrich(cmd *cobra.Command, _ []string) error {
	a, err := boot()
	if err != nil {
		return err
	}
	defer a.close()
	ctx := cmd.Context()

	input := enrichFlags.input
	if input == "" {
		input = a.cfg.Legacy.CSVPath
	}
	if !enrichFlags.dryRun {
		if err := a.seedFromCSV(ctx, input); err != nil {
			return err
		}
	}

	var gen llm.ContentGenerator
	if enrichFlags.dryRun {
		gen = llm.DryRun{}
	} else {
		gen, err = llm.NewGemini(ctx, a.cfg.Secrets.GeminiKey, a.cfg.LLM.Model)
		if err != nil {
			return err
		}
	}

	runner := &enrich.Runner{
		DB: a.db,
		Fetcher: fetch.NewHTTPFetcher(
			a.cfg.Enrich.UserAgent,
			a.cfg.Enrich.HostReqPerSec,
			a.cfg.Enrich.HostBurst,
			a.log,
		),
		Gen:     gen,
		Workers: a.cfg.Enrich.Workers,
		DryRun:  enrichFlags.dryRun,
		Log:     a.log,
	}

	res, err := runner.Run(ctx)
	if err != nil {
		return err
	}
	for _, e := range res.Errors {
		a.log.Warnw("enrich error", "err", e)
	}

	if enrichFlags.dryRun {
		fmt.Printf("Dry run: %d leads processed, nothing written\n", res.Processed)
		return nil
	}

	csvPath, err := a.exportLegacy(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Enriched %d leads (%d updated, %d failed) -> %s\n",
		res.Processed, res.Updated, res.Failed, csvPath)
	return nil
}
