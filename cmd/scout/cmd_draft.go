package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"scout-engine/internal/draft"
	"scout-engine/internal/ledger"
	"scout-engine/internal/llm"
)

var draftFlags struct {
	limit        int
	deliveryMode string
	dryRun       bool
}

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Generate first-draft outreach markdown, best contacts first",
	RunE:  runDraft,
}

func init() {
	f := draftCmd.Flags()
	f.IntVar(&draftFlags.limit, "limit", 10, "Maximum leads to draft")
	f.StringVar(&draftFlags.deliveryMode, "delivery-mode", "manual", "Delivery mode (only manual is supported)")
	f.BoolVar(&draftFlags.dryRun, "dry-run", false, "Generate nothing durable; log what would be written")
}

// newDrafter builds the shared drafting pipeline for draft/followup/brief.
func newDrafter(ctx context.Context, a *app, dryRun bool) (*draft.Drafter, error) {
	var gen llm.ContentGenerator
	if dryRun {
		gen = llm.DryRun{}
	} else {
		g, err := llm.NewGemini(ctx, a.cfg.Secrets.GeminiKey, a.cfg.LLM.Model)
		if err != nil {
			return nil, err
		}
		gen = g
	}
	return &draft.Drafter{
		DB:       a.db,
		Ledger:   ledger.New(a.db.Pool),
		Gen:      gen,
		Delivery: draft.ManualDelivery{},
		Dir:      a.cfg.Artifacts.Dir,
		DryRun:   dryRun,
		Log:      a.log,
	}, nil
}

func runDraft(cmd *cobra.Command, _ []string) error {
	if draftFlags.deliveryMode != "manual" {
		return fmt.Errorf("only manual delivery-mode is supported")
	}

	a, err := boot()
	if err != nil {
		return err
	}
	defer a.close()
	ctx := cmd.Context()

	d, err := newDrafter(ctx, a, draftFlags.dryRun)
	if err != nil {
		return err
	}

	count, err := d.FirstDrafts(ctx, draftFlags.limit)
	if err != nil {
		return err
	}

	if !draftFlags.dryRun {
		if _, err := a.exportLegacy(ctx); err != nil {
			return err
		}
	}
	fmt.Printf("Created %d outreach drafts in %s\n", count, a.cfg.Artifacts.Dir)
	fmt.Println("Next steps: review markdown drafts, personalize as needed, and send manually.")
	return nil
}
