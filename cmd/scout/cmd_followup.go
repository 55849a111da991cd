package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var followupFlags struct {
	days   int
	dryRun bool
}

var followupCmd = &cobra.Command{
	Use:   "followup",
	Short: "Generate follow-up drafts for leads already contacted",
	RunE:  runFollowup,
}

func init() {
	f := followupCmd.Flags()
	f.IntVar(&followupFlags.days, "days", 5, "Days since the initial outreach")
	f.BoolVar(&followupFlags.dryRun, "dry-run", false, "Generate nothing durable; log what would be written")
}

func runFollowup(cmd *cobra.Command, _ []string) error {
	a, err := boot()
	if err != nil {
		return err
	}
	defer a.close()
	ctx := cmd.Context()

	d, err := newDrafter(ctx, a, followupFlags.dryRun)
	if err != nil {
		return err
	}

	count, err := d.Followups(ctx, followupFlags.days)
	if err != nil {
		return err
	}

	if !followupFlags.dryRun {
		if _, err := a.exportLegacy(ctx); err != nil {
			return err
		}
	}
	fmt.Printf("Created %d follow-up drafts in %s\n", count, a.cfg.Artifacts.Dir)
	fmt.Println("Next steps: review follow-up markdown drafts and send manually.")
	return nil
}
