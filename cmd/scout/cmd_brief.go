package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var briefFlags struct {
	leadID string
	dryRun bool
}

var briefCmd = &cobra.Command{
	Use:   "brief",
	Short: "Generate a call brief for one lead",
	RunE:  runBrief,
}

func init() {
	f := briefCmd.Flags()
	f.StringVar(&briefFlags.leadID, "lead-id", "", "Lead to brief (required)")
	f.BoolVar(&briefFlags.dryRun, "dry-run", false, "Generate nothing durable; log what would be written")
	_ = briefCmd.MarkFlagRequired("lead-id")
}

func runBrief(cmd *cobra.Command, _ []string) error {
	a, err := boot()
	if err != nil {
		return err
	}
	defer a.close()
	ctx := cmd.Context()

	d, err := newDrafter(ctx, a, briefFlags.dryRun)
	if err != nil {
		return err
	}

	path, err := d.Brief(ctx, briefFlags.leadID)
	if err != nil {
		return err
	}

	if !briefFlags.dryRun {
		if _, err := a.exportLegacy(ctx); err != nil {
			return err
		}
	}
	fmt.Printf("Created call brief: %s\n", path)
	return nil
}
