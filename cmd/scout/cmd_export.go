package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Re-derive the legacy leads.csv from the canonical store",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := boot()
		if err != nil {
			return err
		}
		defer a.close()

		path, err := a.exportLegacy(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Exported legacy view to %s\n", path)
		return nil
	},
}
