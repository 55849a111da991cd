package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scout-engine/internal/legacy"
)

var importFlags struct {
	input string
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Re-ingest a (possibly hand-edited) legacy leads.csv",
	RunE:  runImport,
}

func init() {
	importCmd.Flags().StringVar(&importFlags.input, "input", "", "CSV path (default from config)")
}

func runImport(cmd *cobra.Command, _ []string) error {
	a, err := boot()
	if err != nil {
		return err
	}
	defer a.close()
	ctx := cmd.Context()

	input := importFlags.input
	if input == "" {
		input = a.cfg.Legacy.CSVPath
	}

	sum, err := legacy.ImportFile(ctx, a.db, a.res, input)
	if err != nil {
		return err
	}
	for _, re := range sum.Errors {
		a.log.Warnw("import row skipped", "err", re.Error())
	}

	// after re-ingest, canonical wins: re-derive the file
	if _, err := a.exportLegacy(ctx); err != nil {
		return err
	}
	fmt.Printf("Imported %s: %d rows applied, %d skipped\n", input, sum.Applied, sum.Skipped)
	return nil
}
