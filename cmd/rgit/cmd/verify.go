package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify-index",
	Short: "Check the index checksum",
	Args:  cobra.NoArgs,
	RunE:  runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	repo, err := openRepo()
	if err != nil {
		return err
	}

	if err := repo.Verify(); err != nil {
		return err
	}

	entries, err := repo.Entries()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "index ok: %d entries\n", len(entries))
	return nil
}
