package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var lsFilesCmd = &cobra.Command{
	Use:   "ls-files",
	Short: "List staged files",
	Long:  "List the entries of the staging index in the order they were staged.",
	Args:  cobra.NoArgs,
	RunE:  runLsFiles,
}

func init() {
	lsFilesCmd.Flags().BoolP("stage", "s", false, "show mode, object hash and size")
	rootCmd.AddCommand(lsFilesCmd)
}

func runLsFiles(cmd *cobra.Command, args []string) error {
	repo, err := openRepo()
	if err != nil {
		return err
	}

	entries, err := repo.Entries()
	if err != nil {
		return err
	}

	stage, _ := cmd.Flags().GetBool("stage")
	out := cmd.OutOrStdout()
	for _, e := range entries {
		if stage {
			fmt.Fprintf(out, "%06o %s %d\t%s\n", e.Mode, e.Hash, e.Size, e.Name)
		} else {
			fmt.Fprintln(out, e.Name)
		}
	}
	return nil
}
