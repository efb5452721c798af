package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Yuiki/rgit"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an empty repository",
	Long:  "Create the repository directory and its objects store. Safe to run on an existing repository.",
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	repo, err := rgit.Init(getRoot(), repoOptions()...)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized repository in %s\n", repo.Root())
	return nil
}
