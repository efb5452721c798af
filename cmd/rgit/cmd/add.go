package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var addCmd = &cobra.Command{
	Use:   "add <path>...",
	Short: "Store files and stage them",
	Long: "Store the content of each file in the object store and record it in the index. " +
		"Missing paths are ignored. Content already staged under any name is not staged again.",
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().IntP("jobs", "j", 0, "files to read and store in parallel (default: 4)")
	viper.BindPFlag("jobs", addCmd.Flags().Lookup("jobs"))
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	repo, err := openRepo()
	if err != nil {
		return err
	}

	staged, err := repo.Add(cmd.Context(), args...)
	if err != nil {
		return err
	}

	for _, s := range staged {
		if s.New {
			fmt.Fprintln(cmd.OutOrStdout(), s.Path)
		}
	}
	return nil
}
