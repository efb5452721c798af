package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Yuiki/rgit"
)

var catFileCmd = &cobra.Command{
	Use:   "cat-file <hash>",
	Short: "Print the content of an object",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatFile,
}

func init() {
	rootCmd.AddCommand(catFileCmd)
}

func runCatFile(cmd *cobra.Command, args []string) error {
	hash, err := rgit.ParseHash(args[0])
	if err != nil {
		return err
	}

	repo, err := openRepo()
	if err != nil {
		return err
	}

	content, err := repo.CatFile(cmd.Context(), hash)
	if err != nil {
		return err
	}

	_, err = cmd.OutOrStdout().Write(content)
	return err
}
