package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var hashObjectCmd = &cobra.Command{
	Use:   "hash-object [-w] <path>",
	Short: "Compute the object address of a file",
	Long:  "Print the address a file's content is stored under. With -w the object is also written. Use - to read stdin.",
	Args:  cobra.ExactArgs(1),
	RunE:  runHashObject,
}

func init() {
	hashObjectCmd.Flags().BoolP("write", "w", false, "write the object into the object store")
	rootCmd.AddCommand(hashObjectCmd)
}

func runHashObject(cmd *cobra.Command, args []string) error {
	var (
		content []byte
		err     error
	)
	if args[0] == "-" {
		content, err = io.ReadAll(cmd.InOrStdin())
	} else {
		content, err = os.ReadFile(args[0])
	}
	if err != nil {
		return err
	}

	write, _ := cmd.Flags().GetBool("write")

	repo, err := openRepo()
	if err != nil {
		return err
	}

	hash, err := repo.HashObject(cmd.Context(), content, write)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), hash)
	return nil
}
