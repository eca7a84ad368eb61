package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <key>",
	Short: "Delete a key-value pair",
	Long: `Delete a key-value pair from the bptreekv store.

Example:
  bptreekv delete mykey`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := []byte(args[0])

		s, err := storeFromContext(cmd)
		if err != nil {
			return err
		}

		if err := s.Delete(key); err != nil {
			return fmt.Errorf("deleting key: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "deleted %q\n", key)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
