package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// putCmd represents the put command
var putCmd = &cobra.Command{
	Use:   "put <key> <value>",
	Short: "Put a key-value pair",
	Long: `Put a key-value pair into the bptreekv store.

Example:
  bptreekv put mykey myvalue`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := []byte(args[0])
		value := []byte(args[1])

		s, err := storeFromContext(cmd)
		if err != nil {
			return err
		}

		if err := s.Put(key, value); err != nil {
			return fmt.Errorf("putting key-value: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "put %q = %q\n", key, value)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(putCmd)
}
