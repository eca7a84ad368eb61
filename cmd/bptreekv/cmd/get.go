package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a value for a key",
	Long: `Get a value for a key from the bptreekv store.

Example:
  bptreekv get mykey`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := []byte(args[0])

		s, err := storeFromContext(cmd)
		if err != nil {
			return err
		}

		value, err := s.Get(key)
		if err != nil {
			return fmt.Errorf("getting value: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", string(value))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
