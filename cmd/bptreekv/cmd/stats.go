package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/bptreekv/pkg/metrics"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print index size and Bloom filter usage",
	Long: `Print the current B+tree and Bloom filter statistics for the store:
key count, node count, tree height, arena usage, and Bloom filter fill.

Example:
  bptreekv stats`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := storeFromContext(cmd)
		if err != nil {
			return err
		}

		stat := s.Stats()

		s.Metrics().UpdateIndexStats(metrics.IndexStats{
			Keys:      stat.Keys,
			NodeCount: stat.NodeCount,
			Height:    stat.Height,
			ArenaUsed: stat.ArenaUsed,
			ArenaCap:  stat.ArenaCap,
			BloomBits: stat.BloomBits,
			BloomFill: stat.BloomFill,
		})

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "keys:        %d\n", stat.Keys)
		fmt.Fprintf(out, "nodes:       %d\n", stat.NodeCount)
		fmt.Fprintf(out, "height:      %d\n", stat.Height)
		fmt.Fprintf(out, "arena used:  %d / %d bytes\n", stat.ArenaUsed, stat.ArenaCap)
		fmt.Fprintf(out, "bloom bits:  %d\n", stat.BloomBits)
		fmt.Fprintf(out, "bloom fill:  %.4f\n", stat.BloomFill)
		fmt.Fprintf(out, "puts:        %d\n", stat.PutCount)
		fmt.Fprintf(out, "gets:        %d\n", stat.GetCount)
		fmt.Fprintf(out, "deletes:     %d\n", stat.DeleteCount)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
