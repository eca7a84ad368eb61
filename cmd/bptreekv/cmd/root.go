/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/bptreekv/pkg/config"
	"github.com/ssargent/bptreekv/pkg/store"
)

type storeCtxKey struct{}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bptreekv",
	Short: "bptreekv - an embeddable ordered key-value store",
	Long: `bptreekv is an embeddable ordered key-value store backed by a
B+tree index, an arena allocator, and a dynamically resizing Bloom filter
guarding negative lookups.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		dataDir, _ := cmd.Flags().GetString("data-dir")

		cfg := config.DefaultConfig()
		cfg.DataDir = dataDir

		if err := os.MkdirAll(dataDir, 0750); err != nil {
			return fmt.Errorf("failed to create data dir: %w", err)
		}

		s, err := store.Open(cfg)
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}

		cmd.SetContext(context.WithValue(cmd.Context(), storeCtxKey{}, s))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		s, ok := cmd.Context().Value(storeCtxKey{}).(*store.Store)
		if !ok {
			return nil
		}
		if err := s.Close(); err != nil {
			return fmt.Errorf("failed to close store: %w", err)
		}
		return nil
	},
}

// storeFromContext retrieves the store opened by the root command's
// PersistentPreRunE.
func storeFromContext(cmd *cobra.Command) (*store.Store, error) {
	s, ok := cmd.Context().Value(storeCtxKey{}).(*store.Store)
	if !ok {
		return nil, fmt.Errorf("store not found in command context")
	}
	return s, nil
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen
// once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("data-dir", "d", "./data", "Data directory for the store")
}
