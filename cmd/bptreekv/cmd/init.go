/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/bptreekv/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file for a new store",
	Long: `Write a default bptreekv configuration file, sizing the arena,
B+tree node order, and Bloom filter for local development.

Example:
  bptreekv init --config=./bptreekv.yaml --data-dir=./data`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		dataDir, _ := cmd.Flags().GetString("data-dir")
		force, _ := cmd.Flags().GetBool("force")

		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}

		if config.ConfigExists(configPath) && !force {
			return fmt.Errorf("config already exists at %s (use --force to overwrite)", configPath)
		}

		cfg := config.DefaultConfig()
		if dataDir != "" {
			cfg.DataDir = dataDir
		}

		if err := os.MkdirAll(cfg.DataDir, 0750); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}

		if err := config.SaveConfig(cfg, configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "wrote config to %s\n", configPath)
		fmt.Fprintf(cmd.OutOrStdout(), "data directory: %s\n", cfg.DataDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().String("config", "", "Path to write the configuration file (defaults to the platform config path)")
	initCmd.Flags().String("data-dir", "./data", "Data directory for the store")
	initCmd.Flags().Bool("force", false, "Overwrite an existing configuration file")
}
