/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ssargent/bptreekv/pkg/bloom"
	"github.com/ssargent/bptreekv/pkg/bptree"
)

// Config represents the on-disk configuration for a bptreekv store.
type Config struct {
	DataDir      string `yaml:"data_dir"`
	SnapshotFile string `yaml:"snapshot_file"`

	NodeOrder int `yaml:"node_order"`
	ArenaSize int `yaml:"arena_size"`

	BloomInitialBits       int     `yaml:"bloom_initial_bits"`
	BloomMaxBits           int     `yaml:"bloom_max_bits"`
	BloomGrowthThreshold   float64 `yaml:"bloom_growth_threshold"`
	BloomGrowthCheckStride int     `yaml:"bloom_growth_check_stride"`

	Logging Logging `yaml:"logging"`
}

// Logging contains logging configuration.
type Logging struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a default configuration sized for development use.
func DefaultConfig() *Config {
	return &Config{
		DataDir:      "./data",
		SnapshotFile: "snapshot.bptkv",

		NodeOrder: bptree.DefaultOrder,
		ArenaSize: 128 << 20, // 128 MiB

		BloomInitialBits:       bloom.CapacityMin,
		BloomMaxBits:           bloom.CapacityMax,
		BloomGrowthThreshold:   bloom.GrowthThreshold,
		BloomGrowthCheckStride: bloom.GrowthCheckStride,

		Logging: Logging{Level: "info"},
	}
}

// SnapshotPath returns the full path to the configured snapshot file.
func (c *Config) SnapshotPath() string {
	return filepath.Join(c.DataDir, c.SnapshotFile)
}

// LoadConfig loads configuration from the specified path.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves the configuration to the specified path with secure
// permissions.
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetDefaultConfigPath returns the default configuration path for the
// current platform.
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./bptreekv.yaml"
	}

	configDir := filepath.Join(homeDir, ".config", "bptreekv")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists.
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
