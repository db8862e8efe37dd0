package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ppiankov/tactica/internal/model"
	"github.com/ppiankov/tactica/internal/validate"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage Tactica configuration",
	Long: `Manage Tactica configuration files and settings.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (TACTICA_*, e.g. TACTICA_CLASSIFY_FLAG_FORMAT)
3. Config file (~/.tactica/config.yaml)
4. Defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the effective configuration after merging defaults, config file and environment variables.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		configFile := viper.ConfigFileUsed()
		if configFile != "" {
			fmt.Fprintf(os.Stderr, "Configuration file: %s\n\n", configFile)
		} else {
			fmt.Fprintf(os.Stderr, "No configuration file found (using defaults)\n\n")
		}

		yamlData, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("error marshaling config: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "═══════════════════════════════════════════════════════════")
		fmt.Fprintln(out, "  Current Configuration")
		fmt.Fprintln(out, "═══════════════════════════════════════════════════════════")
		fmt.Fprintln(out)
		fmt.Fprintln(out, string(yamlData))
		fmt.Fprintln(out, "═══════════════════════════════════════════════════════════")
		fmt.Fprintln(out)

		if err := validate.New().Config(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %v\n", err)
		}
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize default configuration file",
	Long:  `Create a default configuration file at ~/.tactica/config.yaml with all available options.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("error finding home directory: %w", err)
		}

		configPath := filepath.Join(home, ".tactica", "config.yaml")
		if err := writeDefaultConfig(configPath); err != nil {
			return err
		}

		fmt.Printf("✓ Created default configuration: %s\n", configPath)
		fmt.Printf("\nTo view the configuration:\n")
		fmt.Printf("  tactica config show\n")
		fmt.Printf("\nTo customize, edit the file with your preferred editor:\n")
		fmt.Printf("  $EDITOR %s\n", configPath)
		fmt.Printf("\n")

		return nil
	},
}

// writeDefaultConfig writes the commented default configuration, refusing
// to overwrite an existing file
func writeDefaultConfig(configPath string) (err error) {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s\nUse 'tactica config show' to view it, or delete it first to recreate", configPath)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	yamlData, err := yaml.Marshal(model.DefaultConfig())
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	f, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close config file: %w", closeErr)
		}
	}()

	// Helper for writing with error checking
	printf := func(format string, a ...interface{}) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(f, format, a...)
	}

	printf("# Tactica Configuration File\n")
	printf("#\n")
	printf("# Configuration hierarchy (highest to lowest priority):\n")
	printf("#   1. CLI flags\n")
	printf("#   2. Environment variables (TACTICA_*)\n")
	printf("#   3. This config file\n")
	printf("#   4. Built-in defaults\n")
	printf("#\n")
	printf("# classify.dictionary_file: JSON or YAML map of category -> phrases\n")
	printf("# classify.category_files:  category -> newline-delimited phrase file\n")
	printf("# classify.on_parse_error:  halt | fallback (last known-good dictionary)\n")
	printf("# explode.rename:           source column -> ID / Context\n\n")
	printf("%s", yamlData)

	return err
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
