package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/tactica/internal/logger"
	"github.com/ppiankov/tactica/internal/model"
	"github.com/ppiankov/tactica/internal/validate"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const version = "tactica v0.3.0"

var (
	cfgFile   string
	verbose   bool
	logFormat string
	delimiter string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "tactica",
	Short: "Tactica - persuasion tactic flags for social media text",
	Long: `Tactica flags marketing persuasion tactics in social media captions
and comments.

It matches text against dictionaries of trigger phrases (urgency,
exclusivity, or your own categories) and splits multi-sentence text into
one row per sentence for downstream analysis.

Matching is plain case-insensitive substring search. It flags wording,
not intent.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number of Tactica.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.tactica/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text or json")
	rootCmd.PersistentFlags().StringVar(&delimiter, "delimiter", "", "CSV delimiter (default ,)")

	// Bind flags to viper
	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("csv.delimiter", rootCmd.PersistentFlags().Lookup("delimiter"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	setDefaults(model.DefaultConfig())

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(filepath.Join(home, ".tactica"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// TACTICA_CLASSIFY_FLAG_FORMAT overrides classify.flag_format
	viper.SetEnvPrefix("TACTICA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// setDefaults registers every key so env vars and Unmarshal see them
func setDefaults(cfg *model.Config) {
	viper.SetDefault("classify.text_column", cfg.Classify.TextColumn)
	viper.SetDefault("classify.dictionary_file", cfg.Classify.DictionaryFile)
	viper.SetDefault("classify.category_files", cfg.Classify.CategoryFiles)
	viper.SetDefault("classify.flag_format", cfg.Classify.FlagFormat)
	viper.SetDefault("classify.term_separator", cfg.Classify.TermSeparator)
	viper.SetDefault("classify.on_parse_error", cfg.Classify.OnParseError)

	viper.SetDefault("explode.rename", cfg.Explode.Rename)
	viper.SetDefault("explode.rename_file", cfg.Explode.RenameFile)
	viper.SetDefault("explode.strip_emoji", cfg.Explode.StripEmoji)
	viper.SetDefault("explode.strip_markup", cfg.Explode.StripMarkup)
	viper.SetDefault("explode.cache_size", cfg.Explode.CacheSize)

	viper.SetDefault("csv.delimiter", cfg.CSV.Delimiter)

	viper.SetDefault("concurrency.workers", cfg.Concurrency.Workers)
	viper.SetDefault("concurrency.chunk_size", cfg.Concurrency.ChunkSize)

	viper.SetDefault("logging.level", cfg.Logging.Level)
	viper.SetDefault("logging.format", cfg.Logging.Format)

	viper.SetDefault("output.verbose", cfg.Output.Verbose)
	viper.SetDefault("output.summary", cfg.Output.Summary)
}

// loadConfig merges defaults, config file, env vars and bound flags. The
// caller applies command flags and then calls finishConfig.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	// Empty flag values must not clobber configured ones
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = model.DefaultConfig().Logging.Format
	}
	if cfg.CSV.Delimiter == "" {
		cfg.CSV.Delimiter = model.DefaultConfig().CSV.Delimiter
	}
	if path := viper.ConfigFileUsed(); path != "" {
		if err := restoreKeyCase(path, cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// restoreKeyCase re-reads the maps keyed by column or category name from
// the config file, since viper lowercases map keys
func restoreKeyCase(path string, cfg *model.Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Classify struct {
			CategoryFiles map[string]string `yaml:"category_files"`
		} `yaml:"classify"`
		Explode struct {
			Rename map[string]string `yaml:"rename"`
		} `yaml:"explode"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if raw.Classify.CategoryFiles != nil {
		cfg.Classify.CategoryFiles = raw.Classify.CategoryFiles
	}
	if raw.Explode.Rename != nil {
		cfg.Explode.Rename = raw.Explode.Rename
	}
	return nil
}

// finishConfig validates cfg and builds the logger for a run
func finishConfig(cfg *model.Config) (*slog.Logger, error) {
	if cfg.Output.Verbose {
		cfg.Logging.Level = "debug"
	}
	if err := validate.New().Config(cfg); err != nil {
		return nil, err
	}

	log := logger.New(logger.Config{
		Writer: os.Stderr,
		Format: cfg.Logging.Format,
		Level:  logger.ParseLevel(cfg.Logging.Level),
	})
	return log, nil
}
