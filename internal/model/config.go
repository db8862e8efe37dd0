package model

// Config is the complete tactica configuration
type Config struct {
	Classify    ClassifyConfig    `yaml:"classify" mapstructure:"classify"`
	Explode     ExplodeConfig     `yaml:"explode" mapstructure:"explode"`
	CSV         CSVConfig         `yaml:"csv" mapstructure:"csv"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Logging     LoggingConfig     `yaml:"logging" mapstructure:"logging"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// ClassifyConfig controls the dictionary matcher
type ClassifyConfig struct {
	TextColumn     string            `yaml:"text_column" mapstructure:"text_column"`         // Empty: Statement, then Context, then first column
	DictionaryFile string            `yaml:"dictionary_file" mapstructure:"dictionary_file"` // JSON or YAML; empty uses the built-in default
	CategoryFiles  map[string]string `yaml:"category_files" mapstructure:"category_files"`   // category -> newline-delimited phrase file
	FlagFormat     string            `yaml:"flag_format" mapstructure:"flag_format" validate:"oneof=bool int"`
	TermSeparator  string            `yaml:"term_separator" mapstructure:"term_separator" validate:"required"`
	OnParseError   string            `yaml:"on_parse_error" mapstructure:"on_parse_error" validate:"oneof=halt fallback"`
}

// ExplodeConfig controls the sentence exploder
type ExplodeConfig struct {
	Rename      map[string]string `yaml:"rename" mapstructure:"rename"`
	RenameFile  string            `yaml:"rename_file" mapstructure:"rename_file"`
	StripEmoji  bool              `yaml:"strip_emoji" mapstructure:"strip_emoji"`
	StripMarkup bool              `yaml:"strip_markup" mapstructure:"strip_markup"`
	CacheSize   int               `yaml:"cache_size" mapstructure:"cache_size" validate:"gte=0"` // 0 disables segmentation memoization
}

// CSVConfig controls reading and writing delimited files
type CSVConfig struct {
	Delimiter string `yaml:"delimiter" mapstructure:"delimiter" validate:"len=1"`
}

// ConcurrencyConfig controls row-level parallelism
type ConcurrencyConfig struct {
	Workers   int `yaml:"workers" mapstructure:"workers" validate:"gte=1"`
	ChunkSize int `yaml:"chunk_size" mapstructure:"chunk_size" validate:"gte=1"`
}

// LoggingConfig controls the structured logger
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" mapstructure:"format" validate:"oneof=text json"`
}

// OutputConfig controls human-facing output
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
	Summary bool `yaml:"summary" mapstructure:"summary"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Classify: ClassifyConfig{
			FlagFormat:    "bool",
			TermSeparator: "; ",
			OnParseError:  "halt",
		},
		Explode: ExplodeConfig{
			Rename:    map[string]string{},
			CacheSize: 10_000,
		},
		CSV: CSVConfig{
			Delimiter: ",",
		},
		Concurrency: ConcurrencyConfig{
			Workers:   1,
			ChunkSize: 500,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Output: OutputConfig{
			Summary: true,
		},
	}
}
