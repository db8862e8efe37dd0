package cli

import (
	"fmt"
	"os"

	"github.com/ppiankov/tactica/internal/dictionary"
	"github.com/ppiankov/tactica/internal/pipeline"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	dictShowFormat string
)

// dictCmd represents the dict command
var dictCmd = &cobra.Command{
	Use:   "dict",
	Short: "Inspect and check trigger-phrase dictionaries",
}

var dictShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the dictionary a classify run would use",
	Long: `Show resolves the dictionary exactly as classify does (built-in default
or --dict, then --category overrides) and prints it with phrases
normalized: trimmed, lowercased and deduplicated.

Example:
  tactica dict show
  tactica dict show --dict tactics.json --format yaml
  tactica dict show --category scarcity=scarcity.txt`,
	Args: cobra.NoArgs,
	RunE: runDictShow,
}

var dictValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check that a dictionary file parses",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := dictionary.Load(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s\n", args[0])
			return err
		}

		fmt.Fprintf(os.Stderr, "✓ %s: %d categories\n", args[0], d.Len())
		d.Each(func(name string, phrases []string) {
			fmt.Fprintf(os.Stderr, "  %-28s %d phrases\n", name, len(phrases))
		})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dictCmd)
	dictCmd.AddCommand(dictShowCmd)
	dictCmd.AddCommand(dictValidateCmd)

	dictShowCmd.Flags().StringVar(&classifyDict, "dict", "", "dictionary file (.json, .yaml, or a phrase list)")
	dictShowCmd.Flags().StringArrayVar(&classifyCategories, "category", nil, "category phrase file as name=path, one phrase per line; '#' or '# text' lines are comments (repeatable)")
	dictShowCmd.Flags().StringVar(&dictShowFormat, "format", "json", "output format: json or yaml")
}

func runDictShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyClassifyFlags(cfg); err != nil {
		return err
	}
	// Show what is on disk; never substitute a fallback here
	cfg.Classify.OnParseError = "halt"

	log, err := finishConfig(cfg)
	if err != nil {
		return err
	}
	p, err := pipeline.NewPipeline(cfg, log)
	if err != nil {
		return err
	}

	d, _, err := p.Dictionary()
	if err != nil {
		return err
	}

	var out []byte
	switch dictShowFormat {
	case "json":
		out, err = d.Indented()
	case "yaml":
		out, err = yaml.Marshal(d)
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", dictShowFormat)
	}
	if err != nil {
		return fmt.Errorf("encode dictionary: %w", err)
	}

	_, err = cmd.OutOrStdout().Write(out)
	return err
}
