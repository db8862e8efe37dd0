package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/ppiankov/tactica/internal/model"
	"github.com/ppiankov/tactica/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	classifyColumn     string
	classifyDict       string
	classifyCategories []string
	classifyFlags      string
	classifyWorkers    int
	classifyFallback   bool
	classifyOutput     string
	noSummary          bool
)

// classifyCmd represents the classify command
var classifyCmd = &cobra.Command{
	Use:   "classify <input.csv>",
	Short: "Flag rows that use trigger phrases from a dictionary",
	Long: `Classify adds one flag column per dictionary category to a CSV file,
plus matched_terms (every matched phrase, in dictionary order) and tactics
(the detected categories).

Without --dict the built-in urgency_marketing and exclusive_marketing
categories are used. --category replaces or adds one category from a
newline-delimited phrase file.

Example:
  tactica classify posts.csv -o flagged.csv
  tactica classify posts.csv --column Caption --dict tactics.yaml
  tactica classify posts.csv --category scarcity=scarcity.txt --flags int
  tactica classify big.csv --workers 8 -o - > flagged.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)

	addClassifyFlags(classifyCmd)
	classifyCmd.Flags().StringVarP(&classifyOutput, "output", "o", "-", "output CSV path (- for stdout)")
	classifyCmd.Flags().BoolVar(&noSummary, "no-summary", false, "do not print the run summary")
}

// addClassifyFlags registers the flags shared by classify and batch classify
func addClassifyFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&classifyColumn, "column", "", "text column (default: Statement, then Context, then the first column)")
	cmd.Flags().StringVar(&classifyDict, "dict", "", "dictionary file (.json, .yaml, or a phrase list)")
	cmd.Flags().StringArrayVar(&classifyCategories, "category", nil, "category phrase file as name=path, one phrase per line; '#' or '# text' lines are comments (repeatable)")
	cmd.Flags().StringVar(&classifyFlags, "flags", "", "flag format: bool or int")
	cmd.Flags().IntVar(&classifyWorkers, "workers", 0, "parallel workers per file")
	cmd.Flags().BoolVar(&classifyFallback, "fallback", false, "keep going with the last known-good dictionary when one fails to parse")
}

func runClassify(cmd *cobra.Command, args []string) error {
	input := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyClassifyFlags(cfg); err != nil {
		return err
	}

	log, err := finishConfig(cfg)
	if err != nil {
		return err
	}

	p, err := pipeline.NewPipeline(cfg, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "⚙️  Classifying %s...\n", input)
	}

	summary, err := p.ClassifyFile(ctx, input, classifyOutput)
	if err != nil {
		return fmt.Errorf("classify failed: %w", err)
	}

	if cfg.Output.Summary && !noSummary {
		pipeline.RenderClassifySummary(os.Stderr, summary)
	}
	return nil
}

func applyClassifyFlags(cfg *model.Config) error {
	if classifyColumn != "" {
		cfg.Classify.TextColumn = classifyColumn
	}
	if classifyDict != "" {
		cfg.Classify.DictionaryFile = classifyDict
	}
	if classifyFlags != "" {
		cfg.Classify.FlagFormat = classifyFlags
	}
	if classifyWorkers > 0 {
		cfg.Concurrency.Workers = classifyWorkers
	}
	if classifyFallback {
		cfg.Classify.OnParseError = "fallback"
	}

	categories, err := parseCategoryFlags(classifyCategories)
	if err != nil {
		return err
	}
	if len(categories) > 0 && cfg.Classify.CategoryFiles == nil {
		cfg.Classify.CategoryFiles = make(map[string]string, len(categories))
	}
	for name, path := range categories {
		cfg.Classify.CategoryFiles[name] = path
	}
	return nil
}

// parseCategoryFlags parses repeated name=path values
func parseCategoryFlags(values []string) (map[string]string, error) {
	out := make(map[string]string, len(values))
	for _, v := range values {
		name, path, ok := strings.Cut(v, "=")
		name, path = strings.TrimSpace(name), strings.TrimSpace(path)
		if !ok || name == "" || path == "" {
			return nil, &model.ConfigurationError{Reason: fmt.Sprintf("--category expects name=path, got %q", v)}
		}
		out[name] = path
	}
	return out, nil
}
