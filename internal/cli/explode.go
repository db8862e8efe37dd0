package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/ppiankov/tactica/internal/explode"
	"github.com/ppiankov/tactica/internal/model"
	"github.com/ppiankov/tactica/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	explodeRename     string
	explodeRenameFile string
	stripEmoji        bool
	stripHTML         bool
	noCache           bool
	explodeOutput     string
)

// explodeCmd represents the explode command
var explodeCmd = &cobra.Command{
	Use:   "explode <input.csv>",
	Short: "Split text into one row per sentence",
	Long: `Explode splits the Context column of every row into sentences and
writes one row per sentence with columns ID, Sentence_ID, Context and
Sentence. Sentence_ID counts from 1 within each source row.

Sentences are NFC-normalized, typographic apostrophes become ', whitespace
is collapsed and a final period is added when no terminal punctuation is
present. Rows with no text produce no output rows and are listed in the
summary.

Use --rename to map your column names onto ID and Context.

Example:
  tactica explode comments.csv -o sentences.csv
  tactica explode posts.csv --rename '{"post_id":"ID","caption":"Context"}'
  tactica explode posts.csv --rename-file columns.json --strip-emoji --strip-html`,
	Args: cobra.ExactArgs(1),
	RunE: runExplode,
}

func init() {
	rootCmd.AddCommand(explodeCmd)

	addExplodeFlags(explodeCmd)
	explodeCmd.Flags().StringVarP(&explodeOutput, "output", "o", "-", "output CSV path (- for stdout)")
	explodeCmd.Flags().BoolVar(&noSummary, "no-summary", false, "do not print the run summary")
}

// addExplodeFlags registers the flags shared by explode and batch explode
func addExplodeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&explodeRename, "rename", "", "column rename mapping as a JSON object")
	cmd.Flags().StringVar(&explodeRenameFile, "rename-file", "", "JSON file with the column rename mapping")
	cmd.Flags().BoolVar(&stripEmoji, "strip-emoji", false, "remove emoji from sentences")
	cmd.Flags().BoolVar(&stripHTML, "strip-html", false, "extract visible text from HTML before splitting")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable segmentation cache")
}

func runExplode(cmd *cobra.Command, args []string) error {
	input := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyExplodeFlags(cfg); err != nil {
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
		fmt.Fprintf(os.Stderr, "⚙️  Splitting %s into sentences...\n", input)
	}

	summary, err := p.ExplodeFile(ctx, input, explodeOutput)
	if err != nil {
		return fmt.Errorf("explode failed: %w", err)
	}

	if cfg.Output.Summary && !noSummary {
		pipeline.RenderExplodeSummary(os.Stderr, summary)
	}
	return nil
}

func applyExplodeFlags(cfg *model.Config) error {
	if explodeRename != "" {
		inline, err := explode.ParseMapping([]byte(explodeRename))
		if err != nil {
			return err
		}
		if cfg.Explode.Rename == nil {
			cfg.Explode.Rename = make(map[string]string, len(inline))
		}
		for from, to := range inline {
			cfg.Explode.Rename[from] = to
		}
	}
	if explodeRenameFile != "" {
		cfg.Explode.RenameFile = explodeRenameFile
	}
	if stripEmoji {
		cfg.Explode.StripEmoji = true
	}
	if stripHTML {
		cfg.Explode.StripMarkup = true
	}
	if noCache {
		cfg.Explode.CacheSize = 0
	}
	return nil
}
