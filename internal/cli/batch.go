package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/ppiankov/tactica/internal/model"
	"github.com/ppiankov/tactica/internal/pipeline"
	"github.com/ppiankov/tactica/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	outputDir    string
	batchFrom    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run classify or explode over many CSV files in parallel",
	Long: `Batch processes multiple CSV files concurrently:
- Take input files as arguments and/or from a list file (one per line)
- Process files in parallel with a configurable worker count
- Write one output per input into the output directory
- Share one dictionary and one segmentation cache across the batch

Example:
  tactica batch classify jan.csv feb.csv mar.csv --output-dir ./flagged
  tactica batch explode --from inputs.txt --concurrency 4 --strip-emoji`,
}

var batchClassifyCmd = &cobra.Command{
	Use:   "classify [files...]",
	Short: "Classify many CSV files",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBatch(args, "Classification", "_flagged", applyClassifyFlags,
			func(p *pipeline.Pipeline) worker.FileFunc[*pipeline.ClassifySummary] {
				return p.ClassifyFile
			},
			func(s *pipeline.ClassifySummary) string {
				return fmt.Sprintf("%d rows, %d flagged", s.Rows, s.Flagged)
			})
	},
}

var batchExplodeCmd = &cobra.Command{
	Use:   "explode [files...]",
	Short: "Explode many CSV files into sentences",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBatch(args, "Explode", "_sentences", applyExplodeFlags,
			func(p *pipeline.Pipeline) worker.FileFunc[*pipeline.ExplodeSummary] {
				return p.ExplodeFile
			},
			func(s *pipeline.ExplodeSummary) string {
				return fmt.Sprintf("%d rows, %d sentences, %d empty", s.SourceRows, s.Sentences, len(s.Empty))
			})
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.AddCommand(batchClassifyCmd)
	batchCmd.AddCommand(batchExplodeCmd)

	for _, cmd := range []*cobra.Command{batchClassifyCmd, batchExplodeCmd} {
		cmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of files processed at once")
		cmd.Flags().StringVar(&outputDir, "output-dir", "./tactica-output", "output directory")
		cmd.Flags().StringVar(&batchFrom, "from", "", "file listing input paths (one per line)")
		cmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "total timeout for batch processing")
	}
	addClassifyFlags(batchClassifyCmd)
	addExplodeFlags(batchExplodeCmd)
}

func runBatch[S any](
	args []string,
	title, suffix string,
	applyFlags func(*model.Config) error,
	op func(*pipeline.Pipeline) worker.FileFunc[S],
	describe func(S) string,
) error {
	inputs := append([]string(nil), args...)
	if batchFrom != "" {
		listed, err := worker.ReadPathsFromFile(batchFrom)
		if err != nil {
			return fmt.Errorf("read input list: %w", err)
		}
		inputs = append(inputs, listed...)
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no input files: pass paths as arguments or use --from")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyFlags(cfg); err != nil {
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

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Tactica Batch %s\n", title)
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Files:        %d\n", len(inputs))
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	processor := worker.NewBatchProcessor(op(p), concurrency)
	results := processor.ProcessFiles(ctx, inputs, outputDir, suffix)

	successCount := 0
	failureCount := 0
	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Input, result.Error)
			continue
		}
		successCount++
		fmt.Fprintf(os.Stderr, "✓ %s → %s (%s)\n", result.Input, result.Output, describe(result.Summary))
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d files\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	if failureCount > 0 {
		return fmt.Errorf("%d of %d files failed", failureCount, len(results))
	}
	return nil
}
