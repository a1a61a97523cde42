package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/mythwatch/mythwatch/internal/model"
	"github.com/mythwatch/mythwatch/internal/worker"
)

var (
	batchConcurrency int
	batchTimeout     time.Duration
	batchOut         string
)

var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Classify claims from a file in parallel",
	Long: `Batch reads one claim per line (blank lines and # comments are
skipped) and classifies them concurrently, preserving input order.

Example:
  mythwatch batch claims.txt
  mythwatch batch claims.txt --concurrency 8 --out results.json`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for the batch")
	batchCmd.Flags().StringVar(&batchOut, "out", "", "write results as JSON to this file instead of stdout")
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	claims, err := worker.ReadClaimsFile(args[0])
	if err != nil {
		return err
	}
	if len(claims) == 0 {
		return fmt.Errorf("no claims found in %s", args[0])
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	a, cleanup, err := buildApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	if verbose {
		fmt.Fprintf(os.Stderr, "Classifying %d claims with %d workers\n", len(claims), batchConcurrency)
	}

	normalized := make([]string, len(claims))
	for i, claim := range claims {
		normalized[i] = model.Normalize(claim)
	}

	processor := worker.NewBatchProcessor(a.claims, batchConcurrency)
	results := processor.ProcessClaims(ctx, normalized)

	// Report the claims as the user wrote them.
	for i := range results {
		results[i].Claim = claims[i]
	}

	out := os.Stdout
	if batchOut != "" {
		f, err := os.Create(batchOut)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(results); err != nil {
		return fmt.Errorf("write results: %w", err)
	}

	if verbose {
		misinfo := 0
		for _, r := range results {
			if r.Result.Label == model.LabelMisinformation {
				misinfo++
			}
		}
		fmt.Fprintf(os.Stderr, "Done: %d claims, %d flagged as misinformation\n", len(results), misinfo)
	}
	return nil
}
