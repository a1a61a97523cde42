package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mythwatch/mythwatch/internal/model"
)

var (
	classifyTimeout time.Duration
	classifyJSON    bool
)

var classifyCmd = &cobra.Command{
	Use:   "classify <claim>",
	Short: "Classify a single claim",
	Long: `Classify verifies one free-text claim against the curated mpox
knowledge base and prints the verdict.

Example:
  mythwatch classify "Garlic water prevents mpox"
  mythwatch classify --json "Mpox spreads through close contact"`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().DurationVar(&classifyTimeout, "timeout", 30*time.Second, "classification timeout")
	classifyCmd.Flags().BoolVar(&classifyJSON, "json", false, "print the verdict as JSON")
}

func runClassify(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), classifyTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	a, cleanup, err := buildApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	result := a.claims.Classify(ctx, model.Normalize(args[0]))

	if classifyJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}

	fmt.Printf("Label:       %s\n", result.Label)
	fmt.Printf("Explanation: %s\n", result.Explanation)
	fmt.Printf("Reason:      %s\n", result.Reason)
	if result.CitationURL != "" {
		fmt.Printf("Source:      %s\n", result.CitationURL)
	}
	fmt.Printf("Score:       %.3f\n", result.Confidence)
	return nil
}
