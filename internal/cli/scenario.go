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
	scenarioTimeout time.Duration
	scenarioJSON    bool
)

var scenarioCmd = &cobra.Command{
	Use:   "scenario <description>",
	Short: "Assess the transmission risk of a described situation",
	Long: `Scenario assesses how risky a described exposure situation is and
prints the matched risk tier. Descriptions that match no known scenario
are classified as a claim instead.

Example:
  mythwatch scenario "I shook hands with someone who has mpox"
  mythwatch scenario --json "sharing a towel at the gym"`,
	Args: cobra.ExactArgs(1),
	RunE: runScenario,
}

func init() {
	rootCmd.AddCommand(scenarioCmd)

	scenarioCmd.Flags().DurationVar(&scenarioTimeout, "timeout", 30*time.Second, "assessment timeout")
	scenarioCmd.Flags().BoolVar(&scenarioJSON, "json", false, "print the assessment as JSON")
}

func runScenario(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), scenarioTimeout)
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

	result := a.scenarios.Classify(ctx, model.Normalize(args[0]))

	if scenarioJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}

	if result.Fallback != nil {
		fmt.Println("No known scenario matched; classified as a claim instead.")
		fmt.Printf("Label:       %s\n", result.Fallback.Label)
		fmt.Printf("Explanation: %s\n", result.Fallback.Explanation)
		fmt.Printf("Reason:      %s\n", result.Fallback.Reason)
		if result.Fallback.CitationURL != "" {
			fmt.Printf("Source:      %s\n", result.Fallback.CitationURL)
		}
		fmt.Printf("Score:       %.3f\n", result.Fallback.Confidence)
		return nil
	}

	fmt.Printf("Scenario:    %s\n", result.Scenario)
	fmt.Printf("Risk:        %s\n", result.Tier)
	fmt.Printf("Explanation: %s\n", result.Explanation)
	fmt.Printf("Reason:      %s\n", result.Reason)
	if result.Evidence != "" {
		fmt.Printf("Evidence:    %s\n", result.Evidence)
	}
	if result.CitationURL != "" {
		fmt.Printf("Source:      %s\n", result.CitationURL)
	}
	fmt.Printf("Score:       %.3f\n", result.Confidence)
	return nil
}
