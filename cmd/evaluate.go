package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"algomentor/internal/pipeline"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <code-file> [problem statement]",
	Short: "Score a solution against the interview rubric",
	Long: `Reads candidate code from the given file and scores it against a fixed
rubric: correctness, efficiency, code quality, edge case handling, and
readability. The problem statement comes from the remaining arguments,
or from stdin.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEvaluate,
}

func init() {
	evaluateCmd.Flags().Bool("json", false, "print the raw JSON result")
	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	code, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading code file: %w", err)
	}

	problem, err := readInput(args[1:])
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	pipe, err := buildOrchestrator(cfg)
	if err != nil {
		return err
	}
	defer pipe.Sessions().Stop()

	res, err := pipe.EvaluateCode(context.Background(), problem, string(code))
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return printJSON(res)
	}
	printEvaluationResult(res)
	return nil
}

func printEvaluationResult(res *pipeline.EvaluationResult) {
	ev := res.Evaluation

	fmt.Printf("Overall score: %.0f/100\n\n", ev.OverallScore)
	criterion := func(name string, score float64, feedback string) {
		fmt.Printf("  %-18s %.0f/10  %s\n", name, score, feedback)
	}
	criterion("Correctness", ev.Criteria.Correctness.Score, ev.Criteria.Correctness.Feedback)
	criterion("Efficiency", ev.Criteria.Efficiency.Score, ev.Criteria.Efficiency.Feedback)
	criterion("Code quality", ev.Criteria.CodeQuality.Score, ev.Criteria.CodeQuality.Feedback)
	criterion("Edge cases", ev.Criteria.EdgeCaseHandling.Score, ev.Criteria.EdgeCaseHandling.Feedback)
	criterion("Readability", ev.Criteria.Readability.Score, ev.Criteria.Readability.Feedback)

	if len(ev.Suggestions) > 0 {
		fmt.Println("\nSuggestions:")
		for _, s := range ev.Suggestions {
			fmt.Printf("  - %s\n", s)
		}
	}
	if ev.Hint != "" {
		fmt.Printf("\nHint: %s\n", ev.Hint)
	}
	if ev.Raw != "" {
		fmt.Fprintf(os.Stderr, "\nThe model reply could not be parsed; raw text follows:\n%s\n", ev.Raw)
	}

	fmt.Printf("\n(model %s, %d tokens, %dms)\n", res.Model, res.Tokens, res.DurationMS)
}
