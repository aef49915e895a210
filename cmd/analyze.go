package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"algomentor/internal/pipeline"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [problem statement]",
	Short: "Analyze an algorithmic problem",
	Long: `Runs the full analysis pipeline for a problem statement: retrieves
similar reference problems, prompts the configured model, and prints the
structured breakdown. The statement is read from the arguments, or from
stdin when none are given.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().String("mode", "", "analysis mode: quick, detailed, or interview")
	analyzeCmd.Flags().Bool("json", false, "print the raw JSON result")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	problem, err := readInput(args)
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

	mode, _ := cmd.Flags().GetString("mode")
	res, err := pipe.Analyze(context.Background(), problem, pipeline.Options{Mode: mode})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return printJSON(res)
	}
	printAnalysisResult(res)
	return nil
}

// readInput joins the args, or reads stdin when no args were given.
func readInput(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printAnalysisResult(res *pipeline.Result) {
	if res.Guidance != nil {
		fmt.Printf("Interview session %s (phase: %s, turn %d/%d)\n\n",
			res.Guidance.SessionID, res.Guidance.Phase,
			res.Guidance.Interactions, res.Guidance.MaxInteractions)
		fmt.Println(res.Guidance.Text)
		return
	}

	a := res.Analysis
	section := func(title, body string) {
		if body != "" {
			fmt.Printf("== %s ==\n%s\n\n", title, body)
		}
	}
	list := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		fmt.Printf("== %s ==\n", title)
		for _, item := range items {
			fmt.Printf("  - %s\n", item)
		}
		fmt.Println()
	}

	section("Problem Understanding", a.Understanding)
	section("Pattern", a.Pattern)
	section("Brute Force", a.BruteForce)
	section("Optimized Approach", a.Optimized)
	section("Time Complexity", a.TimeComplexity)
	section("Space Complexity", a.SpaceComplexity)
	section("Code", a.Code)
	list("Edge Cases", a.EdgeCases)
	list("Follow-ups", a.FollowUps)
	list("Common Mistakes", a.CommonMistakes)
	list("Variations", a.Variations)

	if len(res.Sources) > 0 {
		fmt.Println("== Similar Problems ==")
		for _, src := range res.Sources {
			fmt.Printf("  - %s [%s] (%.1f%%)\n", src.Title, src.Difficulty, src.Score*100)
		}
		fmt.Println()
	}

	fmt.Printf("(model %s, %d tokens, %dms)\n", res.Model, res.Tokens, res.DurationMS)
}
