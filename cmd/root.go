package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "algomentor",
	Short: "Retrieval-augmented coding interview mentor powered by a local LLM",
	Long: `AlgoMentor analyzes algorithmic problems with a local LLM, grounding its
answers in a curated corpus of reference problems retrieved by vector
similarity. It can also run guided mock interviews and score candidate
code against a fixed rubric.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".algomentor.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
