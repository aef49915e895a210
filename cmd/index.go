package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"algomentor/internal/indexer"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the vector snapshot from the problem corpus",
	Long: `Embeds every document in the corpus and writes the searchable snapshot
to the configured index path. Embeddings are cached, so rebuilding after
small corpus edits only embeds what changed.`,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().String("corpus", "", "corpus file path (overrides config)")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	start := time.Now()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	corpusPath := cfg.CorpusPath
	if flagPath, _ := cmd.Flags().GetString("corpus"); flagPath != "" {
		corpusPath = flagPath
	}

	embedder, err := createEmbedderFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("creating embedder: %w", err)
	}

	if dir := filepath.Dir(cfg.IndexPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating index directory: %w", err)
		}
	}

	builder := indexer.NewBuilder(embedder, cfg.Embedding.Dimension)

	var bar *progressbar.ProgressBar
	builder.SetProgressFunc(func(done, total int, title string) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetDescription("Embedding corpus"),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowCount(),
			)
		}
		bar.Set(done)
		if verbose {
			fmt.Fprintf(os.Stderr, "  embedded %q\n", title)
		}
	})

	result, err := builder.BuildFile(context.Background(), corpusPath, cfg.IndexPath)
	if bar != nil {
		bar.Finish()
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		return fmt.Errorf("building index: %w", err)
	}

	fmt.Printf("Indexed %d documents in %s\n", result.Documents, time.Since(start).Round(time.Millisecond))
	fmt.Printf("Snapshot written to %s\n", cfg.IndexPath)
	return nil
}
