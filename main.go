package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configFile string
	outputDir  string
	urlTargets []string
	feedURL    string
	limit      int
	debugMode  bool
)

var rootCmd = &cobra.Command{
	Use:   "note-archiver [urls or query terms...]",
	Short: "Incrementally archive an author's articles as Markdown",
	Long: `Crawls an author's listing page, reveals every article behind the
"load more" control and saves each one as a Markdown file. Articles already
archived in a previous run are never downloaded again.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), args)
	},
}

func init() {
	rootCmd.Flags().StringVar(&configFile, "config", "", "Path to settings YAML (default .note-archiver/settings.yaml)")
	rootCmd.Flags().StringVar(&outputDir, "output", "", "Output directory override")
	rootCmd.Flags().StringArrayVar(&urlTargets, "url", nil, "Archive a specific article URL (repeatable)")
	rootCmd.Flags().StringVar(&feedURL, "feed", "", "Author RSS/Atom feed URL for supplemental discovery")
	rootCmd.Flags().IntVar(&limit, "limit", 0, "Stop after N targets (0 = no limit)")
	rootCmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
}

// run wires setup, discovery and processing. Only setup failures surface as
// a non-zero exit; per-article failures are reported via logs and the final
// summary.
func run(ctx context.Context, args []string) error {
	_ = godotenv.Load()
	if debugMode {
		SetDebugMode(true)
	}

	settings, err := loadSettings(configFile)
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	settings.applyEnvOverrides()
	if outputDir != "" {
		settings.OutputDirectory = outputDir
	}
	if feedURL != "" {
		settings.FeedURL = feedURL
	}
	settings.normalize()

	spec := parseTargetSpec(args, urlTargets)
	if spec.Mode != Explicit && settings.AuthorURL == "" {
		return fmt.Errorf("author_url is required for discovery: set it in settings, NOTE_ARCHIVER_AUTHOR_URL, or pass --url targets")
	}

	if err := os.MkdirAll(settings.OutputDirectory, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	index, err := NewArchiveIndex(settings.OutputDirectory)
	if err != nil {
		return err
	}
	debugLog("archive index loaded: %d files", index.Len())

	browser, err := NewBrowser(ctx)
	if err != nil {
		return fmt.Errorf("starting render session: %w", err)
	}
	defer browser.Close()

	targets, err := resolveTargets(ctx, spec, func(ctx context.Context) ([]ArticleRef, error) {
		return discoverArticles(ctx, browser, settings)
	})
	if err != nil {
		return err
	}
	if limit > 0 && len(targets) > limit {
		targets = targets[:limit]
	}
	log.Printf("Processing %d articles...", len(targets))

	processor := NewArticleProcessor(browser, settings, index)
	summary, _ := processor.Run(ctx, targets)

	log.Printf("Done: %d saved, %d skipped, %d failed", summary.Saved, summary.Skipped, summary.Failed)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
