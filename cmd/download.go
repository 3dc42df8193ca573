package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dvkhr/madodl/internal/chapters"
	"github.com/dvkhr/madodl/internal/config"
	"github.com/dvkhr/madodl/internal/downloader"
	"github.com/dvkhr/madodl/internal/naming"
	"github.com/dvkhr/madodl/internal/providers/madokami"
	"github.com/dvkhr/madodl/internal/ui"
	"github.com/dvkhr/madodl/internal/util"

	"github.com/spf13/cobra"
)

var (
	// selection
	flagChapter string
	flagRange   string
	flagList    string

	// runtime
	flagOutput         string
	flagPageWorkers    int
	flagChapterWorkers int
	flagKeepFolders    bool
	flagDryRun         bool
	flagSkipBroken     bool

	// auth/headers
	flagUsername  string
	flagPassword  string
	flagUserAgent string
)

func init() {
	downloadCmd := &cobra.Command{
		Use:   "download [series path or URL]",
		Short: "Download chapters from a series listing and produce CBZ files. Uses the defaults from the selected config, overwritten by CLI flags",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDownload,
	}

	// selection
	downloadCmd.Flags().StringVar(&flagChapter, "chapter", "", "download single chapter by index or label (e.g. 5 or 28.5)")
	downloadCmd.Flags().StringVar(&flagRange, "range", "", "download range of chapters by index (e.g. 5-12)")
	downloadCmd.Flags().StringVar(&flagList, "list", "", "download specific chapter indices (e.g. 1,3,5)")

	// runtime
	downloadCmd.Flags().StringVar(&flagOutput, "output", "", "output folder for CBZ files")
	downloadCmd.Flags().IntVar(&flagPageWorkers, "page-workers", 5, "parallel page downloads per chapter")
	downloadCmd.Flags().IntVar(&flagChapterWorkers, "chapter-workers", 2, "parallel chapter downloads")
	downloadCmd.Flags().BoolVar(&flagKeepFolders, "keep-folders", false, "keep temporary folders")
	downloadCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "show what would be downloaded, don't download")
	downloadCmd.Flags().BoolVar(&flagSkipBroken, "skip-broken", false, "skip failed pages instead of failing the whole chapter")

	// auth/headers
	downloadCmd.Flags().StringVar(&flagUsername, "username", "", "archive account username")
	downloadCmd.Flags().StringVar(&flagPassword, "password", "", "archive account password")
	downloadCmd.Flags().StringVar(&flagUserAgent, "user-agent", "", "override User-Agent")

	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	cfg, usedPath, err := config.LoadMerged(config.Options{
		IgnoreConfig: flagIgnoreConfig,
		Debug:        flagDebug,
		Username:     flagUsername,
		Password:     flagPassword,
		Output:       flagOutput,
		KeepFolders:  flagKeepFolders,
		SkipBroken:   flagSkipBroken,
		UserAgent:    flagUserAgent,
		DefaultRange: flagRange,
		DefaultList:  flagList,
	})
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("page-workers") {
		cfg.PageWorkers = flagPageWorkers
	}
	if cmd.Flags().Changed("chapter-workers") {
		cfg.ChapterWorkers = flagChapterWorkers
	}

	logSvc := ui.NewLogger(cfg.Debug)
	if usedPath != "" {
		fmt.Printf("Config file: %s\n", usedPath)
	}

	if cfg.Output == "" {
		cfg.Output = "."
	}
	if err := os.MkdirAll(cfg.Output, 0755); err != nil {
		return fmt.Errorf("cannot create output folder: %w", err)
	}

	fmt.Println("Full config:")
	cfg.Print()
	fmt.Println()

	series := cfg.DefaultSeries
	if len(args) == 1 {
		series = args[0]
	}
	if series == "" {
		return fmt.Errorf("missing series argument and no default_series in config")
	}

	scr, client, err := buildScraper(cfg, logSvc)
	if err != nil {
		return err
	}

	ctx := context.Background()
	util.SetupInterruptHandler(cfg.Output)

	raw, err := scr.Chapters(ctx, series)
	if err != nil {
		return err
	}

	allChapters := chapters.Wrap(madokami.TitleFromPath(series), raw)

	if flagChapter == "" && cfg.DefaultRange == "" && cfg.DefaultList == "" {
		fmt.Printf("Found %d chapters on the site.\n\n", len(allChapters))
	}

	// Flags already won over config defaults in the merge above.
	selected := chapters.Filter(allChapters, flagChapter, cfg.DefaultRange, cfg.DefaultList)
	if len(selected) == 0 {
		if flagChapter != "" {
			return fmt.Errorf("chapter %q not found", flagChapter)
		}
		return fmt.Errorf("no chapters selected")
	}

	if flagDryRun {
		fmt.Printf("Dry-run: %d chapters selected.\n\n", len(selected))
		for i, ch := range selected {
			fmt.Printf("%3d) %s  [%s]\n    %s\n", i+1, ch.Title, ch.Label, ch.URL)
		}
		return nil
	}

	pm := ui.NewProgressManager(cfg.ChapterWorkers)
	defer pm.Close()

	stats := &ui.Stats{}
	dl := downloader.New(client, cfg.SkipBroken)
	start := time.Now()

	sem := make(chan struct{}, max(1, cfg.ChapterWorkers))
	var wg sync.WaitGroup

	for _, ch := range selected {
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			pages, err := scr.Pages(ctx, ch.URL)
			if err != nil {
				logSvc.Errorf("No pages for %s: %v\n", ch.Title, err)
				return
			}

			handle := pm.Register(progressName(ch))
			handle.SetTotal(len(pages))

			tmpFolder := filepath.Join(cfg.Output, ch.FolderName())
			cbzOut := ch.OutputCBZPath(cfg.Output)

			files, bytes, err := dl.DownloadImagesConcurrently(ctx, pages, tmpFolder, scr.BaseURL(), max(1, cfg.PageWorkers), handle)
			if err != nil {
				logSvc.Errorf("Chapter %s failed: %v\n", ch.Title, err)
				_ = os.RemoveAll(tmpFolder)
				return
			}

			if err := util.CreateCBZ(files, cbzOut); err != nil {
				logSvc.Errorf("CBZ for %s failed: %v\n", ch.Title, err)
				_ = os.RemoveAll(tmpFolder)
				return
			}

			if !cfg.KeepFolders {
				util.CleanupFolder(tmpFolder)
			}

			handle.MarkDone()
			stats.TotalChapters.Add(1)
			stats.TotalPages.Add(int64(len(files)))
			stats.TotalBytes.Add(bytes)
		}()
	}
	wg.Wait()
	pm.Close()

	fmt.Println()
	fmt.Println("Download Summary:")
	fmt.Printf("Chapters: %d\n", stats.TotalChapters.Load())
	fmt.Printf("Pages:    %d\n", stats.TotalPages.Load())
	fmt.Printf("Data:     %s\n", util.Human(stats.TotalBytes.Load()))
	fmt.Printf("Time:     %s\n", time.Since(start).Round(time.Second))
	fmt.Println("\nAll done.")

	return nil
}

func progressName(ch chapters.Chapter) string {
	if ch.Label != "" {
		return "Ch." + ch.Label
	}

	return ch.Title
}

func buildScraper(cfg *config.Config, log *ui.Logger) (*madokami.Scraper, *http.Client, error) {
	parser, err := buildParser(cfg)
	if err != nil {
		return nil, nil, err
	}

	client, err := util.NewHTTPClient(util.HTTPClientOptions{
		Timeout:     30 * time.Second,
		UserAgent:   util.PickUserAgent(cfg.UserAgent),
		Username:    cfg.Username,
		Password:    cfg.Password,
		DebugLogger: log,
	})
	if err != nil {
		return nil, nil, err
	}

	return madokami.NewScraper(client, cfg.BaseURL, parser), client, nil
}

func buildParser(cfg *config.Config) (*naming.Parser, error) {
	excl := naming.DefaultExclusions()

	if cfg.ExclusionsFile != "" {
		f, err := os.Open(cfg.ExclusionsFile)
		if err != nil {
			return nil, fmt.Errorf("exclusions file: %w", err)
		}
		defer f.Close()

		if err := excl.AddFrom(f); err != nil {
			return nil, fmt.Errorf("exclusions file: %w", err)
		}
	}

	return naming.NewParser(excl, float64(cfg.YearMin)), nil
}
