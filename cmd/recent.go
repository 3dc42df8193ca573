package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/dvkhr/madodl/internal/config"
	"github.com/dvkhr/madodl/internal/ui"

	"github.com/spf13/cobra"
)

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently uploaded series",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := config.LoadMerged(config.Options{
			IgnoreConfig: flagIgnoreConfig,
			Debug:        flagDebug,
		})
		if err != nil {
			return err
		}

		logSvc := ui.NewLogger(cfg.Debug)

		scr, _, err := buildScraper(cfg, logSvc)
		if err != nil {
			return err
		}

		results, err := scr.Recent(context.Background())
		if err != nil {
			return err
		}

		if len(results) == 0 {
			fmt.Println("Nothing recent.")
			return nil
		}

		rows := make([][]string, 0, len(results))
		for _, s := range results {
			rows = append(rows, []string{s.Title, s.Path})
		}

		return ui.RenderTable(os.Stdout, []string{"TITLE", "PATH"}, rows)
	},
}

func init() {
	rootCmd.AddCommand(recentCmd)
}
