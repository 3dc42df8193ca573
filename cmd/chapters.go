package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dvkhr/madodl/internal/chapters"
	"github.com/dvkhr/madodl/internal/config"
	"github.com/dvkhr/madodl/internal/ui"

	"github.com/spf13/cobra"
)

var chaptersCmd = &cobra.Command{
	Use:   "chapters <series path or URL>",
	Short: "List a series' files with the chapter and volume numbers parsed from their names",
	Args:  cobra.ExactArgs(1),
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

		ctx := context.Background()

		details, err := scr.Details(ctx, args[0])
		if err != nil {
			return err
		}

		fmt.Println(details.Title)
		if details.Authors != "" {
			fmt.Printf("Authors: %s\n", details.Authors)
		}
		if len(details.Tags) > 0 {
			fmt.Printf("Tags:    %s\n", strings.Join(details.Tags, ", "))
		}
		if details.Completed {
			fmt.Println("Status:  completed")
		}
		fmt.Println()

		raw, err := scr.Chapters(ctx, args[0])
		if err != nil {
			return err
		}

		list := chapters.Wrap(details.Title, raw)
		if len(list) == 0 {
			fmt.Println("No chapters found.")
			return nil
		}

		rows := make([][]string, 0, len(list))
		for i, ch := range list {
			rows = append(rows, []string{
				strconv.Itoa(i + 1),
				numOrDash(ch.Number),
				numOrDash(ch.Volume),
				dateOrDash(ch),
				ch.Title,
			})
		}

		if err := ui.RenderTable(os.Stdout, []string{"#", "CHAPTER", "VOLUME", "DATE", "TITLE"}, rows); err != nil {
			return err
		}

		fmt.Printf("\n%d entries.\n", len(list))
		return nil
	},
}

func numOrDash(n float64) string {
	if n < 0 {
		return "-"
	}

	return strconv.FormatFloat(n, 'f', -1, 64)
}

func dateOrDash(ch chapters.Chapter) string {
	if ch.Date.IsZero() {
		return "-"
	}

	return ch.Date.Format("2006-01-02")
}

func init() {
	rootCmd.AddCommand(chaptersCmd)
}
