package cmd

import (
	"os"
	"strconv"

	"github.com/dvkhr/madodl/internal/config"
	"github.com/dvkhr/madodl/internal/naming"
	"github.com/dvkhr/madodl/internal/ui"

	"github.com/spf13/cobra"
)

var flagParseTitle string

func init() {
	parseCmd := &cobra.Command{
		Use:   "parse <filename>...",
		Short: "Show the chapter and volume numbers the filename parser extracts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := config.LoadMerged(config.Options{
				IgnoreConfig: flagIgnoreConfig,
				Debug:        flagDebug,
			})
			if err != nil {
				return err
			}

			parser, err := buildParser(cfg)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(args))
			for _, name := range args {
				info := parser.Parse(name, flagParseTitle)
				rows = append(rows, []string{
					name,
					infoNum(info.Chapter),
					infoNum(info.Volume),
					infoRange(info.Range),
				})
			}

			return ui.RenderTable(os.Stdout, []string{"FILE", "CHAPTER", "VOLUME", "RANGE"}, rows)
		},
	}

	parseCmd.Flags().StringVar(&flagParseTitle, "title", "", "series title the filenames belong to")

	rootCmd.AddCommand(parseCmd)
}

func infoNum(n float64) string {
	if n == 0 {
		return "-"
	}

	return strconv.FormatFloat(n, 'f', -1, 64)
}

func infoRange(r *naming.ChapterRange) string {
	if r == nil {
		return "-"
	}

	return infoNum(r.Start) + "-" + infoNum(r.End)
}
