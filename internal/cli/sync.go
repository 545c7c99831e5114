package cli

import (
	"github.com/mgpai22/subtools/internal/subtitle"
	"github.com/mgpai22/subtools/internal/timing"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Shift every paragraph by a constant offset",
	Long: `Shift every paragraph of a subtitle file by the same number of seconds.

Negative offsets move the subtitles earlier. Times are clamped at zero,
but a paragraph that would collapse to 00:00:00,000 on both ends aborts
the whole operation and nothing is written.

Examples:
  subtools sync -f movie.srt -o 2.5
  subtools sync -f movie.srt -o -1.2 --out fixed.srt`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().
		StringP("file-name", "f", "", "Subtitle file (required)")
	syncCmd.Flags().
		Float64P("offset", "o", 0, "Offset in seconds (required)")

	_ = syncCmd.MarkFlagRequired("file-name")
	_ = syncCmd.MarkFlagRequired("offset")
}

func runSync(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("file-name")
	offset, _ := cmd.Flags().GetFloat64("offset")
	outputPath, _ := cmd.Flags().GetString("out")
	if err := timing.CheckOffset(offset); err != nil {
		return err
	}

	logger.Infow("Synchronizing subtitle",
		"file", path,
		"offset", offset,
	)

	return syncFile(cmd.OutOrStdout(), newProcessor(), path, outputPath,
		func(sub *subtitle.Subtitle) error {
			return timing.Offset(sub, offset)
		})
}
