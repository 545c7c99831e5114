package cli

import (
	"fmt"
	"io"

	"github.com/mgpai22/subtools/internal/subtitle"
	"github.com/mgpai22/subtools/internal/timing"
	"github.com/spf13/cobra"
)

var syncPartialCmd = &cobra.Command{
	Use:   "sync-partial",
	Short: "Shift parts of a subtitle by different offsets",
	Long: `Apply a different offset to each part of a subtitle file.

Each segment has the form h:m:s(+|-)offset. A segment's offset applies
to the paragraphs that lie fully between its time and the next
segment's time; the last segment runs to the end of the file.
Paragraphs before the first segment, or crossing a segment boundary,
are left as they are. List segments in ascending time order.

Examples:
  subtools sync-partial -f movie.srt -s 00:00:03+0.3 -s 00:00:07-0.2
  subtools sync-partial -f movie.srt -s 0:10:0+2 -s 0:45:0+0`,
	Args: cobra.NoArgs,
	RunE: runSyncPartial,
}

func init() {
	rootCmd.AddCommand(syncPartialCmd)

	syncPartialCmd.Flags().
		StringP("file-name", "f", "", "Subtitle file (required)")
	syncPartialCmd.Flags().
		StringArrayP("segments", "s", nil, "Time/offset pair in format 'h:m:s(+/-)o', repeatable (required)")

	_ = syncPartialCmd.MarkFlagRequired("file-name")
	_ = syncPartialCmd.MarkFlagRequired("segments")
}

func runSyncPartial(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("file-name")
	adjustments, _ := cmd.Flags().GetStringArray("segments")
	outputPath, _ := cmd.Flags().GetString("out")

	return syncPartial(cmd.OutOrStdout(), path, outputPath, adjustments)
}

func syncPartial(out io.Writer, path, outputPath string, adjustments []string) error {
	if !files.Exists(path) {
		return fmt.Errorf("%w: %s", errFileNotFound, path)
	}

	result := timing.ParseAdjustments(adjustments)
	if !result.OK() {
		for _, msg := range result.Errors {
			fmt.Fprintln(out, msg)
		}
		// the messages are already on out; main prints the error too
		return subtitle.Errorf(subtitle.KindInvalidAdjustmentSyntax,
			"%d invalid adjustment(s)", len(result.Errors))
	}

	logger.Infow("Synchronizing subtitle segments",
		"file", path,
		"segments", len(result.Segments),
	)

	return syncFile(out, newProcessor(), path, outputPath,
		func(sub *subtitle.Subtitle) error {
			return timing.Segments(sub, result.Segments)
		})
}
