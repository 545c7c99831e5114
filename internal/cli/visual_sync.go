package cli

import (
	"fmt"
	"io"

	"github.com/mgpai22/subtools/internal/subtitle"
	"github.com/mgpai22/subtools/internal/timing"
	"github.com/spf13/cobra"
)

var visualSyncCmd = &cobra.Command{
	Use:   "visual-sync",
	Short: "Stretch a subtitle between two reference paragraphs",
	Long: `Re-time a subtitle from two paragraphs whose correct start times are known.

The two reference points define a linear mapping that is applied to
every paragraph, including those before the first and after the last
reference. Use this when subtitles drift progressively, for example
after a frame rate change.

Times accept HH:MM:SS.fff, MM:SS.fff or plain seconds (ss.fff).

Examples:
  subtools visual-sync -f movie.srt --fp 3 --ft 00:00:41.200 --lp 812 --lt 01:48:02.900
  subtools visual-sync -f movie.srt --fp 1 --ft 12.5 --lp 40 --lt 305`,
	Args: cobra.NoArgs,
	RunE: runVisualSync,
}

func init() {
	rootCmd.AddCommand(visualSyncCmd)

	visualSyncCmd.Flags().
		StringP("file-name", "f", "", "Subtitle file (required)")
	visualSyncCmd.Flags().
		Int("fp", 0, "First paragraph number (required)")
	visualSyncCmd.Flags().
		String("ft", "", "First visual point time (format: HH:mm:ss.fff or ss.fff) (required)")
	visualSyncCmd.Flags().
		Int("lp", 0, "Last paragraph number (required)")
	visualSyncCmd.Flags().
		String("lt", "", "Last visual point time (format: HH:mm:ss.fff or ss.fff) (required)")

	for _, name := range []string{"file-name", "fp", "ft", "lp", "lt"} {
		_ = visualSyncCmd.MarkFlagRequired(name)
	}
}

func runVisualSync(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("file-name")
	firstParagraph, _ := cmd.Flags().GetInt("fp")
	firstTime, _ := cmd.Flags().GetString("ft")
	lastParagraph, _ := cmd.Flags().GetInt("lp")
	lastTime, _ := cmd.Flags().GetString("lt")
	outputPath, _ := cmd.Flags().GetString("out")

	return visualSyncInput(cmd.OutOrStdout(), path, outputPath,
		firstParagraph, firstTime, lastParagraph, lastTime)
}

// visualSyncInput checks the file before the visual points, so a missing
// file is reported first.
func visualSyncInput(
	out io.Writer, path, outputPath string,
	firstParagraph int, firstTime string,
	lastParagraph int, lastTime string,
) error {
	if !files.Exists(path) {
		return fmt.Errorf("%w: %s", errFileNotFound, path)
	}

	first, last, err := visualPoints(firstParagraph, firstTime, lastParagraph, lastTime)
	if err != nil {
		return err
	}
	return visualSync(out, path, outputPath, first, last)
}

func visualPoints(
	firstParagraph int, firstTime string,
	lastParagraph int, lastTime string,
) (timing.VisualPoint, timing.VisualPoint, error) {
	var first, last timing.VisualPoint

	if firstParagraph <= 0 || lastParagraph <= 0 || firstParagraph == lastParagraph {
		return first, last, fmt.Errorf(
			"invalid paragraphs %d and %d",
			firstParagraph,
			lastParagraph,
		)
	}

	firstStart, err := timing.ParseClock(firstTime)
	if err != nil {
		return first, last, fmt.Errorf("invalid time format for first visual point: %w", err)
	}
	lastStart, err := timing.ParseClock(lastTime)
	if err != nil {
		return first, last, fmt.Errorf("invalid time format for last visual point: %w", err)
	}

	first = timing.VisualPoint{Paragraph: firstParagraph, NewStart: firstStart}
	last = timing.VisualPoint{Paragraph: lastParagraph, NewStart: lastStart}
	return first, last, nil
}

func visualSync(out io.Writer, path, outputPath string, first, last timing.VisualPoint) error {
	logger.Infow("Synchronizing subtitle from visual points",
		"file", path,
		"first_paragraph", first.Paragraph,
		"first_start", subtitle.FormatTime(first.NewStart),
		"last_paragraph", last.Paragraph,
		"last_start", subtitle.FormatTime(last.NewStart),
	)

	return syncFile(out, newProcessor(), path, outputPath,
		func(sub *subtitle.Subtitle) error {
			return timing.Interpolate(sub, first, last)
		})
}
