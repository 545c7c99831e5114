package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/mgpai22/subtools/internal/subtitle"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "List the paragraphs of a subtitle and flag problems",
	Long: `Print every paragraph with its timing, reading speed and validity.

Reading speed is characters per second; paragraphs above the
optimal_characters_per_second setting are marked as fast.

Examples:
  subtools info -f movie.srt`,
	Args: cobra.NoArgs,
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().
		StringP("file-name", "f", "", "Subtitle file (required)")

	_ = infoCmd.MarkFlagRequired("file-name")
}

func runInfo(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("file-name")

	if !files.Exists(path) {
		return fmt.Errorf("%w: %s", errFileNotFound, path)
	}

	sub, err := newProcessor().Load(path)
	if err != nil {
		return fmt.Errorf("failed to parse subtitle file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderInfo(sub, cfg.OptimalCharactersPerSecond, shouldStyle(out)))
	return nil
}

func renderInfo(sub *subtitle.Subtitle, optimalCPS int, styled bool) string {
	tw := table.NewWriter()
	if styled {
		tw.SetStyle(table.StyleRounded)
	}
	tw.AppendHeader(table.Row{"#", "Start", "End", "Lines", "CPS", "Status"})

	invalid, fast := 0, 0
	for _, p := range sub.Paragraphs {
		cps := charactersPerSecond(p)
		status := "ok"
		switch {
		case !p.Valid():
			status = "invalid"
			invalid++
		case optimalCPS > 0 && cps > float64(optimalCPS):
			status = "fast"
			fast++
		}
		tw.AppendRow(table.Row{
			p.Number,
			subtitle.FormatTime(p.Start),
			subtitle.FormatTime(p.End),
			len(p.Lines),
			strconv.FormatFloat(cps, 'f', 1, 64),
			status,
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})

	var sb strings.Builder
	sb.WriteString(tw.Render())
	fmt.Fprintf(&sb,
		"\n%s: %d paragraphs, %d invalid, %d fast",
		sub.Type,
		len(sub.Paragraphs),
		invalid,
		fast,
	)
	return sb.String()
}

func charactersPerSecond(p *subtitle.Paragraph) float64 {
	seconds := (p.End - p.Start).Seconds()
	if seconds <= 0 {
		return 0
	}
	chars := 0
	for _, line := range p.Lines {
		chars += utf8.RuneCountInString(line)
	}
	return float64(chars) / seconds
}

func shouldStyle(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
