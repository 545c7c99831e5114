package cli

import (
	"fmt"
	"io"

	"github.com/mgpai22/subtools/internal/subfile"
	"github.com/mgpai22/subtools/internal/subtitle"
	"github.com/spf13/cobra"
)

var fixDiacriticsCmd = &cobra.Command{
	Use:   "fix-diacritics",
	Short: "Replace legacy Romanian diacritics",
	Long: `Replace cedilla and mis-decoded Romanian letters (ş, ţ, º, þ, ã, ...)
with the correct comma-below forms (ș, ț, ă).

The file is rewritten in place unless --out is given.

Examples:
  subtools fix-diacritics -f movie.srt`,
	Args: cobra.NoArgs,
	RunE: runFixDiacritics,
}

func init() {
	rootCmd.AddCommand(fixDiacriticsCmd)

	fixDiacriticsCmd.Flags().
		StringP("file-name", "f", "", "Subtitle file (required)")

	_ = fixDiacriticsCmd.MarkFlagRequired("file-name")
}

func runFixDiacritics(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("file-name")
	outputPath, _ := cmd.Flags().GetString("out")
	return fixDiacritics(cmd.OutOrStdout(), path, outputPath)
}

func fixDiacritics(out io.Writer, path, outputPath string) error {
	if !files.Exists(path) {
		return fmt.Errorf("%w: %s", errFileNotFound, path)
	}

	unlock, err := subfile.Lock(path)
	if err != nil {
		return err
	}
	defer unlock()

	content, err := files.ReadContent(path)
	if err != nil {
		return err
	}

	if cfg.AutoCreateBackup {
		if _, err := subfile.Backup(files, path, cfg.BackupSuffix); err != nil {
			return err
		}
	}

	if outputPath == "" {
		outputPath = path
	}
	if err := files.WriteContent(outputPath, subtitle.FixDiacritics(content)); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	logger.Debugw("Fixed diacritics", "file", path, "output", outputPath)
	fmt.Fprintln(out, "Diacritics fixed successfully")
	return nil
}
