package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/mgpai22/subtools/internal/config"
	"github.com/mgpai22/subtools/internal/logging"
	"github.com/mgpai22/subtools/internal/processor"
	"github.com/mgpai22/subtools/internal/subfile"
	"github.com/mgpai22/subtools/internal/subtitle"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	cfg        *config.Config
	logger     *logging.Logger
	files      subfile.FileSystem = subfile.OS{}
)

var errFileNotFound = errors.New("file not found")

var rootCmd = &cobra.Command{
	Use:   "subtools",
	Short: "Re-time and repair SubRip subtitle files",
	Long: `Subtools shifts and re-times SubRip (.srt) subtitle files.

Subtitles can be moved by a constant offset, by different offsets
for different parts of the file, or stretched between two reference
paragraphs whose correct start times are known.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		logger = logging.NewLoggerWithLevel(cfg.Logging.Level, verbose)
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringVarP(&configPath, "config", "c", "", "Config file path (default subtools.yaml or $SUBTOOLS_CONFIG)")
	rootCmd.PersistentFlags().
		String("out", "", "Write the result to this file instead of overwriting the input")
}

func newProcessor() *processor.Processor {
	return processor.New(files, cfg, logger)
}

// syncFile runs one load, sync and save cycle on path while holding its
// lock.
func syncFile(
	out io.Writer,
	proc *processor.Processor,
	path, target string,
	fn func(*subtitle.Subtitle) error,
) error {
	if !files.Exists(path) {
		return fmt.Errorf("%w: %s", errFileNotFound, path)
	}

	unlock, err := subfile.Lock(path)
	if err != nil {
		return err
	}
	defer unlock()

	sub, err := proc.Load(path)
	if err != nil {
		return fmt.Errorf("failed to parse subtitle file: %w", err)
	}

	if err := proc.Sync(sub, target, fn); err != nil {
		var invalidErr *processor.InvalidError
		if errors.As(err, &invalidErr) {
			for _, d := range invalidErr.Diagnostics {
				fmt.Fprintln(out, d)
			}
		}
		return err
	}

	fmt.Fprintln(out, "Subtitle synchronized successfully")
	return nil
}
