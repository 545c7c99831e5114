package processor

import (
	"fmt"
	"time"

	"github.com/mgpai22/subtools/internal/config"
	"github.com/mgpai22/subtools/internal/logging"
	"github.com/mgpai22/subtools/internal/subfile"
	"github.com/mgpai22/subtools/internal/subtitle"
	"github.com/mgpai22/subtools/internal/timing"
)

// Processor loads, validates and saves subtitles. Re-timing itself is
// done by the timing package.
type Processor struct {
	files  subfile.FileSystem
	cfg    *config.Config
	logger *logging.Logger
}

func New(files subfile.FileSystem, cfg *config.Config, logger *logging.Logger) *Processor {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Processor{files: files, cfg: cfg, logger: logger}
}

func (p *Processor) Load(path string) (*subtitle.Subtitle, error) {
	format, err := subtitle.FormatFor(path)
	if err != nil {
		return nil, err
	}

	lines, err := p.files.ReadLines(path)
	if err != nil {
		return nil, err
	}

	sub := format.Read(path, lines)
	p.logger.Debugw("Parsed subtitle file",
		"file", path,
		"format", format.Name(),
		"lines", len(lines),
		"paragraphs", len(sub.Paragraphs),
	)
	return sub, nil
}

// Save writes sub to path, or back to the file it came from when path
// is empty. With backups enabled the original file is copied first.
func (p *Processor) Save(sub *subtitle.Subtitle, path string) error {
	format, err := subtitle.FormatFor(sub.OriginalFile)
	if err != nil {
		return err
	}

	if p.cfg.AutoCreateBackup {
		backup, err := subfile.Backup(p.files, sub.OriginalFile, p.cfg.BackupSuffix)
		if err != nil {
			return err
		}
		p.logger.Debugw("Created backup", "file", sub.OriginalFile, "backup", backup)
	}

	target := path
	if target == "" {
		target = sub.OriginalFile
	}

	if err := p.files.WriteLines(target, format.Content(sub)); err != nil {
		return fmt.Errorf("failed to write subtitle file: %w", err)
	}
	p.logger.Debugw("Wrote subtitle file",
		"file", target,
		"paragraphs", len(sub.Paragraphs),
	)
	return nil
}

// Validate logs one warning per invalid paragraph and returns the same
// diagnostics.
func (p *Processor) Validate(sub *subtitle.Subtitle) (bool, []string) {
	valid, diagnostics := timing.Validate(sub)
	for _, para := range sub.Paragraphs {
		if para.Valid() {
			continue
		}
		p.logger.Warnw("Invalid paragraph",
			"paragraph", para.Number,
			"start", subtitle.FormatTime(para.Start),
			"end", subtitle.FormatTime(para.End),
			"lines", len(para.Lines),
		)
	}
	return valid, diagnostics
}

// Sync validates, applies fn, re-validates and saves to target (see
// Save). Nothing is written unless the subtitle is valid on both sides
// of fn. When fn fails or leaves sub invalid, sub gets its original
// times back.
func (p *Processor) Sync(
	sub *subtitle.Subtitle,
	target string,
	fn func(*subtitle.Subtitle) error,
) error {
	if ok, diagnostics := p.Validate(sub); !ok {
		return invalid(diagnostics)
	}
	restore := snapshot(sub)
	if err := fn(sub); err != nil {
		restore()
		return err
	}
	if ok, diagnostics := p.Validate(sub); !ok {
		restore()
		return invalid(diagnostics)
	}
	return p.Save(sub, target)
}

func snapshot(sub *subtitle.Subtitle) func() {
	type times struct{ start, end time.Duration }
	saved := make([]times, len(sub.Paragraphs))
	for i, para := range sub.Paragraphs {
		saved[i] = times{para.Start, para.End}
	}
	return func() {
		for i, para := range sub.Paragraphs {
			if i < len(saved) {
				para.Start, para.End = saved[i].start, saved[i].end
			}
		}
	}
}

// InvalidError carries the diagnostics of a failed validation.
type InvalidError struct {
	Diagnostics []string
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("subtitle has %d invalid paragraph(s)", len(e.Diagnostics))
}

func (e *InvalidError) Unwrap() error {
	return subtitle.ErrInvalidSubtitle
}

func invalid(diagnostics []string) error {
	return &InvalidError{Diagnostics: diagnostics}
}
