package subtitle

import (
	"fmt"
	"strconv"
	"time"
)

// Content renders the paragraphs in document order. Each block ends with
// one blank separator line.
func (SubRip) Content(sub *Subtitle) []string {
	lines := make([]string, 0, len(sub.Paragraphs)*4)
	for _, p := range sub.Paragraphs {
		lines = append(lines, strconv.Itoa(p.Number))
		lines = append(lines, FormatRange(p.Start, p.End))
		lines = append(lines, p.Lines...)
		lines = append(lines, "")
	}
	return lines
}

// timestamps: 00:00:00,000 --> 00:00:00,000
func FormatRange(start, end time.Duration) string {
	return fmt.Sprintf("%s --> %s", FormatTime(start), FormatTime(end))
}

func FormatTime(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	millis := int(d.Milliseconds()) % 1000

	return fmt.Sprintf("%s%02d:%02d:%02d,%03d", sign, hours, minutes, seconds, millis)
}
