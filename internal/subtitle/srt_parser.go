package subtitle

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var timestampRegex = regexp.MustCompile(
	`(\d{2}):(\d{2}):(\d{2}),(\d{3})\s*-->\s*(\d{2}):(\d{2}):(\d{2}),(\d{3})`,
)

// SubRip format
type SubRip struct{}

func (SubRip) Name() string {
	return "SubRip"
}

type readState int

const (
	expectingBlock readState = iota
	insideBlock
)

// Read never fails. Lines it cannot place are kept as text of the
// current paragraph, or dropped when no paragraph has been started yet.
func (SubRip) Read(file string, lines []string) *Subtitle {
	sub := &Subtitle{Type: SubRip{}.Name(), OriginalFile: file}

	var current *Paragraph
	state := expectingBlock

	for _, line := range lines {
		// only an empty line separates blocks; " " is cue text
		if line == "" {
			state = expectingBlock
			continue
		}

		if state == expectingBlock {
			if number, err := strconv.Atoi(strings.TrimSpace(line)); err == nil {
				current = &Paragraph{Number: number}
				sub.Paragraphs = append(sub.Paragraphs, current)
				state = insideBlock
				continue
			}
		}

		if start, end, ok := parseTimestampRange(line); ok {
			if current != nil {
				current.Start = start
				current.End = end
			}
			state = insideBlock
			continue
		}

		// content before the first numbered block has no owner
		if current == nil {
			continue
		}
		current.Lines = append(current.Lines, line)
	}

	return sub
}

func parseTimestampRange(line string) (time.Duration, time.Duration, bool) {
	matches := timestampRegex.FindStringSubmatch(line)
	if len(matches) != 9 {
		return 0, 0, false
	}
	start := parseSRTTimestamp(matches[1], matches[2], matches[3], matches[4])
	end := parseSRTTimestamp(matches[5], matches[6], matches[7], matches[8])
	return start, end, true
}

// components are guaranteed digits by the regex
func parseSRTTimestamp(hours, minutes, seconds, millis string) time.Duration {
	h, _ := strconv.Atoi(hours)
	m, _ := strconv.Atoi(minutes)
	s, _ := strconv.Atoi(seconds)
	ms, _ := strconv.Atoi(millis)

	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(ms)*time.Millisecond
}
