package timing

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mgpai22/subtools/internal/subtitle"
)

var clockRegex = regexp.MustCompile(
	`^(?:(\d+):)?(\d{1,2}):(\d{1,2})(?:[.,](\d{1,3}))?$`,
)

// leaves room for the minutes and seconds on top
const maxClockHours = int(math.MaxInt64 / int64(time.Hour))

// ParseClock reads a visual point time, either "HH:MM:SS[.fff]",
// "MM:SS[.fff]" or plain seconds like "123.456".
func ParseClock(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)

	if matches := clockRegex.FindStringSubmatch(value); matches != nil {
		h := 0
		if matches[1] != "" {
			var err error
			h, err = strconv.Atoi(matches[1])
			if err != nil || h >= maxClockHours {
				return 0, fmt.Errorf("invalid time %q: out of range", value)
			}
		}
		m, _ := strconv.Atoi(matches[2])
		s, _ := strconv.Atoi(matches[3])
		if m > 59 || s > 59 {
			return 0, fmt.Errorf("invalid time %q: minutes and seconds must be below 60", value)
		}
		ms := 0
		if frac := matches[4]; frac != "" {
			// ".5" is half a second, not five milliseconds
			frac += strings.Repeat("0", 3-len(frac))
			ms, _ = strconv.Atoi(frac)
		}
		return time.Duration(h)*time.Hour +
			time.Duration(m)*time.Minute +
			time.Duration(s)*time.Second +
			time.Duration(ms)*time.Millisecond, nil
	}

	seconds, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return 0, fmt.Errorf("invalid time %q", value)
	}
	if seconds < 0 {
		return 0, fmt.Errorf("invalid time %q: must not be negative", value)
	}
	if seconds > subtitle.MaxSeconds {
		return 0, fmt.Errorf("invalid time %q: out of range", value)
	}
	return subtitle.Seconds(seconds), nil
}
