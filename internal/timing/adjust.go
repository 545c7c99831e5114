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

// h:m:s followed by a sign and the offset in seconds
var adjustmentRegex = regexp.MustCompile(
	`^(\d{1,2}):(\d{1,2}):(\d{1,2})([+-])(.+)$`,
)

// AdjustmentResult keeps every segment that parsed and one message per
// entry that did not, both in input order.
type AdjustmentResult struct {
	Segments []Segment
	Errors   []string
}

func (r AdjustmentResult) OK() bool {
	return len(r.Errors) == 0
}

// Err folds the collected messages into a single error, or nil.
func (r AdjustmentResult) Err() error {
	if r.OK() {
		return nil
	}
	return &subtitle.Error{
		Kind:    subtitle.KindInvalidAdjustmentSyntax,
		Message: strings.Join(r.Errors, "\n"),
	}
}

// CheckOffset rejects offsets in seconds that are not finite or do not
// fit in a time.Duration.
func CheckOffset(seconds float64) error {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) ||
		math.Abs(seconds) > subtitle.MaxSeconds {
		return fmt.Errorf("offset %v is out of range", seconds)
	}
	return nil
}

// ParseAdjustments parses strings like "00:00:03+0.3" without stopping
// at the first bad entry.
func ParseAdjustments(adjustments []string) AdjustmentResult {
	var result AdjustmentResult
	for _, adjustment := range adjustments {
		input := strings.TrimSpace(adjustment)
		matches := adjustmentRegex.FindStringSubmatch(input)
		if matches == nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Could not parse segment string '%s'", input))
			continue
		}

		offset, err := strconv.ParseFloat(matches[5], 64)
		if err != nil || CheckOffset(offset) != nil {
			result.Errors = append(result.Errors, fmt.Sprintf(
				"Could not parse offset value '%s' in '%s'",
				matches[5],
				input,
			))
			continue
		}
		if matches[4] == "-" {
			offset = -offset
		}

		h, _ := strconv.Atoi(matches[1])
		m, _ := strconv.Atoi(matches[2])
		s, _ := strconv.Atoi(matches[3])

		result.Segments = append(result.Segments, Segment{
			From: time.Duration(h)*time.Hour +
				time.Duration(m)*time.Minute +
				time.Duration(s)*time.Second,
			Offset: offset,
		})
	}
	return result
}
