// Package timing re-times subtitles under three models: a constant
// offset, piecewise offsets anchored at time points, and a two-point
// linear mapping. Every operation is all-or-nothing: new timestamps are
// computed for the whole subtitle first and only committed when no
// paragraph fails.
package timing

import (
	"fmt"
	"math"
	"time"

	"github.com/mgpai22/subtools/internal/subtitle"
)

// below this the offset is treated as no change
const minOffsetSeconds = 0.001

// reference start times closer than this are considered equal
const minReferenceDeltaMillis = 0.001

// re-timing instruction anchored at a time point
type Segment struct {
	From   time.Duration
	Offset float64
}

// half-open interval [From, To) carrying one offset
type SegmentRange struct {
	From   time.Duration
	To     time.Duration
	Offset float64
}

// pairs a paragraph number with the start time it should have
type VisualPoint struct {
	Paragraph int
	NewStart  time.Duration
}

type span struct {
	start time.Duration
	end   time.Duration
}

// Validate checks every paragraph and returns one diagnostic per
// invalid paragraph.
func Validate(sub *subtitle.Subtitle) (bool, []string) {
	var diagnostics []string
	for _, p := range sub.Paragraphs {
		if p.Valid() {
			continue
		}
		diagnostics = append(diagnostics, fmt.Sprintf(
			"Paragraph %d is not valid. Range: %s, LinesCount: %d",
			p.Number,
			subtitle.FormatRange(p.Start, p.End),
			len(p.Lines),
		))
	}
	return len(diagnostics) == 0, diagnostics
}

// Offset moves every paragraph by seconds.
func Offset(sub *subtitle.Subtitle, seconds float64) error {
	if math.Abs(seconds) < minOffsetSeconds {
		return nil
	}

	pending := make([]span, len(sub.Paragraphs))
	for i, p := range sub.Paragraphs {
		start, end, err := p.Shifted(seconds)
		if err != nil {
			return err
		}
		pending[i] = span{start: start, end: end}
	}

	commit(sub, pending)
	return nil
}

// Segments applies each segment's offset to the paragraphs fully inside
// its range. Segments must be in ascending From order. Paragraphs before
// the first segment or straddling a boundary are left alone.
func Segments(sub *subtitle.Subtitle, segments []Segment) error {
	if len(segments) == 0 || len(sub.Paragraphs) == 0 {
		return nil
	}

	end := sub.Paragraphs[len(sub.Paragraphs)-1].End
	ranges := Ranges(segments, end)

	pending := make([]span, len(sub.Paragraphs))
	for i, p := range sub.Paragraphs {
		pending[i] = span{start: p.Start, end: p.End}
	}

	for _, r := range ranges {
		if r.Offset == 0 {
			continue
		}
		// containment is judged on the original times so a paragraph
		// pushed across a boundary is not shifted twice
		for i, p := range sub.Paragraphs {
			if p.Start < r.From || p.End > r.To {
				continue
			}
			start, end, err := p.Shifted(r.Offset)
			if err != nil {
				return err
			}
			pending[i] = span{start: start, end: end}
		}
	}

	commit(sub, pending)
	return nil
}

// Ranges expands segments into contiguous ranges. Range i ends where
// segment i+1 begins; the last one ends at end.
func Ranges(segments []Segment, end time.Duration) []SegmentRange {
	ranges := make([]SegmentRange, 0, len(segments))
	for i, s := range segments {
		to := end
		if i+1 < len(segments) {
			to = segments[i+1].From
		}
		ranges = append(ranges, SegmentRange{
			From:   s.From,
			To:     to,
			Offset: s.Offset,
		})
	}
	return ranges
}

// Interpolate fits newTime = scale*t + offset through the two reference
// paragraphs and applies it to every paragraph, extrapolating outside
// the reference interval.
func Interpolate(sub *subtitle.Subtitle, first, last VisualPoint) error {
	firstParagraph := sub.Find(first.Paragraph)
	if firstParagraph == nil {
		return subtitle.Errorf(
			subtitle.KindParagraphNotFound,
			"first paragraph %d does not exist in subtitle",
			first.Paragraph,
		)
	}
	lastParagraph := sub.Find(last.Paragraph)
	if lastParagraph == nil {
		return subtitle.Errorf(
			subtitle.KindParagraphNotFound,
			"last paragraph %d does not exist in subtitle",
			last.Paragraph,
		)
	}

	scale, offset, err := Fit(
		firstParagraph.Start, first.NewStart,
		lastParagraph.Start, last.NewStart,
	)
	if err != nil {
		return err
	}

	for _, p := range sub.Paragraphs {
		p.Rescale(scale, offset)
	}
	return nil
}

// Fit returns the scale and millisecond offset of the line through
// (originalFirst, newFirst) and (originalLast, newLast).
func Fit(
	originalFirst, newFirst, originalLast, newLast time.Duration,
) (float64, float64, error) {
	originalDelta := subtitle.ToMillis(originalLast - originalFirst)
	if math.Abs(originalDelta) < minReferenceDeltaMillis {
		return 0, 0, subtitle.ErrDegenerateReferencePoints
	}
	newDelta := subtitle.ToMillis(newLast - newFirst)

	scale := newDelta / originalDelta
	offset := subtitle.ToMillis(newFirst) - scale*subtitle.ToMillis(originalFirst)
	return scale, offset, nil
}

func commit(sub *subtitle.Subtitle, pending []span) {
	for i, p := range sub.Paragraphs {
		p.Start = pending[i].start
		p.End = pending[i].end
	}
}
