package timing

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/mgpai22/subtools/internal/subtitle"
)

func seconds(s float64) time.Duration {
	return subtitle.Seconds(s)
}

func newSubtitle(starts ...float64) *subtitle.Subtitle {
	sub := &subtitle.Subtitle{Type: "SubRip", OriginalFile: "Subtitle.srt"}
	for i, s := range starts {
		sub.Paragraphs = append(sub.Paragraphs, &subtitle.Paragraph{
			Number: i + 1,
			Start:  seconds(s),
			End:    seconds(s + 1),
			Lines:  []string{"Subtitle Line"},
		})
	}
	return sub
}

func starts(sub *subtitle.Subtitle) []time.Duration {
	out := make([]time.Duration, len(sub.Paragraphs))
	for i, p := range sub.Paragraphs {
		out[i] = p.Start
	}
	return out
}

func snapshot(sub *subtitle.Subtitle) []subtitle.Paragraph {
	out := make([]subtitle.Paragraph, len(sub.Paragraphs))
	for i, p := range sub.Paragraphs {
		out[i] = *p
	}
	return out
}

func TestValidate(t *testing.T) {
	sub := newSubtitle(1, 4)
	ok, diagnostics := Validate(sub)
	if !ok || len(diagnostics) != 0 {
		t.Fatalf("expected valid subtitle, got %v", diagnostics)
	}

	sub.Paragraphs = append(sub.Paragraphs,
		&subtitle.Paragraph{Number: 3},
		&subtitle.Paragraph{Number: 4, Start: seconds(2), End: seconds(1), Lines: []string{"x"}},
	)
	ok, diagnostics = Validate(sub)
	if ok {
		t.Fatal("expected invalid subtitle")
	}
	if len(diagnostics) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d: %v", len(diagnostics), diagnostics)
	}
	want := "Paragraph 3 is not valid. Range: 00:00:00,000 --> 00:00:00,000, LinesCount: 0"
	if diagnostics[0] != want {
		t.Errorf("diagnostic = %q, want %q", diagnostics[0], want)
	}
	if !strings.HasPrefix(diagnostics[1], "Paragraph 4 ") {
		t.Errorf("unexpected diagnostic %q", diagnostics[1])
	}
}

func TestOffset(t *testing.T) {
	sub := newSubtitle(1)
	if err := Offset(sub, 1); err != nil {
		t.Fatalf("Offset returned error: %v", err)
	}
	p := sub.Paragraphs[0]
	if p.Start != 2*time.Second || p.End != 3*time.Second {
		t.Errorf("expected 2s --> 3s, got %v --> %v", p.Start, p.End)
	}
}

func TestOffsetBelowThresholdIsNoop(t *testing.T) {
	for _, s := range []float64{0, 0.0009, -0.0009} {
		sub := newSubtitle(1, 4)
		before := snapshot(sub)
		if err := Offset(sub, s); err != nil {
			t.Fatalf("Offset(%v) returned error: %v", s, err)
		}
		if diff := cmp.Diff(before, snapshot(sub)); diff != "" {
			t.Errorf("Offset(%v) changed paragraphs:\n%s", s, diff)
		}
	}
}

func TestOffsetClampsAtZero(t *testing.T) {
	sub := newSubtitle(0.5, 4)
	if err := Offset(sub, -1); err != nil {
		t.Fatalf("Offset returned error: %v", err)
	}
	want := []time.Duration{0, 3 * time.Second}
	if diff := cmp.Diff(want, starts(sub)); diff != "" {
		t.Errorf("starts mismatch (-want +got):\n%s", diff)
	}
	if sub.Paragraphs[0].End != 500*time.Millisecond {
		t.Errorf("expected end 0.5s, got %v", sub.Paragraphs[0].End)
	}
}

func TestOffsetDegenerateLeavesSubtitleUntouched(t *testing.T) {
	sub := newSubtitle(10, 20, 1)
	before := snapshot(sub)

	err := Offset(sub, -5)
	if !errors.Is(err, subtitle.ErrDegenerateShift) {
		t.Fatalf("expected degenerate shift, got %v", err)
	}
	if !strings.Contains(err.Error(), "paragraph 3") {
		t.Errorf("error should name the paragraph, got %q", err.Error())
	}
	if diff := cmp.Diff(before, snapshot(sub)); diff != "" {
		t.Errorf("subtitle mutated on failure:\n%s", diff)
	}
}

func TestSegmentsEmptyIsNoop(t *testing.T) {
	sub := newSubtitle(1, 4)
	before := snapshot(sub)
	if err := Segments(sub, nil); err != nil {
		t.Fatalf("Segments returned error: %v", err)
	}
	if diff := cmp.Diff(before, snapshot(sub)); diff != "" {
		t.Errorf("empty segment list changed paragraphs:\n%s", diff)
	}
}

func TestSegmentsFromSegmentToEnd(t *testing.T) {
	sub := newSubtitle(1, 4, 6, 10, 12)
	segments := []Segment{{From: 3 * time.Second, Offset: 1}}

	if err := Segments(sub, segments); err != nil {
		t.Fatalf("Segments returned error: %v", err)
	}

	want := []time.Duration{seconds(1), seconds(5), seconds(7), seconds(11), seconds(13)}
	if diff := cmp.Diff(want, starts(sub)); diff != "" {
		t.Errorf("starts mismatch (-want +got):\n%s", diff)
	}
	if sub.Paragraphs[4].End != seconds(14) {
		t.Errorf("last paragraph end = %v, want 14s", sub.Paragraphs[4].End)
	}
}

func TestSegmentsTwoRanges(t *testing.T) {
	sub := newSubtitle(1, 4, 6, 10, 12)
	segments := []Segment{
		{From: 3 * time.Second, Offset: 1},
		{From: 9 * time.Second, Offset: -1},
	}

	if err := Segments(sub, segments); err != nil {
		t.Fatalf("Segments returned error: %v", err)
	}

	want := []time.Duration{seconds(1), seconds(5), seconds(7), seconds(9), seconds(11)}
	if diff := cmp.Diff(want, starts(sub)); diff != "" {
		t.Errorf("starts mismatch (-want +got):\n%s", diff)
	}
}

func TestSegmentsFromAdjustmentStrings(t *testing.T) {
	sub := newSubtitle(1, 4, 6, 9.7, 12)
	result := ParseAdjustments([]string{"00:00:03+0.3", "00:00:07-0.2", "00:00:11+0"})
	if !result.OK() {
		t.Fatalf("unexpected parse errors: %v", result.Errors)
	}

	if err := Segments(sub, result.Segments); err != nil {
		t.Fatalf("Segments returned error: %v", err)
	}

	want := []time.Duration{seconds(1), seconds(4.3), seconds(6.3), seconds(9.5), seconds(12)}
	if diff := cmp.Diff(want, starts(sub)); diff != "" {
		t.Errorf("starts mismatch (-want +got):\n%s", diff)
	}
}

func TestSegmentsLeavesStraddlingParagraph(t *testing.T) {
	sub := newSubtitle(1, 4)
	sub.Paragraphs[1].End = seconds(8)
	segments := []Segment{
		{From: 3 * time.Second, Offset: 1},
		{From: 6 * time.Second, Offset: 2},
	}

	if err := Segments(sub, segments); err != nil {
		t.Fatalf("Segments returned error: %v", err)
	}

	if sub.Paragraphs[1].Start != seconds(4) {
		t.Errorf("straddling paragraph moved to %v", sub.Paragraphs[1].Start)
	}
}

func TestSegmentsShiftEachParagraphOnce(t *testing.T) {
	sub := newSubtitle(1, 5.5, 9)
	sub.Paragraphs[1].End = seconds(5.8)
	segments := []Segment{
		{From: 3 * time.Second, Offset: 2},
		{From: 6 * time.Second, Offset: 1},
	}

	if err := Segments(sub, segments); err != nil {
		t.Fatalf("Segments returned error: %v", err)
	}

	want := []time.Duration{seconds(1), seconds(7.5), seconds(10)}
	if diff := cmp.Diff(want, starts(sub)); diff != "" {
		t.Errorf("starts mismatch (-want +got):\n%s", diff)
	}
}

func TestSegmentsDegenerateLeavesSubtitleUntouched(t *testing.T) {
	sub := newSubtitle(1, 4, 6)
	before := snapshot(sub)
	segments := []Segment{
		{From: 0, Offset: 0.5},
		{From: 3 * time.Second, Offset: -10},
	}

	err := Segments(sub, segments)
	if !errors.Is(err, subtitle.ErrDegenerateShift) {
		t.Fatalf("expected degenerate shift, got %v", err)
	}
	if diff := cmp.Diff(before, snapshot(sub)); diff != "" {
		t.Errorf("subtitle mutated on failure:\n%s", diff)
	}
}

func TestRanges(t *testing.T) {
	segments := []Segment{
		{From: 3 * time.Second, Offset: 0.3},
		{From: 7 * time.Second, Offset: -0.2},
	}
	got := Ranges(segments, 13*time.Second)
	want := []SegmentRange{
		{From: 3 * time.Second, To: 7 * time.Second, Offset: 0.3},
		{From: 7 * time.Second, To: 13 * time.Second, Offset: -0.2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ranges mismatch (-want +got):\n%s", diff)
	}
}

func TestInterpolate(t *testing.T) {
	sub := newSubtitle(1, 5, 10)
	first := VisualPoint{Paragraph: 1, NewStart: 2 * time.Second}
	last := VisualPoint{Paragraph: 3, NewStart: 20 * time.Second}

	if err := Interpolate(sub, first, last); err != nil {
		t.Fatalf("Interpolate returned error: %v", err)
	}

	want := []time.Duration{seconds(2), seconds(10), seconds(20)}
	if diff := cmp.Diff(want, starts(sub)); diff != "" {
		t.Errorf("starts mismatch (-want +got):\n%s", diff)
	}
	if sub.Paragraphs[2].End != seconds(22) {
		t.Errorf("last end = %v, want 22s", sub.Paragraphs[2].End)
	}
}

func TestInterpolateExtrapolates(t *testing.T) {
	sub := newSubtitle(2, 4, 6, 8)
	first := VisualPoint{Paragraph: 2, NewStart: 5 * time.Second}
	last := VisualPoint{Paragraph: 3, NewStart: 7 * time.Second}

	if err := Interpolate(sub, first, last); err != nil {
		t.Fatalf("Interpolate returned error: %v", err)
	}

	want := []time.Duration{seconds(3), seconds(5), seconds(7), seconds(9)}
	if diff := cmp.Diff(want, starts(sub)); diff != "" {
		t.Errorf("starts mismatch (-want +got):\n%s", diff)
	}
}

func TestInterpolateSameOriginalStart(t *testing.T) {
	sub := newSubtitle(1, 4)
	sub.Paragraphs[1].Start = sub.Paragraphs[0].Start
	before := snapshot(sub)

	err := Interpolate(sub,
		VisualPoint{Paragraph: 1, NewStart: time.Second},
		VisualPoint{Paragraph: 2, NewStart: 3 * time.Second},
	)
	if !errors.Is(err, subtitle.ErrDegenerateReferencePoints) {
		t.Fatalf("expected degenerate reference points, got %v", err)
	}
	if diff := cmp.Diff(before, snapshot(sub)); diff != "" {
		t.Errorf("subtitle mutated on failure:\n%s", diff)
	}
}

func TestInterpolateMissingParagraph(t *testing.T) {
	sub := newSubtitle(1, 4)
	err := Interpolate(sub,
		VisualPoint{Paragraph: 1, NewStart: time.Second},
		VisualPoint{Paragraph: 9, NewStart: 3 * time.Second},
	)
	if !errors.Is(err, subtitle.ErrParagraphNotFound) {
		t.Fatalf("expected paragraph not found, got %v", err)
	}
}

func TestFit(t *testing.T) {
	scale, offset, err := Fit(seconds(1), seconds(2), seconds(10), seconds(20))
	if err != nil {
		t.Fatalf("Fit returned error: %v", err)
	}
	if scale != 2 {
		t.Errorf("scale = %v, want 2", scale)
	}
	if offset != 0 {
		t.Errorf("offset = %v, want 0", offset)
	}
}
