package subtitle

import (
	"math"
	"time"
)

// Valid reports whether the paragraph is well formed. It never repairs.
func (p *Paragraph) Valid() bool {
	return p.Start >= 0 &&
		p.End > 0 &&
		p.Start < p.End &&
		len(p.Lines) > 0
}

// Shifted computes the start and end after moving the paragraph by
// seconds, clamped at zero. The paragraph itself is not touched.
func (p *Paragraph) Shifted(seconds float64) (time.Duration, time.Duration, error) {
	offset := Seconds(seconds)
	start := max(plus(p.Start, offset), 0)
	end := max(plus(p.End, offset), 0)
	if start == 0 && end == 0 {
		return 0, 0, Errorf(
			KindDegenerateShift,
			"cannot adjust subtitle paragraph %d: becomes zero",
			p.Number,
		)
	}
	return start, end, nil
}

// Shift moves the paragraph by seconds. On error the paragraph is
// unchanged.
func (p *Paragraph) Shift(seconds float64) error {
	start, end, err := p.Shifted(seconds)
	if err != nil {
		return err
	}
	p.Start = start
	p.End = end
	return nil
}

// Rescale maps both timestamps through scale*t + offsetMillis, with t in
// milliseconds. No clamping is applied.
func (p *Paragraph) Rescale(scale, offsetMillis float64) {
	p.Start = rescale(p.Start, scale, offsetMillis)
	p.End = rescale(p.End, scale, offsetMillis)
}

func rescale(d time.Duration, scale, offsetMillis float64) time.Duration {
	return Millis(scale*ToMillis(d) + offsetMillis)
}

// MaxSeconds is the largest whole number of seconds a time.Duration
// can hold.
const MaxSeconds = float64(math.MaxInt64 / int64(time.Second))

// Seconds converts fractional seconds to a duration, rounded to the
// nearest nanosecond. Values beyond the Duration range saturate.
func Seconds(s float64) time.Duration {
	return nanos(s * float64(time.Second))
}

func Millis(ms float64) time.Duration {
	return nanos(ms * float64(time.Millisecond))
}

func nanos(ns float64) time.Duration {
	ns = math.Round(ns)
	switch {
	case ns >= float64(math.MaxInt64):
		return math.MaxInt64
	case ns <= float64(math.MinInt64):
		return math.MinInt64
	}
	return time.Duration(ns)
}

// plus adds without wrapping around.
func plus(d, offset time.Duration) time.Duration {
	sum := d + offset
	if offset > 0 && sum < d {
		return math.MaxInt64
	}
	if offset < 0 && sum > d {
		return math.MinInt64
	}
	return sum
}

func ToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
