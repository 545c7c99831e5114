package subtitle

import (
	"path/filepath"
	"time"
)

// represents a single timed cue
type Paragraph struct {
	Number int
	Start  time.Duration
	End    time.Duration
	Lines  []string
}

// represents a complete subtitle document
type Subtitle struct {
	Type         string
	OriginalFile string
	Paragraphs   []*Paragraph
}

// Extension of the file the subtitle was read from, including the dot.
func (s *Subtitle) Extension() string {
	return filepath.Ext(s.OriginalFile)
}

// Find returns the first paragraph carrying number, or nil.
func (s *Subtitle) Find(number int) *Paragraph {
	for _, p := range s.Paragraphs {
		if p.Number == number {
			return p
		}
	}
	return nil
}

// interface for line oriented subtitle codecs
type Format interface {
	Name() string
	Read(file string, lines []string) *Subtitle
	Content(sub *Subtitle) []string
}
