package subtitle

import (
	"path/filepath"
	"strings"
)

// FormatFor picks the codec for a file by its extension.
func FormatFor(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".srt":
		return SubRip{}, nil
	default:
		return nil, Errorf(
			KindUnsupportedFormat,
			"subtitle format '%s' is not supported",
			filepath.Ext(path),
		)
	}
}
