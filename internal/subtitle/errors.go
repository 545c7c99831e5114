package subtitle

import "fmt"

// Kind classifies domain failures so callers can handle them uniformly.
type Kind int

const (
	KindDegenerateShift Kind = iota + 1
	KindDegenerateReferencePoints
	KindUnsupportedFormat
	KindInvalidAdjustmentSyntax
	KindParagraphNotFound
	KindInvalidSubtitle
)

func (k Kind) String() string {
	switch k {
	case KindDegenerateShift:
		return "degenerate shift"
	case KindDegenerateReferencePoints:
		return "degenerate reference points"
	case KindUnsupportedFormat:
		return "unsupported format"
	case KindInvalidAdjustmentSyntax:
		return "invalid adjustment syntax"
	case KindParagraphNotFound:
		return "paragraph not found"
	case KindInvalidSubtitle:
		return "invalid subtitle"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches any *Error of the same kind, so the sentinels below work
// with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrDegenerateShift           = &Error{Kind: KindDegenerateShift, Message: "paragraph becomes zero"}
	ErrDegenerateReferencePoints = &Error{Kind: KindDegenerateReferencePoints, Message: "reference points cannot have the same original timestamp"}
	ErrUnsupportedFormat         = &Error{Kind: KindUnsupportedFormat, Message: "subtitle format not supported"}
	ErrInvalidAdjustmentSyntax   = &Error{Kind: KindInvalidAdjustmentSyntax, Message: "invalid adjustment"}
	ErrParagraphNotFound         = &Error{Kind: KindParagraphNotFound, Message: "paragraph not found"}
	ErrInvalidSubtitle           = &Error{Kind: KindInvalidSubtitle, Message: "subtitle is not valid"}
)

func Errorf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
