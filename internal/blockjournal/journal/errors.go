package journal

import (
	"errors"
	"fmt"
)

var (
	ErrIncompatibleVersion = errors.New("journal: incompatible version")
	ErrTruncated           = errors.New("journal: truncated")
	ErrCorrupt             = errors.New("journal: corrupt")
)

type ParseErrorKind uint8

const (
	KindTruncated ParseErrorKind = iota
	KindIncompatibleVersion
	KindCorrupt
)

func (k ParseErrorKind) String() string {
	switch k {
	case KindTruncated:
		return "truncated"
	case KindIncompatibleVersion:
		return "incompatible_version"
	case KindCorrupt:
		return "corrupt"
	default:
		return "unknown"
	}
}

// ParseError reports an envelope-level decode failure: a truncated or
// over-long record, or a compat floor above what this build understands.
// Payload field failures are reported as CodecError instead.
type ParseError struct {
	Kind ParseErrorKind
	// StructV and Compat are the version bytes read from the envelope
	// header (zero if the header itself was truncated).
	StructV uint8
	Compat  uint8
	// DeclaredLen is the payload length declared by the envelope.
	DeclaredLen uint32
	Want        int
	Have        int
	Err         error
}

func (e *ParseError) Error() string {
	cause := "<nil>"
	if e.Err != nil {
		cause = e.Err.Error()
	}
	return fmt.Sprintf("journal parse error kind=%s v=%d compat=%d len=%d want=%d have=%d: %s",
		e.Kind.String(), e.StructV, e.Compat, e.DeclaredLen, e.Want, e.Have, cause)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	switch target {
	case ErrTruncated:
		return e.Kind == KindTruncated
	case ErrIncompatibleVersion:
		return e.Kind == KindIncompatibleVersion
	case ErrCorrupt:
		return e.Kind == KindCorrupt
	}
	return false
}

func AsParseError(err error) (*ParseError, bool) {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// IsIncompatibleVersion reports whether err means the record was written
// by software newer than this build can read.
func IsIncompatibleVersion(err error) bool {
	return errors.Is(err, ErrIncompatibleVersion)
}

func IsTruncation(err error) bool {
	return errors.Is(err, ErrTruncated) || errors.Is(err, ErrCodecTruncated)
}

func IsCorruption(err error) bool {
	return errors.Is(err, ErrCorrupt) || errors.Is(err, ErrCodecCorrupt) ||
		errors.Is(err, ErrCodecInvalid)
}

var (
	ErrCodecTruncated = errors.New("journal: codec truncated payload")
	ErrCodecCorrupt   = errors.New("journal: codec corrupt payload")
	ErrCodecInvalid   = errors.New("journal: codec invalid payload")
)

type CodecErrorKind uint8

const (
	CodecTruncated CodecErrorKind = iota
	CodecCorrupt
	CodecInvalid
)

func (k CodecErrorKind) String() string {
	switch k {
	case CodecTruncated:
		return "truncated"
	case CodecCorrupt:
		return "corrupt"
	case CodecInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// CodecError reports a payload field decode failure. Callers must discard
// the partially decoded value; its field contents are unspecified.
type CodecError struct {
	Kind  CodecErrorKind
	Field string // "op_tid", "snap_name", "event_type", etc.
	At    int    // byte offset within the payload where decoding failed
	Want  int
	Have  int
	Err   error
}

func (e *CodecError) Error() string {
	return fmt.Sprintf("journal: codec %s field=%s at=%d want=%d have=%d: %v",
		e.Kind.String(), e.Field, e.At, e.Want, e.Have, e.Err,
	)
}

func (e *CodecError) Unwrap() error { return e.Err }

func (e *CodecError) Is(target error) bool {
	switch target {
	case ErrCodecTruncated:
		return e.Kind == CodecTruncated
	case ErrCodecCorrupt:
		return e.Kind == CodecCorrupt
	case ErrCodecInvalid:
		return e.Kind == CodecInvalid
	default:
		return false
	}
}
