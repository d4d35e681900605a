package protocol

import (
	"errors"
	"io"
	"strings"
)

var (
	ErrVarIntTooLong  = errors.New("varint is too long")
	ErrVarLongTooLong = errors.New("varlong is too long")
	ErrPacketTooLarge = errors.New("packet size exceeds maximum allowed")
	ErrInvalidPacket  = errors.New("invalid packet structure")
	ErrSizeLimit      = errors.New("length exceeds declared limit")
	ErrNegativeLength = errors.New("negative length prefix")
	ErrInvalidString  = errors.New("string is not valid UTF-8")
	ErrUnknownEnum    = errors.New("enum ordinal out of range")
	ErrRegistryMiss   = errors.New("id not present in registry snapshot")
	ErrTrailingBytes  = errors.New("trailing bytes after packet body")
	ErrUnknownPacket  = errors.New("unknown packet id")
)

// ErrorKind groups decode failures by how a connection should react to them.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindFormat
	KindSizeLimit
	KindUnknownEnum
	KindRegistryMiss
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindFormat:
		return "format"
	case KindSizeLimit:
		return "size_limit"
	case KindUnknownEnum:
		return "unknown_enum"
	case KindRegistryMiss:
		return "registry_miss"
	default:
		return "unknown"
	}
}

// KindOf classifies err. Registry misses are reported apart from malformed
// input because they mean both endpoints disagree on the registry snapshot.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrRegistryMiss):
		return KindRegistryMiss
	case errors.Is(err, ErrSizeLimit), errors.Is(err, ErrPacketTooLarge):
		return KindSizeLimit
	case errors.Is(err, ErrUnknownEnum), errors.Is(err, ErrUnknownPacket):
		return KindUnknownEnum
	default:
		return KindFormat
	}
}

// DecodeError records the field path at which a decode failed, innermost
// field last: "boss_event.add.color".
type DecodeError struct {
	Path []string
	Err  error
}

func (e *DecodeError) Error() string {
	if len(e.Path) == 0 {
		return "decode: " + e.Err.Error()
	}
	return "decode " + strings.Join(e.Path, ".") + ": " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Field returns the dotted field path of err, or "" if err carries none.
func Field(err error) string {
	var de *DecodeError
	if errors.As(err, &de) {
		return strings.Join(de.Path, ".")
	}
	return ""
}

// WithField prefixes the field path of err with name.
// A truncated stream is normalized to io.ErrUnexpectedEOF since a field was
// expected.
func WithField(name string, err error) error {
	if err == nil {
		return nil
	}
	var de *DecodeError
	if errors.As(err, &de) {
		path := make([]string, 0, len(de.Path)+1)
		path = append(path, name)
		path = append(path, de.Path...)
		return &DecodeError{Path: path, Err: de.Err}
	}
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return &DecodeError{Path: []string{name}, Err: err}
}
