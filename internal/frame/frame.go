// Package frame lays out a named, typed file payload as a flat byte sequence.
//
// Layout:
//
//	0xFF 0xFF | len(name) | len(mime) | name | mime | payload
//
// Both length fields are single bytes, so name and mime are limited to
// MaxFieldLen bytes of UTF-8 each.
package frame

import (
	"github.com/cockroachdb/errors"

	"github.com/yyyoichi/emojicodec/internal/lossy"
)

const (
	// Sentinel is the value of both leading bytes of a frame.
	Sentinel byte = 0b11111111
	// HeaderLen is the size of the fixed part of a frame.
	HeaderLen = 4
	// MaxFieldLen is the longest name or mime a frame can carry, in bytes.
	MaxFieldLen = 255
)

var (
	ErrNameTooLong = errors.New("file name too long for frame")
	ErrMIMETooLong = errors.New("mime type too long for frame")
)

// File is the decoded content of a frame.
type File struct {
	Name    string
	MIME    string
	Payload []byte
}

// Len returns the framed size of f in bytes.
func (f File) Len() int {
	return HeaderLen + len(f.Name) + len(f.MIME) + len(f.Payload)
}

// Marshal returns the framed bytes of f. Name and MIME are written as-is; the
// caller is expected to pass valid UTF-8.
func Marshal(f File) ([]byte, error) {
	if n := len(f.Name); n > MaxFieldLen {
		return nil, errors.Wrapf(ErrNameTooLong, "%d bytes, max %d", n, MaxFieldLen)
	}
	if n := len(f.MIME); n > MaxFieldLen {
		return nil, errors.Wrapf(ErrMIMETooLong, "%d bytes, max %d", n, MaxFieldLen)
	}
	out := make([]byte, 0, f.Len())
	out = append(out, Sentinel, Sentinel, byte(len(f.Name)), byte(len(f.MIME)))
	out = append(out, f.Name...)
	out = append(out, f.MIME...)
	out = append(out, f.Payload...)
	return out, nil
}

// IsFramed reports whether p starts with the frame sentinel.
func IsFramed(p []byte) bool {
	return len(p) >= 2 && p[0] == Sentinel && p[1] == Sentinel
}

// Unmarshal parses a framed byte sequence. The second result is false when p
// does not start with the sentinel.
//
// Unmarshal never fails on a frame that is cut short: a length field that is
// missing reads as zero, and name, mime and payload take whatever bytes are
// left. Name and mime are decoded lossily.
func Unmarshal(p []byte) (File, bool) {
	if !IsFramed(p) {
		return File{}, false
	}
	nameLen, mimeLen := at(p, 2), at(p, 3)
	rest := p[min(len(p), HeaderLen):]
	name, rest := split(rest, nameLen)
	mime, rest := split(rest, mimeLen)
	return File{
		Name:    lossy.String(name),
		MIME:    lossy.String(mime),
		Payload: append([]byte{}, rest...),
	}, true
}

func at(p []byte, i int) int {
	if i < len(p) {
		return int(p[i])
	}
	return 0
}

func split(p []byte, n int) ([]byte, []byte) {
	n = min(n, len(p))
	return p[:n], p[n:]
}
