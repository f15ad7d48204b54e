package emojicodec

import (
	"github.com/yyyoichi/emojicodec/internal/frame"
)

// Kind tells the two shapes of Input apart.
type Kind uint8

const (
	KindText Kind = iota + 1
	KindFile
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindFile:
		return "file"
	}
	return "unknown"
}

// Input is what Encode consumes and Decode produces. It is either Text or File.
type Input interface {
	Kind() Kind
	// bytes returns the byte sequence that is bit-packed for this input.
	bytes() ([]byte, error)
}

var (
	_ Input = Text("")
	_ Input = File{}
)

// Text is a plain string, packed as its UTF-8 bytes.
type Text string

func (Text) Kind() Kind { return KindText }

func (t Text) bytes() ([]byte, error) {
	return []byte(t), nil
}

// File is a named, typed byte payload. It is packed inside a frame whose
// name and MIME fields are limited to 255 bytes each.
type File struct {
	Name  string
	MIME  string
	Bytes []byte
}

func (File) Kind() Kind { return KindFile }

func (f File) bytes() ([]byte, error) {
	return frame.Marshal(frame.File{
		Name:    f.Name,
		MIME:    f.MIME,
		Payload: f.Bytes,
	})
}
