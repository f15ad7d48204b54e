// Package compress shrinks file payloads before they are encoded. The codec
// itself never compresses; this is an opt-in step of the command line tool.
package compress

import (
	"bytes"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/zstd"
)

const (
	MIME   = "application/zstd"
	Suffix = ".zst"
)

func Compress(buf []byte) ([]byte, error) {
	w := bytes.NewBuffer(nil)
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create zstd writer")
	}
	_, err = enc.Write(buf)
	if err != nil {
		enc.Close()
		return nil, errors.Wrap(err, "failed to compress")
	}
	err = enc.Close()
	if err != nil {
		return nil, errors.Wrap(err, "failed to flush zstd writer")
	}
	return w.Bytes(), nil
}

func Decompress(buf []byte) ([]byte, error) {
	w := bytes.NewBuffer(nil)
	dec, err := zstd.NewReader(bytes.NewReader(buf))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create zstd reader")
	}
	defer dec.Close()

	_, err = w.ReadFrom(dec)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decompress")
	}
	return w.Bytes(), nil
}

// Name returns the file name a compressed payload is stored under.
func Name(name string) string {
	return name + Suffix
}

// Original strips the suffix Name adds.
func Original(name string) string {
	return strings.TrimSuffix(name, Suffix)
}
