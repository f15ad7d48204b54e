package emojicodec

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"

	"github.com/yyyoichi/emojicodec/alphabet"
	"github.com/yyyoichi/emojicodec/internal/bitbuf"
	"github.com/yyyoichi/emojicodec/internal/frame"
	"github.com/yyyoichi/emojicodec/internal/lossy"
)

var (
	ErrNameTooLong = frame.ErrNameTooLong
	ErrMIMETooLong = frame.ErrMIMETooLong
	ErrNilAlphabet = errors.New("alphabet is nil")
)

// MaxFieldLen is the longest File name or MIME type Encode accepts, in bytes.
const MaxFieldLen = frame.MaxFieldLen

var defaultCodec, _ = New()

// Encode encodes in into a symbol sequence using the default emoji alphabet.
// This is a convenience function that calls Encode on a default Codec.
func Encode(in Input) (string, error) {
	return defaultCodec.Encode(in)
}

// Decode decodes a symbol sequence using the default emoji alphabet.
// This is a convenience function that calls Decode on a default Codec.
func Decode(symbols string) Input {
	return defaultCodec.Decode(symbols)
}

// EncodedLen returns the number of symbols Encode produces for n packed bytes.
func EncodedLen(n int) int {
	return (n*8 + alphabet.Bits - 1) / alphabet.Bits
}

// DecodedLen returns the number of bytes n recognized symbols decode to.
func DecodedLen(n int) int {
	return n * alphabet.Bits / 8
}

// Codec maps byte sequences onto alphabet symbols, 10 bits per symbol.
// A Codec is immutable and safe for concurrent use.
type Codec struct {
	alphabet *alphabet.Alphabet
	logger   zerolog.Logger
}

// New initializes a codec. Without options it uses alphabet.Emoji and
// discards diagnostics.
func New(opts ...Option) (*Codec, error) {
	c := new(Codec)
	if err := c.init(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Codec) init(opts ...Option) error {
	c.logger = zerolog.Nop()
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	if c.alphabet == nil {
		c.alphabet = alphabet.Emoji
	}
	return nil
}

// Alphabet returns the symbol table the codec maps 10-bit values through.
func (c *Codec) Alphabet() *alphabet.Alphabet {
	return c.alphabet
}

// Encode encodes in into a symbol sequence.
//
// Text is packed as its UTF-8 bytes. A File is packed inside a frame; Encode
// returns ErrNameTooLong or ErrMIMETooLong when a field does not fit.
// Text never fails.
func (c *Codec) Encode(in Input) (string, error) {
	p, err := in.bytes()
	if err != nil {
		return "", errors.Wrapf(err, "failed to frame %s input", in.Kind())
	}
	return c.EncodeBytes(p), nil
}

// EncodeBytes encodes p as-is, without any framing.
//
// Process:
//  1. Expands p into bits, most significant bit first.
//  2. Pads with zero bits up to a multiple of 10.
//  3. Maps every 10-bit group onto an alphabet symbol.
func (c *Codec) EncodeBytes(p []byte) string {
	buf := bitbuf.FromBytes(p)
	pad := (alphabet.Bits - buf.Len()%alphabet.Bits) % alphabet.Bits
	buf.PushZeros(pad)
	c.logger.Debug().
		Int("bytes", len(p)).
		Int("padding", pad).
		Msg("encode")

	var sb strings.Builder
	sb.Grow(EncodedLen(len(p)) * 4)
	for {
		i, ok := buf.TakeBits(alphabet.Bits)
		if !ok {
			break
		}
		sb.WriteRune(c.alphabet.SymbolAt(int(i)))
	}
	return sb.String()
}

// Decode decodes a symbol sequence. It returns a File when the decoded bytes
// start with the frame sentinel and Text otherwise.
//
// Decode never fails: runes outside the alphabet are skipped, and malformed
// UTF-8 in the result is replaced with U+FFFD.
func (c *Codec) Decode(symbols string) Input {
	p := c.DecodeBytes(symbols)
	f, ok := frame.Unmarshal(p)
	if !ok {
		return Text(lossy.String(p))
	}
	c.logger.Debug().
		Str("name", f.Name).
		Str("mime", f.MIME).
		Int("size", len(f.Payload)).
		Msg("decoded file frame")
	return File{
		Name:  f.Name,
		MIME:  f.MIME,
		Bytes: f.Payload,
	}
}

// DecodeBytes decodes a symbol sequence into raw bytes, without interpreting
// any framing.
//
// Process:
//  1. Collects the 10-bit index of every alphabet rune, skipping the rest.
//  2. Drops the trailing bitLength%8 bits. These are taken to be encode
//     padding and are not checked.
//  3. Regroups the remaining bits into bytes.
//
// Encoding n bytes with n%5 == 4 pads 8 bits, which survive step 2, so the
// result carries one extra trailing zero byte. Such a sequence is identical
// to the encoding of the same bytes followed by 0x00 and cannot be told apart.
func (c *Codec) DecodeBytes(symbols string) []byte {
	buf := bitbuf.New()
	var recognized, skipped int
	for _, r := range symbols {
		i, ok := c.alphabet.IndexOf(r)
		if !ok {
			skipped++
			continue
		}
		buf.PushBits(uint16(i), alphabet.Bits)
		recognized++
	}
	strip := buf.Len() % 8
	buf.Truncate(buf.Len() - strip)
	c.logger.Debug().
		Int("symbols", recognized).
		Int("skipped", skipped).
		Int("stripped", strip).
		Msg("decode")
	return buf.Bytes()
}

// Count returns how many runes of s belong to the codec's alphabet and how
// many do not.
func (c *Codec) Count(s string) (symbols, others int) {
	return c.alphabet.Count(s)
}
