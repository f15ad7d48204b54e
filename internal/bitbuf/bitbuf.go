// Package bitbuf provides a growable MSB-first bit buffer on top of bitstream-go.
package bitbuf

import (
	"github.com/yyyoichi/bitstream-go"
)

// MaxWidth is the widest value PushBits and TakeBits accept.
const MaxWidth = 16

// Buffer accumulates bits with PushBits and hands them back, in the same order,
// with TakeBits. Bits are read from the front; Truncate drops bits from the end.
type Buffer struct {
	w *bitstream.BitWriter[uint64]
	r *bitstream.BitReader[uint64]

	// pos is the index of the next bit TakeBits returns.
	pos int
	// limit is the number of readable bits; it never exceeds w.Bits().
	limit int
}

func New() *Buffer {
	return &Buffer{
		w: bitstream.NewBitWriter[uint64](0, 0),
	}
}

// FromBytes returns a buffer holding every bit of p, most significant bit first.
func FromBytes(p []byte) *Buffer {
	b := New()
	for _, v := range p {
		b.w.Write8(0, 8, v)
	}
	b.limit = b.w.Bits()
	return b
}

// PushBits appends the low width bits of value, most significant first.
func (b *Buffer) PushBits(value uint16, width int) {
	if width < 0 || width > MaxWidth {
		panic("bitbuf: width out of range")
	}
	b.w.Write16(MaxWidth-width, width, value)
	b.limit = b.w.Bits()
	// the reader snapshots the writer's data; rebuild it on the next take.
	b.r = nil
}

// PushZeros appends n zero bits.
func (b *Buffer) PushZeros(n int) {
	for ; n > MaxWidth; n -= MaxWidth {
		b.PushBits(0, MaxWidth)
	}
	b.PushBits(0, n)
}

// TakeBits removes the next width bits from the front of the buffer and
// returns them as an MSB-first value. It returns false, consuming nothing,
// when fewer than width bits remain.
//
// A buffer drained at one fixed width is read a whole block per call; after a
// take of another width the read falls back to the largest block size that
// divides both the position and width.
func (b *Buffer) TakeBits(width int) (uint16, bool) {
	if width < 0 || width > MaxWidth {
		panic("bitbuf: width out of range")
	}
	if b.Remaining() < width {
		return 0, false
	}
	if width == 0 {
		return 0, true
	}
	if b.r == nil {
		b.r = bitstream.NewBitReader(b.w.Data(), 0, 0)
		b.r.SetBits(b.w.Bits())
	}
	step := gcd(b.pos, width)
	var v uint16
	for i := 0; i < width; i += step {
		v = v<<step | b.r.Read16R(step, b.pos/step)
		b.pos += step
	}
	return v, true
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Len returns the number of bits pushed and not truncated, including bits
// already taken.
func (b *Buffer) Len() int {
	return b.limit
}

// Remaining returns the number of bits TakeBits can still return.
func (b *Buffer) Remaining() int {
	return b.limit - b.pos
}

// Truncate shortens the buffer to its first n bits. It is a no-op when n is
// not smaller than Len. Bits already taken stay taken.
func (b *Buffer) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n >= b.limit {
		return
	}
	b.limit = n
	if b.pos > n {
		b.pos = n
	}
}

// Bytes drains the remaining bits as whole bytes. A trailing partial byte is
// left in the buffer.
func (b *Buffer) Bytes() []byte {
	out := make([]byte, 0, b.Remaining()/8)
	for {
		v, ok := b.TakeBits(8)
		if !ok {
			return out
		}
		out = append(out, byte(v))
	}
}
