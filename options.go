package emojicodec

import (
	"github.com/rs/zerolog"

	"github.com/yyyoichi/emojicodec/alphabet"
)

type Option func(*Codec) error

// WithAlphabet replaces the default emoji alphabet. Symbol sequences are only
// decodable with the alphabet they were encoded with.
func WithAlphabet(a *alphabet.Alphabet) Option {
	return func(c *Codec) error {
		if a == nil {
			return ErrNilAlphabet
		}
		c.alphabet = a
		return nil
	}
}

// WithLogger sends per-call diagnostics (padding, skipped runes, detected
// frames) to l at debug level.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Codec) error {
		c.logger = l
		return nil
	}
}
