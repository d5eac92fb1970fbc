// Package lzstring reads and writes the URI-safe variant of the lz-string
// format used by share links, compatible with the JavaScript library's
// compressToEncodedURIComponent and decompressFromEncodedURIComponent.
//
// Compression is delegated to github.com/daku10/go-lz-string. Links
// arrive from untrusted pages, so decompression is done here: it is
// strict about the alphabet, keeps no shared state and stops at
// MaxOutputLength.
package lzstring

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf16"

	golz "github.com/daku10/go-lz-string"
)

// uriAlphabet is the 6-bit alphabet used by the URI-safe encoding. The
// order is part of the wire format.
const uriAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+-$"

const bitsPerChar = 6

// MaxOutputLength bounds the number of UTF-16 code units a single
// decompression may produce. Crafted input can make the output grow
// quadratically in the input length.
const MaxOutputLength = 8 << 20

var (
	ErrInvalidInput = errors.New("lzstring: invalid compressed input")
	ErrTooLarge     = errors.New("lzstring: decompressed output too large")
)

var alphabetIndex = func() [256]int8 {
	var idx [256]int8
	for i := range idx {
		idx[i] = -1
	}
	for i := 0; i < len(uriAlphabet); i++ {
		idx[uriAlphabet[i]] = int8(i)
	}
	return idx
}()

// CompressToEncodedURIComponent compresses s into a string that can be
// placed in a URL query value without further escaping.
func CompressToEncodedURIComponent(s string) (string, error) {
	out, err := golz.CompressToEncodedURIComponent(s)
	if err != nil {
		return "", fmt.Errorf("lzstring: %w", err)
	}
	return out, nil
}

// DecompressFromEncodedURIComponent reverses CompressToEncodedURIComponent.
// A space is read as '+', since form decoding of a query string turns an
// unescaped '+' into a space.
func DecompressFromEncodedURIComponent(s string) (string, error) {
	if s == "" {
		return "", ErrInvalidInput
	}
	s = strings.ReplaceAll(s, " ", "+")

	values := make([]uint8, len(s))
	for i := 0; i < len(s); i++ {
		v := alphabetIndex[s[i]]
		if v < 0 {
			return "", ErrInvalidInput
		}
		values[i] = uint8(v)
	}

	units, err := decompress(values)
	if err != nil {
		return "", err
	}
	return string(utf16.Decode(units)), nil
}

type bitReader struct {
	values   []uint8
	val      int
	position int
	index    int
}

func newBitReader(values []uint8) *bitReader {
	return &bitReader{
		values:   values,
		val:      int(values[0]),
		position: 1 << (bitsPerChar - 1),
		index:    1,
	}
}

// readBits reads n bits, least significant first. Reads past the end of
// the input yield zero bits, as in the reference implementation.
func (r *bitReader) readBits(n int) int {
	bits := 0
	for power := 0; power < n; power++ {
		if r.val&r.position > 0 {
			bits |= 1 << power
		}
		r.position >>= 1
		if r.position == 0 {
			r.position = 1 << (bitsPerChar - 1)
			if r.index < len(r.values) {
				r.val = int(r.values[r.index])
			} else {
				r.val = 0
			}
			r.index++
		}
	}
	return bits
}

func decompress(values []uint8) ([]uint16, error) {
	r := newBitReader(values)
	dictionary := make([][]uint16, 3, 64)
	enlargeIn := 4
	numBits := 3
	total := 0

	var c []uint16
	switch r.readBits(2) {
	case 0:
		c = []uint16{uint16(r.readBits(8))}
	case 1:
		c = []uint16{uint16(r.readBits(16))}
	case 2:
		return nil, nil
	default:
		return nil, ErrInvalidInput
	}
	dictionary = append(dictionary, c)
	w := c
	result := append([]uint16(nil), c...)

	for {
		if r.index > len(values) {
			// Ran out of input without an end marker.
			return nil, ErrInvalidInput
		}

		code := r.readBits(numBits)
		switch code {
		case 0:
			dictionary = append(dictionary, []uint16{uint16(r.readBits(8))})
			code = len(dictionary) - 1
			enlargeIn--
		case 1:
			dictionary = append(dictionary, []uint16{uint16(r.readBits(16))})
			code = len(dictionary) - 1
			enlargeIn--
		case 2:
			return result, nil
		}

		if enlargeIn == 0 {
			enlargeIn = 1 << numBits
			numBits++
		}

		var entry []uint16
		switch {
		case code < len(dictionary) && code >= 3:
			entry = dictionary[code]
		case code == len(dictionary):
			entry = make([]uint16, 0, len(w)+1)
			entry = append(entry, w...)
			entry = append(entry, w[0])
		default:
			return nil, ErrInvalidInput
		}

		total += len(entry)
		if total > MaxOutputLength {
			return nil, ErrTooLarge
		}
		result = append(result, entry...)

		next := make([]uint16, 0, len(w)+1)
		next = append(next, w...)
		next = append(next, entry[0])
		dictionary = append(dictionary, next)
		enlargeIn--

		w = entry

		if enlargeIn == 0 {
			enlargeIn = 1 << numBits
			numBits++
		}
	}
}
