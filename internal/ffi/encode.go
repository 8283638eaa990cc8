package ffi

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Encoding names the byte encoding a native module expects for C strings.
type Encoding string

const (
	EncodingUTF8   Encoding = "utf-8"
	EncodingLatin1 Encoding = "latin1"
)

var (
	ErrInvalidUTF8     = errors.New("invalid UTF-8")
	ErrEmbeddedNUL     = errors.New("contains NUL byte")
	ErrUnterminated    = errors.New("buffer is not NUL-terminated")
	ErrUnknownEncoding = errors.New("unknown encoding")
	ErrUnrepresentable = errors.New("rune not representable")
)

// ParseEncoding accepts the common spellings of the supported encodings.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "utf-8", "utf8":
		return EncodingUTF8, nil
	case "latin1", "latin-1", "iso-8859-1", "iso8859-1":
		return EncodingLatin1, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEncoding, s)
}

// EncodeName converts name to a NUL-terminated byte buffer suitable for a
// const char* argument.
func EncodeName(name string, enc Encoding) ([]byte, error) {
	fail := func(err error) ([]byte, error) {
		return nil, &EncodingError{Name: name, Encoding: enc, Err: err}
	}

	if !utf8.ValidString(name) {
		return fail(ErrInvalidUTF8)
	}
	if i := strings.IndexByte(name, 0); i >= 0 {
		return fail(fmt.Errorf("%w at offset %d", ErrEmbeddedNUL, i))
	}

	var body []byte
	switch enc {
	case EncodingUTF8, "":
		body = []byte(name)
	case EncodingLatin1:
		for i, r := range name {
			if r > 0xFF {
				return fail(fmt.Errorf("%w: %q at offset %d", ErrUnrepresentable, r, i))
			}
		}
		b, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(name))
		if err != nil {
			return fail(err)
		}
		body = b
	default:
		return fail(ErrUnknownEncoding)
	}

	buf := make([]byte, len(body)+1)
	copy(buf, body)
	return buf, nil
}

// DecodeName is the inverse of EncodeName. The buffer must end with exactly
// one NUL byte.
func DecodeName(buf []byte, enc Encoding) (string, error) {
	if len(buf) == 0 || buf[len(buf)-1] != 0 {
		return "", ErrUnterminated
	}
	body := buf[:len(buf)-1]
	if bytes.IndexByte(body, 0) >= 0 {
		return "", ErrEmbeddedNUL
	}

	switch enc {
	case EncodingUTF8, "":
		if !utf8.Valid(body) {
			return "", ErrInvalidUTF8
		}
		return string(body), nil
	case EncodingLatin1:
		s, err := charmap.ISO8859_1.NewDecoder().Bytes(body)
		if err != nil {
			return "", err
		}
		return string(s), nil
	}
	return "", ErrUnknownEncoding
}
