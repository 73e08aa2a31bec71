// Package source loads league payloads from disk or memory.
//
// A league file is either the raw binary written by the game, or a C source
// asset that embeds the same bytes as a sequence of 0xHH literals:
//
//	unsigned char lgeDataBlock[] = {
//	    0x4C, 0x30, 0x33, 0x3A, ...
//	};
//
// The representation is chosen by sniffing the first line. Both paths yield
// the same immutable Buffer.
package source

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
)

const (
	hexLiteralType  = "unsigned char"
	hexLiteralIdent = "DataBlock"
)

var hexToken = regexp.MustCompile(`0x([0-9A-Fa-f]{1,2})`)

var errEmptyPayload = errors.New("empty payload")

// IsHexLiteral reports whether line announces an embedded byte array
func IsHexLiteral(line string) bool {
	return strings.Contains(line, hexLiteralType) && strings.Contains(line, hexLiteralIdent)
}

// Load reads the league payload stored at path
func Load(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ioError("open", path, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	first, err := r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, ioError("read", path, err)
	}

	if IsHexLiteral(first) {
		data, err := DecodeHexLiteral(io.MultiReader(strings.NewReader(first), r))
		if err != nil {
			return nil, wrapDecodeError(path, err)
		}
		return newBuffer(data, path, EncodingHexLiteral), nil
	}

	rest, err := io.ReadAll(r)
	if err != nil {
		return nil, ioError("read", path, err)
	}
	data := append([]byte(first), rest...)
	if len(data) == 0 {
		return nil, formatError("load", path, errEmptyPayload)
	}
	return newBuffer(data, path, EncodingRaw), nil
}

// FromBytes applies the same detection as Load to an in-memory payload
func FromBytes(data []byte) (*Buffer, error) {
	first := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		first = data[:i+1]
	}
	if IsHexLiteral(string(first)) {
		decoded, err := DecodeHexLiteral(bytes.NewReader(data))
		if err != nil {
			return nil, wrapDecodeError("", err)
		}
		return newBuffer(decoded, "", EncodingHexLiteral), nil
	}
	if len(data) == 0 {
		return nil, formatError("load", "", errEmptyPayload)
	}
	return newBuffer(data, "", EncodingRaw), nil
}

// DecodeHexLiteral collects every 0xH or 0xHH token in r, in order, as one
// byte each. A text with no tokens is a format error.
func DecodeHexLiteral(r io.Reader) ([]byte, error) {
	text, err := io.ReadAll(r)
	if err != nil {
		return nil, ioError("read", "", err)
	}

	matches := hexToken.FindAllSubmatch(text, -1)
	if len(matches) == 0 {
		return nil, formatError("decode hex literal", "", errEmptyPayload)
	}

	out := make([]byte, 0, len(matches))
	for _, m := range matches {
		v, err := strconv.ParseUint(string(m[1]), 16, 8)
		if err != nil {
			return nil, formatError("decode hex literal", "", err)
		}
		out = append(out, byte(v))
	}
	return out, nil
}

// wrapDecodeError attaches the file path to an error from DecodeHexLiteral
func wrapDecodeError(path string, err error) error {
	var se *Error
	if errors.As(err, &se) {
		return &Error{Op: se.Op, Path: path, Kind: se.Kind, Err: se.Err}
	}
	return formatError("decode hex literal", path, err)
}
