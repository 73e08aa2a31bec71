package source

import (
	_ "crypto/sha256" // registers the canonical digest algorithm

	"github.com/opencontainers/go-digest"
)

// Encoding names the representation a payload was loaded from
type Encoding string

const (
	EncodingRaw        Encoding = "raw"
	EncodingHexLiteral Encoding = "hex-literal"
)

// Buffer is a loaded league payload. It is immutable once constructed;
// every accessor returns copies or values.
type Buffer struct {
	data     []byte
	path     string
	encoding Encoding
	digest   digest.Digest
}

// NewBuffer wraps a copy of data as a raw payload
func NewBuffer(data []byte) *Buffer {
	return newBuffer(data, "", EncodingRaw)
}

func newBuffer(data []byte, path string, enc Encoding) *Buffer {
	owned := make([]byte, len(data))
	copy(owned, data)
	return &Buffer{
		data:     owned,
		path:     path,
		encoding: enc,
		digest:   digest.FromBytes(owned),
	}
}

// Len returns the payload length in bytes
func (b *Buffer) Len() int {
	return len(b.data)
}

// At returns the byte at offset i and whether i lies inside the payload
func (b *Buffer) At(i int) (byte, bool) {
	if i < 0 || i >= len(b.data) {
		return 0, false
	}
	return b.data[i], true
}

// Bytes returns a copy of the payload
func (b *Buffer) Bytes() []byte {
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out
}

// Path returns the file the payload was loaded from, if any
func (b *Buffer) Path() string {
	return b.path
}

// Encoding returns how the payload was represented on disk
func (b *Buffer) Encoding() Encoding {
	return b.encoding
}

// Digest returns the content digest of the decoded payload. A hex-literal
// source and the binary it embeds share a digest.
func (b *Buffer) Digest() digest.Digest {
	return b.digest
}
