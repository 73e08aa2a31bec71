package codec

import (
	"golang.org/x/text/encoding/charmap"
)

// readBytes returns a copy of the bytes at off up to the first NUL, limit
// bytes, or the end of data
func readBytes(data []byte, off, limit int) []byte {
	if off < 0 || off >= len(data) || limit <= 0 {
		return nil
	}
	end := off + limit
	if end > len(data) {
		end = len(data)
	}

	out := make([]byte, 0, end-off)
	for _, b := range data[off:end] {
		if b == 0 {
			break
		}
		out = append(out, b)
	}
	return out
}

// ReadString reads a NUL-terminated string of at most width bytes at off
func ReadString(data []byte, off, width int) string {
	return decodeText(readBytes(data, off, width))
}

// decodeText converts code page 437 bytes to UTF-8
func decodeText(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	out, err := charmap.CodePage437.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(out)
}

func isUpper(b byte) bool {
	return b >= 'A' && b <= 'Z'
}

func isLower(b byte) bool {
	return b >= 'a' && b <= 'z'
}
