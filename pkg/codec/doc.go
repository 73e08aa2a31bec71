// Package codec recovers league records from Football Pro '98 league blocks.
//
// The league file format has no published schema. Each record begins with a
// four byte tag (see package block) followed by binary data whose layout is
// only known from sample files. The decoders here locate human-readable
// fields with fixed byte-pattern rules and fall back to documented defaults
// when a rule does not match. The offsets and window sizes are pinned:
// changing them breaks compatibility with the sample files the rules were
// derived from.
//
// # Block Layouts
//
// League block ("L03:", or "L02:" in older files):
//
//	[Tag(4)][ ... 200 byte search window ... ]
//
//   - Name: first position in the window holding two consecutive uppercase
//     ASCII letters. Read up to 24 bytes.
//   - Trophy: first occurrence of "Bowl" in the window. The string start is
//     found by walking back over bytes >= 0x20, never into the tag. Read up
//     to 24 bytes.
//   - Seasons and inception are not recoverable and are fixed at 1 and 1995.
//
// Conference ("C03:") and division ("D03:") blocks:
//
//	[Tag(4)][?(4)][ID(1)] ...
//	[Tag(4)][ ... 50 byte search window ... ]
//
//   - Name: first uppercase ASCII letter followed by a lowercase one. Read up
//     to 24 bytes.
//   - ID: the raw byte at tag+8, read whether or not a name was found.
//
// Team block ("T03:"):
//
//	[Tag(4)][Header(8)][?(20)][Name...]
//
//   - Name: up to 49 bytes at tag+32. Accepted only when 1..29 bytes long,
//     then cut to 16 bytes.
//   - Mascot, abbreviation, stadium, coach and the win/loss/tie record are
//     not decoded and always hold placeholders.
//   - ID is the discovery index supplied by the caller.
//
// # Strings
//
// A string read copies bytes until a NUL, the field width, or the end of the
// buffer. The bytes are decoded from IBM code page 437 so output is valid
// UTF-8; ASCII is unchanged. Every read returns a fresh string.
//
// # Error Handling
//
// Decoders never fail and never panic. A heuristic that does not match, an
// offset outside the buffer, or a block truncated by the end of the file all
// produce the default value for the affected field.
package codec
