// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package content

// Escaping codecs for the two notations that need them: parenthesized
// strings and #-escaped identifiers.

// appendParenString appends the parenthesized-string rendering of s to
// dst. Backslashes are always doubled. The notation allows balanced,
// unescaped parentheses inside a string, so parentheses are escaped
// only when the payload's open/close counts do not balance.
func appendParenString(dst, s []byte) []byte {
	depth := 0
	for _, c := range s {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
		}
	}
	escapeParens := depth != 0

	dst = append(dst, '(')
	for _, c := range s {
		switch {
		case c == '\\':
			dst = append(dst, '\\', '\\')
		case escapeParens && (c == '(' || c == ')'):
			dst = append(dst, '\\', c)
		default:
			dst = append(dst, c)
		}
	}
	return append(dst, ')')
}

const upperHexDigits = "0123456789ABCDEF"

// needsIDEscape reports whether byte c must be written in #HH notation
// inside an identifier: controls and space, the delimiter set, '#'
// itself, and everything past ASCII.
func needsIDEscape(c byte) bool {
	return c <= 0x20 || c >= 0x7F || c == '#' || isDelim(c)
}

// appendEscapedID appends the identifier text with every byte outside
// the regular set rendered as '#' and two uppercase hex digits.
func appendEscapedID(dst []byte, text string) []byte {
	for i := 0; i < len(text); i++ {
		c := text[i]
		if needsIDEscape(c) {
			dst = append(dst, '#', upperHexDigits[c>>4], upperHexDigits[c&0xF])
		} else {
			dst = append(dst, c)
		}
	}
	return dst
}

// unescapeID decodes #HH notation in identifier source text. A '#'
// not followed by exactly two hex digits is a syntax error. Operators
// never pass through here; their text is taken literally.
func unescapeID(text string) (string, error) {
	i := 0
	for i < len(text) && text[i] != '#' {
		i++
	}
	if i == len(text) {
		return text, nil
	}
	out := make([]byte, i, len(text))
	copy(out, text)
	for ; i < len(text); i++ {
		c := text[i]
		if c != '#' {
			out = append(out, c)
			continue
		}
		if i+2 >= len(text) {
			return "", syntaxErrorf("invalid #-notation in name %q", text)
		}
		hi, lo := unhex(text[i+1]), unhex(text[i+2])
		if hi < 0 || lo < 0 {
			return "", syntaxErrorf("invalid #-notation in name %q", text)
		}
		out = append(out, byte(hi<<4|lo))
		i += 2
	}
	return string(out), nil
}

func unhex(c byte) int {
	return int(hexTable[c])
}

// hexTable maps a byte to its hex-digit value, or -1 for non-digits.
// A lookup table beats a switch on this hot path.
var hexTable = [256]int8{
	'0': 0, '1': 1, '2': 2, '3': 3, '4': 4, '5': 5, '6': 6, '7': 7, '8': 8, '9': 9,
	'a': 10, 'b': 11, 'c': 12, 'd': 13, 'e': 14, 'f': 15,
	'A': 10, 'B': 11, 'C': 12, 'D': 13, 'E': 14, 'F': 15,
}

func init() {
	for i := range hexTable {
		if hexTable[i] == 0 && i != '0' {
			hexTable[i] = -1
		}
	}
}
