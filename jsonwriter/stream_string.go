/**
 * Copyright (c) 2019, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package jsonwriter

import "unicode/utf8"

// hex is used to encode a byte as a "\u00XX" escape sequence.
const hex = "0123456789abcdef"

// asciiEscapeRequired holds true for ASCII bytes that Stream.WriteString must escape: the JSON
// control characters (0-31), the double quote, the backslash, and (to be HTML-safe by default,
// matching encoding/json) '<', '>', and '&'.
var asciiEscapeRequired = [utf8.RuneSelf]bool{}

func init() {
	for b := 0; b < 0x20; b++ {
		asciiEscapeRequired[b] = true
	}
	asciiEscapeRequired['"'] = true
	asciiEscapeRequired['\\'] = true
	asciiEscapeRequired['<'] = true
	asciiEscapeRequired['>'] = true
	asciiEscapeRequired['&'] = true
}

// lineOrParagraphSeparator reports whether r is U+2028 (LINE SEPARATOR) or U+2029 (PARAGRAPH
// SEPARATOR). They are technically valid characters in JSON strings, but don't work in JSONP,
// which has to be evaluated as JavaScript, and can lead to security holes there. It is valid
// JSON to escape them, so Stream.WriteString does so unconditionally. See
// http://timelessrepo.com/json-isnt-a-javascript-subset for discussion.
func lineOrParagraphSeparator(r rune) bool {
	return r == ' ' || r == ' '
}

// WriteString writes a quoted, escaped JSON string. Like encoding/json, it escapes '<', '>', '&',
// and U+2028/U+2029 in addition to the characters required by the JSON grammar, so that the
// output is safe to embed in HTML.
func (stream *Stream) WriteString(s string) {
	stream.writeOneByte('"')

	start := 0
	for i := 0; i < len(s); {
		if b := s[i]; b < utf8.RuneSelf {
			if !asciiEscapeRequired[b] {
				i++
				continue
			}
			stream.write([]byte(s[start:i]))
			switch b {
			case '\\', '"':
				stream.writeTwoBytes('\\', b)
			case '\n':
				stream.writeTwoBytes('\\', 'n')
			case '\r':
				stream.writeTwoBytes('\\', 'r')
			case '\t':
				stream.writeTwoBytes('\\', 't')
			default:
				// This encodes bytes < 0x20 except for \t, \n, and \r, as well as <, >, and &
				// because they can lead to security holes when user-controlled strings are
				// rendered into JSON and served to some browsers.
				stream.write([]byte{'\\', 'u', '0', '0', hex[b>>4], hex[b&0xF]})
			}
			i++
			start = i
			continue
		}

		c, size := utf8.DecodeRuneInString(s[i:])
		if c == utf8.RuneError && size == 1 {
			stream.write([]byte(s[start:i]))
			stream.write([]byte("�"))
			i += size
			start = i
			continue
		}

		if lineOrParagraphSeparator(c) {
			stream.write([]byte(s[start:i]))
			stream.write([]byte{'\\', 'u', '2', '0', '2', hex[c&0xF]})
			i += size
			start = i
			continue
		}
		i += size
	}
	stream.write([]byte(s[start:]))
	stream.writeOneByte('"')
}
