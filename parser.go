// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

// Tokenizing and recursive-descent parsing of content-stream bytes.

package content

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/sassoftware/viya-pdf-content/logger"
)

// DefaultMaxDepth is the composite nesting depth allowed when
// ContentParser.MaxDepth is left zero. Real content streams nest a
// handful of levels at most; the cap exists to stop adversarial input
// from exhausting the call stack.
const DefaultMaxDepth = 256

// A ContentParser reads a content stream as a lazy, forward-only
// sequence of Values. The input must already be decoded: stream
// filters are applied by the document layer before the bytes get here.
//
// Each call to Next returns the next complete object in source order.
// Clean exhaustion at an object boundary is reported as io.EOF;
// running out of input anywhere inside an object is a *SyntaxError.
type ContentParser struct {
	src *pushback[byte]

	// MaxDepth caps composite nesting depth. Zero means
	// DefaultMaxDepth.
	MaxDepth int
}

// NewContentParser returns a parser over data.
func NewContentParser(data []byte) *ContentParser {
	i := 0
	return &ContentParser{src: newPushback(func() (byte, bool) {
		if i >= len(data) {
			return 0, false
		}
		c := data[i]
		i++
		return c, true
	})}
}

// NewContentParserReader returns a parser pulling bytes from r. Any
// read error, io.EOF included, is treated as end of input.
func NewContentParserReader(r io.ByteReader) *ContentParser {
	return &ContentParser{src: newPushback(func() (byte, bool) {
		c, err := r.ReadByte()
		if err != nil {
			return 0, false
		}
		return c, true
	})}
}

// Parse decodes a whole content stream at once, returning its objects
// in source order.
func Parse(data []byte) ([]Value, error) {
	p := NewContentParser(data)
	var objs []Value
	for {
		obj, err := p.Next()
		if err == io.EOF {
			logger.Debug(fmt.Sprintf("parse complete: %d objects", len(objs)))
			return objs, nil
		}
		if err != nil {
			return nil, err
		}
		objs = append(objs, obj)
	}
}

// Next returns the next object in the stream. At a clean object
// boundary with no input left it returns io.EOF. The composite-close
// markers ']', '}' and '>>' are returned as their interned Operators
// when they appear outside any composite; rejecting such strays is the
// caller's responsibility.
func (p *ContentParser) Next() (Value, error) {
	return p.next(0)
}

// All content-stream numbers match this grammar: optional sign, at
// least one digit, at most one decimal point.
var numberPattern = regexp.MustCompile(`^[+-]?(?:[0-9]+\.?|[0-9]*\.[0-9]+)$`)

func (p *ContentParser) next(depth int) (Value, error) {
	c, err := p.readSignificant()
	if err != nil {
		return Value{}, err
	}

	switch c {
	case '/':
		return p.parseNameLiteral()
	case '(':
		return p.parseParenString()
	case '[':
		return p.parseArray(false, depth)
	case '{':
		return p.parseArray(true, depth)

	case '<':
		c2, ok := p.src.Next()
		if !ok {
			return Value{}, syntaxErrorf("end of input after '<'")
		}
		if c2 == '<' {
			d, err := p.parseDict(false, depth)
			if err != nil {
				return Value{}, err
			}
			return d.Value(), nil
		}
		if unhex(c2) >= 0 || isSpace(c2) {
			p.src.PushBack(c2)
			return p.parseHexString()
		}
		return Value{}, syntaxErrorf("invalid hexadecimal string - begins with %q", c2)

	// ending delimiters
	case ')':
		return Value{}, syntaxErrorf("close parenthesis outside a string")
	case ']':
		return opArrayEnd.Value(), nil
	case '}':
		return opCurlyEnd.Value(), nil
	case '>':
		c2, ok := p.src.Next()
		if !ok || c2 != '>' {
			return Value{}, syntaxErrorf("'>' outside a hex string")
		}
		return opDictEnd.Value(), nil
	}

	// "a sequence of consecutive regular characters comprises a
	// single token"
	p.src.PushBack(c)
	tok := p.readRegularToken()

	if numberPattern.MatchString(tok) {
		if !strings.Contains(tok, ".") {
			n, err := strconv.ParseInt(tok, 10, 64)
			if err == nil {
				return Integer(n), nil
			}
			// magnitude beyond int64: fall through and keep it
			// as a real
		}
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return Value{}, syntaxErrorf("invalid number %q", tok)
		}
		return Real(f), nil
	}

	switch tok {
	case "true":
		return Boolean(true), nil
	case "false":
		return Boolean(false), nil
	case "null":
		return Value{}, nil
	}

	// note: #-notation is not decoded for operators
	op := InternOperator(tok)
	if op == opImageBegin {
		return p.parseInlineImage(depth)
	}
	return op.Value(), nil
}

// readSignificant consumes whitespace and %-comments and returns the
// first byte of the next token. Running out of input here, even in the
// middle of a comment, is the one legitimate end of the stream and is
// reported as io.EOF.
func (p *ContentParser) readSignificant() (byte, error) {
	for {
		c, ok := p.src.Next()
		if !ok {
			return 0, io.EOF
		}
		if isSpace(c) {
			continue
		}
		if c == '%' {
			// comments run to end of line
			for c != '\r' && c != '\n' {
				c, ok = p.src.Next()
				if !ok {
					return 0, io.EOF
				}
			}
			continue
		}
		return c, nil
	}
}

// readRegularToken returns the maximal run of bytes that are neither
// whitespace nor delimiters. End of input simply ends the token.
func (p *ContentParser) readRegularToken() string {
	var tok []byte
	for {
		c, ok := p.src.Next()
		if !ok {
			break
		}
		if isSpace(c) || isDelim(c) {
			p.src.PushBack(c)
			break
		}
		tok = append(tok, c)
	}
	return string(tok)
}

func (p *ContentParser) parseNameLiteral() (Value, error) {
	tok := p.readRegularToken()
	if tok == "" {
		return Value{}, syntaxErrorf("slash not followed by a name")
	}
	text, err := unescapeID(tok)
	if err != nil {
		return Value{}, err
	}
	return InternName(text).Value(), nil
}

// parseParenString decodes a parenthesized string, the opening '('
// already consumed. Nesting is tracked so balanced inner parentheses
// need no escapes; backslash escapes and end-of-line normalization
// follow the notation's rules.
func (p *ContentParser) parseParenString() (Value, error) {
	var text []byte
	depth := 1
	for {
		c, ok := p.src.Next()
		if !ok {
			return Value{}, syntaxErrorf("end of input inside a string")
		}

		switch c {
		case '(':
			depth++

		case ')':
			depth--
			if depth == 0 {
				return Value{data: string(text)}, nil
			}

		case '\r':
			// bare CR and CRLF both normalize to LF
			c2, ok := p.src.Next()
			if !ok {
				return Value{}, syntaxErrorf("end of input inside a string")
			}
			if c2 != '\n' {
				p.src.PushBack(c2)
			}
			c = '\n'

		case '\\':
			c2, ok := p.src.Next()
			if !ok {
				return Value{}, syntaxErrorf("end of input inside a string")
			}
			switch c2 {
			case 'n':
				c = '\n'
			case 'r':
				c = '\r'
			case 't':
				c = '\t'
			case 'b':
				c = '\b'
			case 'f':
				c = '\f'

			case '0', '1', '2', '3', '4', '5', '6', '7':
				x := int(c2 - '0')
				for i := 0; i < 2; i++ {
					c3, ok := p.src.Next()
					if !ok {
						return Value{}, syntaxErrorf("end of input inside a string")
					}
					if c3 < '0' || c3 > '7' {
						p.src.PushBack(c3)
						break
					}
					x = x*8 + int(c3-'0')
				}
				// values past 0377 truncate to the low 8 bits
				c = byte(x & 0xFF)

			case '\n':
				// backslash-newline is a line continuation
				continue
			case '\r':
				c3, ok := p.src.Next()
				if !ok {
					return Value{}, syntaxErrorf("end of input inside a string")
				}
				if c3 != '\n' {
					p.src.PushBack(c3)
				}
				continue

			default:
				// unrecognized escape: the backslash is dropped and
				// the byte kept as is
				c = c2
			}
		}

		text = append(text, c)
	}
}

// parseHexString decodes a hex string, the opening '<' already
// consumed. Digits pair up into bytes, interior whitespace is ignored,
// and an odd trailing digit is padded with an implicit zero in the low
// nibble.
func (p *ContentParser) parseHexString() (Value, error) {
	var text []byte
	for {
		c, err := p.readHexByte()
		if err != nil {
			return Value{}, err
		}
		if c == '>' {
			return Value{data: string(text)}, nil
		}
		hi := unhex(c)
		if hi < 0 {
			return Value{}, syntaxErrorf("invalid character %q in hex string", c)
		}

		c, err = p.readHexByte()
		if err != nil {
			return Value{}, err
		}
		if c == '>' {
			text = append(text, byte(hi<<4))
			return Value{data: string(text)}, nil
		}
		lo := unhex(c)
		if lo < 0 {
			return Value{}, syntaxErrorf("invalid character %q in hex string", c)
		}
		text = append(text, byte(hi<<4|lo))
	}
}

func (p *ContentParser) readHexByte() (byte, error) {
	for {
		c, ok := p.src.Next()
		if !ok {
			return 0, syntaxErrorf("end of input inside a hex string")
		}
		if !isSpace(c) {
			return c, nil
		}
	}
}

// parseArray reads array elements up to the close marker of the same
// bracket family that opened it.
func (p *ContentParser) parseArray(curly bool, depth int) (Value, error) {
	if depth >= p.maxDepth() {
		return Value{}, syntaxErrorf("composites nested deeper than %d", p.maxDepth())
	}
	var elems []Value
	for {
		item, err := p.next(depth + 1)
		if err == io.EOF {
			return Value{}, syntaxErrorf("end of input inside an array")
		}
		if err != nil {
			return Value{}, err
		}

		switch {
		case item.isOp(opArrayEnd):
			if curly {
				return Value{}, syntaxErrorf("{ }-array closed by ']'")
			}
			return Value{data: array(elems)}, nil
		case item.isOp(opCurlyEnd):
			if !curly {
				return Value{}, syntaxErrorf("[ ]-array closed by '}'")
			}
			return Value{data: carray(elems)}, nil

		case item.isOp(opDictEnd):
			return Value{}, syntaxErrorf("unbalanced dictionary close operator")
		case item.isOp(opImageData) || item.isOp(opImageEnd):
			return Value{}, syntaxErrorf("stray inline image operator in an array")
		}

		elems = append(elems, item)
	}
}

// parseDict reads key-value pairs up to the terminator: '>>' for an
// ordinary dictionary, 'ID' for an inline-image header.
func (p *ContentParser) parseDict(image bool, depth int) (*Dict, error) {
	if depth >= p.maxDepth() {
		return nil, syntaxErrorf("composites nested deeper than %d", p.maxDepth())
	}
	d := NewDict()
	for {
		key, err := p.next(depth + 1)
		if err == io.EOF {
			return nil, syntaxErrorf("end of input inside a dictionary")
		}
		if err != nil {
			return nil, err
		}

		switch {
		case key.isOp(opDictEnd):
			if image {
				return nil, syntaxErrorf("image dictionary closed by '>>'")
			}
			return d, nil
		case key.isOp(opImageData):
			if !image {
				return nil, syntaxErrorf("dictionary closed by 'ID'")
			}
			return d, nil
		}

		name := key.Name()
		if name == nil {
			return nil, syntaxErrorf("dictionary key is not a name")
		}
		if d.Has(name) {
			return nil, syntaxErrorf("duplicate dictionary key /%s", name)
		}

		value, err := p.next(depth + 1)
		if err == io.EOF {
			return nil, syntaxErrorf("end of input inside a dictionary")
		}
		if err != nil {
			return nil, err
		}

		switch {
		case value.isOp(opDictEnd) || value.isOp(opImageData):
			return nil, syntaxErrorf("dictionary key /%s has no value", name)
		case value.isOp(opArrayEnd) || value.isOp(opCurlyEnd):
			return nil, syntaxErrorf("unbalanced array close operator")
		case value.isOp(opImageEnd):
			return nil, syntaxErrorf("stray inline image operator in a dictionary")
		}

		// a null value is equivalent to omitting the key entirely
		d.Set(name, value)
	}
}

// parseInlineImage reads an inline image, the BI operator already
// consumed: the header dictionary terminated by ID, one whitespace
// byte, then the raw payload up to an EI operator delimited by
// whitespace on the left and a token boundary on the right. The
// delimiting whitespace is not part of the payload.
func (p *ContentParser) parseInlineImage(depth int) (Value, error) {
	hdr, err := p.parseDict(true, depth)
	if err != nil {
		return Value{}, err
	}

	c, ok := p.src.Next()
	if !ok {
		return Value{}, syntaxErrorf("end of input inside an inline image")
	}
	if !isSpace(c) {
		p.src.PushBack(c)
	}

	var data []byte
	for {
		c, ok := p.src.Next()
		if !ok {
			return Value{}, syntaxErrorf("end of input inside an inline image")
		}
		if !isSpace(c) {
			data = append(data, c)
			continue
		}

		// whitespace may delimit the end-of-image operator
		c1, ok := p.src.Next()
		if !ok {
			return Value{}, syntaxErrorf("end of input inside an inline image")
		}
		if c1 != 'E' {
			p.src.PushBack(c1)
			data = append(data, c)
			continue
		}
		c2, ok := p.src.Next()
		if !ok {
			return Value{}, syntaxErrorf("end of input inside an inline image")
		}
		if c2 != 'I' {
			p.src.PushBack(c2)
			p.src.PushBack(c1)
			data = append(data, c)
			continue
		}
		c3, ok := p.src.Next()
		if !ok || isSpace(c3) || isDelim(c3) {
			if ok {
				p.src.PushBack(c3)
			}
			logger.Debug(fmt.Sprintf("inline image: %d header entries, %d payload bytes",
				hdr.Len(), len(data)))
			return (&InlineImage{Header: hdr, Data: data}).Value(), nil
		}
		// EI turned out to be the prefix of a longer run; it is
		// payload after all
		p.src.PushBack(c3)
		p.src.PushBack(c2)
		p.src.PushBack(c1)
		data = append(data, c)
	}
}

func (p *ContentParser) maxDepth() int {
	if p.MaxDepth > 0 {
		return p.MaxDepth
	}
	return DefaultMaxDepth
}

func (v Value) isOp(o *Operator) bool {
	x, ok := v.data.(*Operator)
	return ok && x == o
}

// isSpace reports whether b is one of the five whitespace bytes of the
// content-stream grammar.
func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n', '\f':
		return true
	}
	return false
}

func isDelim(b byte) bool {
	switch b {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}
