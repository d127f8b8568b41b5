// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

// Package content implements decoding and re-encoding of the
// content-stream mini-language embedded in PDF-style documents.
//
// # Overview
//
// A content stream is the operator/operand token sequence that
// describes the marks on a page. Despite the elaborate mechanism for
// keeping composite objects out of content streams, arrays and
// dictionaries do appear in them, so the parser handles the full
// object notation. The notation is defined in terms of bytes, and this
// package works in bytes throughout; text interpretation belongs to
// the caller.
//
// A parsed stream is a sequence of Values, each of which has one of
// the following Kinds:
//
//	KindNull, for the null object.
//	KindBool, for a boolean value.
//	KindInteger, for an integer.
//	KindReal, for a floating-point number.
//	KindString, for a string of arbitrary bytes.
//	KindName, for an interned /-prefixed identifier.
//	KindOperator, for an interned bare identifier naming an instruction.
//	KindArray, for a [ ]-bracketed array.
//	KindCurlyArray, for a { }-bracketed array.
//	KindDict, for a dictionary of name-value pairs.
//	KindInlineImage, for an inline image dictionary plus raw payload.
//
// The accessors on Value return a view of the data as the given type.
// When there is no appropriate view, the accessor returns a zero
// result, so a traversal needs no error checking at every step.
//
// ContentParser turns already-decoded stream bytes into Values;
// Value.Serialize is the inverse and always emits the canonical,
// minimal byte form. The surrounding document structure (cross
// reference tables, trailers, stream filters) is out of scope here and
// handled by the document layer.
package content

import (
	"bytes"
	"strconv"
)

// A Value is a single content-stream object, such as an integer,
// name, or array. The zero Value is a null (Kind() == KindNull).
type Value struct {
	data interface{}
}

// A ValueKind specifies the kind of data underlying a Value.
type ValueKind int

// The content-stream value kinds.
const (
	KindNull ValueKind = iota
	KindBool
	KindInteger
	KindReal
	KindString
	KindName
	KindOperator
	KindArray
	KindCurlyArray
	KindDict
	KindInlineImage
)

type array []Value

type carray []Value

// A Dict is an ordered mapping from interned Names to Values. Keys are
// unique and iteration follows insertion order. Key uniqueness is
// enforced when a dict is parsed, not here.
type Dict struct {
	keys []*Name
	vals map[*Name]Value
}

// NewDict returns an empty dictionary.
func NewDict() *Dict {
	return &Dict{vals: make(map[*Name]Value)}
}

// Len returns the number of entries.
func (d *Dict) Len() int { return len(d.keys) }

// Keys returns the dictionary keys in insertion order.
func (d *Dict) Keys() []*Name {
	out := make([]*Name, len(d.keys))
	copy(out, d.keys)
	return out
}

// Get returns the value stored under key, or a null Value.
func (d *Dict) Get(key *Name) Value { return d.vals[key] }

// Has reports whether key is present.
func (d *Dict) Has(key *Name) bool {
	_, ok := d.vals[key]
	return ok
}

// Set stores v under key, keeping the key's existing position if it is
// already present. Storing a null value is equivalent to omitting the
// entry entirely: the key is removed if present.
func (d *Dict) Set(key *Name, v Value) {
	if v.IsNull() {
		if _, ok := d.vals[key]; ok {
			delete(d.vals, key)
			for i, k := range d.keys {
				if k == key {
					d.keys = append(d.keys[:i], d.keys[i+1:]...)
					break
				}
			}
		}
		return
	}
	if _, ok := d.vals[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.vals[key] = v
}

// An InlineImage is an image embedded directly in a content stream: a
// header dictionary introduced by BI and terminated by ID, followed by
// the raw, still-encoded sample payload up to the EI operator.
type InlineImage struct {
	Header *Dict
	Data   []byte
}

// Value constructors. Composites take ownership of their elements in
// the ordinary tree sense.

// Boolean returns a Value holding b.
func Boolean(b bool) Value { return Value{data: b} }

// Integer returns a Value holding n.
func Integer(n int64) Value { return Value{data: n} }

// Real returns a Value holding f.
func Real(f float64) Value { return Value{data: f} }

// String returns a Value holding a copy of the byte string s.
func String(s []byte) Value { return Value{data: string(s)} }

// ArrayOf returns a [ ]-family array of the given elements.
func ArrayOf(elems ...Value) Value { return Value{data: array(elems)} }

// CurlyArrayOf returns a { }-family array of the given elements.
func CurlyArrayOf(elems ...Value) Value { return Value{data: carray(elems)} }

// Value returns the Name as a Value.
func (n *Name) Value() Value { return Value{data: n} }

// Value returns the Operator as a Value.
func (o *Operator) Value() Value { return Value{data: o} }

// Value returns the dictionary as a Value.
func (d *Dict) Value() Value { return Value{data: d} }

// Value returns the inline image as a Value.
func (im *InlineImage) Value() Value { return Value{data: im} }

// IsNull reports whether the value is a null. It is equivalent to
// Kind() == KindNull.
func (v Value) IsNull() bool { return v.data == nil }

// Kind reports the kind of value underlying v.
func (v Value) Kind() ValueKind {
	switch v.data.(type) {
	default:
		return KindNull
	case bool:
		return KindBool
	case int64:
		return KindInteger
	case float64:
		return KindReal
	case string:
		return KindString
	case *Name:
		return KindName
	case *Operator:
		return KindOperator
	case array:
		return KindArray
	case carray:
		return KindCurlyArray
	case *Dict:
		return KindDict
	case *InlineImage:
		return KindInlineImage
	}
}

// Bool returns v's boolean value.
// If v.Kind() != KindBool, Bool returns false.
func (v Value) Bool() bool {
	x, ok := v.data.(bool)
	if !ok {
		return false
	}
	return x
}

// Int64 returns v's int64 value.
// If v.Kind() != KindInteger, Int64 returns 0.
func (v Value) Int64() int64 {
	x, ok := v.data.(int64)
	if !ok {
		return 0
	}
	return x
}

// Float64 returns v's float64 value, converting from integer if
// necessary. If v.Kind() is neither KindReal nor KindInteger, Float64
// returns 0.
func (v Value) Float64() float64 {
	x, ok := v.data.(float64)
	if !ok {
		if n, ok := v.data.(int64); ok {
			return float64(n)
		}
		return 0
	}
	return x
}

// RawString returns v's string value as raw bytes in string form.
// If v.Kind() != KindString, RawString returns the empty string.
func (v Value) RawString() string {
	x, ok := v.data.(string)
	if !ok {
		return ""
	}
	return x
}

// Name returns v's interned name.
// If v.Kind() != KindName, Name returns nil.
func (v Value) Name() *Name {
	x, ok := v.data.(*Name)
	if !ok {
		return nil
	}
	return x
}

// Operator returns v's interned operator.
// If v.Kind() != KindOperator, Operator returns nil.
func (v Value) Operator() *Operator {
	x, ok := v.data.(*Operator)
	if !ok {
		return nil
	}
	return x
}

// Len returns the length of the array v, for either bracket family.
// If v is not an array, Len returns 0.
func (v Value) Len() int {
	switch x := v.data.(type) {
	case array:
		return len(x)
	case carray:
		return len(x)
	}
	return 0
}

// Index returns the i'th element of the array v, for either bracket
// family. If v is not an array or i is out of range, Index returns a
// null Value.
func (v Value) Index(i int) Value {
	var elems []Value
	switch x := v.data.(type) {
	case array:
		elems = x
	case carray:
		elems = x
	default:
		return Value{}
	}
	if i < 0 || i >= len(elems) {
		return Value{}
	}
	return elems[i]
}

// Dict returns v's dictionary. For an inline image it returns the
// image's header dictionary. Otherwise Dict returns nil.
func (v Value) Dict() *Dict {
	switch x := v.data.(type) {
	case *Dict:
		return x
	case *InlineImage:
		return x.Header
	}
	return nil
}

// Key returns the value associated with the given name text in the
// dictionary v (or an inline image's header). The key text should not
// include a leading slash. If v has no dictionary view, Key returns a
// null Value.
func (v Value) Key(key string) Value {
	d := v.Dict()
	if d == nil {
		return Value{}
	}
	return d.Get(InternName(key))
}

// Keys returns the dictionary keys of v in insertion order, or nil if
// v has no dictionary view.
func (v Value) Keys() []*Name {
	d := v.Dict()
	if d == nil {
		return nil
	}
	return d.Keys()
}

// Image returns v's inline image.
// If v.Kind() != KindInlineImage, Image returns nil.
func (v Value) Image() *InlineImage {
	x, ok := v.data.(*InlineImage)
	if !ok {
		return nil
	}
	return x
}

// String returns a readable representation of v for debugging. Note
// that String is not the accessor for values with Kind() ==
// KindString; see RawString. The canonical byte form is produced by
// Serialize, not String.
func (v Value) String() string {
	switch x := v.data.(type) {
	default:
		return "null"
	case bool:
		return strconv.FormatBool(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case string:
		return strconv.Quote(x)
	case *Name:
		return "/" + x.text
	case *Operator:
		return x.text
	case array:
		return formatElems('[', ']', x)
	case carray:
		return formatElems('{', '}', x)
	case *Dict:
		var buf bytes.Buffer
		buf.WriteString("<<")
		for i, k := range x.keys {
			if i > 0 {
				buf.WriteString(" ")
			}
			buf.WriteString("/")
			buf.WriteString(k.text)
			buf.WriteString(" ")
			buf.WriteString(x.vals[k].String())
		}
		buf.WriteString(">>")
		return buf.String()
	case *InlineImage:
		return "inline image " + x.Header.Value().String() + " +" +
			strconv.Itoa(len(x.Data)) + " bytes"
	}
}

func formatElems(open, end byte, elems []Value) string {
	var buf bytes.Buffer
	buf.WriteByte(open)
	for i, elem := range elems {
		if i > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(elem.String())
	}
	buf.WriteByte(end)
	return buf.String()
}
