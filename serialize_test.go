// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSerialize_Scalars(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"null", Value{}, "null"},
		{"true", Boolean(true), "true"},
		{"false", Boolean(false), "false"},
		{"integer", Integer(42), "42"},
		{"negative integer", Integer(-7), "-7"},
		{"real", Real(2.5), "2.5"},
		{"real below one", Real(0.25), ".25"},
		{"negative real", Real(-0.5), "-.5"},
		{"whole real", Real(4), "4"},
		{"large real stays positional", Real(6.02e23), "602000000000000000000000"},
		{"string", String([]byte("Hello")), "(Hello)"},
		{"string with parens", String([]byte("a(b)c")), "(a(b)c)"},
		{"string with backslash", String([]byte(`a\b`)), `(a\\b)`},
		{"name", InternName("abc").Value(), "/abc"},
		{"name needing escapes", InternName("{}").Value(), "/#7B#7D"},
		{"operator", InternOperator("Tj").Value(), "Tj"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.v.Serialize()
			assert.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestSerialize_Composites(t *testing.T) {
	d := NewDict()
	d.Set(InternName("Type"), InternName("Page").Value())
	d.Set(InternName("Count"), Integer(3))

	inner := ArrayOf(Integer(0), Integer(0), Integer(612), Integer(792))

	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"empty array", ArrayOf(), "[]"},
		{"array", ArrayOf(Integer(1), Integer(2), Integer(3)), "[1 2 3]"},
		{"nested array", ArrayOf(inner, InternName("X").Value()), "[[0 0 612 792] /X]"},
		{"empty curly array", CurlyArrayOf(), "{  }"},
		{"curly array", CurlyArrayOf(Integer(1), Integer(2)), "{ 1 2 }"},
		{"empty dict", NewDict().Value(), "<<  >>"},
		{"dict keeps insertion order", d.Value(), "<< /Type /Page /Count 3 >>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.v.Serialize()
			assert.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestSerialize_InlineImage(t *testing.T) {
	h := NewDict()
	h.Set(InternName("W"), Integer(2))
	h.Set(InternName("H"), Integer(1))
	im := &InlineImage{Header: h, Data: []byte{0xde, 0xad}}

	got, err := im.Value().Serialize()
	assert.NoError(t, err)
	assert.Equal(t, "BI /W 2 /H 1 ID\n\xde\xad\nEI", string(got))
}

func TestSerializeAll(t *testing.T) {
	objs := []Value{
		InternName("F1").Value(),
		Integer(12),
		InternOperator("Tf").Value(),
	}
	got, err := SerializeAll(objs)
	assert.NoError(t, err)
	assert.Equal(t, "/F1 12 Tf", string(got))

	got, err = SerializeAll(nil)
	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestSerialize_CanonicalizesSpelling(t *testing.T) {
	// equivalent spellings collapse to one canonical form
	tests := []struct {
		in   string
		want string
	}{
		{"[ 1   2\t3 ]", "[1 2 3]"},
		{"0042", "42"},
		{"1.500", "1.5"},
		{"/a#62c", "/abc"},
		{"<48656C6C6F>", "(Hello)"},
		{"(\\110i)", "(Hi)"},
		{"<<>>", "<<  >>"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			objs, err := Parse([]byte(tt.in))
			assert.NoError(t, err)
			got, err := SerializeAll(objs)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}
