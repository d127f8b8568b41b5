// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package content

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonDecimal(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		// zeros collapse to a single digit, sign dropped
		{"0", "0"},
		{"-0", "0"},
		{"000", "0"},
		{"0.000", "0"},
		{"-0.000", "0"},
		{".0", "0"},
		{"0.", "0"},

		// plain integers
		{"1", "1"},
		{"-1", "-1"},
		{"042", "42"},
		{"1.", "1"},
		{"120", "120"},

		// fractions lose trailing zeros and the leading integer zero
		{"1.500", "1.5"},
		{"0.500", ".5"},
		{"-0.5", "-.5"},
		{"12.34", "12.34"},
		{".25", ".25"},
		{"1.0", "1"},

		// exponents fold into a plain digit string
		{"1e+2", "100"},
		{"1.5e+3", "1500"},
		{"0.5e+1", "5"},
		{"2.5e-2", ".025"},
		{"1e-3", ".001"},
		{"271.828e-4", ".0271828"},
		{"6.02e+23", "602000000000000000000000"},
		{"-1.25e+2", "-125"},
		{"1e-05", ".00001"},
		{"0e+7", "0"},
		{"0e+9", "0"},
		{"-000.000", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := canonDecimal(tt.in)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanonDecimal_Invalid(t *testing.T) {
	bad := []string{
		"",
		"-",
		".",
		"-.",
		"abc",
		"+1",    // explicit plus never appears in conforming renderings
		"1e5",   // exponent requires a sign
		"1.2.3",
		"0x10",
		"1 ",
	}
	for _, in := range bad {
		t.Run(strconv.Quote(in), func(t *testing.T) {
			_, err := canonDecimal(in)
			var nfe *NumberFormatError
			assert.ErrorAs(t, err, &nfe, "expected NumberFormatError")
			assert.Equal(t, in, nfe.Text)
		})
	}
}

func TestFtod(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{1, "1"},
		{-1, "-1"},
		{1.5, "1.5"},
		{0.1, ".1"},
		{-0.5, "-.5"},
		{100, "100"},
		{0.0271828, ".0271828"},
		{6.02e23, "602000000000000000000000"},
		{1e-5, ".00001"},
		{1e21, "1000000000000000000000"},
		{-2.25, "-2.25"},
	}
	for _, tt := range tests {
		got, err := ftod(tt.in)
		assert.NoError(t, err)
		assert.Equal(t, tt.want, got, "ftod(%v)", tt.in)
	}
}

func TestFtod_NonFinite(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := ftod(f)
		var nfe *NumberFormatError
		assert.ErrorAs(t, err, &nfe, "expected NumberFormatError for %v", f)
	}
}

func TestFtod_AgreesWithIntegerFormatting(t *testing.T) {
	// whole-valued floats serialize exactly like the matching integer
	for _, n := range []int64{0, 1, -1, 7, 42, -999, 65536, 1000000} {
		got, err := ftod(float64(n))
		assert.NoError(t, err)
		assert.Equal(t, strconv.FormatInt(n, 10), got)
	}
}
