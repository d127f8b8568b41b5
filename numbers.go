// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package content

import (
	"regexp"
	"strconv"
	"strings"
)

// The content-stream notation has no exponential form. There is no way
// to make strconv suppress the exponent without also fixing the number
// of fractional digits, so the shortest round-trip text is taken apart
// and reassembled as a pure place-value string instead.

var decimalPattern = regexp.MustCompile(`^(-?)([0-9]*)(?:\.([0-9]*))?(?:[eE]([+-][0-9]+))?$`)

// canonDecimal converts the shortest round-trip decimal text of a
// number (sign, integer digits, optional fraction, optional signed
// exponent) into canonical place-value bytes: no exponent, no
// redundant zeros, no trailing point, and a bare leading point when
// the integer part is empty (".5", not "0.5"). Zero and negative zero
// both canonicalize to "0".
func canonDecimal(text string) (string, error) {
	m := decimalPattern.FindStringSubmatch(text)
	if m == nil {
		return "", &NumberFormatError{Text: text}
	}
	sign, intpart, fractpart, exponent := m[1], m[2], m[3], m[4]
	if intpart == "" && fractpart == "" {
		// no digits anywhere ("", ".", "-", "-.")
		return "", &NumberFormatError{Text: text}
	}

	intpart = strings.TrimLeft(intpart, "0")
	fractpart = strings.TrimRight(fractpart, "0")

	if intpart == "" && fractpart == "" {
		// zero or negative zero; the sign and exponent carry no
		// information here
		return "0", nil
	}

	if exponent != "" {
		// fold the exponent into a decimal-point shift
		e, err := strconv.Atoi(exponent)
		if err != nil {
			return "", &NumberFormatError{Text: text}
		}
		e += len(intpart)
		digits := intpart + fractpart
		switch {
		case e <= 0:
			return sign + "." + strings.Repeat("0", -e) + digits, nil
		case e >= len(digits):
			return sign + digits + strings.Repeat("0", e-len(digits)), nil
		default:
			return sign + digits[:e] + "." + digits[e:], nil
		}
	}

	if fractpart == "" {
		return sign + intpart, nil
	}
	return sign + intpart + "." + fractpart, nil
}

// ftod renders a float in canonical content-stream form: as short as
// possible, never exponential. NaN and the infinities have no decimal
// text and surface as a NumberFormatError.
func ftod(f float64) (string, error) {
	return canonDecimal(strconv.FormatFloat(f, 'g', -1, 64))
}
