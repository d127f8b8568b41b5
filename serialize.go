// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package content

import (
	"fmt"
	"strconv"
)

// Serialize renders v in canonical byte form: the unique, minimal
// encoding the notation expects, independent of how equivalent input
// was spelled. Composites serialize their children recursively.
// Structural invariants such as key uniqueness are enforced at parse
// or construction time, never re-checked here.
func (v Value) Serialize() ([]byte, error) {
	return v.appendTo(nil)
}

// SerializeAll renders a sequence of objects separated by single
// spaces, the inverse of Parse.
func SerializeAll(objs []Value) ([]byte, error) {
	var dst []byte
	var err error
	for i, obj := range objs {
		if i > 0 {
			dst = append(dst, ' ')
		}
		dst, err = obj.appendTo(dst)
		if err != nil {
			return nil, err
		}
	}
	return dst, nil
}

func (v Value) appendTo(dst []byte) ([]byte, error) {
	switch x := v.data.(type) {
	case nil:
		return append(dst, "null"...), nil
	case bool:
		if x {
			return append(dst, "true"...), nil
		}
		return append(dst, "false"...), nil
	case int64:
		return strconv.AppendInt(dst, x, 10), nil
	case float64:
		s, err := ftod(x)
		if err != nil {
			return nil, err
		}
		return append(dst, s...), nil
	case string:
		return appendParenString(dst, []byte(x)), nil
	case *Name:
		dst = append(dst, '/')
		return appendEscapedID(dst, x.text), nil
	case *Operator:
		return appendEscapedID(dst, x.text), nil
	case array:
		return appendArray(dst, "[", "]", x)
	case carray:
		return appendArray(dst, "{ ", " }", x)
	case *Dict:
		return x.appendTo(dst, "<< ", " >>")
	case *InlineImage:
		dst, err := x.Header.appendTo(dst, "BI ", " ID")
		if err != nil {
			return nil, err
		}
		dst = append(dst, '\n')
		dst = append(dst, x.Data...)
		return append(dst, "\nEI"...), nil
	default:
		// the closed set above is exhaustive for parser output
		return nil, fmt.Errorf("unexpected value type %T in Serialize", x)
	}
}

func appendArray(dst []byte, open, end string, elems []Value) ([]byte, error) {
	dst = append(dst, open...)
	var err error
	for i, elem := range elems {
		if i > 0 {
			dst = append(dst, ' ')
		}
		dst, err = elem.appendTo(dst)
		if err != nil {
			return nil, err
		}
	}
	return append(dst, end...), nil
}

func (d *Dict) appendTo(dst []byte, open, end string) ([]byte, error) {
	dst = append(dst, open...)
	var err error
	for i, k := range d.keys {
		if i > 0 {
			dst = append(dst, ' ')
		}
		dst, err = k.Value().appendTo(dst)
		if err != nil {
			return nil, err
		}
		dst = append(dst, ' ')
		dst, err = d.vals[k].appendTo(dst)
		if err != nil {
			return nil, err
		}
	}
	return append(dst, end...), nil
}
