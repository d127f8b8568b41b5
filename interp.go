// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package content

import (
	"fmt"
	"io"

	"github.com/sassoftware/viya-pdf-content/logger"
)

// A Stack holds operands during content-stream interpretation.
type Stack struct {
	stack []Value
}

func (stk *Stack) Len() int {
	return len(stk.stack)
}

func (stk *Stack) Push(v Value) {
	stk.stack = append(stk.stack, v)
}

// Pop removes and returns the top of the stack, or the zero Value if
// the stack is empty.
func (stk *Stack) Pop() Value {
	n := len(stk.stack)
	if n == 0 {
		return Value{}
	}
	v := stk.stack[n-1]
	stk.stack = stk.stack[:n-1]
	return v
}

// Interpret runs the content stream in data, pushing operands onto a
// stack and invoking do for each operator with its operands still on
// the stack. The callback pops what it needs; whatever it leaves is
// cleared before the next operator. Inline images are delivered by
// pushing the image and invoking do with "EI".
func Interpret(data []byte, do func(stk *Stack, op string)) error {
	p := NewContentParser(data)
	var stk Stack
	var nops int
	for {
		v, err := p.Next()
		if err == io.EOF {
			logger.Debug(fmt.Sprintf("interpreted %d operators", nops))
			return nil
		}
		if err != nil {
			return err
		}
		switch v.Kind() {
		case KindOperator:
			do(&stk, v.Operator().String())
			nops++
			stk.stack = stk.stack[:0]
		case KindInlineImage:
			stk.Push(v)
			do(&stk, "EI")
			nops++
			stk.stack = stk.stack[:0]
		default:
			stk.Push(v)
		}
	}
}
