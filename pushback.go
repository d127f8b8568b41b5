// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package content

// A pushback wraps a forward-only item source and adds an unbounded
// LIFO pushback stack, so the tokenizer can look ahead by reading and
// pushing back. The grammar never needs more than a few items of
// lookahead, so the stack stays small in practice.
type pushback[T any] struct {
	next  func() (T, bool)
	stack []T
}

func newPushback[T any](next func() (T, bool)) *pushback[T] {
	return &pushback[T]{next: next}
}

// Next returns the most recently pushed-back item if any are pending,
// otherwise the next item from the underlying source. The second
// result is false once both are exhausted.
func (p *pushback[T]) Next() (T, bool) {
	if n := len(p.stack); n > 0 {
		v := p.stack[n-1]
		p.stack = p.stack[:n-1]
		return v, true
	}
	return p.next()
}

// PushBack makes item the next value Next will return. Consecutive
// pushes are returned in reverse order of pushing.
func (p *pushback[T]) PushBack(item T) {
	p.stack = append(p.stack, item)
}
