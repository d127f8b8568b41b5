// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package content

import "sync"

// A Name is an interned identifier written with a leading slash in
// content-stream notation (as in /Helvetica). The stored text does not
// include the slash and is already unescaped. Within the process,
// equal text always yields the same *Name, so pointer comparison is
// equality comparison.
type Name struct {
	text string
}

func (n *Name) String() string { return n.text }

// An Operator is an interned identifier with no prefix, naming a
// drawing or control instruction. Operators live in their own
// namespace: interning equal text as a Name and as an Operator yields
// two distinct objects. Operator text is taken literally from the
// source; #-notation is not decoded for operators.
type Operator struct {
	text string
}

func (o *Operator) String() string { return o.text }

// The registries are process-wide and append-only. The processor
// parses streams from multiple goroutines, so each namespace carries
// its own lock.
var (
	nameMu   sync.Mutex
	nameSyms = make(map[string]*Name)

	operatorMu   sync.Mutex
	operatorSyms = make(map[string]*Operator)
)

// InternName returns the unique *Name for text, creating it on first
// use. The caller is responsible for unescaping #-notation first.
func InternName(text string) *Name {
	nameMu.Lock()
	defer nameMu.Unlock()
	if n, ok := nameSyms[text]; ok {
		return n
	}
	n := &Name{text: text}
	nameSyms[text] = n
	return n
}

// InternOperator returns the unique *Operator for text, creating it on
// first use.
func InternOperator(text string) *Operator {
	operatorMu.Lock()
	defer operatorMu.Unlock()
	if o, ok := operatorSyms[text]; ok {
		return o
	}
	o := &Operator{text: text}
	operatorSyms[text] = o
	return o
}

// Composite-close and inline-image markers are ordinary interned
// operators; the parser recognizes them by identity.
var (
	opArrayEnd   = InternOperator("]")
	opCurlyEnd   = InternOperator("}")
	opDictEnd    = InternOperator(">>")
	opImageBegin = InternOperator("BI")
	opImageData  = InternOperator("ID")
	opImageEnd   = InternOperator("EI")
)
