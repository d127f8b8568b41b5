// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sliceSource[T any](items []T) func() (T, bool) {
	i := 0
	return func() (T, bool) {
		if i >= len(items) {
			var zero T
			return zero, false
		}
		item := items[i]
		i++
		return item, true
	}
}

func TestPushback_PassThrough(t *testing.T) {
	p := newPushback(sliceSource([]int{1, 2, 3}))

	var got []int
	for {
		v, ok := p.Next()
		if !ok {
			break
		}
		got = append(got, v)
	}
	assert.Equal(t, []int{1, 2, 3}, got, "expected underlying items in order")

	_, ok := p.Next()
	assert.False(t, ok, "expected exhaustion to be sticky")
}

func TestPushback_LIFO(t *testing.T) {
	p := newPushback(sliceSource([]byte("ab")))

	c, ok := p.Next()
	assert.True(t, ok)
	assert.Equal(t, byte('a'), c)

	for _, c := range []byte("vwxyz") {
		p.PushBack(c)
	}
	for _, want := range []byte("zyxwv") {
		c, _ = p.Next()
		assert.Equal(t, want, c, "expected most recent pushback first")
	}
	c, _ = p.Next()
	assert.Equal(t, byte('b'), c, "expected the source to resume after the stack drains")

	_, ok = p.Next()
	assert.False(t, ok)
}

func TestPushback_AfterExhaustion(t *testing.T) {
	p := newPushback(sliceSource([]byte{}))

	_, ok := p.Next()
	assert.False(t, ok, "expected empty source to be exhausted immediately")

	p.PushBack('z')
	c, ok := p.Next()
	assert.True(t, ok, "expected pushed-back item after exhaustion")
	assert.Equal(t, byte('z'), c)

	_, ok = p.Next()
	assert.False(t, ok)
}
