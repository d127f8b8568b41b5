// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package content

import (
	"fmt"

	"github.com/sassoftware/viya-pdf-content/logger"
)

// A SyntaxError reports a lexical or structural violation in a content
// stream: mismatched bracket families, bad dictionary keys, malformed
// escapes, premature end of input, and so on. All syntax errors are
// terminal; the parse that produced one cannot be resumed.
type SyntaxError struct {
	Msg string
}

func (e *SyntaxError) Error() string {
	return "malformed content stream: " + e.Msg
}

func syntaxErrorf(format string, args ...interface{}) *SyntaxError {
	e := &SyntaxError{Msg: fmt.Sprintf(format, args...)}
	logger.Error(e.Error())
	return e
}

// A NumberFormatError reports text that cannot have come from a
// conforming decimal rendering of a number. It normally indicates an
// internal invariant failure rather than bad user data, but callers
// must not assume malformed input can never reach it.
type NumberFormatError struct {
	Text string
}

func (e *NumberFormatError) Error() string {
	return fmt.Sprintf("unexpected decimal number format: %q", e.Text)
}
