package koru

import (
	"errors"
	"fmt"
)

// The parser surfaces exactly two failure kinds. ErrSyntax means a construct
// did not match the grammar at the current token; ErrUnexpectedEOF means the
// token stream ran out before a construct completed. Both propagate upward
// without recovery and can be distinguished with errors.Is.
var (
	ErrSyntax        = errors.New("syntax error")
	ErrUnexpectedEOF = errors.New("unexpected end of input")
)

func syntaxErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrSyntax, fmt.Sprintf(format, args...))
}

func eofErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrUnexpectedEOF, fmt.Sprintf(format, args...))
}
