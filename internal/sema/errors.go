package sema

import "errors"

var (
	// ErrLiteralTooLarge is returned when a literal value fits no width it
	// could be stored in.
	ErrLiteralTooLarge = errors.New("numeric literal out of range")
	// ErrBadLiteral is returned for text that is not a numeric literal.
	ErrBadLiteral = errors.New("malformed numeric literal")
	// ErrSyntax is returned by ParseContent.
	ErrSyntax = errors.New("content syntax error")
)
