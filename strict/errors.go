package strict

import (
	"errors"
	"fmt"
	"math/big"
)

var (
	ErrSizeLimit               = errors.New("strict: size limit exceeded")
	ErrTruncated               = errors.New("strict: truncated data")
	ErrDataNotEntirelyConsumed = errors.New("strict: data not entirely consumed")
	ErrZeroNatural             = errors.New("strict: zero value for non-zero type")
	ErrBrokenSetOrder          = errors.New("strict: set elements are not in canonical order")
	ErrBrokenMapOrder          = errors.New("strict: map keys are not in canonical order")
	ErrRepeatedSetValue        = errors.New("strict: repeated set value")
	ErrRepeatedMapValue        = errors.New("strict: repeated map key")
	ErrEmptyIdent              = errors.New("strict: empty identifier")
)

// ConfinementError reports a length outside of a type's sizing.
type ConfinementError struct {
	Len    uint64
	Sizing Sizing
}

func (e *ConfinementError) Error() string {
	return fmt.Sprintf("strict: length %d is outside of the allowed range %d..=%d", e.Len, e.Sizing.Min, e.Sizing.Max)
}

// EnumTagError reports a byte that names no variant of an enum.
type EnumTagError struct {
	Type string
	Tag  uint8
}

func (e *EnumTagError) Error() string {
	return fmt.Sprintf("strict: unknown tag %#02x for enum %s", e.Tag, e.Type)
}

// UnionTagError reports a byte that names no variant of a union.
type UnionTagError struct {
	Type string
	Tag  uint8
}

func (e *UnionTagError) Error() string {
	return fmt.Sprintf("strict: unknown tag %#02x for union %s", e.Tag, e.Type)
}

type ValueOutOfRangeError struct {
	Type  string
	Min   *big.Int
	Max   *big.Int
	Value *big.Int
}

func (e *ValueOutOfRangeError) Error() string {
	return fmt.Sprintf("strict: value %s of %s is out of range %s..=%s", e.Value, e.Type, e.Min, e.Max)
}

type UTF8Error struct {
	Pos int
}

func (e *UTF8Error) Error() string {
	return fmt.Sprintf("strict: invalid UTF-8 sequence at byte %d", e.Pos)
}

type ASCIIError struct {
	Pos  int
	Char byte
}

func (e *ASCIIError) Error() string {
	return fmt.Sprintf("strict: non-ASCII byte %#02x at position %d", e.Char, e.Pos)
}

// CharsetError reports a character outside of a restricted alphabet.
type CharsetError struct {
	Charset string
	Pos     int
	Char    byte
}

func (e *CharsetError) Error() string {
	return fmt.Sprintf("strict: character %q at position %d is not in %s", e.Char, e.Pos, e.Charset)
}

// DataIntegrityError reports decoded data which is well formed but
// violates a consistency rule of its type.
type DataIntegrityError struct {
	Reason string
}

func (e *DataIntegrityError) Error() string {
	return "strict: data integrity error: " + e.Reason
}

type IdentErrorKind uint8

const (
	IdentNonAlphabetic IdentErrorKind = iota + 1
	IdentInvalidChar
	IdentNonASCII
)

// IdentError reports the first invalid character of an identifier.
type IdentError struct {
	Kind  IdentErrorKind
	Input string
	Pos   int
	Char  byte
}

func (e *IdentError) Error() string {
	switch e.Kind {
	case IdentNonAlphabetic:
		return fmt.Sprintf("strict: identifier %q must start with an allowed letter, not %q", e.Input, e.Char)
	case IdentNonASCII:
		return fmt.Sprintf("strict: identifier %q contains non-ASCII byte %#02x at position %d", e.Input, e.Char, e.Pos)
	default:
		return fmt.Sprintf("strict: identifier %q contains invalid character %q at position %d", e.Input, e.Char, e.Pos)
	}
}
