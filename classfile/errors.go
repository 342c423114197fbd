package classfile

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrBadMagic       = errors.New("invalid magic number")
	ErrTruncated      = errors.New("truncated class file")
	ErrLengthMismatch = errors.New("attribute length mismatch")
	ErrUnknownTag     = errors.New("unknown constant pool tag")
	ErrUnknownOpcode  = errors.New("unknown opcode")
)

// MalformedClassError reports a structurally invalid class file. It is
// always fatal to the class being parsed.
type MalformedClassError struct {
	Offset  int64
	Context string
	Err     error
}

func (e *MalformedClassError) Error() string {
	return fmt.Sprintf("malformed class file at offset %d: %s: %v", e.Offset, e.Context, e.Err)
}

func (e *MalformedClassError) Unwrap() error { return e.Err }

// IndexError is returned when a constant pool index is outside 1..size-1 or
// lands on the unusable slot that follows a Long or Double entry.
type IndexError struct {
	Index uint16
	Size  int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("constant pool index %d out of range (pool size %d)", e.Index, e.Size)
}

// TypeMismatchError is returned when the entry at Index is not of the
// expected variant.
type TypeMismatchError struct {
	Index uint16
	Want  []ConstantTag
	Got   ConstantTag
}

func (e *TypeMismatchError) Error() string {
	want := ""
	for i, t := range e.Want {
		if i > 0 {
			want += " or "
		}
		want += t.String()
	}
	return fmt.Sprintf("constant pool entry %d is %s, expected %s", e.Index, e.Got, want)
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
