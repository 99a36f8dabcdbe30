// Package fdt is a zero-allocation parser and query library for the
// Flattened Device Tree (FDT/DTB) binary format described by the
// Devicetree Specification. It runs over a caller-owned byte buffer
// and exposes two traversal engines: a lazy on-the-fly cursor, and an
// optional single-pass index that accelerates repeated navigation.
package fdt

import "fmt"

// Kind tags the category of a failure. The set is closed: every error
// this module returns carries exactly one Kind, and the kinds never
// overlap.
type Kind int

const (
	KindInvalidMagic Kind = iota
	KindInvalidOffset
	KindParse
	KindStr
	KindVersionNotSupported
	KindNotEnoughMemory
	KindEOF
)

func (k Kind) String() string {
	switch k {
	case KindInvalidMagic:
		return "invalid magic"
	case KindInvalidOffset:
		return "invalid offset"
	case KindParse:
		return "parse error"
	case KindStr:
		return "string decode error"
	case KindVersionNotSupported:
		return "version not supported"
	case KindNotEnoughMemory:
		return "not enough memory"
	case KindEOF:
		return "end of stream"
	default:
		return "unknown"
	}
}

// Error is a tagged, contextual failure. It follows the Context/Cause
// wrapping shape of the retrieval pack's H5Error (internal/utils in
// the teacher repo this module is modeled on), with a Kind added so
// callers can switch on a closed taxonomy via errors.Is instead of
// comparing strings.
type Error struct {
	Kind    Kind
	Context string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fdt: %s: %s: %v", e.Kind, e.Context, e.Cause)
	}
	return fmt.Sprintf("fdt: %s: %s", e.Kind, e.Context)
}

// Unwrap provides compatibility with errors.Unwrap.
func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is an *Error with the same Kind, so
// errors.Is(err, fdt.ErrParse) works regardless of Context or Cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func newf(kind Kind, context string) error {
	return &Error{Kind: kind, Context: context}
}

func wrapf(kind Kind, context string, cause error) error {
	if cause == nil {
		return newf(kind, context)
	}
	return &Error{Kind: kind, Context: context, Cause: cause}
}

// NewError constructs a tagged error. Exported for the index
// subpackage, which produces the same closed set of kinds while
// building and navigating its on-buffer record tree.
func NewError(kind Kind, context string) error { return newf(kind, context) }

// WrapError constructs a tagged error around a lower-level cause,
// mirroring the teacher's WrapError(context, cause) helper with a Kind
// attached.
func WrapError(kind Kind, context string, cause error) error { return wrapf(kind, context, cause) }

// Sentinels for errors.Is checks against a specific kind, independent
// of context or cause.
var (
	ErrInvalidMagic        = &Error{Kind: KindInvalidMagic}
	ErrInvalidOffset       = &Error{Kind: KindInvalidOffset}
	ErrParse               = &Error{Kind: KindParse}
	ErrStr                 = &Error{Kind: KindStr}
	ErrVersionNotSupported = &Error{Kind: KindVersionNotSupported}
	ErrNotEnoughMemory     = &Error{Kind: KindNotEnoughMemory}
	ErrEOF                 = &Error{Kind: KindEOF}
)
