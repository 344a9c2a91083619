package types

import (
	"errors"
	"fmt"
)

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindTypeMismatch   ErrKind = iota // handle kind differs from the requested variant
	ErrKindUnknownKind                   // kernel reported a kind outside the closed set
	ErrKindNotImplemented                // valid request the façade deliberately does not support
	ErrKindIndex                         // collection index out of range
	ErrKindNotDone                       // tool result read although the kernel did not finish
	ErrKindKernel                        // kernel could not perform the operation
	ErrKindMesh                          // invalid mesh control or failed mesh computation
	ErrKindIO                            // export could not be written
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindTypeMismatch:
		return "type mismatch"
	case ErrKindUnknownKind:
		return "unknown kind"
	case ErrKindNotImplemented:
		return "not implemented"
	case ErrKindIndex:
		return "index"
	case ErrKindNotDone:
		return "not done"
	case ErrKindKernel:
		return "kernel"
	case ErrKindMesh:
		return "mesh"
	case ErrKindIO:
		return "io"
	default:
		return fmt.Sprintf("ErrKind(%d)", int(k))
	}
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Sentinels commonly returned by implementations.
var (
	// ErrTypeMismatch indicates a variant was requested for a handle of another kind.
	ErrTypeMismatch = &Error{Kind: ErrKindTypeMismatch, Msg: "shape kind mismatch"}
	// ErrUnknownKind indicates a handle whose kind is outside the closed set.
	ErrUnknownKind = &Error{Kind: ErrKindUnknownKind, Msg: "unrecognized shape kind"}
	// ErrNotImplemented indicates a deliberately unsupported request.
	ErrNotImplemented = &Error{Kind: ErrKindNotImplemented, Msg: "not implemented"}
	// ErrIndexOutOfRange indicates a collection index outside [-size, size).
	ErrIndexOutOfRange = &Error{Kind: ErrKindIndex, Msg: "index out of range"}
	// ErrNotDone indicates a tool result was requested from an unfinished operation.
	ErrNotDone = &Error{Kind: ErrKindNotDone, Msg: "operation not done"}
	// ErrKernel indicates the kernel could not complete an operation.
	ErrKernel = &Error{Kind: ErrKindKernel, Msg: "kernel operation failed"}
	// ErrMeshControl indicates an invalid mesh control.
	ErrMeshControl = &Error{Kind: ErrKindMesh, Msg: "invalid mesh control"}
	// ErrMeshCompute indicates the mesher failed.
	ErrMeshCompute = &Error{Kind: ErrKindMesh, Msg: "mesh computation failed"}
	// ErrExport indicates an export file could not be written.
	ErrExport = &Error{Kind: ErrKindIO, Msg: "export failed"}
)

// KindOf returns the category of the first *Error in err's chain.
func KindOf(err error) (ErrKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// IndexError reports an out-of-range collection access. Index is the index
// the caller passed, before any negative-index translation.
type IndexError struct {
	Index int
	Size  int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range [0:%d]", e.Index, e.Size)
}

func (e *IndexError) Unwrap() error { return ErrIndexOutOfRange }

// Kernelf builds a kernel failure with a formatted message.
func Kernelf(format string, args ...any) error {
	return &Error{Kind: ErrKindKernel, Msg: fmt.Sprintf(format, args...), Err: ErrKernel}
}
