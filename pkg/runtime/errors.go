package runtime

import "fmt"

// ErrorKind classifies evaluation failures. A kind is itself an error so
// callers can test with errors.Is(err, runtime.TypeMismatch).
type ErrorKind int

const (
	UnboundSymbol ErrorKind = iota + 1
	MalformedIf
	EmptyBegin
	ArityMismatch
	TypeMismatch
	DivisionByZero
	EmptyList
	MalformedForm
	RecursionDepthExceeded
	Interrupted
)

func (k ErrorKind) String() string {
	switch k {
	case UnboundSymbol:
		return "UnboundSymbol"
	case MalformedIf:
		return "MalformedIf"
	case EmptyBegin:
		return "EmptyBegin"
	case ArityMismatch:
		return "ArityMismatch"
	case TypeMismatch:
		return "TypeMismatch"
	case DivisionByZero:
		return "DivisionByZero"
	case EmptyList:
		return "EmptyList"
	case MalformedForm:
		return "MalformedForm"
	case RecursionDepthExceeded:
		return "RecursionDepthExceeded"
	case Interrupted:
		return "Interrupted"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

func (k ErrorKind) Error() string { return k.String() }

// Error is the failure returned by evaluation and by builtins.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Message
}

func (e *Error) Is(target error) bool {
	kind, ok := target.(ErrorKind)
	return ok && kind == e.Kind
}

// Errorf builds an *Error of the given kind.
func Errorf(kind ErrorKind, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
