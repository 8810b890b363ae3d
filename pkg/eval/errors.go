package eval

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind identifies the failure condition of an *EvalError.
type ErrorKind int

const (
	// ErrMissingValue: an operand required for comparison or coercion was
	// absent/undefined.
	ErrMissingValue ErrorKind = iota

	// ErrIllegalOperatorForType: a relational operator applied to string or
	// boolean operands.
	ErrIllegalOperatorForType

	// ErrIncompatibleTypes: the operand kinds cannot be compared or ordered.
	ErrIncompatibleTypes

	// ErrUnknownDateSubtype: a date-like operand's precision tag is
	// unresolved. Never relaxed.
	ErrUnknownDateSubtype

	// ErrNotStringCoercible: the value's kind cannot become text under the
	// requested policy.
	ErrNotStringCoercible

	// ErrFormatFailure: an injected formatter failed.
	ErrFormatFailure

	// ErrFormatsNotUnifiable: two markup output formats could not be
	// reconciled for concatenation.
	ErrFormatsNotUnifiable

	// ErrInternalContractViolation: a collaborator broke its contract, e.g. a
	// non-nil model yielding a null. A bug, not a user error.
	ErrInternalContractViolation
)

func (k ErrorKind) String() string {
	switch k {
	case ErrMissingValue:
		return "missing value"
	case ErrIllegalOperatorForType:
		return "illegal operator for type"
	case ErrIncompatibleTypes:
		return "incompatible types"
	case ErrUnknownDateSubtype:
		return "unknown date subtype"
	case ErrNotStringCoercible:
		return "not string-coercible"
	case ErrFormatFailure:
		return "format failure"
	case ErrFormatsNotUnifiable:
		return "formats not unifiable"
	case ErrInternalContractViolation:
		return "internal contract violation"
	default:
		return fmt.Sprintf("unknown_error_kind_%d", int(k))
	}
}

// Side names the operand an error is attributed to.
type Side int

const (
	SideNone Side = iota
	SideLeft
	SideRight
)

func sideWord(s Side) string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return ""
	}
}

// EvalError is the structured failure value of the evaluation core. Fields
// are the contract; Error() renders them into a message, but callers that
// need precise diagnostics read the fields instead of parsing text.
type EvalError struct {
	Kind   ErrorKind
	Blamed Expression // blamed expression, nil when unknown
	Side   Side

	Operator      string // operator text, for illegal-operator errors
	Left          string // left operand description (kind or subtype name)
	Right         string
	LeftSource    string // operand source text, when the caller asked for quoting
	RightSource   string
	DateSubtypes  bool   // Left/Right hold date subtype names
	MarkupAllowed bool   // markup was an acceptable coercion target
	Format        string // output format name, for markup-result rejections
	Hint          string // caller-supplied usage hint
	Detail        string // free-form detail, for bug-class conditions
	Cause         error
}

func (e *EvalError) Error() string {
	var b strings.Builder
	switch e.Kind {
	case ErrMissingValue:
		switch e.Side {
		case SideLeft:
			b.WriteString("the left operand of the comparison was undefined or missing")
		case SideRight:
			b.WriteString("the right operand of the comparison was undefined or missing")
		default:
			b.WriteString("undefined or missing value")
		}
	case ErrIllegalOperatorForType:
		fmt.Fprintf(&b, "can't use operator %q on %s values", e.Operator, e.Left)
	case ErrUnknownDateSubtype:
		if w := sideWord(e.Side); w != "" {
			fmt.Fprintf(&b, "the %s value of the comparison is a date-like value where "+
				"it's not known if it's a date (no time part), time, or date-time, "+
				"and thus can't be used in a comparison", w)
		} else {
			b.WriteString("the value is a date-like value where it's not known if it's " +
				"a date (no time part), time, or date-time")
		}
	case ErrIncompatibleTypes:
		switch {
		case e.Detail != "":
			b.WriteString(e.Detail)
		case e.DateSubtypes:
			fmt.Fprintf(&b, "can't compare date-like values of different subtypes; "+
				"left subtype is %s, right subtype is %s", e.Left, e.Right)
		default:
			b.WriteString("can't compare values of these types; allowed comparisons are " +
				"between two numbers, two strings, two date-likes, or two booleans; ")
			fmt.Fprintf(&b, "left hand operand %sis %s, right hand operand %sis %s",
				quotedSource(e.LeftSource), aOrAn(e.Left),
				quotedSource(e.RightSource), aOrAn(e.Right))
		}
	case ErrNotStringCoercible:
		if e.Format != "" {
			fmt.Fprintf(&b, "the value was formatted to convert it to string, "+
				"but the result was markup of output format %s", e.Format)
		} else {
			b.WriteString("expected a string or something automatically convertible to string (number, date or boolean)")
			if e.MarkupAllowed {
				b.WriteString(", or markup output")
			}
			fmt.Fprintf(&b, ", but this has evaluated to %s", aOrAn(e.Left))
		}
		if e.Hint != "" {
			fmt.Fprintf(&b, " (%s)", e.Hint)
		}
	case ErrFormatFailure:
		fmt.Fprintf(&b, "failed to format %s value", e.Left)
	case ErrFormatsNotUnifiable:
		fmt.Fprintf(&b, "concatenation left hand operand is in %s format, "+
			"while the right hand operand is in %s; conversion to a common format wasn't possible",
			e.Left, e.Right)
	case ErrInternalContractViolation:
		b.WriteString(e.Detail)
	default:
		b.WriteString("evaluation error")
	}
	if e.Blamed != nil {
		fmt.Fprintf(&b, " [in: %s]", e.Blamed.Source())
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

func (e *EvalError) Unwrap() error { return e.Cause }

// KindOf extracts the ErrorKind from an error chain.
func KindOf(err error) (ErrorKind, bool) {
	var evalErr *EvalError
	if errors.As(err, &evalErr) {
		return evalErr.Kind, true
	}
	return 0, false
}

func quotedSource(source string) string {
	if source == "" {
		return ""
	}
	return "(" + source + ") "
}

func aOrAn(noun string) string {
	if noun == "" {
		return "an unknown value"
	}
	switch noun[0] {
	case 'a', 'e', 'i', 'o', 'u':
		return "an " + noun
	default:
		return "a " + noun
	}
}

func newStoredNullError(claimed string, exp Expression) *EvalError {
	return &EvalError{
		Kind:   ErrInternalContractViolation,
		Blamed: exp,
		Detail: fmt.Sprintf("the value claimed to be a %s, but it stored a null", claimed),
	}
}
