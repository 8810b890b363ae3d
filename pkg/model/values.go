package model

import (
	"fmt"
	"time"

	"github.com/cockroachdb/apd/v3"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindNumber Kind = iota
	KindString
	KindBool
	KindDate
	KindSequence
	KindCollection
	KindHash
	KindMarkup
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "boolean"
	case KindDate:
		return "date-like"
	case KindSequence:
		return "sequence"
	case KindCollection:
		return "collection"
	case KindHash:
		return "hash"
	case KindMarkup:
		return "markup output"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values. A missing/undefined
// value is represented by a nil Value, never by a Value variant.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

// Number wraps a decimal numeric value. A nil decimal from a non-nil model
// is a wrapper bug (a stored null), which the evaluation core surfaces loudly.
type Number interface {
	Value
	AsDecimal() *apd.Decimal
}

// String wraps textual content. The bool result is false when the model
// stores a null, which is a wrapper bug rather than a user error.
type String interface {
	Value
	AsString() (string, bool)
}

// Bool wraps a boolean value.
type Bool interface {
	Value
	AsBool() bool
}

// DateSubtype tags the precision of a date-like value.
type DateSubtype int

const (
	DateSubtypeUnknown DateSubtype = iota
	DateSubtypeDate
	DateSubtypeTime
	DateSubtypeDateTime
)

func (d DateSubtype) String() string {
	switch d {
	case DateSubtypeDate:
		return "date"
	case DateSubtypeTime:
		return "time"
	case DateSubtypeDateTime:
		return "date-time"
	default:
		return "unknown"
	}
}

// DateLike wraps an instant together with its precision tag. The bool result
// of AsTime is false when the model stores a null.
type DateLike interface {
	Value
	Subtype() DateSubtype
	AsTime() (time.Time, bool)
}

//-----------------------------------------------------------------------------
// Containers
//-----------------------------------------------------------------------------

// Iterator walks the elements of a Collection. The bool result reports
// whether iteration has completed.
type Iterator interface {
	Next() (Value, bool, error)
}

type Sequence interface {
	Value
	Len() int
	At(index int) (Value, error)
}

type Collection interface {
	Value
	Iterate() Iterator
}

type Hash interface {
	Value
	Get(key string) (Value, error)
	IsEmpty() bool
}

//-----------------------------------------------------------------------------
// Markup output
//-----------------------------------------------------------------------------

// MarkupFormat is the escaping/concatenation service behind one markup kind.
// Formats are singletons; two MarkupOutput values belong to the same format
// exactly when their Format results are identical.
type MarkupFormat interface {
	// Name returns the format's user-facing name, e.g. "HTML".
	Name() string

	// SourcePlainText returns the plain text the markup was built from, when
	// the value is still representable as plain text.
	SourcePlainText(mo MarkupOutput) (string, bool)

	// FromPlainText converts plain text into markup by escaping it.
	FromPlainText(text string) (MarkupOutput, error)

	// Concat joins two values of this same format. Reconciling values of
	// different formats is the concatenation resolver's job, not the format's.
	Concat(a, b MarkupOutput) (MarkupOutput, error)
}

// MarkupOutput is structured, format-tagged output text.
type MarkupOutput interface {
	Value
	Format() MarkupFormat
}
