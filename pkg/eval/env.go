package eval

import (
	"golang.org/x/text/language"

	"vane/template-go/pkg/model"
)

// Expression is the evaluator-owned handle to a source expression. The core
// uses it to evaluate operands in the expression-pair compare form and to
// blame the exact source expression in errors.
type Expression interface {
	Eval(env *Environment) (model.Value, error)
	Source() string
}

// Environment carries the pluggable strategies one evaluation runs with. All
// fields are read-only from the core's point of view; a nil Environment (or a
// nil field) falls back to the defaults, so behavior is always fully
// determined by the arguments of a call.
type Environment struct {
	Arithmetic ArithmeticEngine
	Collator   Collator

	NumberFormat ValueFormatter
	DateFormat   ValueFormatter

	PlainNumberFormat PlainTextFormatter
	PlainDateFormat   PlainTextFormatter

	Booleans BooleanFormatter
}

var (
	defaultArithmetic       ArithmeticEngine   = DecimalEngine{}
	defaultCollator         Collator           = NewLocaleCollator(language.Und)
	defaultNumberFormat     ValueFormatter     = CanonicalNumberFormat{}
	defaultDateFormat       ValueFormatter     = CanonicalDateFormat{}
	defaultPlainNumber      PlainTextFormatter = CanonicalNumberFormat{}
	defaultPlainDate        PlainTextFormatter = CanonicalDateFormat{}
	defaultBooleanFormatter BooleanFormatter   = DefaultBooleanFormatter{}
)

// NewEnvironment returns an environment populated with the default
// strategies: decimal arithmetic, und-locale collation and the canonical
// formatters.
func NewEnvironment() *Environment {
	return &Environment{
		Arithmetic:        defaultArithmetic,
		Collator:          defaultCollator,
		NumberFormat:      defaultNumberFormat,
		DateFormat:        defaultDateFormat,
		PlainNumberFormat: defaultPlainNumber,
		PlainDateFormat:   defaultPlainDate,
		Booleans:          defaultBooleanFormatter,
	}
}

func (e *Environment) arithmeticEngine() ArithmeticEngine {
	if e == nil || e.Arithmetic == nil {
		return defaultArithmetic
	}
	return e.Arithmetic
}

func (e *Environment) collator() Collator {
	if e == nil || e.Collator == nil {
		return defaultCollator
	}
	return e.Collator
}

func (e *Environment) numberFormat() ValueFormatter {
	if e == nil || e.NumberFormat == nil {
		return defaultNumberFormat
	}
	return e.NumberFormat
}

func (e *Environment) dateFormat() ValueFormatter {
	if e == nil || e.DateFormat == nil {
		return defaultDateFormat
	}
	return e.DateFormat
}

func (e *Environment) plainNumberFormat() PlainTextFormatter {
	if e == nil || e.PlainNumberFormat == nil {
		return defaultPlainNumber
	}
	return e.PlainNumberFormat
}

func (e *Environment) plainDateFormat() PlainTextFormatter {
	if e == nil || e.PlainDateFormat == nil {
		return defaultPlainDate
	}
	return e.PlainDateFormat
}

func (e *Environment) booleanFormatter() BooleanFormatter {
	if e == nil || e.Booleans == nil {
		return defaultBooleanFormatter
	}
	return e.Booleans
}
