package eval

import (
	"fmt"

	"vane/template-go/pkg/model"
)

// TextOrMarkup carries the result of a formatting or coercion step that may
// yield either plain text or markup. Markup is nil when Text is the result.
type TextOrMarkup struct {
	Text   string
	Markup model.MarkupOutput
}

func (r TextOrMarkup) IsMarkup() bool { return r.Markup != nil }

// ValueFormatter turns a number or date value into text or markup.
type ValueFormatter interface {
	Format(v model.Value) (TextOrMarkup, error)
}

// PlainTextFormatter is the plain-text-only formatting path, used when the
// caller must bypass a markup-producing formatter.
type PlainTextFormatter interface {
	FormatToPlainText(v model.Value) (string, error)
}

// BooleanFormatter is the pluggable boolean-to-string rule.
type BooleanFormatter interface {
	FormatBoolean(v bool) (string, error)
}

//-----------------------------------------------------------------------------
// Canonical defaults
//-----------------------------------------------------------------------------

// CanonicalNumberFormat renders a number as its exact decimal text form. It
// is locale-blind scaffolding; real engines inject locale-aware formatters.
type CanonicalNumberFormat struct{}

func (f CanonicalNumberFormat) Format(v model.Value) (TextOrMarkup, error) {
	text, err := f.FormatToPlainText(v)
	if err != nil {
		return TextOrMarkup{}, err
	}
	return TextOrMarkup{Text: text}, nil
}

func (CanonicalNumberFormat) FormatToPlainText(v model.Value) (string, error) {
	num, ok := v.(model.Number)
	if !ok {
		return "", fmt.Errorf("expected a number value, got %s", describeValue(v))
	}
	dec := num.AsDecimal()
	if dec == nil {
		return "", newStoredNullError("number", nil)
	}
	return dec.Text('f'), nil
}

// CanonicalDateFormat renders a date-like value in an ISO-ish layout chosen
// by its subtype.
type CanonicalDateFormat struct{}

func (f CanonicalDateFormat) Format(v model.Value) (TextOrMarkup, error) {
	text, err := f.FormatToPlainText(v)
	if err != nil {
		return TextOrMarkup{}, err
	}
	return TextOrMarkup{Text: text}, nil
}

func (CanonicalDateFormat) FormatToPlainText(v model.Value) (string, error) {
	date, ok := v.(model.DateLike)
	if !ok {
		return "", fmt.Errorf("expected a date-like value, got %s", describeValue(v))
	}
	t, ok := date.AsTime()
	if !ok {
		return "", newStoredNullError("date-like", nil)
	}
	switch date.Subtype() {
	case model.DateSubtypeDate:
		return t.Format("2006-01-02"), nil
	case model.DateSubtypeTime:
		return t.Format("15:04:05"), nil
	case model.DateSubtypeDateTime:
		return t.Format("2006-01-02 15:04:05"), nil
	default:
		return "", &EvalError{Kind: ErrUnknownDateSubtype}
	}
}

// DefaultBooleanFormatter renders booleans as "true"/"false".
type DefaultBooleanFormatter struct{}

func (DefaultBooleanFormatter) FormatBoolean(v bool) (string, error) {
	if v {
		return "true", nil
	}
	return "false", nil
}

func describeValue(v model.Value) string {
	if v == nil {
		return "missing value"
	}
	return v.Kind().String()
}
