package eval

import (
	"vane/template-go/pkg/model"
)

// CoerceToStringOrMarkup converts a value to output text, or to markup when
// the value formatter involved produces markup. MarkupOutput values pass
// through unchanged.
//
// seqHint is an optional usage hint shown when the value turns out to be a
// sequence or collection (e.g. "this directive needs a string").
func CoerceToStringOrMarkup(v model.Value, exp Expression, seqHint string, env *Environment) (TextOrMarkup, error) {
	if v != nil {
		switch v.Kind() {
		case model.KindNumber:
			res, err := env.numberFormat().Format(v)
			if err != nil {
				return TextOrMarkup{}, newCantFormatError("number", exp, err)
			}
			return assertFormatResult(res)
		case model.KindDate:
			res, err := env.dateFormat().Format(v)
			if err != nil {
				return TextOrMarkup{}, newCantFormatError("date-like", exp, err)
			}
			return assertFormatResult(res)
		case model.KindMarkup:
			mo, err := markupValue(v, exp)
			if err != nil {
				return TextOrMarkup{}, err
			}
			return TextOrMarkup{Markup: mo}, nil
		}
	}
	text, _, err := coerceToTextualCommon(v, exp, seqHint, true, false, env)
	if err != nil {
		return TextOrMarkup{}, err
	}
	return TextOrMarkup{Text: text}, nil
}

// ProbeStringOrMarkup is the probing shape of CoerceToStringOrMarkup: when
// the value's kind is simply not string-coercible it reports ok=false
// instead of failing. All other failures (missing value, stored nulls,
// formatter errors) still return an error. It is a distinct entry point on
// purpose; the failing and probing contracts never share a flag.
func ProbeStringOrMarkup(v model.Value, exp Expression, seqHint string, env *Environment) (TextOrMarkup, bool, error) {
	if v != nil {
		switch v.Kind() {
		case model.KindNumber:
			res, err := env.numberFormat().Format(v)
			if err != nil {
				return TextOrMarkup{}, false, newCantFormatError("number", exp, err)
			}
			res, err = assertFormatResult(res)
			return res, err == nil, err
		case model.KindDate:
			res, err := env.dateFormat().Format(v)
			if err != nil {
				return TextOrMarkup{}, false, newCantFormatError("date-like", exp, err)
			}
			res, err = assertFormatResult(res)
			return res, err == nil, err
		case model.KindMarkup:
			mo, err := markupValue(v, exp)
			if err != nil {
				return TextOrMarkup{}, false, err
			}
			return TextOrMarkup{Markup: mo}, true, nil
		}
	}
	text, ok, err := coerceToTextualCommon(v, exp, seqHint, true, true, env)
	if err != nil || !ok {
		return TextOrMarkup{}, false, err
	}
	return TextOrMarkup{Text: text}, true, nil
}

// CoerceToStringOrUnsupportedMarkup is CoerceToStringOrMarkup for contexts
// that structurally cannot consume markup: a formatter producing markup is an
// error, and a MarkupOutput input is never accepted.
func CoerceToStringOrUnsupportedMarkup(v model.Value, exp Expression, seqHint string, env *Environment) (string, error) {
	if v != nil {
		switch v.Kind() {
		case model.KindNumber:
			res, err := env.numberFormat().Format(v)
			if err != nil {
				return "", newCantFormatError("number", exp, err)
			}
			return ensureFormatResultText(res, exp)
		case model.KindDate:
			res, err := env.dateFormat().Format(v)
			if err != nil {
				return "", newCantFormatError("date-like", exp, err)
			}
			return ensureFormatResultText(res, exp)
		}
	}
	text, _, err := coerceToTextualCommon(v, exp, seqHint, false, false, env)
	return text, err
}

// CoerceToPlainText converts a value to plain text even when the default
// formatter for it would produce markup, by taking the plain-text-only
// formatting path. Use it where the user clearly asked for plain text.
func CoerceToPlainText(v model.Value, exp Expression, seqHint string, env *Environment) (string, error) {
	if v != nil {
		switch v.Kind() {
		case model.KindNumber:
			text, err := env.plainNumberFormat().FormatToPlainText(v)
			if err != nil {
				return "", newCantFormatError("number", exp, err)
			}
			return text, nil
		case model.KindDate:
			text, err := env.plainDateFormat().FormatToPlainText(v)
			if err != nil {
				return "", newCantFormatError("date-like", exp, err)
			}
			return text, nil
		}
	}
	text, _, err := coerceToTextualCommon(v, exp, seqHint, false, false, env)
	return text, err
}

// coerceToTextualCommon is the shared tail for the non-number/date kinds.
// supportsMarkup records whether the calling entry point could have accepted
// markup; it only changes which not-coercible error is produced. probing
// turns the not-coercible failures into an ok=false result.
func coerceToTextualCommon(
	v model.Value, exp Expression, seqHint string,
	supportsMarkup bool, probing bool, env *Environment,
) (string, bool, error) {
	if v == nil {
		return "", false, &EvalError{Kind: ErrMissingValue, Blamed: exp}
	}
	switch v.Kind() {
	case model.KindString:
		s, err := stringValue(v, exp)
		if err != nil {
			return "", false, err
		}
		return s, true, nil
	case model.KindBool:
		b, err := boolValue(v, exp)
		if err != nil {
			return "", false, err
		}
		s, err := env.booleanFormatter().FormatBoolean(b)
		if err != nil {
			return "", false, newCantFormatError("boolean", exp, err)
		}
		return s, true, nil
	case model.KindSequence, model.KindCollection:
		if probing {
			return "", false, nil
		}
		return "", false, &EvalError{
			Kind:          ErrNotStringCoercible,
			Blamed:        exp,
			Left:          v.Kind().String(),
			MarkupAllowed: supportsMarkup,
			Hint:          seqHint,
		}
	default:
		if probing {
			return "", false, nil
		}
		return "", false, &EvalError{
			Kind:          ErrNotStringCoercible,
			Blamed:        exp,
			Left:          v.Kind().String(),
			MarkupAllowed: supportsMarkup,
		}
	}
}

// ensureFormatResultText rejects markup formatter results for entry points
// that cannot consume markup.
func ensureFormatResultText(res TextOrMarkup, exp Expression) (string, error) {
	if !res.IsMarkup() {
		return res.Text, nil
	}
	return "", &EvalError{
		Kind:   ErrNotStringCoercible,
		Blamed: exp,
		Format: res.Markup.Format().Name(),
		Hint:   "use the plain-text coercion to force formatting to plain text",
	}
}

// assertFormatResult guards the formatter contract: a markup result must
// carry its output format. A violation is a formatter bug.
func assertFormatResult(res TextOrMarkup) (TextOrMarkup, error) {
	if res.IsMarkup() && res.Markup.Format() == nil {
		return TextOrMarkup{}, &EvalError{
			Kind:   ErrInternalContractViolation,
			Detail: "the formatter returned markup without an output format",
		}
	}
	return res, nil
}

func newCantFormatError(kind string, exp Expression, cause error) error {
	if evalErr, ok := cause.(*EvalError); ok {
		// Bug-class failures from the formatter keep their own kind.
		if evalErr.Kind == ErrInternalContractViolation {
			if evalErr.Blamed == nil {
				evalErr.Blamed = exp
			}
			return evalErr
		}
	}
	return &EvalError{Kind: ErrFormatFailure, Blamed: exp, Left: kind, Cause: cause}
}
