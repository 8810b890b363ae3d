package eval

import (
	"vane/template-go/pkg/model"
)

// ConcatMarkupOutputs joins two markup values. Same-format operands go
// straight to the format's native concatenation. Operands of different
// formats are reconciled through plain text when possible: first the right
// operand is degraded and re-escaped into the left format, then the
// symmetric case is tried. The ordering is an observable tie-break: when
// both operands are plain-text-representable, the left operand's format wins
// as the result format.
func ConcatMarkupOutputs(parent Expression, left, right model.MarkupOutput) (model.MarkupOutput, error) {
	leftOF := left.Format()
	rightOF := right.Format()
	if leftOF != rightOF {
		if rightPT, ok := rightOF.SourcePlainText(right); ok {
			escaped, err := fromPlainText(leftOF, rightPT, parent)
			if err != nil {
				return nil, err
			}
			return formatConcat(leftOF, left, escaped, parent)
		}
		if leftPT, ok := leftOF.SourcePlainText(left); ok {
			escaped, err := fromPlainText(rightOF, leftPT, parent)
			if err != nil {
				return nil, err
			}
			return formatConcat(rightOF, escaped, right, parent)
		}
		return nil, &EvalError{
			Kind:   ErrFormatsNotUnifiable,
			Blamed: parent,
			Left:   leftOF.Name(),
			Right:  rightOF.Name(),
		}
	}
	return formatConcat(leftOF, left, right, parent)
}

func fromPlainText(f model.MarkupFormat, text string, parent Expression) (model.MarkupOutput, error) {
	mo, err := f.FromPlainText(text)
	if err != nil {
		return nil, &EvalError{Kind: ErrFormatFailure, Blamed: parent, Left: f.Name(), Cause: err}
	}
	if mo == nil {
		return nil, &EvalError{
			Kind:   ErrInternalContractViolation,
			Blamed: parent,
			Detail: "the output format returned nil markup from its plain-text conversion",
		}
	}
	return mo, nil
}

func formatConcat(f model.MarkupFormat, a, b model.MarkupOutput, parent Expression) (model.MarkupOutput, error) {
	out, err := f.Concat(a, b)
	if err != nil {
		return nil, &EvalError{Kind: ErrFormatFailure, Blamed: parent, Left: f.Name(), Cause: err}
	}
	if out == nil {
		return nil, &EvalError{
			Kind:   ErrInternalContractViolation,
			Blamed: parent,
			Detail: "the output format returned nil markup from its concatenation",
		}
	}
	return out, nil
}
