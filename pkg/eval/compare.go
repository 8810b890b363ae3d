package eval

import (
	"fmt"
	"time"

	"github.com/cockroachdb/apd/v3"

	"vane/template-go/pkg/model"
)

// CompareExpressions evaluates both operand expressions, then compares the
// results according to the rules of the template comparison operators.
//
// opSource may be empty; when present it is the operator spelling actually
// used in the source, quoted in error messages. defaultBlamed may be nil; it
// is the expression errors point at when the failure is not specific to one
// side.
func CompareExpressions(
	leftExp Expression, op Operator, opSource string, rightExp Expression,
	defaultBlamed Expression, env *Environment,
) (bool, error) {
	left, err := leftExp.Eval(env)
	if err != nil {
		return false, err
	}
	right, err := rightExp.Eval(env)
	if err != nil {
		return false, err
	}
	return Compare(
		left, leftExp,
		op, opSource,
		right, rightExp,
		defaultBlamed, false,
		false, false, false,
		env)
}

// CompareValues compares two already-evaluated values. Prefer
// CompareExpressions when the expressions are accessible; it gives better
// error messages.
func CompareValues(left model.Value, op Operator, right model.Value, env *Environment) (bool, error) {
	return Compare(
		left, nil,
		op, "",
		right, nil,
		nil, false,
		false, false, false,
		env)
}

// CompareValuesLenient is CompareValues, except incompatible kinds are
// treated as non-equal instead of failing. Comparing date-like values of
// different subtypes still fails.
func CompareValuesLenient(left model.Value, op Operator, right model.Value, env *Environment) (bool, error) {
	return Compare(
		left, nil,
		op, "",
		right, nil,
		nil, false,
		true, false, false,
		env)
}

// Compare is the full form behind the convenience entry points.
//
// leftExp/rightExp may be nil, at the cost of less precise blame.
// quoteOperands includes the operand source texts in incompatible-type
// errors. typeMismatchIsNotEqual downgrades incompatible kinds to a
// not-equal result for ==/!= (date subtype mismatches always fail).
// leftMissingIsFalse/rightMissingIsFalse downgrade a missing operand on the
// corresponding side to a false result instead of an error.
func Compare(
	left model.Value, leftExp Expression,
	op Operator, opSource string,
	right model.Value, rightExp Expression,
	defaultBlamed Expression, quoteOperands bool,
	typeMismatchIsNotEqual bool,
	leftMissingIsFalse bool, rightMissingIsFalse bool,
	env *Environment,
) (bool, error) {
	if left == nil {
		if leftMissingIsFalse {
			return false, nil
		}
		return false, newMissingOperandError(SideLeft, leftExp, defaultBlamed)
	}
	if right == nil {
		if rightMissingIsFalse {
			return false, nil
		}
		return false, newMissingOperandError(SideRight, rightExp, defaultBlamed)
	}

	var cmp int
	lk, rk := left.Kind(), right.Kind()
	switch {
	case lk == model.KindNumber && rk == model.KindNumber:
		leftNum, err := numberValue(left, leftExp)
		if err != nil {
			return false, err
		}
		rightNum, err := numberValue(right, rightExp)
		if err != nil {
			return false, err
		}
		c, err := env.arithmeticEngine().CompareNumbers(leftNum, rightNum)
		if err != nil {
			return false, &EvalError{
				Kind:   ErrIncompatibleTypes,
				Blamed: defaultBlamed,
				Detail: "unexpected error while comparing two numbers",
				Cause:  err,
			}
		}
		cmp = c

	case lk == model.KindDate && rk == model.KindDate:
		leftDate, err := dateModel(left, leftExp)
		if err != nil {
			return false, err
		}
		rightDate, err := dateModel(right, rightExp)
		if err != nil {
			return false, err
		}
		leftSub, rightSub := leftDate.Subtype(), rightDate.Subtype()
		if leftSub == model.DateSubtypeUnknown || rightSub == model.DateSubtypeUnknown {
			side, sideExp := SideLeft, leftExp
			if leftSub != model.DateSubtypeUnknown {
				side, sideExp = SideRight, rightExp
			}
			blamed := sideExp
			if blamed == nil {
				blamed = defaultBlamed
			}
			return false, &EvalError{Kind: ErrUnknownDateSubtype, Blamed: blamed, Side: side}
		}
		if leftSub != rightSub {
			return false, &EvalError{
				Kind:         ErrIncompatibleTypes,
				Blamed:       defaultBlamed,
				Left:         leftSub.String(),
				Right:        rightSub.String(),
				DateSubtypes: true,
			}
		}
		leftTime, err := dateValue(leftDate, leftExp)
		if err != nil {
			return false, err
		}
		rightTime, err := dateValue(rightDate, rightExp)
		if err != nil {
			return false, err
		}
		cmp = leftTime.Compare(rightTime)

	case lk == model.KindString && rk == model.KindString:
		if op != OpEquals && op != OpNotEquals {
			return false, &EvalError{
				Kind:     ErrIllegalOperatorForType,
				Blamed:   defaultBlamed,
				Operator: opName(op, opSource),
				Left:     "string",
			}
		}
		leftStr, err := stringValue(left, leftExp)
		if err != nil {
			return false, err
		}
		rightStr, err := stringValue(right, rightExp)
		if err != nil {
			return false, err
		}
		// Locale-sensitive even for ==/!=; a preserved quirk, see Collator.
		cmp = env.collator().CompareStrings(leftStr, rightStr)

	case lk == model.KindBool && rk == model.KindBool:
		if op != OpEquals && op != OpNotEquals {
			return false, &EvalError{
				Kind:     ErrIllegalOperatorForType,
				Blamed:   defaultBlamed,
				Operator: opName(op, opSource),
				Left:     "boolean",
			}
		}
		leftBool, err := boolValue(left, leftExp)
		if err != nil {
			return false, err
		}
		rightBool, err := boolValue(right, rightExp)
		if err != nil {
			return false, err
		}
		cmp = boolSignum(leftBool) - boolSignum(rightBool)

	default:
		if typeMismatchIsNotEqual {
			if op == OpEquals {
				return false, nil
			}
			if op == OpNotEquals {
				return true, nil
			}
			// Falls through to the error for relational operators.
		}
		evalErr := &EvalError{
			Kind:   ErrIncompatibleTypes,
			Blamed: defaultBlamed,
			Left:   lk.String(),
			Right:  rk.String(),
		}
		if quoteOperands {
			if leftExp != nil {
				evalErr.LeftSource = leftExp.Source()
			}
			if rightExp != nil {
				evalErr.RightSource = rightExp.Source()
			}
		}
		return false, evalErr
	}

	switch op {
	case OpEquals:
		return cmp == 0, nil
	case OpNotEquals:
		return cmp != 0, nil
	case OpLessThan:
		return cmp < 0, nil
	case OpGreaterThan:
		return cmp > 0, nil
	case OpLessOrEqual:
		return cmp <= 0, nil
	case OpGreaterOrEqual:
		return cmp >= 0, nil
	default:
		return false, &EvalError{
			Kind:   ErrInternalContractViolation,
			Detail: fmt.Sprintf("unsupported comparison operator code: %d", int(op)),
		}
	}
}

func newMissingOperandError(side Side, sideExp, defaultBlamed Expression) *EvalError {
	blamed := sideExp
	if blamed == nil {
		blamed = defaultBlamed
	}
	return &EvalError{Kind: ErrMissingValue, Blamed: blamed, Side: side}
}

//-----------------------------------------------------------------------------
// Model extraction. A model whose kind promises content but yields a null is
// a wrapper bug, reported as a contract violation rather than a user error.
//-----------------------------------------------------------------------------

func numberValue(v model.Value, exp Expression) (*apd.Decimal, error) {
	num, ok := v.(model.Number)
	if !ok {
		return nil, newKindMismatchError("number", v, exp)
	}
	dec := num.AsDecimal()
	if dec == nil {
		return nil, newStoredNullError("number", exp)
	}
	return dec, nil
}

func dateModel(v model.Value, exp Expression) (model.DateLike, error) {
	date, ok := v.(model.DateLike)
	if !ok {
		return nil, newKindMismatchError("date-like", v, exp)
	}
	return date, nil
}

func dateValue(date model.DateLike, exp Expression) (time.Time, error) {
	t, ok := date.AsTime()
	if !ok {
		return time.Time{}, newStoredNullError("date-like", exp)
	}
	return t, nil
}

func stringValue(v model.Value, exp Expression) (string, error) {
	str, ok := v.(model.String)
	if !ok {
		return "", newKindMismatchError("string", v, exp)
	}
	s, ok := str.AsString()
	if !ok {
		return "", newStoredNullError("string", exp)
	}
	return s, nil
}

func boolValue(v model.Value, exp Expression) (bool, error) {
	b, ok := v.(model.Bool)
	if !ok {
		return false, newKindMismatchError("boolean", v, exp)
	}
	return b.AsBool(), nil
}

func markupValue(v model.Value, exp Expression) (model.MarkupOutput, error) {
	mo, ok := v.(model.MarkupOutput)
	if !ok {
		return nil, newKindMismatchError("markup output", v, exp)
	}
	return mo, nil
}

func newKindMismatchError(claimed string, v model.Value, exp Expression) *EvalError {
	return &EvalError{
		Kind:   ErrInternalContractViolation,
		Blamed: exp,
		Detail: fmt.Sprintf("the value reports kind %s but does not implement the %s contract",
			v.Kind(), claimed),
	}
}

func boolSignum(b bool) int {
	if b {
		return 1
	}
	return 0
}
