package eval

import (
	"errors"
	"strings"
	"testing"

	"vane/template-go/pkg/model"
)

// literalExpr is a stand-in for an evaluator AST node: it evaluates to a
// fixed value and remembers its source text for blaming.
type literalExpr struct {
	val model.Value
	src string
}

func (e literalExpr) Eval(env *Environment) (model.Value, error) { return e.val, nil }
func (e literalExpr) Source() string { return e.src }

func lit(v model.Value, src string) literalExpr {
	return literalExpr{val: v, src: src}
}

func num(t *testing.T, s string) model.Value {
	t.Helper()
	n, err := model.NumberFromString(s)
	if err != nil {
		t.Fatalf("bad test number %q: %v", s, err)
	}
	return n
}

func assertErrKind(t *testing.T, err error, want ErrorKind) *EvalError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	var evalErr *EvalError
	if !errors.As(err, &evalErr) {
		t.Fatalf("expected *EvalError, got %T: %v", err, err)
	}
	if evalErr.Kind != want {
		t.Fatalf("expected error kind %v, got %v (%v)", want, evalErr.Kind, evalErr)
	}
	return evalErr
}

func assertErrContains(t *testing.T, err error, substr string) {
	t.Helper()
	if err == nil || !strings.Contains(err.Error(), substr) {
		t.Fatalf("expected error containing %q, got %v", substr, err)
	}
}
