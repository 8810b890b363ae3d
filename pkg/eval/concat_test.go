package eval

import (
	"fmt"
	"testing"

	"vane/template-go/pkg/format"
	"vane/template-go/pkg/model"
)

// trackingFormat counts service calls, to pin down which reconciliation path
// the resolver takes.
type trackingFormat struct {
	name           string
	degradable     bool
	sourceCalls    int
	fromPlainCalls int
	concatCalls    int
}

type trackingMarkup struct {
	format *trackingFormat
	text   string
}

func (m *trackingMarkup) Kind() model.Kind { return model.KindMarkup }
func (m *trackingMarkup) Format() model.MarkupFormat { return m.format }

func (f *trackingFormat) Name() string { return f.name }

func (f *trackingFormat) SourcePlainText(mo model.MarkupOutput) (string, bool) {
	f.sourceCalls++
	if !f.degradable {
		return "", false
	}
	return mo.(*trackingMarkup).text, true
}

func (f *trackingFormat) FromPlainText(text string) (model.MarkupOutput, error) {
	f.fromPlainCalls++
	return &trackingMarkup{format: f, text: "esc(" + text + ")"}, nil
}

func (f *trackingFormat) Concat(a, b model.MarkupOutput) (model.MarkupOutput, error) {
	f.concatCalls++
	am, ok := a.(*trackingMarkup)
	bm, bok := b.(*trackingMarkup)
	if !ok || !bok || am.format != f || bm.format != f {
		return nil, fmt.Errorf("foreign operand handed to %s", f.name)
	}
	return &trackingMarkup{format: f, text: am.text + bm.text}, nil
}

func TestConcatSameFormatGoesNative(t *testing.T) {
	f := &trackingFormat{name: "T1", degradable: true}
	left := &trackingMarkup{format: f, text: "a"}
	right := &trackingMarkup{format: f, text: "b"}

	out, err := ConcatMarkupOutputs(nil, left, right)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.(*trackingMarkup).text != "ab" {
		t.Fatalf("expected native concatenation, got %q", out.(*trackingMarkup).text)
	}
	if f.sourceCalls != 0 || f.fromPlainCalls != 0 {
		t.Fatalf("same-format concat must never attempt the plain-text detour, got %+v", f)
	}
	if f.concatCalls != 1 {
		t.Fatalf("expected exactly one native concat, got %d", f.concatCalls)
	}
}

func TestConcatDifferentFormatsLeftWins(t *testing.T) {
	leftF := &trackingFormat{name: "LEFT", degradable: true}
	rightF := &trackingFormat{name: "RIGHT", degradable: true}
	left := &trackingMarkup{format: leftF, text: "a"}
	right := &trackingMarkup{format: rightF, text: "b"}

	out, err := ConcatMarkupOutputs(nil, left, right)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Both operands are degradable; the tie-break law says the left operand's
	// format is the result format.
	if out.Format() != model.MarkupFormat(leftF) {
		t.Fatalf("expected the left format to win, got %s", out.Format().Name())
	}
	if got := out.(*trackingMarkup).text; got != "aesc(b)" {
		t.Fatalf("expected the right operand re-escaped into the left format, got %q", got)
	}
}

func TestConcatFallsBackToLeftDegrade(t *testing.T) {
	leftF := &trackingFormat{name: "LEFT", degradable: true}
	rightF := &trackingFormat{name: "RIGHT", degradable: false}
	left := &trackingMarkup{format: leftF, text: "a"}
	right := &trackingMarkup{format: rightF, text: "b"}

	out, err := ConcatMarkupOutputs(nil, left, right)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Format() != model.MarkupFormat(rightF) {
		t.Fatalf("expected the right format when only the left degrades, got %s", out.Format().Name())
	}
	if got := out.(*trackingMarkup).text; got != "esc(a)b" {
		t.Fatalf("expected the left operand re-escaped into the right format, got %q", got)
	}
}

func TestConcatUnreconcilableFormats(t *testing.T) {
	leftF := &trackingFormat{name: "LEFT", degradable: false}
	rightF := &trackingFormat{name: "RIGHT", degradable: false}
	left := &trackingMarkup{format: leftF, text: "a"}
	right := &trackingMarkup{format: rightF, text: "b"}

	_, err := ConcatMarkupOutputs(lit(nil, "a + b"), left, right)
	evalErr := assertErrKind(t, err, ErrFormatsNotUnifiable)
	if evalErr.Left != "LEFT" || evalErr.Right != "RIGHT" {
		t.Fatalf("expected both format names in the error, got %+v", evalErr)
	}
	assertErrContains(t, err, "LEFT")
	assertErrContains(t, err, "RIGHT")
	assertErrContains(t, err, "a + b")
}

func TestConcatBuiltinFormats(t *testing.T) {
	html, err := format.FromMarkup(format.HTML, "<b>safe</b>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	plain, err := format.FromPlainText(format.Plain, "a < b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := ConcatMarkupOutputs(nil, html, plain)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Format() != format.HTML {
		t.Fatalf("expected an HTML result, got %s", out.Format().Name())
	}
	if got := out.(*format.Output).MarkupText(); got != "<b>safe</b>a &lt; b" {
		t.Fatalf("expected the plain side escaped into HTML, got %q", got)
	}
}

func TestConcatWithEmptyIsIdentity(t *testing.T) {
	left, err := format.FromPlainText(format.HTML, "x & y")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	empty, err := format.FromPlainText(format.HTML, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := ConcatMarkupOutputs(nil, left, empty)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := out.(*format.Output).MarkupText(); got != left.MarkupText() {
		t.Fatalf("expected an equivalent value, got %q want %q", got, left.MarkupText())
	}
}
