package format

import (
	"testing"

	"vane/template-go/pkg/model"
)

func TestEscaping(t *testing.T) {
	cases := []struct {
		format model.MarkupFormat
		in     string
		want   string
	}{
		{HTML, `<a href="x">&'`, "&lt;a href=&quot;x&quot;&gt;&amp;&#39;"},
		{XML, `<tag attr='v'>&`, "&lt;tag attr=&apos;v&apos;&gt;&amp;"},
		{RTF, `{\rtf}`, `\{\\rtf\}`},
		{Plain, "a < b & c", "a < b & c"},
	}
	for _, tc := range cases {
		mo, err := tc.format.FromPlainText(tc.in)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.format.Name(), err)
		}
		if got := mo.(*Output).MarkupText(); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.format.Name(), tc.want, got)
		}
	}
}

func TestSourcePlainText(t *testing.T) {
	fromPlain, err := FromPlainText(HTML, "a & b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text, ok := HTML.SourcePlainText(fromPlain)
	if !ok || text != "a & b" {
		t.Fatalf("expected the original plain text, got %q, %v", text, ok)
	}

	fromMarkup, err := FromMarkup(HTML, "<b>x</b>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := HTML.SourcePlainText(fromMarkup); ok {
		t.Fatalf("markup-built output must not expose plain source text")
	}

	// A value is only degradable through its own format.
	if _, ok := XML.SourcePlainText(fromPlain); ok {
		t.Fatalf("foreign formats must not degrade each other's values")
	}
}

func TestConcatKeepsPlainTextDegradable(t *testing.T) {
	a, err := HTML.FromPlainText("x & ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := HTML.FromPlainText("y")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := HTML.Concat(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text, ok := HTML.SourcePlainText(out)
	if !ok || text != "x & y" {
		t.Fatalf("expected a still-degradable plain result, got %q, %v", text, ok)
	}
	if got := out.(*Output).MarkupText(); got != "x &amp; y" {
		t.Fatalf("expected escaped markup, got %q", got)
	}
}

func TestConcatMixedGoesMarkup(t *testing.T) {
	a, err := FromMarkup(HTML, "<i>a</i>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := FromPlainText(HTML, "< b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := HTML.Concat(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := HTML.SourcePlainText(out); ok {
		t.Fatalf("a markup-carrying result must not claim plain source text")
	}
	if got := out.(*Output).MarkupText(); got != "<i>a</i>&lt; b" {
		t.Fatalf("expected %q, got %q", "<i>a</i>&lt; b", got)
	}
}

func TestConcatRejectsForeignOperand(t *testing.T) {
	a, err := FromPlainText(HTML, "a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := FromPlainText(XML, "b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := HTML.Concat(a, b); err == nil {
		t.Fatalf("expected a foreign-operand error")
	}
}

func TestFromMarkupRejectsForeignFormat(t *testing.T) {
	if _, err := FromMarkup(foreignFormat{}, "x"); err == nil {
		t.Fatalf("expected an error for a non-built-in format")
	}
}

type foreignFormat struct{}

func (foreignFormat) Name() string { return "FOREIGN" }
func (foreignFormat) SourcePlainText(model.MarkupOutput) (string, bool) { return "", false }
func (foreignFormat) FromPlainText(string) (model.MarkupOutput, error) { return nil, nil }
func (foreignFormat) Concat(a, b model.MarkupOutput) (model.MarkupOutput, error) {
	return nil, nil
}
