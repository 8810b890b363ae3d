// Package format provides the built-in markup output formats: escaping rules
// plus the markup value type they all share.
package format

import (
	"fmt"
	"strings"

	"vane/template-go/pkg/model"
)

// Output is the markup value shared by all built-in formats. It remembers
// the plain text it was built from, when there is one, so the concatenation
// resolver can degrade it back to plain text. Markup is computed lazily from
// the plain text.
type Output struct {
	format *escapingFormat

	plain      string
	plainKnown bool

	markup      string
	markupKnown bool
}

func (o *Output) Kind() model.Kind { return model.KindMarkup }
func (o *Output) Format() model.MarkupFormat { return o.format }

// MarkupText returns the escaped markup form of the value.
func (o *Output) MarkupText() string {
	if !o.markupKnown {
		o.markup = o.format.escape(o.plain)
		o.markupKnown = true
	}
	return o.markup
}

// FromMarkup wraps already-escaped markup text in the given built-in format.
// The result is not degradable to plain text.
func FromMarkup(f model.MarkupFormat, markup string) (*Output, error) {
	ef, ok := f.(*escapingFormat)
	if !ok {
		return nil, fmt.Errorf("output format %s is not a built-in format", f.Name())
	}
	return &Output{format: ef, markup: markup, markupKnown: true}, nil
}

// FromPlainText escapes plain text into the given built-in format.
func FromPlainText(f model.MarkupFormat, text string) (*Output, error) {
	mo, err := f.FromPlainText(text)
	if err != nil {
		return nil, err
	}
	return mo.(*Output), nil
}

//-----------------------------------------------------------------------------
// Built-in formats
//-----------------------------------------------------------------------------

type escapingFormat struct {
	name   string
	escape func(string) string
}

func (f *escapingFormat) Name() string { return f.name }

func (f *escapingFormat) SourcePlainText(mo model.MarkupOutput) (string, bool) {
	o, ok := mo.(*Output)
	if !ok || o.format != f || !o.plainKnown {
		return "", false
	}
	return o.plain, true
}

func (f *escapingFormat) FromPlainText(text string) (model.MarkupOutput, error) {
	return &Output{format: f, plain: text, plainKnown: true}, nil
}

func (f *escapingFormat) Concat(a, b model.MarkupOutput) (model.MarkupOutput, error) {
	ao, err := f.own(a)
	if err != nil {
		return nil, err
	}
	bo, err := f.own(b)
	if err != nil {
		return nil, err
	}
	// While both sides are still plain text, the result stays plain text, so
	// it remains degradable for later format reconciliation.
	if ao.plainKnown && bo.plainKnown && !ao.markupKnown && !bo.markupKnown {
		return &Output{format: f, plain: ao.plain + bo.plain, plainKnown: true}, nil
	}
	return &Output{format: f, markup: ao.MarkupText() + bo.MarkupText(), markupKnown: true}, nil
}

func (f *escapingFormat) own(mo model.MarkupOutput) (*Output, error) {
	o, ok := mo.(*Output)
	if !ok || o.format != f {
		return nil, fmt.Errorf("operand is not %s markup; reconciling foreign formats is the concatenation resolver's job", f.name)
	}
	return o, nil
}

// HTML escapes &, <, >, " and '.
var HTML model.MarkupFormat = &escapingFormat{name: "HTML", escape: escapeHTML}

// XML escapes the five predefined XML entities.
var XML model.MarkupFormat = &escapingFormat{name: "XML", escape: escapeXML}

// RTF escapes the RTF control characters \, { and }.
var RTF model.MarkupFormat = &escapingFormat{name: "RTF", escape: escapeRTF}

// Plain is the markup-less passthrough format; its "markup" is its plain
// text, so it is always degradable.
var Plain model.MarkupFormat = &escapingFormat{name: "plainText", escape: func(s string) string { return s }}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

func escapeHTML(s string) string { return htmlEscaper.Replace(s) }

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeXML(s string) string { return xmlEscaper.Replace(s) }

var rtfEscaper = strings.NewReplacer(
	`\`, `\\`,
	"{", `\{`,
	"}", `\}`,
)

func escapeRTF(s string) string { return rtfEscaper.Replace(s) }
