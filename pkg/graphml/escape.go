package graphml

import "strings"

var (
	textEscaper = strings.NewReplacer(
		`&`, "&amp;",
		`<`, "&lt;",
		`>`, "&gt;",
		`"`, "&quot;",
		`'`, "&apos;",
		"\r", "&#xD;",
	)
	attrEscaper = strings.NewReplacer(
		`&`, "&amp;",
		`<`, "&lt;",
		`>`, "&gt;",
		`"`, "&quot;",
		`'`, "&apos;",
		"\r", "&#xD;",
		"\n", "&#xA;",
		"\t", "&#x9;",
	)
)

// Escape replaces the five XML special characters in s with their predefined
// entities, and carriage returns with a character reference so that line
// ending normalization leaves them intact. The result is safe as element
// text; attribute values use [EscapeAttr].
func Escape(s string) string {
	if !strings.ContainsAny(s, "&<>\"'\r") {
		return s
	}
	return textEscaper.Replace(s)
}

// EscapeAttr is [Escape] for attribute values. It also references newlines
// and tabs, which parsers would otherwise normalize to spaces.
func EscapeAttr(s string) string {
	if !strings.ContainsAny(s, "&<>\"'\r\n\t") {
		return s
	}
	return attrEscaper.Replace(s)
}
