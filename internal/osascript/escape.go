package osascript

import "strings"

// Escape makes s safe to place between the double quotes of a script string
// literal as far as quoting goes. Backslashes are doubled before quotes are
// escaped; reversing the order would double-escape the backslashes inserted
// for the quotes. Line terminators are left alone; see EscapeMultiline.
func Escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}

// lineTerminators covers every character that ends a JavaScript string
// literal when it appears raw.
var lineTerminators = strings.NewReplacer(
	"\r", `\r`,
	"\n", `\n`,
	"\u2028", `\u2028`,
	"\u2029", `\u2029`,
)

// EscapeMultiline is Escape followed by a pass that turns every line
// terminator into its escape sequence. It must run after Escape so the
// backslashes it inserts are not doubled.
func EscapeMultiline(s string) string {
	return lineTerminators.Replace(Escape(s))
}

// Quote returns s as a complete double-quoted literal. Every interpolated
// value goes through here, including single-line fields like names and
// identifiers, since a stray newline in any of them would end the literal.
func Quote(s string) string {
	return `"` + EscapeMultiline(s) + `"`
}
