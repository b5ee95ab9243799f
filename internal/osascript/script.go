package osascript

import (
	"fmt"
	"strings"
)

// Literal is fixed script code to splice verbatim through Linef.
type Literal string

// Script accumulates the source of one generated program.
//
// Linef is the only way to interpolate values: plain string arguments are
// always passed through Quote, so caller-supplied text cannot reach the
// script unescaped. Line takes fixed code only.
type Script struct {
	lines []string
}

// NewScript starts a script with the given fixed preamble lines.
func NewScript(preamble ...string) *Script {
	s := &Script{}
	for _, line := range preamble {
		s.Line(line)
	}
	return s
}

// Line appends fixed code.
func (s *Script) Line(code string) *Script {
	s.lines = append(s.lines, code)
	return s
}

// Linef appends a formatted line. String arguments are quoted; Literal
// arguments are inserted as-is; everything else is formatted normally.
func (s *Script) Linef(format string, args ...any) *Script {
	safe := make([]any, len(args))
	for i, a := range args {
		switch v := a.(type) {
		case string:
			safe[i] = Quote(v)
		case Literal:
			safe[i] = string(v)
		default:
			safe[i] = v
		}
	}
	s.lines = append(s.lines, fmt.Sprintf(format, safe...))
	return s
}

func (s *Script) String() string {
	return strings.Join(s.lines, "\n")
}
