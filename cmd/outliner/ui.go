package main

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// ui prints status lines, coloured when the stream is a terminal.
type ui struct {
	out *termenv.Output
	err *termenv.Output
}

func newUI(stdout, stderr io.Writer) *ui {
	return &ui{out: termenv.NewOutput(stdout), err: termenv.NewOutput(stderr)}
}

func (u *ui) ok(format string, args ...any) {
	tag := u.out.String("ok").Foreground(termenv.ANSIGreen).Bold()
	fmt.Fprintf(u.out, "%s %s\n", tag, fmt.Sprintf(format, args...))
}

func (u *ui) warn(format string, args ...any) {
	tag := u.err.String("warning").Foreground(termenv.ANSIYellow).Bold()
	fmt.Fprintf(u.err, "%s %s\n", tag, fmt.Sprintf(format, args...))
}

func (u *ui) fail(format string, args ...any) {
	tag := u.err.String("error").Foreground(termenv.ANSIRed).Bold()
	fmt.Fprintf(u.err, "%s %s\n", tag, fmt.Sprintf(format, args...))
}

// value prints an aligned key/value line.
func (u *ui) value(key string, v any) {
	fmt.Fprintf(u.out, "%-20s %s\n", u.out.String(key).Faint(), fmt.Sprint(v))
}
