// Command outliner expands glyph contours into stroked outlines.
//
// Usage:
//
//	outliner expand   [flags] font.yaml [glyph...]
//	outliner preview  [flags] -o glyph.png font.yaml glyph
//	outliner proof    [flags] -o proof.pdf font.yaml [glyph...]
//	outliner import   [flags] -o font.yaml "Font Name" | font.ttf
//	outliner settings save|load|clear [flags] font.yaml
//	outliner watch    [flags] -o outlined.yaml font.yaml
//
// Outline options come from the built-in defaults, then the -config file,
// then OUTLINER_* environment variables, then flags. Run a command with -h
// to list its flags.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// errUsage reports bad arguments; the command's usage has been printed.
var errUsage = errors.New("invalid arguments")

type command struct {
	name  string
	usage string
	run   func(ctx context.Context, a *app, args []string) error
}

var commands = []command{
	{"expand", "outline glyphs in place or into a layer", cmdExpand},
	{"preview", "render one outlined glyph to PNG", cmdPreview},
	{"proof", "render outlined glyphs to a PDF proof sheet", cmdProof},
	{"import", "convert glyphs of a TrueType or OpenType font", cmdImport},
	{"settings", "save, load or clear settings stored for a font", cmdSettings},
	{"watch", "re-outline a glyph set whenever it changes", cmdWatch},
}

// app carries the process streams.
type app struct {
	stdout io.Writer
	stderr io.Writer
	ui     *ui
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr, ui: newUI(stdout, stderr)}
	if len(args) == 0 || args[0] == "-h" || args[0] == "help" {
		a.usage()
		return 2
	}
	for _, c := range commands {
		if c.name != args[0] {
			continue
		}
		err := c.run(ctx, a, args[1:])
		switch {
		case err == nil:
			return 0
		case errors.Is(err, flag.ErrHelp):
			return 0
		case errors.Is(err, errUsage):
			return 2
		}
		a.ui.fail("%s: %v", c.name, err)
		return 1
	}
	a.ui.fail("unknown command %q", args[0])
	a.usage()
	return 2
}

func (a *app) usage() {
	fmt.Fprintln(a.stderr, "usage: outliner <command> [flags] [args]")
	fmt.Fprintln(a.stderr)
	for _, c := range commands {
		fmt.Fprintf(a.stderr, "  %-9s %s\n", c.name, c.usage)
	}
}
