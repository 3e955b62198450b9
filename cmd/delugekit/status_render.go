package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

type statusStyle struct {
	tag    string
	colors text.Colors
}

var statusStyles = [...]statusStyle{
	statusInfo:  {tag: "INFO", colors: text.Colors{text.FgBlue}},
	statusOK:    {tag: "OK", colors: text.Colors{text.FgGreen}},
	statusWarn:  {tag: "WARN", colors: text.Colors{text.FgYellow}},
	statusError: {tag: "ERROR", colors: text.Colors{text.FgRed, text.Bold}},
}

// statusLabelWidth fits the longest label printed ("Sample dir:").
const statusLabelWidth = 12

// statusPrinter writes labelled status lines such as
//
//	  Skipped:     [WARN] empty.wav has no regions
//
// colorized only when out is a terminal.
type statusPrinter struct {
	out      io.Writer
	colorize bool
}

func newStatusPrinter(out io.Writer) statusPrinter {
	return statusPrinter{out: out, colorize: isTerminal(out)}
}

func (p statusPrinter) line(label string, kind statusKind, message string) {
	style := statusStyles[statusInfo]
	if int(kind) < len(statusStyles) {
		style = statusStyles[kind]
	}
	tag := "[" + style.tag + "]"
	if message != "" {
		tag += " " + message
	}
	line := fmt.Sprintf("  %-*s %s", statusLabelWidth, label+":", tag)
	if p.colorize {
		line = style.colors.Sprint(line)
	}
	fmt.Fprintln(p.out, line)
}

// section prints a file or kit path as a heading above its status lines.
func (p statusPrinter) section(title string) {
	title = strings.TrimSpace(title)
	if p.colorize {
		fmt.Fprintln(p.out, text.Colors{text.Bold, text.Underline}.Sprint(title))
		return
	}
	fmt.Fprintln(p.out, title)
	fmt.Fprintln(p.out, strings.Repeat("-", len(title)))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
