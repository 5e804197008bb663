package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/pmezard/go-difflib/difflib"
)

// diffPrinter writes unified diffs, colored when writing to a terminal.
type diffPrinter struct {
	w      io.Writer
	header *color.Color
	hunk   *color.Color
	add    *color.Color
	del    *color.Color
}

func newDiffPrinter(f *os.File) *diffPrinter {
	p := &diffPrinter{
		w:      f,
		header: color.New(color.Bold),
		hunk:   color.New(color.FgCyan),
		add:    color.New(color.FgGreen),
		del:    color.New(color.FgRed),
	}

	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		for _, c := range []*color.Color{p.header, p.hunk, p.add, p.del} {
			c.DisableColor()
		}
	}

	return p
}

// print writes the diff between before and after of path. Nothing is
// written when they are equal.
func (p *diffPrinter) print(path string, before, after []byte) error {
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  3,
	})
	if err != nil {
		return err
	}

	for _, line := range strings.SplitAfter(text, "\n") {
		if line == "" {
			continue
		}

		if c := p.lineColor(line); c != nil {
			_, err = c.Fprint(p.w, line)
		} else {
			_, err = io.WriteString(p.w, line)
		}

		if err != nil {
			return err
		}
	}

	if text != "" && !strings.HasSuffix(text, "\n") {
		_, err = fmt.Fprintln(p.w)
	}

	return err
}

func (p *diffPrinter) lineColor(line string) *color.Color {
	switch {
	case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"):
		return p.header
	case strings.HasPrefix(line, "@@"):
		return p.hunk
	case strings.HasPrefix(line, "+"):
		return p.add
	case strings.HasPrefix(line, "-"):
		return p.del
	default:
		return nil
	}
}
