package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/danieljhkim/modlayout/internal/engine"
	"github.com/danieljhkim/modlayout/internal/layouts"
	"github.com/danieljhkim/modlayout/internal/report"
)

// colorLogger writes log events to a terminal, coloured by severity.
type colorLogger struct {
	w   io.Writer
	min report.Level
}

func newColorLogger(w io.Writer, min report.Level) *colorLogger {
	return &colorLogger{w: w, min: min}
}

func (l *colorLogger) Log(level report.Level, msg string, args ...any) {
	if level < l.min {
		return
	}
	_, _ = levelColor(level).Fprintln(l.w, report.Format(level, msg, args...))
}

func levelColor(level report.Level) *color.Color {
	switch level {
	case report.LevelError:
		return errorColor
	case report.LevelWarn:
		return warningColor
	case report.LevelInfo:
		return infoColor
	default:
		return dimColor
	}
}

// terminalDialog prints unrecoverable structure errors with the archive's
// contents so the user can see what was found.
type terminalDialog struct {
	w io.Writer
}

func newTerminalDialog(w io.Writer) *terminalDialog {
	return &terminalDialog{w: w}
}

func (d *terminalDialog) ShowUnrecoverableStructureError(installer, msg string, paths []string) {
	_, _ = errorColor.Fprintf(d.w, "✗ %s: %s\n", installer, msg)
	_, _ = fmt.Fprintf(d.w, "  The archive contains %s:\n", PrintCount(len(paths), "file", "files"))
	for _, p := range paths {
		_, _ = dimColor.Fprintf(d.w, "    %s\n", p)
	}
}

// terminalPrompter asks on the terminal whether to install a deprecated
// layout. With assumeYes it proceeds without asking.
type terminalPrompter struct {
	in        *bufio.Reader
	out       io.Writer
	assumeYes bool
}

func newTerminalPrompter(in io.Reader, out io.Writer, assumeYes bool) *terminalPrompter {
	return &terminalPrompter{in: bufio.NewReader(in), out: out, assumeYes: assumeYes}
}

func (p *terminalPrompter) PromptDeprecated(_ context.Context, kind layouts.Kind, files []string, features layouts.FeatureSet) (engine.Decision, error) {
	if p.assumeYes {
		return engine.Proceed, nil
	}

	_, _ = warningColor.Fprintf(p.out, "⚠ %s is a deprecated layout.\n", kind)
	_, _ = fmt.Fprintf(p.out, "  Installing it will copy %s:\n", PrintCount(len(files), "file", "files"))
	for _, f := range files {
		_, _ = dimColor.Fprintf(p.out, "    %s\n", f)
	}
	if features.REDmodAutoconvertArchives {
		_, _ = fmt.Fprintln(p.out, "  REDmod autoconvert is enabled.")
	}
	_, _ = fmt.Fprint(p.out, "Install anyway? [y/N]: ")

	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return engine.Cancel, fmt.Errorf("failed to read answer: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return engine.Proceed, nil
	default:
		return engine.Cancel, nil
	}
}
