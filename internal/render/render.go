// Package render turns editor state into a Frame that a terminal backend
// can paint. It performs no I/O.
package render

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/kobzarvs/sxcedit/internal/editor"
	"github.com/kobzarvs/sxcedit/internal/viewport"
)

// Frame is one screen's worth of text. Lines holds the document rows and
// never exceeds the document area; every string fits in Width columns.
type Frame struct {
	Width   int
	Height  int
	Mode    editor.Mode
	Lines   []string
	Status  string
	Command string

	CursorX       int
	CursorY       int
	CursorVisible bool
}

// DocRows is the number of rows left for the document once the status
// and command lines are reserved.
func DocRows(h int) int {
	if h < 2 {
		return 0
	}
	return h - 2
}

// Build lays out ed on a w by h screen. The document takes every row but
// the last two; the status line and the command line follow it.
func Build(ed *editor.Editor, w, h, tabWidth int) Frame {
	f := Frame{Width: w, Height: h, Mode: ed.Mode()}
	if w <= 0 || h <= 0 {
		return f
	}
	if tabWidth < 1 {
		tabWidth = 1
	}

	rows := DocRows(h)
	view := viewport.Layout(ed.Document(), rows)
	f.Lines = make([]string, 0, len(view.Lines))
	for i, line := range view.Lines {
		cursor := -1
		if view.HasCursor && i == view.CursorRow {
			cursor = view.CursorCol
		}
		text, col := Expand(line, tabWidth, cursor)
		f.Lines = append(f.Lines, Clip(text, w))
		if cursor >= 0 {
			f.CursorX, f.CursorY = col, i
			f.CursorVisible = true
		}
	}

	f.Status = composeStatusLine(statusText(ed), usageText(ed), w)

	cmd := ed.CommandLine().Bytes()
	prefix := ""
	if ed.Mode() == editor.ModeCommand {
		prefix = ":"
	}
	cmdText, cmdCol := Expand(cmd, tabWidth, ed.CommandLine().Offset())
	f.Command = Clip(prefix+cmdText, w)

	if ed.Mode() == editor.ModeCommand {
		f.CursorX = len(prefix) + cmdCol
		f.CursorY = h - 1
		f.CursorVisible = true
	}
	if f.CursorX >= w {
		f.CursorX = w - 1
	}
	return f
}

func statusText(ed *editor.Editor) string {
	text := "[" + ed.Mode().String() + "_MODE]"
	if msg := ed.StatusMessage(); msg != "" {
		text += ", message: [" + msg + "]"
	}
	return text
}

func usageText(ed *editor.Editor) string {
	a := ed.Arena()
	return fmt.Sprintf("%d/%d", a.Live(), a.Cap())
}

// Expand converts raw bytes to display text. Tabs advance to the next
// multiple of tabWidth; control bytes and invalid UTF-8 show as '?'.
// cursor is a byte offset into line, and col is its display column, or
// the width of the text when cursor is past the end.
func Expand(line []byte, tabWidth, cursor int) (text string, col int) {
	if tabWidth < 1 {
		tabWidth = 1
	}
	var b strings.Builder
	width := 0
	col = -1
	for i := 0; i < len(line); {
		r, size := utf8.DecodeRune(line[i:])
		if col < 0 && cursor >= i && cursor < i+size {
			col = width
		}
		switch {
		case r == '\t':
			n := tabWidth - width%tabWidth
			b.WriteString(strings.Repeat(" ", n))
			width += n
		case r == utf8.RuneError && size <= 1, !unicode.IsPrint(r):
			b.WriteByte('?')
			width++
		default:
			b.WriteRune(r)
			width += runewidth.RuneWidth(r)
		}
		i += size
	}
	if col < 0 {
		col = width
	}
	return b.String(), col
}

// Clip cuts text so that it fits in width columns. A wide rune that would
// straddle the edge is dropped.
func Clip(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) <= width {
		return text
	}
	var b strings.Builder
	current := 0
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if current+w > width {
			break
		}
		b.WriteRune(r)
		current += w
	}
	return b.String()
}

func composeStatusLine(left, right string, width int) string {
	if width <= 0 {
		return ""
	}
	lw := runewidth.StringWidth(left)
	rw := runewidth.StringWidth(right)
	if lw+rw+1 > width {
		return Clip(left, width)
	}
	return left + strings.Repeat(" ", width-lw-rw) + right
}
