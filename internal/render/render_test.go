package render

import (
	"strings"
	"testing"

	"github.com/kobzarvs/sxcedit/internal/config"
	"github.com/kobzarvs/sxcedit/internal/editor"
)

func newTestEditor(t *testing.T, input string) *editor.Editor {
	t.Helper()
	cfg := config.Default()
	cfg.Editor.Capacity = 256
	e, err := editor.New(cfg, nil)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if _, err := e.Process([]byte(input)); err != nil {
		t.Fatalf("Process error: %v", err)
	}
	return e
}

func TestBuildNormalMode(t *testing.T) {
	e := newTestEditor(t, "iab\ncd\x1b")
	f := Build(e, 20, 5, 4)
	if len(f.Lines) != 2 || f.Lines[0] != "ab" || f.Lines[1] != "cd" {
		t.Fatalf("lines = %q, want [ab cd]", f.Lines)
	}
	if !strings.HasPrefix(f.Status, "[NORMAL_MODE]") {
		t.Fatalf("status = %q, want NORMAL_MODE prefix", f.Status)
	}
	if strings.Contains(f.Status, "message") {
		t.Fatalf("status = %q, want no message section", f.Status)
	}
	if len(f.Status) != 20 {
		t.Fatalf("status width = %d, want 20", len(f.Status))
	}
	if !f.CursorVisible || f.CursorX != 2 || f.CursorY != 1 {
		t.Fatalf("cursor = (%d,%d,%v), want (2,1,true)", f.CursorX, f.CursorY, f.CursorVisible)
	}
}

func TestBuildCommandMode(t *testing.T) {
	e := newTestEditor(t, ":sa")
	f := Build(e, 20, 5, 4)
	if f.Command != ":sa" {
		t.Fatalf("command = %q, want %q", f.Command, ":sa")
	}
	if f.CursorY != 4 || f.CursorX != 3 {
		t.Fatalf("cursor = (%d,%d), want (3,4)", f.CursorX, f.CursorY)
	}
	if !strings.HasPrefix(f.Status, "[CMD_MODE]") {
		t.Fatalf("status = %q, want CMD_MODE prefix", f.Status)
	}
}

func TestBuildPendingCommandHasNoColon(t *testing.T) {
	e := newTestEditor(t, ":sa\x1b")
	f := Build(e, 20, 5, 4)
	if f.Command != "sa" {
		t.Fatalf("command = %q, want %q", f.Command, "sa")
	}
	if f.CursorY != 0 {
		t.Fatalf("cursor row = %d, want document row 0", f.CursorY)
	}
}

func TestBuildStatusMessage(t *testing.T) {
	e := newTestEditor(t, ":nope\n")
	f := Build(e, 60, 5, 4)
	want := "[NORMAL_MODE], message: [command not found.]"
	if !strings.HasPrefix(f.Status, want) {
		t.Fatalf("status = %q, want prefix %q", f.Status, want)
	}
}

func TestBuildNarrowStatusIsClipped(t *testing.T) {
	e := newTestEditor(t, ":nope\n")
	f := Build(e, 10, 5, 4)
	if f.Status != "[NORMAL_MO" {
		t.Fatalf("status = %q, want %q", f.Status, "[NORMAL_MO")
	}
}

func TestBuildTabsAndControlBytes(t *testing.T) {
	e := newTestEditor(t, "ia\tb\x01c\x1bh")
	f := Build(e, 20, 5, 4)
	if f.Lines[0] != "a   b?c" {
		t.Fatalf("line = %q, want %q", f.Lines[0], "a   b?c")
	}
	// cursor on 'c'
	if f.CursorX != 6 {
		t.Fatalf("cursor x = %d, want 6", f.CursorX)
	}
}

func TestBuildClipsLongLines(t *testing.T) {
	e := newTestEditor(t, "i"+strings.Repeat("x", 30))
	f := Build(e, 10, 4, 4)
	if f.Lines[0] != strings.Repeat("x", 10) {
		t.Fatalf("line = %q, want 10 columns", f.Lines[0])
	}
	if f.CursorX != 9 {
		t.Fatalf("cursor x = %d, want 9", f.CursorX)
	}
}

func TestBuildTinyScreen(t *testing.T) {
	e := newTestEditor(t, "iab")
	f := Build(e, 10, 1, 4)
	if len(f.Lines) != 0 {
		t.Fatalf("lines = %q, want none", f.Lines)
	}
	if f.CursorVisible {
		t.Fatalf("cursor visible without a document area")
	}
	if f := Build(e, 0, 0, 4); f.Lines != nil || f.Status != "" {
		t.Fatalf("zero-size frame = %+v", f)
	}
}

func TestExpandWideRunes(t *testing.T) {
	line := []byte("日本x")
	text, col := Expand(line, 4, 6)
	if text != "日本x" {
		t.Fatalf("text = %q, want %q", text, "日本x")
	}
	if col != 4 {
		t.Fatalf("col = %d, want 4", col)
	}
	if _, col := Expand(line, 4, 4); col != 2 {
		t.Fatalf("col inside a rune = %d, want 2", col)
	}
}

func TestExpandInvalidUTF8(t *testing.T) {
	text, col := Expand([]byte{'a', 0xff, 'b'}, 4, 3)
	if text != "a?b" || col != 3 {
		t.Fatalf("Expand = (%q,%d), want (%q,3)", text, col, "a?b")
	}
}

func TestClipWideRune(t *testing.T) {
	if got := Clip("a日本", 4); got != "a日" {
		t.Fatalf("Clip = %q, want %q", got, "a日")
	}
}
