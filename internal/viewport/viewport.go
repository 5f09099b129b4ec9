// Package viewport turns a sequence into the window of lines shown on
// screen. It is read-only: nothing here mutates the sequence.
package viewport

import (
	"iter"

	"github.com/kobzarvs/sxcedit/internal/arena"
	"github.com/kobzarvs/sxcedit/internal/seq"
)

// Cell is one emitted node. End marks the anchor, which carries no byte
// but can hold the cursor.
type Cell struct {
	Ch     byte
	Cursor bool
	End    bool
}

// Feed yields the nodes visible in a window of rows lines centred on the
// cursor: up to rows/2 lines above the cursor's line, then forward until
// rows newlines have been emitted or the sequence ends. Each call to the
// returned iterator walks the sequence again.
func Feed(s *seq.Sequence, rows int) iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		if rows <= 0 {
			return
		}
		r := top(s, rows)
		cursor := s.Cursor()
		anchor := s.Anchor()
		for crossed := 0; r != arena.Nil && crossed < rows; r = s.Next(r) {
			ch := s.Char(r)
			c := Cell{Ch: ch, Cursor: r == cursor, End: r == anchor}
			if c.End {
				c.Ch = 0
			}
			if !yield(c) {
				return
			}
			if !c.End && ch == '\n' {
				crossed++
			}
		}
	}
}

// top finds the first node of the window. The backward walk stops either
// at the start of the sequence or on the newline that closes the line just
// above the window; in the second case the window begins after it.
func top(s *seq.Sequence, rows int) arena.Ref {
	limit := rows/2 + 1
	r := s.Cursor()
	n := 0
	for n < limit {
		p := s.Prev(r)
		if p == arena.Nil {
			break
		}
		r = p
		if s.Char(r) == '\n' {
			n++
		}
	}
	if n == limit {
		r = s.Next(r)
	}
	return r
}

// View is a Feed folded into lines. Newlines are not part of Lines.
type View struct {
	Lines     [][]byte
	CursorRow int
	CursorCol int
	HasCursor bool
}

func Layout(s *seq.Sequence, rows int) View {
	var v View
	if rows <= 0 {
		return v
	}
	line := []byte{}
	for c := range Feed(s, rows) {
		if c.Cursor {
			v.CursorRow = len(v.Lines)
			v.CursorCol = len(line)
			v.HasCursor = true
		}
		if c.End {
			continue
		}
		if c.Ch == '\n' {
			v.Lines = append(v.Lines, line)
			line = []byte{}
			continue
		}
		line = append(line, c.Ch)
	}
	if len(v.Lines) < rows {
		v.Lines = append(v.Lines, line)
	}
	return v
}
