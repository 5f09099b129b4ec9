package seq

import "github.com/kobzarvs/sxcedit/internal/arena"

// MoveLeft steps the cursor back one node. It is a no-op at the start.
func (s *Sequence) MoveLeft() bool {
	prev := s.a.Prev(s.cursor)
	if prev == arena.Nil {
		return false
	}
	s.cursor = prev
	return true
}

// MoveRight steps the cursor forward one node. It is a no-op on the anchor.
func (s *Sequence) MoveRight() bool {
	next := s.a.Next(s.cursor)
	if next == arena.Nil {
		return false
	}
	s.cursor = next
	return true
}

// Column is the 0-based column of r: the number of nodes between the
// nearest preceding newline and r, both exclusive.
func (s *Sequence) Column(r arena.Ref) int {
	n := 0
	for p := s.a.Prev(r); p != arena.Nil && s.a.Char(p) != '\n'; p = s.a.Prev(p) {
		n++
	}
	return n
}

// LineStart returns the first node of the line holding r. A newline node
// belongs to the line it terminates.
func (s *Sequence) LineStart(r arena.Ref) arena.Ref {
	for {
		p := s.a.Prev(r)
		if p == arena.Nil || s.a.Char(p) == '\n' {
			return r
		}
		r = p
	}
}

// LineEnd returns the newline terminating the line holding r, or the last
// node of the sequence when the line is unterminated.
func (s *Sequence) LineEnd(r arena.Ref) arena.Ref {
	for s.a.Char(r) != '\n' {
		n := s.a.Next(r)
		if n == arena.Nil {
			break
		}
		r = n
	}
	return r
}

// MoveDown puts the cursor on the next line at the same column, clamped
// to that line's newline when it is shorter.
func (s *Sequence) MoveDown() {
	col := s.Column(s.cursor)
	s.cursor = s.LineEnd(s.cursor)
	s.MoveRight()
	s.advance(col)
}

// MoveUp puts the cursor on the previous line at the same column, clamped
// the same way as MoveDown. On the first line it returns to the same
// column of that line.
func (s *Sequence) MoveUp() {
	col := s.Column(s.cursor)
	s.cursor = s.LineStart(s.cursor)
	s.MoveLeft()
	s.cursor = s.LineStart(s.cursor)
	s.advance(col)
}

// advance moves right up to col times, stopping on a newline.
func (s *Sequence) advance(col int) {
	for i := 0; i < col && s.a.Char(s.cursor) != '\n'; i++ {
		if !s.MoveRight() {
			return
		}
	}
}
