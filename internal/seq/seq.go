// Package seq implements an editable byte sequence as a doubly linked chain
// of arena nodes.
//
// Every sequence owns a permanent anchor node that terminates the chain and
// survives Clear. Its payload is empty and it is never part of the content.
// A separate cursor marks the insertion point: new bytes are spliced
// immediately before it, so the cursor always sits one past the last
// inserted byte. The cursor may rest on the anchor (end of content).
package seq

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kobzarvs/sxcedit/internal/arena"
)

var ErrAnchor = errors.New("seq: anchor node cannot be deleted")

type Sequence struct {
	a      *arena.Arena
	anchor arena.Ref
	cursor arena.Ref
}

// New allocates the anchor of a fresh, empty sequence.
func New(a *arena.Arena) (*Sequence, error) {
	anchor, err := a.Allocate()
	if err != nil {
		return nil, fmt.Errorf("new sequence: %w", err)
	}
	return &Sequence{a: a, anchor: anchor, cursor: anchor}, nil
}

func (s *Sequence) Arena() *arena.Arena { return s.a }
func (s *Sequence) Anchor() arena.Ref { return s.anchor }
func (s *Sequence) Cursor() arena.Ref { return s.cursor }

// SetCursor moves the cursor to r, which must be a node of s.
func (s *Sequence) SetCursor(r arena.Ref) {
	s.cursor = r
}

func (s *Sequence) Char(r arena.Ref) byte { return s.a.Char(r) }
func (s *Sequence) Next(r arena.Ref) arena.Ref { return s.a.Next(r) }
func (s *Sequence) Prev(r arena.Ref) arena.Ref { return s.a.Prev(r) }

// Head returns the first node of the chain; the anchor when empty.
func (s *Sequence) Head() arena.Ref {
	return s.start(s.anchor)
}

func (s *Sequence) start(r arena.Ref) arena.Ref {
	for s.a.Prev(r) != arena.Nil {
		r = s.a.Prev(r)
	}
	return r
}

// InsertBefore splices a new node carrying ch immediately before at and
// returns it. The cursor does not move.
func (s *Sequence) InsertBefore(at arena.Ref, ch byte) (arena.Ref, error) {
	r, err := s.a.Allocate()
	if err != nil {
		return arena.Nil, err
	}
	prev := s.a.Prev(at)
	s.a.SetChar(r, ch)
	s.a.SetNext(r, at)
	s.a.SetPrev(r, prev)
	s.a.SetPrev(at, r)
	if prev != arena.Nil {
		s.a.SetNext(prev, r)
	}
	return r, nil
}

// Insert places ch before the cursor.
func (s *Sequence) Insert(ch byte) error {
	_, err := s.InsertBefore(s.cursor, ch)
	return err
}

// Delete unlinks r and returns it to the arena. If the cursor rests on r
// it moves to the following node.
func (s *Sequence) Delete(r arena.Ref) error {
	if r == s.anchor {
		return ErrAnchor
	}
	if !s.a.IsLive(r) {
		return fmt.Errorf("delete %d: %w", r, arena.ErrNotLive)
	}
	next := s.a.Next(r)
	prev := s.a.Prev(r)
	if r == s.cursor {
		s.cursor = next
	}
	if next != arena.Nil {
		s.a.SetPrev(next, prev)
	}
	if prev != arena.Nil {
		s.a.SetNext(prev, next)
	}
	return s.a.Release(r)
}

// DeleteBackward removes the node immediately before the cursor. It reports
// false when the cursor is at the start of the sequence.
func (s *Sequence) DeleteBackward() (bool, error) {
	prev := s.a.Prev(s.cursor)
	if prev == arena.Nil {
		return false, nil
	}
	if err := s.Delete(prev); err != nil {
		return false, err
	}
	return true, nil
}

// Clear releases every node except the anchor and parks the cursor on it.
func (s *Sequence) Clear() {
	for next := s.a.Next(s.anchor); next != arena.Nil; next = s.a.Next(s.anchor) {
		_ = s.Delete(next)
	}
	for prev := s.a.Prev(s.anchor); prev != arena.Nil; prev = s.a.Prev(s.anchor) {
		_ = s.Delete(prev)
	}
	s.a.SetChar(s.anchor, 0)
	s.cursor = s.anchor
}

// InsertString inserts text before the cursor in order. The insert is all
// or nothing: if the arena cannot hold every byte nothing is inserted.
func (s *Sequence) InsertString(text string) error {
	return s.InsertBytes([]byte(text))
}

func (s *Sequence) InsertBytes(text []byte) error {
	if len(text) > s.a.Free() {
		return fmt.Errorf("insert %d bytes with %d free: %w", len(text), s.a.Free(), arena.ErrOutOfCapacity)
	}
	for _, ch := range text {
		if err := s.Insert(ch); err != nil {
			return err
		}
	}
	return nil
}

// ReplaceString clears s and inserts text.
func (s *Sequence) ReplaceString(text string) error {
	s.Clear()
	return s.InsertString(text)
}

// Bytes materializes the content. It walks back from the cursor to the
// start of the chain, then forward up to the anchor.
func (s *Sequence) Bytes() []byte {
	var out []byte
	for r := s.start(s.cursor); r != arena.Nil && r != s.anchor; r = s.a.Next(r) {
		out = append(out, s.a.Char(r))
	}
	return out
}

func (s *Sequence) String() string {
	var b strings.Builder
	for r := s.Head(); r != s.anchor; r = s.a.Next(r) {
		b.WriteByte(s.a.Char(r))
	}
	return b.String()
}

// Len counts content bytes; the anchor is not included.
func (s *Sequence) Len() int {
	n := 0
	for r := s.Head(); r != s.anchor; r = s.a.Next(r) {
		n++
	}
	return n
}

func (s *Sequence) Empty() bool {
	return s.a.Prev(s.anchor) == arena.Nil
}

// Offset returns the number of content bytes before the cursor.
func (s *Sequence) Offset() int {
	n := 0
	for r := s.a.Prev(s.cursor); r != arena.Nil; r = s.a.Prev(r) {
		n++
	}
	return n
}
