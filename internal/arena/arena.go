// Package arena is a fixed-capacity pool of character nodes.
//
// Slots are addressed by Ref handles. Free slots are threaded through their
// next link into a stack, so Allocate and Release are O(1). The arena only
// owns storage; which sequence a live node belongs to is tracked by the
// caller through the prev/next links.
package arena

import (
	"errors"
	"fmt"
)

// Ref addresses a node slot. Nil marks an absent link.
type Ref int32

// Nil is the null Ref.
const Nil Ref = -1

var (
	ErrOutOfCapacity = errors.New("arena: out of capacity")
	ErrNotLive       = errors.New("arena: node is not live")
)

// Node is one character cell.
type Node struct {
	ch   byte
	next Ref
	prev Ref
	live bool
}

// Arena owns a fixed number of Node slots shared by every sequence built on it.
type Arena struct {
	nodes []Node
	free  Ref // top of the free stack
	nfree int
}

// New creates an arena with capacity slots, all free.
func New(capacity int) *Arena {
	if capacity < 0 {
		capacity = 0
	}
	a := &Arena{
		nodes: make([]Node, capacity),
		free:  Nil,
	}
	for i := capacity - 1; i >= 0; i-- {
		a.nodes[i] = Node{next: a.free, prev: Nil}
		a.free = Ref(i)
	}
	a.nfree = capacity
	return a
}

// Cap is the total number of slots.
func (a *Arena) Cap() int { return len(a.nodes) }

// Free is the number of slots available to Allocate.
func (a *Arena) Free() int { return a.nfree }

// Live is the number of allocated slots.
func (a *Arena) Live() int { return len(a.nodes) - a.nfree }

// Allocate pops a slot off the free stack. The returned node is live,
// unlinked and carries a zero payload.
func (a *Arena) Allocate() (Ref, error) {
	if a.free == Nil {
		return Nil, ErrOutOfCapacity
	}
	r := a.free
	n := &a.nodes[r]
	a.free = n.next
	a.nfree--
	*n = Node{next: Nil, prev: Nil, live: true}
	return r, nil
}

// Release pushes a live node back onto the free stack. The caller must
// already have unlinked it from its sequence.
func (a *Arena) Release(r Ref) error {
	if !a.IsLive(r) {
		return fmt.Errorf("release %d: %w", r, ErrNotLive)
	}
	a.nodes[r] = Node{next: a.free, prev: Nil}
	a.free = r
	a.nfree++
	return nil
}

func (a *Arena) IsLive(r Ref) bool {
	return r >= 0 && int(r) < len(a.nodes) && a.nodes[r].live
}

func (a *Arena) Char(r Ref) byte { return a.nodes[r].ch }
func (a *Arena) SetChar(r Ref, ch byte) { a.nodes[r].ch = ch }
func (a *Arena) Next(r Ref) Ref { return a.nodes[r].next }
func (a *Arena) Prev(r Ref) Ref { return a.nodes[r].prev }
func (a *Arena) SetNext(r Ref, next Ref) { a.nodes[r].next = next }
func (a *Arena) SetPrev(r Ref, prev Ref) { a.nodes[r].prev = prev }
