// Package terminal hosts the editor on a real terminal. A Screen delivers
// input as raw bytes and paints render.Frames.
package terminal

import (
	"fmt"

	"github.com/kobzarvs/sxcedit/internal/config"
	"github.com/kobzarvs/sxcedit/internal/render"
)

type Screen interface {
	Init() error
	// ReadBatch blocks until input arrives. An empty batch asks the host
	// to redraw; io.EOF means no more input will come.
	ReadBatch() ([]byte, error)
	Size() (w, h int)
	Draw(f render.Frame)
	Fini() error
}

// New returns the backend named by cfg.Editor.Backend.
func New(cfg config.Config) (Screen, error) {
	switch cfg.Editor.Backend {
	case config.BackendTcell, "":
		return NewTcell(cfg.Theme)
	case config.BackendANSI:
		return NewANSI(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Editor.Backend)
	}
}

// translateCR maps carriage returns to newlines in place.
func translateCR(b []byte) []byte {
	for i, c := range b {
		if c == '\r' {
			b[i] = '\n'
		}
	}
	return b
}
