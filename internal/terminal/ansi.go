package terminal

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/kobzarvs/sxcedit/internal/logger"
	"github.com/kobzarvs/sxcedit/internal/render"
)

const (
	fallbackWidth  = 80
	fallbackHeight = 24
)

// ansiScreen drives the terminal with plain escape sequences and reads
// stdin in raw mode.
type ansiScreen struct {
	in    io.Reader
	out   io.Writer
	inFd  int
	outFd int
	state *term.State
	buf   []byte
}

// NewANSI returns a screen on the process's stdin and stdout.
func NewANSI() Screen {
	return newANSIScreen(os.Stdin, os.Stdout, int(os.Stdin.Fd()), int(os.Stdout.Fd()))
}

func newANSIScreen(in io.Reader, out io.Writer, inFd, outFd int) *ansiScreen {
	return &ansiScreen{in: in, out: out, inFd: inFd, outFd: outFd, buf: make([]byte, 256)}
}

func (a *ansiScreen) Init() error {
	if term.IsTerminal(a.inFd) {
		state, err := term.MakeRaw(a.inFd)
		if err != nil {
			return fmt.Errorf("enable raw mode: %w", err)
		}
		a.state = state
	}
	if _, err := io.WriteString(a.out, "\x1b[2J\x1b[H"); err != nil {
		return err
	}
	logger.Info("ansi screen initialized", "raw", a.state != nil)
	return nil
}

func (a *ansiScreen) Fini() error {
	_, werr := io.WriteString(a.out, "\x1b[2J\x1b[H\x1b[?25h")
	if a.state != nil {
		if err := term.Restore(a.inFd, a.state); err != nil {
			return fmt.Errorf("restore terminal: %w", err)
		}
		a.state = nil
	}
	if werr != nil {
		return werr
	}
	_, err := io.WriteString(a.out, "sxcedit exit.\n")
	logger.Info("ansi screen finalized")
	return err
}

func (a *ansiScreen) Size() (int, int) {
	w, h, err := term.GetSize(a.outFd)
	if err != nil || w <= 0 || h <= 0 {
		return fallbackWidth, fallbackHeight
	}
	return w, h
}

func (a *ansiScreen) ReadBatch() ([]byte, error) {
	n, err := a.in.Read(a.buf)
	if n > 0 {
		batch := make([]byte, n)
		copy(batch, a.buf[:n])
		return translateCR(batch), nil
	}
	if err != nil {
		return nil, err
	}
	return nil, nil
}

func (a *ansiScreen) Draw(f render.Frame) {
	if f.Width <= 0 || f.Height <= 0 {
		return
	}
	var b bytes.Buffer
	b.WriteString("\x1b[?25l") // hide cursor
	b.WriteString("\x1b[H")
	rows := render.DocRows(f.Height)
	for y := 0; y < rows; y++ {
		if y < len(f.Lines) {
			b.WriteString(f.Lines[y])
		}
		b.WriteString("\x1b[K\r\n")
	}
	if f.Height >= 2 {
		b.WriteString("\x1b[7m")
		b.WriteString(f.Status)
		b.WriteString("\x1b[K\x1b[m\r\n")
	}
	b.WriteString(f.Command)
	b.WriteString("\x1b[K")
	if f.CursorVisible {
		fmt.Fprintf(&b, "\x1b[%d;%dH", f.CursorY+1, f.CursorX+1)
		b.WriteString("\x1b[?25h")
	}
	if _, err := a.out.Write(b.Bytes()); err != nil {
		logger.Warn("ansi draw failed", "error", err)
	}
}
