// Package editor drives the document, command line and status message
// sequences from raw input bytes.
//
// Every byte is handled synchronously by the handler of the active mode.
// Recoverable failures (bad paths, unknown commands) are reported through
// the message sequence; the only error Process returns is arena capacity
// exhaustion, which the host must treat as fatal.
package editor

import (
	"fmt"

	"github.com/kobzarvs/sxcedit/internal/arena"
	"github.com/kobzarvs/sxcedit/internal/config"
	"github.com/kobzarvs/sxcedit/internal/logger"
	"github.com/kobzarvs/sxcedit/internal/seq"
)

type Mode int

const (
	ModeNormal Mode = iota
	ModeInsert
	ModeCommand
	ModeRaw
)

func (m Mode) String() string {
	switch m {
	case ModeInsert:
		return "INSERT"
	case ModeCommand:
		return "CMD"
	case ModeRaw:
		return "RAW"
	default:
		return "NORMAL"
	}
}

// Signal tells the host whether to keep running.
type Signal int

const (
	Continue Signal = iota
	Terminate
)

const (
	keyCtrlC     = 3
	keyBackspace = 8
	keyEscape    = 27
	keyDelete    = 127
)

const (
	actionEnterInsert  = "enter_insert"
	actionEnterCommand = "enter_command"
	actionMoveLeft     = "move_left"
	actionMoveRight    = "move_right"
	actionMoveUp       = "move_up"
	actionMoveDown     = "move_down"
)

var knownActions = map[string]bool{
	actionEnterInsert:  true,
	actionEnterCommand: true,
	actionMoveLeft:     true,
	actionMoveRight:    true,
	actionMoveUp:       true,
	actionMoveDown:     true,
}

type Editor struct {
	arena  *arena.Arena
	doc    *seq.Sequence
	cmd    *seq.Sequence
	msg    *seq.Sequence
	mode   Mode
	keymap map[byte]string
	files  Files
}

// New builds an editor whose three sequences share one arena of
// cfg.Editor.Capacity slots. A nil files uses the local filesystem.
func New(cfg config.Config, files Files) (*Editor, error) {
	if files == nil {
		files = OSFiles{}
	}
	capacity := cfg.Editor.Capacity
	if capacity < config.MinCapacity {
		capacity = config.DefaultCapacity
	}
	a := arena.New(capacity)
	doc, err := seq.New(a)
	if err != nil {
		return nil, err
	}
	cmd, err := seq.New(a)
	if err != nil {
		return nil, err
	}
	msg, err := seq.New(a)
	if err != nil {
		return nil, err
	}
	return &Editor{
		arena:  a,
		doc:    doc,
		cmd:    cmd,
		msg:    msg,
		mode:   ModeNormal,
		keymap: buildKeymap(cfg.Keymap.Normal),
		files:  files,
	}, nil
}

func buildKeymap(normal map[string]string) map[byte]string {
	km := make(map[byte]string, len(normal))
	for k, v := range normal {
		if len(k) != 1 {
			logger.Warn("keymap: key must be a single byte", "key", k)
			continue
		}
		if !knownActions[v] {
			logger.Warn("keymap: unknown action", "key", k, "action", v)
			continue
		}
		km[k[0]] = v
	}
	return km
}

func (e *Editor) Mode() Mode { return e.mode }
func (e *Editor) Arena() *arena.Arena { return e.arena }
func (e *Editor) Document() *seq.Sequence { return e.doc }
func (e *Editor) CommandLine() *seq.Sequence { return e.cmd }
func (e *Editor) Message() *seq.Sequence { return e.msg }
func (e *Editor) Content() string { return e.doc.String() }
func (e *Editor) StatusMessage() string { return e.msg.String() }
func (e *Editor) CommandText() string { return e.cmd.String() }

// EnterRaw switches to raw mode, where input bytes are echoed to the
// message line and the document is left alone. Ctrl-C leaves it.
func (e *Editor) EnterRaw() {
	e.setMode(ModeRaw)
}

func (e *Editor) setMode(m Mode) {
	if e.mode == m {
		return
	}
	logger.Debug("mode change", "from", e.mode.String(), "to", m.String())
	e.mode = m
}

// Process handles one input batch. Bytes after a terminating command are
// discarded.
func (e *Editor) Process(batch []byte) (Signal, error) {
	for _, b := range batch {
		sig, err := e.HandleByte(b)
		if err != nil {
			logger.Error("input aborted", "mode", e.mode.String(), "error", err)
			return Continue, err
		}
		if sig == Terminate {
			return Terminate, nil
		}
	}
	return Continue, nil
}

func (e *Editor) HandleByte(b byte) (Signal, error) {
	switch e.mode {
	case ModeInsert:
		return Continue, e.handleInsert(b)
	case ModeCommand:
		return e.handleCommand(b)
	case ModeRaw:
		return Continue, e.handleRaw(b)
	default:
		e.handleNormal(b)
		return Continue, nil
	}
}

func (e *Editor) handleNormal(b byte) {
	action, ok := e.keymap[b]
	if !ok {
		return
	}
	e.execAction(action)
}

func (e *Editor) execAction(action string) {
	switch action {
	case actionEnterInsert:
		e.setMode(ModeInsert)
	case actionEnterCommand:
		e.setMode(ModeCommand)
	case actionMoveLeft:
		e.doc.MoveLeft()
	case actionMoveRight:
		e.doc.MoveRight()
	case actionMoveDown:
		e.doc.MoveDown()
	case actionMoveUp:
		e.doc.MoveUp()
	}
}

func (e *Editor) handleInsert(b byte) error {
	switch b {
	case keyEscape:
		e.setMode(ModeNormal)
		return nil
	case keyBackspace, keyDelete:
		_, err := e.doc.DeleteBackward()
		return err
	default:
		if err := e.doc.Insert(b); err != nil {
			return fmt.Errorf("insert into document: %w", err)
		}
		return nil
	}
}

func (e *Editor) handleCommand(b byte) (Signal, error) {
	switch b {
	case keyEscape:
		e.setMode(ModeNormal)
		return Continue, nil
	case keyBackspace, keyDelete:
		_, err := e.cmd.DeleteBackward()
		return Continue, err
	case '\n':
		sig, err := e.Exec(string(e.cmd.Bytes()))
		if err != nil || sig == Terminate {
			return sig, err
		}
		e.cmd.Clear()
		e.setMode(ModeNormal)
		return Continue, nil
	default:
		if err := e.cmd.Insert(b); err != nil {
			return Continue, fmt.Errorf("insert into command line: %w", err)
		}
		return Continue, nil
	}
}

func (e *Editor) handleRaw(b byte) error {
	if b == keyCtrlC {
		e.setMode(ModeNormal)
		return nil
	}
	return e.setStatus(fmt.Sprintf("raw: %d 0x%02x", b, b))
}
