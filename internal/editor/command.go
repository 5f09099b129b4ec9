package editor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kobzarvs/sxcedit/internal/arena"
	"github.com/kobzarvs/sxcedit/internal/logger"
)

const (
	msgOpenSucceeded   = "open succeeded."
	msgSaveSucceeded   = "save succeeded."
	msgCommandNotFound = "command not found."
)

// Exec runs one command line. The verb is everything before the first
// space; the rest of the line, spaces included, is the argument. The
// message line is cleared before the command runs.
func (e *Editor) Exec(line string) (Signal, error) {
	e.msg.Clear()
	verb, arg, _ := strings.Cut(line, " ")
	logger.Debug("command", "verb", verb, "arg", arg)

	switch verb {
	case "quit", "exit", "q":
		return Terminate, nil
	case "open":
		return Continue, e.Open(arg)
	case "save":
		return Continue, e.Save(arg)
	default:
		return Continue, e.setStatus(msgCommandNotFound)
	}
}

// Open replaces the document with the contents of path and parks the
// cursor at its start. A read failure leaves the document empty and is
// reported on the message line; only capacity exhaustion is returned.
func (e *Editor) Open(path string) error {
	e.doc.Clear()
	data, err := e.files.ReadAll(path)
	if err != nil {
		logger.Warn("open failed", "path", path, "error", err)
		return e.setStatus("open failed: " + err.Error())
	}
	if err := e.doc.InsertBytes(data); err != nil {
		logger.Error("open exceeds capacity", "path", path, "size", len(data), "free", e.arena.Free())
		if errors.Is(err, arena.ErrOutOfCapacity) {
			_ = e.setStatus("open failed: file too large")
		}
		return fmt.Errorf("open %s: %w", path, err)
	}
	e.doc.SetCursor(e.doc.Head())
	return e.setStatus(msgOpenSucceeded)
}

// Save writes the document to path.
func (e *Editor) Save(path string) error {
	if err := e.files.WriteAll(path, e.doc.Bytes()); err != nil {
		logger.Warn("save failed", "path", path, "error", err)
		return e.setStatus("save failed: " + err.Error())
	}
	return e.setStatus(msgSaveSucceeded)
}

func (e *Editor) setStatus(msg string) error {
	if err := e.msg.ReplaceString(msg); err != nil {
		return fmt.Errorf("set status: %w", err)
	}
	return nil
}
