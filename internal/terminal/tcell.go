package terminal

import (
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/kobzarvs/sxcedit/internal/config"
	"github.com/kobzarvs/sxcedit/internal/editor"
	"github.com/kobzarvs/sxcedit/internal/logger"
	"github.com/kobzarvs/sxcedit/internal/render"
)

type tcellScreen struct {
	s            tcell.Screen
	styleMain    tcell.Style
	styleStatus  tcell.Style
	styleCommand tcell.Style
}

// NewTcell creates a tcell-backed screen styled by theme.
func NewTcell(theme config.Theme) (Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return newTcellScreen(s, theme), nil
}

func newTcellScreen(s tcell.Screen, theme config.Theme) *tcellScreen {
	mainFg := parseColor(theme.Foreground, tcell.ColorWhite)
	mainBg := parseColor(theme.Background, tcell.ColorBlack)
	statusFg := parseColor(theme.StatuslineForeground, tcell.ColorBlack)
	statusBg := parseColor(theme.StatuslineBackground, tcell.ColorGray)
	commandFg := parseColor(theme.CommandlineForeground, statusFg)
	commandBg := parseColor(theme.CommandlineBackground, statusBg)
	return &tcellScreen{
		s:            s,
		styleMain:    tcell.StyleDefault.Foreground(mainFg).Background(mainBg),
		styleStatus:  tcell.StyleDefault.Foreground(statusFg).Background(statusBg),
		styleCommand: tcell.StyleDefault.Foreground(commandFg).Background(commandBg),
	}
}

func (t *tcellScreen) Init() error {
	if err := t.s.Init(); err != nil {
		return err
	}
	logger.Info("tcell screen initialized")
	return nil
}

func (t *tcellScreen) Fini() error {
	t.s.Fini()
	logger.Info("tcell screen finalized")
	return nil
}

func (t *tcellScreen) Size() (int, int) {
	return t.s.Size()
}

func (t *tcellScreen) ReadBatch() ([]byte, error) {
	for {
		ev := t.s.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return nil, io.EOF
		case *tcell.EventKey:
			if b := keyBytes(ev); len(b) > 0 {
				return b, nil
			}
		case *tcell.EventResize:
			t.s.Sync()
			return nil, nil
		case *tcell.EventInterrupt:
			return nil, nil
		}
	}
}

// keyBytes converts a key event into the bytes a terminal in raw mode
// would have sent. Keys with no single-byte form are dropped.
func keyBytes(ev *tcell.EventKey) []byte {
	switch k := ev.Key(); {
	case k == tcell.KeyRune:
		r := ev.Rune()
		if r < utf8.RuneSelf {
			return []byte{byte(r)}
		}
		return utf8.AppendRune(nil, r)
	case k == tcell.KeyEnter:
		return []byte{'\n'}
	case k == tcell.KeyBackspace, k == tcell.KeyBackspace2:
		return []byte{127}
	case k >= 0 && k < tcell.KeyRune:
		return []byte{byte(k)}
	default:
		return nil
	}
}

func (t *tcellScreen) Draw(f render.Frame) {
	s := t.s
	w, h := f.Width, f.Height
	if w <= 0 || h <= 0 {
		return
	}
	s.SetStyle(t.styleMain)
	s.Clear()

	rows := render.DocRows(h)
	for y := 0; y < rows; y++ {
		clearLine(s, y, w, t.styleMain)
		if y < len(f.Lines) {
			drawText(s, 0, y, f.Lines[y], t.styleMain)
		}
	}
	if h >= 2 {
		clearLine(s, h-2, w, t.styleStatus)
		drawText(s, 0, h-2, f.Status, t.styleStatus)
	}
	clearLine(s, h-1, w, t.styleCommand)
	drawText(s, 0, h-1, f.Command, t.styleCommand)

	if !f.CursorVisible {
		s.HideCursor()
		s.Show()
		return
	}
	cursorStyle := tcell.CursorStyleSteadyBlock
	if f.Mode == editor.ModeInsert || f.Mode == editor.ModeCommand {
		cursorStyle = tcell.CursorStyleSteadyBar
	}
	s.SetCursorStyle(cursorStyle)
	s.ShowCursor(f.CursorX, f.CursorY)
	s.Show()
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		w := runewidth.RuneWidth(r)
		if w < 1 {
			w = 1
		}
		x += w
	}
}

func clearLine(s tcell.Screen, y, w int, style tcell.Style) {
	for x := 0; x < w; x++ {
		s.SetContent(x, y, ' ', nil, style)
	}
}

// parseColor accepts "#RRGGBB", a tcell color name or "default".
func parseColor(name string, fallback tcell.Color) tcell.Color {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	if strings.HasPrefix(name, "#") && len(name) == 7 {
		v, err := strconv.ParseUint(name[1:], 16, 32)
		if err != nil {
			return fallback
		}
		return tcell.NewHexColor(int32(v))
	}
	name = strings.ToLower(name)
	if name == "default" {
		return tcell.ColorDefault
	}
	c := tcell.GetColor(name)
	if c == tcell.ColorDefault {
		return fallback
	}
	return c
}
