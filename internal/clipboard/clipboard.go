package clipboard

import (
	"errors"
	"fmt"
	"io"
	"os"

	sysclip "github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
)

// ErrUnavailable is returned when no clipboard provider could take the text
var ErrUnavailable = errors.New("no clipboard provider available")

// Sink receives the selected command
type Sink interface {
	Copy(text string) error
}

// writeAll is replaced in tests
var writeAll = sysclip.WriteAll

// System writes to the host clipboard (X11/Wayland selection, macOS
// pasteboard, Windows clipboard). When OSC52 is enabled and the host
// clipboard is unreachable, e.g. over SSH, the text is sent to the terminal
// as an OSC 52 escape sequence instead.
type System struct {
	osc52    bool
	terminal io.Writer
	getenv   func(string) string
}

// NewSystem creates a System sink. terminal receives OSC 52 sequences.
func NewSystem(osc52Fallback bool, terminal io.Writer) *System {
	return &System{
		osc52:    osc52Fallback,
		terminal: terminal,
		getenv:   os.Getenv,
	}
}

// Copy replaces the clipboard contents with text
func (s *System) Copy(text string) error {
	err := writeAll(text)
	if err == nil {
		return nil
	}
	if sysclip.Unsupported {
		err = fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if s.osc52 && s.terminal != nil {
		seq := osc52.New(text)
		switch {
		case s.getenv("TMUX") != "":
			seq = seq.Tmux()
		case s.getenv("STY") != "":
			seq = seq.Screen()
		}
		if _, werr := seq.WriteTo(s.terminal); werr == nil {
			return nil
		}
	}

	return fmt.Errorf("clipboard copy failed: %w", err)
}
