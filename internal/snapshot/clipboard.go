package snapshot

import (
	"errors"
	"os/exec"
	"strings"

	"github.com/gempir/loggy/internal/logging"
)

// clipboardWriters are tried in order; the first available command wins.
var clipboardWriters = [][]string{
	{"pbcopy"},
	{"xclip", "-selection", "clipboard"},
	{"xsel", "--clipboard", "--input"},
	{"wl-copy"},
	{"clip.exe"},
}

// ErrNoClipboard is returned when no system clipboard command exists.
var ErrNoClipboard = errors.New("snapshot: no clipboard command available")

// CopyToClipboard writes text to the system clipboard via the first
// available external clipboard tool.
func CopyToClipboard(text string) error {
	log := logging.Component("snapshot")
	for _, writer := range clipboardWriters {
		if _, err := exec.LookPath(writer[0]); err != nil {
			continue
		}
		cmd := exec.Command(writer[0], writer[1:]...)
		cmd.Stdin = strings.NewReader(text)
		if err := cmd.Run(); err != nil {
			log.Debug().Str("tool", writer[0]).Err(err).Msg("clipboard write failed")
			continue
		}
		return nil
	}
	return ErrNoClipboard
}
