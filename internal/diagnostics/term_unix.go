//go:build unix

package diagnostics

import (
	"os"

	"golang.org/x/sys/unix"
)

// terminalWidth reports the column count of f and whether f is a terminal.
func terminalWidth(f *os.File) (int, bool) {
	if f == nil {
		return 0, false
	}
	ws, err := unix.IoctlGetWinsize(int(f.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return 0, false
	}
	return int(ws.Col), true
}
