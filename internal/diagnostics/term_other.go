//go:build !unix

package diagnostics

import "os"

func terminalWidth(f *os.File) (int, bool) {
	if f == nil {
		return 0, false
	}
	info, err := f.Stat()
	if err != nil {
		return 0, false
	}
	return 0, info.Mode()&os.ModeCharDevice != 0
}
