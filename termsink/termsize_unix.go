//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package termsink

import (
	"os"

	"golang.org/x/crypto/ssh/terminal"
	"golang.org/x/sys/unix"
)

// termSize is the terminal's extent in cells and, where the terminal
// reports it, in pixels.
type termSize struct {
	Rows, Cols     uint
	XPixel, YPixel uint
}

func terminalSize() (termSize, error) {
	if f, err := os.OpenFile("/dev/tty", unix.O_NOCTTY|unix.O_CLOEXEC|unix.O_NDELAY|unix.O_RDWR, 0666); err == nil {
		defer f.Close()
		if sz, err := unix.IoctlGetWinsize(int(f.Fd()), unix.TIOCGWINSZ); err == nil {
			return termSize{
				Rows:   uint(sz.Row),
				Cols:   uint(sz.Col),
				XPixel: uint(sz.Xpixel),
				YPixel: uint(sz.Ypixel),
			}, nil
		}
	}

	w, h, err := terminal.GetSize(0)
	if err != nil {
		return termSize{}, err
	}
	return termSize{Rows: uint(h), Cols: uint(w)}, nil
}
