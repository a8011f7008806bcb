// console/console.go

// Package console is the firmware serial console built on a polled port. It
// translates line endings on output and provides an echoing line editor on
// input.
package console

import (
	"io"

	"golang.org/x/exp/slices"
)

const (
	cr  = '\r'
	lf  = '\n'
	bs  = 0x08
	del = 0x7F
)

// Port is the byte transport under a Console. *scuart.UART implements it.
type Port interface {
	io.Writer
	io.ByteReader
	Poll() bool
}

// Console wraps a Port with terminal conventions.
type Console struct {
	port Port
	// Echo sends received characters back to the terminal in ReadLine.
	Echo bool
}

// New returns a console on p with echo enabled.
func New(p Port) *Console {
	return &Console{port: p, Echo: true}
}

// Write sends p, expanding each "\n" to "\r\n". It returns len(p) on success
// so callers see their own byte count.
func (c *Console) Write(p []byte) (int, error) {
	start := 0
	for {
		i := slices.Index(p[start:], lf)
		if i < 0 {
			break
		}
		if _, err := c.port.Write(p[start : start+i]); err != nil {
			return start, err
		}
		if _, err := c.port.Write([]byte{cr, lf}); err != nil {
			return start + i, err
		}
		start += i + 1
	}
	if start < len(p) {
		if _, err := c.port.Write(p[start:]); err != nil {
			return start, err
		}
	}
	return len(p), nil
}

// Print writes s with line ending translation.
func (c *Console) Print(s string) error {
	_, err := c.Write([]byte(s))
	return err
}

// Println writes s followed by a line ending.
func (c *Console) Println(s string) error {
	return c.Print(s + "\n")
}

// Poll reports whether input is waiting.
func (c *Console) Poll() bool { return c.port.Poll() }

// ReadLine reads one line into buf, blocking until CR or LF. Backspace and
// DEL remove the previous character. Characters beyond len(buf) are dropped
// and not echoed. The terminator is not stored; the line length is returned.
func (c *Console) ReadLine(buf []byte) (int, error) {
	n := 0
	for {
		b, err := c.port.ReadByte()
		if err != nil {
			return n, err
		}
		switch b {
		case cr, lf:
			if c.Echo {
				if _, err := c.port.Write([]byte{cr, lf}); err != nil {
					return n, err
				}
			}
			return n, nil
		case bs, del:
			if n == 0 {
				continue
			}
			n--
			if c.Echo {
				if _, err := c.port.Write([]byte{bs, ' ', bs}); err != nil {
					return n, err
				}
			}
		default:
			if n == len(buf) {
				continue
			}
			buf[n] = b
			n++
			if c.Echo {
				if _, err := c.port.Write([]byte{b}); err != nil {
					return n, err
				}
			}
		}
	}
}
