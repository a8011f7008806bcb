package main

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"
)

var (
	checkOpts = struct {
		total int
		chunk int
	}{}

	checkCmd = &cobra.Command{
		Use:   "check",
		Short: "Send a deterministic pattern and verify the board echoes it",
		Long: "Send a deterministic pattern and verify the board echoes it byte for byte.\n" +
			"The board must be running cmd/scuart_selftest.",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openPort(cmd)
			if err != nil {
				return err
			}
			defer p.Close()
			if err := runCheck(p, checkOpts.total, checkOpts.chunk); err != nil {
				return err
			}
			log.Printf("[PASS] %d bytes echoed", checkOpts.total)
			return nil
		},
	}
)

func init() {
	checkCmd.Flags().IntVarP(&checkOpts.total, "bytes", "n", 4096, "bytes to send")
	checkCmd.Flags().IntVar(&checkOpts.chunk, "chunk", 16, "bytes per write; keep at or below the board fifo depth")
}

var errShortEcho = errors.New("echo stalled")

// pattern is the byte sent at position i.
func pattern(i int) byte { return byte((i*31 + 0x55) & 0xFF) }

// mismatchError reports the first byte that did not come back as sent.
type mismatchError struct {
	offset    int
	got, want byte
}

func (e *mismatchError) Error() string {
	return fmt.Sprintf("mismatch at byte %d: got 0x%02x want 0x%02x", e.offset, e.got, e.want)
}

// runCheck writes total pattern bytes in chunks and reads each chunk's echo
// before sending the next. A read that returns nothing counts as a timeout.
func runCheck(rw io.ReadWriter, total, chunk int) error {
	if chunk <= 0 {
		return fmt.Errorf("chunk must be positive, got %d", chunk)
	}
	tx := make([]byte, chunk)
	rx := make([]byte, chunk)

	for sent := 0; sent < total; {
		n := min(chunk, total-sent)
		for i := 0; i < n; i++ {
			tx[i] = pattern(sent + i)
		}
		if _, err := rw.Write(tx[:n]); err != nil {
			return fmt.Errorf("write at %d: %w", sent, err)
		}

		got := 0
		for got < n {
			k, err := rw.Read(rx[got:n])
			if k == 0 && (err == nil || err == io.EOF) {
				return fmt.Errorf("%w after %d of %d bytes", errShortEcho, sent+got, total)
			}
			if err != nil && err != io.EOF {
				return fmt.Errorf("read at %d: %w", sent+got, err)
			}
			got += k
		}
		for i := 0; i < n; i++ {
			if rx[i] != tx[i] {
				return &mismatchError{offset: sent + i, got: rx[i], want: tx[i]}
			}
		}
		sent += n
	}
	return nil
}
