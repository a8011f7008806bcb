package main

import (
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Bridge the board console to this terminal until stdin closes",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openPort(cmd)
		if err != nil {
			return err
		}
		defer p.Close()
		return bridge(p, os.Stdin, os.Stdout)
	},
}

// bridge copies in to p and p to out. It returns when in is exhausted. The
// board end never sends EOF, so reads that time out are retried.
func bridge(p port, in io.Reader, out io.Writer) error {
	go func() {
		buf := make([]byte, 256)
		for {
			n, err := p.Read(buf)
			if n > 0 {
				if _, werr := out.Write(buf[:n]); werr != nil {
					log.Printf("console output: %v", werr)
					return
				}
			}
			if err != nil && err != io.EOF {
				log.Printf("port read: %v", err)
				return
			}
		}
	}()

	if _, err := io.Copy(p, in); err != nil {
		return err
	}
	return p.Flush()
}
