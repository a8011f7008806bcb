// cmd/scuart_term is the host end of the board console. It opens the host
// serial device wired to the SC8810 console UART and either bridges it to the
// terminal or runs an echo integrity check against cmd/scuart_selftest.
package main

import (
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"
	"github.com/tarm/serial"

	"github.com/jangala-dev/tinygo-scuart/internal/config"
)

// port is the host side serial transport.
type port interface {
	io.ReadWriteCloser
	Flush() error
}

var (
	rootOpts = struct {
		config string
		device string
		baud   int
	}{}

	rootCmd = &cobra.Command{
		Use:           "scuart_term",
		Short:         "Talk to an SC8810 board over its console UART",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootOpts.config, "config", "c", "", "YAML config file (port section)")
	rootCmd.PersistentFlags().StringVarP(&rootOpts.device, "device", "d", "", "serial device (overrides port.device)")
	rootCmd.PersistentFlags().IntVarP(&rootOpts.baud, "baud", "b", 0, "baud rate (overrides port.baud)")
	rootCmd.AddCommand(monitorCmd, checkCmd)
}

// openPort resolves the port settings and opens the device 8N1.
func openPort(cmd *cobra.Command) (port, error) {
	cfg, err := config.Load(rootOpts.config)
	if err != nil {
		return nil, err
	}
	pc := cfg.Port
	if cmd.Flags().Changed("device") {
		pc.Device = rootOpts.device
	}
	if cmd.Flags().Changed("baud") {
		pc.Baud = rootOpts.baud
	}

	p, err := serial.OpenPort(&serial.Config{
		Name:        pc.Device,
		Baud:        pc.Baud,
		ReadTimeout: pc.ReadTimeout,
		Size:        8,
		Parity:      serial.ParityNone,
		StopBits:    serial.Stop1,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", pc.Device, err)
	}
	log.Printf("opened %s at %d 8N1", pc.Device, pc.Baud)
	return p, nil
}

func main() {
	log.SetFlags(log.Ltime)
	log.SetPrefix("scuart_term: ")
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
