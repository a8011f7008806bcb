package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jangala-dev/tinygo-scuart/console"
	"github.com/jangala-dev/tinygo-scuart/internal/config"
	"github.com/jangala-dev/tinygo-scuart/scuart"
)

var (
	initCmd = &cobra.Command{
		Use:   "init",
		Short: "Run Configure and show the programmed registers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runInit(cmd.OutOrStdout(), cfg, rootOpts.trace)
		},
	}

	writeCmd = &cobra.Command{
		Use:   "write TEXT...",
		Short: "Configure, then send TEXT through the console",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runWrite(cmd.OutOrStdout(), cfg, strings.Join(args, " ")+"\n", rootOpts.trace)
		},
	}

	readOpts = struct {
		data    string
		count   int
		timeout time.Duration
	}{}

	readCmd = &cobra.Command{
		Use:   "read",
		Short: "Configure, feed rx data, then read it back",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("data") {
				cfg.Sim.RxData = readOpts.data
			}
			return runRead(cmd.OutOrStdout(), cfg, readOpts.count, readOpts.timeout, rootOpts.trace)
		},
	}

	divisorOpts = struct {
		clock uint32
	}{}

	divisorCmd = &cobra.Command{
		Use:   "divisor [BAUD...]",
		Short: "Print clock divisors for the given baud rates",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{fmt.Sprint(scuart.DefaultBaud)}
			}
			return runDivisor(cmd.OutOrStdout(), divisorOpts.clock, args)
		},
	}
)

func init() {
	readCmd.Flags().StringVarP(&readOpts.data, "data", "d", "", "bytes arriving on the rx line (overrides sim.rxData)")
	readCmd.Flags().IntVarP(&readOpts.count, "count", "n", -1, "bytes to read (default: all fed data)")
	readCmd.Flags().DurationVar(&readOpts.timeout, "timeout", time.Second, "give up waiting for rx data after this long")
	divisorCmd.Flags().Uint32Var(&divisorOpts.clock, "clock", scuart.ClockFrequency, "reference clock in Hz")
}

func runInit(w io.Writer, cfg config.Config, trace bool) error {
	r := newRig(cfg.Sim)
	err := r.uart.Configure()
	if trace {
		printTrace(w, r.block)
	}
	if err != nil {
		return fmt.Errorf("configure: %w", err)
	}
	printRegs(w, r.block)
	fmt.Fprintf(w, "baud   %d\n", r.uart.Registers().BaudRate())
	fmt.Fprintf(w, "clock  %v\n", r.gate.Enabled())
	return nil
}

func runWrite(w io.Writer, cfg config.Config, text string, trace bool) error {
	r := newRig(cfg.Sim)
	if err := r.uart.Configure(); err != nil {
		return fmt.Errorf("configure: %w", err)
	}
	r.block.ResetTrace()

	con := console.New(r.uart)
	if err := con.Print(text); err != nil {
		return err
	}
	if trace {
		printTrace(w, r.block)
	}
	fmt.Fprintf(w, "tx %q\n", r.block.Transmitted())
	return nil
}

func runRead(w io.Writer, cfg config.Config, count int, timeout time.Duration, trace bool) error {
	r := newRig(cfg.Sim)
	if err := r.uart.Configure(); err != nil {
		return fmt.Errorf("configure: %w", err)
	}
	r.block.ResetTrace()

	if count < 0 {
		count = len(cfg.Sim.RxData)
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	buf := make([]byte, count)
	n, err := r.uart.ReadContext(ctx, buf)
	if trace {
		printTrace(w, r.block)
	}
	fmt.Fprintf(w, "rx %q\n", buf[:n])
	if err != nil {
		return fmt.Errorf("read %d of %d bytes: %w", n, count, err)
	}
	return nil
}

func runDivisor(w io.Writer, clock uint32, bauds []string) error {
	for _, s := range bauds {
		var baud uint32
		if _, err := fmt.Sscan(s, &baud); err != nil || baud == 0 {
			return fmt.Errorf("bad baud rate %q", s)
		}
		div := scuart.Divisor(clock, baud)
		if div == 0 {
			return fmt.Errorf("baud rate %d too high for a %d Hz clock", baud, clock)
		}
		fmt.Fprintf(w, "%8d  div=%-6d CLKD0=0x%04x CLKD1=0x%04x actual=%d\n",
			baud, div, div&0xFFFF, (div>>16)&0xFFFF, clock/div)
	}
	return nil
}
