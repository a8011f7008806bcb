package main

import (
	"fmt"
	"io"

	"github.com/jangala-dev/tinygo-scuart/internal/config"
	"github.com/jangala-dev/tinygo-scuart/scuart"
	"github.com/jangala-dev/tinygo-scuart/scuart/regsim"
)

// rig is a driver wired to a simulated block and global register.
type rig struct {
	block *regsim.Block
	gate  *scuart.ClockGate
	uart  *scuart.UART
}

func newRig(sc config.Sim) *rig {
	b := &regsim.Block{
		TxComplete:   sc.TxComplete,
		TxDrainReads: sc.TxDrainReads,
		RxLatency:    sc.RxLatency,
	}
	b.SetGlobal(sc.Global)
	if sc.RxData != "" {
		b.Feed([]byte(sc.RxData)...)
	}
	gate := scuart.NewClockGate(b.Global(), scuart.GlobalUARTEnable)
	return &rig{block: b, gate: gate, uart: scuart.New(b, gate)}
}

func printTrace(w io.Writer, b *regsim.Block) {
	tr := b.Trace()
	for i, a := range tr {
		fmt.Fprintf(w, "%6d  %s\n", i, a)
	}
	fmt.Fprintf(w, "%d accesses\n", len(tr))
}

// printRegs reads the stored register values without disturbing the model.
func printRegs(w io.Writer, b *regsim.Block) {
	for _, off := range []uintptr{
		scuart.RegIEN, scuart.RegCTL0, scuart.RegCTL1, scuart.RegCTL2,
		scuart.RegCLKD0, scuart.RegCLKD1,
	} {
		fmt.Fprintf(w, "%-6s 0x%08x\n", regsim.RegName(off), b.Peek(off))
	}
}
