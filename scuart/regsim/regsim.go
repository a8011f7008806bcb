// scuart/regsim/regsim.go

// Package regsim is a software model of the SC8810 UART register block. It
// implements scuart.Bus, keeps a trace of every access and models just enough
// FIFO behaviour to exercise the polled driver off target.
package regsim

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/jangala-dev/tinygo-scuart/scuart"
)

// Access is one recorded register access.
type Access struct {
	Global bool // global control register rather than the instance window
	Write  bool
	Offset uintptr
	Value  uint32 // value written, or value returned by the read
}

var regNames = [scuart.RegCount]string{
	"TXD", "RXD", "STS0", "STS1", "IEN", "ICLR",
	"CTL0", "CTL1", "CTL2", "CLKD0", "CLKD1", "STS2",
}

// RegName returns the register mnemonic for offset.
func RegName(offset uintptr) string {
	if i := int(offset / 4); offset%4 == 0 && i < len(regNames) {
		return regNames[i]
	}
	return fmt.Sprintf("0x%02x", offset)
}

func (a Access) String() string {
	name := RegName(a.Offset)
	if a.Global {
		name = "GR_CTRL"
	}
	if a.Write {
		return fmt.Sprintf("W %-7s <- 0x%08x", name, a.Value)
	}
	return fmt.Sprintf("R %-7s -> 0x%08x", name, a.Value)
}

// Block is a simulated register block. The zero value is an idle port whose
// transmitter never reports completion.
type Block struct {
	// TxComplete drives STS0 transmit-complete.
	TxComplete bool
	// TxDrainReads is the number of STS1 reads it takes for one byte to leave
	// the tx fifo. Zero sends bytes straight to the wire.
	TxDrainReads int
	// RxLatency is the number of STS1 reads before the next fed byte lands in
	// the rx fifo. Zero makes fed bytes visible at once.
	RxLatency int

	regs   [scuart.RegCount]uint32
	global uint32
	trace  []Access

	txAll   []byte // every byte written to TXD
	txFifo  int
	txTicks int

	rxPending []byte
	rxFifo    []byte
	rxTicks   int
}

// New returns a block whose transmitter is ready.
func New() *Block {
	return &Block{TxComplete: true, TxDrainReads: 1}
}

func index(offset uintptr) int {
	if offset%4 != 0 || offset/4 >= scuart.RegCount {
		panic(fmt.Sprintf("regsim: bad register offset 0x%x", offset))
	}
	return int(offset / 4)
}

// Get implements scuart.Bus.
func (b *Block) Get(offset uintptr) uint32 {
	i := index(offset)
	var v uint32
	switch offset {
	case scuart.RegSTS0:
		v = b.regs[i]
		if b.TxComplete {
			v |= scuart.STS0_TX_COMPLETE
		}
	case scuart.RegSTS1:
		v = b.sts1()
		b.tick()
	case scuart.RegRXD:
		if len(b.rxFifo) > 0 {
			v = uint32(b.rxFifo[0])
			b.rxFifo = b.rxFifo[1:]
		}
	default:
		v = b.regs[i]
	}
	b.trace = append(b.trace, Access{Offset: offset, Value: v})
	return v
}

// Set implements scuart.Bus.
func (b *Block) Set(offset uintptr, value uint32) {
	i := index(offset)
	switch offset {
	case scuart.RegTXD:
		b.txAll = append(b.txAll, byte(value))
		if b.TxDrainReads > 0 {
			b.txFifo++
		}
	case scuart.RegICLR:
		// write-1-to-clear against the latched STS0 conditions
		b.regs[index(scuart.RegSTS0)] &^= value
	}
	b.regs[i] = value
	b.trace = append(b.trace, Access{Write: true, Offset: offset, Value: value})
}

func (b *Block) sts1() uint32 {
	rx := min(len(b.rxFifo), 0xFF)
	tx := min(b.txFifo, 0xFF)
	return uint32(rx) | uint32(tx)<<scuart.STS1_TX_COUNT_Pos
}

// tick advances both fifos by one STS1 read.
func (b *Block) tick() {
	if b.txFifo > 0 {
		b.txTicks++
		if b.txTicks >= b.TxDrainReads {
			b.txFifo--
			b.txTicks = 0
		}
	}
	if len(b.rxPending) > 0 {
		b.rxTicks++
		if b.rxTicks >= b.RxLatency {
			b.rxFifo = append(b.rxFifo, b.rxPending[0])
			b.rxPending = b.rxPending[1:]
			b.rxTicks = 0
		}
	}
}

// Feed queues bytes arriving on the rx line.
func (b *Block) Feed(p ...byte) {
	if b.RxLatency == 0 {
		b.rxFifo = append(b.rxFifo, p...)
		return
	}
	b.rxPending = append(b.rxPending, p...)
}

// Latch sets raw STS0 condition bits, as the line would on an error.
func (b *Block) Latch(bits uint32) {
	b.regs[index(scuart.RegSTS0)] |= bits
}

// Peek returns the stored value of a register without recording an access or
// advancing the model.
func (b *Block) Peek(offset uintptr) uint32 {
	return b.regs[index(offset)]
}

// Transmitted returns every byte written to TXD so far.
func (b *Block) Transmitted() []byte {
	return slices.Clone(b.txAll)
}

// Trace returns a copy of the recorded accesses.
func (b *Block) Trace() []Access {
	return slices.Clone(b.trace)
}

// ResetTrace drops the recorded accesses, leaving register state intact.
func (b *Block) ResetTrace() {
	b.trace = b.trace[:0]
}

// Find returns the index of the first access at or after from that matches
// f, or -1.
func (b *Block) Find(from int, f func(Access) bool) int {
	if from >= len(b.trace) {
		return -1
	}
	i := slices.IndexFunc(b.trace[from:], f)
	if i < 0 {
		return -1
	}
	return from + i
}

// Reads counts reads of the instance register at offset.
func (b *Block) Reads(offset uintptr) int {
	n := 0
	for _, a := range b.trace {
		if !a.Global && !a.Write && a.Offset == offset {
			n++
		}
	}
	return n
}

// Writes returns the values written to the instance register at offset.
func (b *Block) Writes(offset uintptr) []uint32 {
	var out []uint32
	for _, a := range b.trace {
		if !a.Global && a.Write && a.Offset == offset {
			out = append(out, a.Value)
		}
	}
	return out
}

// Global returns the simulated global control register. Its accesses are
// recorded in the same trace as the instance window.
func (b *Block) Global() *Word {
	return &Word{b: b}
}

// SetGlobal presets the global control register without recording.
func (b *Block) SetGlobal(v uint32) {
	b.global = v
}

// Word is the simulated global control register. It implements
// scuart.Register32.
type Word struct {
	b *Block
}

func (w *Word) Get() uint32 {
	v := w.b.global
	w.b.trace = append(w.b.trace, Access{Global: true, Value: v})
	return v
}

func (w *Word) Set(v uint32) {
	w.b.global = v
	w.b.trace = append(w.b.trace, Access{Global: true, Write: true, Value: v})
}
