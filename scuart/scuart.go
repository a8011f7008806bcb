// scuart/scuart.go

// Package scuart is a polled driver for the SC8810 UART. It never enables
// interrupts or DMA and keeps no buffer beyond the hardware FIFOs; every wait
// is a spin on a status register. Read and Write provide blocking
// io.Reader/io.Writer semantics, and only Configure has a bounded wait.
//
// A UART is not safe for concurrent use. Callers serialize access to an
// instance, and Configure calls on different instances when they share a
// ClockGate.
package scuart

// UART is one SC8810 UART instance. All state lives in the hardware.
type UART struct {
	bus  Bus
	gate *ClockGate

	stats Stats
}

// New returns a driver for the register window bus, using gate to switch the
// peripheral clock during Configure.
func New(bus Bus, gate *ClockGate) *UART {
	return &UART{bus: bus, gate: gate}
}

// Divisor returns the clock divider for baud, rounded to the nearest integer.
func Divisor(clock, baud uint32) uint32 {
	return (clock + baud/2) / baud
}

// Configure brings the port up at 115200 8N1 with interrupts masked.
// It returns ErrDeviceError, leaving every register untouched, if the
// transmitter does not report completion within ReadyTimeout polls.
func (uart *UART) Configure() error {
	for i := 0; !uart.TransmitComplete(); {
		uart.dbgInitPoll()
		i++
		if i >= ReadyTimeout {
			return ErrDeviceError
		}
	}

	div := Divisor(ClockFrequency, DefaultBaud)

	// IEN must be cleared while the clock is gated off or the block latches
	// the previous mask.
	uart.gate.Disable()
	uart.bus.Set(RegIEN, 0)
	uart.gate.Enable()

	uart.bus.Set(RegCLKD0, div&0xFFFF)
	uart.bus.Set(RegCLKD1, (div>>16)&0xFFFF)

	uart.bus.Set(RegCTL0, LineControl8N1)
	uart.bus.Set(RegCTL1, 0)
	uart.bus.Set(RegCTL2, 0)
	return nil
}

// TransmitComplete reports STS0 transmit-complete.
func (uart *UART) TransmitComplete() bool {
	return uart.bus.Get(RegSTS0)&STS0_TX_COMPLETE != 0
}

// Poll reports whether the rx fifo holds at least one byte.
func (uart *UART) Poll() bool {
	return uart.Buffered() != 0
}

// Buffered returns the rx fifo count.
func (uart *UART) Buffered() int {
	return int(uart.bus.Get(RegSTS1) & STS1_RX_COUNT_Msk)
}

// txPending returns the tx fifo count.
func (uart *UART) txPending() int {
	return int((uart.bus.Get(RegSTS1) & STS1_TX_COUNT_Msk) >> STS1_TX_COUNT_Pos)
}

// Write implements io.Writer. Each byte is written once the tx fifo reports
// empty, and Write returns after the fifo has drained, not necessarily after
// the last stop bit. It always returns len(p), nil. There is no timeout: a
// stalled transmitter blocks the caller forever.
func (uart *UART) Write(p []byte) (int, error) {
	for _, c := range p {
		uart.writeByte(c)
	}
	uart.Flush()
	return len(p), nil
}

// WriteByte writes c and waits for the tx fifo to drain.
func (uart *UART) WriteByte(c byte) error {
	uart.writeByte(c)
	uart.Flush()
	return nil
}

// Flush spins until the tx fifo is empty.
func (uart *UART) Flush() {
	for uart.txPending() != 0 {
		uart.dbgTxWait()
	}
}

func (uart *UART) writeByte(c byte) {
	for uart.txPending() != 0 {
		uart.dbgTxWait()
	}
	uart.bus.Set(RegTXD, uint32(c))
	uart.dbgTxByte()
}

// Read implements io.Reader. It blocks until len(p) bytes have been received
// and always returns len(p), nil. There is no timeout; use ReadContext to
// bound the wait.
func (uart *UART) Read(p []byte) (int, error) {
	for i := range p {
		for !uart.Poll() {
			uart.dbgRxWait()
		}
		p[i] = uart.readByte()
	}
	return len(p), nil
}

// ReadByte blocks until one byte is received.
func (uart *UART) ReadByte() (byte, error) {
	for !uart.Poll() {
		uart.dbgRxWait()
	}
	return uart.readByte(), nil
}

// TryRead copies whatever the rx fifo holds, up to len(p) bytes, without
// waiting. A return of 0 means no data now.
func (uart *UART) TryRead(p []byte) int {
	n := 0
	for n < len(p) && uart.Poll() {
		p[n] = uart.readByte()
		n++
	}
	return n
}

func (uart *UART) readByte() byte {
	c := byte(uart.bus.Get(RegRXD) & 0xFF)
	uart.dbgRxByte()
	return c
}

// Regs is a snapshot of the readable status, control and divisor registers.
type Regs struct {
	STS0  uint32
	STS1  uint32
	STS2  uint32
	CTL0  uint32
	CTL1  uint32
	CTL2  uint32
	CLKD0 uint32
	CLKD1 uint32
}

// Registers reads every register that has no read side effect.
func (uart *UART) Registers() Regs {
	return Regs{
		STS0:  uart.bus.Get(RegSTS0),
		STS1:  uart.bus.Get(RegSTS1),
		STS2:  uart.bus.Get(RegSTS2),
		CTL0:  uart.bus.Get(RegCTL0),
		CTL1:  uart.bus.Get(RegCTL1),
		CTL2:  uart.bus.Get(RegCTL2),
		CLKD0: uart.bus.Get(RegCLKD0),
		CLKD1: uart.bus.Get(RegCLKD1),
	}
}

// BaudRate derives the line rate from the programmed divisor.
func (r Regs) BaudRate() uint32 {
	div := (r.CLKD1&0xFFFF)<<16 | r.CLKD0&0xFFFF
	if div == 0 {
		return 0
	}
	return ClockFrequency / div
}
