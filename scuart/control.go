// scuart/control.go

package scuart

// Serial control bits reported by GetControl. Values follow the UEFI serial
// I/O protocol so console layers can pass them through unchanged.
const (
	ControlDataTerminalReady  uint32 = 0x0001
	ControlRequestToSend      uint32 = 0x0002
	ControlClearToSend        uint32 = 0x0010
	ControlDataSetReady       uint32 = 0x0020
	ControlInputBufferEmpty   uint32 = 0x0100
	ControlOutputBufferEmpty  uint32 = 0x0200
	ControlHardwareFlowEnable uint32 = 0x4000
)

// UARTParity selects the parity mode in Attributes.
type UARTParity uint8

const (
	ParityDefault UARTParity = iota
	ParityNone
	ParityEven
	ParityOdd
	ParityMark
	ParitySpace
)

// StopBits selects the stop bit count in Attributes.
type StopBits uint8

const (
	StopBitsDefault StopBits = iota
	StopBits1
	StopBits1_5
	StopBits2
)

// Attributes is a line configuration request. A zero field asks for the
// device default.
type Attributes struct {
	BaudRate         uint64
	ReceiveFifoDepth uint32
	Timeout          uint32 // per character, microseconds
	Parity           UARTParity
	DataBits         uint8
	StopBits         StopBits
}

// GetControl reports the control lines. Only the input-buffer-empty bit is
// ever set; RTS/DTR are not wired through on this port.
func (uart *UART) GetControl() (uint32, error) {
	if !uart.Poll() {
		return ControlInputBufferEmpty, nil
	}
	return 0, nil
}

// SetControl always returns ErrUnsupported.
func (uart *UART) SetControl(uint32) error {
	return ErrUnsupported
}

// SetAttributes always returns ErrUnsupported. The line is fixed at 115200
// 8N1 by Configure.
func (uart *UART) SetAttributes(Attributes) error {
	return ErrUnsupported
}

// LineError is a set of receive error conditions latched in STS0.
type LineError uint32

const (
	ParityError  LineError = STS0_PARITY_ERR
	FramingError LineError = STS0_FRAMING_ERR
	Overrun      LineError = STS0_RXF_OVERRUN
	Break        LineError = STS0_BREAK_DETECT

	lineErrorMask = ParityError | FramingError | Overrun | Break
)

func (e LineError) Error() string {
	switch e {
	case 0:
		return "no line error"
	case ParityError:
		return "parity error"
	case FramingError:
		return "framing error"
	case Overrun:
		return "rx fifo overrun"
	case Break:
		return "break detected"
	}
	return "multiple line errors"
}

// Has reports whether every condition in f is set in e.
func (e LineError) Has(f LineError) bool { return e&f == f }

// LineErrors returns the error conditions currently flagged in STS0.
func (uart *UART) LineErrors() LineError {
	return LineError(uart.bus.Get(RegSTS0)) & lineErrorMask
}

// ClearErrors acknowledges the given conditions through ICLR. The ICLR bit
// positions match STS0.
func (uart *UART) ClearErrors(e LineError) {
	e &= lineErrorMask
	if e == 0 {
		return
	}
	uart.bus.Set(RegICLR, uint32(e))
}
