// scuart/scuart_context.go

package scuart

import "context"

// The plain Read/Write paths spin without a deadline. These variants check
// ctx between polls for callers that would rather give up than hang.

// WaitReadableContext spins until the rx fifo holds data or ctx is done.
func (uart *UART) WaitReadableContext(ctx context.Context) error {
	for !uart.Poll() {
		uart.dbgRxWait()
		select {
		case <-ctx.Done():
			uart.dbgTimeout()
			return ctx.Err()
		default:
		}
	}
	return nil
}

// ReadContext reads exactly len(p) bytes unless ctx ends first, in which
// case it returns the bytes read so far and ctx.Err().
func (uart *UART) ReadContext(ctx context.Context, p []byte) (int, error) {
	for i := range p {
		if err := uart.WaitReadableContext(ctx); err != nil {
			return i, err
		}
		p[i] = uart.readByte()
	}
	return len(p), nil
}

// FlushContext spins until the tx fifo is empty or ctx is done.
func (uart *UART) FlushContext(ctx context.Context) error {
	for uart.txPending() != 0 {
		uart.dbgTxWait()
		select {
		case <-ctx.Done():
			uart.dbgTimeout()
			return ctx.Err()
		default:
		}
	}
	return nil
}
