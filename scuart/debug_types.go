//go:build scuartdebug

package scuart

import "sync/atomic"

// Stats holds counters since the last reset.
type Stats struct {
	InitPolls uint32 // transmit-complete polls that failed during Configure

	// Spin counts
	TxWaits uint32 // STS1 polls with the tx fifo occupied
	RxWaits uint32 // STS1 polls with the rx fifo empty

	// Throughput
	TxBytes uint32 // bytes written to TXD
	RxBytes uint32 // bytes read from RXD

	Timeouts uint32 // context expiries in the *Context helpers
}

func (u *UART) DebugReset() {
	u.stats = Stats{}
}

func (u *UART) DebugStats() Stats {
	return Stats{
		InitPolls: atomic.LoadUint32(&u.stats.InitPolls),
		TxWaits:   atomic.LoadUint32(&u.stats.TxWaits),
		RxWaits:   atomic.LoadUint32(&u.stats.RxWaits),
		TxBytes:   atomic.LoadUint32(&u.stats.TxBytes),
		RxBytes:   atomic.LoadUint32(&u.stats.RxBytes),
		Timeouts:  atomic.LoadUint32(&u.stats.Timeouts),
	}
}
