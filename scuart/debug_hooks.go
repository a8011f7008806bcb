//go:build scuartdebug

package scuart

import "sync/atomic"

// Called once per failed transmit-complete poll in Configure.
func (u *UART) dbgInitPoll() {
	atomic.AddUint32(&u.stats.InitPolls, 1)
}

// Called per STS1 poll that found the tx fifo occupied.
func (u *UART) dbgTxWait() {
	atomic.AddUint32(&u.stats.TxWaits, 1)
}

// Called per STS1 poll that found the rx fifo empty.
func (u *UART) dbgRxWait() {
	atomic.AddUint32(&u.stats.RxWaits, 1)
}

func (u *UART) dbgTxByte() {
	atomic.AddUint32(&u.stats.TxBytes, 1)
}

func (u *UART) dbgRxByte() {
	atomic.AddUint32(&u.stats.RxBytes, 1)
}

func (u *UART) dbgTimeout() {
	atomic.AddUint32(&u.stats.Timeouts, 1)
}
