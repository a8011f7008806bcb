//go:build !scuartdebug

package scuart

func (u *UART) dbgInitPoll() {}
func (u *UART) dbgTxWait()   {}
func (u *UART) dbgRxWait()   {}
func (u *UART) dbgTxByte()   {}
func (u *UART) dbgRxByte()   {}
func (u *UART) dbgTimeout()  {}
