//go:build !scuartdebug

package scuart

type Stats struct{}

func (u *UART) DebugReset()       {}
func (u *UART) DebugStats() Stats { return Stats{} }
