// scuart/sc8810.go

//go:build tinygo && sc8810

package scuart

import (
	"runtime/volatile"
	"unsafe"
)

// mmio is a register window at a fixed physical base.
type mmio uintptr

func (m mmio) reg(offset uintptr) *volatile.Register32 {
	return (*volatile.Register32)(unsafe.Pointer(uintptr(m) + offset))
}

func (m mmio) Get(offset uintptr) uint32        { return m.reg(offset).Get() }
func (m mmio) Set(offset uintptr, value uint32) { m.reg(offset).Set(value) }

// Instances on the SC8810. UART1 is the debug console, UART0 the user port.
var (
	GlobalControl = NewClockGate(
		(*volatile.Register32)(unsafe.Pointer(GlobalControlAddr)),
		GlobalUARTEnable,
	)

	UART0 = New(mmio(UART0Base), GlobalControl)
	UART1 = New(mmio(UART1Base), GlobalControl)
)
