// scuart/bus.go

package scuart

// Bus is the register window of one UART instance. Offsets are byte offsets
// from the instance base. Every call is one aligned 32-bit volatile access;
// implementations must not cache values.
type Bus interface {
	Get(offset uintptr) uint32
	Set(offset uintptr, value uint32)
}

// Register32 is a single volatile register outside an instance window.
// *volatile.Register32 satisfies it on hardware.
type Register32 interface {
	Get() uint32
	Set(value uint32)
}

// ClockGate owns the UART enable bits of the global control register.
//
// The register is shared by every UART instance and Enable/Disable are plain
// read-modify-write sequences. Callers configuring more than one instance
// concurrently must serialize those calls themselves.
type ClockGate struct {
	reg  Register32
	mask uint32
}

// NewClockGate returns a gate driving mask within reg.
func NewClockGate(reg Register32, mask uint32) *ClockGate {
	return &ClockGate{reg: reg, mask: mask}
}

// Disable clears the gate bits, leaving the rest of the register unchanged.
func (g *ClockGate) Disable() {
	g.reg.Set(g.reg.Get() &^ g.mask)
}

// Enable sets the gate bits, leaving the rest of the register unchanged.
func (g *ClockGate) Enable() {
	g.reg.Set(g.reg.Get() | g.mask)
}

// Enabled reports whether every gate bit is set.
func (g *ClockGate) Enabled() bool {
	return g.reg.Get()&g.mask == g.mask
}
