// cmd/scuart_selftest brings up the SC8810 debug UART, checks the programmed
// registers, then echoes every received byte so a host can run
// `scuart_term check` against it.

//go:build tinygo && sc8810

package main

import (
	"strconv"

	"github.com/jangala-dev/tinygo-scuart/console"
	"github.com/jangala-dev/tinygo-scuart/scuart"
)

var u = scuart.UART1

func main() {
	if err := u.Configure(); err != nil {
		// Nothing can be printed on a port that never came up.
		for {
		}
	}

	con := console.New(u)
	con.Println("")
	con.Println("scuart self-test")

	pass, fail := 0, 0
	report := func(name string, ok bool) {
		if ok {
			con.Println("[PASS] " + name)
			pass++
		} else {
			con.Println("[FAIL] " + name)
			fail++
		}
	}

	r := u.Registers()
	report("CTL0 is 8N1", r.CTL0 == scuart.LineControl8N1)
	report("CTL1/CTL2 cleared", r.CTL1 == 0 && r.CTL2 == 0)
	report("divisor programmed", r.CLKD0 == scuart.Divisor(scuart.ClockFrequency, scuart.DefaultBaud) && r.CLKD1 == 0)
	report("clock gate enabled", scuart.GlobalControl.Enabled())
	report("no line errors", u.LineErrors() == 0)
	ctl, err := u.GetControl()
	report("control readable", err == nil)
	report("set attributes unsupported", u.SetAttributes(scuart.Attributes{BaudRate: 9600}) == scuart.ErrUnsupported)
	report("set control unsupported", u.SetControl(ctl) == scuart.ErrUnsupported)

	con.Println("passed = " + strconv.Itoa(pass) + "  failed = " + strconv.Itoa(fail))
	con.Println("echo mode")

	for {
		c, _ := u.ReadByte()
		if e := u.LineErrors(); e != 0 {
			u.ClearErrors(e)
		}
		u.WriteByte(c)
	}
}
