package scuart_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jangala-dev/tinygo-scuart/scuart"
	"github.com/jangala-dev/tinygo-scuart/scuart/regsim"
)

// newTestUART returns a driver over a fresh simulated block whose global
// register has unrelated bits set.
func newTestUART() (*scuart.UART, *regsim.Block) {
	b := regsim.New()
	b.SetGlobal(0x0000_00A5 | scuart.GlobalUARTEnable)
	gate := scuart.NewClockGate(b.Global(), scuart.GlobalUARTEnable)
	return scuart.New(b, gate), b
}

func TestDivisor(t *testing.T) {
	cases := []struct {
		clock, baud, want uint32
	}{
		{scuart.ClockFrequency, 115200, 226},
		{scuart.ClockFrequency, 921600, 28},
		{scuart.ClockFrequency, 57600, 451},
		{scuart.ClockFrequency, 9600, 2708},
		{scuart.ClockFrequency, 300, 86667},
		{10, 4, 3}, // exact half rounds up
		{10, 3, 3},
	}
	for _, c := range cases {
		if got := scuart.Divisor(c.clock, c.baud); got != c.want {
			t.Errorf("Divisor(%d, %d) = %d; want %d", c.clock, c.baud, got, c.want)
		}
	}
}

func TestConfigure_ProgramsLine(t *testing.T) {
	u, b := newTestUART()
	b.Set(scuart.RegIEN, 0xFF)
	b.Set(scuart.RegCTL1, 0x33)
	b.Set(scuart.RegCTL2, 0x44)

	if err := u.Configure(); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	want := map[uintptr]uint32{
		scuart.RegIEN:   0,
		scuart.RegCLKD0: 226,
		scuart.RegCLKD1: 0,
		scuart.RegCTL0:  0x1C,
		scuart.RegCTL1:  0,
		scuart.RegCTL2:  0,
	}
	for off, v := range want {
		if got := b.Peek(off); got != v {
			t.Errorf("%s = 0x%x; want 0x%x", regsim.RegName(off), got, v)
		}
	}
	if scuart.LineControl8N1 != scuart.CTL0_BL8BITS|scuart.CTL0_SL1BITS {
		t.Fatalf("LineControl8N1 = 0x%x", scuart.LineControl8N1)
	}
	if got := u.Registers().BaudRate(); got != scuart.ClockFrequency/226 {
		t.Errorf("BaudRate = %d; want %d", got, scuart.ClockFrequency/226)
	}
}

func TestConfigure_GateSequence(t *testing.T) {
	u, b := newTestUART()
	b.ResetTrace()

	if err := u.Configure(); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	disable := b.Find(0, func(a regsim.Access) bool {
		return a.Global && a.Write && a.Value&scuart.GlobalUARTEnable == 0
	})
	if disable < 0 {
		t.Fatal("global enable bits never cleared")
	}
	ien := b.Find(disable, func(a regsim.Access) bool {
		return !a.Global && a.Write && a.Offset == scuart.RegIEN
	})
	if ien < 0 {
		t.Fatal("IEN not written after clock disable")
	}
	enable := b.Find(ien, func(a regsim.Access) bool {
		return a.Global && a.Write && a.Value&scuart.GlobalUARTEnable == scuart.GlobalUARTEnable
	})
	if enable < 0 {
		t.Fatal("global enable bits not restored after IEN write")
	}
	clkd := b.Find(0, func(a regsim.Access) bool {
		return a.Write && a.Offset == scuart.RegCLKD0 && !a.Global
	})
	if clkd < enable {
		t.Fatalf("CLKD0 written at %d, before clock enable at %d", clkd, enable)
	}

	// Unrelated global bits survive the read-modify-write.
	if got := b.Global().Get(); got != 0xA5|scuart.GlobalUARTEnable {
		t.Fatalf("global control = 0x%x", got)
	}
}

func TestConfigure_TimeoutTouchesOnlySTS0(t *testing.T) {
	b := &regsim.Block{} // transmitter never completes
	u := scuart.New(b, scuart.NewClockGate(b.Global(), scuart.GlobalUARTEnable))

	err := u.Configure()
	if !errors.Is(err, scuart.ErrDeviceError) {
		t.Fatalf("Configure err = %v; want ErrDeviceError", err)
	}

	tr := b.Trace()
	if len(tr) != scuart.ReadyTimeout {
		t.Fatalf("accesses = %d; want %d", len(tr), scuart.ReadyTimeout)
	}
	for i, a := range tr {
		if a.Global || a.Write || a.Offset != scuart.RegSTS0 {
			t.Fatalf("access %d = %v; want only STS0 reads", i, a)
		}
	}
}

func TestConfigure_LatchedCompletion(t *testing.T) {
	b := &regsim.Block{}
	u := scuart.New(b, scuart.NewClockGate(b.Global(), scuart.GlobalUARTEnable))
	b.Latch(scuart.STS0_TX_COMPLETE)
	if err := u.Configure(); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if n := b.Reads(scuart.RegSTS0); n != 1 {
		t.Fatalf("STS0 reads = %d; want 1", n)
	}
}

func TestPoll_FalseAfterConfigure(t *testing.T) {
	u, _ := newTestUART()
	if err := u.Configure(); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if u.Poll() {
		t.Fatal("Poll = true with empty rx fifo")
	}
	if n := u.Buffered(); n != 0 {
		t.Fatalf("Buffered = %d; want 0", n)
	}
}

func TestWrite_WaitsForEmptyFifo(t *testing.T) {
	u, b := newTestUART()
	b.TxDrainReads = 3
	b.ResetTrace()

	msg := []byte("hello, sc8810")
	n, err := u.Write(msg)
	if err != nil || n != len(msg) {
		t.Fatalf("Write: n=%d err=%v; want %d,nil", n, err, len(msg))
	}
	if got := string(b.Transmitted()); got != string(msg) {
		t.Fatalf("transmitted %q; want %q", got, msg)
	}

	tr := b.Trace()
	writes := 0
	for i, a := range tr {
		if !a.Write || a.Offset != scuart.RegTXD {
			continue
		}
		writes++
		if i == 0 {
			t.Fatal("TXD written before any status read")
		}
		prev := tr[i-1]
		if prev.Write || prev.Offset != scuart.RegSTS1 || prev.Value&scuart.STS1_TX_COUNT_Msk != 0 {
			t.Fatalf("TXD write %d preceded by %v; want STS1 read with empty tx fifo", writes, prev)
		}
	}
	if writes != len(msg) {
		t.Fatalf("TXD writes = %d; want %d", writes, len(msg))
	}

	last := tr[len(tr)-1]
	if last.Write || last.Offset != scuart.RegSTS1 || last.Value&scuart.STS1_TX_COUNT_Msk != 0 {
		t.Fatalf("last access %v; want drained STS1 read", last)
	}
}

func TestWriteByte(t *testing.T) {
	u, b := newTestUART()
	if err := u.WriteByte('!'); err != nil {
		t.Fatalf("WriteByte: %v", err)
	}
	if got := b.Writes(scuart.RegTXD); len(got) != 1 || got[0] != '!' {
		t.Fatalf("TXD writes = %v", got)
	}
}

func TestRead_WaitsForData(t *testing.T) {
	u, b := newTestUART()
	b.RxLatency = 4
	b.Feed([]byte("xyz")...)
	b.ResetTrace()

	buf := make([]byte, 3)
	n, err := u.Read(buf)
	if err != nil || n != 3 {
		t.Fatalf("Read: n=%d err=%v; want 3,nil", n, err)
	}
	if string(buf) != "xyz" {
		t.Fatalf("got %q; want %q", buf, "xyz")
	}

	tr := b.Trace()
	reads := 0
	for i, a := range tr {
		if a.Write || a.Offset != scuart.RegRXD {
			continue
		}
		reads++
		prev := tr[i-1]
		if prev.Offset != scuart.RegSTS1 || prev.Value&scuart.STS1_RX_COUNT_Msk == 0 {
			t.Fatalf("RXD read %d preceded by %v; want STS1 read with data", reads, prev)
		}
	}
	if reads != 3 {
		t.Fatalf("RXD reads = %d; want 3", reads)
	}
}

func TestReadByte(t *testing.T) {
	u, b := newTestUART()
	b.Feed('Q')
	c, err := u.ReadByte()
	if err != nil || c != 'Q' {
		t.Fatalf("ReadByte = %q,%v; want 'Q',nil", c, err)
	}
}

func TestTryRead_NonBlocking(t *testing.T) {
	u, b := newTestUART()
	buf := make([]byte, 4)

	if n := u.TryRead(buf); n != 0 {
		t.Fatalf("TryRead on empty = %d", n)
	}
	b.Feed('A', 'B')
	if n := u.TryRead(buf); n != 2 || string(buf[:n]) != "AB" {
		t.Fatalf("TryRead = %d %q; want 2 \"AB\"", n, buf[:n])
	}
	if n := u.TryRead(buf); n != 0 {
		t.Fatalf("expected empty after drain, got n=%d", n)
	}
}

func TestReadContext_Cancelled(t *testing.T) {
	u, b := newTestUART()
	b.Feed('1')

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	buf := make([]byte, 2)
	n, err := u.ReadContext(ctx, buf)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v; want context.Canceled", err)
	}
	if n != 1 || buf[0] != '1' {
		t.Fatalf("n=%d buf=%q; want 1 byte '1'", n, buf[:n])
	}
}

func TestFlushContext_Cancelled(t *testing.T) {
	u, b := newTestUART()
	b.TxDrainReads = 1 << 20
	b.Set(scuart.RegTXD, 'x')

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := u.FlushContext(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v; want context.Canceled", err)
	}
}

func TestGetControl(t *testing.T) {
	u, b := newTestUART()

	ctl, err := u.GetControl()
	if err != nil || ctl != scuart.ControlInputBufferEmpty {
		t.Fatalf("GetControl empty = 0x%x,%v", ctl, err)
	}
	b.Feed('a')
	ctl, err = u.GetControl()
	if err != nil || ctl != 0 {
		t.Fatalf("GetControl with data = 0x%x,%v", ctl, err)
	}
}

func TestUnsupportedOpsTouchNothing(t *testing.T) {
	u, b := newTestUART()
	b.ResetTrace()

	if err := u.SetControl(scuart.ControlRequestToSend | scuart.ControlDataTerminalReady); !errors.Is(err, scuart.ErrUnsupported) {
		t.Fatalf("SetControl err = %v", err)
	}
	err := u.SetAttributes(scuart.Attributes{
		BaudRate: 9600,
		Parity:   scuart.ParityEven,
		DataBits: 7,
		StopBits: scuart.StopBits2,
	})
	if !errors.Is(err, scuart.ErrUnsupported) {
		t.Fatalf("SetAttributes err = %v", err)
	}
	if tr := b.Trace(); len(tr) != 0 {
		t.Fatalf("unexpected register accesses: %v", tr)
	}
}

func TestLineErrors(t *testing.T) {
	u, b := newTestUART()
	b.Latch(scuart.STS0_PARITY_ERR | scuart.STS0_BREAK_DETECT | scuart.STS0_DSR)

	e := u.LineErrors()
	if e != scuart.ParityError|scuart.Break {
		t.Fatalf("LineErrors = 0x%x", uint32(e))
	}
	if !e.Has(scuart.Break) || e.Has(scuart.Overrun) {
		t.Fatalf("Has mismatch for 0x%x", uint32(e))
	}

	u.ClearErrors(scuart.ParityError)
	if got := b.Writes(scuart.RegICLR); len(got) != 1 || got[0] != scuart.ICLR_PARITY_ERR {
		t.Fatalf("ICLR writes = %v", got)
	}
	if e := u.LineErrors(); e != scuart.Break {
		t.Fatalf("after clear LineErrors = 0x%x; want Break", uint32(e))
	}
	if got := scuart.Break.Error(); got != "break detected" {
		t.Fatalf("Break.Error() = %q", got)
	}
	if got := (scuart.ParityError | scuart.Overrun).Error(); got != "multiple line errors" {
		t.Fatalf("combined Error() = %q", got)
	}

	b.ResetTrace()
	u.ClearErrors(0)
	if tr := b.Trace(); len(tr) != 0 {
		t.Fatalf("ClearErrors(0) accessed registers: %v", tr)
	}
}

func TestClockGate(t *testing.T) {
	b := regsim.New()
	b.SetGlobal(0x0F0F_0000 | 0x5A)
	g := scuart.NewClockGate(b.Global(), scuart.GR_UART1_EN)

	g.Enable()
	if !g.Enabled() {
		t.Fatal("Enabled = false after Enable")
	}
	g.Disable()
	if g.Enabled() {
		t.Fatal("Enabled = true after Disable")
	}
	if got := b.Global().Get(); got != (0x0F0F_0000|0x5A)&^scuart.GR_UART1_EN {
		t.Fatalf("global = 0x%x", got)
	}
}
