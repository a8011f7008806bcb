// scuart/regs.go

package scuart

// Instance base addresses.
const (
	UART0Base uintptr = 0x83000000
	UART1Base uintptr = 0x84000000
)

// Register offsets from the instance base.
const (
	RegTXD   uintptr = 0x00 // transmit data, write starts a character through the tx fifo (W)
	RegRXD   uintptr = 0x04 // next byte from the rx fifo (R)
	RegSTS0  uintptr = 0x08 // raw status (R)
	RegSTS1  uintptr = 0x0C // fifo counts (R)
	RegIEN   uintptr = 0x10 // interrupt enable mask (W)
	RegICLR  uintptr = 0x14 // interrupt clear, write 1 to clear (W)
	RegCTL0  uintptr = 0x18 // line control (RW)
	RegCTL1  uintptr = 0x1C // extended control (RW)
	RegCTL2  uintptr = 0x20 // extended control (RW)
	RegCLKD0 uintptr = 0x24 // baud divisor, low 16 bits (RW)
	RegCLKD1 uintptr = 0x28 // baud divisor, high 16 bits (RW)
	RegSTS2  uintptr = 0x2C // masked status mirror (R)

	// RegCount is the number of 32-bit words in a register block.
	RegCount = 12
)

// STS0 bits.
const (
	STS0_RX_FIFO_FULL_TOUT = 1 << 0 // rx level above watermark or rx timeout
	STS0_TX_FIFO_EMPTY     = 1 << 1 // tx level below watermark
	STS0_PARITY_ERR        = 1 << 2
	STS0_FRAMING_ERR       = 1 << 3
	STS0_RXF_OVERRUN       = 1 << 4
	STS0_DSR_CHANGE        = 1 << 5
	STS0_CTS_CHANGE        = 1 << 6
	STS0_BREAK_DETECT      = 1 << 7
	STS0_DSR               = 1 << 8
	STS0_CTS               = 1 << 9
	STS0_RTS               = 1 << 10
	STS0_RXD               = 1 << 11 // rx line level
	STS0_TXD               = 1 << 12 // tx line level
	STS0_TX_COMPLETE       = 1 << 15
)

// STS1 fields. The SoC header documents 4-bit counts; the hardware reports
// full bytes and the driver reads them that way.
const (
	STS1_RX_COUNT_Msk = 0xFF
	STS1_TX_COUNT_Pos = 8
	STS1_TX_COUNT_Msk = 0xFF << STS1_TX_COUNT_Pos
)

// IEN bits.
const (
	IEN_RX_FIFO_FULL_TOUT = 1 << 0
	IEN_TX_FIFO_EMPTY     = 1 << 1
	IEN_PARITY_ERR        = 1 << 2
	IEN_FRAMING_ERR       = 1 << 3
	IEN_RXF_OVERRUN       = 1 << 4
	IEN_DSR_CHANGE        = 1 << 5
	IEN_CTS_CHANGE        = 1 << 6
	IEN_BREAK_DETECT      = 1 << 7
)

// ICLR bits.
const (
	ICLR_PARITY_ERR   = 1 << 2
	ICLR_FRAMING_ERR  = 1 << 3
	ICLR_RXF_OVERRUN  = 1 << 4
	ICLR_DSR_CHANGE   = 1 << 5
	ICLR_CTS_CHANGE   = 1 << 6
	ICLR_BREAK_DETECT = 1 << 7
)

// CTL0 bits.
const (
	CTL0_PARITY_ODD = 1 << 0 // clear selects even parity
	CTL0_PARITY_EN  = 1 << 1

	CTL0_BL_Pos   = 2
	CTL0_BL_Msk   = 0x3 << CTL0_BL_Pos
	CTL0_BL5BITS  = 0 << CTL0_BL_Pos
	CTL0_BL6BITS  = 1 << CTL0_BL_Pos
	CTL0_BL7BITS  = 2 << CTL0_BL_Pos
	CTL0_BL8BITS  = 3 << CTL0_BL_Pos
	CTL0_SL_Pos   = 4
	CTL0_SL_Msk   = 0x3 << CTL0_SL_Pos
	CTL0_SL0BITS  = 0 << CTL0_SL_Pos
	CTL0_SL1BITS  = 1 << CTL0_SL_Pos
	CTL0_SL1HBITS = 2 << CTL0_SL_Pos
	CTL0_SL2BITS  = 3 << CTL0_SL_Pos

	CTL0_RTS   = 1 << 6
	CTL0_BREAK = 1 << 7 // forces tx low once the fifo is empty and tx is idle; cleared by software
	CTL0_DTR   = 1 << 8
)

// STS2 bits (STS0 sources gated by IEN).
const (
	STS2_RX_FIFO_FULL_TOUT = 1 << 0
	STS2_TX_FIFO_EMPTY     = 1 << 1
	STS2_PARITY_ERR        = 1 << 2
	STS2_FRAMING_ERR       = 1 << 3
	STS2_RXF_OVERRUN       = 1 << 4
	STS2_DSR_CHANGE        = 1 << 5
	STS2_CTS_CHANGE        = 1 << 6
	STS2_BREAK_DETECT      = 1 << 7
)

// Global register block.
const (
	GlobalControlAddr uintptr = 0x8B000004

	GR_UART0_EN = 1 << 20
	GR_UART1_EN = 1 << 21
	// GlobalUARTEnable gates the clocks of both instances.
	GlobalUARTEnable = GR_UART0_EN | GR_UART1_EN
)

// Fixed line parameters.
const (
	ClockFrequency = 26000000
	DefaultBaud    = 115200

	// LineControl8N1 is the CTL0 value written by Configure.
	LineControl8N1 = CTL0_BL8BITS | CTL0_SL1BITS

	// ReadyTimeout bounds the transmit-complete poll in Configure.
	ReadyTimeout = 0x10000
)
