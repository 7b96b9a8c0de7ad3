// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package regs describes the register maps of the supported UART peripherals.
package regs // import "github.com/go-lpc/uartx/internal/regs"

import "fmt"

const (
	// UART0 is the 16550-compatible UART of the QEMU virt machine.
	UART0_BASE        = 0x10000000
	UART0_TX_RX_FIFO0 = 0x0 // THR on write, RBR on read
	UART0_LSR         = 0x5
	UART0_LSR_THRE    = 1 << 5

	// UARTLITE is the AXI UART-Lite of the AMD MicroBlaze-V.
	UARTLITE_BASE      = 0x40600000
	UARTLITE_RX_OFFSET = 0x0
	UARTLITE_TX_OFFSET = 0x4
	UARTLITE_STAT_REG  = 0x8
	UARTLITE_CTRL_REG  = 0xc

	UARTLITE_STAT_RX_VALID = 1 << 0
	UARTLITE_STAT_RX_FULL  = 1 << 1
	UARTLITE_STAT_TX_EMPTY = 1 << 2
	UARTLITE_STAT_TX_FULL  = 1 << 3

	UARTLITE_CTRL_RST_TX = 1 << 0
	UARTLITE_CTRL_RST_RX = 1 << 1

	UARTLITE_FIFO_DEPTH = 16

	// PageSpan is the size of the window mapped over a peripheral.
	PageSpan = 0x1000
)

// Layout is the register map of a transmit-only view of a UART.
type Layout struct {
	Name string
	Base int64 // physical base address
	Span int64 // size of the mapped window
	Tx   int64 // offset of the transmit register

	Status      int64 // offset of the 8-bit status register
	TxFull      uint8 // status mask tested for transmit readiness
	FullWhenSet bool  // whether a set TxFull bit means "full" or "ready"
}

var (
	UART0 = Layout{
		Name:        "uart0",
		Base:        UART0_BASE,
		Span:        PageSpan,
		Tx:          UART0_TX_RX_FIFO0,
		Status:      UART0_LSR,
		TxFull:      UART0_LSR_THRE,
		FullWhenSet: false,
	}

	UARTLite = Layout{
		Name:        "uartlite",
		Base:        UARTLITE_BASE,
		Span:        PageSpan,
		Tx:          UARTLITE_TX_OFFSET,
		Status:      UARTLITE_STAT_REG,
		TxFull:      UARTLITE_STAT_TX_FULL,
		FullWhenSet: true,
	}
)

// Layouts returns all the known register layouts.
func Layouts() []Layout {
	return []Layout{UART0, UARTLite}
}

// TxAddr returns the physical address of the transmit register.
func (l Layout) TxAddr() int64 { return l.Base + l.Tx }

// Full reports whether the status value stat denotes a full transmit FIFO.
func (l Layout) Full(stat uint8) bool {
	set := stat&l.TxFull != 0
	return set == l.FullWhenSet
}

// TxAddr is the physical address of the transmit register of the build target.
const TxAddr = targetBase + targetTx

// Target returns the UART layout this binary was built for, i.e. the layout
// whose transmit register sits at TxAddr.
// The build target is only set by the TxAddr constant: Target returns a copy.
func Target() Layout {
	for _, l := range Layouts() {
		if l.TxAddr() == TxAddr {
			return l
		}
	}
	panic(fmt.Errorf("regs: no layout with transmit register at 0x%x", TxAddr))
}
