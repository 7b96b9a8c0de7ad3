// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regs

import "testing"

func TestLayouts(t *testing.T) {
	for _, tc := range []struct {
		layout Layout
		addr   int64
	}{
		{UART0, 0x10000000},
		{UARTLite, 0x40600004},
	} {
		t.Run(tc.layout.Name, func(t *testing.T) {
			if got, want := tc.layout.TxAddr(), tc.addr; got != want {
				t.Fatalf("invalid tx address: got=0x%x, want=0x%x", got, want)
			}
			if tc.layout.Base%PageSpan != 0 {
				t.Fatalf("base 0x%x is not page aligned", tc.layout.Base)
			}
			if tc.layout.Tx+4 > tc.layout.Span {
				t.Fatalf("tx register outside of mapped window")
			}
		})
	}
}

func TestTarget(t *testing.T) {
	n := 0
	for _, l := range Layouts() {
		if l == Target() {
			n++
		}
	}
	if n != 1 {
		t.Fatalf("target %q matches %d layouts, want 1", Target().Name, n)
	}
	if got, want := int64(TxAddr), Target().TxAddr(); got != want {
		t.Fatalf("invalid tx address: got=0x%x, want=0x%x", got, want)
	}

	layout := Target()
	layout.Base = 0
	layout.Tx = 0x42
	if layout.TxAddr() == Target().TxAddr() {
		t.Fatalf("modified copy should not alias the build target")
	}
	if got, want := Target().TxAddr(), int64(TxAddr); got != want {
		t.Fatalf("build target modified at run time: got=0x%x, want=0x%x", got, want)
	}
}

func TestFull(t *testing.T) {
	for _, tc := range []struct {
		name   string
		layout Layout
		stat   uint8
		full   bool
	}{
		{"uart0-thre", UART0, UART0_LSR_THRE, false},
		{"uart0-busy", UART0, 0, true},
		{"uartlite-empty", UARTLite, UARTLITE_STAT_TX_EMPTY, false},
		{"uartlite-full", UARTLite, UARTLITE_STAT_TX_FULL, true},
		{"uartlite-rx", UARTLite, UARTLITE_STAT_RX_VALID, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got, want := tc.layout.Full(tc.stat), tc.full; got != want {
				t.Fatalf("invalid full state for 0x%x: got=%v, want=%v", tc.stat, got, want)
			}
		})
	}
}
