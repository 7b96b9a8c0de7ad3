// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uart

import (
	"errors"
	"fmt"
	"io"
	"log"
	"reflect"
	"testing"

	"github.com/go-lpc/uartx/internal/regs"
)

// fakeMem records the accesses made on physical memory.
type fakeMem struct {
	ops  []string
	stat uint8
}

func (m *fakeMem) bus(layout regs.Layout) *mmio {
	return &mmio{
		layout: layout,
		load8: func(addr uintptr) uint8 {
			m.ops = append(m.ops, fmt.Sprintf("r8 0x%x", addr))
			return m.stat
		},
		load32: func(addr uintptr) uint32 {
			m.ops = append(m.ops, fmt.Sprintf("r32 0x%x", addr))
			return 0
		},
		store32: func(addr uintptr, v uint32) {
			m.ops = append(m.ops, fmt.Sprintf("w32 0x%x 0x%x", addr, v))
		},
	}
}

func TestMMIOAccessWidth(t *testing.T) {
	for _, tc := range []struct {
		layout regs.Layout
		stat   uint8
		want   []string
	}{
		{
			layout: regs.UART0,
			stat:   regs.UART0_LSR_THRE,
			want: []string{
				"r8 0x10000005", "w32 0x10000000 0x4f",
				"r8 0x10000005", "w32 0x10000000 0x4b",
			},
		},
		{
			layout: regs.UARTLite,
			stat:   regs.UARTLITE_STAT_TX_EMPTY,
			want: []string{
				"r8 0x40600008", "w32 0x40600004 0x4f",
				"r8 0x40600008", "w32 0x40600004 0x4b",
			},
		},
	} {
		t.Run(tc.layout.Name, func(t *testing.T) {
			mem := &fakeMem{stat: tc.stat}
			tx := New(
				mem.bus(tc.layout),
				withLayout(tc.layout),
				WithTxReady(1),
				WithLogger(log.New(io.Discard, "", 0)),
			)
			tx.PrintString("OK")
			if err := tx.Err(); err != nil {
				t.Fatalf("could not transmit: %+v", err)
			}
			if got, want := mem.ops, tc.want; !reflect.DeepEqual(got, want) {
				t.Fatalf("invalid memory accesses:\ngot= %q\nwant=%q", got, want)
			}
		})
	}
}

func TestMMIOFull(t *testing.T) {
	mem := &fakeMem{} // LSR.THRE cleared: transmitter busy.
	tx := New(
		mem.bus(regs.UART0),
		withLayout(regs.UART0),
		WithTxReady(3),
		WithLogger(log.New(io.Discard, "", 0)),
	)
	tx.PrintString("x")
	if err := tx.Err(); !errors.Is(err, ErrTxFull) {
		t.Fatalf("invalid error: got=%+v, want=%+v", err, ErrTxFull)
	}
	want := []string{"r8 0x10000005", "r8 0x10000005", "r8 0x10000005"}
	if got := mem.ops; !reflect.DeepEqual(got, want) {
		t.Fatalf("invalid memory accesses:\ngot= %q\nwant=%q", got, want)
	}
}

func TestMMIOInvalid(t *testing.T) {
	m := (&fakeMem{}).bus(regs.UARTLite)

	_, err := m.WriteAt(make([]byte, 1), regs.UARTLITE_TX_OFFSET)
	if err == nil {
		t.Fatalf("expected an error for an 8-bit store")
	}
	_, err = m.ReadAt(make([]byte, 4), 0x2)
	if err == nil {
		t.Fatalf("expected an error for an unaligned load")
	}
	_, err = m.ReadAt(make([]byte, 2), 0x0)
	if err == nil {
		t.Fatalf("expected an error for a 16-bit load")
	}
	_, err = m.ReadAt(make([]byte, 1), regs.PageSpan)
	if err == nil {
		t.Fatalf("expected an error outside of the register window")
	}
}
