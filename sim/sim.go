// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sim provides simulated memory-mapped UART peripherals.
//
// A simulated UART exposes the register window of a UART layout through
// io.ReaderAt and io.WriterAt, so it can stand in for the mapped
// physical registers of a real peripheral.
package sim // import "github.com/go-lpc/uartx/sim"

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync"

	"github.com/go-lpc/uartx/internal/regs"
)

// FIFODepth is the number of words the transmit FIFO can hold.
const FIFODepth = regs.UARTLITE_FIFO_DEPTH

// UART is a simulated UART.
//
// Every word stored into the transmit register is recorded. Words enter a
// transmit FIFO; draining the FIFO forwards the low byte of each word to
// the output writer. When the FIFO is full, stores are dropped, as the
// hardware does, and counted as overruns.
type UART struct {
	mu     sync.Mutex
	layout regs.Layout
	out    io.Writer

	auto     bool     // drain on each store
	fifo     []uint32 // pending words
	words    []uint32 // accepted words
	overruns int
	err      error // first error from out
}

// New returns a simulated UART with the given layout.
// Transmitted bytes are written to out, which may be nil.
// The FIFO is drained on each store.
func New(layout regs.Layout, out io.Writer) *UART {
	return &UART{
		layout: layout,
		out:    out,
		auto:   true,
		fifo:   make([]uint32, 0, FIFODepth),
	}
}

// Layout returns the register layout of the simulated UART.
func (u *UART) Layout() regs.Layout { return u.layout }

// SetAutoDrain sets whether the FIFO is drained on each store.
// When disabled, the FIFO must be emptied with Drain.
func (u *UART) SetAutoDrain(v bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.auto = v
	if u.auto {
		u.drain(-1)
	}
}

// ReadAt implements io.ReaderAt.
// Reading the status register reports the state of the transmit FIFO,
// all other registers read as zero.
func (u *UART) ReadAt(p []byte, off int64) (int, error) {
	if err := u.check(p, off, "ReadAt"); err != nil {
		return 0, err
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	for i := range p {
		p[i] = 0
	}
	if stat := u.layout.Status; off <= stat && stat < off+int64(len(p)) {
		p[stat-off] = u.status()
	}
	return len(p), nil
}

// WriteAt implements io.WriterAt.
// A store at the transmit register pushes one word into the transmit FIFO.
func (u *UART) WriteAt(p []byte, off int64) (int, error) {
	if err := u.check(p, off, "WriteAt"); err != nil {
		return 0, err
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	switch {
	case off == u.layout.Tx:
		var buf [4]byte
		copy(buf[:], p)
		u.push(binary.LittleEndian.Uint32(buf[:]))
	case u.layout == regs.UARTLite && off == regs.UARTLITE_CTRL_REG:
		if p[0]&regs.UARTLITE_CTRL_RST_TX != 0 {
			u.fifo = u.fifo[:0]
		}
	}
	return len(p), nil
}

func (u *UART) check(p []byte, off int64, op string) error {
	if off < 0 || off+int64(len(p)) > u.layout.Span || len(p) == 0 {
		return fmt.Errorf("sim: invalid %s of %d bytes at offset 0x%x", op, len(p), off)
	}
	return nil
}

func (u *UART) status() uint8 {
	full := len(u.fifo) >= FIFODepth
	empty := len(u.fifo) == 0

	var stat uint8
	switch u.layout {
	case regs.UARTLite:
		if full {
			stat |= regs.UARTLITE_STAT_TX_FULL
		}
		if empty {
			stat |= regs.UARTLITE_STAT_TX_EMPTY
		}
	default:
		const temt = 1 << 6
		if !full {
			stat |= regs.UART0_LSR_THRE
		}
		if empty {
			stat |= temt
		}
	}
	return stat
}

func (u *UART) push(v uint32) {
	if len(u.fifo) >= FIFODepth {
		u.overruns++
		return
	}
	u.words = append(u.words, v)
	u.fifo = append(u.fifo, v)
	if u.auto {
		u.drain(-1)
	}
}

// Drain transmits at most n words from the FIFO, all of them if n < 0.
// It returns the number of transmitted words.
func (u *UART) Drain(n int) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.drain(n)
}

func (u *UART) drain(n int) int {
	if n < 0 || n > len(u.fifo) {
		n = len(u.fifo)
	}
	if n == 0 {
		return 0
	}
	if u.out != nil && u.err == nil {
		buf := make([]byte, n)
		for i, v := range u.fifo[:n] {
			buf[i] = byte(v)
		}
		_, u.err = u.out.Write(buf)
	}
	u.fifo = append(u.fifo[:0], u.fifo[n:]...)
	return n
}

// Words returns a copy of the words accepted by the transmit register.
func (u *UART) Words() []uint32 {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]uint32(nil), u.words...)
}

// Bytes returns the low bytes of the words accepted by the transmit register.
func (u *UART) Bytes() []byte {
	u.mu.Lock()
	defer u.mu.Unlock()
	buf := make([]byte, len(u.words))
	for i, v := range u.words {
		buf[i] = byte(v)
	}
	return buf
}

// Pending returns the number of words waiting in the transmit FIFO.
func (u *UART) Pending() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.fifo)
}

// Overruns returns the number of stores dropped because the FIFO was full.
func (u *UART) Overruns() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.overruns
}

// Err returns the first error encountered while writing to the output.
func (u *UART) Err() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.err
}

// Reset clears the FIFO and all recorded state.
func (u *UART) Reset() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.fifo = u.fifo[:0]
	u.words = nil
	u.overruns = 0
	u.err = nil
}

var (
	_ io.ReaderAt = (*UART)(nil)
	_ io.WriterAt = (*UART)(nil)
)
