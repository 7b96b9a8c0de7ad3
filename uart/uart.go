// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package uart writes messages to the transmit register of a memory-mapped UART.
//
// The register layout is selected at build time:
//  - by default, the AXI UART-Lite of the MicroBlaze-V (TX FIFO at 0x40600004),
//  - with the "qemu" build tag, the UART of the QEMU virt machine (0x10000000).
package uart // import "github.com/go-lpc/uartx/uart"

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/go-lpc/uartx/internal/regs"
)

const (
	verbose = false
)

var (
	// ErrTxFull is returned when the transmit FIFO did not accept data
	// within the configured number of status polls.
	ErrTxFull = errors.New("uart: transmit FIFO full")
)

// Layout describes the registers of a UART peripheral.
type Layout = regs.Layout

// Target returns the UART layout this binary was built for.
func Target() Layout { return regs.Target() }

// Layouts returns all the UART layouts known to this package.
func Layouts() []Layout { return regs.Layouts() }

// Bus is a window of registers, addressed relative to the base of a UART.
type Bus interface {
	io.ReaderAt
	io.WriterAt
}

// Stats holds the transmission counters of a Transmitter.
type Stats struct {
	Words int64 // number of words stored into the transmit register
}

// Transmitter writes bytes, one 32-bit store per byte, to the transmit
// register of a UART.
//
// A Transmitter is not safe for concurrent use: it assumes exclusive
// access to the transmit register.
type Transmitter struct {
	msg    *log.Logger
	cfg    config
	layout Layout
	bus    Bus

	mem struct {
		fd io.Closer
		h  io.Closer
	}

	regs struct {
		tx   reg32
		stat reg8
	}

	err   error
	buf   [4]byte
	stats Stats
}

// New returns a transmitter storing into the transmit register of bus.
func New(bus Bus, opts ...Option) *Transmitter {
	cfg := newConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	tx := &Transmitter{
		msg:    cfg.msg,
		cfg:    cfg,
		layout: cfg.layout,
		bus:    bus,
	}
	tx.regs.tx = newReg32(tx, bus, tx.layout.Tx)
	tx.regs.stat = newReg8(tx, bus, tx.layout.Status)

	return tx
}

// Layout returns the register layout the transmitter stores into.
func (tx *Transmitter) Layout() Layout { return tx.layout }

// Print transmits msg up to, and excluding, its first NUL byte.
// Transmission stops at the end of msg when it holds no NUL byte.
//
// Print does not report errors: a failing store is recorded and
// all subsequent stores are skipped. See Err.
func (tx *Transmitter) Print(msg []byte) {
	for _, c := range msg {
		if c == 0 {
			return
		}
		tx.put(c)
	}
}

// PrintString is like Print but takes a string.
func (tx *Transmitter) PrintString(msg string) {
	for i := 0; i < len(msg); i++ {
		c := msg[i]
		if c == 0 {
			return
		}
		tx.put(c)
	}
}

// Write implements io.Writer.
// Unlike Print, Write transmits every byte of p, NUL bytes included.
func (tx *Transmitter) Write(p []byte) (int, error) {
	for i, c := range p {
		tx.put(c)
		if tx.err != nil {
			return i, tx.err
		}
	}
	return len(p), tx.err
}

// Err returns the first error encountered while transmitting.
func (tx *Transmitter) Err() error {
	return tx.err
}

// Stats returns the transmission counters.
func (tx *Transmitter) Stats() Stats {
	return tx.stats
}

func (tx *Transmitter) put(c byte) {
	if tx.err != nil {
		return
	}

	if tx.cfg.ready > 0 {
		tx.waitTx()
		if tx.err != nil {
			return
		}
	}

	tx.regs.tx.w(uint32(c))
	if tx.err != nil {
		return
	}
	tx.stats.Words++

	if verbose {
		tx.msg.Printf("tx[0x%x] <- 0x%02x", tx.layout.TxAddr(), c)
	}
}

// waitTx polls the status register until the transmit FIFO has room.
func (tx *Transmitter) waitTx() {
	for i := 0; i < tx.cfg.ready; i++ {
		stat := tx.regs.stat.r()
		if tx.err != nil {
			return
		}
		if !tx.layout.Full(stat) {
			return
		}
	}
	tx.err = fmt.Errorf(
		"uart: could not transmit on %s after %d polls: %w",
		tx.layout.Name, tx.cfg.ready, ErrTxFull,
	)
	tx.msg.Printf("tx FIFO of %s still full after %d polls (words=%d)", tx.layout.Name, tx.cfg.ready, tx.stats.Words)
}

// Close releases the resources held by the transmitter.
func (tx *Transmitter) Close() error {
	if tx == nil {
		return os.ErrInvalid
	}
	if tx.mem.fd == nil && tx.mem.h == nil {
		return nil
	}

	var errH, errMem error
	if tx.mem.h != nil {
		errH = tx.mem.h.Close()
	}
	if tx.mem.fd != nil {
		errMem = tx.mem.fd.Close()
	}

	tx.mem.h = nil
	tx.mem.fd = nil

	tx.msg.Printf("unmapped %s registers (words=%d)", tx.layout.Name, tx.stats.Words)

	if errH != nil {
		return fmt.Errorf("uart: could not unmap %s registers: %w", tx.layout.Name, errH)
	}

	if errMem != nil {
		return fmt.Errorf("uart: could not close device mem file: %w", errMem)
	}

	return nil
}

var _ io.Writer = (*Transmitter)(nil)
