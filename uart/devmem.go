// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !tamago && !tinygo

package uart

import (
	"fmt"
	"os"

	"github.com/go-lpc/uartx/internal/mmap"
)

// OpenDevMem maps the registers of the build target UART from the physical
// memory device fname (usually /dev/mem) and returns a transmitter storing
// into them.
func OpenDevMem(fname string, opts ...Option) (*Transmitter, error) {
	mem, err := os.OpenFile(fname, os.O_RDWR|os.O_SYNC, 0666)
	if err != nil {
		return nil, fmt.Errorf("uart: could not open %q: %w", fname, err)
	}
	defer func() {
		if err != nil {
			_ = mem.Close()
		}
	}()

	cfg := newConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	layout := cfg.layout

	h, err := mmap.Open(mem, layout.Base, layout.Span)
	if err != nil {
		return nil, fmt.Errorf("uart: could not map %s registers at 0x%x: %w", layout.Name, layout.Base, err)
	}

	tx := New(h, opts...)
	tx.mem.fd = mem
	tx.mem.h = h

	tx.msg.Printf(
		"mapped %s registers from %q at 0x%x (tx=0x%x)",
		layout.Name, fname, layout.Base, layout.TxAddr(),
	)

	return tx, nil
}
