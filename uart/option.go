// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uart

import (
	"log"
	"os"

	"github.com/go-lpc/uartx/internal/regs"
)

type config struct {
	msg    *log.Logger
	ready  int // max number of status polls before a store. 0: no check.
	layout regs.Layout
}

func newConfig() config {
	return config{
		msg:    log.New(os.Stdout, "uart: ", 0),
		layout: regs.Target(),
	}
}

// Option configures a Transmitter.
type Option func(cfg *config)

// WithLogger sets the logger used for diagnostics.
func WithLogger(msg *log.Logger) Option {
	return func(cfg *config) {
		cfg.msg = msg
	}
}

// WithTxReady enables the transmit readiness check: before each store,
// the status register is polled at most spins times until the transmit
// FIFO has room for a word.
// By default no check is performed and stores are fire-and-forget.
func WithTxReady(spins int) Option {
	return func(cfg *config) {
		if spins < 0 {
			spins = 0
		}
		cfg.ready = spins
	}
}

// withLayout overrides the build target layout. Only used in tests.
func withLayout(layout regs.Layout) Option {
	return func(cfg *config) {
		cfg.layout = layout
	}
}
