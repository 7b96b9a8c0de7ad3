// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build tamago || tinygo

package uart

// NewMMIO returns a transmitter storing directly into the physical
// registers of the build target UART.
// It is only available on bare-metal builds.
func NewMMIO(opts ...Option) *Transmitter {
	cfg := newConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return New(&mmio{
		layout:  cfg.layout,
		load8:   load8,
		load32:  load32,
		store32: store32,
	}, opts...)
}
