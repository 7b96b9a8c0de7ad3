// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build qemu

package regs

const (
	targetBase = UART0_BASE
	targetTx   = UART0_TX_RX_FIFO0
)
