// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build tamago || tinygo

package main

import "github.com/go-lpc/uartx/uart"

func open() (*uart.Transmitter, error) {
	return uart.NewMMIO(), nil
}
