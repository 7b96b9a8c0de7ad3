// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command hello-uart writes "Hello World!" to the transmit register of the
// UART the binary was built for.
//
// The UART layout is selected at build time:
//
//  $> go build ./cmd/hello-uart            # AXI UART-Lite, TX at 0x40600004
//  $> go build -tags qemu ./cmd/hello-uart # QEMU virt UART, TX at 0x10000000
//
// hello-uart takes no arguments and always exits successfully.
package main // import "github.com/go-lpc/uartx/cmd/hello-uart"

import (
	"log"

	"github.com/go-lpc/uartx/uart"
)

const msg = "Hello World!\n"

func main() {
	log.SetPrefix("hello-uart: ")
	log.SetFlags(0)

	run(open)
}

func run(open func() (*uart.Transmitter, error)) {
	tx, err := open()
	if err != nil {
		log.Printf("could not open %s: %+v", uart.Target().Name, err)
		return
	}
	defer func() {
		err := tx.Close()
		if err != nil {
			log.Printf("could not close %s: %+v", uart.Target().Name, err)
		}
	}()

	tx.PrintString(msg)
	if err := tx.Err(); err != nil {
		log.Printf("could not transmit message: %+v", err)
	}
}
