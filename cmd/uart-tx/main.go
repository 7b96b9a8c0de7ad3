// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command uart-tx transmits messages on a memory-mapped UART.
//
// Usage: uart-tx [OPTIONS] [MESSAGE...]
//
// Example:
//
//  $> uart-tx -sim hello world
//  hello world
//  $> uart-tx -i -sim
//  uart> print hello
//  hello
//  uart> hex 0x41 0x42 10
//  AB
//  uart> stats
//  words: 9
//  uart> quit
package main // import "github.com/go-lpc/uartx/cmd/uart-tx"

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/go-lpc/uartx"
	"github.com/go-lpc/uartx/sim"
	"github.com/go-lpc/uartx/uart"
)

func main() {
	log.SetPrefix("uart-tx: ")
	log.SetFlags(0)

	var (
		dev   = flag.String("dev", "/dev/mem", "path to the physical memory device")
		simu  = flag.Bool("sim", false, "transmit to a simulated UART, echoed on stdout")
		ready = flag.Int("ready", 0, "max number of status polls waiting for room in the TX FIFO (0: no check)")
		inter = flag.Bool("i", false, "run an interactive console")
		vers  = flag.Bool("version", false, "print version and exit")
	)

	flag.Usage = func() {
		fmt.Printf(`uart-tx transmits messages on a memory-mapped UART.

Usage: uart-tx [OPTIONS] [MESSAGE...]

Without MESSAGE, uart-tx transmits "Hello World!".

Options:
`)
		flag.PrintDefaults()
	}

	flag.Parse()

	if *vers {
		v, sum := uartx.Version()
		fmt.Printf("uart-tx %s %s (target: %s)\n", v, sum, uart.Target().Name)
		return
	}

	tx, err := open(*dev, *simu, os.Stdout, *ready)
	if err != nil {
		log.Fatalf("could not open UART: %+v", err)
	}
	defer tx.Close()

	switch {
	case *inter:
		err = runConsole(newLiner(), tx, os.Stdout)
	default:
		err = send(tx, flag.Args())
	}
	if err != nil {
		_ = tx.Close()
		log.Fatalf("could not transmit: %+v", err)
	}
}

func open(dev string, simu bool, out io.Writer, ready int) (*uart.Transmitter, error) {
	opts := []uart.Option{
		uart.WithLogger(log.New(os.Stderr, "uart: ", 0)),
	}
	if ready > 0 {
		opts = append(opts, uart.WithTxReady(ready))
	}

	if simu {
		return uart.New(sim.New(uart.Target(), out), opts...), nil
	}
	return uart.OpenDevMem(dev, opts...)
}

func send(tx *uart.Transmitter, args []string) error {
	msg := "Hello World!"
	if len(args) > 0 {
		msg = strings.Join(args, " ")
	}
	tx.PrintString(msg + "\n")
	return tx.Err()
}
