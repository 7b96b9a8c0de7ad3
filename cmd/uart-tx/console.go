// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/shlex"
	"github.com/peterh/liner"
	"golang.org/x/sync/errgroup"

	"github.com/go-lpc/uartx/uart"
)

const prompt = "uart> "

type prompter interface {
	Prompt(p string) (string, error)
	AppendHistory(item string)
	Close() error
}

func newLiner() prompter {
	ln := liner.NewLiner()
	ln.SetCtrlCAborts(true)
	return ln
}

type request struct {
	args []string
	done chan error
}

// runConsole reads commands from the prompter and executes them on tx,
// until "quit", end of input or an interrupt.
func runConsole(ln prompter, tx *uart.Transmitter, out io.Writer) error {
	defer ln.Close()

	var (
		reqs     = make(chan request)
		grp, ctx = errgroup.WithContext(context.Background())
	)

	grp.Go(func() error {
		defer close(reqs)
		for {
			line, err := ln.Prompt(prompt)
			switch {
			case err == nil:
			case errors.Is(err, io.EOF), errors.Is(err, liner.ErrPromptAborted):
				return nil
			default:
				return fmt.Errorf("could not read command: %w", err)
			}

			args, err := shlex.Split(line)
			if err != nil {
				fmt.Fprintf(out, "invalid command %q: %+v\n", line, err)
				continue
			}
			if len(args) == 0 {
				continue
			}
			ln.AppendHistory(line)

			switch args[0] {
			case "quit", "exit":
				return nil
			}

			req := request{args: args, done: make(chan error, 1)}
			select {
			case reqs <- req:
			case <-ctx.Done():
				return nil
			}
			select {
			case err := <-req.done:
				if err != nil {
					return err
				}
			case <-ctx.Done():
				return nil
			}
		}
	})

	grp.Go(func() error {
		for req := range reqs {
			err := execute(tx, out, req.args)
			req.done <- err
			if err != nil {
				return err
			}
		}
		return nil
	})

	return grp.Wait()
}

func execute(tx *uart.Transmitter, out io.Writer, args []string) error {
	switch cmd := args[0]; cmd {
	case "print":
		tx.PrintString(strings.Join(args[1:], " ") + "\n")
	case "hex":
		buf := make([]byte, 0, len(args)-1)
		for _, arg := range args[1:] {
			v, err := strconv.ParseUint(arg, 0, 8)
			if err != nil {
				fmt.Fprintf(out, "invalid byte %q: %+v\n", arg, err)
				return nil
			}
			buf = append(buf, byte(v))
		}
		_, _ = tx.Write(buf)
	case "stats":
		fmt.Fprintf(out, "words: %d\n", tx.Stats().Words)
	case "layout":
		layout := tx.Layout()
		fmt.Fprintf(out, "%s: base=0x%08x tx=0x%08x\n", layout.Name, layout.Base, layout.TxAddr())
	case "help":
		fmt.Fprintf(out, "commands: print TEXT..., hex BYTE..., stats, layout, quit\n")
	default:
		fmt.Fprintf(out, "unknown command %q\n", cmd)
	}

	if err := tx.Err(); err != nil {
		return fmt.Errorf("could not execute %q: %w", args[0], err)
	}
	return nil
}
