// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !tamago && !tinygo

package uart

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"testing"
)

func TestOpenDevMem(t *testing.T) {
	for _, layout := range Layouts() {
		t.Run(layout.Name, func(t *testing.T) {
			fname := filepath.Join(t.TempDir(), "mem")
			f, err := os.Create(fname)
			if err != nil {
				t.Fatalf("could not create fake devmem: %+v", err)
			}
			// sparse file covering the register window.
			err = f.Truncate(layout.Base + layout.Span)
			if err != nil {
				t.Fatalf("could not resize fake devmem: %+v", err)
			}
			_ = f.Close()

			msg := new(bytes.Buffer)
			tx, err := OpenDevMem(
				fname,
				withLayout(layout),
				WithLogger(log.New(msg, "uart: ", 0)),
			)
			if err != nil {
				t.Fatalf("could not open fake devmem: %+v", err)
			}

			tx.PrintString("Hello World!\n")
			if err := tx.Err(); err != nil {
				t.Fatalf("could not transmit: %+v", err)
			}

			err = tx.Close()
			if err != nil {
				t.Fatalf("could not close transmitter: %+v", err)
			}

			want := fmt.Sprintf(
				"uart: mapped %s registers from %q at 0x%x (tx=0x%x)\n"+
					"uart: unmapped %s registers (words=13)\n",
				layout.Name, fname, layout.Base, layout.TxAddr(),
				layout.Name,
			)
			if got := msg.String(); got != want {
				t.Fatalf("invalid log:\ngot= %q\nwant=%q", got, want)
			}

			// closing twice is a no-op.
			err = tx.Close()
			if err != nil {
				t.Fatalf("could not close transmitter twice: %+v", err)
			}
			if got := msg.String(); got != want {
				t.Fatalf("invalid log after second close:\ngot= %q\nwant=%q", got, want)
			}

			f, err = os.Open(fname)
			if err != nil {
				t.Fatalf("could not reopen fake devmem: %+v", err)
			}
			defer f.Close()

			// all stores hit the same register: only the last one remains.
			buf := make([]byte, 4)
			_, err = f.ReadAt(buf, layout.TxAddr())
			if err != nil {
				t.Fatalf("could not read tx register: %+v", err)
			}
			if got, want := binary.LittleEndian.Uint32(buf), uint32('\n'); got != want {
				t.Fatalf("invalid tx register: got=0x%x, want=0x%x", got, want)
			}
		})
	}
}

func TestOpenDevMemMissing(t *testing.T) {
	_, err := OpenDevMem(filepath.Join(t.TempDir(), "not-there"))
	if err == nil {
		t.Fatalf("expected an error")
	}
}
