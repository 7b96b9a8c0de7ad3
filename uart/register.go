// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uart

import (
	"encoding/binary"
	"fmt"
	"io"
)

type reg32 struct {
	r func() uint32
	w func(v uint32)
}

func newReg32(tx *Transmitter, rw Bus, offset int64) reg32 {
	return reg32{
		r: func() uint32 {
			return tx.readU32(rw, offset)
		},
		w: func(v uint32) {
			tx.writeU32(rw, offset, v)
		},
	}
}

type reg8 struct {
	r func() uint8
}

func newReg8(tx *Transmitter, r io.ReaderAt, offset int64) reg8 {
	return reg8{
		r: func() uint8 {
			return tx.readU8(r, offset)
		},
	}
}

func (tx *Transmitter) readU32(r io.ReaderAt, off int64) uint32 {
	if tx.err != nil {
		return 0
	}
	_, tx.err = r.ReadAt(tx.buf[:4], off)
	if tx.err != nil {
		tx.err = fmt.Errorf("uart: could not read register 0x%x: %w", off, tx.err)
		return 0
	}
	return binary.LittleEndian.Uint32(tx.buf[:4])
}

func (tx *Transmitter) writeU32(w io.WriterAt, off int64, v uint32) {
	if tx.err != nil {
		return
	}
	binary.LittleEndian.PutUint32(tx.buf[:4], v)
	_, tx.err = w.WriteAt(tx.buf[:4], off)
	if tx.err != nil {
		tx.err = fmt.Errorf("uart: could not write register 0x%x: %w", off, tx.err)
		return
	}
}

func (tx *Transmitter) readU8(r io.ReaderAt, off int64) uint8 {
	if tx.err != nil {
		return 0
	}
	_, tx.err = r.ReadAt(tx.buf[:1], off)
	if tx.err != nil {
		tx.err = fmt.Errorf("uart: could not read register 0x%x: %w", off, tx.err)
		return 0
	}
	return tx.buf[0]
}
