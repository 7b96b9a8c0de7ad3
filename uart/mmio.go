// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uart

import (
	"encoding/binary"
	"fmt"

	"github.com/go-lpc/uartx/internal/regs"
)

// mmio is a register window at a fixed physical address.
//
// Each access is performed with the width of the register: 8-bit status
// registers are never read through a wider load, as reading a neighbour
// register (e.g. the 16550 MSR) may have side effects.
type mmio struct {
	layout regs.Layout

	load8   func(addr uintptr) uint8
	load32  func(addr uintptr) uint32
	store32 func(addr uintptr, v uint32)
}

func (m *mmio) addr(off int64, n int) (uintptr, error) {
	if off < 0 || off+int64(n) > m.layout.Span {
		return 0, fmt.Errorf("uart: invalid register offset 0x%x", off)
	}
	return uintptr(m.layout.Base + off), nil
}

func (m *mmio) ReadAt(p []byte, off int64) (int, error) {
	addr, err := m.addr(off, len(p))
	if err != nil {
		return 0, err
	}
	switch len(p) {
	case 4:
		if addr%4 != 0 {
			return 0, fmt.Errorf("uart: unaligned register 0x%x", addr)
		}
		binary.LittleEndian.PutUint32(p, m.load32(addr))
	case 1:
		p[0] = m.load8(addr)
	default:
		return 0, fmt.Errorf("uart: invalid register width %d", len(p))
	}
	return len(p), nil
}

func (m *mmio) WriteAt(p []byte, off int64) (int, error) {
	addr, err := m.addr(off, len(p))
	if err != nil {
		return 0, err
	}
	if len(p) != 4 || addr%4 != 0 {
		return 0, fmt.Errorf("uart: invalid store of %d bytes at 0x%x", len(p), addr)
	}
	m.store32(addr, binary.LittleEndian.Uint32(p))
	return len(p), nil
}

var _ Bus = (*mmio)(nil)
