// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mmap gives access to memory-mapped peripheral registers.
package mmap // import "github.com/go-lpc/uartx/internal/mmap"

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"
)

var (
	errClosed = errors.New("mmap: closed")
)

// Handle is a window of memory-mapped physical memory.
//
// Aligned 4-byte accesses are performed as single 32-bit loads and stores,
// so that a register access is one bus transaction. Values are exchanged
// in little-endian byte order, the order of the supported hosts.
type Handle struct {
	data []byte
}

// Open maps span bytes of f, starting at offset base.
// base must be a multiple of the system page size.
func Open(f *os.File, base, span int64) (*Handle, error) {
	if f == nil {
		return nil, os.ErrInvalid
	}
	if base%int64(os.Getpagesize()) != 0 {
		return nil, fmt.Errorf("mmap: base 0x%x is not page aligned", base)
	}

	data, err := unix.Mmap(
		int(f.Fd()),
		base, int(span),
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_SHARED,
	)
	if err != nil {
		return nil, fmt.Errorf("mmap: could not mmap 0x%x: %w", base, err)
	}
	if data == nil || int64(len(data)) != span {
		_ = unix.Munmap(data)
		return nil, fmt.Errorf("mmap: invalid mmap'd data: %d", len(data))
	}
	return HandleFrom(data), nil
}

// HandleFrom wraps already mapped memory.
func HandleFrom(data []byte) *Handle {
	h := &Handle{data: data}
	runtime.SetFinalizer(h, (*Handle).Close)
	return h
}

// Close unmaps the memory window.
func (h *Handle) Close() error {
	if h == nil {
		return os.ErrInvalid
	}

	if h.data == nil {
		return nil
	}
	data := h.data
	h.data = nil
	runtime.SetFinalizer(h, nil)

	return unix.Munmap(data)
}

// Len returns the length of the memory window.
func (h *Handle) Len() int {
	return len(h.data)
}

// At returns the byte at index i.
func (h *Handle) At(i int) byte {
	return h.data[i]
}

// ReadAt implements the io.ReaderAt interface.
func (h *Handle) ReadAt(p []byte, off int64) (int, error) {
	if h == nil {
		return 0, os.ErrInvalid
	}

	if h.data == nil {
		return 0, errClosed
	}
	if off < 0 || int64(len(h.data)) < off {
		return 0, fmt.Errorf("mmap: invalid ReadAt offset %d", off)
	}
	if h.word(p, off) {
		v := atomic.LoadUint32(h.u32(off))
		binary.LittleEndian.PutUint32(p, v)
		return 4, nil
	}
	n := copy(p, h.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// WriteAt implements the io.WriterAt interface.
func (h *Handle) WriteAt(p []byte, off int64) (int, error) {
	if h == nil {
		return 0, os.ErrInvalid
	}

	if h.data == nil {
		return 0, errClosed
	}
	if off < 0 || int64(len(h.data)) < off {
		return 0, fmt.Errorf("mmap: invalid WriteAt offset %d", off)
	}
	if h.word(p, off) {
		atomic.StoreUint32(h.u32(off), binary.LittleEndian.Uint32(p))
		return 4, nil
	}
	n := copy(h.data[off:], p)
	if n < len(p) {
		return n, io.ErrShortWrite
	}
	return n, nil
}

// word reports whether p at off is an aligned 32-bit access within the window.
func (h *Handle) word(p []byte, off int64) bool {
	return len(p) == 4 && off%4 == 0 && off+4 <= int64(len(h.data))
}

func (h *Handle) u32(off int64) *uint32 {
	return (*uint32)(unsafe.Pointer(&h.data[off]))
}

var (
	_ io.ReaderAt = (*Handle)(nil)
	_ io.WriterAt = (*Handle)(nil)
	_ io.Closer   = (*Handle)(nil)
)
