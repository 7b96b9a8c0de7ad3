// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build tamago && !tinygo

package uart

import (
	"sync/atomic"
	"unsafe"
)

func load8(addr uintptr) uint8 {
	return *(*uint8)(unsafe.Pointer(addr))
}

func load32(addr uintptr) uint32 {
	return atomic.LoadUint32((*uint32)(unsafe.Pointer(addr)))
}

func store32(addr uintptr, v uint32) {
	atomic.StoreUint32((*uint32)(unsafe.Pointer(addr)), v)
}
