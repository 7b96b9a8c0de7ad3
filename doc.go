// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package uartx holds tools to transmit messages on memory-mapped UARTs.
//
// The transmitter lives in package uart, simulated peripherals in package sim.
package uartx // import "github.com/go-lpc/uartx"

import (
	"fmt"
	"runtime/debug"
)

// Version returns the version of uartx and its checksum.
// The returned values are only valid in binaries built with module support.
func Version() (version, sum string) {
	b, ok := debug.ReadBuildInfo()
	if !ok {
		return "", ""
	}
	return versionOf(b)
}

// versionOf returns the version of uartx recorded in b.
// uartx is the main module of its own commands and a dependency otherwise.
func versionOf(b *debug.BuildInfo) (version, sum string) {
	if b == nil {
		return "", ""
	}

	const root = "github.com/go-lpc/uartx"
	if b.Main.Path == root {
		return moduleVersion(&b.Main)
	}
	for _, m := range b.Deps {
		if m.Path != root {
			continue
		}
		return moduleVersion(m)
	}
	return "", ""
}

func moduleVersion(m *debug.Module) (version, sum string) {
	if m.Replace == nil {
		return m.Version, m.Sum
	}
	switch {
	case m.Replace.Version != "" && m.Replace.Path != "":
		return fmt.Sprintf("%s %s", m.Replace.Path, m.Replace.Version), m.Replace.Sum
	case m.Replace.Version != "":
		return m.Replace.Version, m.Replace.Sum
	case m.Replace.Path != "":
		return m.Replace.Path, m.Replace.Sum
	default:
		return m.Version + "*", ""
	}
}
