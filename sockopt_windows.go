// SPDX-FileCopyrightText: The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

//go:build windows

package dnssd

import (
	"syscall"

	"golang.org/x/sys/windows"
)

// reuseControl marks the socket with SO_REUSEADDR before bind. Windows has
// no SO_REUSEPORT; SO_REUSEADDR alone lets multiple sockets share the mDNS
// port and multicast group.
func reuseControl(_, _ string, conn syscall.RawConn) error {
	var opErr error
	err := conn.Control(func(fd uintptr) {
		opErr = windows.SetsockoptInt(windows.Handle(fd), windows.SOL_SOCKET, windows.SO_REUSEADDR, 1)
	})
	if err != nil {
		return err
	}

	return opErr
}
