// SPDX-FileCopyrightText: The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

//go:build unix

package dnssd

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// reuseControl marks the socket with SO_REUSEADDR and SO_REUSEPORT before
// bind so that every browser socket, and other mDNS participants on the
// host, can share the mDNS port and multicast group.
func reuseControl(_, _ string, conn syscall.RawConn) error {
	var opErr error
	err := conn.Control(func(fd uintptr) {
		if err := unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
			opErr = err

			return
		}
		opErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEPORT, 1)
	})
	if err != nil {
		return err
	}

	return opErr
}
