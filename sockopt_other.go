// SPDX-FileCopyrightText: The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

//go:build !unix && !windows

package dnssd

import "syscall"

// reuseControl is a no-op on platforms without socket option access.
func reuseControl(_, _ string, _ syscall.RawConn) error {
	return nil
}
