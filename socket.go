// SPDX-FileCopyrightText: The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package dnssd

import (
	"context"
	"net"

	"golang.org/x/net/ipv4"
)

// listenAddress4 is the local address every browser socket binds. Binding
// the multicast-range wildcard rather than the interface address is what
// lets the socket receive datagrams addressed to the multicast group, and
// keeps it from clashing with mDNS daemons bound to the unicast wildcard.
const listenAddress4 = "224.0.0.0:5353"

// multicastSocket is one interface's mDNS socket: bound to the mDNS port
// with address and port reuse so it can coexist with other mDNS
// participants on the host, joined to the group on its interface, and
// transmitting on that interface only.
type multicastSocket struct {
	iface net.Interface
	conn  *ipv4.PacketConn
}

// openMulticastSocket sets up the socket for one interface. Any failure
// leaves nothing open.
func openMulticastSocket(ifc net.Interface, group *net.UDPAddr) (*multicastSocket, error) {
	lc := net.ListenConfig{Control: reuseControl}
	pc, err := lc.ListenPacket(context.Background(), "udp4", listenAddress4)
	if err != nil {
		return nil, err
	}

	conn := ipv4.NewPacketConn(pc)
	if err := conn.JoinGroup(&ifc, group); err != nil {
		_ = pc.Close()

		return nil, err
	}
	if err := conn.SetMulticastInterface(&ifc); err != nil {
		_ = pc.Close()

		return nil, err
	}
	if err := conn.SetMulticastLoopback(true); err != nil {
		_ = pc.Close()

		return nil, err
	}

	return &multicastSocket{iface: ifc, conn: conn}, nil
}

func (s *multicastSocket) close() error {
	return s.conn.Close()
}
