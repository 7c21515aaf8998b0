// SPDX-FileCopyrightText: The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package dnssd

import (
	"net"
	"net/netip"
)

// netInterface is a network interface eligible for mDNS queries together
// with its usable IPv4 addresses.
type netInterface struct {
	net.Interface
	addrs []netip.Addr
}

// usableInterfaces filters ifaces down to the ones worth querying on: up,
// carrying at least one IPv4 address, and not loopback unless
// includeLoopback is set. Interfaces whose addresses cannot be read are
// skipped. An empty result is not an error; discovery simply finds nothing.
func usableInterfaces(ifaces []net.Interface, includeLoopback bool) []netInterface {
	usable := make([]netInterface, 0, len(ifaces))
	for i := range ifaces {
		ifc := ifaces[i]
		if !includeLoopback && ifc.Flags&net.FlagLoopback == net.FlagLoopback {
			continue
		}
		if ifc.Flags&net.FlagUp == 0 {
			continue
		}

		addrs, err := ifc.Addrs()
		if err != nil {
			continue
		}
		ifcAddrs := make([]netip.Addr, 0, len(addrs))
		for _, addr := range addrs {
			var ipToConv net.IP
			switch addr := addr.(type) {
			case *net.IPNet:
				ipToConv = addr.IP
			case *net.IPAddr:
				ipToConv = addr.IP
			default:
				continue
			}

			ipAddr, ok := netip.AddrFromSlice(ipToConv)
			if !ok {
				continue
			}
			// don't want mapping since we only query over IPv4
			ipAddr = ipAddr.Unmap()
			if !ipAddr.Is4() {
				continue
			}
			ifcAddrs = append(ifcAddrs, ipAddr)
		}
		if len(ifcAddrs) == 0 {
			continue
		}

		usable = append(usable, netInterface{Interface: ifc, addrs: ifcAddrs})
	}

	return usable
}
