// SPDX-FileCopyrightText: The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

//go:build !js

package dnssd

import (
	"bytes"
	"net"
	"testing"
	"time"

	"github.com/pion/transport/v3/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// loopbackInterface finds an up loopback interface with an IPv4 address, or
// skips the test when the host has none.
func loopbackInterface(t *testing.T) *net.Interface {
	ifaces, err := net.Interfaces()
	require.NoError(t, err)

	for i := range ifaces {
		ifc := ifaces[i]
		if ifc.Flags&net.FlagLoopback == 0 || ifc.Flags&net.FlagUp == 0 {
			continue
		}
		if len(usableInterfaces([]net.Interface{ifc}, true)) == 0 {
			continue
		}

		return &ifc
	}

	t.Skip("no usable loopback interface")

	return nil
}

func TestOpenMulticastSocket(t *testing.T) {
	ifc := loopbackInterface(t)

	group, err := net.ResolveUDPAddr("udp4", destinationAddress4)
	require.NoError(t, err)

	sock, err := openMulticastSocket(*ifc, group)
	require.NoError(t, err)
	assert.Equal(t, ifc.Index, sock.iface.Index)
	assert.NoError(t, sock.close())
}

func TestOpenMulticastSocketSharesPort(t *testing.T) {
	ifc := loopbackInterface(t)

	group, err := net.ResolveUDPAddr("udp4", destinationAddress4)
	require.NoError(t, err)

	// Address and port reuse lets any number of mDNS participants bind the
	// port at once.
	first, err := openMulticastSocket(*ifc, group)
	require.NoError(t, err)
	defer func() {
		_ = first.close()
	}()

	second, err := openMulticastSocket(*ifc, group)
	require.NoError(t, err)
	assert.NoError(t, second.close())
}

func TestOpenMulticastSocketBogusInterface(t *testing.T) {
	group, err := net.ResolveUDPAddr("udp4", destinationAddress4)
	require.NoError(t, err)

	_, err = openMulticastSocket(net.Interface{Index: 0xffff, Name: "bogus0"}, group)
	assert.Error(t, err)
}

func TestMulticastSocketLoopsBackOwnDatagrams(t *testing.T) {
	lim := test.TimeOut(10 * time.Second)
	defer lim.Stop()

	ifc := loopbackInterface(t)

	group, err := net.ResolveUDPAddr("udp4", destinationAddress4)
	require.NoError(t, err)

	sock, err := openMulticastSocket(*ifc, group)
	require.NoError(t, err)
	defer func() {
		_ = sock.close()
	}()

	payload := []byte("dnssd loopback probe")
	_, err = sock.conn.WriteTo(payload, nil, group)
	require.NoError(t, err)

	require.NoError(t, sock.conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	buf := make([]byte, maxPacketSize)
	for {
		n, _, _, err := sock.conn.ReadFrom(buf)
		require.NoError(t, err)
		if bytes.Equal(buf[:n], payload) {
			return
		}
		// Unrelated mDNS traffic may share the group; keep reading.
	}
}
