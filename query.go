// SPDX-FileCopyrightText: The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package dnssd

import "golang.org/x/net/dns/dnsmessage"

// buildQuery packs the single-question SRV query for the browsed service.
// The query is built once at construction; every polling cycle multicasts
// the same bytes.
//
// The header stays all zero: mDNS does not correlate queries and responses
// by transaction ID (RFC 6762 §18.1), and the unicast-response bit of the
// qclass field is left unset so responses go to the multicast group where
// every listener can see them.
func buildQuery(service string) ([]byte, error) {
	packedName, err := dnsmessage.NewName(service)
	if err != nil {
		return nil, err
	}

	msg := dnsmessage.Message{
		Questions: []dnsmessage.Question{
			{
				Type:  dnsmessage.TypeSRV,
				Class: dnsmessage.ClassINET,
				Name:  packedName,
			},
		},
	}

	rawQuery, err := msg.Pack()
	if err != nil {
		return nil, err
	}
	if len(rawQuery) > maxPacketSize {
		return nil, errQueryTooLarge
	}

	return rawQuery, nil
}
