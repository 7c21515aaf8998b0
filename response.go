// SPDX-FileCopyrightText: The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package dnssd

import (
	"net/netip"
	"time"

	"github.com/pion/logging"
	"golang.org/x/net/dns/dnsmessage"
)

// responseHandler feeds the answers of received mDNS messages into the
// registry. Only SRV answers for the browsed service and the A records
// resolving their targets are of interest; everything else is dropped.
type responseHandler struct {
	log      logging.LeveledLogger
	name     string
	service  string
	registry *registry
}

// newResponseHandler creates a handler matching answers against service,
// which must be in fully qualified form.
func newResponseHandler(log logging.LeveledLogger, name, service string, reg *registry) *responseHandler {
	return &responseHandler{
		log:      log,
		name:     name,
		service:  service,
		registry: reg,
	}
}

// handle decodes one datagram and applies it to the registry. Datagrams
// that fail to decode and queries from other participants are discarded.
// SRV answers are applied before A answers so an address is attributed
// even when both arrive in the same message.
func (h *responseHandler) handle(raw []byte, now time.Time) {
	var msg dnsmessage.Message
	if err := msg.Unpack(raw); err != nil {
		h.log.Debugf("[%s] failed to parse mDNS packet %v", h.name, err)

		return
	}
	if !msg.Header.Response {
		return
	}

	for _, answer := range msg.Answers {
		if answer.Header.Type != dnsmessage.TypeSRV {
			continue
		}
		if !equalNames(answer.Header.Name.String(), h.service) {
			continue
		}
		srv, ok := answer.Body.(*dnsmessage.SRVResource)
		if !ok {
			continue
		}
		h.registry.refresh(Service{Host: trimRoot(srv.Target.String()), Port: srv.Port}, now)
	}

	for _, answer := range msg.Answers {
		if answer.Header.Type != dnsmessage.TypeA {
			continue
		}
		aBody, ok := answer.Body.(*dnsmessage.AResource)
		if !ok {
			continue
		}
		addr, ok := netip.AddrFromSlice(aBody.A[:])
		if !ok {
			continue
		}
		addr = addr.Unmap() // do not want 4-in-6
		h.registry.addAddress(trimRoot(answer.Header.Name.String()), addr)
	}
}
