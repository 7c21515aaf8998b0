// SPDX-FileCopyrightText: The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package dnssd

import (
	"net/netip"
	"strings"
	"sync"
	"time"
)

// Service identifies one discovered endpoint of the browsed service type.
type Service struct {
	// Host is the target host published in the SRV record, in presentation
	// form without the trailing root dot.
	Host string

	// Port is the port published in the SRV record.
	Port uint16
}

// ServiceRecord is the liveness state a Browser tracks for a Service.
type ServiceRecord struct {
	// LastSeen is when a response most recently confirmed the service.
	LastSeen time.Time

	// Addresses holds the IPv4 addresses resolved for the service host so
	// far. Unique, in no particular order.
	Addresses []netip.Addr
}

// ServiceEntry pairs a Service with its record, as returned by
// (*Browser).Services.
type ServiceEntry struct {
	Service Service
	Record  ServiceRecord
}

// record is the mutable registry state for one Service.
type record struct {
	lastSeen time.Time
	addrs    map[netip.Addr]struct{}
}

// registry tracks the services confirmed by responses and expires the ones
// that stop answering. It is the only state shared between the discovery
// loop and Services callers; every method holds the lock for a minimal
// critical section and performs no I/O.
type registry struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[Service]*record
}

func newRegistry(ttl time.Duration) *registry {
	return &registry{
		ttl:     ttl,
		entries: make(map[Service]*record),
	}
}

// refresh marks svc as confirmed at now, inserting it with an empty address
// set on first sight. An entry's lastSeen never moves backwards.
func (r *registry) refresh(svc Service, now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.entries[svc]
	if !ok {
		r.entries[svc] = &record{lastSeen: now, addrs: make(map[netip.Addr]struct{})}

		return
	}
	if now.After(rec.lastSeen) {
		rec.lastSeen = now
	}
}

// addAddress records addr against every service whose host is host. Hosts
// no confirmed service points at are ignored; the browser only resolves
// addresses for services it has already seen an SRV answer for.
func (r *registry) addAddress(host string, addr netip.Addr) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for svc, rec := range r.entries {
		if !strings.EqualFold(svc.Host, host) {
			continue
		}
		rec.addrs[addr] = struct{}{}
	}
}

// evict removes every entry that has gone unconfirmed for the TTL or
// longer. Run once per polling cycle, after the cycle's responses have
// been applied, so a service confirmed this cycle survives the pass.
func (r *registry) evict(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for svc, rec := range r.entries {
		if now.Sub(rec.lastSeen) >= r.ttl {
			delete(r.entries, svc)
		}
	}
}

// snapshot clones the registry into an independent list.
func (r *registry) snapshot() []ServiceEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := make([]ServiceEntry, 0, len(r.entries))
	for svc, rec := range r.entries {
		addrs := make([]netip.Addr, 0, len(rec.addrs))
		for addr := range rec.addrs {
			addrs = append(addrs, addr)
		}
		entries = append(entries, ServiceEntry{
			Service: svc,
			Record:  ServiceRecord{LastSeen: rec.lastSeen, Addresses: addrs},
		})
	}

	return entries
}
