// SPDX-FileCopyrightText: The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package dnssd

import (
	"errors"
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pion/logging"
)

// Browser continuously discovers instances of one service type over mDNS.
// It multicasts an SRV query on every usable interface once per interval
// and keeps a registry of the endpoints that answer, dropping the ones
// that stop answering. It never answers queries itself.
type Browser struct {
	log  logging.LeveledLogger
	name string

	service string

	sockets  []*multicastSocket
	dstAddr4 *net.UDPAddr
	rawQuery []byte

	clock         clock.Clock
	queryInterval time.Duration

	registry *registry
	handler  *responseHandler

	closeOnce sync.Once
	closed    chan any
	stopped   chan any
}

const (
	defaultQueryInterval = time.Second
	defaultTTL           = 5 * time.Second
	destinationAddress4  = "224.0.0.251:5353"

	// readTimeout bounds each per-socket drain. A read deadline already in
	// the past does not deliver datagrams the kernel has queued, so every
	// drain gives the socket this long to empty its queue.
	readTimeout = 100 * time.Millisecond

	// maxPacketSize is the maximum size of a mdns packet.
	// From RFC 6762:
	// Even when fragmentation is used, a Multicast DNS packet, including IP
	// and UDP headers, MUST NOT exceed 9000 bytes.
	// https://datatracker.ietf.org/doc/html/rfc6762#section-17
	maxPacketSize = 9000
)

var errFailedToClose = errors.New("failed to close mDNS Browser")

// NewBrowser starts browsing for service, an mDNS service name such as
// "Printer._http._tcp.local". The trailing root dot is optional.
//
// A multicast socket is opened on every usable interface and a background
// loop queries and collects responses until Close is called. Any socket
// failure during setup aborts construction. Having no usable interface is
// not a failure; the Browser runs and Services stays empty.
//
//nolint:gocognit
func NewBrowser(service string, opts ...BrowserOption) (*Browser, error) {
	if service == "" {
		return nil, errServiceNameMissing
	}

	cfg := &browserConfig{}
	for _, opt := range opts {
		if err := opt.applyBrowser(cfg); err != nil {
			return nil, err
		}
	}

	loggerFactory := cfg.loggerFactory
	if loggerFactory == nil {
		loggerFactory = logging.NewDefaultLoggerFactory()
	}
	log := loggerFactory.NewLogger("dnssd")

	b := &Browser{
		log:           log,
		service:       fqdn(service),
		queryInterval: defaultQueryInterval,
		closed:        make(chan any),
		stopped:       make(chan any),
	}
	b.name = cfg.name
	if b.name == "" {
		b.name = fmt.Sprintf("%p", b)
	}
	if cfg.queryInterval != 0 {
		b.queryInterval = cfg.queryInterval
	}
	ttl := cfg.ttl
	if ttl == 0 {
		ttl = defaultTTL
	}
	b.clock = cfg.clock
	if b.clock == nil {
		b.clock = clock.New()
	}

	rawQuery, err := buildQuery(b.service)
	if err != nil {
		return nil, err
	}
	b.rawQuery = rawQuery

	dstAddr4, err := net.ResolveUDPAddr("udp4", destinationAddress4)
	if err != nil {
		return nil, err
	}
	b.dstAddr4 = dstAddr4

	ifaces := cfg.interfaces
	if ifaces == nil {
		ifaces, err = net.Interfaces()
		if err != nil {
			return nil, err
		}
	}

	for _, ifc := range usableInterfaces(ifaces, cfg.includeLoopback) {
		sock, err := openMulticastSocket(ifc.Interface, dstAddr4)
		if err != nil {
			for _, opened := range b.sockets {
				_ = opened.close()
			}

			return nil, err
		}
		log.Debugf("[%s] browsing on %s %v", b.name, ifc.Name, ifc.addrs)
		b.sockets = append(b.sockets, sock)
	}

	b.registry = newRegistry(ttl)
	b.handler = newResponseHandler(log, b.name, b.service, b.registry)

	started := make(chan struct{})
	go b.loop(started)
	<-started

	return b, nil
}

// Services returns a snapshot of the services currently considered alive.
// It never blocks on the discovery loop.
func (b *Browser) Services() []ServiceEntry {
	return b.registry.snapshot()
}

// Close stops the discovery loop and closes every socket. It blocks until
// the loop has exited and is safe to call more than once.
func (b *Browser) Close() error {
	var first bool
	b.closeOnce.Do(func() {
		first = true
		close(b.closed)
	})
	<-b.stopped

	if !first {
		return nil
	}

	var errs []error
	for _, sock := range b.sockets {
		if err := sock.close(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}

	rtrn := errFailedToClose
	for _, err := range errs {
		rtrn = fmt.Errorf("%w\n%s", err, rtrn.Error())
	}

	return rtrn
}

// loop is the discovery loop. It sleeps on the ticker between cycles and
// checks for the stop signal at the top of every iteration, so a stop
// request is observed within one interval plus the cycle in progress.
func (b *Browser) loop(started chan<- struct{}) {
	defer close(b.stopped)

	ticker := b.clock.Ticker(b.queryInterval)
	defer ticker.Stop()

	buf := make([]byte, maxPacketSize)

	close(started)

	for {
		select {
		case <-b.closed:
			return
		case <-ticker.C:
			b.pollOnce(buf)
		}
	}
}

// pollOnce runs one polling cycle: multicast the query on every socket,
// drain the responses that have arrived, then evict expired entries.
func (b *Browser) pollOnce(buf []byte) {
	for _, sock := range b.sockets {
		if _, err := sock.conn.WriteTo(b.rawQuery, nil, b.dstAddr4); err != nil {
			b.log.Warnf("[%s] failed to send mDNS packet on interface %d: %v", b.name, sock.iface.Index, err)
		}
	}

	for _, sock := range b.sockets {
		b.drain(sock, buf)
	}

	b.registry.evict(b.clock.Now())
}

// drain reads datagrams queued on sock into the registry until the read
// deadline passes or the socket is closed.
func (b *Browser) drain(sock *multicastSocket, buf []byte) {
	if err := sock.conn.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
		b.log.Warnf("[%s] failed to set read deadline on interface %d: %v", b.name, sock.iface.Index, err)

		return
	}

	for {
		n, _, src, err := sock.conn.ReadFrom(buf)
		if err != nil {
			if errors.Is(err, net.ErrClosed) || errors.Is(err, os.ErrDeadlineExceeded) {
				return
			}
			b.log.Warnf("[%s] failed to ReadFrom %q %v", b.name, src, err)

			continue
		}
		b.log.Debugf("[%s] got read on %s from %s", b.name, sock.iface.Name, src)

		b.handler.handle(buf[:n], b.clock.Now())
	}
}
