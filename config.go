// SPDX-FileCopyrightText: The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package dnssd

import (
	"net"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pion/logging"
)

// browserConfig holds the configuration for a Browser.
// This is populated by applying BrowserOption functions.
type browserConfig struct {
	// name is the name of the browser used for logging purposes.
	name string

	// queryInterval is how often the query is multicast on every socket.
	queryInterval time.Duration

	// ttl is how long a discovered service stays in the registry without
	// a confirming response before it is evicted.
	ttl time.Duration

	// loggerFactory is used to create a logger for the browser.
	loggerFactory logging.LoggerFactory

	// includeLoopback will include loopback interfaces to be eligible for queries.
	includeLoopback bool

	// interfaces will override the interfaces used for queries.
	interfaces []net.Interface

	// clock supplies time for registry bookkeeping and the polling ticker.
	clock clock.Clock
}

// BrowserOption configures a Browser.
type BrowserOption interface {
	applyBrowser(*browserConfig) error
}

// nameOption sets the name for logging.
type nameOption string

// WithName sets the name used for logging purposes.
func WithName(name string) nameOption {
	return nameOption(name)
}

func (o nameOption) applyBrowser(c *browserConfig) error {
	c.name = string(o)

	return nil
}

// queryIntervalOption sets how often queries are sent.
type queryIntervalOption time.Duration

// WithQueryInterval sets how often the browser multicasts its query.
// The default is one second.
func WithQueryInterval(interval time.Duration) queryIntervalOption {
	return queryIntervalOption(interval)
}

func (o queryIntervalOption) applyBrowser(c *browserConfig) error {
	if o <= 0 {
		return errInvalidQueryInterval
	}
	c.queryInterval = time.Duration(o)

	return nil
}

// ttlOption sets the registry eviction TTL.
type ttlOption time.Duration

// WithTTL sets how long a discovered service may go unconfirmed before it
// is dropped from the registry. The default is five seconds.
func WithTTL(ttl time.Duration) ttlOption {
	return ttlOption(ttl)
}

func (o ttlOption) applyBrowser(c *browserConfig) error {
	if o <= 0 {
		return errInvalidTTL
	}
	c.ttl = time.Duration(o)

	return nil
}

// loggerFactoryOption sets the logger factory.
type loggerFactoryOption struct {
	factory logging.LoggerFactory
}

// WithLoggerFactory sets the logger factory for creating loggers.
func WithLoggerFactory(factory logging.LoggerFactory) loggerFactoryOption {
	return loggerFactoryOption{factory: factory}
}

func (o loggerFactoryOption) applyBrowser(c *browserConfig) error {
	c.loggerFactory = o.factory

	return nil
}

// includeLoopbackOption sets whether to include loopback interfaces.
type includeLoopbackOption bool

// WithIncludeLoopback sets whether loopback interfaces should be included.
func WithIncludeLoopback(include bool) includeLoopbackOption {
	return includeLoopbackOption(include)
}

func (o includeLoopbackOption) applyBrowser(c *browserConfig) error {
	c.includeLoopback = bool(o)

	return nil
}

// interfacesOption sets the interfaces to use.
type interfacesOption []net.Interface

// WithInterfaces sets the network interfaces to use.
// If not set, all suitable interfaces will be discovered automatically.
func WithInterfaces(ifaces ...net.Interface) interfacesOption {
	return interfacesOption(ifaces)
}

func (o interfacesOption) applyBrowser(c *browserConfig) error {
	c.interfaces = []net.Interface(o)

	return nil
}

// clockOption sets the time source.
type clockOption struct {
	clock clock.Clock
}

// WithClock sets the time source used for the polling ticker and registry
// timestamps. Tests substitute a mock clock to drive eviction
// deterministically.
func WithClock(clk clock.Clock) clockOption {
	return clockOption{clock: clk}
}

func (o clockOption) applyBrowser(c *browserConfig) error {
	c.clock = o.clock

	return nil
}
