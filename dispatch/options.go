// Copyright 2016 Tim Heckman. All rights reserved.
// Use of this source code is governed by the BSD 3-Clause
// license that can be found in the LICENSE file.

package dispatch

import (
	"net"
	"time"

	"github.com/charmbracelet/log"

	"github.com/MoritzS/licht/dispatch/metrics"
)

// DefaultPort is the UDP port the LIFX LAN protocol listens on, both
// for the engine's own socket and for the broadcast address discovery
// targets.
const DefaultPort = 56700

// DefaultTimeout is the per-operation retry budget: the total time an
// operation has to receive a reply before it fails with ErrTimeout.
const DefaultTimeout = 3 * time.Second

// DefaultTries is the number of times an operation retransmits its
// packet across DefaultTimeout.
const DefaultTries = 3

// Options configures an Engine. The zero value is not usable directly;
// New starts from the documented defaults and applies each functional
// Option over them.
type Options struct {
	SourceID      [4]byte
	Timeout       time.Duration
	Tries         int
	Logger        *log.Logger
	Metrics       *metrics.Metrics
	BroadcastAddr *net.UDPAddr
}

// Option configures an Engine at construction time.
type Option func(*Options)

// defaultOptions returns an Options with every documented default
// filled in. SourceID is randomized per spec.md §3 ("a fixed 4 bytes
// chosen at engine construction").
func defaultOptions() Options {
	var src [4]byte
	randomBytes(src[:])

	return Options{
		SourceID:      src,
		Timeout:       DefaultTimeout,
		Tries:         DefaultTries,
		Logger:        log.Default(),
		Metrics:       metrics.New(),
		BroadcastAddr: &net.UDPAddr{IP: net.IPv4bcast, Port: DefaultPort},
	}
}

// WithSourceID overrides the 4-byte client identifier carried in every
// outgoing Frame.Source field.
func WithSourceID(id [4]byte) Option {
	return func(o *Options) { o.SourceID = id }
}

// WithTimeout overrides the per-operation retry budget.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) { o.Timeout = d }
}

// WithTries overrides the number of transmissions per operation,
// counting the first one.
func WithTries(n int) Option {
	return func(o *Options) { o.Tries = n }
}

// WithLogger overrides the logger used for retry/timeout/drop events.
func WithLogger(l *log.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithMetrics overrides the Prometheus collector set the engine
// reports activity to.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *Options) { o.Metrics = m }
}

// WithBroadcastAddr overrides the address Discover sends its GetService
// request to. The default is the LAN broadcast address on DefaultPort;
// overriding it is useful on networks where global broadcast doesn't
// reach every device, and in tests, where it points discovery at a
// fake responder instead of the real subnet broadcast address.
func WithBroadcastAddr(addr *net.UDPAddr) Option {
	return func(o *Options) { o.BroadcastAddr = addr }
}
