// Copyright 2016 Tim Heckman. All rights reserved.
// Use of this source code is governed by the BSD 3-Clause
// license that can be found in the LICENSE file.

// Package dispatch implements the asynchronous request/response engine
// that drives the LIFX LAN protocol: one shared UDP socket, bounded
// retries, demultiplexing of inbound datagrams to the right waiter,
// and a streaming discovery mode. Package lifxprotocol and its
// lifxpayloads sub-package supply the wire framing this engine sends
// and parses; package bitfield is what those, in turn, are built on.
package dispatch

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/MoritzS/licht/protocol"
)

// recvBufSize is the size of the buffer used to read inbound
// datagrams; the largest payload in the catalog (EchoRequest/Response)
// is 512 bytes, well under this.
const recvBufSize = 4096

// broadcastBufSize is the reply-channel buffer used for the
// StateService broadcast waiter: several devices may answer within one
// receive-loop tick, and none should be dropped for want of buffer
// space the way a directed waiter's single-reply buffer would.
const broadcastBufSize = 256

// Engine is the asynchronous request/response engine: one UDP socket
// shared by every concurrent operation. It is created with New and is
// safe for concurrent use by multiple goroutines.
type Engine struct {
	opts Options

	connOnce sync.Once
	connErr  error
	conn     *net.UDPConn

	tables *waiterTables

	seq uint32 // accessed only via atomic ops, masked to a uint8 sequence

	closeOnce sync.Once
	closed    chan struct{}
	recvDone  chan struct{}
}

// New constructs an Engine with the given options applied over the
// documented defaults. The UDP socket itself is not opened until the
// first operation needs it.
func New(opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Engine{
		opts:     o,
		tables:   newWaiterTables(),
		seq:      uint32(randomUint8()),
		closed:   make(chan struct{}),
		recvDone: make(chan struct{}),
	}
}

// Close tears down the engine's socket and cancels every pending
// waiter, each of which fails with ErrCancelled.
func (e *Engine) Close() error {
	var err error
	e.closeOnce.Do(func() {
		close(e.closed)
		if e.conn != nil {
			err = e.conn.Close()
			<-e.recvDone
		}
	})
	return err
}

// nextSeq returns the next sequence number from the single counter,
// modulo 256. Sequence numbers are correlation tags, not reliability
// tokens, and their reuse across a retry budget is permitted.
func (e *Engine) nextSeq() uint8 {
	return uint8(atomic.AddUint32(&e.seq, 1))
}

// isClosed reports whether Close has run.
func (e *Engine) isClosed() bool {
	select {
	case <-e.closed:
		return true
	default:
		return false
	}
}

// ensureConn opens the shared socket on first use and starts the
// single receive loop that demultiplexes every inbound datagram.
func (e *Engine) ensureConn() error {
	if e.isClosed() {
		return ErrClosed
	}

	e.connOnce.Do(func() {
		conn, err := listenBroadcastUDP(DefaultPort)
		if err != nil {
			e.connErr = fmt.Errorf("dispatch: opening UDP socket: %w", err)
			close(e.recvDone)
			return
		}

		e.conn = conn
		go e.receiveLoop()
	})

	if e.isClosed() {
		return ErrClosed
	}
	return e.connErr
}

// listenBroadcastUDP opens a UDP socket on port and sets SO_BROADCAST
// on it before returning, mirroring original_source/lifx.py's
// sock.setsockopt(socket.SOL_SOCKET, socket.SO_BROADCAST, True). Without
// this, a broadcast WriteToUDP (as Discover sends) fails with EACCES on
// most platforms.
func listenBroadcastUDP(port int) (*net.UDPConn, error) {
	lc := net.ListenConfig{
		Control: func(network, address string, c syscall.RawConn) error {
			var sockErr error
			if err := c.Control(func(fd uintptr) {
				sockErr = syscall.SetsockoptInt(int(fd), syscall.SOL_SOCKET, syscall.SO_BROADCAST, 1)
			}); err != nil {
				return err
			}
			return sockErr
		},
	}

	pc, err := lc.ListenPacket(context.Background(), "udp4", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, err
	}

	conn, ok := pc.(*net.UDPConn)
	if !ok {
		pc.Close()
		return nil, fmt.Errorf("dispatch: unexpected packet conn type %T", pc)
	}

	return conn, nil
}

// receiveLoop is the engine's single receive path: every inbound
// datagram, regardless of which operation is waiting on it, is parsed
// here and routed to the matching waiter by deliverReply/resolveSeq.
func (e *Engine) receiveLoop() {
	defer close(e.recvDone)

	buf := make([]byte, recvBufSize)

	for {
		n, from, err := e.conn.ReadFromUDP(buf)
		if err != nil {
			select {
			case <-e.closed:
				return
			default:
				e.opts.Logger.Warn("dispatch: read failed", "err", err)
				return
			}
		}

		e.opts.Metrics.PacketsReceived.Inc()
		e.handleDatagram(buf[:n], from)
	}
}

func (e *Engine) handleDatagram(data []byte, from *net.UDPAddr) {
	pkt := &lifxprotocol.Packet{}
	if err := pkt.UnmarshalPacket(bytes.NewReader(data), binary.LittleEndian); err != nil {
		e.opts.Metrics.PacketsDropped.WithLabelValues("malformed").Inc()
		e.opts.Logger.Debug("dispatch: dropping malformed datagram", "from", from, "err", err)
		return
	}

	in := inbound{pkt: pkt, from: from}
	msgType := pkt.Header.ProtocolHeader.Type

	target := pkt.Header.FrameAddress.Target.String()

	if msgType == lifxprotocol.DeviceAcknowledgement {
		key := seqKey{addr: from.String(), target: target, seq: pkt.Header.FrameAddress.Sequence}
		e.tables.resolveSeq(key)
		return
	}

	directed := replyKey{addr: from.String(), target: target, msgType: msgType}
	if e.tables.deliverReply(directed, in) {
		return
	}

	broadcast := replyKey{msgType: msgType}
	if e.tables.deliverReply(broadcast, in) {
		return
	}

	e.opts.Metrics.PacketsDropped.WithLabelValues("unsolicited").Inc()
	e.opts.Logger.Debug("dispatch: dropping unsolicited datagram", "from", from, "type", msgType)
}

// buildPacket assembles a directed (non-broadcast) packet addressed to
// target.
func (e *Engine) buildPacket(target net.HardwareAddr, msgType uint16, payload lifxprotocol.PacketComponent, seq uint8, ack, res bool) *lifxprotocol.Packet {
	return &lifxprotocol.Packet{
		Header: &lifxprotocol.Header{
			Frame: &lifxprotocol.Frame{
				Addressable: true,
				Protocol:    1024,
				Source:      binary.LittleEndian.Uint32(e.opts.SourceID[:]),
			},
			FrameAddress: &lifxprotocol.FrameAddress{
				Target:      target,
				AckRequired: ack,
				ResRequired: res,
				Sequence:    seq,
			},
			ProtocolHeader: &lifxprotocol.ProtocolHeader{Type: msgType},
		},
		Payload: payload,
	}
}

// buildBroadcastPacket assembles a tagged packet addressed to all
// devices, as discovery's GetService uses.
func (e *Engine) buildBroadcastPacket(msgType uint16, payload lifxprotocol.PacketComponent, seq uint8) *lifxprotocol.Packet {
	return &lifxprotocol.Packet{
		Header: &lifxprotocol.Header{
			Frame: &lifxprotocol.Frame{
				Tagged:      true,
				Addressable: true,
				Protocol:    1024,
				Source:      binary.LittleEndian.Uint32(e.opts.SourceID[:]),
			},
			FrameAddress:   &lifxprotocol.FrameAddress{Sequence: seq},
			ProtocolHeader: &lifxprotocol.ProtocolHeader{Type: msgType},
		},
		Payload: payload,
	}
}

func (e *Engine) writePacket(pkt *lifxprotocol.Packet, addr *net.UDPAddr) error {
	if err := e.ensureConn(); err != nil {
		return err
	}

	data, err := pkt.MarshalPacket(binary.LittleEndian)
	if err != nil {
		return fmt.Errorf("dispatch: marshaling packet: %w", err)
	}

	if _, err := e.conn.WriteToUDP(data, addr); err != nil {
		return fmt.Errorf("dispatch: writing packet: %w", err)
	}

	e.opts.Metrics.PacketsSent.Inc()
	return nil
}

func (e *Engine) broadcastAddr() *net.UDPAddr {
	return e.opts.BroadcastAddr
}
