// Copyright 2016 Tim Heckman. All rights reserved.
// Use of this source code is governed by the BSD 3-Clause
// license that can be found in the LICENSE file.

package dispatch

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MoritzS/licht/protocol"
	"github.com/MoritzS/licht/protocol/payloads"
)

// sendRetries calls send up to Tries times, once per transmission,
// spaced by Timeout/Tries, stopping early if ctx is done.
// This is the sender side of spec.md §4.3's "send-with-retries": it
// never itself decides success or failure, only how many packets get
// on the wire and when.
func (e *Engine) sendRetries(ctx context.Context, send func(seq uint8) error) error {
	interval := e.opts.Timeout / time.Duration(e.opts.Tries)

	for i := 0; i < e.opts.Tries; i++ {
		seq := e.nextSeq()
		if i > 0 {
			e.opts.Metrics.Retries.Inc()
			e.opts.Logger.Debug("dispatch: retrying", "attempt", i+1, "seq", seq)
		}
		if err := send(seq); err != nil {
			return err
		}

		select {
		case <-time.After(interval):
		case <-ctx.Done():
			return nil
		}
	}

	return nil
}

// timeoutOrCancelled distinguishes the two ways an operation's bounded
// context can end: the caller's own ctx was cancelled (ErrCancelled),
// or the per-operation deadline spec.md §5 mandates was reached with
// no reply (ErrTimeout).
func (e *Engine) timeoutOrCancelled(caller context.Context) error {
	if caller.Err() != nil {
		return ErrCancelled
	}
	e.opts.Metrics.Timeouts.Inc()
	e.opts.Logger.Warn("dispatch: operation timed out")
	return ErrTimeout
}

// query implements spec.md §4.3's directed query: a Get* request with
// ack/res both clear, resolved by the matching State* reply. The
// reply-table key doesn't depend on sequence, so it is reused across
// every retry.
func (e *Engine) query(ctx context.Context, a Address, reqType uint16, reqPayload lifxprotocol.PacketComponent, replyType uint16) (*lifxprotocol.Packet, error) {
	if err := e.ensureConn(); err != nil {
		return nil, err
	}

	key := replyKey{addr: a.udpAddr().String(), target: a.Target.String(), msgType: replyType}
	ch, cleanup := e.tables.registerReply(key, 1)
	defer cleanup()

	opCtx, cancel := context.WithTimeout(ctx, e.opts.Timeout)
	defer cancel()

	e.opts.Metrics.InFlight.Inc()
	defer e.opts.Metrics.InFlight.Dec()

	g, gctx := errgroup.WithContext(opCtx)
	g.Go(func() error {
		return e.sendRetries(gctx, func(seq uint8) error {
			pkt := e.buildPacket(a.Target, reqType, reqPayload, seq, false, false)
			return e.writePacket(pkt, a.udpAddr())
		})
	})

	select {
	case in := <-ch:
		cancel()
		_ = g.Wait()
		return in.pkt, nil
	case <-e.closed:
		return nil, ErrCancelled
	case <-gctx.Done():
		if sendErr := g.Wait(); sendErr != nil {
			return nil, sendErr
		}
		return nil, e.timeoutOrCancelled(ctx)
	}
}

// set implements spec.md §4.3's directed set: a Set* request with
// ack_required set. Every retry allocates a fresh sequence number and
// registers it in the sequence table against the same pendingOp, so an
// ack for any retry resolves the operation exactly once; the rest of
// its owned keys are purged on the way out.
func (e *Engine) set(ctx context.Context, a Address, reqType uint16, reqPayload lifxprotocol.PacketComponent) error {
	if err := e.ensureConn(); err != nil {
		return err
	}

	op := newPendingOp()
	defer e.tables.releaseSeqKeys(op)

	opCtx, cancel := context.WithTimeout(ctx, e.opts.Timeout)
	defer cancel()

	e.opts.Metrics.InFlight.Inc()
	defer e.opts.Metrics.InFlight.Dec()

	g, gctx := errgroup.WithContext(opCtx)
	g.Go(func() error {
		return e.sendRetries(gctx, func(seq uint8) error {
			key := seqKey{addr: a.udpAddr().String(), target: a.Target.String(), seq: seq}
			e.tables.registerSeq(key, op)

			pkt := e.buildPacket(a.Target, reqType, reqPayload, seq, true, false)
			return e.writePacket(pkt, a.udpAddr())
		})
	})

	select {
	case <-op.done:
		cancel()
		_ = g.Wait()
		return nil
	case <-e.closed:
		return ErrCancelled
	case <-gctx.Done():
		if sendErr := g.Wait(); sendErr != nil {
			return sendErr
		}
		return e.timeoutOrCancelled(ctx)
	}
}

// Ping sends an EchoRequest with a random 64-byte payload and waits for
// an EchoResponse from the same address whose payload matches. A
// mismatched payload is ignored, per spec.md §4.3, rather than failing
// the operation; only retry exhaustion does.
func (e *Engine) Ping(ctx context.Context, a Address) error {
	if err := e.ensureConn(); err != nil {
		return err
	}

	var raw lifxpayloads.DeviceEchoPayload
	randomBytes(raw[:])
	reqPayload := &lifxpayloads.DeviceEcho{Payload: raw}

	// A buffer of a few replies, not one: a mismatched response is read
	// and ignored, and the genuine one may already be queued behind it.
	key := replyKey{addr: a.udpAddr().String(), target: a.Target.String(), msgType: lifxprotocol.DeviceEchoResponse}
	ch, cleanup := e.tables.registerReply(key, 4)
	defer cleanup()

	opCtx, cancel := context.WithTimeout(ctx, e.opts.Timeout)
	defer cancel()

	g, gctx := errgroup.WithContext(opCtx)
	g.Go(func() error {
		return e.sendRetries(gctx, func(seq uint8) error {
			pkt := e.buildPacket(a.Target, lifxprotocol.DeviceEchoRequest, reqPayload, seq, false, false)
			return e.writePacket(pkt, a.udpAddr())
		})
	})

	for {
		select {
		case in := <-ch:
			resp, ok := in.pkt.Payload.(*lifxpayloads.DeviceEcho)
			if ok && resp.Payload == reqPayload.Payload {
				cancel()
				_ = g.Wait()
				return nil
			}
			// payload mismatch: keep listening for the real response
		case <-e.closed:
			return ErrCancelled
		case <-gctx.Done():
			if sendErr := g.Wait(); sendErr != nil {
				return sendErr
			}
			return e.timeoutOrCancelled(ctx)
		}
	}
}

// Discover broadcasts GetService and streams a *Light for every
// distinct device that answers during the broadcast window. The
// stream is deduplicated by address across the whole call, not per
// retry, per original_source/licht/lifx.py's bulb_addrs accumulation.
func (e *Engine) Discover(ctx context.Context) <-chan *Light {
	out := make(chan *Light)
	go e.discover(ctx, out)
	return out
}

func (e *Engine) discover(ctx context.Context, out chan<- *Light) {
	defer close(out)

	if err := e.ensureConn(); err != nil {
		e.opts.Logger.Warn("dispatch: discover failed to open socket", "err", err)
		return
	}

	opCtx, cancel := context.WithTimeout(ctx, e.opts.Timeout)
	defer cancel()

	key := replyKey{msgType: lifxprotocol.DeviceStateService}
	ch, cleanup := e.tables.registerReply(key, broadcastBufSize)
	defer cleanup()

	broadcastAddr := e.broadcastAddr()

	sendDone := make(chan struct{})
	go func() {
		defer close(sendDone)
		err := e.sendRetries(opCtx, func(seq uint8) error {
			pkt := e.buildBroadcastPacket(lifxprotocol.DeviceGetService, lifxpayloads.Empty{}, seq)
			return e.writePacket(pkt, broadcastAddr)
		})
		if err != nil {
			e.opts.Logger.Warn("dispatch: discover send failed", "err", err)
		}
	}()

	seen := make(map[string]struct{})

	// yield dedups and forwards one StateService reply, reporting
	// whether the caller should keep reading (false means opCtx ended
	// while blocked trying to send to out).
	yield := func(in inbound) bool {
		svc, ok := in.pkt.Payload.(*lifxpayloads.DeviceStateService)
		if !ok {
			return true
		}

		a := Address{
			Host:   in.from.IP.String(),
			Port:   int(svc.Port),
			Target: in.pkt.Header.FrameAddress.Target,
		}

		if _, dup := seen[a.key()]; dup {
			return true
		}
		seen[a.key()] = struct{}{}

		select {
		case out <- &Light{engine: e, addr: a}:
			return true
		case <-opCtx.Done():
			return false
		}
	}

	for {
		select {
		case in := <-ch:
			if !yield(in) {
				return
			}

		case <-sendDone:
			// The sender is done, but replies it provoked may already
			// be sitting in ch; a bare return here would drop them
			// since select would otherwise pick this case at random
			// against a concurrently-ready ch. Drain what's buffered
			// before giving up the goroutine.
			for {
				select {
				case in := <-ch:
					if !yield(in) {
						return
					}
				default:
					return
				}
			}

		case <-e.closed:
			return

		case <-opCtx.Done():
			return
		}
	}
}
