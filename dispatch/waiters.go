// Copyright 2016 Tim Heckman. All rights reserved.
// Use of this source code is governed by the BSD 3-Clause
// license that can be found in the LICENSE file.

package dispatch

import (
	"net"
	"sync"

	"github.com/MoritzS/licht/protocol"
)

// inbound pairs a parsed packet with the UDP address it arrived from;
// the source host/port isn't carried in lifxprotocol.Packet itself, but
// discovery and reply correlation both need it.
type inbound struct {
	pkt  *lifxprotocol.Packet
	from *net.UDPAddr
}

// replyKey indexes the reply waiter table: addr/target identify a
// specific directed waiter, or are both empty for the broadcast
// variant discovery uses (keyed by message type alone).
type replyKey struct {
	addr    string
	target  string
	msgType uint16
}

// seqKey indexes the sequence table used to correlate acknowledgements
// with the request that provoked them: (host, port, target, sequence).
type seqKey struct {
	addr   string
	target string
	seq    uint8
}

// pendingOp is the completion handle for a directed "set" operation.
// Every retry allocates a fresh sequence number and registers a new
// seqKey against the same pendingOp, so an ack for any retry resolves
// the operation exactly once.
type pendingOp struct {
	done chan struct{}

	mu       sync.Mutex
	resolved bool
	keys     []seqKey
}

func newPendingOp() *pendingOp {
	return &pendingOp{done: make(chan struct{})}
}

// resolve closes done exactly once; later calls are no-ops, matching
// the spec's "a subsequent ack ... does not resolve any new operation".
func (op *pendingOp) resolve() {
	op.mu.Lock()
	defer op.mu.Unlock()
	if op.resolved {
		return
	}
	op.resolved = true
	close(op.done)
}

func (op *pendingOp) addKey(k seqKey) {
	op.mu.Lock()
	op.keys = append(op.keys, k)
	op.mu.Unlock()
}

func (op *pendingOp) ownedKeys() []seqKey {
	op.mu.Lock()
	defer op.mu.Unlock()
	return append([]seqKey(nil), op.keys...)
}

// waiterTables is the shared state spec.md §4.3 describes: three
// tables mutated only under one short-held mutex, covering the
// check-then-insert and remove-and-resolve compound operations spec.md
// §5 calls out for a multi-threaded port.
type waiterTables struct {
	mu           sync.Mutex
	replyWaiters map[replyKey]chan inbound
	seqWaiters   map[seqKey]*pendingOp
}

func newWaiterTables() *waiterTables {
	return &waiterTables{
		replyWaiters: make(map[replyKey]chan inbound),
		seqWaiters:   make(map[seqKey]*pendingOp),
	}
}

// registerReply registers a reply waiter with the given buffer size
// and returns the channel along with a cleanup function that removes
// the waiter. Registering on an already-occupied key is a programmer
// error per spec.md §3/§7.
func (t *waiterTables) registerReply(key replyKey, buf int) (chan inbound, func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.replyWaiters[key]; exists {
		panic(ProgrammerError{Msg: "duplicate reply waiter for " + key.msgTypeString()})
	}

	ch := make(chan inbound, buf)
	t.replyWaiters[key] = ch

	return ch, func() {
		t.mu.Lock()
		if cur, ok := t.replyWaiters[key]; ok && cur == ch {
			delete(t.replyWaiters, key)
		}
		t.mu.Unlock()
	}
}

// deliverReply routes an inbound packet to its waiter, if any. A
// non-blocking send means a duplicate reply that arrives after the
// waiter's buffer is already full is silently dropped, matching "later
// duplicates are discarded".
func (t *waiterTables) deliverReply(key replyKey, in inbound) bool {
	t.mu.Lock()
	ch, ok := t.replyWaiters[key]
	t.mu.Unlock()

	if !ok {
		return false
	}

	select {
	case ch <- in:
	default:
	}
	return true
}

// registerSeq binds a fresh seqKey to op, appending it to op's owned
// key set for later cleanup.
func (t *waiterTables) registerSeq(key seqKey, op *pendingOp) {
	t.mu.Lock()
	t.seqWaiters[key] = op
	t.mu.Unlock()
	op.addKey(key)
}

// resolveSeq resolves the pendingOp owning key, if any, and removes
// that single table entry. The operation's other owned keys are
// cleaned up by its own deferred cleanup once it observes op.done.
func (t *waiterTables) resolveSeq(key seqKey) {
	t.mu.Lock()
	op, ok := t.seqWaiters[key]
	if ok {
		delete(t.seqWaiters, key)
	}
	t.mu.Unlock()

	if ok {
		op.resolve()
	}
}

// releaseSeqKeys removes every key op still owns from the table; used
// when an operation completes via timeout/cancellation/ack so no key
// is left pointing at a dead pendingOp.
func (t *waiterTables) releaseSeqKeys(op *pendingOp) {
	keys := op.ownedKeys()

	t.mu.Lock()
	for _, k := range keys {
		if cur, ok := t.seqWaiters[k]; ok && cur == op {
			delete(t.seqWaiters, k)
		}
	}
	t.mu.Unlock()
}

func (k replyKey) msgTypeString() string {
	if k.addr == "" && k.target == "" {
		return "broadcast"
	}
	return k.addr
}
