// Copyright 2016 Tim Heckman. All rights reserved.
// Use of this source code is governed by the BSD 3-Clause
// license that can be found in the LICENSE file.

package dispatch

import "errors"

// ErrTimeout is returned when an operation's retry budget is exhausted
// without a matching reply arriving.
var ErrTimeout = errors.New("dispatch: timed out waiting for a reply")

// ErrCancelled is returned when an operation's context is cancelled
// while it is in flight. No further network effect follows beyond the
// packets already sent.
var ErrCancelled = errors.New("dispatch: operation cancelled")

// ErrClosed is returned by any operation submitted after the Engine's
// Close method has run.
var ErrClosed = errors.New("dispatch: engine is closed")

// ProgrammerError is panicked, not returned, for conditions that the
// spec treats as bugs in the caller rather than runtime failures: a
// second waiter registered on an already-occupied key is the only one
// this package raises today.
type ProgrammerError struct {
	Msg string
}

func (e ProgrammerError) Error() string { return "dispatch: programmer error: " + e.Msg }
