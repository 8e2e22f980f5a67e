// Copyright 2016 Tim Heckman. All rights reserved.
// Use of this source code is governed by the BSD 3-Clause
// license that can be found in the LICENSE file.

package dispatch

import "crypto/rand"

// randomBytes fills buf with random bytes, panicking on an error from
// the system's entropy source since that indicates the host is
// unusable for anything relying on randomness, not just this package.
func randomBytes(buf []byte) {
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
}

// randomUint8 returns a single random byte, used to seed the sequence
// allocator and to fill ping payloads.
func randomUint8() uint8 {
	var b [1]byte
	randomBytes(b[:])
	return b[0]
}
