// Copyright 2016 Tim Heckman. All rights reserved.
// Use of this source code is governed by the BSD 3-Clause
// license that can be found in the LICENSE file.

package lifxprotocol

import "github.com/MoritzS/licht/bitfield"

// frameSchema lays out the 64-bit Frame block. origin/tagged/addressable/
// protocol share a 16-bit packed group; field order here is significance
// order (origin is most significant), matching the wire layout.
var frameSchema = bitfield.MustNew(
	bitfield.Uint("size", 16),
	bitfield.Uint("origin", 2),
	bitfield.Bool("tagged", 1),
	bitfield.Bool("addressable", 1),
	bitfield.Uint("protocol", 12),
	bitfield.Uint("source", 32),
)

// frameAddressSchema lays out the 128-bit FrameAddress block.
var frameAddressSchema = bitfield.MustNew(
	bitfield.Bytes("target", 64),
	bitfield.Reserved(48),
	bitfield.Uint("reserved", 6),
	bitfield.Bool("ack_required", 1),
	bitfield.Bool("res_required", 1),
	bitfield.Uint("sequence", 8),
)

// protocolHeaderSchema lays out the 96-bit ProtocolHeader block.
var protocolHeaderSchema = bitfield.MustNew(
	bitfield.Uint("reserved", 64),
	bitfield.Uint("type", 16),
	bitfield.Uint("reserved_end", 16),
)
