// Copyright 2016 Tim Heckman. All rights reserved.
// Use of this source code is governed by the BSD 3-Clause
// license that can be found in the LICENSE file.

package lifxprotocol

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/MoritzS/licht/util"
)

// MaxFrameAddressReserved is the max size of the FrameAddress.Reserved
// field. It only uses the top 6 bits so the maximum value is 63.
const MaxFrameAddressReserved = ^uint8(0) >> 2

// FrameAddressByteSize is the number of bytes in a marshaled FrameAddress struct
const FrameAddressByteSize int = 16

// ErrFrameAddressReservedOverflow is the error returned when the FrameAddress.Reserved value is too large.
var ErrFrameAddressReservedOverflow = fmt.Errorf("The Reserved field cannot be larger than %d, suggested value is 0", MaxFrameAddressReserved)

// ErrFrameAddressTargetMalformed is the error returned when the Target field is malformed. In other
// words, it contains more than the 6 bytes of a MAC address.
var ErrFrameAddressTargetMalformed = errors.New("The Target byte slice is malformed; the slice must contain 6 bytes")

// FrameAddress is a struct that contains information about the following things:
//
// 		* target device address
// 		* flag specifying whether an ack message is required
// 		* flag specifying whether a state response message is required
// 		* message sequence number
type FrameAddress struct {
	// Target is the device address (MAC address) we are targeting this packet
	// for. If we want to target all devices, this slice should either be
	// empty/nil or 6 bytes with a value of 0.
	//
	// On the wire this occupies 8 bytes: the MAC occupies the first 6, and
	// the remaining 2 are always zero.
	Target net.HardwareAddr

	// Reserved space specified by the protocol definition.
	// On the wire this is the top 6 bits of the byte that also holds
	// AckRequired and ResRequired.
	Reserved uint8

	// AckRequired: acknowledgement message is required
	AckRequired bool

	// ResRequired: response message is required
	ResRequired bool

	// Sequence is a wrap-around message sequence number
	Sequence uint8
}

func NewFrameAddress() *FrameAddress { return &FrameAddress{} }

func (fra *FrameAddress) String() string {
	if fra == nil {
		return "<*lifxprotocol.FrameAddress(nil)>"
	}

	return fmt.Sprintf(
		"<*lifxprotocol.FrameAddress(%p): Target: %s, AckRequired: %t, ResRequired: %t, Sequence: %d>",
		fra, fra.Target, fra.AckRequired, fra.ResRequired, fra.Sequence,
	)
}

func (fra *FrameAddress) MarshalPacket(order binary.ByteOrder) ([]byte, error) {
	if order != binary.LittleEndian {
		return nil, ErrUnsupportedByteOrder
	}

	if fra.Reserved > MaxFrameAddressReserved {
		return nil, ErrFrameAddressReservedOverflow
	}

	if len(fra.Target) > 6 {
		return nil, ErrFrameAddressTargetMalformed
	}

	rec, err := frameAddressSchema.NewNamed(map[string]interface{}{
		"target":       lifxutil.MACToTarget(fra.Target),
		"reserved":     uint64(fra.Reserved),
		"ack_required": fra.AckRequired,
		"res_required": fra.ResRequired,
		"sequence":     uint64(fra.Sequence),
	})
	if err != nil {
		return nil, err
	}

	return rec.Encode()
}

func (fra *FrameAddress) UnmarshalPacket(data io.Reader, order binary.ByteOrder) error {
	if order != binary.LittleEndian {
		return ErrUnsupportedByteOrder
	}

	buf := make([]byte, FrameAddressByteSize)
	if _, err := io.ReadFull(data, buf); err != nil {
		return err
	}

	rec, err := frameAddressSchema.Decode(buf)
	if err != nil {
		return err
	}

	fra.Target = lifxutil.TargetToMAC(rec.MustGet("target").([]byte))
	fra.Reserved = uint8(rec.MustGet("reserved").(uint64))
	fra.AckRequired = rec.MustGet("ack_required").(bool)
	fra.ResRequired = rec.MustGet("res_required").(bool)
	fra.Sequence = uint8(rec.MustGet("sequence").(uint64))

	return nil
}
