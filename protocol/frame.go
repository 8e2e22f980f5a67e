// Copyright 2016 Tim Heckman. All rights reserved.
// Use of this source code is governed by the BSD 3-Clause
// license that can be found in the LICENSE file.

package lifxprotocol

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// MaxFrameOrigin is the max size of the Frame.Origin field.
// It only uses the top 2 bits so its maximum value is 3
const MaxFrameOrigin = ^uint8(0) >> 6

// MaxFrameProtocol is the max size of the The Frame.Protocol field.
// It only uses the low 12 bits so its maximum value is 4095.
const MaxFrameProtocol = ^uint16(0) >> 4

// FrameByteSize is the number of bytes in a marshaled Frame struct
const FrameByteSize int = 8

// ErrFrameProtocolOverflow is the error returned when the Frame.Protocol value is too large
var ErrFrameProtocolOverflow = fmt.Errorf("The Protocol field cannot be larger than %d, please choose another value (suggested: 1024)", MaxFrameProtocol)

// ErrFrameOriginOverflow is the error returned when the Frame.Origin value is too large
var ErrFrameOriginOverflow = fmt.Errorf("The Origin field cannot be larger than %d; should be set to 0", MaxFrameOrigin)

// ErrUnsupportedByteOrder is returned by every MarshalPacket/UnmarshalPacket
// in this package; the LIFX wire format is fixed little-endian, so the
// order parameter exists only for API parity with the Marshaler/Unmarshaler
// interfaces and must be binary.LittleEndian.
var ErrUnsupportedByteOrder = errors.New("lifxprotocol: the LIFX wire format is little-endian only")

// Frame is a struct that contains some information about the message itself. This includes
// things like:
//
// 		* the size of the message
// 		* the LIFX protocol number
// 		* use of the Frame Address target field
// 		* Source identifier
type Frame struct {
	// Size of the entire message in bytes, including this field.
	Size uint16

	// Origin is the message origin indicator (must be 0)
	// Only uses the low 2 bits
	Origin uint8

	// Tagged is a boolean flag that indicates whether the FrameAddress.Target
	// field is being used to address an individual device or all devices.
	// For discovery using DeviceGetService, the Tagged field should be set to
	// true and the FrameAddress.Target should be all zeroes. The device will then
	// respond with a DeviceStateService message, which will include its own
	// MAC address in the FrameAddress.Target field. In all subsequent messages
	// that the client sends to the device, the FrameAddress.Target field should
	// be set to the device MAC address, and the tagged field should be set to false.
	//
	// The only time the Tagged field should be set to true, and the
	// FrameAddress.Target field should contain all zeros, is for the
	// DeviceGetService message.
	Tagged bool

	// Addressable indicates the message includes a target address (must be true)
	Addressable bool

	// Protocol number; specification indicates this must be 1024
	Protocol uint16

	// Source identifier: unique value set by the client, used by responses
	Source uint32
}

// NewFrame is a function for returning a *Frame with some sane defaults.
func NewFrame() *Frame {
	return &Frame{
		Origin:      0,
		Addressable: true,
		Protocol:    1024,
	}
}

func (frame *Frame) String() string {
	if frame == nil {
		return "<*lifxprotocol.Frame(nil)>"
	}

	return fmt.Sprintf(
		"<*lifxprotocol.Frame(%p) Origin: %d, Tagged: %t, Addressable: %t, Protocol: %d, Source: 0x%x>",
		frame, frame.Origin, frame.Tagged, frame.Addressable, frame.Protocol, frame.Source,
	)
}

// MarshalPacket is a function that satisfies the Marshaler interface.
func (frame *Frame) MarshalPacket(order binary.ByteOrder) ([]byte, error) {
	if order != binary.LittleEndian {
		return nil, ErrUnsupportedByteOrder
	}

	if frame.Origin > MaxFrameOrigin {
		return nil, ErrFrameOriginOverflow
	}

	if frame.Protocol > MaxFrameProtocol {
		return nil, ErrFrameProtocolOverflow
	}

	rec, err := frameSchema.NewNamed(map[string]interface{}{
		"size":        uint64(frame.Size),
		"origin":      uint64(frame.Origin),
		"tagged":      frame.Tagged,
		"addressable": frame.Addressable,
		"protocol":    uint64(frame.Protocol),
		"source":      uint64(frame.Source),
	})
	if err != nil {
		return nil, err
	}

	return rec.Encode()
}

// UnmarshalPacket is a function that satisfies the Unmarshaler interface.
func (frame *Frame) UnmarshalPacket(data io.Reader, order binary.ByteOrder) error {
	if order != binary.LittleEndian {
		return ErrUnsupportedByteOrder
	}

	buf := make([]byte, FrameByteSize)
	if _, err := io.ReadFull(data, buf); err != nil {
		return err
	}

	rec, err := frameSchema.Decode(buf)
	if err != nil {
		return err
	}

	frame.Size = uint16(rec.MustGet("size").(uint64))
	frame.Origin = uint8(rec.MustGet("origin").(uint64))
	frame.Tagged = rec.MustGet("tagged").(bool)
	frame.Addressable = rec.MustGet("addressable").(bool)
	frame.Protocol = uint16(rec.MustGet("protocol").(uint64))
	frame.Source = uint32(rec.MustGet("source").(uint64))

	return nil
}
