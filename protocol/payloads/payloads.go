// Copyright 2016 Tim Heckman. All rights reserved.
// Use of this source code is governed by the BSD 3-Clause
// license that can be found in the LICENSE file.

// Package lifxpayloads is used for marshaling and unmarshaling different LIFX
// protocol payloads to and from the wire, respectively. This package is not
// meant to be consumed by those wanting to interface with their LIFX devices
// in Golang. This package is designed to be used by the LIFX Golang library
// for communicating with devices. In this module that library is package
// dispatch, which is what users consume; this package is a prerequisite
// for it.
package lifxpayloads

import (
	"encoding/binary"
	"errors"
	"io"
)

// ErrUnsupportedByteOrder is returned by every MarshalPacket/UnmarshalPacket
// in this package; the LIFX wire format is fixed little-endian, so the
// order parameter exists only for API parity with the lifxprotocol
// Marshaler/Unmarshaler interfaces and must be binary.LittleEndian.
var ErrUnsupportedByteOrder = errors.New("lifxpayloads: the LIFX wire format is little-endian only")

// Empty is the payload for every message in the catalog that carries
// no data: the Get* requests, Acknowledgement, and Light:Get.
type Empty struct{}

func (Empty) String() string { return "<lifxpayloads.Empty>" }

// MarshalPacket is a function that satisfies the lifxprotocol.Marshaler
// interface. It always returns a zero-length slice.
func (Empty) MarshalPacket(order binary.ByteOrder) ([]byte, error) {
	if order != binary.LittleEndian {
		return nil, ErrUnsupportedByteOrder
	}
	return []byte{}, nil
}

// UnmarshalPacket is a function that satisfies the lifxprotocol.Unmarshaler
// interface. It reads nothing and never fails.
func (Empty) UnmarshalPacket(data io.Reader, order binary.ByteOrder) error {
	if order != binary.LittleEndian {
		return ErrUnsupportedByteOrder
	}
	return nil
}
