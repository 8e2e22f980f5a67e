// Copyright 2016 Tim Heckman. All rights reserved.
// Use of this source code is governed by the BSD 3-Clause
// license that can be found in the LICENSE file.

// Package lifxutil is a helper package that provides utility functionality
// required by the different subpackges of the lifx package. This utility
// functionality includes shared functions, as well as shared constants.
package lifxutil

import "net"

// TargetSize is the width, in bytes, of the FrameAddress.Target wire field.
const TargetSize = 8

// MACToTarget renders a MAC address as the 8-byte wire target: the MAC
// occupies the first 6 bytes, the remaining 2 are zero. A nil or empty mac
// (broadcast) renders as all zero.
func MACToTarget(mac net.HardwareAddr) []byte {
	target := make([]byte, TargetSize)
	copy(target, mac)
	return target
}

// TargetToMAC extracts the MAC address from an 8-byte wire target, dropping
// the trailing zero-padding.
func TargetToMAC(target []byte) net.HardwareAddr {
	mac := make(net.HardwareAddr, 6)
	copy(mac, target)
	return mac
}

// IsBroadcastTarget reports whether target addresses all devices, i.e. is
// all zero.
func IsBroadcastTarget(target []byte) bool {
	for _, b := range target {
		if b != 0 {
			return false
		}
	}
	return true
}
