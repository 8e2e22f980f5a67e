// Copyright 2016 Tim Heckman. All rights reserved.
// Use of this source code is governed by the BSD 3-Clause
// license that can be found in the LICENSE file.

package dispatch

import (
	"fmt"
	"net"
)

// Address identifies one light on the LAN: the host IP, the UDP port it
// answers on, and its 6-byte MAC target. Equality on this triple
// identifies a specific device; the 8-byte wire encoding only exists on
// the marshaled packet itself (see lifxutil.MACToTarget).
type Address struct {
	Host   string
	Port   int
	Target net.HardwareAddr
}

// key returns the string this Address hashes to in the waiter tables.
// net.HardwareAddr doesn't compare with ==, so targets are reduced to
// their string form for map keys.
func (a Address) key() string {
	return fmt.Sprintf("%s:%d/%s", a.Host, a.Port, a.Target)
}

func (a Address) udpAddr() *net.UDPAddr {
	return &net.UDPAddr{IP: net.ParseIP(a.Host), Port: a.Port}
}

func (a Address) String() string {
	return fmt.Sprintf("%s:%d (%s)", a.Host, a.Port, a.Target)
}
