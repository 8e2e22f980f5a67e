// Copyright 2016 Tim Heckman. All rights reserved.
// Use of this source code is governed by the BSD 3-Clause
// license that can be found in the LICENSE file.

package lifxpayloads

import "github.com/MoritzS/licht/bitfield"

// Every payload in the message catalog is byte-aligned on the wire, so
// each of these schemas takes the straight-line encode/decode path in
// bitfield; Nested is used only where a payload embeds HSBK wholesale.

var deviceStateServiceSchema = bitfield.MustNew(
	bitfield.Uint("service", 8),
	bitfield.Uint("port", 32),
)

var deviceStateHostInfoSchema = bitfield.MustNew(
	bitfield.Float("signal", 32),
	bitfield.Uint("tx", 32),
	bitfield.Uint("rx", 32),
	bitfield.Int("reserved", 16),
)

var deviceStateHostFirmwareSchema = bitfield.MustNew(
	bitfield.Uint("build", 64),
	bitfield.Uint("reserved", 64),
	bitfield.Uint("version", 32),
)

var deviceStateWifiInfoSchema = bitfield.MustNew(
	bitfield.Float("signal", 32),
	bitfield.Uint("tx", 32),
	bitfield.Uint("rx", 32),
	bitfield.Int("reserved", 16),
)

var deviceStateWifiFirmwareSchema = bitfield.MustNew(
	bitfield.Uint("build", 64),
	bitfield.Uint("reserved", 64),
	bitfield.Uint("version", 32),
)

var deviceStatePowerSchema = bitfield.MustNew(
	bitfield.Uint("level", 16),
)

var deviceStateLabelSchema = bitfield.MustNew(
	bitfield.Bytes("label", 32*8),
)

var deviceStateVersionSchema = bitfield.MustNew(
	bitfield.Uint("vendor", 32),
	bitfield.Uint("product", 32),
	bitfield.Uint("version", 32),
)

var deviceStateInfoSchema = bitfield.MustNew(
	bitfield.Uint("time", 64),
	bitfield.Uint("uptime", 64),
	bitfield.Uint("downtime", 64),
)

var deviceStateLocationSchema = bitfield.MustNew(
	bitfield.Bytes("location", 16*8),
	bitfield.Bytes("label", 32*8),
	bitfield.Uint("updated_at", 64),
)

var deviceStateGroupSchema = bitfield.MustNew(
	bitfield.Bytes("group", 16*8),
	bitfield.Bytes("label", 32*8),
	bitfield.Uint("updated_at", 64),
)

var deviceEchoSchema = bitfield.MustNew(
	bitfield.Bytes("payload", 64*8),
)

var lightHSBKSchema = bitfield.MustNew(
	bitfield.Uint("hue", 16),
	bitfield.Uint("saturation", 16),
	bitfield.Uint("brightness", 16),
	bitfield.Uint("kelvin", 16),
)

var lightSetColorSchema = bitfield.MustNew(
	bitfield.Uint("reserved", 8),
	bitfield.Nested("color", lightHSBKSchema),
	bitfield.Uint("duration", 32),
)

var lightStateSchema = bitfield.MustNew(
	bitfield.Nested("color", lightHSBKSchema),
	bitfield.Uint("reserved", 16),
	bitfield.Uint("power", 16),
	bitfield.Bytes("label", 32*8),
	bitfield.Uint("reserved_b", 64),
)

var lightSetPowerSchema = bitfield.MustNew(
	bitfield.Uint("level", 16),
	bitfield.Uint("duration", 32),
)

var lightStatePowerSchema = bitfield.MustNew(
	bitfield.Uint("level", 16),
)
