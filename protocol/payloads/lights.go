// Copyright 2016 Tim Heckman. All rights reserved.
// Use of this source code is governed by the BSD 3-Clause
// license that can be found in the LICENSE file.

package lifxpayloads

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/MoritzS/licht/bitfield"
)

// lightMaxDuration is the largest time.Duration that still fits the wire's
// millisecond uint32 Duration field (about 49 days, 17 hours).
const lightMaxDuration = time.Millisecond * time.Duration(^uint32(0))

// ErrLightColorNotSet is the error returned when the color is not set
// on the strut trying to be marshaled.
var ErrLightColorNotSet = errors.New("lifxpayloads: Color field is nil, cannot marshal without an HSBK value")

const hueDegreeScale = 360.0
const fractionScale = 65535.0

// DefaultHSBKelvin is the color temperature to carry alongside a
// saturated HSB color when the caller has no specific preference;
// devices echo it back unchanged with saturated colors.
const DefaultHSBKelvin uint16 = 3500

// LightHSBK holds a light's color and color temperature as an HSBK
// (Hue, Saturation, Brightness, Kelvin) tuple.
type LightHSBK struct {
	// Hue spans the full circle across 0-65535.
	Hue uint16

	// Saturation spans 0 (white) to 65535 (fully saturated).
	Saturation uint16

	// Brightness spans 0 (off) to 65535 (maximum).
	Brightness uint16

	// Kelvin is the color temperature: lower values look warmer (down to
	// 2500K), higher values look cooler (up to 9000K).
	Kelvin uint16
}

// FromHSB builds a LightHSBK from a hue in degrees [0,360), and
// saturation/brightness fractions in [0,1]. Kelvin carries the value a
// real device reports alongside an HSB color and is not itself scaled.
func FromHSB(hueDegrees, saturation, brightness float64, kelvin uint16) *LightHSBK {
	return &LightHSBK{
		Hue:        uint16(math.Round(hueDegrees * fractionScale / hueDegreeScale)),
		Saturation: uint16(math.Round(saturation * fractionScale)),
		Brightness: uint16(math.Round(brightness * fractionScale)),
		Kelvin:     kelvin,
	}
}

// FromWhite builds a LightHSBK for a "white" value: zero saturation, the
// given brightness fraction in [0,1], and the given color temperature.
func FromWhite(brightness float64, kelvin uint16) *LightHSBK {
	return &LightHSBK{
		Brightness: uint16(math.Round(brightness * fractionScale)),
		Kelvin:     kelvin,
	}
}

// IsWhite reports whether this color should be interpreted as a white
// value (brightness, kelvin) rather than an HSB color, per the
// saturation == 0 convention devices use on replies.
func (hsbk *LightHSBK) IsWhite() bool { return hsbk.Saturation == 0 }

// HSBFraction returns the hue in degrees and the saturation/brightness
// as fractions in [0,1], inverting the scaling FromHSB applies.
func (hsbk *LightHSBK) HSBFraction() (hueDegrees, saturation, brightness float64) {
	hueDegrees = float64(hsbk.Hue) * hueDegreeScale / fractionScale
	saturation = float64(hsbk.Saturation) / fractionScale
	brightness = float64(hsbk.Brightness) / fractionScale
	return
}

func (hsbk *LightHSBK) String() string {
	if hsbk == nil {
		return "<*lifxpayloads.LightHSBK(nil)>"
	}

	hue, sat, bri := hsbk.HSBFraction()

	return fmt.Sprintf(
		"<*lifxpayloads.LightHSBK(%p): Hue: %d (%.1f°), Saturation: %d (%.2f), Brightness: %d (%.2f), Kelvin: %d>",
		hsbk, hsbk.Hue, hue, hsbk.Saturation, sat, hsbk.Brightness, bri, hsbk.Kelvin,
	)
}

func (hsbk *LightHSBK) toRecord() (*bitfield.Record, error) {
	return lightHSBKSchema.NewNamed(map[string]interface{}{
		"hue":        uint64(hsbk.Hue),
		"saturation": uint64(hsbk.Saturation),
		"brightness": uint64(hsbk.Brightness),
		"kelvin":     uint64(hsbk.Kelvin),
	})
}

func hsbkFromRecord(rec *bitfield.Record) *LightHSBK {
	return &LightHSBK{
		Hue:        uint16(rec.MustGet("hue").(uint64)),
		Saturation: uint16(rec.MustGet("saturation").(uint64)),
		Brightness: uint16(rec.MustGet("brightness").(uint64)),
		Kelvin:     uint16(rec.MustGet("kelvin").(uint64)),
	}
}

// MarshalPacket implements lifxprotocol.Marshaler.
func (hsbk *LightHSBK) MarshalPacket(order binary.ByteOrder) ([]byte, error) {
	if order != binary.LittleEndian {
		return nil, ErrUnsupportedByteOrder
	}

	rec, err := hsbk.toRecord()
	if err != nil {
		return nil, err
	}

	return rec.Encode()
}

// UnmarshalPacket implements lifxprotocol.Unmarshaler.
func (hsbk *LightHSBK) UnmarshalPacket(data io.Reader, order binary.ByteOrder) error {
	if order != binary.LittleEndian {
		return ErrUnsupportedByteOrder
	}

	buf := make([]byte, lightHSBKSchema.TotalBytes())
	if _, err := io.ReadFull(data, buf); err != nil {
		return err
	}

	rec, err := lightHSBKSchema.Decode(buf)
	if err != nil {
		return err
	}

	*hsbk = *hsbkFromRecord(rec)

	return nil
}

// LightSetColor is sent by a client to change a light's color; Duration
// is how long the device should take to transition to it.
type LightSetColor struct {
	Reserved uint8
	Color    *LightHSBK
	Duration time.Duration
}

func (lsc *LightSetColor) String() string {
	if lsc == nil {
		return "<*lifxpayloads.LightSetColor(nil)>"
	}

	var color string

	if lsc.Color != nil {
		color = lsc.Color.String()
	} else {
		color = "<nil>"
	}

	return fmt.Sprintf(
		"<*lifxpayloads.LightSetColor(%p): Color: %s, Duration: %s>",
		lsc, color, lsc.Duration,
	)
}

// MarshalPacket implements lifxprotocol.Marshaler.
func (lsc *LightSetColor) MarshalPacket(order binary.ByteOrder) ([]byte, error) {
	if order != binary.LittleEndian {
		return nil, ErrUnsupportedByteOrder
	}

	if lsc.Color == nil {
		return nil, ErrLightColorNotSet
	}

	if lsc.Duration > lightMaxDuration {
		return nil, errors.New("LightSetColor.Duration would overflow uint32")
	}

	colorRec, err := lsc.Color.toRecord()
	if err != nil {
		return nil, err
	}

	rec, err := lightSetColorSchema.NewNamed(map[string]interface{}{
		"reserved": uint64(lsc.Reserved),
		"color":    colorRec,
		"duration": uint64(durToMs(lsc.Duration)),
	})
	if err != nil {
		return nil, err
	}

	return rec.Encode()
}

// UnmarshalPacket implements lifxprotocol.Unmarshaler.
func (lsc *LightSetColor) UnmarshalPacket(data io.Reader, order binary.ByteOrder) error {
	if order != binary.LittleEndian {
		return ErrUnsupportedByteOrder
	}

	buf := make([]byte, lightSetColorSchema.TotalBytes())
	if _, err := io.ReadFull(data, buf); err != nil {
		return err
	}

	rec, err := lightSetColorSchema.Decode(buf)
	if err != nil {
		return err
	}

	lsc.Reserved = uint8(rec.MustGet("reserved").(uint64))
	lsc.Color = hsbkFromRecord(rec.MustGet("color").(*bitfield.Record))
	lsc.Duration = msToDur(uint32(rec.MustGet("duration").(uint64)))

	return nil
}

// LightState is the payload a device sends back describing its current
// color, power, and label.
type LightState struct {
	Color    *LightHSBK
	Reserved uint16

	// Power is either 0 (off) or 65535 (on).
	Power uint16

	// Label is the device's user-assigned name.
	Label DeviceLabel

	ReservedB uint64
}

func (ls *LightState) String() string {
	if ls == nil {
		return "<*lifxpayloads.LightState(nil)>"
	}

	var color string

	if ls.Color != nil {
		color = ls.Color.String()
	} else {
		color = "<nil>"
	}

	var power string

	if ls.Power == 0 {
		power = "OFF"
	} else if ls.Power == 65535 {
		power = "ON"
	}

	label := string(bytes.Trim(ls.Label[0:], "\x00"))

	return fmt.Sprintf(
		"<*lifxpayloads.LightState(%p): Color: %s, Power: %d (%s), Label: \"%s\">",
		ls, color, ls.Power, power, label,
	)
}

// MarshalPacket implements lifxprotocol.Marshaler.
func (ls *LightState) MarshalPacket(order binary.ByteOrder) ([]byte, error) {
	if order != binary.LittleEndian {
		return nil, ErrUnsupportedByteOrder
	}

	if ls.Color == nil {
		return nil, ErrLightColorNotSet
	}

	colorRec, err := ls.Color.toRecord()
	if err != nil {
		return nil, err
	}

	rec, err := lightStateSchema.NewNamed(map[string]interface{}{
		"color":      colorRec,
		"reserved":   uint64(ls.Reserved),
		"power":      uint64(ls.Power),
		"label":      ls.Label[:],
		"reserved_b": ls.ReservedB,
	})
	if err != nil {
		return nil, err
	}

	return rec.Encode()
}

// UnmarshalPacket implements lifxprotocol.Unmarshaler.
func (ls *LightState) UnmarshalPacket(data io.Reader, order binary.ByteOrder) error {
	if order != binary.LittleEndian {
		return ErrUnsupportedByteOrder
	}

	buf := make([]byte, lightStateSchema.TotalBytes())
	if _, err := io.ReadFull(data, buf); err != nil {
		return err
	}

	rec, err := lightStateSchema.Decode(buf)
	if err != nil {
		return err
	}

	ls.Color = hsbkFromRecord(rec.MustGet("color").(*bitfield.Record))
	ls.Reserved = uint16(rec.MustGet("reserved").(uint64))
	ls.Power = uint16(rec.MustGet("power").(uint64))
	ls.Label = NewDeviceLabelTrunc(rec.MustGet("label").([]byte))
	ls.ReservedB = rec.MustGet("reserved_b").(uint64)

	return nil
}

// LightSetPower is sent by a client to turn a light on or off.
type LightSetPower struct {
	// Level must be 0 (off) or 65535 (on).
	Level uint16

	// Duration is how long the power transition should take.
	Duration time.Duration
}

func (lsp *LightSetPower) String() string {
	if lsp == nil {
		return "<*lifxpayloads.LightSetPower(nil)>"
	}

	var level string

	if lsp.Level == 0 {
		level = "OFF"
	} else if lsp.Level == 65535 {
		level = "ON"
	}

	return fmt.Sprintf(
		"<*lifxpayloads.LightSetPower(%p): Level: %d (%s), Duration: %s>",
		lsp, lsp.Level, level, lsp.Duration,
	)
}

// MarshalPacket implements lifxprotocol.Marshaler.
func (lsp *LightSetPower) MarshalPacket(order binary.ByteOrder) ([]byte, error) {
	if order != binary.LittleEndian {
		return nil, ErrUnsupportedByteOrder
	}

	if lsp.Duration > lightMaxDuration {
		return nil, errors.New("LightSetPower.Duration would overflow uint32")
	}

	rec, err := lightSetPowerSchema.NewNamed(map[string]interface{}{
		"level":    uint64(lsp.Level),
		"duration": uint64(durToMs(lsp.Duration)),
	})
	if err != nil {
		return nil, err
	}

	return rec.Encode()
}

// UnmarshalPacket implements lifxprotocol.Unmarshaler.
func (lsp *LightSetPower) UnmarshalPacket(data io.Reader, order binary.ByteOrder) error {
	if order != binary.LittleEndian {
		return ErrUnsupportedByteOrder
	}

	buf := make([]byte, lightSetPowerSchema.TotalBytes())
	if _, err := io.ReadFull(data, buf); err != nil {
		return err
	}

	rec, err := lightSetPowerSchema.Decode(buf)
	if err != nil {
		return err
	}

	lsp.Level = uint16(rec.MustGet("level").(uint64))
	lsp.Duration = msToDur(uint32(rec.MustGet("duration").(uint64)))

	return nil
}

// LightStatePower is the payload a device sends back describing its
// current power level.
type LightStatePower struct {
	Level uint16
}

func (lsp *LightStatePower) String() string {
	if lsp == nil {
		return "<*lifxpayloads.LightStatePower(nil)>"
	}

	var level string

	if lsp.Level == 0 {
		level = "OFF"
	} else if lsp.Level == 65535 {
		level = "ON"
	}

	return fmt.Sprintf(
		"<*lifxpayloads.LightStatePower(%p): Level: %d (%s)>",
		lsp, lsp.Level, level,
	)
}

// MarshalPacket implements lifxprotocol.Marshaler.
func (lsp *LightStatePower) MarshalPacket(order binary.ByteOrder) ([]byte, error) {
	if order != binary.LittleEndian {
		return nil, ErrUnsupportedByteOrder
	}

	rec, err := lightStatePowerSchema.NewNamed(map[string]interface{}{
		"level": uint64(lsp.Level),
	})
	if err != nil {
		return nil, err
	}

	return rec.Encode()
}

// UnmarshalPacket implements lifxprotocol.Unmarshaler.
func (lsp *LightStatePower) UnmarshalPacket(data io.Reader, order binary.ByteOrder) error {
	if order != binary.LittleEndian {
		return ErrUnsupportedByteOrder
	}

	buf := make([]byte, lightStatePowerSchema.TotalBytes())
	if _, err := io.ReadFull(data, buf); err != nil {
		return err
	}

	rec, err := lightStatePowerSchema.Decode(buf)
	if err != nil {
		return err
	}

	lsp.Level = uint16(rec.MustGet("level").(uint64))

	return nil
}
