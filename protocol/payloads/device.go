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
	"strconv"
)

// DeviceLabel is the wire representation of a device's user-assigned name:
// a fixed 32-byte NUL-padded array. It is embedded in several payloads but
// is never sent as a standalone message on its own.
type DeviceLabel [32]byte

// NewDeviceLabel builds a DeviceLabel from a byte slice, failing if the
// slice holds more than the 32 bytes a label can carry.
func NewDeviceLabel(data []byte) (DeviceLabel, error) {
	if len(data) > 32 {
		return [32]byte{}, errors.New("lifxpayloads: label input exceeds 32 bytes")
	}

	dl := NewDeviceLabelTrunc(data)

	return dl, nil
}

// NewDeviceLabelTrunc builds a DeviceLabel from a byte slice, silently
// dropping anything past the 32nd byte instead of failing.
func NewDeviceLabelTrunc(data []byte) DeviceLabel {
	var dl DeviceLabel

	loops := len(data)

	if loops > 32 {
		loops = 32
	}

	for i := 0; i < loops; i++ {
		dl[i] = data[i]
	}

	return dl
}

// DeviceEchoPayload is the fixed 64-byte body carried by both EchoRequest
// and EchoResponse; Ping round-trips one of these and compares it byte for
// byte.
type DeviceEchoPayload [64]byte

// NewDeviceEchoPayloadTrunc builds a DeviceEchoPayload from a byte slice,
// truncating anything beyond its 64-byte capacity.
func NewDeviceEchoPayloadTrunc(payload []byte) DeviceEchoPayload {
	var dep DeviceEchoPayload

	loops := len(payload)

	if depLen := len(dep); loops > depLen {
		loops = depLen
	}

	for i := 0; i < loops; i++ {
		dep[i] = payload[i]
	}

	return dep
}

// DeviceStateService answers DeviceGetService with the service a device
// exposes and the port it listens on; a port of 0 means that service is
// temporarily unavailable.
type DeviceStateService struct {
	// Service identifies the transport the device exposes: 1 means UDP.
	Service uint8

	// Port is the device's listening port. Clients should bind their own
	// socket to 56700 for compatibility with older firmware.
	Port uint32
}

func (dss *DeviceStateService) String() string {
	if dss == nil {
		return "<*lifxpayloads.DeviceStateService(nil)>"
	}

	return fmt.Sprintf("<*lifxpayloads.DeviceStateService(%p): Service: %d, Port: %d>", dss, dss.Service, dss.Port)
}

// MarshalPacket implements lifxprotocol.Marshaler.
func (dss *DeviceStateService) MarshalPacket(order binary.ByteOrder) ([]byte, error) {
	if order != binary.LittleEndian {
		return nil, ErrUnsupportedByteOrder
	}

	rec, err := deviceStateServiceSchema.NewNamed(map[string]interface{}{
		"service": uint64(dss.Service),
		"port":    uint64(dss.Port),
	})
	if err != nil {
		return nil, err
	}

	return rec.Encode()
}

// UnmarshalPacket implements lifxprotocol.Unmarshaler.
func (dss *DeviceStateService) UnmarshalPacket(data io.Reader, order binary.ByteOrder) error {
	if order != binary.LittleEndian {
		return ErrUnsupportedByteOrder
	}

	buf := make([]byte, deviceStateServiceSchema.TotalBytes())
	if _, err := io.ReadFull(data, buf); err != nil {
		return err
	}

	rec, err := deviceStateServiceSchema.Decode(buf)
	if err != nil {
		return err
	}

	dss.Service = uint8(rec.MustGet("service").(uint64))
	dss.Port = uint32(rec.MustGet("port").(uint64))

	return nil
}

// DeviceStateHostInfo answers DeviceGetHostInfo with signal strength and
// traffic counters for the device's host MCU.
type DeviceStateHostInfo struct {
	// Signal is the radio receive signal strength in milliwatts.
	Signal float32

	// Tx counts bytes transmitted since the device last powered on.
	Tx uint32

	// Rx counts bytes received since the device last powered on.
	Rx uint32

	Reserved int16
}

func (dshi *DeviceStateHostInfo) String() string {
	if dshi == nil {
		return "<*lifxpayloads.DeviceStateHostInfo(nil)>"
	}

	sigFloatStr := strconv.FormatFloat(float64(dshi.Signal), 'f', -1, 64)

	return fmt.Sprintf(
		"<*lifxpayloads.DeviceStateHostInfo(%p): Signal: %s, Tx: %d, Rx: %d>",
		dshi, sigFloatStr, dshi.Tx, dshi.Rx,
	)
}

// MarshalPacket implements lifxprotocol.Marshaler.
func (dshi *DeviceStateHostInfo) MarshalPacket(order binary.ByteOrder) ([]byte, error) {
	if order != binary.LittleEndian {
		return nil, ErrUnsupportedByteOrder
	}

	rec, err := deviceStateHostInfoSchema.NewNamed(map[string]interface{}{
		"signal":   float64(dshi.Signal),
		"tx":       uint64(dshi.Tx),
		"rx":       uint64(dshi.Rx),
		"reserved": int64(dshi.Reserved),
	})
	if err != nil {
		return nil, err
	}

	return rec.Encode()
}

// UnmarshalPacket implements lifxprotocol.Unmarshaler.
func (dshi *DeviceStateHostInfo) UnmarshalPacket(data io.Reader, order binary.ByteOrder) error {
	if order != binary.LittleEndian {
		return ErrUnsupportedByteOrder
	}

	buf := make([]byte, deviceStateHostInfoSchema.TotalBytes())
	if _, err := io.ReadFull(data, buf); err != nil {
		return err
	}

	rec, err := deviceStateHostInfoSchema.Decode(buf)
	if err != nil {
		return err
	}

	dshi.Signal = float32(rec.MustGet("signal").(float64))
	dshi.Tx = uint32(rec.MustGet("tx").(uint64))
	dshi.Rx = uint32(rec.MustGet("rx").(uint64))
	dshi.Reserved = int16(rec.MustGet("reserved").(int64))

	return nil
}

// DeviceStateHostFirmware answers DeviceGetHostFirmware with the host MCU's
// firmware build time and version.
type DeviceStateHostFirmware struct {
	// Build is the firmware build timestamp, nanoseconds since the Unix epoch.
	Build uint64

	Reserved uint64

	// Version is the host MCU's firmware version.
	Version uint32
}

func (dshf *DeviceStateHostFirmware) String() string {
	if dshf == nil {
		return "<*lifxpayloads.DeviceStateHostFirmware(nil)>"
	}

	build := nsecEpochToTime(dshf.Build)

	return fmt.Sprintf(
		"<*lifxpayloads.DeviceStateHostFirmware(%p): Build: %s, Version: %d (%d.%d)>",
		dshf, build, dshf.Version, dshf.Major(), dshf.Minor(),
	)
}

// Major returns the major component of the firmware Version field.
func (dshf *DeviceStateHostFirmware) Major() uint16 { return uint16(dshf.Version >> 16) }

// Minor returns the minor component of the firmware Version field.
func (dshf *DeviceStateHostFirmware) Minor() uint16 { return uint16(dshf.Version & 0xff) }

// MarshalPacket implements lifxprotocol.Marshaler.
func (dshf *DeviceStateHostFirmware) MarshalPacket(order binary.ByteOrder) ([]byte, error) {
	if order != binary.LittleEndian {
		return nil, ErrUnsupportedByteOrder
	}

	rec, err := deviceStateHostFirmwareSchema.NewNamed(map[string]interface{}{
		"build":    dshf.Build,
		"reserved": dshf.Reserved,
		"version":  uint64(dshf.Version),
	})
	if err != nil {
		return nil, err
	}

	return rec.Encode()
}

// UnmarshalPacket implements lifxprotocol.Unmarshaler.
func (dshf *DeviceStateHostFirmware) UnmarshalPacket(data io.Reader, order binary.ByteOrder) error {
	if order != binary.LittleEndian {
		return ErrUnsupportedByteOrder
	}

	buf := make([]byte, deviceStateHostFirmwareSchema.TotalBytes())
	if _, err := io.ReadFull(data, buf); err != nil {
		return err
	}

	rec, err := deviceStateHostFirmwareSchema.Decode(buf)
	if err != nil {
		return err
	}

	dshf.Build = rec.MustGet("build").(uint64)
	dshf.Reserved = rec.MustGet("reserved").(uint64)
	dshf.Version = uint32(rec.MustGet("version").(uint64))

	return nil
}

// DeviceStateWifiInfo answers DeviceGetWifiInfo with signal strength and
// traffic counters for the device's wifi subsystem.
type DeviceStateWifiInfo struct {
	// Signal is the radio receive signal strength in milliwatts.
	Signal float32

	// Tx counts bytes transmitted since the device last powered on.
	Tx uint32

	// Rx counts bytes received since the device last powered on.
	Rx uint32

	Reserved int16
}

func (dswi *DeviceStateWifiInfo) String() string {
	if dswi == nil {
		return "<*lifxpayloads.DeviceStateWifiInfo(nil)>"
	}

	sigFloatStr := strconv.FormatFloat(float64(dswi.Signal), 'f', -1, 64)

	return fmt.Sprintf(
		"<*lifxpayloads.DeviceStateWifiInfo(%p): Signal: %s, Tx: %d, Rx: %d>",
		dswi, sigFloatStr, dswi.Tx, dswi.Rx,
	)
}

// MarshalPacket implements lifxprotocol.Marshaler.
func (dswi *DeviceStateWifiInfo) MarshalPacket(order binary.ByteOrder) ([]byte, error) {
	if order != binary.LittleEndian {
		return nil, ErrUnsupportedByteOrder
	}

	rec, err := deviceStateWifiInfoSchema.NewNamed(map[string]interface{}{
		"signal":   float64(dswi.Signal),
		"tx":       uint64(dswi.Tx),
		"rx":       uint64(dswi.Rx),
		"reserved": int64(dswi.Reserved),
	})
	if err != nil {
		return nil, err
	}

	return rec.Encode()
}

// UnmarshalPacket implements lifxprotocol.Unmarshaler.
func (dswi *DeviceStateWifiInfo) UnmarshalPacket(data io.Reader, order binary.ByteOrder) error {
	if order != binary.LittleEndian {
		return ErrUnsupportedByteOrder
	}

	buf := make([]byte, deviceStateWifiInfoSchema.TotalBytes())
	if _, err := io.ReadFull(data, buf); err != nil {
		return err
	}

	rec, err := deviceStateWifiInfoSchema.Decode(buf)
	if err != nil {
		return err
	}

	dswi.Signal = float32(rec.MustGet("signal").(float64))
	dswi.Tx = uint32(rec.MustGet("tx").(uint64))
	dswi.Rx = uint32(rec.MustGet("rx").(uint64))
	dswi.Reserved = int16(rec.MustGet("reserved").(int64))

	return nil
}

// DeviceStateWifiFirmware answers GetWifiFirmware with the wifi subsystem's
// firmware build time and version.
type DeviceStateWifiFirmware struct {
	// Build is the firmware build timestamp, nanoseconds since the Unix epoch.
	Build uint64

	Reserved uint64

	// Version is the wifi subsystem's firmware version.
	Version uint32
}

func (dswf *DeviceStateWifiFirmware) String() string {
	if dswf == nil {
		return "<*lifxpayloads.DeviceStateWifiFirmware(nil)>"
	}

	build := nsecEpochToTime(dswf.Build)

	return fmt.Sprintf(
		"<*lifxpayloads.DeviceStateWifiFirmware(%p): Build: %s, Version: %d (%d.%d)>",
		dswf, build, dswf.Version, dswf.Major(), dswf.Minor(),
	)
}

// Major returns the major component of the firmware Version field.
func (dswf *DeviceStateWifiFirmware) Major() uint16 { return uint16(dswf.Version >> 16) }

// Minor returns the minor component of the firmware Version field.
func (dswf *DeviceStateWifiFirmware) Minor() uint16 { return uint16(dswf.Version & 0xff) }

// MarshalPacket implements lifxprotocol.Marshaler.
func (dswf *DeviceStateWifiFirmware) MarshalPacket(order binary.ByteOrder) ([]byte, error) {
	if order != binary.LittleEndian {
		return nil, ErrUnsupportedByteOrder
	}

	rec, err := deviceStateWifiFirmwareSchema.NewNamed(map[string]interface{}{
		"build":    dswf.Build,
		"reserved": dswf.Reserved,
		"version":  uint64(dswf.Version),
	})
	if err != nil {
		return nil, err
	}

	return rec.Encode()
}

// UnmarshalPacket implements lifxprotocol.Unmarshaler.
func (dswf *DeviceStateWifiFirmware) UnmarshalPacket(data io.Reader, order binary.ByteOrder) error {
	if order != binary.LittleEndian {
		return ErrUnsupportedByteOrder
	}

	buf := make([]byte, deviceStateWifiFirmwareSchema.TotalBytes())
	if _, err := io.ReadFull(data, buf); err != nil {
		return err
	}

	rec, err := deviceStateWifiFirmwareSchema.Decode(buf)
	if err != nil {
		return err
	}

	dswf.Build = rec.MustGet("build").(uint64)
	dswf.Reserved = rec.MustGet("reserved").(uint64)
	dswf.Version = uint32(rec.MustGet("version").(uint64))

	return nil
}

// DeviceStatePower carries a device's power level: sent in reply to
// GetPower, and expected as the body of a SetPower request.
type DeviceStatePower struct {
	Level uint16
}

func (dsp *DeviceStatePower) String() string {
	if dsp == nil {
		return "<*lifxpayloads.DeviceStatePower(nil)>"
	}

	return fmt.Sprintf("<*lifxpayloads.DeviceStatePower(%p): Level: %d>", dsp, dsp.Level)
}

// MarshalPacket implements lifxprotocol.Marshaler.
func (dsp *DeviceStatePower) MarshalPacket(order binary.ByteOrder) ([]byte, error) {
	if order != binary.LittleEndian {
		return nil, ErrUnsupportedByteOrder
	}

	rec, err := deviceStatePowerSchema.NewNamed(map[string]interface{}{
		"level": uint64(dsp.Level),
	})
	if err != nil {
		return nil, err
	}

	return rec.Encode()
}

// UnmarshalPacket implements lifxprotocol.Unmarshaler.
func (dsp *DeviceStatePower) UnmarshalPacket(data io.Reader, order binary.ByteOrder) error {
	if order != binary.LittleEndian {
		return ErrUnsupportedByteOrder
	}

	buf := make([]byte, deviceStatePowerSchema.TotalBytes())
	if _, err := io.ReadFull(data, buf); err != nil {
		return err
	}

	rec, err := deviceStatePowerSchema.Decode(buf)
	if err != nil {
		return err
	}

	dsp.Level = uint16(rec.MustGet("level").(uint64))

	return nil
}

// DeviceStateLabel carries a device's label: sent back for GetLabel, and
// sent by the client as the body of a SetLabel request.
type DeviceStateLabel struct {
	Label DeviceLabel
}

// String renders Label with its trailing NUL padding stripped.
func (dsl *DeviceStateLabel) String() string {
	if dsl == nil {
		return "<*lifxpayloads.DeviceStateLabel(nil)>"
	}

	label := string(bytes.Trim(dsl.Label[0:], "\x00"))

	return fmt.Sprintf("<*lifxpayloads.DeviceStateLabel(%p): Label: \"%s\">", dsl, label)
}

// MarshalPacket implements lifxprotocol.Marshaler.
func (dsl *DeviceStateLabel) MarshalPacket(order binary.ByteOrder) ([]byte, error) {
	if order != binary.LittleEndian {
		return nil, ErrUnsupportedByteOrder
	}

	rec, err := deviceStateLabelSchema.NewNamed(map[string]interface{}{
		"label": dsl.Label[:],
	})
	if err != nil {
		return nil, err
	}

	return rec.Encode()
}

// UnmarshalPacket implements lifxprotocol.Unmarshaler.
func (dsl *DeviceStateLabel) UnmarshalPacket(data io.Reader, order binary.ByteOrder) error {
	if order != binary.LittleEndian {
		return ErrUnsupportedByteOrder
	}

	buf := make([]byte, deviceStateLabelSchema.TotalBytes())
	if _, err := io.ReadFull(data, buf); err != nil {
		return err
	}

	rec, err := deviceStateLabelSchema.Decode(buf)
	if err != nil {
		return err
	}

	dsl.Label = NewDeviceLabelTrunc(rec.MustGet("label").([]byte))

	return nil
}

// DeviceStateVersion is sent with StateVersion and identifies a device's
// vendor, product, and hardware version.
type DeviceStateVersion struct {
	// Vendor is the vendor ID.
	Vendor uint32

	// Product is the product ID.
	Product uint32

	// Version is the hardware version.
	Version uint32
}

func (dsv *DeviceStateVersion) String() string {
	if dsv == nil {
		return "<*lifxpayloads.DeviceStateVersion(nil)>"
	}

	return fmt.Sprintf(
		"<*lifxpayloads.DeviceStateVersion(%p): Vendor: %d, Product: %d, Version: %d>",
		dsv, dsv.Vendor, dsv.Product, dsv.Version,
	)
}

// Major returns the major component of the Version field.
func (dsv *DeviceStateVersion) Major() uint16 { return uint16(dsv.Version >> 16) }

// Minor returns the minor component of the Version field.
func (dsv *DeviceStateVersion) Minor() uint16 { return uint16(dsv.Version & 0xff) }

// MarshalPacket implements lifxprotocol.Marshaler.
func (dsv *DeviceStateVersion) MarshalPacket(order binary.ByteOrder) ([]byte, error) {
	if order != binary.LittleEndian {
		return nil, ErrUnsupportedByteOrder
	}

	rec, err := deviceStateVersionSchema.NewNamed(map[string]interface{}{
		"vendor":  uint64(dsv.Vendor),
		"product": uint64(dsv.Product),
		"version": uint64(dsv.Version),
	})
	if err != nil {
		return nil, err
	}

	return rec.Encode()
}

// UnmarshalPacket implements lifxprotocol.Unmarshaler.
func (dsv *DeviceStateVersion) UnmarshalPacket(data io.Reader, order binary.ByteOrder) error {
	if order != binary.LittleEndian {
		return ErrUnsupportedByteOrder
	}

	buf := make([]byte, deviceStateVersionSchema.TotalBytes())
	if _, err := io.ReadFull(data, buf); err != nil {
		return err
	}

	rec, err := deviceStateVersionSchema.Decode(buf)
	if err != nil {
		return err
	}

	dsv.Vendor = uint32(rec.MustGet("vendor").(uint64))
	dsv.Product = uint32(rec.MustGet("product").(uint64))
	dsv.Version = uint32(rec.MustGet("version").(uint64))

	return nil
}

// DeviceStateInfo is the StateInfo payload: the device's current clock,
// uptime, and last downtime.
type DeviceStateInfo struct {
	// Time is the device's current time, nanoseconds since the Unix epoch.
	Time uint64

	// Uptime is the duration since the device last powered on, in nanoseconds.
	Uptime uint64

	// Downtime is the duration of the last power-off, in nanoseconds (accurate to ~5s).
	Downtime uint64
}

func (dsi *DeviceStateInfo) String() string {
	if dsi == nil {
		return "<*lifxpayloads.DeviceStateInfo(nil)>"
	}

	time := nsecEpochToTime(dsi.Time)

	return fmt.Sprintf(
		"<*lifxpayloads.DeviceStateInfo(%p): Time: %s, Uptime: %d, Downtime: %d>",
		dsi, time, dsi.Uptime, dsi.Downtime,
	)
}

// MarshalPacket implements lifxprotocol.Marshaler.
func (dsi *DeviceStateInfo) MarshalPacket(order binary.ByteOrder) ([]byte, error) {
	if order != binary.LittleEndian {
		return nil, ErrUnsupportedByteOrder
	}

	rec, err := deviceStateInfoSchema.NewNamed(map[string]interface{}{
		"time":     dsi.Time,
		"uptime":   dsi.Uptime,
		"downtime": dsi.Downtime,
	})
	if err != nil {
		return nil, err
	}

	return rec.Encode()
}

// UnmarshalPacket implements lifxprotocol.Unmarshaler.
func (dsi *DeviceStateInfo) UnmarshalPacket(data io.Reader, order binary.ByteOrder) error {
	if order != binary.LittleEndian {
		return ErrUnsupportedByteOrder
	}

	buf := make([]byte, deviceStateInfoSchema.TotalBytes())
	if _, err := io.ReadFull(data, buf); err != nil {
		return err
	}

	rec, err := deviceStateInfoSchema.Decode(buf)
	if err != nil {
		return err
	}

	dsi.Time = rec.MustGet("time").(uint64)
	dsi.Uptime = rec.MustGet("uptime").(uint64)
	dsi.Downtime = rec.MustGet("downtime").(uint64)

	return nil
}

// DeviceStateLocation is the StateLocation payload: a device's location
// grouping identifier, its human-readable label, and when it last changed.
type DeviceStateLocation struct {
	Location  [16]byte
	Label     DeviceLabel
	UpdatedAt uint64
}

func (dsl *DeviceStateLocation) String() string {
	if dsl == nil {
		return "<*lifxpayloads.DeviceStateLocation(nil)>"
	}

	loc := string(bytes.Trim(dsl.Location[0:], "\x00"))
	label := string(bytes.Trim(dsl.Label[0:], "\x00"))

	return fmt.Sprintf(
		"<*lifxpayloads.DeviceStateLocation(%p): Location: \"%s\", Label: \"%s\", UpdatedAt: %d>",
		dsl, loc, label, dsl.UpdatedAt,
	)
}

// MarshalPacket implements lifxprotocol.Marshaler.
func (dsl *DeviceStateLocation) MarshalPacket(order binary.ByteOrder) ([]byte, error) {
	if order != binary.LittleEndian {
		return nil, ErrUnsupportedByteOrder
	}

	rec, err := deviceStateLocationSchema.NewNamed(map[string]interface{}{
		"location":   dsl.Location[:],
		"label":      dsl.Label[:],
		"updated_at": dsl.UpdatedAt,
	})
	if err != nil {
		return nil, err
	}

	return rec.Encode()
}

// UnmarshalPacket implements lifxprotocol.Unmarshaler.
func (dsl *DeviceStateLocation) UnmarshalPacket(data io.Reader, order binary.ByteOrder) error {
	if order != binary.LittleEndian {
		return ErrUnsupportedByteOrder
	}

	buf := make([]byte, deviceStateLocationSchema.TotalBytes())
	if _, err := io.ReadFull(data, buf); err != nil {
		return err
	}

	rec, err := deviceStateLocationSchema.Decode(buf)
	if err != nil {
		return err
	}

	copy(dsl.Location[:], rec.MustGet("location").([]byte))
	dsl.Label = NewDeviceLabelTrunc(rec.MustGet("label").([]byte))
	dsl.UpdatedAt = rec.MustGet("updated_at").(uint64)

	return nil
}

// DeviceStateGroup is the StateGroup payload: a device's group membership
// identifier, its human-readable label, and when it last changed.
type DeviceStateGroup struct {
	Group     [16]byte
	Label     DeviceLabel
	UpdatedAt uint64
}

func (dsg *DeviceStateGroup) String() string {
	if dsg == nil {
		return "<*lifxpayloads.DeviceStateGroup(nil)>"
	}

	group := string(bytes.Trim(dsg.Group[0:], "\x00"))
	label := string(bytes.Trim(dsg.Label[0:], "\x00"))

	return fmt.Sprintf(
		"<*lifxpayloads.DeviceStateGroup(%p): Group: \"%s\", Label: \"%s\", UpdatedAt: %d>",
		dsg, group, label, dsg.UpdatedAt,
	)
}

// MarshalPacket implements lifxprotocol.Marshaler.
func (dsg *DeviceStateGroup) MarshalPacket(order binary.ByteOrder) ([]byte, error) {
	if order != binary.LittleEndian {
		return nil, ErrUnsupportedByteOrder
	}

	rec, err := deviceStateGroupSchema.NewNamed(map[string]interface{}{
		"group":      dsg.Group[:],
		"label":      dsg.Label[:],
		"updated_at": dsg.UpdatedAt,
	})
	if err != nil {
		return nil, err
	}

	return rec.Encode()
}

// UnmarshalPacket implements lifxprotocol.Unmarshaler.
func (dsg *DeviceStateGroup) UnmarshalPacket(data io.Reader, order binary.ByteOrder) error {
	if order != binary.LittleEndian {
		return ErrUnsupportedByteOrder
	}

	buf := make([]byte, deviceStateGroupSchema.TotalBytes())
	if _, err := io.ReadFull(data, buf); err != nil {
		return err
	}

	rec, err := deviceStateGroupSchema.Decode(buf)
	if err != nil {
		return err
	}

	copy(dsg.Group[:], rec.MustGet("group").([]byte))
	dsg.Label = NewDeviceLabelTrunc(rec.MustGet("label").([]byte))
	dsg.UpdatedAt = rec.MustGet("updated_at").(uint64)

	return nil
}

// DeviceEcho is the shared payload shape for EchoRequest and EchoResponse:
// whatever bytes the caller sends are expected back unchanged.
type DeviceEcho struct {
	Payload DeviceEchoPayload
}

func (de *DeviceEcho) String() string {
	if de == nil {
		return "<*lifxpayloads.DeviceEcho(nil)>"
	}

	payload := string(bytes.Trim(de.Payload[0:], "\x00"))

	return fmt.Sprintf(
		"<*lifxpayloads.DeviceEcho(%p): Payload: \"%s\">",
		de, payload,
	)
}

// MarshalPacket implements lifxprotocol.Marshaler.
func (de *DeviceEcho) MarshalPacket(order binary.ByteOrder) ([]byte, error) {
	if order != binary.LittleEndian {
		return nil, ErrUnsupportedByteOrder
	}

	rec, err := deviceEchoSchema.NewNamed(map[string]interface{}{
		"payload": de.Payload[:],
	})
	if err != nil {
		return nil, err
	}

	return rec.Encode()
}

// UnmarshalPacket implements lifxprotocol.Unmarshaler.
func (de *DeviceEcho) UnmarshalPacket(data io.Reader, order binary.ByteOrder) error {
	if order != binary.LittleEndian {
		return ErrUnsupportedByteOrder
	}

	buf := make([]byte, deviceEchoSchema.TotalBytes())
	if _, err := io.ReadFull(data, buf); err != nil {
		return err
	}

	rec, err := deviceEchoSchema.Decode(buf)
	if err != nil {
		return err
	}

	de.Payload = NewDeviceEchoPayloadTrunc(rec.MustGet("payload").([]byte))

	return nil
}
