// Copyright 2016 Tim Heckman. All rights reserved.
// Use of this source code is governed by the BSD 3-Clause
// license that can be found in the LICENSE file.

package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/MoritzS/licht/protocol"
	"github.com/MoritzS/licht/protocol/payloads"
)

// Light is a handle to a single device discovered on the LAN, bound to
// the Engine that discovered it. Every method sends one directed
// operation and waits for its reply or acknowledgement; none retain
// state between calls.
type Light struct {
	engine *Engine
	addr   Address
}

// Address returns the device's network address as discovered.
func (l *Light) Address() Address { return l.addr }

// wrongPayload reports a reply packet whose payload isn't the type its
// message type promised; packetComponentByType makes this impossible in
// practice, but query is generic over the catalog and cannot assert it
// at compile time.
func wrongPayload(got lifxprotocol.PacketComponent) error {
	return fmt.Errorf("dispatch: unexpected reply payload %T", got)
}

// GetHostInfo retrieves the signal strength and traffic counters for
// the device's host MCU.
func (l *Light) GetHostInfo(ctx context.Context) (*lifxpayloads.DeviceStateHostInfo, error) {
	pkt, err := l.engine.query(ctx, l.addr, lifxprotocol.DeviceGetHostInfo, lifxpayloads.Empty{}, lifxprotocol.DeviceStateHostInfo)
	if err != nil {
		return nil, err
	}
	p, ok := pkt.Payload.(*lifxpayloads.DeviceStateHostInfo)
	if !ok {
		return nil, wrongPayload(pkt.Payload)
	}
	return p, nil
}

// GetHostFirmware retrieves the host MCU's firmware build time and
// version.
func (l *Light) GetHostFirmware(ctx context.Context) (*lifxpayloads.DeviceStateHostFirmware, error) {
	pkt, err := l.engine.query(ctx, l.addr, lifxprotocol.DeviceGetHostFirmware, lifxpayloads.Empty{}, lifxprotocol.DeviceStateHostFirmware)
	if err != nil {
		return nil, err
	}
	p, ok := pkt.Payload.(*lifxpayloads.DeviceStateHostFirmware)
	if !ok {
		return nil, wrongPayload(pkt.Payload)
	}
	return p, nil
}

// GetWifiInfo retrieves the signal strength and traffic counters for
// the device's wifi subsystem.
func (l *Light) GetWifiInfo(ctx context.Context) (*lifxpayloads.DeviceStateWifiInfo, error) {
	pkt, err := l.engine.query(ctx, l.addr, lifxprotocol.DeviceGetWifiInfo, lifxpayloads.Empty{}, lifxprotocol.DeviceStateWifiInfo)
	if err != nil {
		return nil, err
	}
	p, ok := pkt.Payload.(*lifxpayloads.DeviceStateWifiInfo)
	if !ok {
		return nil, wrongPayload(pkt.Payload)
	}
	return p, nil
}

// GetWifiFirmware retrieves the wifi subsystem's firmware build time
// and version.
func (l *Light) GetWifiFirmware(ctx context.Context) (*lifxpayloads.DeviceStateWifiFirmware, error) {
	pkt, err := l.engine.query(ctx, l.addr, lifxprotocol.DeviceGetWifiFirmware, lifxpayloads.Empty{}, lifxprotocol.DeviceStateWifiFirmware)
	if err != nil {
		return nil, err
	}
	p, ok := pkt.Payload.(*lifxpayloads.DeviceStateWifiFirmware)
	if !ok {
		return nil, wrongPayload(pkt.Payload)
	}
	return p, nil
}

// GetPower retrieves the light's power state, the same level SetPower
// and PowerOn/PowerOff change.
func (l *Light) GetPower(ctx context.Context) (bool, error) {
	pkt, err := l.engine.query(ctx, l.addr, lifxprotocol.LightGetPower, lifxpayloads.Empty{}, lifxprotocol.LightStatePower)
	if err != nil {
		return false, err
	}
	p, ok := pkt.Payload.(*lifxpayloads.LightStatePower)
	if !ok {
		return false, wrongPayload(pkt.Payload)
	}
	return p.Level != 0, nil
}

// GetLabel retrieves the device's user-assigned label.
func (l *Light) GetLabel(ctx context.Context) (lifxpayloads.DeviceLabel, error) {
	pkt, err := l.engine.query(ctx, l.addr, lifxprotocol.DeviceGetLabel, lifxpayloads.Empty{}, lifxprotocol.DeviceStateLabel)
	if err != nil {
		return lifxpayloads.DeviceLabel{}, err
	}
	p, ok := pkt.Payload.(*lifxpayloads.DeviceStateLabel)
	if !ok {
		return lifxpayloads.DeviceLabel{}, wrongPayload(pkt.Payload)
	}
	return p.Label, nil
}

// GetVersion retrieves the device's vendor, product, and hardware
// version identifiers.
func (l *Light) GetVersion(ctx context.Context) (*lifxpayloads.DeviceStateVersion, error) {
	pkt, err := l.engine.query(ctx, l.addr, lifxprotocol.DeviceGetVersion, lifxpayloads.Empty{}, lifxprotocol.DeviceStateVersion)
	if err != nil {
		return nil, err
	}
	p, ok := pkt.Payload.(*lifxpayloads.DeviceStateVersion)
	if !ok {
		return nil, wrongPayload(pkt.Payload)
	}
	return p, nil
}

// GetTimes retrieves the device's current time, uptime, and last
// downtime duration.
func (l *Light) GetTimes(ctx context.Context) (*lifxpayloads.DeviceStateInfo, error) {
	pkt, err := l.engine.query(ctx, l.addr, lifxprotocol.DeviceGetInfo, lifxpayloads.Empty{}, lifxprotocol.DeviceStateInfo)
	if err != nil {
		return nil, err
	}
	p, ok := pkt.Payload.(*lifxpayloads.DeviceStateInfo)
	if !ok {
		return nil, wrongPayload(pkt.Payload)
	}
	return p, nil
}

// GetLocation retrieves the device's location grouping.
func (l *Light) GetLocation(ctx context.Context) (*lifxpayloads.DeviceStateLocation, error) {
	pkt, err := l.engine.query(ctx, l.addr, lifxprotocol.DeviceGetLocation, lifxpayloads.Empty{}, lifxprotocol.DeviceStateLocation)
	if err != nil {
		return nil, err
	}
	p, ok := pkt.Payload.(*lifxpayloads.DeviceStateLocation)
	if !ok {
		return nil, wrongPayload(pkt.Payload)
	}
	return p, nil
}

// GetGroup retrieves the device's group membership.
func (l *Light) GetGroup(ctx context.Context) (*lifxpayloads.DeviceStateGroup, error) {
	pkt, err := l.engine.query(ctx, l.addr, lifxprotocol.DeviceGetGroup, lifxpayloads.Empty{}, lifxprotocol.DeviceStateGroup)
	if err != nil {
		return nil, err
	}
	p, ok := pkt.Payload.(*lifxpayloads.DeviceStateGroup)
	if !ok {
		return nil, wrongPayload(pkt.Payload)
	}
	return p, nil
}

// GetLightState retrieves the light's full current state: color,
// power, and label in one reply.
func (l *Light) GetLightState(ctx context.Context) (*lifxpayloads.LightState, error) {
	pkt, err := l.engine.query(ctx, l.addr, lifxprotocol.LightGet, lifxpayloads.Empty{}, lifxprotocol.LightState)
	if err != nil {
		return nil, err
	}
	p, ok := pkt.Payload.(*lifxpayloads.LightState)
	if !ok {
		return nil, wrongPayload(pkt.Payload)
	}
	return p, nil
}

// Ping sends an EchoRequest and waits for a matching EchoResponse,
// verifying the device is reachable and answering.
func (l *Light) Ping(ctx context.Context) error {
	return l.engine.Ping(ctx, l.addr)
}

// SetPower sets the light's power level and transition duration, and
// waits for the device to acknowledge it.
func (l *Light) SetPower(ctx context.Context, on bool, duration time.Duration) error {
	var level uint16
	if on {
		level = 65535
	}
	payload := &lifxpayloads.LightSetPower{Level: level, Duration: duration}
	return l.engine.set(ctx, l.addr, lifxprotocol.LightSetPower, payload)
}

// SetColor sets the light's color and transition duration, and waits
// for the device to acknowledge it.
func (l *Light) SetColor(ctx context.Context, color *lifxpayloads.LightHSBK, duration time.Duration) error {
	payload := &lifxpayloads.LightSetColor{Color: color, Duration: duration}
	return l.engine.set(ctx, l.addr, lifxprotocol.LightSetColor, payload)
}

// PowerOn is SetPower(ctx, true, 0).
func (l *Light) PowerOn(ctx context.Context) error {
	return l.SetPower(ctx, true, 0)
}

// PowerOff is SetPower(ctx, false, 0).
func (l *Light) PowerOff(ctx context.Context) error {
	return l.SetPower(ctx, false, 0)
}
