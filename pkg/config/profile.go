// Copyright (C) 2024 Jackrabbit Founders LLC.
//
// SPDX-License-Identifier: Apache-2.0

// Package config loads TOML device profiles. A profile describes the
// identity of a CXL switch so tooling can produce the Identify and Identify
// Switch Device responses a real device would return.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/JackrabbitLabs/fmapi/pkg/fmapi"
	"github.com/JackrabbitLabs/fmapi/pkg/stderror"
)

// Profile is a device profile.
type Profile struct {
	Device DeviceConfig `toml:"device"`
	Switch SwitchConfig `toml:"switch"`
	Log    LogConfig    `toml:"log"`
}

// DeviceConfig holds the PCIe identity of the switch.
type DeviceConfig struct {
	VendorID          uint16 `toml:"vendor_id"`
	DeviceID          uint16 `toml:"device_id"`
	SubsystemVendorID uint16 `toml:"subsystem_vendor_id"`
	SubsystemID       uint16 `toml:"subsystem_id"`
	SerialNumber      uint64 `toml:"serial_number"`

	// MaxMsgSize is the log2 of the maximum supported message size.
	MaxMsgSize uint8 `toml:"max_msg_size"`
}

// SwitchConfig holds the switch topology.
type SwitchConfig struct {
	IngressPort uint8   `toml:"ingress_port"`
	NumPorts    uint8   `toml:"num_ports"`
	NumVCSs     uint8   `toml:"num_vcss"`
	ActivePorts []uint8 `toml:"active_ports"`
	ActiveVCSs  []uint8 `toml:"active_vcss"`
	NumVPPBs    uint16  `toml:"num_vppbs"`
	ActiveVPPBs uint16  `toml:"active_vppbs"`
	NumDecoders uint8   `toml:"num_decoders"`
}

// LogConfig holds the logging options.
type LogConfig struct {
	Level string `toml:"level"`
}

// LoadProfile reads and validates a device profile file.
func LoadProfile(path string) (*Profile, error) {
	if _, err := os.Stat(path); err != nil {
		if stderror.IsNotExist(err) {
			return nil, fmt.Errorf("device profile %s: %w", path, stderror.ErrNotFound)
		}
		return nil, fmt.Errorf(stderror.LoadProfileFailedErr, err)
	}
	p := &Profile{}
	if _, err := toml.DecodeFile(path, p); err != nil {
		return nil, stderror.WrapErrorWithType(fmt.Errorf(stderror.ParseProfileFailedErr, err), stderror.CONFIG_ERROR)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks the profile for internal consistency.
func (p *Profile) Validate() error {
	if p.Switch.NumPorts == 0 {
		return fmt.Errorf("profile has no ports: %w", stderror.ErrInvalidArgument)
	}
	if len(p.Switch.ActivePorts) > int(p.Switch.NumPorts) {
		return fmt.Errorf("profile lists more active ports than ports: %w", stderror.ErrInvalidArgument)
	}
	if len(p.Switch.ActiveVCSs) > int(p.Switch.NumVCSs) {
		return fmt.Errorf("profile lists more active VCSs than VCSs: %w", stderror.ErrInvalidArgument)
	}
	if p.Log.Level != "" {
		if _, err := logLevel(p.Log.Level); err != nil {
			return err
		}
	}
	return nil
}

// LogLevel returns the configured log level, or info when unset.
func (p *Profile) LogLevel() (string, error) {
	if p.Log.Level == "" {
		return "info", nil
	}
	if _, err := logLevel(p.Log.Level); err != nil {
		return "", err
	}
	return p.Log.Level, nil
}

func logLevel(s string) (string, error) {
	switch s {
	case "trace", "debug", "info", "warning", "error", "fatal":
		return s, nil
	}
	return "", fmt.Errorf("unknown log level %q: %w", s, stderror.ErrInvalidArgument)
}

// IdentityRsp builds the Identify response payload the profiled device
// would return.
func (p *Profile) IdentityRsp() *fmapi.ISCIDRsp {
	return &fmapi.ISCIDRsp{
		VendorID:          p.Device.VendorID,
		DeviceID:          p.Device.DeviceID,
		SubsystemVendorID: p.Device.SubsystemVendorID,
		SubsystemID:       p.Device.SubsystemID,
		SerialNumber:      p.Device.SerialNumber,
		MaxMsgSize:        p.Device.MaxMsgSize,
	}
}

// SwitchRsp builds the Identify Switch Device response payload the profiled
// device would return.
func (p *Profile) SwitchRsp() *fmapi.PSCIDRsp {
	rsp := &fmapi.PSCIDRsp{
		IngressPort: p.Switch.IngressPort,
		NumPorts:    p.Switch.NumPorts,
		NumVCSs:     p.Switch.NumVCSs,
		NumVPPBs:    p.Switch.NumVPPBs,
		ActiveVPPBs: p.Switch.ActiveVPPBs,
		NumDecoders: p.Switch.NumDecoders,
	}
	for _, id := range p.Switch.ActivePorts {
		rsp.SetActivePort(id)
	}
	for _, id := range p.Switch.ActiveVCSs {
		rsp.SetActiveVCS(id)
	}
	return rsp
}
