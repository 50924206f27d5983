// Copyright (C) 2024 Jackrabbit Founders LLC.
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/JackrabbitLabs/fmapi/pkg/stderror"
)

const sampleProfile = `
[device]
vendor_id = 0x1AF4
device_id = 0x1234
subsystem_vendor_id = 0x1AF4
subsystem_id = 0x0001
serial_number = 0xDEADBEEF
max_msg_size = 12

[switch]
ingress_port = 0
num_ports = 8
num_vcss = 2
active_ports = [0, 1, 2, 7]
active_vcss = [0, 1]
num_vppbs = 16
active_vppbs = 4
num_decoders = 1

[log]
level = "debug"
`

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write profile file failed: %v", err)
	}
	return path
}

func TestLoadProfile(t *testing.T) {
	p, err := LoadProfile(writeProfile(t, sampleProfile))
	if err != nil {
		t.Fatalf("LoadProfile() failed: %v", err)
	}
	if p.Device.VendorID != 0x1AF4 || p.Device.DeviceID != 0x1234 {
		t.Errorf("device identity = %04x:%04x, want 1af4:1234", p.Device.VendorID, p.Device.DeviceID)
	}
	if p.Device.SerialNumber != 0xDEADBEEF {
		t.Errorf("serial number = %#x, want 0xdeadbeef", p.Device.SerialNumber)
	}
	if p.Switch.NumPorts != 8 || p.Switch.NumVCSs != 2 {
		t.Errorf("topology = %d ports %d VCSs, want 8 and 2", p.Switch.NumPorts, p.Switch.NumVCSs)
	}
	level, err := p.LogLevel()
	if err != nil {
		t.Fatalf("LogLevel() failed: %v", err)
	}
	if level != "debug" {
		t.Errorf("log level = %q, want debug", level)
	}
}

func TestLoadProfileNotExist(t *testing.T) {
	_, err := LoadProfile(filepath.Join(t.TempDir(), "no-such.toml"))
	if !errors.Is(err, stderror.ErrNotFound) {
		t.Errorf("LoadProfile() on missing file: got %v, want %v", err, stderror.ErrNotFound)
	}
}

func TestLoadProfileInvalid(t *testing.T) {
	testcases := []struct {
		name    string
		content string
	}{
		{
			"malformed TOML",
			"[device\nvendor_id = 1",
		},
		{
			"no ports",
			"[switch]\nnum_ports = 0",
		},
		{
			"too many active ports",
			"[switch]\nnum_ports = 2\nactive_ports = [0, 1, 2]",
		},
		{
			"too many active VCSs",
			"[switch]\nnum_ports = 2\nnum_vcss = 1\nactive_vcss = [0, 1]",
		},
		{
			"bad log level",
			"[switch]\nnum_ports = 2\n[log]\nlevel = \"loud\"",
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LoadProfile(writeProfile(t, tc.content)); err == nil {
				t.Errorf("LoadProfile() returned no error")
			}
		})
	}
}

func TestProfileDefaults(t *testing.T) {
	p, err := LoadProfile(writeProfile(t, "[switch]\nnum_ports = 1"))
	if err != nil {
		t.Fatalf("LoadProfile() failed: %v", err)
	}
	level, err := p.LogLevel()
	if err != nil {
		t.Fatalf("LogLevel() failed: %v", err)
	}
	if level != "info" {
		t.Errorf("default log level = %q, want info", level)
	}
}

func TestProfileResponses(t *testing.T) {
	p, err := LoadProfile(writeProfile(t, sampleProfile))
	if err != nil {
		t.Fatalf("LoadProfile() failed: %v", err)
	}

	id := p.IdentityRsp()
	if id.VendorID != p.Device.VendorID || id.MaxMsgSize != 12 {
		t.Errorf("identity response doesn't match profile: %s", id)
	}

	sw := p.SwitchRsp()
	if sw.NumPorts != 8 || sw.NumVPPBs != 16 {
		t.Errorf("switch response doesn't match profile: %s", sw)
	}
	for _, id := range []uint8{0, 1, 2, 7} {
		if !sw.IsActivePort(id) {
			t.Errorf("port %d not marked active", id)
		}
	}
	if sw.IsActivePort(3) {
		t.Errorf("port 3 marked active")
	}
	if !sw.IsActiveVCS(1) || sw.IsActiveVCS(2) {
		t.Errorf("active VCS bitmap doesn't match profile")
	}
}

func TestParseErrorIsTyped(t *testing.T) {
	_, err := LoadProfile(writeProfile(t, "[device\nvendor_id = 1"))
	if err == nil {
		t.Fatalf("LoadProfile() on malformed TOML returned no error")
	}
	if got := stderror.GetErrorType(err); got != stderror.CONFIG_ERROR {
		t.Errorf("GetErrorType() = %v, want CONFIG_ERROR", got)
	}
}

func TestValidateTypedError(t *testing.T) {
	p := &Profile{}
	err := p.Validate()
	if !errors.Is(err, stderror.ErrInvalidArgument) {
		t.Errorf("Validate() on empty profile = %v, want ErrInvalidArgument", err)
	}
}
