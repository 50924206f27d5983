// Copyright (C) 2024 Jackrabbit Founders LLC.
//
// SPDX-License-Identifier: Apache-2.0

package fmapi

import "fmt"

// PortState is the current state of a physical port, CXL 2.0 v1.0 Table 92.
type PortState uint8

const (
	PortDisabled     PortState = 0
	PortBindInProg   PortState = 1
	PortUnbindInProg PortState = 2
	PortDSP          PortState = 3
	PortUSP          PortState = 4
	PortReserved     PortState = 5
	PortInvalidID    PortState = 0x0F
)

func (s PortState) String() string {
	switch s {
	case PortDisabled:
		return "Disabled"
	case PortBindInProg:
		return "Bind in progress"
	case PortUnbindInProg:
		return "Unbind in progress"
	case PortDSP:
		return "DSP"
	case PortUSP:
		return "USP"
	case PortReserved:
		return "Reserved"
	case PortInvalidID:
		return "Invalid Port ID"
	}
	return fmt.Sprintf("Unknown(%d)", uint8(s))
}

// DeviceMode is the connected device CXL version field.
type DeviceMode uint8

const (
	DeviceNotCXL DeviceMode = 0
	DeviceCXL1v1 DeviceMode = 1
	DeviceCXL2v0 DeviceMode = 2
)

func (d DeviceMode) String() string {
	switch d {
	case DeviceNotCXL:
		return "Not CXL / connection disabled"
	case DeviceCXL1v1:
		return "CXL 1.1"
	case DeviceCXL2v0:
		return "CXL 2.0"
	}
	return fmt.Sprintf("Unknown(%d)", uint8(d))
}

// DeviceType classifies the device connected to a port.
type DeviceType uint8

const (
	DeviceNone     DeviceType = 0
	DevicePCIe     DeviceType = 1
	DeviceType1    DeviceType = 2
	DeviceType2    DeviceType = 3
	DeviceType3SLD DeviceType = 4
	DeviceType3MLD DeviceType = 5
	DeviceSwitch   DeviceType = 6
)

func (d DeviceType) String() string {
	switch d {
	case DeviceNone:
		return "No device detected"
	case DevicePCIe:
		return "PCIe device"
	case DeviceType1:
		return "CXL Type-1 device"
	case DeviceType2:
		return "CXL Type-2 device"
	case DeviceType3SLD:
		return "CXL Type-3 SLD"
	case DeviceType3MLD:
		return "CXL Type-3 MLD"
	case DeviceSwitch:
		return "CXL switch"
	}
	return fmt.Sprintf("Unknown(%d)", uint8(d))
}

// CXLVersion is a bitmask of CXL versions supported by a port.
type CXLVersion uint8

const (
	CXLVersion1v1 CXLVersion = 0x01
	CXLVersion2v0 CXLVersion = 0x02
)

func (v CXLVersion) String() string {
	switch v {
	case CXLVersion1v1:
		return "CXL 1.1"
	case CXLVersion2v0:
		return "CXL 2.0"
	case CXLVersion1v1 | CXLVersion2v0:
		return "CXL 1.1, CXL 2.0"
	}
	return fmt.Sprintf("Unknown(0x%02x)", uint8(v))
}

// NegotiatedWidth is the negotiated link width field, PCIe Link Status
// Register encoding.
type NegotiatedWidth uint8

const (
	WidthX1 NegotiatedWidth = 0x10
	WidthX2 NegotiatedWidth = 0x20
	WidthX4 NegotiatedWidth = 0x40
	WidthX8 NegotiatedWidth = 0x80
)

func (w NegotiatedWidth) String() string {
	switch w {
	case WidthX1:
		return "x1"
	case WidthX2:
		return "x2"
	case WidthX4:
		return "x4"
	case WidthX8:
		return "x8"
	}
	return fmt.Sprintf("Unknown(0x%02x)", uint8(w))
}

// SupportedSpeeds is a bitmask of supported link speeds, PCIe Link
// Capabilities 2 Register encoding.
type SupportedSpeeds uint8

const (
	Speed2G5 SupportedSpeeds = 0x02
	Speed5G  SupportedSpeeds = 0x04
	Speed8G  SupportedSpeeds = 0x08
	Speed16G SupportedSpeeds = 0x10
	Speed32G SupportedSpeeds = 0x20
	Speed64G SupportedSpeeds = 0x40
)

func (s SupportedSpeeds) String() string {
	names := []struct {
		bit  SupportedSpeeds
		name string
	}{
		{Speed2G5, "2.5 GT/s"},
		{Speed5G, "5 GT/s"},
		{Speed8G, "8 GT/s"},
		{Speed16G, "16 GT/s"},
		{Speed32G, "32 GT/s"},
		{Speed64G, "64 GT/s"},
	}
	out := ""
	for _, n := range names {
		if s&n.bit == 0 {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += n.name
	}
	if out == "" {
		return fmt.Sprintf("Unknown(0x%02x)", uint8(s))
	}
	return out
}

// LinkSpeed is a single negotiated link speed, PCIe Link Status Register
// encoding.
type LinkSpeed uint8

const (
	LinkSpeed2G5 LinkSpeed = 1
	LinkSpeed5G  LinkSpeed = 2
	LinkSpeed8G  LinkSpeed = 3
	LinkSpeed16G LinkSpeed = 4
	LinkSpeed32G LinkSpeed = 5
	LinkSpeed64G LinkSpeed = 6
)

func (s LinkSpeed) String() string {
	switch s {
	case LinkSpeed2G5:
		return "2.5 GT/s"
	case LinkSpeed5G:
		return "5 GT/s"
	case LinkSpeed8G:
		return "8 GT/s"
	case LinkSpeed16G:
		return "16 GT/s"
	case LinkSpeed32G:
		return "32 GT/s"
	case LinkSpeed64G:
		return "64 GT/s"
	}
	return fmt.Sprintf("Unknown(%d)", uint8(s))
}

// LTSSMState is the PCIe Link Training and Status State Machine state.
type LTSSMState uint8

const (
	LTSSMDetect   LTSSMState = 0
	LTSSMPolling  LTSSMState = 1
	LTSSMConfig   LTSSMState = 2
	LTSSMRecovery LTSSMState = 3
	LTSSML0       LTSSMState = 4
	LTSSML0s      LTSSMState = 5
	LTSSML1       LTSSMState = 6
	LTSSML2       LTSSMState = 7
	LTSSMDisabled LTSSMState = 8
	LTSSMLoopback LTSSMState = 9
	LTSSMHotReset LTSSMState = 10
)

func (s LTSSMState) String() string {
	switch s {
	case LTSSMDetect:
		return "Detect"
	case LTSSMPolling:
		return "Polling"
	case LTSSMConfig:
		return "Configuration"
	case LTSSMRecovery:
		return "Recovery"
	case LTSSML0:
		return "L0"
	case LTSSML0s:
		return "L0s"
	case LTSSML1:
		return "L1"
	case LTSSML2:
		return "L2"
	case LTSSMDisabled:
		return "Disabled"
	case LTSSMLoopback:
		return "Loopback"
	case LTSSMHotReset:
		return "Hot Reset"
	}
	return fmt.Sprintf("Unknown(%d)", uint8(s))
}

// PortOpcode selects a Physical Port Control operation, CXL 2.0 v1.0
// Table 93.
type PortOpcode uint8

const (
	PortAssertPERST   PortOpcode = 0
	PortDeassertPERST PortOpcode = 1
	PortReset         PortOpcode = 2
)

func (o PortOpcode) String() string {
	switch o {
	case PortAssertPERST:
		return "Assert PERST"
	case PortDeassertPERST:
		return "Deassert PERST"
	case PortReset:
		return "Reset PPB"
	}
	return fmt.Sprintf("Unknown(%d)", uint8(o))
}

// CfgType selects read or write for a CXL.io configuration request.
type CfgType uint8

const (
	CfgRead  CfgType = 0
	CfgWrite CfgType = 1
)

func (t CfgType) String() string {
	switch t {
	case CfgRead:
		return "Read"
	case CfgWrite:
		return "Write"
	}
	return fmt.Sprintf("Unknown(%d)", uint8(t))
}

// VCSState is the state of a virtual CXL switch, CXL 2.0 v1.0 Table 99.
type VCSState uint8

const (
	VCSDisabled VCSState = 0
	VCSEnabled  VCSState = 1
	VCSInvalid  VCSState = 0xFF
)

func (s VCSState) String() string {
	switch s {
	case VCSDisabled:
		return "Disabled"
	case VCSEnabled:
		return "Enabled"
	case VCSInvalid:
		return "Invalid VCS ID"
	}
	return fmt.Sprintf("Unknown(%d)", uint8(s))
}

// BindStatus is the binding state of a vPPB, CXL 2.0 v1.0 Table 99.
type BindStatus uint8

const (
	BindUnbound    BindStatus = 0
	BindInProgress BindStatus = 1
	BindBoundPort  BindStatus = 2
	BindBoundLD    BindStatus = 3
)

func (s BindStatus) String() string {
	switch s {
	case BindUnbound:
		return "Unbound"
	case BindInProgress:
		return "Bind or unbind in progress"
	case BindBoundPort:
		return "Bound to physical port"
	case BindBoundLD:
		return "Bound to LD"
	}
	return fmt.Sprintf("Unknown(%d)", uint8(s))
}

// UnbindOption selects how the port is left after an Unbind vPPB,
// CXL 2.0 v1.0 Table 103.
type UnbindOption uint8

const (
	UnbindWait              UnbindOption = 0
	UnbindManagedHotRemove  UnbindOption = 1
	UnbindSurpriseHotRemove UnbindOption = 2
)

func (o UnbindOption) String() string {
	switch o {
	case UnbindWait:
		return "Wait for port link down"
	case UnbindManagedHotRemove:
		return "Managed hot remove"
	case UnbindSurpriseHotRemove:
		return "Surprise hot remove"
	}
	return fmt.Sprintf("Unknown(%d)", uint8(o))
}

// MemGranularity is the memory allocation granularity of an MLD,
// CXL 2.0 v1.0 Table 111.
type MemGranularity uint8

const (
	Granularity256MB MemGranularity = 0
	Granularity512MB MemGranularity = 1
	Granularity1GB   MemGranularity = 2
)

func (g MemGranularity) String() string {
	switch g {
	case Granularity256MB:
		return "256 MB"
	case Granularity512MB:
		return "512 MB"
	case Granularity1GB:
		return "1 GB"
	}
	return fmt.Sprintf("Unknown(%d)", uint8(g))
}

// LDID of the FM itself when addressing an MLD directly.
const FMLDID = 0xFFFF
