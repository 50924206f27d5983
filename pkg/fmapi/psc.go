// Copyright (C) 2024 Jackrabbit Founders LLC.
//
// SPDX-License-Identifier: Apache-2.0

// Physical Switch command set payloads.

package fmapi

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/JackrabbitLabs/fmapi/pkg/stderror"
)

const (
	pscIDRspLen       = 93
	pscPortInfoLen    = 16
	pscPortRspHdrLen  = 4
	pscPortCtrlReqLen = 2
	pscCfgReqLen      = 8
	pscCfgRspLen      = 4
)

// PSCIDRsp is the Identify Switch Device response payload, CXL 2.0 v1.0
// Table 89. ActivePorts and ActiveVCSs are bitmaps with one bit per ID.
type PSCIDRsp struct {
	IngressPort uint8
	NumPorts    uint8
	NumVCSs     uint8
	ActivePorts [MaxPorts / 8]byte
	ActiveVCSs  [MaxVCS / 8]byte
	NumVPPBs    uint16
	ActiveVPPBs uint16
	NumDecoders uint8
}

var _ Object = &PSCIDRsp{}

// SetActivePort marks a physical port ID active in the bitmap.
func (o *PSCIDRsp) SetActivePort(id uint8) {
	o.ActivePorts[id/8] |= 1 << (id % 8)
}

// IsActivePort reports whether a physical port ID is active.
func (o *PSCIDRsp) IsActivePort(id uint8) bool {
	return o.ActivePorts[id/8]&(1<<(id%8)) != 0
}

// SetActiveVCS marks a VCS ID active in the bitmap.
func (o *PSCIDRsp) SetActiveVCS(id uint8) {
	o.ActiveVCSs[id/8] |= 1 << (id % 8)
}

// IsActiveVCS reports whether a VCS ID is active.
func (o *PSCIDRsp) IsActiveVCS(id uint8) bool {
	return o.ActiveVCSs[id/8]&(1<<(id%8)) != 0
}

func (o *PSCIDRsp) Kind() ObjectKind {
	return KindPSCIDRsp
}

func (o *PSCIDRsp) Size() int {
	return pscIDRspLen
}

func (o *PSCIDRsp) Marshal(dst []byte) (int, error) {
	if len(dst) < pscIDRspLen {
		return 0, stderror.ErrNoEnoughData
	}
	dst[0] = o.IngressPort
	dst[1] = 0
	dst[2] = o.NumPorts
	dst[3] = o.NumVCSs
	copy(dst[4:36], o.ActivePorts[:])
	copy(dst[36:68], o.ActiveVCSs[:])
	binary.LittleEndian.PutUint16(dst[68:70], o.NumVPPBs)
	binary.LittleEndian.PutUint16(dst[70:72], o.ActiveVPPBs)
	dst[72] = o.NumDecoders
	for i := 73; i < pscIDRspLen; i++ {
		dst[i] = 0
	}
	return pscIDRspLen, nil
}

func (o *PSCIDRsp) Unmarshal(src []byte) (int, error) {
	if len(src) < pscIDRspLen {
		return 0, stderror.ErrNoEnoughData
	}
	o.IngressPort = src[0]
	o.NumPorts = src[2]
	o.NumVCSs = src[3]
	copy(o.ActivePorts[:], src[4:36])
	copy(o.ActiveVCSs[:], src[36:68])
	o.NumVPPBs = binary.LittleEndian.Uint16(src[68:70])
	o.ActiveVPPBs = binary.LittleEndian.Uint16(src[70:72])
	o.NumDecoders = src[72]
	return pscIDRspLen, nil
}

func (o *PSCIDRsp) String() string {
	return fmt.Sprintf("ingress=%d ports=%d vcss=%d vppbs=%d activeVPPBs=%d decoders=%d",
		o.IngressPort, o.NumPorts, o.NumVCSs, o.NumVPPBs, o.ActiveVPPBs, o.NumDecoders)
}

// PSCPortReq is the Get Physical Port State request payload, CXL 2.0 v1.0
// Table 90. It lists the port IDs to query.
type PSCPortReq struct {
	Ports []uint8
}

var _ Object = &PSCPortReq{}

func (o *PSCPortReq) Kind() ObjectKind {
	return KindPSCPortReq
}

func (o *PSCPortReq) Size() int {
	return 1 + len(o.Ports)
}

func (o *PSCPortReq) Marshal(dst []byte) (int, error) {
	if len(o.Ports) > 255 {
		return 0, stderror.ErrOutOfRange
	}
	if len(dst) < o.Size() {
		return 0, stderror.ErrNoEnoughData
	}
	dst[0] = uint8(len(o.Ports))
	copy(dst[1:], o.Ports)
	return o.Size(), nil
}

func (o *PSCPortReq) Unmarshal(src []byte) (int, error) {
	if len(src) < 1 {
		return 0, stderror.ErrNoEnoughData
	}
	num := int(src[0])
	if len(src) < 1+num {
		return 0, stderror.ErrNoEnoughData
	}
	o.Ports = make([]uint8, num)
	copy(o.Ports, src[1:1+num])
	return 1 + num, nil
}

func (o *PSCPortReq) String() string {
	return fmt.Sprintf("num=%d ports=%v", len(o.Ports), o.Ports)
}

// PSCPortInfo describes one physical port, CXL 2.0 v1.0 Table 92.
type PSCPortInfo struct {
	PPID         uint8
	State        PortState
	DV           DeviceMode
	DT           DeviceType
	CV           CXLVersion
	MaxLinkWidth uint8
	NegLinkWidth NegotiatedWidth
	Speeds       SupportedSpeeds
	MaxLinkSpeed LinkSpeed
	CurLinkSpeed LinkSpeed
	LTSSM        LTSSMState
	LaneNum      uint8
	LaneReversal bool
	PERST        bool
	Present      bool
	PowerControl bool
	NumLD        uint8
}

var _ Object = &PSCPortInfo{}

func (o *PSCPortInfo) Kind() ObjectKind {
	return KindPSCPortInfo
}

func (o *PSCPortInfo) Size() int {
	return pscPortInfoLen
}

func (o *PSCPortInfo) Marshal(dst []byte) (int, error) {
	if len(dst) < pscPortInfoLen {
		return 0, stderror.ErrNoEnoughData
	}
	dst[0] = o.PPID
	dst[1] = uint8(o.State)
	dst[2] = uint8(o.DV)
	dst[3] = 0
	dst[4] = uint8(o.DT)
	dst[5] = uint8(o.CV)
	dst[6] = o.MaxLinkWidth
	dst[7] = uint8(o.NegLinkWidth)
	dst[8] = uint8(o.Speeds)
	dst[9] = uint8(o.MaxLinkSpeed)
	dst[10] = uint8(o.CurLinkSpeed)
	dst[11] = uint8(o.LTSSM)
	dst[12] = o.LaneNum
	dst[13] = 0
	if o.LaneReversal {
		dst[13] |= 0x01
	}
	if o.PERST {
		dst[13] |= 0x02
	}
	if o.Present {
		dst[13] |= 0x04
	}
	if o.PowerControl {
		dst[13] |= 0x08
	}
	dst[14] = 0
	dst[15] = o.NumLD
	return pscPortInfoLen, nil
}

func (o *PSCPortInfo) Unmarshal(src []byte) (int, error) {
	if len(src) < pscPortInfoLen {
		return 0, stderror.ErrNoEnoughData
	}
	o.PPID = src[0]
	o.State = PortState(src[1])
	o.DV = DeviceMode(src[2])
	o.DT = DeviceType(src[4])
	o.CV = CXLVersion(src[5])
	o.MaxLinkWidth = src[6]
	o.NegLinkWidth = NegotiatedWidth(src[7])
	o.Speeds = SupportedSpeeds(src[8])
	o.MaxLinkSpeed = LinkSpeed(src[9])
	o.CurLinkSpeed = LinkSpeed(src[10])
	o.LTSSM = LTSSMState(src[11])
	o.LaneNum = src[12]
	o.LaneReversal = src[13]&0x01 != 0
	o.PERST = src[13]&0x02 != 0
	o.Present = src[13]&0x04 != 0
	o.PowerControl = src[13]&0x08 != 0
	o.NumLD = src[15]
	return pscPortInfoLen, nil
}

func (o *PSCPortInfo) String() string {
	return fmt.Sprintf("ppid=%d state=%q dt=%q ltssm=%q width=%q speed=%q lds=%d",
		o.PPID, o.State.String(), o.DT.String(), o.LTSSM.String(),
		o.NegLinkWidth.String(), o.CurLinkSpeed.String(), o.NumLD)
}

// PSCPortRsp is the Get Physical Port State response payload, CXL 2.0 v1.0
// Table 91. It carries one PSCPortInfo block per requested port.
type PSCPortRsp struct {
	Ports []PSCPortInfo
}

var _ Object = &PSCPortRsp{}

func (o *PSCPortRsp) Kind() ObjectKind {
	return KindPSCPortRsp
}

func (o *PSCPortRsp) Size() int {
	return pscPortRspHdrLen + len(o.Ports)*pscPortInfoLen
}

func (o *PSCPortRsp) Marshal(dst []byte) (int, error) {
	if len(o.Ports) > 255 {
		return 0, stderror.ErrOutOfRange
	}
	if len(dst) < o.Size() {
		return 0, stderror.ErrNoEnoughData
	}
	dst[0] = uint8(len(o.Ports))
	dst[1] = 0
	dst[2] = 0
	dst[3] = 0
	off := pscPortRspHdrLen
	for i := range o.Ports {
		n, err := o.Ports[i].Marshal(dst[off:])
		if err != nil {
			return 0, err
		}
		off += n
	}
	return off, nil
}

func (o *PSCPortRsp) Unmarshal(src []byte) (int, error) {
	if len(src) < pscPortRspHdrLen {
		return 0, stderror.ErrNoEnoughData
	}
	num := int(src[0])
	o.Ports = make([]PSCPortInfo, num)
	off := pscPortRspHdrLen
	for i := 0; i < num; i++ {
		n, err := o.Ports[i].Unmarshal(src[off:])
		if err != nil {
			return 0, err
		}
		off += n
	}
	return off, nil
}

func (o *PSCPortRsp) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "num=%d", len(o.Ports))
	for i := range o.Ports {
		fmt.Fprintf(&sb, " [%s]", o.Ports[i].String())
	}
	return sb.String()
}

// PSCPortCtrlReq is the Physical Port Control request payload, CXL 2.0 v1.0
// Table 93.
type PSCPortCtrlReq struct {
	PPID   uint8
	Opcode PortOpcode
}

var _ Object = &PSCPortCtrlReq{}

func (o *PSCPortCtrlReq) Kind() ObjectKind {
	return KindPSCPortCtrlReq
}

func (o *PSCPortCtrlReq) Size() int {
	return pscPortCtrlReqLen
}

func (o *PSCPortCtrlReq) Marshal(dst []byte) (int, error) {
	if len(dst) < pscPortCtrlReqLen {
		return 0, stderror.ErrNoEnoughData
	}
	dst[0] = o.PPID
	dst[1] = uint8(o.Opcode)
	return pscPortCtrlReqLen, nil
}

func (o *PSCPortCtrlReq) Unmarshal(src []byte) (int, error) {
	if len(src) < pscPortCtrlReqLen {
		return 0, stderror.ErrNoEnoughData
	}
	o.PPID = src[0]
	o.Opcode = PortOpcode(src[1])
	return pscPortCtrlReqLen, nil
}

func (o *PSCPortCtrlReq) String() string {
	return fmt.Sprintf("ppid=%d op=%q", o.PPID, o.Opcode.String())
}

// PSCCfgReq is the Send PPB CXL.io Configuration request payload,
// CXL 2.0 v1.0 Table 94. Register and ExtRegister address a configuration
// space DWORD, FDBE holds the first DWORD byte enables, and Data is only
// meaningful for writes.
type PSCCfgReq struct {
	PPID        uint8
	Register    uint8
	ExtRegister uint8
	FDBE        uint8
	Type        CfgType
	Data        [4]byte
}

var _ Object = &PSCCfgReq{}

func (o *PSCCfgReq) Kind() ObjectKind {
	return KindPSCCfgReq
}

func (o *PSCCfgReq) Size() int {
	return pscCfgReqLen
}

func (o *PSCCfgReq) Marshal(dst []byte) (int, error) {
	if len(dst) < pscCfgReqLen {
		return 0, stderror.ErrNoEnoughData
	}
	dst[0] = o.PPID
	dst[1] = o.Register
	dst[2] = o.FDBE<<4&0xF0 | o.ExtRegister&0x0F
	dst[3] = uint8(o.Type) << 7 & 0x80
	copy(dst[4:8], o.Data[:])
	return pscCfgReqLen, nil
}

func (o *PSCCfgReq) Unmarshal(src []byte) (int, error) {
	if len(src) < pscCfgReqLen {
		return 0, stderror.ErrNoEnoughData
	}
	o.PPID = src[0]
	o.Register = src[1]
	o.ExtRegister = src[2] & 0x0F
	o.FDBE = src[2] >> 4 & 0x0F
	o.Type = CfgType(src[3] >> 7 & 0x01)
	copy(o.Data[:], src[4:8])
	return pscCfgReqLen, nil
}

func (o *PSCCfgReq) String() string {
	return fmt.Sprintf("ppid=%d reg=0x%02x ext=0x%x fdbe=0x%x type=%q data=%x",
		o.PPID, o.Register, o.ExtRegister, o.FDBE, o.Type.String(), o.Data)
}

// PSCCfgRsp is the Send PPB CXL.io Configuration response payload,
// CXL 2.0 v1.0 Table 95. Data is only meaningful for reads.
type PSCCfgRsp struct {
	Data [4]byte
}

var _ Object = &PSCCfgRsp{}

func (o *PSCCfgRsp) Kind() ObjectKind {
	return KindPSCCfgRsp
}

func (o *PSCCfgRsp) Size() int {
	return pscCfgRspLen
}

func (o *PSCCfgRsp) Marshal(dst []byte) (int, error) {
	if len(dst) < pscCfgRspLen {
		return 0, stderror.ErrNoEnoughData
	}
	copy(dst[0:4], o.Data[:])
	return pscCfgRspLen, nil
}

func (o *PSCCfgRsp) Unmarshal(src []byte) (int, error) {
	if len(src) < pscCfgRspLen {
		return 0, stderror.ErrNoEnoughData
	}
	copy(o.Data[:], src[0:4])
	return pscCfgRspLen, nil
}

func (o *PSCCfgRsp) String() string {
	return fmt.Sprintf("data=%x", o.Data)
}
