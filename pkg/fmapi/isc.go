// Copyright (C) 2024 Jackrabbit Founders LLC.
//
// SPDX-License-Identifier: Apache-2.0

// Information and Status command set payloads.

package fmapi

import (
	"encoding/binary"
	"fmt"

	"github.com/JackrabbitLabs/fmapi/pkg/stderror"
)

const (
	iscIDRspLen    = 17
	iscBgStatusLen = 8
	iscMsgLimitLen = 1
)

// ISCIDRsp is the Identify response payload, CXL 2.0 v1.0 Table 149.
type ISCIDRsp struct {
	VendorID          uint16
	DeviceID          uint16
	SubsystemVendorID uint16
	SubsystemID       uint16
	SerialNumber      uint64

	// MaxMsgSize is the log2 of the maximum supported message size.
	MaxMsgSize uint8
}

var _ Object = &ISCIDRsp{}

func (o *ISCIDRsp) Kind() ObjectKind {
	return KindISCIDRsp
}

func (o *ISCIDRsp) Size() int {
	return iscIDRspLen
}

func (o *ISCIDRsp) Marshal(dst []byte) (int, error) {
	if len(dst) < iscIDRspLen {
		return 0, stderror.ErrNoEnoughData
	}
	binary.LittleEndian.PutUint16(dst[0:2], o.VendorID)
	binary.LittleEndian.PutUint16(dst[2:4], o.DeviceID)
	binary.LittleEndian.PutUint16(dst[4:6], o.SubsystemVendorID)
	binary.LittleEndian.PutUint16(dst[6:8], o.SubsystemID)
	binary.LittleEndian.PutUint64(dst[8:16], o.SerialNumber)
	dst[16] = o.MaxMsgSize
	return iscIDRspLen, nil
}

func (o *ISCIDRsp) Unmarshal(src []byte) (int, error) {
	if len(src) < iscIDRspLen {
		return 0, stderror.ErrNoEnoughData
	}
	o.VendorID = binary.LittleEndian.Uint16(src[0:2])
	o.DeviceID = binary.LittleEndian.Uint16(src[2:4])
	o.SubsystemVendorID = binary.LittleEndian.Uint16(src[4:6])
	o.SubsystemID = binary.LittleEndian.Uint16(src[6:8])
	o.SerialNumber = binary.LittleEndian.Uint64(src[8:16])
	o.MaxMsgSize = src[16]
	return iscIDRspLen, nil
}

func (o *ISCIDRsp) String() string {
	return fmt.Sprintf("vid=0x%04x did=0x%04x svid=0x%04x ssid=0x%04x sn=0x%016x maxMsgSize=%d",
		o.VendorID, o.DeviceID, o.SubsystemVendorID, o.SubsystemID, o.SerialNumber, o.MaxMsgSize)
}

// ISCBgStatus is the Background Operation Status response payload,
// CXL 2.0 v1.0 Table 151.
type ISCBgStatus struct {
	// PercentComplete holds 0 to 100 in the upper 7 bits of the first byte.
	PercentComplete uint8
	Running         bool
	Opcode          Opcode
	ReturnCode      ReturnCode
	ExtStatus       uint16
}

var _ Object = &ISCBgStatus{}

func (o *ISCBgStatus) Kind() ObjectKind {
	return KindISCBgStatus
}

func (o *ISCBgStatus) Size() int {
	return iscBgStatusLen
}

func (o *ISCBgStatus) Marshal(dst []byte) (int, error) {
	if len(dst) < iscBgStatusLen {
		return 0, stderror.ErrNoEnoughData
	}
	dst[0] = o.PercentComplete << 1
	if o.Running {
		dst[0] |= 0x01
	}
	dst[1] = 0
	binary.LittleEndian.PutUint16(dst[2:4], uint16(o.Opcode))
	binary.LittleEndian.PutUint16(dst[4:6], uint16(o.ReturnCode))
	binary.LittleEndian.PutUint16(dst[6:8], o.ExtStatus)
	return iscBgStatusLen, nil
}

func (o *ISCBgStatus) Unmarshal(src []byte) (int, error) {
	if len(src) < iscBgStatusLen {
		return 0, stderror.ErrNoEnoughData
	}
	o.PercentComplete = src[0] >> 1
	o.Running = src[0]&0x01 != 0
	o.Opcode = Opcode(binary.LittleEndian.Uint16(src[2:4]))
	o.ReturnCode = ReturnCode(binary.LittleEndian.Uint16(src[4:6]))
	o.ExtStatus = binary.LittleEndian.Uint16(src[6:8])
	return iscBgStatusLen, nil
}

func (o *ISCBgStatus) String() string {
	return fmt.Sprintf("op=%q running=%v complete=%d%% rc=%q ext=0x%04x",
		o.Opcode.String(), o.Running, o.PercentComplete, o.ReturnCode.String(), o.ExtStatus)
}

// ISCMsgLimit is the payload of the Get and Set Response Message Limit
// commands. Limit is the log2 of the largest response message the component
// will generate.
type ISCMsgLimit struct {
	Limit uint8
}

var _ Object = &ISCMsgLimit{}

func (o *ISCMsgLimit) Kind() ObjectKind {
	return KindISCMsgLimit
}

func (o *ISCMsgLimit) Size() int {
	return iscMsgLimitLen
}

func (o *ISCMsgLimit) Marshal(dst []byte) (int, error) {
	if len(dst) < iscMsgLimitLen {
		return 0, stderror.ErrNoEnoughData
	}
	dst[0] = o.Limit
	return iscMsgLimitLen, nil
}

func (o *ISCMsgLimit) Unmarshal(src []byte) (int, error) {
	if len(src) < iscMsgLimitLen {
		return 0, stderror.ErrNoEnoughData
	}
	o.Limit = src[0]
	return iscMsgLimitLen, nil
}

func (o *ISCMsgLimit) String() string {
	return fmt.Sprintf("limit=%d", o.Limit)
}
