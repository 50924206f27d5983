// Copyright (C) 2024 Jackrabbit Founders LLC.
//
// SPDX-License-Identifier: Apache-2.0

// MLD Port command set payloads.

package fmapi

import (
	"encoding/binary"
	"fmt"

	"github.com/JackrabbitLabs/fmapi/pkg/stderror"
)

const (
	mpcTMCReqLen = 5
	mpcTMCRspLen = 5
	mpcCfgReqLen = 12
	mpcCfgRspLen = 4
	mpcMemReqLen = 16
	mpcMemRspLen = 4
)

// MPCTMCReq is the Tunnel Management Command request payload, CXL 2.0 v1.0
// Table 105. Msg is an opaque serialized message addressed to the MLD behind
// the port; its wire length field counts the MCTP message type byte, so the
// field holds len(Msg)+1.
type MPCTMCReq struct {
	PPID uint8
	Type uint8
	Msg  []byte
}

var _ Object = &MPCTMCReq{}

func (o *MPCTMCReq) Kind() ObjectKind {
	return KindMPCTMCReq
}

func (o *MPCTMCReq) Size() int {
	return mpcTMCReqLen + len(o.Msg)
}

func (o *MPCTMCReq) Marshal(dst []byte) (int, error) {
	if len(o.Msg) > MaxTunnelLen {
		return 0, stderror.ErrOutOfRange
	}
	if len(dst) < o.Size() {
		return 0, stderror.ErrNoEnoughData
	}
	dst[0] = o.PPID
	dst[1] = 0
	binary.LittleEndian.PutUint16(dst[2:4], uint16(len(o.Msg)+1))
	dst[4] = o.Type
	copy(dst[5:], o.Msg)
	return o.Size(), nil
}

func (o *MPCTMCReq) Unmarshal(src []byte) (int, error) {
	if len(src) < mpcTMCReqLen {
		return 0, stderror.ErrNoEnoughData
	}
	o.PPID = src[0]
	length := int(binary.LittleEndian.Uint16(src[2:4]))
	if length < 1 {
		return 0, stderror.ErrOutOfRange
	}
	length--
	if len(src) < mpcTMCReqLen+length {
		return 0, stderror.ErrNoEnoughData
	}
	o.Type = src[4]
	o.Msg = make([]byte, length)
	copy(o.Msg, src[5:5+length])
	return mpcTMCReqLen + length, nil
}

func (o *MPCTMCReq) String() string {
	return fmt.Sprintf("ppid=%d type=0x%02x len=%d", o.PPID, o.Type, len(o.Msg))
}

// MPCTMCRsp is the Tunnel Management Command response payload, CXL 2.0 v1.0
// Table 106. As in the request, the wire length field counts the MCTP
// message type byte.
type MPCTMCRsp struct {
	Type uint8
	Msg  []byte
}

var _ Object = &MPCTMCRsp{}

func (o *MPCTMCRsp) Kind() ObjectKind {
	return KindMPCTMCRsp
}

func (o *MPCTMCRsp) Size() int {
	return mpcTMCRspLen + len(o.Msg)
}

func (o *MPCTMCRsp) Marshal(dst []byte) (int, error) {
	if len(o.Msg) > MaxTunnelLen {
		return 0, stderror.ErrOutOfRange
	}
	if len(dst) < o.Size() {
		return 0, stderror.ErrNoEnoughData
	}
	binary.LittleEndian.PutUint16(dst[0:2], uint16(len(o.Msg)+1))
	dst[2] = 0
	dst[3] = 0
	dst[4] = o.Type
	copy(dst[5:], o.Msg)
	return o.Size(), nil
}

func (o *MPCTMCRsp) Unmarshal(src []byte) (int, error) {
	if len(src) < mpcTMCRspLen {
		return 0, stderror.ErrNoEnoughData
	}
	length := int(binary.LittleEndian.Uint16(src[0:2]))
	if length < 1 {
		return 0, stderror.ErrOutOfRange
	}
	length--
	if len(src) < mpcTMCRspLen+length {
		return 0, stderror.ErrNoEnoughData
	}
	o.Type = src[4]
	o.Msg = make([]byte, length)
	copy(o.Msg, src[5:5+length])
	return mpcTMCRspLen + length, nil
}

func (o *MPCTMCRsp) String() string {
	return fmt.Sprintf("type=0x%02x len=%d", o.Type, len(o.Msg))
}

// MPCCfgReq is the Send LD CXL.io Configuration request payload,
// CXL 2.0 v1.0 Table 107. It mirrors PSCCfgReq with the target LD added.
type MPCCfgReq struct {
	PPID        uint8
	Register    uint8
	ExtRegister uint8
	FDBE        uint8
	Type        CfgType
	LDID        uint16
	Data        [4]byte
}

var _ Object = &MPCCfgReq{}

func (o *MPCCfgReq) Kind() ObjectKind {
	return KindMPCCfgReq
}

func (o *MPCCfgReq) Size() int {
	return mpcCfgReqLen
}

func (o *MPCCfgReq) Marshal(dst []byte) (int, error) {
	if len(dst) < mpcCfgReqLen {
		return 0, stderror.ErrNoEnoughData
	}
	dst[0] = o.PPID
	dst[1] = o.Register
	dst[2] = o.FDBE<<4&0xF0 | o.ExtRegister&0x0F
	dst[3] = uint8(o.Type) << 7 & 0x80
	binary.LittleEndian.PutUint16(dst[4:6], o.LDID)
	dst[6] = 0
	dst[7] = 0
	copy(dst[8:12], o.Data[:])
	return mpcCfgReqLen, nil
}

func (o *MPCCfgReq) Unmarshal(src []byte) (int, error) {
	if len(src) < mpcCfgReqLen {
		return 0, stderror.ErrNoEnoughData
	}
	o.PPID = src[0]
	o.Register = src[1]
	o.ExtRegister = src[2] & 0x0F
	o.FDBE = src[2] >> 4 & 0x0F
	o.Type = CfgType(src[3] >> 7 & 0x01)
	o.LDID = binary.LittleEndian.Uint16(src[4:6])
	copy(o.Data[:], src[8:12])
	return mpcCfgReqLen, nil
}

func (o *MPCCfgReq) String() string {
	return fmt.Sprintf("ppid=%d ldid=0x%04x reg=0x%02x ext=0x%x fdbe=0x%x type=%q data=%x",
		o.PPID, o.LDID, o.Register, o.ExtRegister, o.FDBE, o.Type.String(), o.Data)
}

// MPCCfgRsp is the Send LD CXL.io Configuration response payload,
// CXL 2.0 v1.0 Table 108. Data is only meaningful for reads.
type MPCCfgRsp struct {
	Data [4]byte
}

var _ Object = &MPCCfgRsp{}

func (o *MPCCfgRsp) Kind() ObjectKind {
	return KindMPCCfgRsp
}

func (o *MPCCfgRsp) Size() int {
	return mpcCfgRspLen
}

func (o *MPCCfgRsp) Marshal(dst []byte) (int, error) {
	if len(dst) < mpcCfgRspLen {
		return 0, stderror.ErrNoEnoughData
	}
	copy(dst[0:4], o.Data[:])
	return mpcCfgRspLen, nil
}

func (o *MPCCfgRsp) Unmarshal(src []byte) (int, error) {
	if len(src) < mpcCfgRspLen {
		return 0, stderror.ErrNoEnoughData
	}
	copy(o.Data[:], src[0:4])
	return mpcCfgRspLen, nil
}

func (o *MPCCfgRsp) String() string {
	return fmt.Sprintf("data=%x", o.Data)
}

// MPCMemReq is the Send LD CXL.io Memory request payload, CXL 2.0 v1.0
// Table 109. Data travels on the wire for reads as well as writes; its
// length is the transfer length, at most MemTransferLen. FDBE and LDBE are
// the first and last DWORD byte enables.
type MPCMemReq struct {
	PPID   uint8
	FDBE   uint8
	LDBE   uint8
	Type   CfgType
	LDID   uint16
	Offset uint64
	Data   []byte
}

var _ Object = &MPCMemReq{}

func (o *MPCMemReq) Kind() ObjectKind {
	return KindMPCMemReq
}

func (o *MPCMemReq) Size() int {
	return mpcMemReqLen + len(o.Data)
}

func (o *MPCMemReq) Marshal(dst []byte) (int, error) {
	if len(o.Data) > MemTransferLen {
		return 0, stderror.ErrOutOfRange
	}
	if len(dst) < o.Size() {
		return 0, stderror.ErrNoEnoughData
	}
	dst[0] = o.PPID
	dst[1] = 0
	dst[2] = o.FDBE << 4 & 0xF0
	dst[3] = uint8(o.Type)<<7&0x80 | o.LDBE&0x0F
	binary.LittleEndian.PutUint16(dst[4:6], o.LDID)
	binary.LittleEndian.PutUint16(dst[6:8], uint16(len(o.Data)))
	binary.LittleEndian.PutUint64(dst[8:16], o.Offset)
	copy(dst[16:], o.Data)
	return o.Size(), nil
}

func (o *MPCMemReq) Unmarshal(src []byte) (int, error) {
	if len(src) < mpcMemReqLen {
		return 0, stderror.ErrNoEnoughData
	}
	o.PPID = src[0]
	o.FDBE = src[2] >> 4 & 0x0F
	o.Type = CfgType(src[3] >> 7 & 0x01)
	o.LDBE = src[3] & 0x0F
	o.LDID = binary.LittleEndian.Uint16(src[4:6])
	length := int(binary.LittleEndian.Uint16(src[6:8]))
	o.Offset = binary.LittleEndian.Uint64(src[8:16])
	if length > MemTransferLen {
		return 0, stderror.ErrOutOfRange
	}
	if len(src) < mpcMemReqLen+length {
		return 0, stderror.ErrNoEnoughData
	}
	o.Data = make([]byte, length)
	copy(o.Data, src[16:16+length])
	return mpcMemReqLen + length, nil
}

func (o *MPCMemReq) String() string {
	return fmt.Sprintf("ppid=%d ldid=0x%04x type=%q offset=0x%016x len=%d fdbe=0x%x ldbe=0x%x",
		o.PPID, o.LDID, o.Type.String(), o.Offset, len(o.Data), o.FDBE, o.LDBE)
}

// MPCMemRsp is the Send LD CXL.io Memory response payload, CXL 2.0 v1.0
// Table 110. Data is only meaningful for reads.
type MPCMemRsp struct {
	Data []byte
}

var _ Object = &MPCMemRsp{}

func (o *MPCMemRsp) Kind() ObjectKind {
	return KindMPCMemRsp
}

func (o *MPCMemRsp) Size() int {
	return mpcMemRspLen + len(o.Data)
}

func (o *MPCMemRsp) Marshal(dst []byte) (int, error) {
	if len(o.Data) > MemTransferLen {
		return 0, stderror.ErrOutOfRange
	}
	if len(dst) < o.Size() {
		return 0, stderror.ErrNoEnoughData
	}
	binary.LittleEndian.PutUint16(dst[0:2], uint16(len(o.Data)))
	dst[2] = 0
	dst[3] = 0
	copy(dst[4:], o.Data)
	return o.Size(), nil
}

func (o *MPCMemRsp) Unmarshal(src []byte) (int, error) {
	if len(src) < mpcMemRspLen {
		return 0, stderror.ErrNoEnoughData
	}
	length := int(binary.LittleEndian.Uint16(src[0:2]))
	if length > MemTransferLen {
		return 0, stderror.ErrOutOfRange
	}
	if len(src) < mpcMemRspLen+length {
		return 0, stderror.ErrNoEnoughData
	}
	o.Data = make([]byte, length)
	copy(o.Data, src[4:4+length])
	return mpcMemRspLen + length, nil
}

func (o *MPCMemRsp) String() string {
	return fmt.Sprintf("len=%d", len(o.Data))
}
