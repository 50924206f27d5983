// Copyright (C) 2024 Jackrabbit Founders LLC.
//
// SPDX-License-Identifier: Apache-2.0

package fmapi

// ReqObjectKind returns the payload object kind of a request message with
// the given opcode. Opcodes whose requests carry no payload, and opcodes
// outside the grammar, map to KindNone.
func ReqObjectKind(op Opcode) ObjectKind {
	switch op {
	case OpPSCPortState:
		return KindPSCPortReq
	case OpPSCPortControl:
		return KindPSCPortCtrlReq
	case OpPSCPPBConfig:
		return KindPSCCfgReq
	case OpVSCInfo:
		return KindVSCInfoReq
	case OpVSCBind:
		return KindVSCBindReq
	case OpVSCUnbind:
		return KindVSCUnbindReq
	case OpVSCGenAER:
		return KindVSCAERReq
	case OpMPCTunnel:
		return KindMPCTMCReq
	case OpMPCConfig:
		return KindMPCCfgReq
	case OpMPCMemory:
		return KindMPCMemReq
	case OpMCCGetAlloc:
		return KindMCCAllocGetReq
	case OpMCCSetAlloc:
		return KindMCCAllocSetReq
	case OpMCCSetQoSControl:
		return KindMCCQoSCtrl
	case OpMCCGetQoSBWAlloc:
		return KindMCCQoSBWGetReq
	case OpMCCSetQoSBWAlloc:
		return KindMCCQoSBWAlloc
	case OpMCCGetQoSBWLimit:
		return KindMCCQoSBWLimitGetReq
	case OpMCCSetQoSBWLimit:
		return KindMCCQoSBWLimit
	case OpISCSetMsgLimit:
		return KindISCMsgLimit
	}
	return KindNone
}

// RspObjectKind returns the payload object kind of a response message with
// the given opcode. Opcodes whose responses carry no payload, and opcodes
// outside the grammar, map to KindNone.
func RspObjectKind(op Opcode) ObjectKind {
	switch op {
	case OpPSCIdentifySwitch:
		return KindPSCIDRsp
	case OpPSCPortState:
		return KindPSCPortRsp
	case OpPSCPPBConfig:
		return KindPSCCfgRsp
	case OpVSCInfo:
		return KindVSCInfoRsp
	case OpMPCTunnel:
		return KindMPCTMCRsp
	case OpMPCConfig:
		return KindMPCCfgRsp
	case OpMPCMemory:
		return KindMPCMemRsp
	case OpMCCInfo:
		return KindMCCInfoRsp
	case OpMCCGetAlloc:
		return KindMCCAllocGetRsp
	case OpMCCSetAlloc:
		return KindMCCAllocSetRsp
	case OpMCCGetQoSControl, OpMCCSetQoSControl:
		return KindMCCQoSCtrl
	case OpMCCQoSStatus:
		return KindMCCQoSStatRsp
	case OpMCCGetQoSBWAlloc, OpMCCSetQoSBWAlloc:
		return KindMCCQoSBWAlloc
	case OpMCCGetQoSBWLimit, OpMCCSetQoSBWLimit:
		return KindMCCQoSBWLimit
	case OpISCIdentify:
		return KindISCIDRsp
	case OpISCBgStatus:
		return KindISCBgStatus
	case OpISCGetMsgLimit, OpISCSetMsgLimit:
		return KindISCMsgLimit
	}
	return KindNone
}

// PayloadObjectKind resolves the payload object kind for a message header,
// combining the opcode with the message category.
func PayloadObjectKind(hdr *Header) ObjectKind {
	if hdr.Category == CategoryRsp {
		return RspObjectKind(hdr.Opcode)
	}
	return ReqObjectKind(hdr.Opcode)
}
