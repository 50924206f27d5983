// Copyright (C) 2024 Jackrabbit Founders LLC.
//
// SPDX-License-Identifier: Apache-2.0

package fmapi

import "fmt"

// Protocol-wide limits. The CXL 2.0 FM API uses 8-bit port and VCS
// identifiers, so a switch has at most 256 of each.
const (
	// MaxPorts is the maximum number of physical ports in a switch.
	MaxPorts = 256

	// MaxVCS is the maximum number of virtual CXL switches.
	MaxVCS = 256

	// MaxVPPBs is the maximum number of virtual PPBs per VCS.
	MaxVPPBs = MaxPorts

	// MaxVCSPerRsp is the maximum number of VCS info blocks returned in a
	// single Get VCS Info response.
	MaxVCSPerRsp = 7

	// MaxLDs is the maximum number of logical devices supported by an MLD.
	MaxLDs = 16

	// MemTransferLen is the maximum data payload of a Send LD CXL.io Memory
	// request, CXL 2.0 v1.0 Table 108.
	MemTransferLen = 4096

	// TLPHeaderLen is the length of a PCIe TLP header in bytes.
	TLPHeaderLen = 32

	// MaxMsgLen is the maximum length of a serialized message
	// (header + payload).
	MaxMsgLen = 8192

	// MaxPayloadLen is the maximum length of a message payload.
	MaxPayloadLen = MaxMsgLen - HeaderLen

	// MaxTunnelLen is the maximum length of the management command carried
	// inside a Tunnel Management Command, after the MCTP type byte.
	MaxTunnelLen = MaxPayloadLen - mpcTMCReqLen
)

// MCTPTypeCXLCCI is the MCTP message type byte for a CXL CCI message, the
// payload type carried by the Tunnel Management Command.
const MCTPTypeCXLCCI = 0x08

// MessageCategory is the type of an FM API message, CXL 2.0 v1.0 Table 84.
type MessageCategory uint8

const (
	CategoryReq MessageCategory = 0
	CategoryRsp MessageCategory = 1
)

func (c MessageCategory) String() string {
	switch c {
	case CategoryReq:
		return "Request"
	case CategoryRsp:
		return "Response"
	}
	return fmt.Sprintf("Unknown(%d)", uint8(c))
}

// Opcode names an FM API operation, CXL 2.0 v1.0 Table 205. The upper byte
// groups operations into command sets: 0x00 Information and Status (ISC),
// 0x51 Physical Switch (PSC), 0x52 Virtual Switch (VSC), 0x53 MLD Port (MPC),
// 0x54 MLD Component (MCC).
type Opcode uint16

const (
	OpISCIdentify    Opcode = 0x0001
	OpISCBgStatus    Opcode = 0x0002
	OpISCGetMsgLimit Opcode = 0x0003
	OpISCSetMsgLimit Opcode = 0x0004

	OpPSCIdentifySwitch Opcode = 0x5100
	OpPSCPortState      Opcode = 0x5101
	OpPSCPortControl    Opcode = 0x5102
	OpPSCPPBConfig      Opcode = 0x5103

	OpVSCInfo   Opcode = 0x5200
	OpVSCBind   Opcode = 0x5201
	OpVSCUnbind Opcode = 0x5202
	OpVSCGenAER Opcode = 0x5203

	OpMPCTunnel Opcode = 0x5300
	OpMPCConfig Opcode = 0x5301
	OpMPCMemory Opcode = 0x5302

	OpMCCInfo          Opcode = 0x5400
	OpMCCGetAlloc      Opcode = 0x5401
	OpMCCSetAlloc      Opcode = 0x5402
	OpMCCGetQoSControl Opcode = 0x5403
	OpMCCSetQoSControl Opcode = 0x5404
	OpMCCQoSStatus     Opcode = 0x5405
	OpMCCGetQoSBWAlloc Opcode = 0x5406
	OpMCCSetQoSBWAlloc Opcode = 0x5407
	OpMCCGetQoSBWLimit Opcode = 0x5408
	OpMCCSetQoSBWLimit Opcode = 0x5409
)

func (op Opcode) String() string {
	switch op {
	case OpISCIdentify:
		return "Identify"
	case OpISCBgStatus:
		return "Background Operation Status"
	case OpISCGetMsgLimit:
		return "Get Response Message Limit"
	case OpISCSetMsgLimit:
		return "Set Response Message Limit"
	case OpPSCIdentifySwitch:
		return "Identify Switch Device"
	case OpPSCPortState:
		return "Get Physical Port State"
	case OpPSCPortControl:
		return "Physical Port Control"
	case OpPSCPPBConfig:
		return "Send PPB CXL.io Configuration Request"
	case OpVSCInfo:
		return "Get Virtual CXL Switch Info"
	case OpVSCBind:
		return "Bind vPPB"
	case OpVSCUnbind:
		return "Unbind vPPB"
	case OpVSCGenAER:
		return "Generate AER Event"
	case OpMPCTunnel:
		return "Tunnel Management Command"
	case OpMPCConfig:
		return "Send LD CXL.io Configuration Request"
	case OpMPCMemory:
		return "Send LD CXL.io Memory Request"
	case OpMCCInfo:
		return "Get LD Info"
	case OpMCCGetAlloc:
		return "Get LD Allocations"
	case OpMCCSetAlloc:
		return "Set LD Allocations"
	case OpMCCGetQoSControl:
		return "Get QoS Control"
	case OpMCCSetQoSControl:
		return "Set QoS Control"
	case OpMCCQoSStatus:
		return "Get QoS Status"
	case OpMCCGetQoSBWAlloc:
		return "Get QoS Allocated BW"
	case OpMCCSetQoSBWAlloc:
		return "Set QoS Allocated BW"
	case OpMCCGetQoSBWLimit:
		return "Get QoS BW Limit"
	case OpMCCSetQoSBWLimit:
		return "Set QoS BW Limit"
	}
	return fmt.Sprintf("Unknown(0x%04x)", uint16(op))
}

// ReturnCode is an FM API command return code, CXL 2.0 v1.0 Table 150.
// Return codes are payload data: the codec round-trips them and never turns
// them into Go errors.
type ReturnCode uint16

const (
	RCSuccess              ReturnCode = 0x0000
	RCBackgroundOpStarted  ReturnCode = 0x0001
	RCInvalidInput         ReturnCode = 0x0002
	RCUnsupported          ReturnCode = 0x0003
	RCInternalError        ReturnCode = 0x0004
	RCRetryRequired        ReturnCode = 0x0005
	RCBusy                 ReturnCode = 0x0006
	RCMediaDisabled        ReturnCode = 0x0007
	RCFWTransferInProgress ReturnCode = 0x0008
	RCFWTransferOutOfOrder ReturnCode = 0x0009
	RCFWAuthFailed         ReturnCode = 0x000A
	RCFWInvalidSlot        ReturnCode = 0x000B
	RCFWActivationRollback ReturnCode = 0x000C
	RCFWActivationReset    ReturnCode = 0x000D
	RCInvalidHandle        ReturnCode = 0x000E
	RCInvalidPhysAddr      ReturnCode = 0x000F
	RCPoisonLimitReached   ReturnCode = 0x0010
	RCMediaFailure         ReturnCode = 0x0011
	RCAborted              ReturnCode = 0x0012
	RCInvalidSecurityState ReturnCode = 0x0013
	RCIncorrectPassphrase  ReturnCode = 0x0014
	RCUnsupportedMailbox   ReturnCode = 0x0015
	RCInvalidPayloadLen    ReturnCode = 0x0016
)

func (rc ReturnCode) String() string {
	switch rc {
	case RCSuccess:
		return "Success"
	case RCBackgroundOpStarted:
		return "Background operation started"
	case RCInvalidInput:
		return "Invalid input"
	case RCUnsupported:
		return "Unsupported"
	case RCInternalError:
		return "Internal error"
	case RCRetryRequired:
		return "Retry required"
	case RCBusy:
		return "Busy"
	case RCMediaDisabled:
		return "Media disabled"
	case RCFWTransferInProgress:
		return "FW transfer in progress"
	case RCFWTransferOutOfOrder:
		return "FW transfer out of order"
	case RCFWAuthFailed:
		return "FW authentication failed"
	case RCFWInvalidSlot:
		return "FW invalid slot"
	case RCFWActivationRollback:
		return "FW activation failed, FW rolled back"
	case RCFWActivationReset:
		return "FW activation failed, reset requested"
	case RCInvalidHandle:
		return "Invalid handle"
	case RCInvalidPhysAddr:
		return "Invalid physical address"
	case RCPoisonLimitReached:
		return "Inject poison limit reached"
	case RCMediaFailure:
		return "Media failure"
	case RCAborted:
		return "Aborted"
	case RCInvalidSecurityState:
		return "Invalid security state"
	case RCIncorrectPassphrase:
		return "Incorrect passphrase"
	case RCUnsupportedMailbox:
		return "Unsupported mailbox"
	case RCInvalidPayloadLen:
		return "Invalid payload length"
	}
	return fmt.Sprintf("Unknown(0x%04x)", uint16(rc))
}

// ObjectKind names one of the payload and sub-structure shapes defined by the
// object grammar. It exists for serialization dispatch and is not an
// enumeration defined by the CXL FM API itself.
type ObjectKind uint8

const (
	KindNone ObjectKind = iota
	KindHeader
	KindPSCIDRsp
	KindPSCPortReq
	KindPSCPortInfo
	KindPSCPortRsp
	KindPSCPortCtrlReq
	KindPSCCfgReq
	KindPSCCfgRsp
	KindVSCInfoReq
	KindVSCPPBStatBlk
	KindVSCInfoBlk
	KindVSCInfoRsp
	KindVSCBindReq
	KindVSCUnbindReq
	KindVSCAERReq
	KindMPCTMCReq
	KindMPCTMCRsp
	KindMPCCfgReq
	KindMPCCfgRsp
	KindMPCMemReq
	KindMPCMemRsp
	KindMCCInfoRsp
	KindMCCAllocBlk
	KindMCCAllocGetReq
	KindMCCAllocGetRsp
	KindMCCAllocSetReq
	KindMCCAllocSetRsp
	KindMCCQoSCtrl
	KindMCCQoSStatRsp
	KindMCCQoSBWGetReq
	KindMCCQoSBWAlloc
	KindMCCQoSBWLimitGetReq
	KindMCCQoSBWLimit
	KindISCIDRsp
	KindISCMsgLimit
	KindISCBgStatus
	kindMax
)

func (k ObjectKind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindHeader:
		return "Header"
	case KindPSCIDRsp:
		return "PSCIDRsp"
	case KindPSCPortReq:
		return "PSCPortReq"
	case KindPSCPortInfo:
		return "PSCPortInfo"
	case KindPSCPortRsp:
		return "PSCPortRsp"
	case KindPSCPortCtrlReq:
		return "PSCPortCtrlReq"
	case KindPSCCfgReq:
		return "PSCCfgReq"
	case KindPSCCfgRsp:
		return "PSCCfgRsp"
	case KindVSCInfoReq:
		return "VSCInfoReq"
	case KindVSCPPBStatBlk:
		return "VSCPPBStatBlk"
	case KindVSCInfoBlk:
		return "VSCInfoBlk"
	case KindVSCInfoRsp:
		return "VSCInfoRsp"
	case KindVSCBindReq:
		return "VSCBindReq"
	case KindVSCUnbindReq:
		return "VSCUnbindReq"
	case KindVSCAERReq:
		return "VSCAERReq"
	case KindMPCTMCReq:
		return "MPCTMCReq"
	case KindMPCTMCRsp:
		return "MPCTMCRsp"
	case KindMPCCfgReq:
		return "MPCCfgReq"
	case KindMPCCfgRsp:
		return "MPCCfgRsp"
	case KindMPCMemReq:
		return "MPCMemReq"
	case KindMPCMemRsp:
		return "MPCMemRsp"
	case KindMCCInfoRsp:
		return "MCCInfoRsp"
	case KindMCCAllocBlk:
		return "MCCAllocBlk"
	case KindMCCAllocGetReq:
		return "MCCAllocGetReq"
	case KindMCCAllocGetRsp:
		return "MCCAllocGetRsp"
	case KindMCCAllocSetReq:
		return "MCCAllocSetReq"
	case KindMCCAllocSetRsp:
		return "MCCAllocSetRsp"
	case KindMCCQoSCtrl:
		return "MCCQoSCtrl"
	case KindMCCQoSStatRsp:
		return "MCCQoSStatRsp"
	case KindMCCQoSBWGetReq:
		return "MCCQoSBWGetReq"
	case KindMCCQoSBWAlloc:
		return "MCCQoSBWAlloc"
	case KindMCCQoSBWLimitGetReq:
		return "MCCQoSBWLimitGetReq"
	case KindMCCQoSBWLimit:
		return "MCCQoSBWLimit"
	case KindISCIDRsp:
		return "ISCIDRsp"
	case KindISCMsgLimit:
		return "ISCMsgLimit"
	case KindISCBgStatus:
		return "ISCBgStatus"
	}
	return fmt.Sprintf("Unknown(%d)", uint8(k))
}
