// Copyright (C) 2024 Jackrabbit Founders LLC.
//
// SPDX-License-Identifier: Apache-2.0

// Message builders. Each constructor produces a complete request or response
// message for one operation, leaving the header tag zero for the caller to
// assign.

package fmapi

import (
	"fmt"

	"github.com/JackrabbitLabs/fmapi/pkg/stderror"
)

// NewRequest builds a request message for the given opcode. obj must be the
// payload object kind the opcode's request carries, or nil for opcodes whose
// request has no payload.
func NewRequest(op Opcode, obj Object) (*Message, error) {
	want := ReqObjectKind(op)
	if err := checkKind(want, obj); err != nil {
		return nil, err
	}
	return &Message{
		Hdr: Header{Category: CategoryReq, Opcode: op},
		Obj: obj,
	}, nil
}

// NewResponse builds a response message for the given opcode. obj must be
// the payload object kind the opcode's response carries, or nil for opcodes
// whose response has no payload.
func NewResponse(op Opcode, obj Object, rc ReturnCode) (*Message, error) {
	want := RspObjectKind(op)
	if err := checkKind(want, obj); err != nil {
		return nil, err
	}
	return &Message{
		Hdr: Header{Category: CategoryRsp, Opcode: op, ReturnCode: rc},
		Obj: obj,
	}, nil
}

func checkKind(want ObjectKind, obj Object) error {
	if obj == nil {
		if want != KindNone {
			return stderror.ErrNullPointer
		}
		return nil
	}
	if obj.Kind() != want {
		return stderror.ErrInvalidArgument
	}
	return nil
}

// NewIdentifyReq builds an Identify request.
func NewIdentifyReq() *Message {
	return &Message{Hdr: Header{Category: CategoryReq, Opcode: OpISCIdentify}}
}

// NewBgStatusReq builds a Background Operation Status request.
func NewBgStatusReq() *Message {
	return &Message{Hdr: Header{Category: CategoryReq, Opcode: OpISCBgStatus}}
}

// NewGetMsgLimitReq builds a Get Response Message Limit request.
func NewGetMsgLimitReq() *Message {
	return &Message{Hdr: Header{Category: CategoryReq, Opcode: OpISCGetMsgLimit}}
}

// NewSetMsgLimitReq builds a Set Response Message Limit request. limit is
// the log2 of the largest response message the component should generate.
func NewSetMsgLimitReq(limit uint8) *Message {
	return &Message{
		Hdr: Header{Category: CategoryReq, Opcode: OpISCSetMsgLimit},
		Obj: &ISCMsgLimit{Limit: limit},
	}
}

// NewIdentifySwitchReq builds an Identify Switch Device request.
func NewIdentifySwitchReq() *Message {
	return &Message{Hdr: Header{Category: CategoryReq, Opcode: OpPSCIdentifySwitch}}
}

// NewPortStateReq builds a Get Physical Port State request for the listed
// port IDs.
func NewPortStateReq(ports []uint8) (*Message, error) {
	if ports == nil {
		return nil, stderror.ErrNullPointer
	}
	if len(ports) > 255 {
		return nil, stderror.ErrOutOfRange
	}
	return &Message{
		Hdr: Header{Category: CategoryReq, Opcode: OpPSCPortState},
		Obj: &PSCPortReq{Ports: ports},
	}, nil
}

// NewAllPortStateReq builds a Get Physical Port State request covering every
// port ID the request's 8-bit count can express.
func NewAllPortStateReq() *Message {
	ports := make([]uint8, 255)
	for i := range ports {
		ports[i] = uint8(i)
	}
	return &Message{
		Hdr: Header{Category: CategoryReq, Opcode: OpPSCPortState},
		Obj: &PSCPortReq{Ports: ports},
	}
}

// NewPortControlReq builds a Physical Port Control request.
func NewPortControlReq(ppid uint8, op PortOpcode) *Message {
	return &Message{
		Hdr: Header{Category: CategoryReq, Opcode: OpPSCPortControl},
		Obj: &PSCPortCtrlReq{PPID: ppid, Opcode: op},
	}
}

// NewPPBConfigReq builds a Send PPB CXL.io Configuration request. data is
// ignored for reads.
func NewPPBConfigReq(ppid, register, ext, fdbe uint8, op CfgType, data [4]byte) *Message {
	return &Message{
		Hdr: Header{Category: CategoryReq, Opcode: OpPSCPPBConfig},
		Obj: &PSCCfgReq{
			PPID:        ppid,
			Register:    register,
			ExtRegister: ext,
			FDBE:        fdbe,
			Type:        op,
			Data:        data,
		},
	}
}

// NewVCSInfoReq builds a Get Virtual CXL Switch Info request. Keep the
// returned message until the response arrives; decoding the response
// requires it.
func NewVCSInfoReq(start, limit uint8, vcss []uint8) (*Message, error) {
	if vcss == nil {
		return nil, stderror.ErrNullPointer
	}
	if len(vcss) > 255 {
		return nil, stderror.ErrOutOfRange
	}
	return &Message{
		Hdr: Header{Category: CategoryReq, Opcode: OpVSCInfo},
		Obj: &VSCInfoReq{VPPBIDStart: start, VPPBIDLimit: limit, VCSs: vcss},
	}, nil
}

// NewBindReq builds a Bind vPPB request. ldid is FMLDID unless binding an LD
// of an MLD.
func NewBindReq(vcsid, vppbid, ppid uint8, ldid uint16) *Message {
	return &Message{
		Hdr: Header{Category: CategoryReq, Opcode: OpVSCBind},
		Obj: &VSCBindReq{VCSID: vcsid, VPPBID: vppbid, PPID: ppid, LDID: ldid},
	}
}

// NewUnbindReq builds an Unbind vPPB request.
func NewUnbindReq(vcsid, vppbid uint8, option UnbindOption) *Message {
	return &Message{
		Hdr: Header{Category: CategoryReq, Opcode: OpVSCUnbind},
		Obj: &VSCUnbindReq{VCSID: vcsid, VPPBID: vppbid, Option: option},
	}
}

// NewAERReq builds a Generate AER Event request.
func NewAERReq(vcsid, vppbid uint8, errorType uint32, header [TLPHeaderLen]byte) *Message {
	return &Message{
		Hdr: Header{Category: CategoryReq, Opcode: OpVSCGenAER},
		Obj: &VSCAERReq{VCSID: vcsid, VPPBID: vppbid, ErrorType: errorType, Header: header},
	}
}

// NewTunnelReq builds a Tunnel Management Command request carrying inner as
// a CXL CCI message addressed to the MLD behind the given port. inner is
// encoded in place, so its header payload length is set as a side effect.
func NewTunnelReq(ppid uint8, inner *Message) (*Message, error) {
	if inner == nil {
		return nil, stderror.ErrNullPointer
	}
	blob, err := inner.Encode()
	if err != nil {
		return nil, fmt.Errorf(stderror.EncodeMessageFailedErr, err)
	}
	if len(blob) > MaxTunnelLen {
		return nil, stderror.ErrOutOfRange
	}
	return &Message{
		Hdr: Header{Category: CategoryReq, Opcode: OpMPCTunnel},
		Obj: &MPCTMCReq{PPID: ppid, Type: MCTPTypeCXLCCI, Msg: blob},
	}, nil
}

// NewTunnelRsp builds a Tunnel Management Command response carrying inner
// as the tunneled CXL CCI response.
func NewTunnelRsp(inner *Message, rc ReturnCode) (*Message, error) {
	if inner == nil {
		return nil, stderror.ErrNullPointer
	}
	blob, err := inner.Encode()
	if err != nil {
		return nil, fmt.Errorf(stderror.EncodeMessageFailedErr, err)
	}
	if len(blob) > MaxTunnelLen {
		return nil, stderror.ErrOutOfRange
	}
	return &Message{
		Hdr: Header{Category: CategoryRsp, Opcode: OpMPCTunnel, ReturnCode: rc},
		Obj: &MPCTMCRsp{Type: MCTPTypeCXLCCI, Msg: blob},
	}, nil
}

// NewLDConfigReq builds a Send LD CXL.io Configuration request. data is
// ignored for reads.
func NewLDConfigReq(ppid uint8, ldid uint16, register, ext, fdbe uint8, op CfgType, data [4]byte) *Message {
	return &Message{
		Hdr: Header{Category: CategoryReq, Opcode: OpMPCConfig},
		Obj: &MPCCfgReq{
			PPID:        ppid,
			Register:    register,
			ExtRegister: ext,
			FDBE:        fdbe,
			Type:        op,
			LDID:        ldid,
			Data:        data,
		},
	}
}

// NewLDMemReq builds a Send LD CXL.io Memory request. data travels on the
// wire for reads as well as writes and its length is the transfer length.
func NewLDMemReq(ppid uint8, ldid uint16, offset uint64, fdbe, ldbe uint8, op CfgType, data []byte) (*Message, error) {
	if data == nil {
		return nil, stderror.ErrNullPointer
	}
	if len(data) > MemTransferLen {
		return nil, stderror.ErrOutOfRange
	}
	return &Message{
		Hdr: Header{Category: CategoryReq, Opcode: OpMPCMemory},
		Obj: &MPCMemReq{
			PPID:   ppid,
			FDBE:   fdbe,
			LDBE:   ldbe,
			Type:   op,
			LDID:   ldid,
			Offset: offset,
			Data:   data,
		},
	}, nil
}

// NewLDInfoReq builds a Get LD Info request.
func NewLDInfoReq() *Message {
	return &Message{Hdr: Header{Category: CategoryReq, Opcode: OpMCCInfo}}
}

// NewGetAllocReq builds a Get LD Allocations request. A zero limit means no
// limit.
func NewGetAllocReq(start, limit uint8) *Message {
	if limit == 0 {
		limit = 255
	}
	return &Message{
		Hdr: Header{Category: CategoryReq, Opcode: OpMCCGetAlloc},
		Obj: &MCCAllocGetReq{StartLD: start, Limit: limit},
	}
}

// NewSetAllocReq builds a Set LD Allocations request.
func NewSetAllocReq(start uint8, blocks []MCCAllocBlk) (*Message, error) {
	if blocks == nil {
		return nil, stderror.ErrNullPointer
	}
	if len(blocks) > MaxLDs {
		return nil, stderror.ErrOutOfRange
	}
	return &Message{
		Hdr: Header{Category: CategoryReq, Opcode: OpMCCSetAlloc},
		Obj: &MCCAllocSetReq{StartLD: start, Blocks: blocks},
	}, nil
}

// NewGetQoSControlReq builds a Get QoS Control request.
func NewGetQoSControlReq() *Message {
	return &Message{Hdr: Header{Category: CategoryReq, Opcode: OpMCCGetQoSControl}}
}

// NewSetQoSControlReq builds a Set QoS Control request.
func NewSetQoSControlReq(ctrl MCCQoSCtrl) *Message {
	return &Message{
		Hdr: Header{Category: CategoryReq, Opcode: OpMCCSetQoSControl},
		Obj: &ctrl,
	}
}

// NewQoSStatusReq builds a Get QoS Status request.
func NewQoSStatusReq() *Message {
	return &Message{Hdr: Header{Category: CategoryReq, Opcode: OpMCCQoSStatus}}
}

// NewGetQoSBWAllocReq builds a Get QoS Allocated BW request. A zero num
// means no limit.
func NewGetQoSBWAllocReq(num, start uint8) *Message {
	if num == 0 {
		num = 255
	}
	return &Message{
		Hdr: Header{Category: CategoryReq, Opcode: OpMCCGetQoSBWAlloc},
		Obj: &MCCQoSBWGetReq{NumLDs: num, StartLD: start},
	}
}

// NewSetQoSBWAllocReq builds a Set QoS Allocated BW request. The list holds
// one bandwidth fraction per LD, in multiples of 1/256.
func NewSetQoSBWAllocReq(start uint8, list []uint8) (*Message, error) {
	if list == nil {
		return nil, stderror.ErrNullPointer
	}
	if len(list) > MaxLDs {
		return nil, stderror.ErrOutOfRange
	}
	return &Message{
		Hdr: Header{Category: CategoryReq, Opcode: OpMCCSetQoSBWAlloc},
		Obj: &MCCQoSBWAlloc{StartLD: start, List: list},
	}, nil
}

// NewGetQoSBWLimitReq builds a Get QoS BW Limit request. A zero num means
// every LD the MLD can have.
func NewGetQoSBWLimitReq(num, start uint8) *Message {
	if num == 0 {
		num = MaxLDs
	}
	return &Message{
		Hdr: Header{Category: CategoryReq, Opcode: OpMCCGetQoSBWLimit},
		Obj: &MCCQoSBWLimitGetReq{NumLDs: num, StartLD: start},
	}
}

// NewSetQoSBWLimitReq builds a Set QoS BW Limit request. The list holds one
// bandwidth limit fraction per LD, in multiples of 1/256.
func NewSetQoSBWLimitReq(start uint8, list []uint8) (*Message, error) {
	if list == nil {
		return nil, stderror.ErrNullPointer
	}
	if len(list) > MaxLDs {
		return nil, stderror.ErrOutOfRange
	}
	return &Message{
		Hdr: Header{Category: CategoryReq, Opcode: OpMCCSetQoSBWLimit},
		Obj: &MCCQoSBWLimit{StartLD: start, List: list},
	}, nil
}
