// Copyright (C) 2024 Jackrabbit Founders LLC.
//
// SPDX-License-Identifier: Apache-2.0

package fmapi

import (
	"errors"
	"testing"

	"github.com/JackrabbitLabs/fmapi/pkg/stderror"
)

func TestBuildersSetOpcodeAndKind(t *testing.T) {
	aerHeader := [TLPHeaderLen]byte{}
	memReq, err := NewLDMemReq(0, 0, 0, 0x0F, 0x0F, CfgRead, make([]byte, 64))
	if err != nil {
		t.Fatalf("NewLDMemReq() failed: %v", err)
	}
	portStateReq, err := NewPortStateReq([]uint8{0})
	if err != nil {
		t.Fatalf("NewPortStateReq() failed: %v", err)
	}
	vcsInfoReq, err := NewVCSInfoReq(0, 255, []uint8{0})
	if err != nil {
		t.Fatalf("NewVCSInfoReq() failed: %v", err)
	}
	setAllocReq, err := NewSetAllocReq(0, []MCCAllocBlk{{Range1: 1}})
	if err != nil {
		t.Fatalf("NewSetAllocReq() failed: %v", err)
	}
	setBWAllocReq, err := NewSetQoSBWAllocReq(0, []uint8{128})
	if err != nil {
		t.Fatalf("NewSetQoSBWAllocReq() failed: %v", err)
	}
	setBWLimitReq, err := NewSetQoSBWLimitReq(0, []uint8{128})
	if err != nil {
		t.Fatalf("NewSetQoSBWLimitReq() failed: %v", err)
	}

	testCases := []struct {
		msg *Message
		op  Opcode
	}{
		{NewIdentifyReq(), OpISCIdentify},
		{NewBgStatusReq(), OpISCBgStatus},
		{NewGetMsgLimitReq(), OpISCGetMsgLimit},
		{NewSetMsgLimitReq(10), OpISCSetMsgLimit},
		{NewIdentifySwitchReq(), OpPSCIdentifySwitch},
		{portStateReq, OpPSCPortState},
		{NewAllPortStateReq(), OpPSCPortState},
		{NewPortControlReq(0, PortReset), OpPSCPortControl},
		{NewPPBConfigReq(0, 0, 0, 0x0F, CfgRead, [4]byte{}), OpPSCPPBConfig},
		{vcsInfoReq, OpVSCInfo},
		{NewBindReq(0, 0, 0, FMLDID), OpVSCBind},
		{NewUnbindReq(0, 0, UnbindWait), OpVSCUnbind},
		{NewAERReq(0, 0, 0, aerHeader), OpVSCGenAER},
		{NewLDConfigReq(0, 0, 0, 0, 0x0F, CfgRead, [4]byte{}), OpMPCConfig},
		{memReq, OpMPCMemory},
		{NewLDInfoReq(), OpMCCInfo},
		{NewGetAllocReq(0, 4), OpMCCGetAlloc},
		{setAllocReq, OpMCCSetAlloc},
		{NewGetQoSControlReq(), OpMCCGetQoSControl},
		{NewSetQoSControlReq(MCCQoSCtrl{}), OpMCCSetQoSControl},
		{NewQoSStatusReq(), OpMCCQoSStatus},
		{NewGetQoSBWAllocReq(4, 0), OpMCCGetQoSBWAlloc},
		{setBWAllocReq, OpMCCSetQoSBWAlloc},
		{NewGetQoSBWLimitReq(4, 0), OpMCCGetQoSBWLimit},
		{setBWLimitReq, OpMCCSetQoSBWLimit},
	}

	for _, tc := range testCases {
		t.Run(tc.op.String(), func(t *testing.T) {
			if tc.msg.Hdr.Opcode != tc.op {
				t.Errorf("opcode = %v, want %v", tc.msg.Hdr.Opcode, tc.op)
			}
			if tc.msg.Hdr.Category != CategoryReq {
				t.Errorf("category = %v, want %v", tc.msg.Hdr.Category, CategoryReq)
			}
			want := ReqObjectKind(tc.op)
			if tc.msg.Obj == nil {
				if want != KindNone {
					t.Errorf("payload missing, want %v", want)
				}
			} else if tc.msg.Obj.Kind() != want {
				t.Errorf("payload kind = %v, want %v", tc.msg.Obj.Kind(), want)
			}
		})
	}
}

func TestNewRequestKindCheck(t *testing.T) {
	if _, err := NewRequest(OpPSCPortState, nil); !errors.Is(err, stderror.ErrNullPointer) {
		t.Errorf("NewRequest() missing payload: got %v, want %v", err, stderror.ErrNullPointer)
	}
	if _, err := NewRequest(OpPSCPortState, &ISCMsgLimit{}); !errors.Is(err, stderror.ErrInvalidArgument) {
		t.Errorf("NewRequest() wrong payload: got %v, want %v", err, stderror.ErrInvalidArgument)
	}
	msg, err := NewRequest(OpPSCPortState, &PSCPortReq{Ports: []uint8{1}})
	if err != nil {
		t.Fatalf("NewRequest() failed: %v", err)
	}
	if msg.Hdr.Opcode != OpPSCPortState || msg.Hdr.Category != CategoryReq {
		t.Errorf("got header %+v", msg.Hdr)
	}
}

func TestNewResponseKindCheck(t *testing.T) {
	msg, err := NewResponse(OpISCIdentify, &ISCIDRsp{VendorID: 1}, RCSuccess)
	if err != nil {
		t.Fatalf("NewResponse() failed: %v", err)
	}
	if msg.Hdr.Category != CategoryRsp || msg.Hdr.ReturnCode != RCSuccess {
		t.Errorf("got header %+v", msg.Hdr)
	}
	if _, err := NewResponse(OpISCIdentify, &ISCBgStatus{}, RCSuccess); !errors.Is(err, stderror.ErrInvalidArgument) {
		t.Errorf("NewResponse() wrong payload: got %v, want %v", err, stderror.ErrInvalidArgument)
	}
}

func TestAllPortStateReqCoversAllIDs(t *testing.T) {
	msg := NewAllPortStateReq()
	req := msg.Obj.(*PSCPortReq)
	if len(req.Ports) != 255 {
		t.Fatalf("got %d ports, want 255", len(req.Ports))
	}
	if req.Ports[0] != 0 || req.Ports[254] != 254 {
		t.Errorf("got ports [%d..%d], want [0..254]", req.Ports[0], req.Ports[254])
	}
}

func TestBuilderDefaults(t *testing.T) {
	if got := NewGetAllocReq(0, 0).Obj.(*MCCAllocGetReq).Limit; got != 255 {
		t.Errorf("Get LD Allocations default limit = %d, want 255", got)
	}
	if got := NewGetQoSBWAllocReq(0, 0).Obj.(*MCCQoSBWGetReq).NumLDs; got != 255 {
		t.Errorf("Get QoS Allocated BW default num = %d, want 255", got)
	}
	if got := NewGetQoSBWLimitReq(0, 0).Obj.(*MCCQoSBWLimitGetReq).NumLDs; got != MaxLDs {
		t.Errorf("Get QoS BW Limit default num = %d, want %d", got, MaxLDs)
	}
}

func TestBuilderValidation(t *testing.T) {
	if _, err := NewPortStateReq(nil); !errors.Is(err, stderror.ErrNullPointer) {
		t.Errorf("NewPortStateReq(nil): got %v, want %v", err, stderror.ErrNullPointer)
	}
	if _, err := NewVCSInfoReq(0, 0, nil); !errors.Is(err, stderror.ErrNullPointer) {
		t.Errorf("NewVCSInfoReq(nil): got %v, want %v", err, stderror.ErrNullPointer)
	}
	if _, err := NewTunnelReq(0, nil); !errors.Is(err, stderror.ErrNullPointer) {
		t.Errorf("NewTunnelReq(nil): got %v, want %v", err, stderror.ErrNullPointer)
	}
	if _, err := NewSetAllocReq(0, make([]MCCAllocBlk, MaxLDs+1)); !errors.Is(err, stderror.ErrOutOfRange) {
		t.Errorf("NewSetAllocReq() too many blocks: got %v, want %v", err, stderror.ErrOutOfRange)
	}
	if _, err := NewLDMemReq(0, 0, 0, 0, 0, CfgRead, make([]byte, MemTransferLen+1)); !errors.Is(err, stderror.ErrOutOfRange) {
		t.Errorf("NewLDMemReq() oversized data: got %v, want %v", err, stderror.ErrOutOfRange)
	}
}

func TestTunnelRspBuilder(t *testing.T) {
	inner, err := NewResponse(OpMCCInfo, &MCCInfoRsp{MemorySize: 1 << 30, NumLDs: 2}, RCSuccess)
	if err != nil {
		t.Fatalf("NewResponse() failed: %v", err)
	}
	outer, err := NewTunnelRsp(inner, RCSuccess)
	if err != nil {
		t.Fatalf("NewTunnelRsp() failed: %v", err)
	}
	raw, err := outer.Encode()
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	got, _, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	gotInner, err := got.Tunneled()
	if err != nil {
		t.Fatalf("Tunneled() failed: %v", err)
	}
	rsp, ok := gotInner.Obj.(*MCCInfoRsp)
	if !ok {
		t.Fatalf("got payload %T, want *MCCInfoRsp", gotInner.Obj)
	}
	if rsp.MemorySize != 1<<30 || rsp.NumLDs != 2 {
		t.Errorf("got %+v", rsp)
	}
}
