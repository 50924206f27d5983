// Copyright (C) 2024 Jackrabbit Founders LLC.
//
// SPDX-License-Identifier: Apache-2.0

package fmapi

import (
	"fmt"

	"github.com/JackrabbitLabs/fmapi/pkg/stderror"
)

// Object is implemented by every wire structure in the FM API grammar,
// including the message header and the sub-structures nested inside
// variable-length payloads.
type Object interface {
	// Kind returns the object's shape in the grammar.
	Kind() ObjectKind

	// Size returns the number of bytes Marshal will write, given the
	// object's current contents.
	Size() int

	// Marshal writes the object's wire form into dst and returns the number
	// of bytes written. It fails with stderror.ErrNoEnoughData if dst is too
	// small and never writes past Size() bytes.
	Marshal(dst []byte) (int, error)

	// Unmarshal parses the object from src and returns the number of bytes
	// consumed. It fails with stderror.ErrNoEnoughData if src is truncated.
	Unmarshal(src []byte) (int, error)

	String() string
}

// NewObject returns a zero-valued object of the given kind, or nil for
// KindNone. It fails with stderror.ErrUnsupported for kinds outside the
// grammar.
func NewObject(kind ObjectKind) (Object, error) {
	switch kind {
	case KindNone:
		return nil, nil
	case KindHeader:
		return &Header{}, nil
	case KindPSCIDRsp:
		return &PSCIDRsp{}, nil
	case KindPSCPortReq:
		return &PSCPortReq{}, nil
	case KindPSCPortInfo:
		return &PSCPortInfo{}, nil
	case KindPSCPortRsp:
		return &PSCPortRsp{}, nil
	case KindPSCPortCtrlReq:
		return &PSCPortCtrlReq{}, nil
	case KindPSCCfgReq:
		return &PSCCfgReq{}, nil
	case KindPSCCfgRsp:
		return &PSCCfgRsp{}, nil
	case KindVSCInfoReq:
		return &VSCInfoReq{}, nil
	case KindVSCPPBStatBlk:
		return &VSCPPBStatBlk{}, nil
	case KindVSCInfoBlk:
		return &VSCInfoBlk{}, nil
	case KindVSCInfoRsp:
		return &VSCInfoRsp{}, nil
	case KindVSCBindReq:
		return &VSCBindReq{}, nil
	case KindVSCUnbindReq:
		return &VSCUnbindReq{}, nil
	case KindVSCAERReq:
		return &VSCAERReq{}, nil
	case KindMPCTMCReq:
		return &MPCTMCReq{}, nil
	case KindMPCTMCRsp:
		return &MPCTMCRsp{}, nil
	case KindMPCCfgReq:
		return &MPCCfgReq{}, nil
	case KindMPCCfgRsp:
		return &MPCCfgRsp{}, nil
	case KindMPCMemReq:
		return &MPCMemReq{}, nil
	case KindMPCMemRsp:
		return &MPCMemRsp{}, nil
	case KindMCCInfoRsp:
		return &MCCInfoRsp{}, nil
	case KindMCCAllocBlk:
		return &MCCAllocBlk{}, nil
	case KindMCCAllocGetReq:
		return &MCCAllocGetReq{}, nil
	case KindMCCAllocGetRsp:
		return &MCCAllocGetRsp{}, nil
	case KindMCCAllocSetReq:
		return &MCCAllocSetReq{}, nil
	case KindMCCAllocSetRsp:
		return &MCCAllocSetRsp{}, nil
	case KindMCCQoSCtrl:
		return &MCCQoSCtrl{}, nil
	case KindMCCQoSStatRsp:
		return &MCCQoSStatRsp{}, nil
	case KindMCCQoSBWGetReq:
		return &MCCQoSBWGetReq{}, nil
	case KindMCCQoSBWAlloc:
		return &MCCQoSBWAlloc{}, nil
	case KindMCCQoSBWLimitGetReq:
		return &MCCQoSBWLimitGetReq{}, nil
	case KindMCCQoSBWLimit:
		return &MCCQoSBWLimit{}, nil
	case KindISCIDRsp:
		return &ISCIDRsp{}, nil
	case KindISCMsgLimit:
		return &ISCMsgLimit{}, nil
	case KindISCBgStatus:
		return &ISCBgStatus{}, nil
	}
	return nil, stderror.ErrUnsupported
}

// Serialize writes obj into dst and returns the number of bytes written.
// A nil obj is the empty payload and writes nothing.
func Serialize(dst []byte, obj Object) (int, error) {
	if obj == nil {
		return 0, nil
	}
	n, err := obj.Marshal(dst)
	if err != nil {
		return 0, fmt.Errorf("marshal %v object failed: %w", obj.Kind(), err)
	}
	return n, nil
}

// Deserialize parses an object of the given kind from src. For KindNone it
// returns a nil object and consumes nothing. Kinds whose wire form depends
// on the request that produced them, such as the Get Virtual CXL Switch Info
// response, cannot be parsed without that request and fail with
// stderror.ErrInvalidOperation; decode those through Message.Decode or by
// populating the object's request reference before calling Unmarshal.
func Deserialize(src []byte, kind ObjectKind) (Object, int, error) {
	if kind == KindNone {
		return nil, 0, nil
	}
	obj, err := NewObject(kind)
	if err != nil {
		return nil, 0, err
	}
	n, err := obj.Unmarshal(src)
	if err != nil {
		return nil, 0, fmt.Errorf("unmarshal %v object failed: %w", kind, err)
	}
	return obj, n, nil
}
