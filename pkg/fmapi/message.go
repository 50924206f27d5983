// Copyright (C) 2024 Jackrabbit Founders LLC.
//
// SPDX-License-Identifier: Apache-2.0

package fmapi

import (
	"fmt"

	"github.com/JackrabbitLabs/fmapi/pkg/log"
	"github.com/JackrabbitLabs/fmapi/pkg/stderror"
)

// Message is a complete FM API message: a header and the payload object the
// header's opcode and category select. Obj is nil for the opcodes whose
// payload is empty.
type Message struct {
	Hdr Header
	Obj Object
}

// Encode serializes the message. It computes the header payload length from
// the payload object, so Hdr.Len is set as a side effect.
func (m *Message) Encode() ([]byte, error) {
	size := 0
	if m.Obj != nil {
		size = m.Obj.Size()
	}
	if size > MaxPayloadLen {
		return nil, stderror.ErrOutOfRange
	}
	m.Hdr.Len = uint32(size)
	buf := make([]byte, HeaderLen+size)
	if _, err := m.Hdr.Marshal(buf); err != nil {
		return nil, fmt.Errorf("marshal header failed: %w", err)
	}
	if _, err := Serialize(buf[HeaderLen:], m.Obj); err != nil {
		return nil, err
	}
	return buf, nil
}

// Decode parses one message from src and returns the message and the number
// of bytes consumed. Responses whose payload shape depends on the request
// that produced them cannot be decoded without it; use DecodeResponse for
// those.
func Decode(src []byte) (*Message, int, error) {
	return decode(src, nil)
}

// DecodeResponse parses a response message whose payload shape depends on
// the originating request, such as the Get Virtual CXL Switch Info response.
// For all other messages it behaves exactly like Decode, so req may be nil
// when the opcode does not need it.
func DecodeResponse(src []byte, req *Message) (*Message, int, error) {
	return decode(src, req)
}

func decode(src []byte, req *Message) (*Message, int, error) {
	m := &Message{}
	if _, err := m.Hdr.Unmarshal(src); err != nil {
		return nil, 0, fmt.Errorf(stderror.DecodeHeaderFailedErr, err)
	}
	if m.Hdr.Len > uint32(len(src)-HeaderLen) {
		return nil, 0, stderror.ErrNoEnoughData
	}
	payload := src[HeaderLen : HeaderLen+int(m.Hdr.Len)]

	kind := PayloadObjectKind(&m.Hdr)
	var n int
	if kind == KindVSCInfoRsp {
		infoReq, err := vscInfoReqOf(req)
		if err != nil {
			return nil, 0, err
		}
		rsp := &VSCInfoRsp{Req: infoReq}
		n, err = rsp.Unmarshal(payload)
		if err != nil {
			return nil, 0, fmt.Errorf("unmarshal %v object failed: %w", kind, err)
		}
		m.Obj = rsp
	} else {
		var err error
		m.Obj, n, err = Deserialize(payload, kind)
		if err != nil {
			return nil, 0, err
		}
	}

	if log.IsLevelEnabled(log.TraceLevel) {
		log.Tracef("decoded message %s", m)
	}
	return m, HeaderLen + n, nil
}

// vscInfoReqOf extracts the Get Virtual CXL Switch Info request payload from
// a request message.
func vscInfoReqOf(req *Message) (*VSCInfoReq, error) {
	if req == nil {
		return nil, stderror.ErrInvalidOperation
	}
	infoReq, ok := req.Obj.(*VSCInfoReq)
	if !ok {
		return nil, stderror.ErrInvalidArgument
	}
	return infoReq, nil
}

// Tunneled returns the message embedded in a Tunnel Management Command
// payload. It fails with stderror.ErrInvalidOperation when the message is
// not a tunnel command, and with stderror.ErrUnsupported when the tunneled
// content is not a CXL CCI message.
func (m *Message) Tunneled() (*Message, error) {
	var mctpType uint8
	var blob []byte
	switch obj := m.Obj.(type) {
	case *MPCTMCReq:
		mctpType = obj.Type
		blob = obj.Msg
	case *MPCTMCRsp:
		mctpType = obj.Type
		blob = obj.Msg
	default:
		return nil, stderror.ErrInvalidOperation
	}
	if mctpType != MCTPTypeCXLCCI {
		return nil, stderror.ErrUnsupported
	}
	inner, _, err := Decode(blob)
	if err != nil {
		return nil, fmt.Errorf(stderror.DecodeTunnelFailedErr, err)
	}
	return inner, nil
}

func (m *Message) String() string {
	if m.Obj == nil {
		return fmt.Sprintf("{%s}", m.Hdr.String())
	}
	return fmt.Sprintf("{%s} %s: %s", m.Hdr.String(), m.Obj.Kind(), m.Obj.String())
}
