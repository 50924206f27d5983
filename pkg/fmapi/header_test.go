// Copyright (C) 2024 Jackrabbit Founders LLC.
//
// SPDX-License-Identifier: Apache-2.0

package fmapi

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/JackrabbitLabs/fmapi/pkg/stderror"
)

func TestHeaderMarshalUnmarshal(t *testing.T) {
	testCases := []struct {
		name string
		hdr  Header
	}{
		{
			name: "zero",
			hdr:  Header{},
		},
		{
			name: "request",
			hdr:  Header{Category: CategoryReq, Tag: 7, Opcode: OpPSCIdentifySwitch},
		},
		{
			name: "response",
			hdr: Header{
				Category:   CategoryRsp,
				Tag:        0xFF,
				Opcode:     OpMCCSetQoSBWLimit,
				Len:        18,
				ReturnCode: RCInvalidInput,
				ExtStatus:  0xBEEF,
			},
		},
		{
			name: "background",
			hdr: Header{
				Category:   CategoryRsp,
				Opcode:     OpPSCPortControl,
				Background: true,
				ReturnCode: RCBackgroundOpStarted,
			},
		},
		{
			name: "max payload length",
			hdr:  Header{Category: CategoryReq, Opcode: OpMPCMemory, Len: MaxHeaderPayloadLen},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			buf := make([]byte, HeaderLen)
			n, err := tc.hdr.Marshal(buf)
			if err != nil {
				t.Fatalf("Marshal() failed: %v", err)
			}
			if n != HeaderLen {
				t.Fatalf("Marshal() wrote %d bytes, want %d", n, HeaderLen)
			}
			got := Header{}
			n, err = got.Unmarshal(buf)
			if err != nil {
				t.Fatalf("Unmarshal() failed: %v", err)
			}
			if n != HeaderLen {
				t.Fatalf("Unmarshal() consumed %d bytes, want %d", n, HeaderLen)
			}
			if !reflect.DeepEqual(got, tc.hdr) {
				t.Errorf("got %+v, want %+v", got, tc.hdr)
			}
		})
	}
}

func TestHeaderWireFormat(t *testing.T) {
	hdr := Header{
		Category:   CategoryRsp,
		Tag:        0x42,
		Opcode:     Opcode(0xABCD),
		Len:        MaxHeaderPayloadLen,
		Background: true,
		ReturnCode: ReturnCode(0xABCD),
		ExtStatus:  0x1234,
	}
	want := []byte{0x10, 0x42, 0x00, 0xCD, 0xAB, 0xFF, 0xFF, 0xF9, 0xCD, 0xAB, 0x34, 0x12}

	buf := make([]byte, HeaderLen)
	if _, err := hdr.Marshal(buf); err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	if !bytes.Equal(buf, want) {
		t.Errorf("got % x, want % x", buf, want)
	}
}

func TestHeaderLenBits(t *testing.T) {
	// Walk a one bit through the 21-bit length field, with and without the
	// background flag, and verify the length and the flag never corrupt
	// each other.
	for bit := 0; bit < 21; bit++ {
		for _, background := range []bool{false, true} {
			hdr := Header{Len: 1 << bit, Background: background}
			buf := make([]byte, HeaderLen)
			if _, err := hdr.Marshal(buf); err != nil {
				t.Fatalf("Marshal() failed at bit %d: %v", bit, err)
			}
			got := Header{}
			if _, err := got.Unmarshal(buf); err != nil {
				t.Fatalf("Unmarshal() failed at bit %d: %v", bit, err)
			}
			if got.Len != hdr.Len {
				t.Errorf("bit %d background %v: got len %d, want %d", bit, background, got.Len, hdr.Len)
			}
			if got.Background != background {
				t.Errorf("bit %d: got background %v, want %v", bit, got.Background, background)
			}
		}
	}
}

func TestHeaderErrors(t *testing.T) {
	hdr := Header{Len: MaxHeaderPayloadLen + 1}
	if _, err := hdr.Marshal(make([]byte, HeaderLen)); !errors.Is(err, stderror.ErrOutOfRange) {
		t.Errorf("Marshal() with oversized length: got %v, want %v", err, stderror.ErrOutOfRange)
	}

	hdr = Header{}
	if _, err := hdr.Marshal(make([]byte, HeaderLen-1)); !errors.Is(err, stderror.ErrNoEnoughData) {
		t.Errorf("Marshal() into short buffer: got %v, want %v", err, stderror.ErrNoEnoughData)
	}
	if _, err := hdr.Unmarshal(make([]byte, HeaderLen-1)); !errors.Is(err, stderror.ErrNoEnoughData) {
		t.Errorf("Unmarshal() from short buffer: got %v, want %v", err, stderror.ErrNoEnoughData)
	}
}
