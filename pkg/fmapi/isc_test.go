// Copyright (C) 2024 Jackrabbit Founders LLC.
//
// SPDX-License-Identifier: Apache-2.0

package fmapi

import (
	"bytes"
	"reflect"
	"testing"
)

func TestISCIDRspRoundTrip(t *testing.T) {
	want := &ISCIDRsp{
		VendorID:          0x1B36,
		DeviceID:          0x000D,
		SubsystemVendorID: 0x1AF4,
		SubsystemID:       0x1100,
		SerialNumber:      0xDEADBEEFCAFEF00D,
		MaxMsgSize:        13,
	}
	buf := make([]byte, want.Size())
	if _, err := want.Marshal(buf); err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	got := &ISCIDRsp{}
	n, err := got.Unmarshal(buf)
	if err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}
	if n != want.Size() {
		t.Fatalf("Unmarshal() consumed %d bytes, want %d", n, want.Size())
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestISCBgStatusWireFormat(t *testing.T) {
	obj := &ISCBgStatus{
		PercentComplete: 50,
		Running:         true,
		Opcode:          OpPSCPortControl,
		ReturnCode:      RCBackgroundOpStarted,
		ExtStatus:       0x0102,
	}
	want := []byte{50<<1 | 1, 0x00, 0x02, 0x51, 0x01, 0x00, 0x02, 0x01}

	buf := make([]byte, obj.Size())
	if _, err := obj.Marshal(buf); err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	if !bytes.Equal(buf, want) {
		t.Errorf("got % x, want % x", buf, want)
	}

	got := &ISCBgStatus{}
	if _, err := got.Unmarshal(buf); err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}
	if !reflect.DeepEqual(got, obj) {
		t.Errorf("got %+v, want %+v", got, obj)
	}
}

func TestISCMsgLimitRoundTrip(t *testing.T) {
	want := &ISCMsgLimit{Limit: 12}
	buf := make([]byte, want.Size())
	if _, err := want.Marshal(buf); err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	got := &ISCMsgLimit{}
	if _, err := got.Unmarshal(buf); err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}
	if got.Limit != want.Limit {
		t.Errorf("got limit %d, want %d", got.Limit, want.Limit)
	}
}
