// Copyright (C) 2024 Jackrabbit Founders LLC.
//
// SPDX-License-Identifier: Apache-2.0

package fmapi

import (
	"errors"
	"reflect"
	"testing"

	"github.com/JackrabbitLabs/fmapi/pkg/stderror"
)

func TestMCCInfoRspRoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		rsp  MCCInfoRsp
	}{
		{
			name: "all features",
			rsp:  MCCInfoRsp{MemorySize: 1 << 38, NumLDs: 16, EPC: true, TTR: true},
		},
		{
			name: "no features",
			rsp:  MCCInfoRsp{MemorySize: 1 << 30, NumLDs: 1},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			buf := make([]byte, tc.rsp.Size())
			if _, err := tc.rsp.Marshal(buf); err != nil {
				t.Fatalf("Marshal() failed: %v", err)
			}
			got := MCCInfoRsp{}
			if _, err := got.Unmarshal(buf); err != nil {
				t.Fatalf("Unmarshal() failed: %v", err)
			}
			if got != tc.rsp {
				t.Errorf("got %+v, want %+v", got, tc.rsp)
			}
		})
	}
}

func TestMCCAllocGetRspRoundTrip(t *testing.T) {
	want := &MCCAllocGetRsp{
		TotalLDs:    4,
		Granularity: Granularity512MB,
		StartLD:     0,
		Blocks: []MCCAllocBlk{
			{Range1: 2, Range2: 0},
			{Range1: 1, Range2: 1},
			{Range1: 0, Range2: 4},
		},
	}
	buf := make([]byte, want.Size())
	if _, err := want.Marshal(buf); err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	got := &MCCAllocGetRsp{}
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

func TestMCCAllocSetRoundTrip(t *testing.T) {
	req := &MCCAllocSetReq{
		StartLD: 2,
		Blocks:  []MCCAllocBlk{{Range1: 8, Range2: 8}},
	}
	buf := make([]byte, req.Size())
	if _, err := req.Marshal(buf); err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	gotReq := &MCCAllocSetReq{}
	if _, err := gotReq.Unmarshal(buf); err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}
	if !reflect.DeepEqual(gotReq, req) {
		t.Errorf("got %+v, want %+v", gotReq, req)
	}

	// The response echoes the same wire shape.
	gotRsp := &MCCAllocSetRsp{}
	if _, err := gotRsp.Unmarshal(buf); err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}
	if gotRsp.StartLD != req.StartLD || !reflect.DeepEqual(gotRsp.Blocks, req.Blocks) {
		t.Errorf("got %+v, want %+v", gotRsp, req)
	}
}

func TestMCCAllocMaxBlocks(t *testing.T) {
	want := &MCCAllocSetReq{Blocks: make([]MCCAllocBlk, MaxLDs)}
	for i := range want.Blocks {
		want.Blocks[i] = MCCAllocBlk{Range1: uint64(i), Range2: uint64(MaxLDs - i)}
	}
	buf := make([]byte, want.Size())
	if _, err := want.Marshal(buf); err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	got := &MCCAllocSetReq{}
	if _, err := got.Unmarshal(buf); err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestMCCAllocTooManyBlocks(t *testing.T) {
	req := &MCCAllocSetReq{Blocks: make([]MCCAllocBlk, MaxLDs+1)}
	if _, err := req.Marshal(make([]byte, req.Size())); !errors.Is(err, stderror.ErrOutOfRange) {
		t.Errorf("Marshal() with too many blocks: got %v, want %v", err, stderror.ErrOutOfRange)
	}

	buf := make([]byte, mccAllocHdrLen+(MaxLDs+1)*mccAllocBlkLen)
	buf[0] = MaxLDs + 1
	got := &MCCAllocSetReq{}
	if _, err := got.Unmarshal(buf); !errors.Is(err, stderror.ErrOutOfRange) {
		t.Errorf("Unmarshal() with too many blocks: got %v, want %v", err, stderror.ErrOutOfRange)
	}
}

func TestMCCQoSCtrlRoundTrip(t *testing.T) {
	want := &MCCQoSCtrl{
		EPCEnable:               true,
		TTREnable:               true,
		EgressModeratePercent:   10,
		EgressSeverePercent:     25,
		BackpressureSampleIntvl: 8,
		ReqCmpBasis:             0x0123,
		CompletionCollectIntvl:  64,
	}
	buf := make([]byte, want.Size())
	if _, err := want.Marshal(buf); err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	if buf[0] != 0x03 {
		t.Errorf("byte 0 = 0x%02x, want 0x03", buf[0])
	}
	got := &MCCQoSCtrl{}
	if _, err := got.Unmarshal(buf); err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}
	if *got != *want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestMCCQoSStatRspRoundTrip(t *testing.T) {
	want := &MCCQoSStatRsp{BackpressureAvgPercent: 42}
	buf := make([]byte, want.Size())
	if _, err := want.Marshal(buf); err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	got := &MCCQoSStatRsp{}
	if _, err := got.Unmarshal(buf); err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}
	if *got != *want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestMCCQoSBWRoundTrip(t *testing.T) {
	alloc := &MCCQoSBWAlloc{StartLD: 1, List: []uint8{64, 64, 128}}
	buf := make([]byte, alloc.Size())
	if _, err := alloc.Marshal(buf); err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	gotAlloc := &MCCQoSBWAlloc{}
	if _, err := gotAlloc.Unmarshal(buf); err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}
	if !reflect.DeepEqual(gotAlloc, alloc) {
		t.Errorf("got %+v, want %+v", gotAlloc, alloc)
	}

	// The BW limit payload shares the wire shape.
	limit := &MCCQoSBWLimit{StartLD: 1, List: []uint8{64, 64, 128}}
	gotLimit := &MCCQoSBWLimit{}
	if _, err := gotLimit.Unmarshal(buf); err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}
	if !reflect.DeepEqual(gotLimit, limit) {
		t.Errorf("got %+v, want %+v", gotLimit, limit)
	}
}

func TestMCCQoSBWMaxEntries(t *testing.T) {
	want := &MCCQoSBWAlloc{List: make([]uint8, MaxLDs)}
	for i := range want.List {
		want.List[i] = uint8(16 * i)
	}
	buf := make([]byte, want.Size())
	if _, err := want.Marshal(buf); err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	got := &MCCQoSBWAlloc{}
	if _, err := got.Unmarshal(buf); err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestMCCQoSBWTooManyEntries(t *testing.T) {
	alloc := &MCCQoSBWAlloc{List: make([]uint8, MaxLDs+1)}
	if _, err := alloc.Marshal(make([]byte, alloc.Size())); !errors.Is(err, stderror.ErrOutOfRange) {
		t.Errorf("Marshal() with too many entries: got %v, want %v", err, stderror.ErrOutOfRange)
	}
}
