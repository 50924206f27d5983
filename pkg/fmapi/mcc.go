// Copyright (C) 2024 Jackrabbit Founders LLC.
//
// SPDX-License-Identifier: Apache-2.0

// MLD Component command set payloads. These commands address an MLD itself
// and normally travel inside a Tunnel Management Command.

package fmapi

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/JackrabbitLabs/fmapi/pkg/stderror"
)

const (
	mccInfoRspLen     = 11
	mccAllocBlkLen    = 16
	mccAllocGetReqLen = 2
	mccAllocHdrLen    = 4
	mccQoSCtrlLen     = 7
	mccQoSStatRspLen  = 1
	mccQoSBWGetReqLen = 2
	mccQoSBWHdrLen    = 2
)

// MCCInfoRsp is the Get LD Info response payload, CXL 2.0 v1.0 Table 111.
type MCCInfoRsp struct {
	MemorySize uint64
	NumLDs     uint16

	// EPC and TTR report whether egress port congestion and temporary
	// throughput reduction are enabled.
	EPC bool
	TTR bool
}

var _ Object = &MCCInfoRsp{}

func (o *MCCInfoRsp) Kind() ObjectKind {
	return KindMCCInfoRsp
}

func (o *MCCInfoRsp) Size() int {
	return mccInfoRspLen
}

func (o *MCCInfoRsp) Marshal(dst []byte) (int, error) {
	if len(dst) < mccInfoRspLen {
		return 0, stderror.ErrNoEnoughData
	}
	binary.LittleEndian.PutUint64(dst[0:8], o.MemorySize)
	binary.LittleEndian.PutUint16(dst[8:10], o.NumLDs)
	dst[10] = 0
	if o.EPC {
		dst[10] |= 0x01
	}
	if o.TTR {
		dst[10] |= 0x02
	}
	return mccInfoRspLen, nil
}

func (o *MCCInfoRsp) Unmarshal(src []byte) (int, error) {
	if len(src) < mccInfoRspLen {
		return 0, stderror.ErrNoEnoughData
	}
	o.MemorySize = binary.LittleEndian.Uint64(src[0:8])
	o.NumLDs = binary.LittleEndian.Uint16(src[8:10])
	o.EPC = src[10]&0x01 != 0
	o.TTR = src[10]&0x02 != 0
	return mccInfoRspLen, nil
}

func (o *MCCInfoRsp) String() string {
	return fmt.Sprintf("size=0x%016x lds=%d epc=%v ttr=%v", o.MemorySize, o.NumLDs, o.EPC, o.TTR)
}

// MCCAllocBlk is the memory allocation of one LD, CXL 2.0 v1.0 Table 112.
// Range1 and Range2 are allocation multiples of the MLD's granularity.
type MCCAllocBlk struct {
	Range1 uint64
	Range2 uint64
}

var _ Object = &MCCAllocBlk{}

func (o *MCCAllocBlk) Kind() ObjectKind {
	return KindMCCAllocBlk
}

func (o *MCCAllocBlk) Size() int {
	return mccAllocBlkLen
}

func (o *MCCAllocBlk) Marshal(dst []byte) (int, error) {
	if len(dst) < mccAllocBlkLen {
		return 0, stderror.ErrNoEnoughData
	}
	binary.LittleEndian.PutUint64(dst[0:8], o.Range1)
	binary.LittleEndian.PutUint64(dst[8:16], o.Range2)
	return mccAllocBlkLen, nil
}

func (o *MCCAllocBlk) Unmarshal(src []byte) (int, error) {
	if len(src) < mccAllocBlkLen {
		return 0, stderror.ErrNoEnoughData
	}
	o.Range1 = binary.LittleEndian.Uint64(src[0:8])
	o.Range2 = binary.LittleEndian.Uint64(src[8:16])
	return mccAllocBlkLen, nil
}

func (o *MCCAllocBlk) String() string {
	return fmt.Sprintf("rng1=0x%016x rng2=0x%016x", o.Range1, o.Range2)
}

// MCCAllocGetReq is the Get LD Allocations request payload, CXL 2.0 v1.0
// Table 112.
type MCCAllocGetReq struct {
	StartLD uint8
	Limit   uint8
}

var _ Object = &MCCAllocGetReq{}

func (o *MCCAllocGetReq) Kind() ObjectKind {
	return KindMCCAllocGetReq
}

func (o *MCCAllocGetReq) Size() int {
	return mccAllocGetReqLen
}

func (o *MCCAllocGetReq) Marshal(dst []byte) (int, error) {
	if len(dst) < mccAllocGetReqLen {
		return 0, stderror.ErrNoEnoughData
	}
	dst[0] = o.StartLD
	dst[1] = o.Limit
	return mccAllocGetReqLen, nil
}

func (o *MCCAllocGetReq) Unmarshal(src []byte) (int, error) {
	if len(src) < mccAllocGetReqLen {
		return 0, stderror.ErrNoEnoughData
	}
	o.StartLD = src[0]
	o.Limit = src[1]
	return mccAllocGetReqLen, nil
}

func (o *MCCAllocGetReq) String() string {
	return fmt.Sprintf("start=%d limit=%d", o.StartLD, o.Limit)
}

// MCCAllocGetRsp is the Get LD Allocations response payload, CXL 2.0 v1.0
// Table 112. At most MaxLDs allocation blocks fit in one response.
type MCCAllocGetRsp struct {
	TotalLDs    uint8
	Granularity MemGranularity
	StartLD     uint8
	Blocks      []MCCAllocBlk
}

var _ Object = &MCCAllocGetRsp{}

func (o *MCCAllocGetRsp) Kind() ObjectKind {
	return KindMCCAllocGetRsp
}

func (o *MCCAllocGetRsp) Size() int {
	return mccAllocHdrLen + len(o.Blocks)*mccAllocBlkLen
}

func (o *MCCAllocGetRsp) Marshal(dst []byte) (int, error) {
	if len(o.Blocks) > MaxLDs {
		return 0, stderror.ErrOutOfRange
	}
	if len(dst) < o.Size() {
		return 0, stderror.ErrNoEnoughData
	}
	dst[0] = o.TotalLDs
	dst[1] = uint8(o.Granularity)
	dst[2] = o.StartLD
	dst[3] = uint8(len(o.Blocks))
	off := mccAllocHdrLen
	for i := range o.Blocks {
		n, err := o.Blocks[i].Marshal(dst[off:])
		if err != nil {
			return 0, err
		}
		off += n
	}
	return off, nil
}

func (o *MCCAllocGetRsp) Unmarshal(src []byte) (int, error) {
	if len(src) < mccAllocHdrLen {
		return 0, stderror.ErrNoEnoughData
	}
	o.TotalLDs = src[0]
	o.Granularity = MemGranularity(src[1])
	o.StartLD = src[2]
	num := int(src[3])
	if num > MaxLDs {
		return 0, stderror.ErrOutOfRange
	}
	o.Blocks = make([]MCCAllocBlk, num)
	off := mccAllocHdrLen
	for i := 0; i < num; i++ {
		n, err := o.Blocks[i].Unmarshal(src[off:])
		if err != nil {
			return 0, err
		}
		off += n
	}
	return off, nil
}

func (o *MCCAllocGetRsp) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "total=%d granularity=%q start=%d num=%d",
		o.TotalLDs, o.Granularity.String(), o.StartLD, len(o.Blocks))
	for i := range o.Blocks {
		fmt.Fprintf(&sb, " [%s]", o.Blocks[i].String())
	}
	return sb.String()
}

// MCCAllocSetReq is the Set LD Allocations request payload, CXL 2.0 v1.0
// Table 113.
type MCCAllocSetReq struct {
	StartLD uint8
	Blocks  []MCCAllocBlk
}

var _ Object = &MCCAllocSetReq{}

func (o *MCCAllocSetReq) Kind() ObjectKind {
	return KindMCCAllocSetReq
}

func (o *MCCAllocSetReq) Size() int {
	return mccAllocHdrLen + len(o.Blocks)*mccAllocBlkLen
}

func (o *MCCAllocSetReq) Marshal(dst []byte) (int, error) {
	return marshalAllocSet(dst, o.StartLD, o.Blocks, o.Size())
}

func (o *MCCAllocSetReq) Unmarshal(src []byte) (int, error) {
	var err error
	o.StartLD, o.Blocks, err = unmarshalAllocSet(src)
	if err != nil {
		return 0, err
	}
	return o.Size(), nil
}

func (o *MCCAllocSetReq) String() string {
	return allocSetString(o.StartLD, o.Blocks)
}

// MCCAllocSetRsp is the Set LD Allocations response payload, CXL 2.0 v1.0
// Table 114. It echoes the allocations actually applied.
type MCCAllocSetRsp struct {
	StartLD uint8
	Blocks  []MCCAllocBlk
}

var _ Object = &MCCAllocSetRsp{}

func (o *MCCAllocSetRsp) Kind() ObjectKind {
	return KindMCCAllocSetRsp
}

func (o *MCCAllocSetRsp) Size() int {
	return mccAllocHdrLen + len(o.Blocks)*mccAllocBlkLen
}

func (o *MCCAllocSetRsp) Marshal(dst []byte) (int, error) {
	return marshalAllocSet(dst, o.StartLD, o.Blocks, o.Size())
}

func (o *MCCAllocSetRsp) Unmarshal(src []byte) (int, error) {
	var err error
	o.StartLD, o.Blocks, err = unmarshalAllocSet(src)
	if err != nil {
		return 0, err
	}
	return o.Size(), nil
}

func (o *MCCAllocSetRsp) String() string {
	return allocSetString(o.StartLD, o.Blocks)
}

// The Set LD Allocations request and response share a wire shape.

func marshalAllocSet(dst []byte, start uint8, blocks []MCCAllocBlk, size int) (int, error) {
	if len(blocks) > MaxLDs {
		return 0, stderror.ErrOutOfRange
	}
	if len(dst) < size {
		return 0, stderror.ErrNoEnoughData
	}
	dst[0] = uint8(len(blocks))
	dst[1] = start
	dst[2] = 0
	dst[3] = 0
	off := mccAllocHdrLen
	for i := range blocks {
		n, err := blocks[i].Marshal(dst[off:])
		if err != nil {
			return 0, err
		}
		off += n
	}
	return off, nil
}

func unmarshalAllocSet(src []byte) (uint8, []MCCAllocBlk, error) {
	if len(src) < mccAllocHdrLen {
		return 0, nil, stderror.ErrNoEnoughData
	}
	num := int(src[0])
	if num > MaxLDs {
		return 0, nil, stderror.ErrOutOfRange
	}
	start := src[1]
	blocks := make([]MCCAllocBlk, num)
	off := mccAllocHdrLen
	for i := 0; i < num; i++ {
		n, err := blocks[i].Unmarshal(src[off:])
		if err != nil {
			return 0, nil, err
		}
		off += n
	}
	return start, blocks, nil
}

func allocSetString(start uint8, blocks []MCCAllocBlk) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "num=%d start=%d", len(blocks), start)
	for i := range blocks {
		fmt.Fprintf(&sb, " [%s]", blocks[i].String())
	}
	return sb.String()
}

// MCCQoSCtrl is the payload of the Get and Set QoS Control commands,
// CXL 2.0 v1.0 Table 115.
type MCCQoSCtrl struct {
	EPCEnable               bool
	TTREnable               bool
	EgressModeratePercent   uint8
	EgressSeverePercent     uint8
	BackpressureSampleIntvl uint8
	ReqCmpBasis             uint16
	CompletionCollectIntvl  uint8
}

var _ Object = &MCCQoSCtrl{}

func (o *MCCQoSCtrl) Kind() ObjectKind {
	return KindMCCQoSCtrl
}

func (o *MCCQoSCtrl) Size() int {
	return mccQoSCtrlLen
}

func (o *MCCQoSCtrl) Marshal(dst []byte) (int, error) {
	if len(dst) < mccQoSCtrlLen {
		return 0, stderror.ErrNoEnoughData
	}
	dst[0] = 0
	if o.EPCEnable {
		dst[0] |= 0x01
	}
	if o.TTREnable {
		dst[0] |= 0x02
	}
	dst[1] = o.EgressModeratePercent
	dst[2] = o.EgressSeverePercent
	dst[3] = o.BackpressureSampleIntvl
	binary.LittleEndian.PutUint16(dst[4:6], o.ReqCmpBasis)
	dst[6] = o.CompletionCollectIntvl
	return mccQoSCtrlLen, nil
}

func (o *MCCQoSCtrl) Unmarshal(src []byte) (int, error) {
	if len(src) < mccQoSCtrlLen {
		return 0, stderror.ErrNoEnoughData
	}
	o.EPCEnable = src[0]&0x01 != 0
	o.TTREnable = src[0]&0x02 != 0
	o.EgressModeratePercent = src[1]
	o.EgressSeverePercent = src[2]
	o.BackpressureSampleIntvl = src[3]
	o.ReqCmpBasis = binary.LittleEndian.Uint16(src[4:6])
	o.CompletionCollectIntvl = src[6]
	return mccQoSCtrlLen, nil
}

func (o *MCCQoSCtrl) String() string {
	return fmt.Sprintf("epc=%v ttr=%v moderate=%d%% severe=%d%% sampleIntvl=%d rcb=%d collectIntvl=%d",
		o.EPCEnable, o.TTREnable, o.EgressModeratePercent, o.EgressSeverePercent,
		o.BackpressureSampleIntvl, o.ReqCmpBasis, o.CompletionCollectIntvl)
}

// MCCQoSStatRsp is the Get QoS Status response payload, CXL 2.0 v1.0
// Table 116.
type MCCQoSStatRsp struct {
	BackpressureAvgPercent uint8
}

var _ Object = &MCCQoSStatRsp{}

func (o *MCCQoSStatRsp) Kind() ObjectKind {
	return KindMCCQoSStatRsp
}

func (o *MCCQoSStatRsp) Size() int {
	return mccQoSStatRspLen
}

func (o *MCCQoSStatRsp) Marshal(dst []byte) (int, error) {
	if len(dst) < mccQoSStatRspLen {
		return 0, stderror.ErrNoEnoughData
	}
	dst[0] = o.BackpressureAvgPercent
	return mccQoSStatRspLen, nil
}

func (o *MCCQoSStatRsp) Unmarshal(src []byte) (int, error) {
	if len(src) < mccQoSStatRspLen {
		return 0, stderror.ErrNoEnoughData
	}
	o.BackpressureAvgPercent = src[0]
	return mccQoSStatRspLen, nil
}

func (o *MCCQoSStatRsp) String() string {
	return fmt.Sprintf("backpressureAvg=%d%%", o.BackpressureAvgPercent)
}

// MCCQoSBWGetReq is the Get QoS Allocated BW request payload, CXL 2.0 v1.0
// Table 117.
type MCCQoSBWGetReq struct {
	NumLDs  uint8
	StartLD uint8
}

var _ Object = &MCCQoSBWGetReq{}

func (o *MCCQoSBWGetReq) Kind() ObjectKind {
	return KindMCCQoSBWGetReq
}

func (o *MCCQoSBWGetReq) Size() int {
	return mccQoSBWGetReqLen
}

func (o *MCCQoSBWGetReq) Marshal(dst []byte) (int, error) {
	if len(dst) < mccQoSBWGetReqLen {
		return 0, stderror.ErrNoEnoughData
	}
	dst[0] = o.NumLDs
	dst[1] = o.StartLD
	return mccQoSBWGetReqLen, nil
}

func (o *MCCQoSBWGetReq) Unmarshal(src []byte) (int, error) {
	if len(src) < mccQoSBWGetReqLen {
		return 0, stderror.ErrNoEnoughData
	}
	o.NumLDs = src[0]
	o.StartLD = src[1]
	return mccQoSBWGetReqLen, nil
}

func (o *MCCQoSBWGetReq) String() string {
	return fmt.Sprintf("num=%d start=%d", o.NumLDs, o.StartLD)
}

// MCCQoSBWAlloc is the payload of the Get and Set QoS Allocated BW
// commands, CXL 2.0 v1.0 Table 118. List holds one allocated bandwidth
// fraction per LD, in multiples of 1/256.
type MCCQoSBWAlloc struct {
	StartLD uint8
	List    []uint8
}

var _ Object = &MCCQoSBWAlloc{}

func (o *MCCQoSBWAlloc) Kind() ObjectKind {
	return KindMCCQoSBWAlloc
}

func (o *MCCQoSBWAlloc) Size() int {
	return mccQoSBWHdrLen + len(o.List)
}

func (o *MCCQoSBWAlloc) Marshal(dst []byte) (int, error) {
	return marshalQoSBW(dst, o.StartLD, o.List, o.Size())
}

func (o *MCCQoSBWAlloc) Unmarshal(src []byte) (int, error) {
	var err error
	o.StartLD, o.List, err = unmarshalQoSBW(src)
	if err != nil {
		return 0, err
	}
	return o.Size(), nil
}

func (o *MCCQoSBWAlloc) String() string {
	return fmt.Sprintf("num=%d start=%d list=%v", len(o.List), o.StartLD, o.List)
}

// MCCQoSBWLimitGetReq is the Get QoS BW Limit request payload, CXL 2.0 v1.0
// Table 119.
type MCCQoSBWLimitGetReq struct {
	NumLDs  uint8
	StartLD uint8
}

var _ Object = &MCCQoSBWLimitGetReq{}

func (o *MCCQoSBWLimitGetReq) Kind() ObjectKind {
	return KindMCCQoSBWLimitGetReq
}

func (o *MCCQoSBWLimitGetReq) Size() int {
	return mccQoSBWGetReqLen
}

func (o *MCCQoSBWLimitGetReq) Marshal(dst []byte) (int, error) {
	if len(dst) < mccQoSBWGetReqLen {
		return 0, stderror.ErrNoEnoughData
	}
	dst[0] = o.NumLDs
	dst[1] = o.StartLD
	return mccQoSBWGetReqLen, nil
}

func (o *MCCQoSBWLimitGetReq) Unmarshal(src []byte) (int, error) {
	if len(src) < mccQoSBWGetReqLen {
		return 0, stderror.ErrNoEnoughData
	}
	o.NumLDs = src[0]
	o.StartLD = src[1]
	return mccQoSBWGetReqLen, nil
}

func (o *MCCQoSBWLimitGetReq) String() string {
	return fmt.Sprintf("num=%d start=%d", o.NumLDs, o.StartLD)
}

// MCCQoSBWLimit is the payload of the Get and Set QoS BW Limit commands,
// CXL 2.0 v1.0 Table 120. List holds one bandwidth limit fraction per LD,
// in multiples of 1/256.
type MCCQoSBWLimit struct {
	StartLD uint8
	List    []uint8
}

var _ Object = &MCCQoSBWLimit{}

func (o *MCCQoSBWLimit) Kind() ObjectKind {
	return KindMCCQoSBWLimit
}

func (o *MCCQoSBWLimit) Size() int {
	return mccQoSBWHdrLen + len(o.List)
}

func (o *MCCQoSBWLimit) Marshal(dst []byte) (int, error) {
	return marshalQoSBW(dst, o.StartLD, o.List, o.Size())
}

func (o *MCCQoSBWLimit) Unmarshal(src []byte) (int, error) {
	var err error
	o.StartLD, o.List, err = unmarshalQoSBW(src)
	if err != nil {
		return 0, err
	}
	return o.Size(), nil
}

func (o *MCCQoSBWLimit) String() string {
	return fmt.Sprintf("num=%d start=%d list=%v", len(o.List), o.StartLD, o.List)
}

// The QoS allocated BW and BW limit payloads share a wire shape.

func marshalQoSBW(dst []byte, start uint8, list []uint8, size int) (int, error) {
	if len(list) > MaxLDs {
		return 0, stderror.ErrOutOfRange
	}
	if len(dst) < size {
		return 0, stderror.ErrNoEnoughData
	}
	dst[0] = uint8(len(list))
	dst[1] = start
	copy(dst[2:], list)
	return size, nil
}

func unmarshalQoSBW(src []byte) (uint8, []uint8, error) {
	if len(src) < mccQoSBWHdrLen {
		return 0, nil, stderror.ErrNoEnoughData
	}
	num := int(src[0])
	if num > MaxLDs {
		return 0, nil, stderror.ErrOutOfRange
	}
	if len(src) < mccQoSBWHdrLen+num {
		return 0, nil, stderror.ErrNoEnoughData
	}
	start := src[1]
	list := make([]uint8, num)
	copy(list, src[2:2+num])
	return start, list, nil
}
