// Copyright (C) 2024 Jackrabbit Founders LLC.
//
// SPDX-License-Identifier: Apache-2.0

// Virtual Switch command set payloads.
//
// The Get Virtual CXL Switch Info response does not carry the number of vPPB
// status blocks per VCS on the wire. That count is a function of the request
// that produced the response, so VSCInfoBlk and VSCInfoRsp hold a reference
// to the request and refuse to Unmarshal without one.

package fmapi

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/JackrabbitLabs/fmapi/pkg/mathext"
	"github.com/JackrabbitLabs/fmapi/pkg/stderror"
)

const (
	vscInfoReqHdrLen = 3
	vscPPBStatBlkLen = 4
	vscInfoBlkHdrLen = 4
	vscInfoRspHdrLen = 4
	vscBindReqLen    = 6
	vscUnbindReqLen  = 3
	vscAERReqLen     = 40
)

// VSCInfoReq is the Get Virtual CXL Switch Info request payload,
// CXL 2.0 v1.0 Table 98. VPPBIDStart and VPPBIDLimit bound the vPPB status
// blocks returned for each listed VCS.
type VSCInfoReq struct {
	VPPBIDStart uint8
	VPPBIDLimit uint8
	VCSs        []uint8
}

var _ Object = &VSCInfoReq{}

func (o *VSCInfoReq) Kind() ObjectKind {
	return KindVSCInfoReq
}

func (o *VSCInfoReq) Size() int {
	return vscInfoReqHdrLen + len(o.VCSs)
}

// numPPBs returns the vPPB status block count the response to this request
// carries for a VCS with the given total vPPB count.
func (o *VSCInfoReq) numPPBs(total uint8) int {
	n := mathext.Max(int(total)-int(o.VPPBIDStart), 0)
	return mathext.Min(n, int(o.VPPBIDLimit))
}

func (o *VSCInfoReq) Marshal(dst []byte) (int, error) {
	if len(o.VCSs) > 255 {
		return 0, stderror.ErrOutOfRange
	}
	if len(dst) < o.Size() {
		return 0, stderror.ErrNoEnoughData
	}
	dst[0] = o.VPPBIDStart
	dst[1] = o.VPPBIDLimit
	dst[2] = uint8(len(o.VCSs))
	copy(dst[3:], o.VCSs)
	return o.Size(), nil
}

func (o *VSCInfoReq) Unmarshal(src []byte) (int, error) {
	if len(src) < vscInfoReqHdrLen {
		return 0, stderror.ErrNoEnoughData
	}
	o.VPPBIDStart = src[0]
	o.VPPBIDLimit = src[1]
	num := int(src[2])
	if len(src) < vscInfoReqHdrLen+num {
		return 0, stderror.ErrNoEnoughData
	}
	o.VCSs = make([]uint8, num)
	copy(o.VCSs, src[3:3+num])
	return vscInfoReqHdrLen + num, nil
}

func (o *VSCInfoReq) String() string {
	return fmt.Sprintf("start=%d limit=%d num=%d vcss=%v",
		o.VPPBIDStart, o.VPPBIDLimit, len(o.VCSs), o.VCSs)
}

// VSCPPBStatBlk is the binding status of one vPPB, CXL 2.0 v1.0 Table 99.
// PPID and LDID are only meaningful when Status says the vPPB is bound.
type VSCPPBStatBlk struct {
	Status BindStatus
	PPID   uint8
	LDID   uint8
}

var _ Object = &VSCPPBStatBlk{}

func (o *VSCPPBStatBlk) Kind() ObjectKind {
	return KindVSCPPBStatBlk
}

func (o *VSCPPBStatBlk) Size() int {
	return vscPPBStatBlkLen
}

func (o *VSCPPBStatBlk) Marshal(dst []byte) (int, error) {
	if len(dst) < vscPPBStatBlkLen {
		return 0, stderror.ErrNoEnoughData
	}
	dst[0] = uint8(o.Status)
	dst[1] = o.PPID
	dst[2] = o.LDID
	dst[3] = 0
	return vscPPBStatBlkLen, nil
}

func (o *VSCPPBStatBlk) Unmarshal(src []byte) (int, error) {
	if len(src) < vscPPBStatBlkLen {
		return 0, stderror.ErrNoEnoughData
	}
	o.Status = BindStatus(src[0])
	o.PPID = src[1]
	o.LDID = src[2]
	return vscPPBStatBlkLen, nil
}

func (o *VSCPPBStatBlk) String() string {
	return fmt.Sprintf("status=%q ppid=%d ldid=%d", o.Status.String(), o.PPID, o.LDID)
}

// VSCInfoBlk describes one virtual CXL switch, CXL 2.0 v1.0 Table 99.
// Req must reference the request that produced the enclosing response before
// Unmarshal is called; the number of vPPB status blocks is not on the wire.
type VSCInfoBlk struct {
	VCSID      uint8
	State      VCSState
	USPID      uint8
	TotalVPPBs uint8
	PPBs       []VSCPPBStatBlk

	Req *VSCInfoReq
}

var _ Object = &VSCInfoBlk{}

func (o *VSCInfoBlk) Kind() ObjectKind {
	return KindVSCInfoBlk
}

func (o *VSCInfoBlk) Size() int {
	return vscInfoBlkHdrLen + len(o.PPBs)*vscPPBStatBlkLen
}

func (o *VSCInfoBlk) Marshal(dst []byte) (int, error) {
	if len(o.PPBs) > MaxVPPBs {
		return 0, stderror.ErrOutOfRange
	}
	if len(dst) < o.Size() {
		return 0, stderror.ErrNoEnoughData
	}
	dst[0] = o.VCSID
	dst[1] = uint8(o.State)
	dst[2] = o.USPID
	dst[3] = o.TotalVPPBs
	off := vscInfoBlkHdrLen
	for i := range o.PPBs {
		n, err := o.PPBs[i].Marshal(dst[off:])
		if err != nil {
			return 0, err
		}
		off += n
	}
	return off, nil
}

func (o *VSCInfoBlk) Unmarshal(src []byte) (int, error) {
	if o.Req == nil {
		return 0, stderror.ErrInvalidOperation
	}
	if len(src) < vscInfoBlkHdrLen {
		return 0, stderror.ErrNoEnoughData
	}
	o.VCSID = src[0]
	o.State = VCSState(src[1])
	o.USPID = src[2]
	o.TotalVPPBs = src[3]
	num := o.Req.numPPBs(o.TotalVPPBs)
	o.PPBs = make([]VSCPPBStatBlk, num)
	off := vscInfoBlkHdrLen
	for i := 0; i < num; i++ {
		n, err := o.PPBs[i].Unmarshal(src[off:])
		if err != nil {
			return 0, err
		}
		off += n
	}
	return off, nil
}

func (o *VSCInfoBlk) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "vcsid=%d state=%q uspid=%d total=%d",
		o.VCSID, o.State.String(), o.USPID, o.TotalVPPBs)
	for i := range o.PPBs {
		fmt.Fprintf(&sb, " [%s]", o.PPBs[i].String())
	}
	return sb.String()
}

// VSCInfoRsp is the Get Virtual CXL Switch Info response payload,
// CXL 2.0 v1.0 Table 99. At most MaxVCSPerRsp info blocks fit in one
// response. Req must reference the request before Unmarshal is called.
type VSCInfoRsp struct {
	Blocks []VSCInfoBlk

	Req *VSCInfoReq
}

var _ Object = &VSCInfoRsp{}

func (o *VSCInfoRsp) Kind() ObjectKind {
	return KindVSCInfoRsp
}

func (o *VSCInfoRsp) Size() int {
	size := vscInfoRspHdrLen
	for i := range o.Blocks {
		size += o.Blocks[i].Size()
	}
	return size
}

func (o *VSCInfoRsp) Marshal(dst []byte) (int, error) {
	if len(o.Blocks) > MaxVCSPerRsp {
		return 0, stderror.ErrOutOfRange
	}
	if len(dst) < o.Size() {
		return 0, stderror.ErrNoEnoughData
	}
	dst[0] = uint8(len(o.Blocks))
	dst[1] = 0
	dst[2] = 0
	dst[3] = 0
	off := vscInfoRspHdrLen
	for i := range o.Blocks {
		n, err := o.Blocks[i].Marshal(dst[off:])
		if err != nil {
			return 0, err
		}
		off += n
	}
	return off, nil
}

func (o *VSCInfoRsp) Unmarshal(src []byte) (int, error) {
	if o.Req == nil {
		return 0, stderror.ErrInvalidOperation
	}
	if len(src) < vscInfoRspHdrLen {
		return 0, stderror.ErrNoEnoughData
	}
	num := int(src[0])
	if num > MaxVCSPerRsp {
		return 0, stderror.ErrOutOfRange
	}
	o.Blocks = make([]VSCInfoBlk, num)
	off := vscInfoRspHdrLen
	for i := 0; i < num; i++ {
		o.Blocks[i].Req = o.Req
		n, err := o.Blocks[i].Unmarshal(src[off:])
		if err != nil {
			return 0, err
		}
		off += n
	}
	return off, nil
}

func (o *VSCInfoRsp) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "num=%d", len(o.Blocks))
	for i := range o.Blocks {
		fmt.Fprintf(&sb, " {%s}", o.Blocks[i].String())
	}
	return sb.String()
}

// VSCBindReq is the Bind vPPB request payload, CXL 2.0 v1.0 Table 100.
// LDID is FMLDID unless binding an LD of an MLD.
type VSCBindReq struct {
	VCSID  uint8
	VPPBID uint8
	PPID   uint8
	LDID   uint16
}

var _ Object = &VSCBindReq{}

func (o *VSCBindReq) Kind() ObjectKind {
	return KindVSCBindReq
}

func (o *VSCBindReq) Size() int {
	return vscBindReqLen
}

func (o *VSCBindReq) Marshal(dst []byte) (int, error) {
	if len(dst) < vscBindReqLen {
		return 0, stderror.ErrNoEnoughData
	}
	dst[0] = o.VCSID
	dst[1] = o.VPPBID
	dst[2] = o.PPID
	dst[3] = 0
	binary.LittleEndian.PutUint16(dst[4:6], o.LDID)
	return vscBindReqLen, nil
}

func (o *VSCBindReq) Unmarshal(src []byte) (int, error) {
	if len(src) < vscBindReqLen {
		return 0, stderror.ErrNoEnoughData
	}
	o.VCSID = src[0]
	o.VPPBID = src[1]
	o.PPID = src[2]
	o.LDID = binary.LittleEndian.Uint16(src[4:6])
	return vscBindReqLen, nil
}

func (o *VSCBindReq) String() string {
	return fmt.Sprintf("vcsid=%d vppbid=%d ppid=%d ldid=0x%04x",
		o.VCSID, o.VPPBID, o.PPID, o.LDID)
}

// VSCUnbindReq is the Unbind vPPB request payload, CXL 2.0 v1.0 Table 103.
type VSCUnbindReq struct {
	VCSID  uint8
	VPPBID uint8
	Option UnbindOption
}

var _ Object = &VSCUnbindReq{}

func (o *VSCUnbindReq) Kind() ObjectKind {
	return KindVSCUnbindReq
}

func (o *VSCUnbindReq) Size() int {
	return vscUnbindReqLen
}

func (o *VSCUnbindReq) Marshal(dst []byte) (int, error) {
	if len(dst) < vscUnbindReqLen {
		return 0, stderror.ErrNoEnoughData
	}
	dst[0] = o.VCSID
	dst[1] = o.VPPBID
	dst[2] = uint8(o.Option)
	return vscUnbindReqLen, nil
}

func (o *VSCUnbindReq) Unmarshal(src []byte) (int, error) {
	if len(src) < vscUnbindReqLen {
		return 0, stderror.ErrNoEnoughData
	}
	o.VCSID = src[0]
	o.VPPBID = src[1]
	o.Option = UnbindOption(src[2])
	return vscUnbindReqLen, nil
}

func (o *VSCUnbindReq) String() string {
	return fmt.Sprintf("vcsid=%d vppbid=%d option=%q", o.VCSID, o.VPPBID, o.Option.String())
}

// VSCAERReq is the Generate AER Event request payload, CXL 2.0 v1.0
// Table 104. Header is the raw TLP header to place in the AER registers.
type VSCAERReq struct {
	VCSID     uint8
	VPPBID    uint8
	ErrorType uint32
	Header    [TLPHeaderLen]byte
}

var _ Object = &VSCAERReq{}

func (o *VSCAERReq) Kind() ObjectKind {
	return KindVSCAERReq
}

func (o *VSCAERReq) Size() int {
	return vscAERReqLen
}

func (o *VSCAERReq) Marshal(dst []byte) (int, error) {
	if len(dst) < vscAERReqLen {
		return 0, stderror.ErrNoEnoughData
	}
	dst[0] = o.VCSID
	dst[1] = o.VPPBID
	dst[2] = 0
	dst[3] = 0
	binary.LittleEndian.PutUint32(dst[4:8], o.ErrorType)
	copy(dst[8:40], o.Header[:])
	return vscAERReqLen, nil
}

func (o *VSCAERReq) Unmarshal(src []byte) (int, error) {
	if len(src) < vscAERReqLen {
		return 0, stderror.ErrNoEnoughData
	}
	o.VCSID = src[0]
	o.VPPBID = src[1]
	o.ErrorType = binary.LittleEndian.Uint32(src[4:8])
	copy(o.Header[:], src[8:40])
	return vscAERReqLen, nil
}

func (o *VSCAERReq) String() string {
	return fmt.Sprintf("vcsid=%d vppbid=%d errorType=0x%08x header=%x",
		o.VCSID, o.VPPBID, o.ErrorType, o.Header)
}
