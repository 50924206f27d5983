// Copyright (C) 2024 Jackrabbit Founders LLC.
//
// SPDX-License-Identifier: Apache-2.0

package fmapi

import (
	"encoding/binary"
	"fmt"

	"github.com/JackrabbitLabs/fmapi/pkg/stderror"
)

// HeaderLen is the serialized length of a message header in bytes.
const HeaderLen = 12

// MaxHeaderPayloadLen is the largest value representable by the 21-bit
// payload length field.
const MaxHeaderPayloadLen = 1<<21 - 1

// Header is the 12-byte FM API message header, CXL 2.0 v1.0 Table 84.
//
// Byte layout, all multi-byte fields little-endian:
//
//	0      message category in the upper nibble
//	1      tag
//	2      reserved
//	3-4    command opcode
//	5-7    payload length, 21 bits, with the background flag in bit 0 of
//	       byte 7 and the top 5 length bits in bits 3-7 of byte 7
//	8-9    return code
//	10-11  extended status
type Header struct {
	Category   MessageCategory
	Tag        uint8
	Opcode     Opcode
	Len        uint32
	Background bool
	ReturnCode ReturnCode
	ExtStatus  uint16
}

var _ Object = &Header{}

func (h *Header) Kind() ObjectKind {
	return KindHeader
}

func (h *Header) Size() int {
	return HeaderLen
}

func (h *Header) Marshal(dst []byte) (int, error) {
	if len(dst) < HeaderLen {
		return 0, stderror.ErrNoEnoughData
	}
	if h.Len > MaxHeaderPayloadLen {
		return 0, stderror.ErrOutOfRange
	}
	dst[0] = byte(h.Category<<4) & 0xF0
	dst[1] = h.Tag
	dst[2] = 0
	dst[3] = byte(h.Opcode)
	dst[4] = byte(h.Opcode >> 8)
	dst[5] = byte(h.Len)
	dst[6] = byte(h.Len >> 8)
	dst[7] = byte(h.Len>>13) & 0xF8
	if h.Background {
		dst[7] |= 0x01
	}
	binary.LittleEndian.PutUint16(dst[8:10], uint16(h.ReturnCode))
	binary.LittleEndian.PutUint16(dst[10:12], h.ExtStatus)
	return HeaderLen, nil
}

func (h *Header) Unmarshal(src []byte) (int, error) {
	if len(src) < HeaderLen {
		return 0, stderror.ErrNoEnoughData
	}
	h.Category = MessageCategory(src[0]>>4) & 0x0F
	h.Tag = src[1]
	h.Opcode = Opcode(src[4])<<8 | Opcode(src[3])
	h.Len = uint32(src[7]&0xF8)<<13 | uint32(src[6])<<8 | uint32(src[5])
	h.Background = src[7]&0x01 != 0
	h.ReturnCode = ReturnCode(binary.LittleEndian.Uint16(src[8:10]))
	h.ExtStatus = binary.LittleEndian.Uint16(src[10:12])
	return HeaderLen, nil
}

func (h *Header) String() string {
	return fmt.Sprintf("%s %q tag=%d len=%d background=%v rc=%q ext=0x%04x",
		h.Category, h.Opcode.String(), h.Tag, h.Len, h.Background, h.ReturnCode.String(), h.ExtStatus)
}
