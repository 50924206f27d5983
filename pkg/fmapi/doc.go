// Copyright (C) 2024 Jackrabbit Founders LLC.
//
// SPDX-License-Identifier: Apache-2.0

// Package fmapi implements the encode and decode layer of the CXL Fabric
// Management API: the 12-byte message header, the per-opcode payload object
// grammar, and the serialize/deserialize machinery shared by both directions.
//
// As required by the CXL specification, all multi-byte fields are
// little-endian. The package is stateless and safe for concurrent use; every
// call operates only on caller-supplied buffers and objects.
//
// The package does not carry bytes anywhere. A transport (MCTP, a PCIe
// mailbox) is expected to deliver a complete message buffer to Decode and to
// accept the buffer produced by Message.Encode.
package fmapi
