// Copyright (C) 2024 Jackrabbit Founders LLC.
//
// SPDX-License-Identifier: Apache-2.0

package stderror

const (
	DecodeHeaderFailedErr  = "decode message header failed: %w"
	DecodeMessageFailedErr = "decode message failed: %w"
	DecodeTunnelFailedErr  = "decode tunneled message failed: %w"
	EncodeMessageFailedErr = "encode message failed: %w"
	LoadProfileFailedErr   = "load device profile failed: %w"
	ParseProfileFailedErr  = "parse device profile failed: %w"
	ReadInputFailedErr     = "read input failed: %w"
)
