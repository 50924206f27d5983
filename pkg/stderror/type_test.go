// Copyright (C) 2024 Jackrabbit Founders LLC.
//
// SPDX-License-Identifier: Apache-2.0

package stderror

import (
	"fmt"
	"testing"
)

func TestErrorType(t *testing.T) {
	testCases := []struct {
		name    string
		err     error
		errType ErrorType
	}{
		{
			name:    "nil error",
			err:     nil,
			errType: NO_ERROR,
		},
		{
			name:    "unknown error",
			err:     fmt.Errorf("unknown error"),
			errType: UNKNOWN_ERROR,
		},
		{
			name:    "decode error",
			err:     fmt.Errorf("decode error"),
			errType: DECODE_ERROR,
		},
		{
			name:    "encode error",
			err:     fmt.Errorf("encode error"),
			errType: ENCODE_ERROR,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			wrappedErr := WrapErrorWithType(tc.err, tc.errType)
			actualType := GetErrorType(wrappedErr)
			if actualType != tc.errType {
				t.Errorf("got error type %v, want %v", actualType, tc.errType)
			}

			if tc.err != nil {
				if wrappedErr.Error() != tc.err.Error() {
					t.Errorf("got error string %q, want %q", wrappedErr.Error(), tc.err.Error())
				}
			} else if wrappedErr.Error() != "" {
				t.Errorf("got non empty error string %q for nil error", wrappedErr.Error())
			}
		})
	}
}
