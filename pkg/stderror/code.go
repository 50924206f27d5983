// Copyright (C) 2024 Jackrabbit Founders LLC.
//
// SPDX-License-Identifier: Apache-2.0

package stderror

import (
	"fmt"
)

var (
	ErrInvalidArgument  = fmt.Errorf("INVALID ARGUMENT")
	ErrInvalidOperation = fmt.Errorf("INVALID OPERATION")
	ErrNoEnoughData     = fmt.Errorf("NO ENOUGH DATA")
	ErrNotFound         = fmt.Errorf("NOT FOUND")
	ErrNullPointer      = fmt.Errorf("NULL POINTER")
	ErrOutOfRange       = fmt.Errorf("OUT OF RANGE")
	ErrUnsupported      = fmt.Errorf("UNSUPPORTED")
)
