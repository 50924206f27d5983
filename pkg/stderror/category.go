// Copyright (C) 2024 Jackrabbit Founders LLC.
//
// SPDX-License-Identifier: Apache-2.0

package stderror

import (
	"errors"
	"os"
)

// IsNotExist returns true if the cause of error is a missing file.
func IsNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
