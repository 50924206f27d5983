// Copyright (C) 2024 Jackrabbit Founders LLC.
//
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"io"
	"testing"
)

// testingAdaptor let logs to be printed to testing.T.
type testingAdaptor struct {
	t *testing.T
}

var _ io.Writer = testingAdaptor{}

func (a testingAdaptor) Write(p []byte) (n int, err error) {
	a.t.Log(string(p))
	return len(p), nil
}

// SetOutputToTest prints logs to the go test.
func SetOutputToTest(t *testing.T) {
	adaptor := testingAdaptor{t: t}
	SetOutput(adaptor)
}
