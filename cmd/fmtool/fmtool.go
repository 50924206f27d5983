// Copyright (C) 2024 Jackrabbit Founders LLC.
//
// SPDX-License-Identifier: Apache-2.0

// fmtool is a command line tool to encode, decode and inspect CXL fabric
// management API messages.
package main

import (
	"github.com/JackrabbitLabs/fmapi/pkg/cli"
	"github.com/JackrabbitLabs/fmapi/pkg/log"
)

func main() {
	cli.RegisterCommands()
	if err := cli.ParseAndExecute(); err != nil {
		log.Fatalf("%v", err)
	}
}
