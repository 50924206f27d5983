// Copyright (C) 2024 Jackrabbit Founders LLC.
//
// SPDX-License-Identifier: Apache-2.0

package cli

import "github.com/JackrabbitLabs/fmapi/pkg/log"

type helpFormatter struct {
	appName  string
	entries  []helpCmdEntry
	advanced []helpCmdEntry
}

type helpCmdEntry struct {
	cmd  string
	help []string
}

func (m helpFormatter) print() {
	if m.appName != "" {
		log.Infof("Usage: %s <COMMAND> [<ARGS>]", m.appName)
		log.Infof("")
	}
	if len(m.entries) != 0 {
		log.Infof("Commands:")
		for _, entry := range m.entries {
			log.Infof("  %s", entry.cmd)
			for _, line := range entry.help {
				log.Infof("        %s", line)
			}
			log.Infof("")
		}
	}
	if len(m.advanced) != 0 {
		log.Infof("Commands for developers and experienced users:")
		for _, entry := range m.advanced {
			log.Infof("  %s", entry.cmd)
			for _, line := range entry.help {
				log.Infof("        %s", line)
			}
			log.Infof("")
		}
	}
}
