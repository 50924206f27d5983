// Copyright (C) 2024 Jackrabbit Founders LLC.
//
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"
)

func TestCliFormatter(t *testing.T) {
	SetFormatter(&CliFormatter{})
	SetLevel(TraceLevel)
	var buf bytes.Buffer
	var msg string
	SetOutput(&buf)
	defer func() {
		SetLevel(InfoLevel)
		SetOutput(os.Stdout)
	}()

	Tracef("This is a test message")
	msg = buf.String()
	checkLogLevel(t, msg, "TRACE", false)
	buf.Reset()

	Debugf("This is a test message")
	msg = buf.String()
	checkLogLevel(t, msg, "DEBUG", false)
	buf.Reset()

	Infof("This is a test message")
	msg = buf.String()
	checkLogLevel(t, msg, "INFO", false)
	buf.Reset()

	Warnf("This is a test message")
	msg = buf.String()
	checkLogLevel(t, msg, "WARNING", false)
	buf.Reset()

	Errorf("This is a test message")
	msg = buf.String()
	checkLogLevel(t, msg, "ERROR", false)
	buf.Reset()
}

func TestDaemonFormatter(t *testing.T) {
	SetFormatter(&DaemonFormatter{})
	SetLevel(TraceLevel)
	var buf bytes.Buffer
	var msg string
	SetOutput(&buf)
	defer func() {
		SetFormatter(&CliFormatter{})
		SetLevel(InfoLevel)
		SetOutput(os.Stdout)
	}()

	Tracef("This is a test message")
	msg = buf.String()
	checkLogTimestamp(t, msg)
	checkLogLevel(t, msg, "TRACE", true)
	buf.Reset()

	Debugf("This is a test message")
	msg = buf.String()
	checkLogTimestamp(t, msg)
	checkLogLevel(t, msg, "DEBUG", true)
	buf.Reset()

	Infof("This is a test message")
	msg = buf.String()
	checkLogTimestamp(t, msg)
	checkLogLevel(t, msg, "INFO", true)
	buf.Reset()

	Warnf("This is a test message")
	msg = buf.String()
	checkLogTimestamp(t, msg)
	checkLogLevel(t, msg, "WARNING", true)
	buf.Reset()

	Errorf("This is a test message")
	msg = buf.String()
	checkLogTimestamp(t, msg)
	checkLogLevel(t, msg, "ERROR", true)
	buf.Reset()
}

func TestDaemonFormatterNoTimestamp(t *testing.T) {
	SetFormatter(&DaemonFormatter{NoTimestamp: true})
	SetLevel(InfoLevel)
	var buf bytes.Buffer
	SetOutput(&buf)
	defer func() {
		SetFormatter(&CliFormatter{})
		SetLevel(InfoLevel)
		SetOutput(os.Stdout)
	}()

	Infof("This is a test message")
	msg := buf.String()
	parts := strings.Split(msg, " ")
	if _, err := time.Parse(time.RFC3339, parts[0]); err == nil {
		t.Errorf("Timestamp should not be printed with NoTimestamp: %q", msg)
	}
	if !strings.Contains(msg, "This is a test message") {
		t.Errorf("Log message should still be printed: %q", msg)
	}
}

func TestNilFormatter(t *testing.T) {
	SetFormatter(&NilFormatter{})
	SetLevel(TraceLevel)
	var buf bytes.Buffer
	var msg string
	SetOutput(&buf)
	defer func() {
		SetFormatter(&CliFormatter{})
		SetLevel(InfoLevel)
		SetOutput(os.Stdout)
	}()

	Tracef("This is a test message")
	Debugf("This is a test message")
	Infof("This is a test message")
	Warnf("This is a test message")
	Errorf("This is a test message")
	msg = buf.String()
	if len(msg) > 0 {
		t.Errorf("Got unexpected log printed with NilFormatter: %q", msg)
	}
}

func checkLogLevel(t *testing.T, s, level string, shouldPresent bool) {
	t.Helper()
	if shouldPresent {
		if !strings.Contains(s, level) {
			t.Errorf("%q should be printed in %q", level, s)
		}
	} else {
		if strings.Contains(s, level) {
			t.Errorf("%q should not be printed in %q", level, s)
		}
	}
}

func checkLogTimestamp(t *testing.T, s string) {
	t.Helper()
	parts := strings.Split(s, " ")
	if len(parts) == 0 {
		t.Errorf("Invalid log message: %q", s)
		return
	}
	_, err := time.Parse(time.RFC3339, parts[0])
	if err != nil {
		t.Errorf("Invalid timestamp: %s, %v", parts[0], err)
	}
}
