// Copyright (C) 2024 Jackrabbit Founders LLC.
//
// SPDX-License-Identifier: Apache-2.0

// Package log wraps the process-wide logrus logger behind package-level
// functions and provides the formatters used by commands and daemons.
package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Fields is a set of structured log fields.
type Fields = logrus.Fields

// Level is a logging severity level.
type Level = logrus.Level

const (
	FatalLevel = logrus.FatalLevel
	ErrorLevel = logrus.ErrorLevel
	WarnLevel  = logrus.WarnLevel
	InfoLevel  = logrus.InfoLevel
	DebugLevel = logrus.DebugLevel
	TraceLevel = logrus.TraceLevel
)

// init modifies the global logger instance with the desired output (stdout)
// and customized formatter.
func init() {
	SetOutput(os.Stdout)
	SetFormatter(&CliFormatter{})
}

// SetLevel adjusts the level of the global logger.
func SetLevel(level Level) {
	logrus.SetLevel(level)
}

// ParseLevel converts a level name such as "debug" into a Level.
func ParseLevel(s string) (Level, error) {
	return logrus.ParseLevel(s)
}

// IsLevelEnabled reports whether the global logger emits the given level.
func IsLevelEnabled(level Level) bool {
	return logrus.IsLevelEnabled(level)
}

// SetOutput redirects the global logger output.
func SetOutput(w io.Writer) {
	logrus.SetOutput(w)
}

// SetFormatter replaces the formatter of the global logger.
func SetFormatter(f logrus.Formatter) {
	logrus.SetFormatter(f)
}

// WithFields attaches structured fields to a log entry.
func WithFields(fields Fields) *logrus.Entry {
	return logrus.WithFields(fields)
}

func Tracef(format string, args ...any) {
	logrus.Tracef(format, args...)
}

func Debugf(format string, args ...any) {
	logrus.Debugf(format, args...)
}

func Infof(format string, args ...any) {
	logrus.Infof(format, args...)
}

func Warnf(format string, args ...any) {
	logrus.Warnf(format, args...)
}

func Errorf(format string, args ...any) {
	logrus.Errorf(format, args...)
}

func Fatalf(format string, args ...any) {
	logrus.Fatalf(format, args...)
}
