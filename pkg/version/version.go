// Copyright (C) 2024 Jackrabbit Founders LLC.
//
// SPDX-License-Identifier: Apache-2.0

// Package version defines the application version number.
package version

import (
	"fmt"
	"regexp"
	"strconv"
)

// AppVersion is the version of this build.
const AppVersion = "1.0.0"

var versionFmt = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)$`)

// Version defines the components of version number.
type Version struct {
	Major int
	Minor int
	Patch int
}

// String returns the string representation of version number, e.g. "1.0.0".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// LessThan returns true if the current version is less than the compared version.
func (v Version) LessThan(another Version) bool {
	if v.Major != another.Major {
		return v.Major < another.Major
	}
	if v.Minor != another.Minor {
		return v.Minor < another.Minor
	}
	return v.Patch < another.Patch
}

// Parse constructs the version from a string.
func Parse(s string) (Version, error) {
	matches := versionFmt.FindStringSubmatch(s)
	if len(matches) != 4 {
		return Version{}, fmt.Errorf("failed to parse version %s", s)
	}
	major, _ := strconv.Atoi(matches[1])
	minor, _ := strconv.Atoi(matches[2])
	patch, _ := strconv.Atoi(matches[3])
	return Version{
		Major: major,
		Minor: minor,
		Patch: patch,
	}, nil
}
