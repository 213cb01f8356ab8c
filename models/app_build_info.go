// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// BuildInfo is the version metadata linked into the console binary.
type BuildInfo struct {
	Version string
	Date    string
	Commit  string
}

// NewBuildInfo returns build metadata, replacing empty values with "N/A".
func NewBuildInfo(version, date, commit string) BuildInfo {
	return BuildInfo{
		Version: orNA(version),
		Date:    orNA(date),
		Commit:  orNA(commit),
	}
}

// String formats the metadata as a single status line.
func (b BuildInfo) String() string {
	return fmt.Sprintf("version %s (%s, built %s)", b.Version, b.Commit, b.Date)
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}
