// Package gst implements the downstream filing logic: structural GSTIN
// validation, state resolution, the fixed-rate tax split, and GSTR-1 row
// assembly.
package gst

import (
	"regexp"
	"strings"

	"github.com/kiranatools/gst-agent/constants"
)

var gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][A-Z0-9]Z[A-Z0-9]$`)

// Valid reports whether gstin matches the full 15-character structural
// grammar. The trailing check digit is not verified against the official
// algorithm; validity here is structural only.
func Valid(gstin string) bool {
	if len(gstin) != 15 {
		return false
	}
	return gstinPattern.MatchString(strings.ToUpper(gstin))
}

// StateCode returns the two-digit jurisdiction code embedded in a GSTIN,
// or "00" when none can be read.
func StateCode(gstin string) string {
	if len(gstin) < 2 {
		return "00"
	}
	return gstin[:2]
}

// StateName resolves the GSTIN's jurisdiction to a state name, or "" when
// the code is missing or not a registered jurisdiction.
func StateName(gstin string) string {
	if len(gstin) < 2 {
		return ""
	}
	name, _ := constants.StateName(gstin[:2])
	return name
}
