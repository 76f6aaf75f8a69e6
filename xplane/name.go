// xplane/name.go
// Copyright(c) 2026 aptdb contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package xplane

import (
	"regexp"
	"strings"

	"aptdb/util"
)

// nameIndicator matches the bracketed attribute tags some apt.dat
// authors put in airport names, like "[H]" or "[mil]".
var nameIndicator = regexp.MustCompile(`(?i)\[(h|s|g|x|mil)\]`)

// militaryName matches service branch abbreviations that mark an
// airport name as military, as whole words only.
var militaryName = regexp.MustCompile(`\b(AAF|AB|AFB|AFLD|AFS|AHP|ANGB|ARB|CFB|CGAS|LRRS|MCAF|MCALF|MCAS|NAF|NALF|NAS|NAWS|NOLF|NSB|NSF|NSY|NWS|PMRF|RAAF|RAF|RNAS|RNZAF|MIL|MILITARY|AIR BASE|AIR FORCE BASE|NAVAL STATION)\b`)

// airportWord matches the word runs recapitalization operates on.
var airportWord = regexp.MustCompile(`[A-Za-z0-9]+`)

// keepUpper lists tokens that stay fully uppercase when an airport
// name is recapitalized.
var keepUpper = map[string]interface{}{
	"AAF": nil, "AB": nil, "AFB": nil, "AFLD": nil, "AFS": nil,
	"AHP": nil, "ANGB": nil, "ARB": nil, "CFB": nil, "CGAS": nil,
	"LRRS": nil, "MCAF": nil, "MCALF": nil, "MCAS": nil, "NAF": nil,
	"NALF": nil, "NAS": nil, "NAWS": nil, "NOLF": nil, "NSB": nil,
	"NSF": nil, "NSY": nil, "NWS": nil, "PMRF": nil, "RAAF": nil,
	"RAF": nil, "RNAS": nil, "RNZAF": nil,
	"II": nil, "III": nil, "IV": nil, "VI": nil, "VII": nil, "VIII": nil,
}

// IsNameClosed reports whether an airport name marks the field as
// closed, either with the "[X]" tag or the word CLOSED.
func IsNameClosed(name string) bool {
	upper := strings.ToUpper(name)
	return strings.Contains(upper, "[X]") || strings.Contains(upper, "CLOSED")
}

// IsNameMilitary checks the name for military base abbreviations. It
// runs before recapitalization since the match is case sensitive.
func IsNameMilitary(name string) bool {
	return militaryName.MatchString(strings.ToUpper(name))
}

// StripNameIndicators removes bracketed attribute tags from a name.
func StripNameIndicators(name string) string {
	if !nameIndicator.MatchString(name) {
		return name
	}
	return strings.Join(strings.Fields(nameIndicator.ReplaceAllString(name, "")), " ")
}

// CapAirportName converts an all-caps name to title case while keeping
// well known abbreviations and roman numerals uppercase.
func CapAirportName(name string) string {
	return airportWord.ReplaceAllStringFunc(name, func(w string) string {
		if util.IsAllNumbers(w) {
			return w
		}
		upper := strings.ToUpper(w)
		if _, ok := keepUpper[upper]; ok {
			return upper
		}
		return upper[:1] + strings.ToLower(w[1:])
	})
}
