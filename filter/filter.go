// filter/filter.go
// Copyright(c) 2026 aptdb contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package filter decides which scenery files and which airport objects
// make it into the database. Patterns use shell style wildcards: '*'
// matches any run of characters, '?' a single character and '[a-c]' a
// character range. Matching is case insensitive and covers the whole
// string.
package filter

import (
	"fmt"
	"regexp"
	"strings"
)

// Filter is an include/exclude pattern pair. With no include patterns
// everything not excluded passes; with include patterns only matches
// pass, minus the excluded ones. A nil Filter passes everything.
type Filter struct {
	include []*regexp.Regexp
	exclude []*regexp.Regexp
}

// New compiles the given wildcard patterns. Empty patterns are dropped.
func New(include, exclude []string) (*Filter, error) {
	f := &Filter{}
	for _, pat := range include {
		if pat = strings.TrimSpace(pat); pat == "" {
			continue
		}
		re, err := compileWildcard(pat)
		if err != nil {
			return nil, fmt.Errorf("include pattern %q: %w", pat, err)
		}
		f.include = append(f.include, re)
	}
	for _, pat := range exclude {
		if pat = strings.TrimSpace(pat); pat == "" {
			continue
		}
		re, err := compileWildcard(pat)
		if err != nil {
			return nil, fmt.Errorf("exclude pattern %q: %w", pat, err)
		}
		f.exclude = append(f.exclude, re)
	}
	return f, nil
}

// Matches reports whether s passes the filter.
func (f *Filter) Matches(s string) bool {
	if f == nil || (len(f.include) == 0 && len(f.exclude) == 0) {
		return true
	}

	excluded := matchAny(f.exclude, s)
	if len(f.include) == 0 {
		return !excluded
	}
	included := matchAny(f.include, s)
	if len(f.exclude) == 0 {
		return included
	}
	return included && !excluded
}

func matchAny(res []*regexp.Regexp, s string) bool {
	for _, re := range res {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// compileWildcard translates a shell style wildcard into an anchored,
// case insensitive regular expression. Bracket expressions pass through
// unchanged; an unterminated '[' matches itself.
func compileWildcard(pat string) (*regexp.Regexp, error) {
	var sb strings.Builder
	sb.WriteString("(?i)^")
	rs := []rune(pat)
	for i := 0; i < len(rs); i++ {
		switch r := rs[i]; r {
		case '*':
			sb.WriteString(".*")
		case '?':
			sb.WriteString(".")
		case '[':
			j := i + 1
			for j < len(rs) && rs[j] != ']' {
				j++
			}
			if j < len(rs) {
				sb.WriteString(string(rs[i : j+1]))
				i = j
			} else {
				sb.WriteString(regexp.QuoteMeta(string(r)))
			}
		default:
			sb.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	sb.WriteString("$")
	return regexp.Compile(sb.String())
}

///////////////////////////////////////////////////////////////////////////
// object classes

// ObjectClass names a category of airport child objects that can be
// dropped from the output wholesale.
type ObjectClass int

const (
	Aprons ObjectClass = iota
	ApronGeometry
	TaxiPaths
	Parkings
	Coms
	Helipads
	Starts
)

func (c ObjectClass) String() string {
	switch c {
	case Aprons:
		return "aprons"
	case ApronGeometry:
		return "apron geometry"
	case TaxiPaths:
		return "taxi paths"
	case Parkings:
		return "parkings"
	case Coms:
		return "coms"
	case Helipads:
		return "helipads"
	case Starts:
		return "starts"
	}
	return "unknown"
}

// ParseObjectClass maps a configuration name to its class.
func ParseObjectClass(s string) (ObjectClass, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "apron", "aprons":
		return Aprons, nil
	case "geometry", "apron_geometry":
		return ApronGeometry, nil
	case "taxi", "taxi_path", "taxi_paths":
		return TaxiPaths, nil
	case "parking", "parkings":
		return Parkings, nil
	case "com", "coms":
		return Coms, nil
	case "helipad", "helipads":
		return Helipads, nil
	case "start", "starts":
		return Starts, nil
	}
	return 0, fmt.Errorf("unknown object class %q", s)
}

///////////////////////////////////////////////////////////////////////////
// options

// Options bundles the filters consulted during a compile. The zero
// value and nil include everything.
type Options struct {
	// AirportIdents filters airports by ICAO ident. Excluded airports
	// are skipped entirely, including all of their children.
	AirportIdents *Filter

	// Paths filters scenery files by their directory relative to the
	// scenery root, Filenames by their base name.
	Paths     *Filter
	Filenames *Filter

	excluded map[ObjectClass]bool
}

// ExcludeObjects drops the given object classes from the output.
func (o *Options) ExcludeObjects(classes ...ObjectClass) {
	if o.excluded == nil {
		o.excluded = make(map[ObjectClass]bool)
	}
	for _, c := range classes {
		o.excluded[c] = true
	}
}

// IncludeObject reports whether the class should be written.
func (o *Options) IncludeObject(c ObjectClass) bool {
	return o == nil || !o.excluded[c]
}

// IncludeAirportIdent reports whether the airport should be written.
func (o *Options) IncludeAirportIdent(ident string) bool {
	return o == nil || o.AirportIdents.Matches(ident)
}

// IncludePath reports whether a scenery directory should be scanned.
func (o *Options) IncludePath(path string) bool {
	return o == nil || o.Paths.Matches(path)
}

// IncludeFilename reports whether a scenery file should be read.
func (o *Options) IncludeFilename(name string) bool {
	return o == nil || o.Filenames.Matches(name)
}
