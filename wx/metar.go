// wx/metar.go
// Copyright(c) 2026 aptdb contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package wx

import (
	"bufio"
	"io"
	"regexp"
	"strings"
)

// METAR is one raw report from an X-Plane weather cycle file. Only the
// station and the raw text matter here; decoding the report is left to
// the consumers of the metar table.
type METAR struct {
	Station string
	Raw     string
}

// Cycle files interleave timestamp lines with reports:
//
//	2017/07/30 18:45
//	KHYI 301845Z 13007KT 070V130 10SM SCT075 38/17 A2996
//
//	2017/07/30 18:55
//	KPRO 301855Z AUTO 11003KT 10SM CLR 26/19 A3022 RMK AO2
var cycleTimestamp = regexp.MustCompile(`^\d{4}/\d{2}/\d{2} \d{2}:\d{2}$`)

// Canonical collapses runs of whitespace and strips the trailing "="
// some feeds append to each report.
func Canonical(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimSuffix(raw, "=")
	return strings.Join(strings.Fields(raw), " ")
}

func isStationIdent(s string) bool {
	if len(s) < 3 || len(s) > 8 {
		return false
	}
	for _, ch := range s {
		if (ch < 'A' || ch > 'Z') && (ch < '0' || ch > '9') {
			return false
		}
	}
	return true
}

// ReadCycle reads a METAR.rwx style cycle file and returns the reports
// in first-seen station order. Stations reported more than once keep
// only the final report, which cycle files append in time order.
// Malformed lines are skipped.
func ReadCycle(r io.Reader) ([]METAR, error) {
	byStation := make(map[string]int)
	var metars []METAR

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || cycleTimestamp.MatchString(line) {
			continue
		}

		raw := Canonical(line)
		station, _, _ := strings.Cut(raw, " ")
		station = strings.ToUpper(station)
		if !isStationIdent(station) {
			continue
		}

		if i, ok := byStation[station]; ok {
			metars[i].Raw = raw
		} else {
			byStation[station] = len(metars)
			metars = append(metars, METAR{Station: station, Raw: raw})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return metars, nil
}
