// db/store_test.go
// Copyright(c) 2026 aptdb contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package db

import (
	"strings"
	"testing"

	"aptdb/geo"
)

func TestInsertSQL(t *testing.T) {
	got := insertSQL("com", "com_id", "airport_id", "type", "frequency", "name")
	want := "INSERT INTO com (com_id, airport_id, type, frequency, name) VALUES ($1, $2, $3, $4, $5)"
	if got != want {
		t.Errorf("insertSQL gave %q; expected %q", got, want)
	}
}

// parseInsert pulls the table name and column list out of an insert
// statement.
func parseInsert(t *testing.T, stmt string) (string, []string) {
	t.Helper()

	rest, ok := strings.CutPrefix(stmt, "INSERT INTO ")
	if !ok {
		t.Fatalf("unexpected statement %q", stmt)
	}
	open := strings.Index(rest, "(")
	closing := strings.Index(rest, ")")
	if open == -1 || closing == -1 || closing < open {
		t.Fatalf("unexpected statement %q", stmt)
	}

	table := strings.TrimSpace(rest[:open])
	var columns []string
	for _, c := range strings.Split(rest[open+1:closing], ",") {
		columns = append(columns, strings.TrimSpace(c))
	}
	return table, columns
}

// Every column an insert statement names must exist in the schema DDL
// for its table. This catches drift between schema.go and store.go.
func TestInsertColumnsMatchSchema(t *testing.T) {
	ddl := make(map[string]string)
	for _, stmt := range schema {
		rest, ok := strings.CutPrefix(stmt, "CREATE TABLE IF NOT EXISTS ")
		if !ok {
			continue
		}
		table, _, _ := strings.Cut(rest, " ")
		ddl[table] = stmt
	}

	inserts := []string{
		insertSceneryFileSQL,
		insertAirportSQL,
		insertAirportFileSQL,
		insertRunwaySQL,
		insertRunwayEndSQL,
		insertStartSQL,
		insertHelipadSQL,
		insertComSQL,
		insertParkingSQL,
		insertApronSQL,
		insertTaxiPathSQL,
		upsertMETARSQL,
	}
	for _, stmt := range inserts {
		table, columns := parseInsert(t, stmt)
		create, ok := ddl[table]
		if !ok {
			t.Errorf("no create statement for table %q", table)
			continue
		}
		for _, col := range columns {
			// Column definitions sit one per line at a fixed indent.
			if !strings.Contains(create, "\n\t\t"+col+" ") {
				t.Errorf("table %q: inserted column %q not in schema", table, col)
			}
		}
	}
}

func TestInsertPlaceholderCounts(t *testing.T) {
	tests := []struct {
		name string
		stmt string
		want int
	}{
		{name: "scenery_file", stmt: insertSceneryFileSQL, want: 5},
		{name: "airport", stmt: insertAirportSQL, want: 56},
		{name: "airport_file", stmt: insertAirportFileSQL, want: 3},
		{name: "runway", stmt: insertRunwaySQL, want: 19},
		{name: "runway_end", stmt: insertRunwayEndSQL, want: 16},
		{name: "start", stmt: insertStartSQL, want: 10},
		{name: "helipad", stmt: insertHelipadSQL, want: 11},
		{name: "com", stmt: insertComSQL, want: 5},
		{name: "parking", stmt: insertParkingSQL, want: 11},
		{name: "apron", stmt: insertApronSQL, want: 4},
		{name: "taxi_path", stmt: insertTaxiPathSQL, want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, columns := parseInsert(t, tt.stmt)
			if len(columns) != tt.want {
				t.Errorf("%d columns; expected %d", len(columns), tt.want)
			}
			if got := strings.Count(tt.stmt, "$"); got != tt.want {
				t.Errorf("%d placeholders; expected %d", got, tt.want)
			}
		})
	}
}

func TestNullConversion(t *testing.T) {
	if v := nullStr(nil); v.Valid {
		t.Errorf("nullStr(nil) is valid")
	}
	s := "GS"
	if v := nullStr(&s); !v.Valid || v.String != "GS" {
		t.Errorf("nullStr gave %+v", v)
	}

	if v := nullInt(nil); v.Valid {
		t.Errorf("nullInt(nil) is valid")
	}
	i := 118700
	if v := nullInt(&i); !v.Valid || v.Int64 != 118700 {
		t.Errorf("nullInt gave %+v", v)
	}

	if v := nullFloat(nil); v.Valid {
		t.Errorf("nullFloat(nil) is valid")
	}
	f := 3.5
	if v := nullFloat(&f); !v.Valid || v.Float64 != 3.5 {
		t.Errorf("nullFloat gave %+v", v)
	}

	lon, lat := nullPos(nil)
	if lon.Valid || lat.Valid {
		t.Errorf("nullPos(nil) is valid")
	}
	p := geo.Point{Lon: -122.3, Lat: 47.4}
	lon, lat = nullPos(&p)
	if !lon.Valid || lon.Float64 != -122.3 || !lat.Valid || lat.Float64 != 47.4 {
		t.Errorf("nullPos gave %+v %+v", lon, lat)
	}
}
