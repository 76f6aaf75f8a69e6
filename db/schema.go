// db/schema.go
// Copyright(c) 2026 aptdb contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package db

import (
	"database/sql"
	"fmt"
)

// Columns that never vary per row (pattern altitudes, jetway counts and
// the like are not present in apt.dat) carry their fixed value as a
// column default and are omitted from the insert statements.
//
// Child rows arrive before their airport row and runways before their
// end rows, so every foreign key is deferred to commit time.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS scenery_file (
		scenery_file_id INTEGER PRIMARY KEY,
		local_path TEXT NOT NULL,
		filename TEXT NOT NULL,
		is_addon BOOLEAN NOT NULL,
		is_3d BOOLEAN NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS airport (
		airport_id INTEGER PRIMARY KEY,
		file_id INTEGER NOT NULL REFERENCES scenery_file (scenery_file_id) DEFERRABLE INITIALLY DEFERRED,
		ident TEXT NOT NULL,
		name TEXT NOT NULL,
		city TEXT,
		country TEXT,
		region TEXT,
		fuel_flags INTEGER NOT NULL DEFAULT 0,
		has_avgas BOOLEAN NOT NULL,
		has_jetfuel BOOLEAN NOT NULL,
		has_tower_object BOOLEAN NOT NULL,
		is_closed BOOLEAN NOT NULL,
		is_military BOOLEAN NOT NULL,
		is_addon BOOLEAN NOT NULL,
		is_3d BOOLEAN NOT NULL,
		num_boundary_fence INTEGER NOT NULL DEFAULT 0,
		num_com INTEGER NOT NULL,
		num_parking_gate INTEGER NOT NULL,
		num_parking_ga_ramp INTEGER NOT NULL,
		num_parking_cargo INTEGER NOT NULL,
		num_parking_mil_cargo INTEGER NOT NULL,
		num_parking_mil_combat INTEGER NOT NULL,
		num_approach INTEGER NOT NULL DEFAULT 0,
		num_runway_hard INTEGER NOT NULL,
		num_runway_soft INTEGER NOT NULL,
		num_runway_water INTEGER NOT NULL,
		num_runway_light INTEGER NOT NULL,
		num_runway_end_closed INTEGER NOT NULL DEFAULT 0,
		num_runway_end_vasi INTEGER NOT NULL,
		num_runway_end_als INTEGER NOT NULL,
		num_runway_end_ils INTEGER,
		num_apron INTEGER NOT NULL,
		num_taxi_path INTEGER NOT NULL,
		num_helipad INTEGER NOT NULL,
		num_jetway INTEGER NOT NULL DEFAULT 0,
		num_starts INTEGER NOT NULL,
		longest_runway_length INTEGER NOT NULL,
		longest_runway_width INTEGER NOT NULL,
		longest_runway_heading DOUBLE PRECISION NOT NULL,
		longest_runway_surface TEXT NOT NULL,
		num_runways INTEGER NOT NULL,
		largest_parking_ramp TEXT,
		largest_parking_gate TEXT,
		rating INTEGER NOT NULL,
		scenery_local_path TEXT NOT NULL,
		bgl_filename TEXT NOT NULL,
		left_lonx DOUBLE PRECISION NOT NULL,
		top_laty DOUBLE PRECISION NOT NULL,
		right_lonx DOUBLE PRECISION NOT NULL,
		bottom_laty DOUBLE PRECISION NOT NULL,
		mag_var DOUBLE PRECISION NOT NULL,
		tower_frequency INTEGER,
		atis_frequency INTEGER,
		awos_frequency INTEGER,
		asos_frequency INTEGER,
		unicom_frequency INTEGER,
		tower_lonx DOUBLE PRECISION,
		tower_laty DOUBLE PRECISION,
		tower_altitude DOUBLE PRECISION,
		altitude DOUBLE PRECISION NOT NULL,
		lonx DOUBLE PRECISION NOT NULL,
		laty DOUBLE PRECISION NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS airport_file (
		airport_file_id INTEGER PRIMARY KEY,
		file_id INTEGER NOT NULL REFERENCES scenery_file (scenery_file_id) DEFERRABLE INITIALLY DEFERRED,
		ident TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS runway_end (
		runway_end_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		end_type TEXT NOT NULL,
		offset_threshold INTEGER NOT NULL,
		blast_pad INTEGER NOT NULL,
		overrun INTEGER NOT NULL DEFAULT 0,
		has_closed_markings BOOLEAN NOT NULL,
		has_stol_markings BOOLEAN NOT NULL DEFAULT FALSE,
		is_takeoff BOOLEAN NOT NULL DEFAULT TRUE,
		is_landing BOOLEAN NOT NULL DEFAULT TRUE,
		is_pattern TEXT NOT NULL DEFAULT 'N',
		app_light_system_type TEXT,
		has_end_lights BOOLEAN NOT NULL DEFAULT FALSE,
		has_reils BOOLEAN NOT NULL,
		has_touchdown_lights BOOLEAN NOT NULL,
		num_strobes INTEGER NOT NULL DEFAULT 0,
		left_vasi_type TEXT,
		left_vasi_pitch DOUBLE PRECISION,
		right_vasi_type TEXT,
		right_vasi_pitch DOUBLE PRECISION,
		heading DOUBLE PRECISION NOT NULL,
		lonx DOUBLE PRECISION NOT NULL,
		laty DOUBLE PRECISION NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS runway (
		runway_id INTEGER PRIMARY KEY,
		airport_id INTEGER NOT NULL REFERENCES airport (airport_id) DEFERRABLE INITIALLY DEFERRED,
		primary_end_id INTEGER NOT NULL REFERENCES runway_end (runway_end_id) DEFERRABLE INITIALLY DEFERRED,
		secondary_end_id INTEGER NOT NULL REFERENCES runway_end (runway_end_id) DEFERRABLE INITIALLY DEFERRED,
		surface TEXT NOT NULL,
		shoulder TEXT,
		length INTEGER NOT NULL,
		width INTEGER NOT NULL,
		heading DOUBLE PRECISION NOT NULL,
		pattern_altitude INTEGER NOT NULL DEFAULT 0,
		marking_flags INTEGER NOT NULL,
		edge_light TEXT,
		center_light TEXT,
		has_center_red BOOLEAN NOT NULL DEFAULT FALSE,
		primary_lonx DOUBLE PRECISION NOT NULL,
		primary_laty DOUBLE PRECISION NOT NULL,
		secondary_lonx DOUBLE PRECISION NOT NULL,
		secondary_laty DOUBLE PRECISION NOT NULL,
		altitude DOUBLE PRECISION NOT NULL,
		lonx DOUBLE PRECISION NOT NULL,
		laty DOUBLE PRECISION NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS start (
		start_id INTEGER PRIMARY KEY,
		airport_id INTEGER NOT NULL REFERENCES airport (airport_id) DEFERRABLE INITIALLY DEFERRED,
		runway_end_id INTEGER REFERENCES runway_end (runway_end_id) DEFERRABLE INITIALLY DEFERRED,
		runway_name TEXT NOT NULL,
		type TEXT NOT NULL,
		heading DOUBLE PRECISION NOT NULL,
		number INTEGER,
		altitude DOUBLE PRECISION NOT NULL,
		lonx DOUBLE PRECISION NOT NULL,
		laty DOUBLE PRECISION NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS helipad (
		helipad_id INTEGER PRIMARY KEY,
		airport_id INTEGER NOT NULL REFERENCES airport (airport_id) DEFERRABLE INITIALLY DEFERRED,
		start_id INTEGER REFERENCES start (start_id) DEFERRABLE INITIALLY DEFERRED,
		surface TEXT NOT NULL,
		type TEXT NOT NULL DEFAULT 'H',
		length INTEGER NOT NULL,
		width INTEGER NOT NULL,
		heading DOUBLE PRECISION NOT NULL,
		is_transparent BOOLEAN NOT NULL DEFAULT FALSE,
		is_closed BOOLEAN NOT NULL,
		altitude DOUBLE PRECISION NOT NULL,
		lonx DOUBLE PRECISION NOT NULL,
		laty DOUBLE PRECISION NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS com (
		com_id INTEGER PRIMARY KEY,
		airport_id INTEGER NOT NULL REFERENCES airport (airport_id) DEFERRABLE INITIALLY DEFERRED,
		type TEXT NOT NULL,
		frequency INTEGER NOT NULL,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS parking (
		parking_id INTEGER PRIMARY KEY,
		airport_id INTEGER NOT NULL REFERENCES airport (airport_id) DEFERRABLE INITIALLY DEFERRED,
		type TEXT NOT NULL,
		name TEXT NOT NULL,
		airline_codes TEXT,
		number INTEGER NOT NULL,
		radius DOUBLE PRECISION NOT NULL,
		heading DOUBLE PRECISION NOT NULL,
		has_jetway BOOLEAN NOT NULL DEFAULT FALSE,
		lonx DOUBLE PRECISION NOT NULL,
		laty DOUBLE PRECISION NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS apron (
		apron_id INTEGER PRIMARY KEY,
		airport_id INTEGER NOT NULL REFERENCES airport (airport_id) DEFERRABLE INITIALLY DEFERRED,
		surface TEXT NOT NULL,
		is_draw_surface BOOLEAN NOT NULL DEFAULT TRUE,
		is_draw_detail BOOLEAN NOT NULL DEFAULT TRUE,
		geometry BYTEA
	)`,
	`CREATE TABLE IF NOT EXISTS taxi_path (
		taxi_path_id INTEGER PRIMARY KEY,
		airport_id INTEGER NOT NULL REFERENCES airport (airport_id) DEFERRABLE INITIALLY DEFERRED,
		type TEXT NOT NULL DEFAULT 'T',
		surface TEXT,
		width DOUBLE PRECISION NOT NULL DEFAULT 0,
		name TEXT NOT NULL,
		is_draw_surface BOOLEAN NOT NULL DEFAULT TRUE,
		is_draw_detail BOOLEAN NOT NULL DEFAULT TRUE,
		has_centerline BOOLEAN NOT NULL DEFAULT FALSE,
		has_centerline_light BOOLEAN NOT NULL DEFAULT FALSE,
		has_left_edge_light BOOLEAN NOT NULL DEFAULT FALSE,
		has_right_edge_light BOOLEAN NOT NULL DEFAULT FALSE,
		start_type TEXT NOT NULL DEFAULT 'N',
		start_lonx DOUBLE PRECISION NOT NULL,
		start_laty DOUBLE PRECISION NOT NULL,
		end_type TEXT NOT NULL DEFAULT 'N',
		end_lonx DOUBLE PRECISION NOT NULL,
		end_laty DOUBLE PRECISION NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS airport_metar (
		ident TEXT PRIMARY KEY,
		metar TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_airport_ident ON airport (ident)`,
	`CREATE INDEX IF NOT EXISTS idx_airport_file_ident ON airport_file (ident)`,
	`CREATE INDEX IF NOT EXISTS idx_runway_airport_id ON runway (airport_id)`,
	`CREATE INDEX IF NOT EXISTS idx_start_airport_id ON start (airport_id)`,
	`CREATE INDEX IF NOT EXISTS idx_helipad_airport_id ON helipad (airport_id)`,
	`CREATE INDEX IF NOT EXISTS idx_com_airport_id ON com (airport_id)`,
	`CREATE INDEX IF NOT EXISTS idx_parking_airport_id ON parking (airport_id)`,
	`CREATE INDEX IF NOT EXISTS idx_apron_airport_id ON apron (airport_id)`,
	`CREATE INDEX IF NOT EXISTS idx_taxi_path_airport_id ON taxi_path (airport_id)`,
}

// EnsureSchema creates the output tables and indexes if they do not
// exist yet.
func EnsureSchema(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	return nil
}
