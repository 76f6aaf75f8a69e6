// xplane/errors.go
// Copyright(c) 2026 aptdb contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package xplane

import "errors"

var (
	ErrBadHeader    = errors.New("Not an apt.dat file or unsupported version")
	ErrFieldMissing = errors.New("Row field index out of range")
)
