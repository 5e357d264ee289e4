// Minirec - Recommendation Serving Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/minirec

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared process-wide. Field names in errors
// come from the koanf tag when present, so messages name the configuration key
// the operator actually sets:
//
//	type HistoryConfig struct {
//	    CapacityBytes int `koanf:"capacity_bytes" validate:"gt=0"`
//	}
//
//	if err := validation.ValidateStruct(&cfg); err != nil {
//	    // "capacity_bytes must be greater than 0"
//	}
package validation
