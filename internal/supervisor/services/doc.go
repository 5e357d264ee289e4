// Minirec - Recommendation Serving Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/minirec

// Package services adapts simulator components to suture.Service.
//
//   - WorkloadService: runs a finite task once and reports completion
//   - HTTPServerService: runs an *http.Server until shutdown
package services
