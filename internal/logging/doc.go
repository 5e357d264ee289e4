// Minirec - Recommendation Serving Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/minirec

// Package logging provides the zerolog-based structured logger shared by every
// minirec component.
//
// # Overview
//
// The package provides:
//   - A process-wide zerolog logger configured once from main()
//   - JSON output for batch runs, console output for local experiments
//   - Request and correlation IDs carried through context.Context
//   - An slog.Handler adapter so suture's event hook (sutureslog) logs through zerolog
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Int("users", n).Msg("history initialized")
//	logging.Ctx(ctx).Warn().Err(err).Msg("recommend failed")
//
// Components receive a zerolog.Logger and derive their own child:
//
//	logger := base.With().Str("component", "history").Logger()
//
// # Configuration
//
// Environment variables (read through internal/config):
//
//	LOG_LEVEL   - trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - json, console (default: json)
//	LOG_CALLER  - include caller file:line (default: false)
//
// Always terminate event chains with .Msg() or .Send(); an unterminated event
// is never written.
package logging
