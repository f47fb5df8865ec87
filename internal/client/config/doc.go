// Package config loads runtime configuration for the Asset Tracker CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend HTTP API
//	-t int      request timeout (seconds)
//	-d string   path to the local sqlite database
//	-s int      minimum query length (runes) before search mode engages
//	-v          verbose (debug) logging
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "15s" or integer nanoseconds:
//
//	{
//	  "server_base_url": "http://localhost:8000",
//	  "request_timeout": "15s",
//	  "database_path": "assettracker.db",
//	  "search_min_length": 3,
//	  "verbose": false
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
