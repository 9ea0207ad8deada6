// Package config provides configuration management for casebook.
//
// Settings are resolved in layers, each overriding the previous one:
//
//  1. built-in defaults (see GetDefaultConfig)
//  2. config.yaml in the configuration directory, ~/.config/casebook by
//     default or the directory passed with --config-path
//  3. CASEBOOK_* environment variables
//  4. command line flags, applied by the cmd package
//
// # Configuration File
//
//	output: table          # table, json or yaml
//	logLevel: warn         # debug, info, warn or error
//	nameWidth: 60          # table cell width before truncation
//	parallelism: 4         # directories collected at once
//	watch:
//	  debounce: 300ms
//
// A missing config.yaml is not an error. A malformed one is.
//
// # Environment Variables
//
//	CASEBOOK_OUTPUT, CASEBOOK_LOG_LEVEL, CASEBOOK_NAME_WIDTH,
//	CASEBOOK_PARALLELISM, CASEBOOK_WATCH_DEBOUNCE
//
// Unset or empty variables leave the file value in place.
package config
