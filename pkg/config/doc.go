// Package config provides YAML-based configuration for spendwatch.
//
// Configuration is loaded in a fixed sequence:
//
//  1. Parse the YAML file
//  2. Apply default values for anything unset
//  3. Apply environment variable overrides (SPENDWATCH_*)
//  4. Validate the final configuration
//
// Environment variables always take precedence over file values, which
// makes containerized deployments configurable without editing files.
//
// The policy section can be hot-reloaded at runtime via Watcher, which
// watches the config file with fsnotify and swaps the global config on
// change. A reload that fails to parse or validate keeps the previous
// configuration.
package config
