// Package config holds the editor options.
//
// Options are read with GetOption or the typed getters and changed with
// SetOption or SetOptions. Every value is validated before it is stored;
// SetOptions applies all values or none. With a bus attached, each
// change publishes an events.ConfigChanged event.
//
// Known options and their defaults:
//
//	defaultBlockTag  "p"      block tag a toggled-off block format reverts to
//	platform         runtime  "mac", "windows" or "linux"; decides the command key
//	sanitize         true     sanitize the initial HTML before reading it
//	minify           false    minify the serialized HTML
//
// Options can be loaded from TOML or YAML files (see package loader) and
// reloaded when the file changes (see package watcher).
package config
