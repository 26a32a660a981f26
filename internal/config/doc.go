// Package config loads Rased's TOML configuration.
//
// # Discovery
//
// Load follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/rased/config.toml
//  3. If the file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing or empty, use defaults
//
// # Format
//
//	runtime  = "native"              # or "web"
//	data_dir = "~/.local/share/rased"
//
//	[storage]
//	debounce    = "2s"
//	grace       = "1s"               # "0s" saves edits made right after startup at once
//	mirror_file = false              # web runtime also writes rased_data.json
//	kv          = ""                 # "", "memory" or "redis"
//	redis_addr  = "127.0.0.1:6379"
//	redis_db    = 0
//	key_prefix  = "rased:"
//
//	[ministry]
//	base_url       = "https://mobile.moe.gov.om/.../MTletIt.svc"
//	timeout        = "10s"
//	submit_timeout = "20s"
//
//	[log]
//	level  = "info"
//	file   = "~/.local/share/rased/rased.log"
//	pretty = false
//
// Tilde expansion is applied to data_dir and log.file, and both are made
// absolute.
//
// # Errors
//
// Load fails on an unreadable file, malformed TOML, or an unknown runtime
// or storage.kv value. A bad duration is not fatal: the default is used and
// a message is appended to Config.Warnings for the caller to log.
package config
