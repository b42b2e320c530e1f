// Package config loads crate's configuration.
//
// # Overview
//
// Configuration comes from three layers, later layers winning:
//
//  1. Built-in defaults
//  2. The config file (~/.config/crate/config.toml unless a path is given;
//     files ending in .yaml or .yml are read as YAML)
//  3. Environment overrides, read from the process environment first and
//     then from a .env file in the working directory
//
// A missing config file is not an error. A file that exists but does not
// parse is.
//
// # Keys
//
//	api_base_url     Vinylhound base URL, origin plus base path
//	                 (default http://127.0.0.1:8080/api)
//	request_timeout  per-request timeout, "15s" style or seconds (default 15s)
//	poll_interval    background refresh interval (default 30s)
//	log_level        logrus level name (default info)
//	log_format       text or json (default text)
//	log_file         log destination, "-" for stderr
//	                 (default ~/.local/state/crate/crate.log)
//	session_path     persisted session (default ~/.config/crate/session.toml)
//	prefs_path       persisted preferences (default ~/.config/crate/prefs.toml)
//
// # Environment
//
//	CRATE_API_BASE_URL     overrides api_base_url
//	CRATE_LOG_LEVEL        overrides log_level
//	CRATE_REQUEST_TIMEOUT  overrides request_timeout
//
// Paths beginning with ~ are expanded against the user's home directory and
// made absolute.
package config
