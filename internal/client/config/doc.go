// Package config loads runtime configuration for the noticeboard client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config. JSON, or YAML when
//     the name ends in .yaml/.yml.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   backend base URL
//	-t int      request timeout (seconds)
//	-i int      session refresh interval (seconds)
//	-d string   session database path
//	-l string   log file path
//	-m string   tui or console
//
// # File schema
//
//	{
//	  "server_url": "http://localhost:3000",
//	  "request_timeout": "10s",
//	  "session_refresh_interval": "1m",
//	  "database_path": "noticeboard.db",
//	  "log_file": "noticeboard.log",
//	  "mode": "tui"
//	}
//
// Environment variables are not read; use the file or flags.
package config
