// Package config handles configuration loading for feedback-board.
//
// # Configuration File
//
// Default locations (in order):
//
//  1. Path from FEEDBACK_CONFIG environment variable
//  2. $XDG_CONFIG_HOME/feedback-board/config.yaml
//  3. ~/.config/feedback-board/config.yaml
//
// Files ending in .toml are parsed as TOML; everything else as YAML.
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	auth:
//	  secret_key: "${SECRET_KEY}"
//
// Syntax: ${VAR_NAME}. Unset variables expand to the empty string.
//
// # Configuration Sections
//
// Server settings:
//
//	server:
//	  http_addr: "127.0.0.1:8080"
//
// Database:
//
//	database:
//	  path: "/var/lib/feedback-board/feedback.db"
//	  echo_queries: false
//
// Authentication:
//
//	auth:
//	  secret_key: "${SECRET_KEY}"
//
// Logging:
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
//
// # Secret Key Fallback
//
// When auth.secret_key is empty the loader falls back to the SECRET_KEY
// environment variable, then to a fixed development default. The server
// warns loudly when the default is in use.
package config
