// Package configs manages global and repository configuration for confect.
//
// Configuration is stored in TOML format at two levels:
//
//   - Global config: $CONFECT_CONFIG, or <user config dir>/confect/config.toml
//     (repository location, push behaviour, encryption settings, host name)
//   - Repository config: <repo>/.confect/config.toml (format version,
//     repository UUID, creation time)
//
// # Global Configuration
//
//	[global]
//	default_remote = "origin"
//	auto_push = true
//	repo_path = "/var/lib/confect"
//
//	[encryption]
//	enabled = true
//	public_key = "age1..."
//	recipients_file = "/etc/confect/recipients.txt"
//	identity_file = "/root/.config/confect/identity.txt"
//
//	[hosts]
//	current = "web-01"
//
// A missing global config is not an error: Default() values are used.
//
// # No Global State
//
// A Config is loaded once per invocation and passed explicitly to every
// component constructor. Nothing in this package is mutated at runtime.
package configs
