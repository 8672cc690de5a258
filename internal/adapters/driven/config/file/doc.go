// Package file implements driven.ConfigStore on a TOML file. The host's
// nested TOML sections are flattened into dot-notation keys, so the OAuth
// client id configured as [oauth] client_id = "..." is read back as
// "oauth.client_id".
package file
