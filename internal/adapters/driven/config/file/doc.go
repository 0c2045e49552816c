// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem.
//
// Adapters:
//   - ConfigStore: config.json (or config.toml / config.yaml) holding the base URL
//   - SessionStore: auth.json holding the username and token pair
//
// Files are written atomically with 0600 permissions inside a 0700 directory.
package file
