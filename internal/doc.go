// Package internal contains the implementation packages for the lib-shared CLI.
//
// # Package Organization
//
//   - config: configuration loading from flags, environment and .lib-shared.yml
//   - validation: component name, path containment, URL and command checks
//   - registry: HTTP client for the component registry and entry shape checks
//   - installer: package manager detection and dependency installation
//   - scaffolding: writing component files, the utils helper and usage hints
//   - console: styled terminal output
//   - docs: markdown parsing and HTML or terminal rendering
//   - watcher: debounced file change notification for docs --watch
//   - errors: structured errors with codes and recovery hints
//   - logging: structured logging
//   - version: build information
//
// A component name is validated before any network request and again before
// any file is written. Files are created exclusively and never overwritten.
package internal
