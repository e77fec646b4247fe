// Package cmd provides the command-line interface for lib-shared.
//
// This package implements the CLI commands using the Cobra framework. Each
// command builds its dependencies from the loaded configuration and runs a
// single linear pass; nothing is retried and nothing is rolled back.
//
// # Available Commands
//
//   - list: Show the components published by the registry
//   - add: Copy a component into the project and install its peer dependencies
//   - docs: Render a component's markdown documentation as HTML or for the terminal
//   - version: Print build information
//
// Running the binary without a command, with an unknown command, or running
// add without a component name prints the help text and exits successfully.
//
// # Command Examples
//
//	// See what can be installed
//	lib-shared list
//
//	// Install the button component
//	lib-shared add button
//
//	// Compare an installed component with the registry copy
//	lib-shared add button --diff
//
//	// Preview documentation while editing it
//	lib-shared docs docs/button.md --format terminal --watch
//
// # Configuration Integration
//
// Commands respect configuration from multiple sources in order of precedence:
//
//  1. Command-line flags (--registry, --dir, --log-level)
//  2. Environment variables (LIB_SHARED_REGISTRY_URL, LIB_SHARED_PROJECT_DIR, ...)
//  3. Configuration file (.lib-shared.yml, --config or LIB_SHARED_CONFIG_FILE)
//  4. Default values
//
// # Error Handling
//
// Errors reaching the top level are printed to stderr together with a
// recovery hint, and the process exits with status 1. Dependency
// installation failures are reported as warnings with the manual install
// command instead of failing the add command.
package cmd
