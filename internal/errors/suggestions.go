package errors

import (
	"errors"
	"fmt"
	"strings"
)

// CLIName is the executable name used in recovery hints.
const CLIName = "lib-shared"

// codeHints maps error codes to the recovery hint printed with the error.
var codeHints = map[string]string{
	ErrCodeInvalidComponentName: "Component names may only contain letters, digits, '-' and '_'. Run `" + CLIName + " list` to see what is available.",
	ErrCodeUnknownComponent:     "Run `" + CLIName + " list` to see the available components.",
	ErrCodePathEscape:           "Component names may only contain letters, digits, '-' and '_'.",
	ErrCodeRegistryUnreachable:  "Check your internet connection or point --registry at a reachable registry.",
	ErrCodeRegistryStatus:       "The registry does not serve this resource. Run `" + CLIName + " list` to check the component name.",
	ErrCodeRegistryDecode:       "The registry returned data that is not valid JSON. Try again later or check --registry.",
	ErrCodeRegistryShape:        "The registry entry is missing required fields. Try again later or report the broken entry.",
	ErrCodeInstallFailed:        "Install the dependencies manually with your package manager.",
	ErrCodeWriteFailed:          "Check that the project directory exists and is writable.",
	ErrCodeConfigInvalid:        "Check .lib-shared.yml and the LIB_SHARED_* environment variables.",
	ErrCodeInvalidURL:           "Use an http(s) URL such as https://example.com/r for the registry.",
	ErrCodeInterrupted:          "No files were written. Run the command again to finish.",
}

// typeHints is the fallback when a code has no dedicated hint.
var typeHints = map[ErrorType]string{
	ErrorTypeValidation: "Run `" + CLIName + " --help` for usage.",
	ErrorTypeNetwork:    "Check your internet connection and try again.",
	ErrorTypeRegistry:   "Try again later or check the registry URL.",
	ErrorTypeIO:         "Check file permissions in the project directory.",
	ErrorTypeConfig:     "Check your configuration file.",
}

// HintFor returns the recovery hint for err, or "" when none applies.
func HintFor(err error) string {
	var le *LibError
	if !errors.As(err, &le) {
		return ""
	}
	if le.Hint != "" {
		return le.Hint
	}
	if hint, ok := codeHints[le.Code]; ok {
		return hint
	}
	// Walk the cause chain so wrapped errors keep the most specific hint
	if le.Cause != nil {
		if hint := HintFor(le.Cause); hint != "" {
			return hint
		}
	}
	return typeHints[le.Type]
}

// AllowedNames extracts the allow-list attached to an unknown-component error.
func AllowedNames(err error) []string {
	var le *LibError
	if !errors.As(err, &le) {
		return nil
	}
	allowed, _ := le.Context["allowed"].([]string)
	return allowed
}

// Describe renders err and, for unknown components, the names that are available.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(err.Error())

	if names := AllowedNames(err); len(names) > 0 {
		b.WriteString("\n\nAvailable components:")
		for _, name := range names {
			fmt.Fprintf(&b, "\n  - %s", name)
		}
	}

	return b.String()
}

// Format renders err with its hint for terminal display.
func Format(err error) string {
	out := Describe(err)
	if hint := HintFor(err); hint != "" {
		out += "\n\nHint: " + hint
	}
	return out
}
